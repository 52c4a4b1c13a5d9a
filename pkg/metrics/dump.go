package metrics

import (
	"bytes"
	"fmt"
	"os"

	"github.com/prometheus/common/expfmt"
)

// Snapshot renders the collector's current metric families as Prometheus
// text exposition format. It is a one-shot dump, not a long-lived /metrics
// endpoint: a run that wants a persistent scrape target is out of scope
// for a discrete-event core.
func (c *Collector) Snapshot() (string, error) {
	if c == nil || c.gatherer == nil {
		return "", fmt.Errorf("metrics: collector has no gatherer")
	}

	families, err := c.gatherer.Gather()
	if err != nil {
		return "", fmt.Errorf("metrics: gather failed: %w", err)
	}

	var buf bytes.Buffer
	encoder := expfmt.NewEncoder(&buf, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := encoder.Encode(mf); err != nil {
			return "", fmt.Errorf("metrics: encode failed: %w", err)
		}
	}
	return buf.String(), nil
}

// DumpToFile writes the current snapshot to path, truncating any existing
// content. Used by cmd/desimctl when RunConfig.Metrics.DumpPath is set.
func (c *Collector) DumpToFile(path string) error {
	snapshot, err := c.Snapshot()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(snapshot), 0644); err != nil {
		return fmt.Errorf("metrics: failed to write snapshot to %s: %w", path, err)
	}
	return nil
}
