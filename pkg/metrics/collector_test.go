package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vedantvakharia/desimcore/pkg/devs"
)

func newTestCollector(t *testing.T) *Collector {
	t.Helper()
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector failed: %v", err)
	}
	return c
}

func newTestSimEvent(t *testing.T, at float64, kind devs.EventKind) *devs.SimulationEvent {
	t.Helper()
	fn := devs.Callable(func([]any, map[string]any) {})
	e, err := devs.NewSimulationEvent(at, &fn, devs.PriorityDefault, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e.Kind = kind
	return e
}

func TestCollectorOnScheduledIncrementsCounter(t *testing.T) {
	c := newTestCollector(t)
	e := newTestSimEvent(t, 1, devs.EventDefault)

	c.OnScheduled(e)
	c.OnScheduled(e)

	snapshot, err := c.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if !strings.Contains(snapshot, "devs_events_scheduled_total 2") {
		t.Errorf("expected scheduled counter at 2, got snapshot:\n%s", snapshot)
	}
}

func TestCollectorOnExecutedTracksTimeAndGap(t *testing.T) {
	c := newTestCollector(t)

	c.OnExecuted(newTestSimEvent(t, 1, devs.EventDefault))
	c.OnExecuted(newTestSimEvent(t, 4, devs.EventModelStep))

	snapshot, err := c.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if !strings.Contains(snapshot, "devs_simulation_time 4") {
		t.Errorf("expected simulation time gauge at 4, got:\n%s", snapshot)
	}
	if !strings.Contains(snapshot, `kind="DEFAULT"`) || !strings.Contains(snapshot, `kind="MODEL_STEP"`) {
		t.Errorf("expected both event kinds labeled in executed counter, got:\n%s", snapshot)
	}
}

func TestCollectorSetQueueDepth(t *testing.T) {
	c := newTestCollector(t)
	c.SetQueueDepth(7)

	snapshot, err := c.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if !strings.Contains(snapshot, "devs_event_queue_depth 7") {
		t.Errorf("expected queue depth gauge at 7, got:\n%s", snapshot)
	}
}

func TestCollectorGapSummary(t *testing.T) {
	c := newTestCollector(t)

	if s := c.GapSummary(); s.Mean != 0 || s.P50 != 0 {
		t.Errorf("expected zero-value summary before any events, got %+v", s)
	}

	c.OnExecuted(newTestSimEvent(t, 0, devs.EventDefault))
	c.OnExecuted(newTestSimEvent(t, 1, devs.EventDefault))
	c.OnExecuted(newTestSimEvent(t, 3, devs.EventDefault))
	c.OnExecuted(newTestSimEvent(t, 6, devs.EventDefault))

	s := c.GapSummary()
	if s.Mean != 2 {
		t.Errorf("expected mean gap of 2 (1,2,3), got %v", s.Mean)
	}
	if s.P50 != 2 {
		t.Errorf("expected median gap of 2, got %v", s.P50)
	}
}

func TestCollectorNilReceiverIsSafe(t *testing.T) {
	var c *Collector
	c.OnScheduled(nil)
	c.OnExecuted(nil)
	c.SetQueueDepth(1)
	if c.Gatherer() != nil {
		t.Error("expected nil gatherer on nil collector")
	}
}
