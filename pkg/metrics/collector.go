// Package metrics instruments a running devs simulator with Prometheus
// series, without devs knowing anything about Prometheus: Collector
// implements devs.Observer and is attached with (*baseSimulator-backed
// simulator).SetObserver.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vedantvakharia/desimcore/pkg/devs"
	"github.com/vedantvakharia/desimcore/pkg/utils"
)

// Collector exposes Prometheus metrics for a single simulator's run.
type Collector struct {
	gatherer prometheus.Gatherer

	EventsScheduled prometheus.Counter
	EventsExecuted  *prometheus.CounterVec
	QueueDepth      prometheus.Gauge
	SimulationTime  prometheus.Gauge
	InterEventGap   prometheus.Histogram

	lastEventTime float64
	haveLast      bool
	gapSamples    []float64
}

// GapSummary derives distribution stats over the inter-event gaps recorded
// so far, alongside the same values the InterEventGap histogram already
// exposes through the Prometheus scrape path. Useful for a one-shot CLI run
// that exits before anything would scrape the histogram.
type GapSummary struct {
	Mean   float64
	StdDev float64
	P50    float64
	P95    float64
}

// GapSummary computes mean, standard deviation, median, and p95 over every
// inter-event gap observed by OnExecuted.
func (c *Collector) GapSummary() GapSummary {
	if c == nil || len(c.gapSamples) == 0 {
		return GapSummary{}
	}
	return GapSummary{
		Mean:   utils.Mean(c.gapSamples),
		StdDev: utils.StdDev(c.gapSamples),
		P50:    utils.P50(c.gapSamples),
		P95:    utils.P95(c.gapSamples),
	}
}

// NewCollector registers the simulator's metrics against reg, defaulting to
// the global Prometheus registry when reg is nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	scheduled, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "devs_events_scheduled_total",
		Help: "Total number of events scheduled on the simulator's event list.",
	}), "devs_events_scheduled_total")
	if err != nil {
		return nil, err
	}

	executed, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "devs_events_executed_total",
		Help: "Total number of events executed, labeled by event kind.",
	}, []string{"kind"}), "devs_events_executed_total")
	if err != nil {
		return nil, err
	}

	depth, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "devs_event_queue_depth",
		Help: "Physical number of entries currently sitting in the event list.",
	}), "devs_event_queue_depth")
	if err != nil {
		return nil, err
	}

	simTime, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "devs_simulation_time",
		Help: "Current logical simulation time, as last set by the simulator.",
	}), "devs_simulation_time")
	if err != nil {
		return nil, err
	}

	gap, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "devs_inter_event_gap",
		Help:    "Gap in logical time between consecutively executed events.",
		Buckets: prometheus.DefBuckets,
	}), "devs_inter_event_gap")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:        gatherer,
		EventsScheduled: scheduled,
		EventsExecuted:  executed,
		QueueDepth:      depth,
		SimulationTime:  simTime,
		InterEventGap:   gap,
	}, nil
}

// Gatherer returns the Prometheus gatherer backing this collector's
// registry, for use with promhttp or expfmt.
func (c *Collector) Gatherer() prometheus.Gatherer {
	if c == nil {
		return nil
	}
	return c.gatherer
}

// OnScheduled implements devs.Observer.
func (c *Collector) OnScheduled(e *devs.SimulationEvent) {
	if c == nil {
		return
	}
	if c.EventsScheduled != nil {
		c.EventsScheduled.Inc()
	}
}

// OnExecuted implements devs.Observer. It records the event's kind, updates
// the simulation-time gauge to the event's time, and records the gap since
// the previously executed event.
func (c *Collector) OnExecuted(e *devs.SimulationEvent) {
	if c == nil || e == nil {
		return
	}
	if c.EventsExecuted != nil {
		c.EventsExecuted.WithLabelValues(e.Kind.String()).Inc()
	}
	if c.SimulationTime != nil {
		c.SimulationTime.Set(e.Time)
	}
	if c.InterEventGap != nil {
		if c.haveLast {
			gap := e.Time - c.lastEventTime
			c.InterEventGap.Observe(gap)
			c.gapSamples = append(c.gapSamples, gap)
		}
		c.lastEventTime = e.Time
		c.haveLast = true
	}
}

// SetQueueDepth updates the queue-depth gauge; callers read it off
// EventList.Len() after scheduling or popping.
func (c *Collector) SetQueueDepth(n int) {
	if c == nil || c.QueueDepth == nil {
		return
	}
	c.QueueDepth.Set(float64(n))
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}
