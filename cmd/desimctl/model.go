package main

import (
	"log/slog"

	"github.com/vedantvakharia/desimcore/pkg/devs"
	"github.com/vedantvakharia/desimcore/pkg/utils"
)

// demoModel is a minimal devs.Model standing in for a real simulation. It
// drives a Poisson arrival process under DEVSimulator and a per-tick
// population walk under ABMSimulator, just enough to exercise the
// scheduler, the metrics collector, and pkg/utils's random source end to
// end.
type demoModel struct {
	time  float64
	steps int

	rng        *utils.RandSource
	arrivals   int
	population int

	// arriveFn holds the one strong reference to the arrival callable;
	// scheduled events only ever see it weakly, the same contract
	// ABMSimulator relies on for its own step heartbeat.
	arriveFn *devs.Callable

	log *slog.Logger
}

func newDemoModel(seed int64, log *slog.Logger) *demoModel {
	return &demoModel{
		rng: utils.NewRandSource(seed),
		log: log,
	}
}

func (m *demoModel) Time() float64     { return m.time }
func (m *demoModel) SetTime(t float64) { m.time = t }

// Step is the ABM heartbeat: one tick, one chance for the population to
// gain or lose a member.
func (m *demoModel) Step() {
	m.steps++
	if m.rng.BernoulliBool(0.5) {
		m.population++
	} else if m.population > 0 {
		m.population--
	}
	m.log.Debug("tick", "tick", m.steps, "population", m.population)
}

func (m *demoModel) Steps() int { return m.steps }

// scheduleArrivals seeds a DEVS run with a self-rescheduling arrival
// process: each firing counts an arrival and schedules the next one after
// an exponentially distributed interarrival time.
func (m *demoModel) scheduleArrivals(sim *devs.DEVSimulator, rate float64, priority devs.Priority) error {
	arrive := devs.Callable(func(_ []any, kwargs map[string]any) {
		m.arrivals++
		m.log.Debug("arrival", "count", m.arrivals, "time", m.time, "correlation_id", kwargs["correlation_id"])
		delay := m.rng.ExpFloat64(rate)
		next := map[string]any{"correlation_id": utils.GenerateID()}
		if _, err := sim.ScheduleEventRelative(m.arriveFn, delay, priority, nil, next); err != nil {
			m.log.Warn("failed to schedule next arrival", "error", err)
		}
	})
	m.arriveFn = &arrive

	delay := m.rng.ExpFloat64(rate)
	first := map[string]any{"correlation_id": utils.GenerateID()}
	_, err := sim.ScheduleEventRelative(m.arriveFn, delay, priority, nil, first)
	return err
}
