package devs

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/vedantvakharia/desimcore/pkg/logger"
)

// Observer receives instrumentation callbacks from a running simulator. It
// is the generalized form of the "post-execute hook" design note (spec §9):
// pkg/metrics implements it to turn scheduling and execution into Prometheus
// series without the devs package knowing anything about Prometheus.
type Observer interface {
	OnScheduled(e *SimulationEvent)
	OnExecuted(e *SimulationEvent)
}

// baseSimulator is the state machine shared by DEVSimulator and ABMSimulator,
// parameterized by whether time is an integer tick grid and by an optional
// hook invoked after each executed event (ABMSimulator's self-rescheduling).
type baseSimulator struct {
	EventList *EventList

	model     Model
	startTime float64
	endTime   float64
	localTime float64 // clock reported while no model is set; not updated from the model

	integerTime bool
	logger      *slog.Logger
	observer    Observer

	afterExecute func(e *SimulationEvent)
}

func newBaseSimulator(integerTime bool, component string) *baseSimulator {
	return &baseSimulator{
		EventList:   NewEventList(),
		endTime:     math.Inf(1),
		integerTime: integerTime,
		logger:      logger.Named(component),
	}
}

// SetObserver attaches an instrumentation hook. Pass nil to detach.
func (s *baseSimulator) SetObserver(o Observer) { s.observer = o }

// Model returns the model reference established by Setup, or nil before
// setup and after Reset.
func (s *baseSimulator) Model() Model { return s.model }

// StartTime returns the real bound of the current run (always 0; there is
// no public way to move it, matching the source's fixed default).
func (s *baseSimulator) StartTime() float64 { return s.startTime }

// EndTime returns the currently configured run end, or +Inf if none.
func (s *baseSimulator) EndTime() float64 { return s.endTime }

func (s *baseSimulator) now() float64 {
	if s.model != nil {
		return s.model.Time()
	}
	return s.localTime
}

// Time returns the simulator's mirror of the logical clock.
//
// Deprecated: the authoritative clock lives on the model; read Model().Time()
// instead. This accessor is kept for source compatibility and logs a
// deprecation warning on every read.
func (s *baseSimulator) Time() float64 {
	s.logger.Warn("simulator.Time is deprecated; read the model's time instead")
	return s.now()
}

// Setup stores model and aligns the simulator to it. Preconditions:
// model.Time() == 0 and the event list is physically empty; either
// violation returns ErrInvalidSetup.
func (s *baseSimulator) Setup(model Model) error {
	if model == nil {
		return fmt.Errorf("setup requires a non-nil model: %w", ErrInvalidArgument)
	}
	if model.Time() != 0 {
		return fmt.Errorf("model.Time() must be 0 at setup, got %v: %w", model.Time(), ErrInvalidSetup)
	}
	if s.EventList.Len() != 0 {
		return fmt.Errorf("event list must be empty at setup: %w", ErrInvalidSetup)
	}

	s.model = model
	s.startTime = 0
	s.endTime = math.Inf(1)
	s.localTime = 0
	s.logger.Info("simulator setup", "integer_time", s.integerTime)
	return nil
}

// Reset drops the model reference, clears the event list, and resets
// bounds and the local clock to their defaults.
func (s *baseSimulator) Reset() {
	s.model = nil
	s.EventList.Clear()
	s.startTime = 0
	s.endTime = math.Inf(1)
	s.localTime = 0
	s.logger.Info("simulator reset")
}

func (s *baseSimulator) scheduleAt(t float64, fn *Callable, priority Priority, args []any, kwargs map[string]any, kind EventKind) (*SimulationEvent, error) {
	now := s.now()
	if t < now {
		return nil, fmt.Errorf("cannot schedule at time %v, current time is %v: %w", t, now, ErrPastTime)
	}
	if s.integerTime && t != math.Trunc(t) {
		return nil, fmt.Errorf("abm simulator requires integer scheduling times, got %v: %w", t, ErrInvalidArgument)
	}

	event, err := NewSimulationEvent(t, fn, priority, args, kwargs)
	if err != nil {
		return nil, err
	}
	event.Kind = kind

	s.EventList.AddEvent(event)
	s.logger.Debug("event scheduled", "time", t, "priority", priority, "kind", kind, "unique_id", event.UniqueID)
	if s.observer != nil {
		s.observer.OnScheduled(event)
	}
	return event, nil
}

// ScheduleEventNow schedules fn at the current model time.
func (s *baseSimulator) ScheduleEventNow(fn *Callable, priority Priority, args []any, kwargs map[string]any) (*SimulationEvent, error) {
	return s.scheduleAt(s.now(), fn, priority, args, kwargs, EventDefault)
}

// ScheduleEventAbsolute schedules fn at an absolute time.
func (s *baseSimulator) ScheduleEventAbsolute(fn *Callable, t float64, priority Priority, args []any, kwargs map[string]any) (*SimulationEvent, error) {
	return s.scheduleAt(t, fn, priority, args, kwargs, EventDefault)
}

// ScheduleEventRelative schedules fn delay units after the current model
// time. delay must be non-negative.
func (s *baseSimulator) ScheduleEventRelative(fn *Callable, delay float64, priority Priority, args []any, kwargs map[string]any) (*SimulationEvent, error) {
	if delay < 0 {
		return nil, fmt.Errorf("relative delay must be non-negative, got %v: %w", delay, ErrInvalidArgument)
	}
	return s.scheduleAt(s.now()+delay, fn, priority, args, kwargs, EventDefault)
}

// CancelEvent logically cancels e. Always safe, always idempotent.
func (s *baseSimulator) CancelEvent(e *SimulationEvent) {
	s.EventList.Remove(e)
}

func (s *baseSimulator) popAndRun(e *SimulationEvent) {
	s.model.SetTime(e.Time)
	e.Execute()
	if s.observer != nil {
		s.observer.OnExecuted(e)
	}
	if s.afterExecute != nil {
		s.afterExecute(e)
	}
}

// RunUntil drains the event list in order through time end, advancing
// model.Time to each popped event's time before executing it. It leaves
// model.Time at exactly end once the head's time exceeds end or the queue
// is drained, and never moves the clock backward.
//
// A MODEL_STEP event sitting exactly at end is the one exception: it is
// left in the queue rather than popped. ABMSimulator's bootstrap heartbeat
// reschedules itself for model.Time()+1 every time it fires, so popping the
// boundary occurrence here would run one extra tick beyond what the caller
// asked for. Ordinary events, whether DEVS or ABM user events, still pop
// inclusively at end; only the self-perpetuating heartbeat defers.
func (s *baseSimulator) RunUntil(end float64) error {
	if s.model == nil {
		return fmt.Errorf("run_until requires a configured model: %w", ErrNotConfigured)
	}
	s.endTime = end

	for s.model.Time() <= end {
		heads, err := s.EventList.PeakAhead(1)
		if err != nil || len(heads) == 0 {
			break
		}
		if heads[0].Time > end {
			break
		}
		if heads[0].Time == end && heads[0].Kind == EventModelStep {
			break
		}
		event, err := s.EventList.PopEvent()
		if err != nil {
			break
		}
		s.popAndRun(event)
	}

	if end > s.model.Time() {
		s.model.SetTime(end)
	}
	return nil
}

// RunFor is RunUntil(model.Time() + duration).
func (s *baseSimulator) RunFor(duration float64) error {
	if s.model == nil {
		return fmt.Errorf("run_for requires a configured model: %w", ErrNotConfigured)
	}
	return s.RunUntil(s.model.Time() + duration)
}

// RunNextEvent pops exactly one non-canceled event, advances model.Time to
// its time, and executes it. It never advances time past the event.
func (s *baseSimulator) RunNextEvent() (*SimulationEvent, error) {
	if s.model == nil {
		return nil, fmt.Errorf("run_next_event requires a configured model: %w", ErrNotConfigured)
	}
	event, err := s.EventList.PopEvent()
	if err != nil {
		return nil, err
	}
	s.popAndRun(event)
	return event, nil
}
