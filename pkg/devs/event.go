package devs

import (
	"fmt"
	"sync/atomic"
	"weak"
)

// Priority is the second-level tie-break after time. Lower values fire
// first; HIGH events at a given time pop before DEFAULT, which pop before
// LOW.
type Priority int

const (
	PriorityHigh Priority = iota
	PriorityDefault
	PriorityLow
)

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "HIGH"
	case PriorityDefault:
		return "DEFAULT"
	case PriorityLow:
		return "LOW"
	default:
		return fmt.Sprintf("Priority(%d)", int(p))
	}
}

// EventKind distinguishes ABMSimulator's self-perpetuating model step from
// ordinary user-scheduled events. DEVSimulator never produces anything but
// EventDefault.
type EventKind int

const (
	EventDefault EventKind = iota
	EventModelStep
)

func (k EventKind) String() string {
	switch k {
	case EventDefault:
		return "DEFAULT"
	case EventModelStep:
		return "MODEL_STEP"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Callable is the signature every scheduled function must satisfy. Captured
// positional and keyword arguments are passed through at execution time.
type Callable func(args []any, kwargs map[string]any)

var uniqueIDCounter uint64

func nextUniqueID() uint64 {
	return atomic.AddUint64(&uniqueIDCounter, 1)
}

// SimulationEvent is a single scheduled invocation sitting in an EventList.
//
// fn is held weakly: the caller supplies a pointer to their own Callable
// variable, and the event only ever upgrades it transiently at execute time.
// If the caller's last strong reference to that variable goes away before
// the event fires, Execute becomes a silent no-op — scheduling a bound
// method never has to keep its receiver alive.
type SimulationEvent struct {
	Time     float64
	Priority Priority
	UniqueID uint64
	Kind     EventKind

	fn       weak.Pointer[Callable]
	Args     []any
	Kwargs   map[string]any
	Canceled bool
}

// NewSimulationEvent constructs an event with a weak reference to fn. fn
// must be non-nil and t must be non-negative; both are construction-time
// invariants, not runtime checks.
func NewSimulationEvent(t float64, fn *Callable, priority Priority, args []any, kwargs map[string]any) (*SimulationEvent, error) {
	if fn == nil {
		return nil, fmt.Errorf("simulation event requires a non-nil callable: %w", ErrInvalidArgument)
	}
	if t < 0 {
		return nil, fmt.Errorf("simulation event time must be non-negative, got %v: %w", t, ErrInvalidArgument)
	}
	if args == nil {
		args = []any{}
	}
	if kwargs == nil {
		kwargs = map[string]any{}
	}
	return &SimulationEvent{
		Time:     t,
		Priority: priority,
		UniqueID: nextUniqueID(),
		Kind:     EventDefault,
		fn:       weak.Make(fn),
		Args:     args,
		Kwargs:   kwargs,
	}, nil
}

// Execute resolves the weak callable and invokes it. A canceled event or one
// whose callable has been reclaimed elapses silently; neither is an error.
func (e *SimulationEvent) Execute() {
	if e.Canceled {
		return
	}
	fn := e.fn.Value()
	if fn == nil {
		return
	}
	(*fn)(e.Args, e.Kwargs)
}

// Cancel marks the event unexecutable. It is idempotent and terminal: args
// are cleared and the callable reference is dropped, but the record itself
// stays wherever it sits in the owning EventList until it surfaces.
func (e *SimulationEvent) Cancel() {
	e.Canceled = true
	e.fn = weak.Pointer[Callable]{}
	e.Args = []any{}
	e.Kwargs = map[string]any{}
}

// callableIs reports whether e's callable, resolved right now, is the same
// allocation as p. Used by ABMSimulator to recognize its own step event by
// reference — never by invoking anything.
func (e *SimulationEvent) callableIs(p *Callable) bool {
	return e.fn.Value() == p
}

// Less implements the total order: (Time, Priority, UniqueID), earlier
// construction first on a tie.
func (e *SimulationEvent) Less(o *SimulationEvent) bool {
	if e.Time != o.Time {
		return e.Time < o.Time
	}
	if e.Priority != o.Priority {
		return e.Priority < o.Priority
	}
	return e.UniqueID < o.UniqueID
}
