package devs

// ABMSimulator is an integer-tick discrete-event simulator that maintains a
// self-rescheduling MODEL_STEP event calling model.Step once per tick, in
// addition to whatever DEFAULT events callers schedule.
type ABMSimulator struct {
	*baseSimulator

	// stepFn is the single canonical pointer the model-step weak reference
	// is always made from. Identity against this pointer — never an
	// invocation of it — is how afterExecute recognizes its own heartbeat.
	stepFn *Callable
}

// NewABMSimulator returns a fresh, unconfigured ABMSimulator.
func NewABMSimulator() *ABMSimulator {
	sim := &ABMSimulator{baseSimulator: newBaseSimulator(true, "devs.abmsimulator")}
	sim.afterExecute = sim.rescheduleStep
	return sim
}

// Setup stores model, then schedules the bootstrap MODEL_STEP event at time
// 0 the way the base Setup leaves the list after its own preconditions pass.
func (a *ABMSimulator) Setup(model Model) error {
	if err := a.baseSimulator.Setup(model); err != nil {
		return err
	}

	step := Callable(func([]any, map[string]any) {
		model.Step()
	})
	a.stepFn = &step

	if _, err := a.scheduleAt(0, a.stepFn, PriorityDefault, nil, nil, EventModelStep); err != nil {
		return err
	}
	return nil
}

// Reset additionally drops the canonical step callable so a subsequent
// Setup starts from a clean heartbeat.
func (a *ABMSimulator) Reset() {
	a.baseSimulator.Reset()
	a.stepFn = nil
}

// ScheduleEventNextTick is a convenience for ScheduleEventRelative(fn, 1, ...).
func (a *ABMSimulator) ScheduleEventNextTick(fn *Callable, args []any, kwargs map[string]any) (*SimulationEvent, error) {
	return a.ScheduleEventRelative(fn, 1, PriorityDefault, args, kwargs)
}

// rescheduleStep runs after every popped event. If the event was the
// model-step heartbeat — recognized by event type and by pointer identity
// of its already-resolved callable, not by calling it — it reschedules the
// same heartbeat one tick later. User (EventDefault) events are never
// touched here.
func (a *ABMSimulator) rescheduleStep(event *SimulationEvent) {
	if event.Kind != EventModelStep || !event.callableIs(a.stepFn) {
		return
	}
	if _, err := a.scheduleAt(event.Time+1, a.stepFn, PriorityDefault, nil, nil, EventModelStep); err != nil {
		a.logger.Warn("failed to reschedule model step", "error", err)
	}
}
