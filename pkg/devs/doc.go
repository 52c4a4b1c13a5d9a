// Package devs implements a deterministic discrete-event simulation core: a
// time-ordered queue of scheduled callables (SimulationEvent, EventList) and
// the state machine that drains it (Simulator, DEVSimulator, ABMSimulator).
//
// The package owns the clock mechanics only. It knows nothing about what a
// scheduled callable does, and it does not implement the model object whose
// time and steps it advances — callers supply one satisfying Model.
package devs
