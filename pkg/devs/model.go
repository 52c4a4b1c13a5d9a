package devs

// Model is the external collaborator a Simulator drives. The simulator owns
// the clock mutation (SetTime); a model's Step, in turn, is expected to
// advance its own step counter — the simulator never reads or writes it.
//
// Model is intentionally the whole of the contract: no visualization, no
// persistence, no concrete stepping logic belongs here. Production models
// live outside this package; pkg/devs only ever sees them through this
// interface.
type Model interface {
	// Time returns the model's current position on the logical clock.
	Time() float64

	// SetTime sets the model's position on the logical clock. Only a
	// Simulator calls this, once per popped event (or once at a run
	// boundary); a model's own callbacks must never call it.
	SetTime(t float64)

	// Step performs one model-level advance. ABMSimulator invokes this once
	// per tick via a self-perpetuating MODEL_STEP event; a model
	// conventionally increments its own step counter here.
	Step()

	// Steps returns how many times Step has run so far. Exists so
	// instrumentation (pkg/metrics) and CLI reporting can observe model
	// progress without reaching into a concrete model type.
	Steps() int
}
