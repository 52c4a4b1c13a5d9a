package devs

// DEVSimulator is a free-form, real-valued-time discrete-event simulator.
// It introduces no events of its own; every event it ever pops is one a
// caller scheduled.
type DEVSimulator struct {
	*baseSimulator
}

// NewDEVSimulator returns a fresh, unconfigured DEVSimulator.
func NewDEVSimulator() *DEVSimulator {
	return &DEVSimulator{baseSimulator: newBaseSimulator(false, "devs.devsimulator")}
}
