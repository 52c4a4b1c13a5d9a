package config

// RunConfig describes one simulation run: which simulator flavor drives it,
// the bounds of the run, and the ambient knobs (seed, logging, default
// event priority) every run needs regardless of what model it drives.
type RunConfig struct {
	// Mode selects the simulator flavor: "devs" for free-form real-valued
	// time, "abm" for the integer tick grid with a self-rescheduling step.
	Mode string `yaml:"mode"`

	// TimeUnit is descriptive only; it never changes how the simulator
	// interprets Start/End (DEVSimulator is always real-valued, ABMSimulator
	// always integer). It exists so a run's logs and metrics can be labeled
	// with what a tick or a time unit means in the model's own domain.
	TimeUnit string `yaml:"time_unit"`

	StartTime float64 `yaml:"start_time"`
	EndTime   float64 `yaml:"end_time"`

	// Seed drives any randomness a model built against this config chooses
	// to use; pkg/devs itself is deterministic and ignores it.
	Seed int64 `yaml:"seed"`

	LogLevel string `yaml:"log_level"`

	// DefaultPriority names the devs.Priority new user events are scheduled
	// at when a caller doesn't pick one explicitly: "high", "default", or
	// "low".
	DefaultPriority string `yaml:"default_priority"`

	Metrics MetricsConfig `yaml:"metrics"`
}

// MetricsConfig controls the optional Prometheus instrumentation layer.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`

	// DumpPath, if set, is where the final text-exposition snapshot is
	// written when the run completes. Empty means the snapshot is printed
	// to stdout, not written to disk.
	DumpPath string `yaml:"dump_path"`
}
