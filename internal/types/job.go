package types

// JobConfig describes one scheduled script job.
type JobConfig struct {
	Name     string `mapstructure:"name"`
	CronExpr string `mapstructure:"schedule"`
	Script   string `mapstructure:"script"`

	// Runtime is the interpreter version the job expects, e.g. "3.11".
	// Host mode resolves it to a pythonX.Y binary, docker mode to a
	// python:X.Y-slim image.
	Runtime string `mapstructure:"runtime"`

	// Requirements is the dependency manifest path, relative to the
	// script directory unless absolute. Optional: a missing manifest
	// skips the install step.
	Requirements string `mapstructure:"requirements"`

	WorkDir string            `mapstructure:"work_dir"`
	Env     map[string]string `mapstructure:"env"`
	Secret  SecretRef         `mapstructure:"secret"`
}

// SecretRef points at a secret value held outside the config file.
// The value is resolved per run, bound into the child environment
// under Name, and discarded when the run ends.
type SecretRef struct {
	Name     string `mapstructure:"name"`
	FromEnv  string `mapstructure:"from_env"`
	FromFile string `mapstructure:"from_file"`
}

// IsZero reports whether no secret is configured for the job.
func (s SecretRef) IsZero() bool {
	return s.Name == "" && s.FromEnv == "" && s.FromFile == ""
}
