package types

import "time"

// Runner execution modes
const (
	RunnerModeHost   = "host"
	RunnerModeDocker = "docker"
)

type RunnerConfig struct {
	// Mode selects the provisioner: "host" or "docker".
	Mode string `mapstructure:"mode"`

	// Interpreter overrides the runtime-version lookup in host mode.
	Interpreter string `mapstructure:"interpreter"`

	Docker DockerConfig `mapstructure:"docker"`
}

// DockerConfig for the container provisioner
type DockerConfig struct {
	SocketPath string `mapstructure:"socket_path"`

	// Image overrides the python:<runtime>-slim image derived from the
	// job's runtime version.
	Image string `mapstructure:"image"`

	PullTimeout time.Duration `mapstructure:"pull_timeout"`
}
