package runner

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mdnishan/reportcron/internal/types"
	"github.com/mdnishan/reportcron/pkg/logger"
)

// Runner executes one job to completion: provision an execution
// environment, attempt the dependency install, bind the secret into the
// child environment and run the script, reporting its exit code.
//
// A run that never reaches the script (provisioning or secret failure)
// returns a nil Result. A run whose script exits non-zero returns both
// the Result and a *ScriptExecutionError carrying the code.
type Runner interface {
	Run(ctx context.Context, job types.JobConfig) (*Result, error)
}

// Result is the outcome of one completed script execution.
type Result struct {
	Job       string        `json:"job"`
	ExitCode  int           `json:"exit_code"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// Failed reports whether the script exited non-zero.
func (r *Result) Failed() bool {
	return r.ExitCode != 0
}

// New builds the runner selected by the configuration mode.
func New(cfg *types.RunnerConfig, log logger.Logger) (Runner, error) {
	switch cfg.Mode {
	case "", types.RunnerModeHost:
		return NewHostRunner(cfg, log), nil
	case types.RunnerModeDocker:
		return NewDockerRunner(cfg, log)
	default:
		return nil, fmt.Errorf("unknown runner mode: %q", cfg.Mode)
	}
}

// childEnv builds the base environment for the host child process:
// the daemon's own environment plus the job's static env entries.
func childEnv(job types.JobConfig) []string {
	env := os.Environ()
	for k, v := range job.Env {
		env = append(env, k+"="+v)
	}
	return env
}
