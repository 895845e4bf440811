package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/mdnishan/reportcron/internal/types"
	"github.com/mdnishan/reportcron/pkg/logger"
)

// HostRunner executes jobs with an interpreter installed on the host.
type HostRunner struct {
	cfg    *types.RunnerConfig
	logger logger.Logger
}

func NewHostRunner(cfg *types.RunnerConfig, logger logger.Logger) *HostRunner {
	return &HostRunner{
		cfg:    cfg,
		logger: logger,
	}
}

func (h *HostRunner) Run(ctx context.Context, job types.JobConfig) (*Result, error) {
	log := logger.FromContextOr(ctx, h.logger)

	interp, err := h.lookupInterpreter(job)
	if err != nil {
		return nil, err
	}
	log.Debug("Using interpreter %s", interp)

	env, err := secretEnv(job.Secret)
	if err != nil {
		return nil, &ProvisioningError{Op: "secret resolution", Err: err}
	}

	h.installDependencies(ctx, log, interp, job)

	start := time.Now()
	cmd := exec.CommandContext(ctx, interp, job.Script)
	cmd.Dir = job.WorkDir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(childEnv(job), env...)

	err = cmd.Run()
	result := &Result{
		Job:       job.Name,
		StartedAt: start,
		Duration:  time.Since(start),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, &ScriptExecutionError{Job: job.Name, ExitCode: result.ExitCode}
		}
		// Process never started (missing script, permissions, ...)
		return nil, &ScriptExecutionError{Job: job.Name, ExitCode: -1, Err: err}
	}

	return result, nil
}

// lookupInterpreter resolves the interpreter binary for the job's
// runtime version. A configured interpreter always wins.
func (h *HostRunner) lookupInterpreter(job types.JobConfig) (string, error) {
	var candidates []string
	switch {
	case h.cfg.Interpreter != "":
		candidates = []string{h.cfg.Interpreter}
	case job.Runtime != "":
		candidates = []string{"python" + job.Runtime, "python3"}
	default:
		candidates = []string{"python3", "python"}
	}

	for _, candidate := range candidates {
		if path, err := exec.LookPath(candidate); err == nil {
			return path, nil
		}
	}

	return "", &ProvisioningError{
		Op:  "interpreter lookup",
		Err: fmt.Errorf("no interpreter found among %v", candidates),
	}
}

// installDependencies attempts a pip install from the job manifest.
// Failures are logged and swallowed: the run proceeds either way.
func (h *HostRunner) installDependencies(ctx context.Context, log logger.Logger, interp string, job types.JobConfig) {
	manifest := manifestPath(job)
	if manifest == "" {
		log.Debug("No dependency manifest configured, skipping install")
		return
	}

	if _, err := os.Stat(manifest); err != nil {
		log.Info("No requirements file at %s, skipping dependency install", manifest)
		return
	}

	log.Info("Installing dependencies from %s", manifest)
	cmd := exec.CommandContext(ctx, interp, "-m", "pip", "install", "--quiet", "-r", manifest)
	cmd.Dir = job.WorkDir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		instErr := &DependencyInstallError{Manifest: manifest, Err: err}
		log.Warn("%s, continuing without install", instErr)
	}
}

// manifestPath resolves the manifest relative to the job working
// directory, falling back to the script's directory.
func manifestPath(job types.JobConfig) string {
	manifest := job.Requirements
	if manifest == "" {
		return ""
	}
	if filepath.IsAbs(manifest) {
		return manifest
	}
	if job.WorkDir != "" {
		return filepath.Join(job.WorkDir, manifest)
	}
	return filepath.Join(filepath.Dir(job.Script), manifest)
}
