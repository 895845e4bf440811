package config

import (
	"fmt"

	"github.com/mdnishan/reportcron/internal/types"
)

// Validate checks the invariants the rest of the system relies on:
// named jobs with a script, unique names, a well-formed secret
// reference and a known runner mode. Schedule expressions are checked
// by the worker at registration.
func Validate(cfg *types.Config) error {
	switch cfg.Runner.Mode {
	case "", types.RunnerModeHost, types.RunnerModeDocker:
	default:
		return fmt.Errorf("runner.mode must be %q or %q, got %q",
			types.RunnerModeHost, types.RunnerModeDocker, cfg.Runner.Mode)
	}

	seen := make(map[string]bool, len(cfg.Jobs))
	for i, job := range cfg.Jobs {
		if job.Name == "" {
			return fmt.Errorf("jobs[%d]: name is required", i)
		}
		if seen[job.Name] {
			return fmt.Errorf("duplicate job name: %s", job.Name)
		}
		seen[job.Name] = true

		if job.Script == "" {
			return fmt.Errorf("job %s: script is required", job.Name)
		}

		if err := validateSecret(job.Secret); err != nil {
			return fmt.Errorf("job %s: %w", job.Name, err)
		}
	}

	return nil
}

func validateSecret(ref types.SecretRef) error {
	if ref.IsZero() {
		return nil
	}
	if ref.Name == "" {
		return fmt.Errorf("secret has a source but no target variable name")
	}
	if ref.FromEnv == "" && ref.FromFile == "" {
		return fmt.Errorf("secret %s has no source (from_env or from_file)", ref.Name)
	}
	if ref.FromEnv != "" && ref.FromFile != "" {
		return fmt.Errorf("secret %s has both from_env and from_file set", ref.Name)
	}
	return nil
}
