package runner

import (
	"fmt"
	"os"
	"strings"

	"github.com/mdnishan/reportcron/internal/types"
)

// ResolveSecret reads the secret value referenced by the job config.
// The value lives only on the call stack of one run; error messages
// name the reference, never the value.
func ResolveSecret(ref types.SecretRef) (string, error) {
	if ref.IsZero() {
		return "", nil
	}

	if ref.Name == "" {
		return "", fmt.Errorf("secret has a source but no target variable name")
	}

	switch {
	case ref.FromEnv != "" && ref.FromFile != "":
		return "", fmt.Errorf("secret %s has both from_env and from_file set", ref.Name)

	case ref.FromEnv != "":
		value, ok := os.LookupEnv(ref.FromEnv)
		if !ok {
			return "", fmt.Errorf("secret %s: environment variable %s is not set", ref.Name, ref.FromEnv)
		}
		return value, nil

	case ref.FromFile != "":
		data, err := os.ReadFile(ref.FromFile)
		if err != nil {
			return "", fmt.Errorf("secret %s: %w", ref.Name, err)
		}
		return strings.TrimRight(string(data), "\r\n"), nil

	default:
		return "", fmt.Errorf("secret %s has no source (from_env or from_file)", ref.Name)
	}
}

// secretEnv returns the environment entry binding the job secret, or
// nil when the job has none.
func secretEnv(ref types.SecretRef) ([]string, error) {
	value, err := ResolveSecret(ref)
	if err != nil {
		return nil, err
	}
	if value == "" {
		return nil, nil
	}
	return []string{ref.Name + "=" + value}, nil
}
