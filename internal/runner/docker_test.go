package runner

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdnishan/reportcron/internal/types"
	"github.com/mdnishan/reportcron/pkg/logger"
)

// newTestDockerRunner builds a runner for the pure helpers that never
// touch the docker daemon.
func newTestDockerRunner(docker types.DockerConfig) *DockerRunner {
	return &DockerRunner{
		cfg:    &types.RunnerConfig{Mode: types.RunnerModeDocker, Docker: docker},
		logger: logger.NewNullLogger(),
	}
}

func TestDockerRunner_ImageFor(t *testing.T) {
	tests := []struct {
		name     string
		docker   types.DockerConfig
		job      types.JobConfig
		expected string
	}{
		{
			name:     "explicit image override wins",
			docker:   types.DockerConfig{Image: "registry.local/python:custom"},
			job:      types.JobConfig{Runtime: "3.11"},
			expected: "registry.local/python:custom",
		},
		{
			name:     "runtime version maps to slim image",
			job:      types.JobConfig{Runtime: "3.11"},
			expected: "python:3.11-slim",
		},
		{
			name:     "no runtime falls back to python 3",
			job:      types.JobConfig{},
			expected: "python:3-slim",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDockerRunner(tt.docker)
			assert.Equal(t, tt.expected, d.imageFor(tt.job))
		})
	}
}

func TestDockerRunner_ContainerCommand_NoManifest(t *testing.T) {
	d := newTestDockerRunner(types.DockerConfig{})

	cmd := d.containerCommand(logger.NewNullLogger(), t.TempDir(), "MorningReport.py", types.JobConfig{
		Name:   "morning-report",
		Script: "MorningReport.py",
	})

	assert.Equal(t, "exec python 'MorningReport.py'", cmd)
}

func TestDockerRunner_ContainerCommand_MissingManifestSkipsInstall(t *testing.T) {
	d := newTestDockerRunner(types.DockerConfig{})

	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, "DEBUG")

	cmd := d.containerCommand(log, t.TempDir(), "MorningReport.py", types.JobConfig{
		Name:         "morning-report",
		Script:       "MorningReport.py",
		Requirements: "requirements.txt",
	})

	assert.Equal(t, "exec python 'MorningReport.py'", cmd)
	assert.Contains(t, buf.String(), "No requirements file")
}

func TestDockerRunner_ContainerCommand_InstallIsBestEffort(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "requirements.txt"), []byte("requests\n"), 0644))

	d := newTestDockerRunner(types.DockerConfig{})
	cmd := d.containerCommand(logger.NewNullLogger(), dir, "MorningReport.py", types.JobConfig{
		Name:         "morning-report",
		Script:       "MorningReport.py",
		Requirements: "requirements.txt",
	})

	// The install chain must swallow failures and still exec the script
	assert.Contains(t, cmd, "python -m pip install --quiet -r 'requirements.txt'")
	assert.Contains(t, cmd, "|| echo 'reportcron: dependency install failed, continuing' >&2")
	assert.Contains(t, cmd, "; exec python 'MorningReport.py'")
}

func TestDockerRunner_ContainerCommand_AbsoluteManifestIsSkipped(t *testing.T) {
	d := newTestDockerRunner(types.DockerConfig{})

	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, "DEBUG")

	cmd := d.containerCommand(log, t.TempDir(), "MorningReport.py", types.JobConfig{
		Name:         "morning-report",
		Script:       "MorningReport.py",
		Requirements: "/opt/elsewhere/requirements.txt",
	})

	assert.Equal(t, "exec python 'MorningReport.py'", cmd)
	assert.Contains(t, buf.String(), "not visible inside the container")
}

func TestShellQuote(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"MorningReport.py", "'MorningReport.py'"},
		{"with space.py", "'with space.py'"},
		{"it's.py", `'it'\''s.py'`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, shellQuote(tt.input))
		})
	}
}
