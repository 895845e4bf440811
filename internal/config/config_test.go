package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdnishan/reportcron/internal/types"
)

// chdir changes into dir for the duration of the test, restoring the
// previous working directory on cleanup. (t.Chdir requires Go 1.24+.)
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(prev)
	})
}

func TestLoad_DefaultsWithoutConfigFile(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "reportcron", cfg.AppName)
	assert.Equal(t, types.RunnerModeHost, cfg.Runner.Mode)
	assert.Equal(t, 30*time.Second, cfg.Shutdown.Timeout)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Empty(t, cfg.Jobs)
}

func TestLoad_ReadsConfigFileFromCwd(t *testing.T) {
	dir := t.TempDir()
	content := `
app_name: "reportcron"
log_level: "debug"

runner:
  mode: "docker"
  docker:
    pull_timeout: 90s

jobs:
  - name: "morning-report"
    schedule: "30 3 * * *"
    script: "MorningReport.py"
    runtime: "3.11"
    requirements: "requirements.txt"
    secret:
      name: "GEMINI_API_KEY"
      from_env: "GEMINI_API_KEY"

shutdown:
  timeout: 45s
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "reportcrond.yaml"), []byte(content), 0644))
	chdir(t, dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, types.RunnerModeDocker, cfg.Runner.Mode)
	assert.Equal(t, 90*time.Second, cfg.Runner.Docker.PullTimeout)
	assert.Equal(t, 45*time.Second, cfg.Shutdown.Timeout)

	require.Len(t, cfg.Jobs, 1)
	job := cfg.Jobs[0]
	assert.Equal(t, "morning-report", job.Name)
	assert.Equal(t, "30 3 * * *", job.CronExpr)
	assert.Equal(t, "MorningReport.py", job.Script)
	assert.Equal(t, "3.11", job.Runtime)
	assert.Equal(t, "GEMINI_API_KEY", job.Secret.Name)
	assert.Equal(t, "GEMINI_API_KEY", job.Secret.FromEnv)
}

func TestLoad_EnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("REPORTCRON_LOG_LEVEL", "error")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoad_DefaultShipsValidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "reportcrond.yaml"), []byte(DEFAULT_CONFIG_YAML), 0644))
	chdir(t, dir)

	cfg, err := Load()
	require.NoError(t, err)

	require.Len(t, cfg.Jobs, 1)
	assert.Equal(t, "morning-report", cfg.Jobs[0].Name)
	assert.Equal(t, "30 3 * * *", cfg.Jobs[0].CronExpr)
	assert.Equal(t, 60*time.Second, cfg.Shutdown.Timeout)
}

func TestValidate(t *testing.T) {
	okJob := types.JobConfig{Name: "a", Script: "a.py"}

	tests := []struct {
		name    string
		cfg     types.Config
		wantErr string
	}{
		{
			name: "valid",
			cfg:  types.Config{Jobs: []types.JobConfig{okJob}},
		},
		{
			name:    "unknown runner mode",
			cfg:     types.Config{Runner: types.RunnerConfig{Mode: "vm"}},
			wantErr: "runner.mode",
		},
		{
			name:    "missing job name",
			cfg:     types.Config{Jobs: []types.JobConfig{{Script: "x.py"}}},
			wantErr: "name is required",
		},
		{
			name: "duplicate job name",
			cfg: types.Config{Jobs: []types.JobConfig{
				okJob,
				{Name: "a", Script: "b.py"},
			}},
			wantErr: "duplicate job name",
		},
		{
			name:    "missing script",
			cfg:     types.Config{Jobs: []types.JobConfig{{Name: "a"}}},
			wantErr: "script is required",
		},
		{
			name: "secret without name",
			cfg: types.Config{Jobs: []types.JobConfig{
				{Name: "a", Script: "a.py", Secret: types.SecretRef{FromEnv: "X"}},
			}},
			wantErr: "no target variable name",
		},
		{
			name: "secret with two sources",
			cfg: types.Config{Jobs: []types.JobConfig{
				{Name: "a", Script: "a.py", Secret: types.SecretRef{Name: "K", FromEnv: "X", FromFile: "/f"}},
			}},
			wantErr: "both from_env and from_file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
