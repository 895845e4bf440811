package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	dockerTypes "github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	dockerClient "github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"

	"github.com/mdnishan/reportcron/internal/types"
	"github.com/mdnishan/reportcron/pkg/logger"
)

const containerWorkdir = "/app"

// DockerRunner provisions a fresh python container per run. The script
// directory is bind-mounted read-write at /app and the container is
// removed when the run ends, so nothing is shared between runs.
type DockerRunner struct {
	client *dockerClient.Client
	cfg    *types.RunnerConfig
	logger logger.Logger
}

func NewDockerRunner(cfg *types.RunnerConfig, logger logger.Logger) (*DockerRunner, error) {
	cli, err := newDockerClient(&cfg.Docker, logger)
	if err != nil {
		return nil, &ProvisioningError{Op: "docker client", Err: err}
	}

	return &DockerRunner{
		client: cli,
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Close releases the docker client connection.
func (d *DockerRunner) Close() error {
	return d.client.Close()
}

func (d *DockerRunner) Run(ctx context.Context, job types.JobConfig) (*Result, error) {
	log := logger.FromContextOr(ctx, d.logger)

	env, err := secretEnv(job.Secret)
	if err != nil {
		return nil, &ProvisioningError{Op: "secret resolution", Err: err}
	}
	for k, v := range job.Env {
		env = append(env, k+"="+v)
	}

	image := d.imageFor(job)
	if err := d.pullImage(ctx, image); err != nil {
		return nil, &ProvisioningError{Op: "image pull " + image, Err: err}
	}

	scriptPath := job.Script
	if !filepath.IsAbs(scriptPath) && job.WorkDir != "" {
		scriptPath = filepath.Join(job.WorkDir, scriptPath)
	}
	scriptPath, err = filepath.Abs(scriptPath)
	if err != nil {
		return nil, &ProvisioningError{Op: "script path", Err: err}
	}
	scriptDir := filepath.Dir(scriptPath)

	containerCfg := &container.Config{
		Image:      image,
		Cmd:        []string{"/bin/sh", "-c", d.containerCommand(log, scriptDir, filepath.Base(scriptPath), job)},
		Env:        env,
		WorkingDir: containerWorkdir,
	}
	hostCfg := &container.HostConfig{
		Binds: []string{scriptDir + ":" + containerWorkdir},
	}

	created, err := d.client.ContainerCreate(ctx, containerCfg, hostCfg, nil, nil, "")
	if err != nil {
		return nil, &ProvisioningError{Op: "container create", Err: err}
	}
	defer d.removeContainer(created.ID)

	start := time.Now()
	if err := d.client.ContainerStart(ctx, created.ID, container.StartOptions{}); err != nil {
		return nil, &ProvisioningError{Op: "container start", Err: err}
	}
	log.Debug("Container %s started with image %s", created.ID[:12], image)

	go d.streamLogs(ctx, created.ID, log)

	waitCh, errCh := d.client.ContainerWait(ctx, created.ID, container.WaitConditionNotRunning)
	select {
	case status := <-waitCh:
		result := &Result{
			Job:       job.Name,
			ExitCode:  int(status.StatusCode),
			StartedAt: start,
			Duration:  time.Since(start),
		}
		if result.ExitCode != 0 {
			return result, &ScriptExecutionError{Job: job.Name, ExitCode: result.ExitCode}
		}
		return result, nil

	case err := <-errCh:
		return nil, &ScriptExecutionError{Job: job.Name, ExitCode: -1, Err: err}

	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// imageFor picks the container image: an explicit override, or the
// python image matching the job's runtime version.
func (d *DockerRunner) imageFor(job types.JobConfig) string {
	if d.cfg.Docker.Image != "" {
		return d.cfg.Docker.Image
	}
	if job.Runtime != "" {
		return "python:" + job.Runtime + "-slim"
	}
	return "python:3-slim"
}

func (d *DockerRunner) pullImage(ctx context.Context, image string) error {
	if d.cfg.Docker.PullTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.cfg.Docker.PullTimeout)
		defer cancel()
	}

	rc, err := d.client.ImagePull(ctx, image, dockerTypes.ImagePullOptions{})
	if err != nil {
		return err
	}
	defer rc.Close()

	// The pull completes when the progress stream drains
	_, err = io.Copy(io.Discard, rc)
	return err
}

// containerCommand builds the in-container shell line: a best-effort
// pip install when the manifest exists, then the script itself.
func (d *DockerRunner) containerCommand(log logger.Logger, scriptDir, scriptName string, job types.JobConfig) string {
	run := "exec python " + shellQuote(scriptName)

	manifest := job.Requirements
	if manifest == "" {
		return run
	}
	if filepath.IsAbs(manifest) {
		log.Warn("Absolute manifest path %s is not visible inside the container, skipping dependency install", manifest)
		return run
	}
	if _, err := os.Stat(filepath.Join(scriptDir, manifest)); err != nil {
		log.Info("No requirements file at %s, skipping dependency install", filepath.Join(scriptDir, manifest))
		return run
	}

	install := fmt.Sprintf(
		"python -m pip install --quiet -r %s || echo 'reportcron: dependency install failed, continuing' >&2",
		shellQuote(manifest),
	)
	return install + "; " + run
}

func (d *DockerRunner) streamLogs(ctx context.Context, containerID string, log logger.Logger) {
	rc, err := d.client.ContainerLogs(ctx, containerID, container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Follow:     true,
	})
	if err != nil {
		log.Warn("Failed to attach container logs: %s", err)
		return
	}
	defer rc.Close()

	if _, err := stdcopy.StdCopy(os.Stdout, os.Stderr, rc); err != nil && ctx.Err() == nil {
		log.Debug("Container log stream ended: %s", err)
	}
}

func (d *DockerRunner) removeContainer(containerID string) {
	err := d.client.ContainerRemove(context.Background(), containerID, container.RemoveOptions{Force: true})
	if err != nil {
		d.logger.Warn("Failed to remove container %s: %s", containerID[:12], err)
	}
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
