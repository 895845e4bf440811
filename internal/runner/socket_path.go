package runner

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	dockerClient "github.com/docker/docker/client"

	"github.com/mdnishan/reportcron/internal/types"
	"github.com/mdnishan/reportcron/pkg/logger"
)

// Get default Docker socket path based on OS
func getDefaultSocketPath() string {
	if runtime.GOOS == "windows" {
		// Docker Desktop usually uses a named pipe
		return "npipe:////./pipe/docker_engine"
	}
	// Linux and macOS path
	return "unix:///var/run/docker.sock"
}

func newDockerClient(cfg *types.DockerConfig, log logger.Logger) (*dockerClient.Client, error) {
	host := cfg.SocketPath
	if host == "" {
		host = getDefaultSocketPath()
	} else if !strings.Contains(host, "://") {
		host = "unix://" + host
	}

	cli, err := dockerClient.NewClientWithOpts(
		dockerClient.WithHost(host),
		dockerClient.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}

	// Test connection
	if _, err := cli.Ping(context.Background()); err != nil {
		cli.Close()
		log.Warn("Docker connection test failed: %s", err)
		log.Info("Trying alternative Docker socket paths...")
		return tryAlternativeSocketPaths()
	}

	return cli, nil
}

// Try alternative socket paths
func tryAlternativeSocketPaths() (*dockerClient.Client, error) {
	alternativePaths := []string{
		// Windows paths
		"npipe:////./pipe/docker_engine",
		"unix://" + `\\wsl$\docker-desktop-data\version-pack-data\community\docker\docker.sock`,

		// Linux/macOS paths
		"unix:///var/run/docker.sock",
	}

	var lastErr error
	for _, path := range alternativePaths {
		cli, err := dockerClient.NewClientWithOpts(
			dockerClient.WithHost(path),
			dockerClient.WithAPIVersionNegotiation(),
		)
		if err != nil {
			lastErr = err
			continue
		}

		// Test connection
		if _, err := cli.Ping(context.Background()); err != nil {
			cli.Close()
			lastErr = err
			continue
		}

		return cli, nil
	}

	return nil, fmt.Errorf("failed to connect to Docker using any socket path. Last error: %w", lastErr)
}
