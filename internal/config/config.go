// config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/viper"

	"github.com/mdnishan/reportcron/internal/types"
)

// Default configuration values
var defaultConfig = types.Config{
	AppName:     "reportcron",
	Environment: "development",
	LogLevel:    "info",
	Runner: types.RunnerConfig{
		Mode: types.RunnerModeHost,
		Docker: types.DockerConfig{
			SocketPath:  "",
			PullTimeout: 5 * time.Minute,
		},
	},
	Shutdown: types.ShutdownConfig{
		Timeout: 30 * time.Second,
	},
	Logger: types.LoggerConfig{
		Level:           "info",
		Format:          "text",
		Output:          "stdout",
		FilePath:        "",
		TimestampFormat: "2006-01-02 15:04:05.000",
		ShowCaller:      false,
		Colors:          true,
	},
}

// getSystemConfigPath returns the OS-specific configuration directory
func getSystemConfigPath() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		// Windows: %PROGRAMDATA%\reportcron
		programData := os.Getenv("PROGRAMDATA")
		if programData == "" {
			programData = "C:\\ProgramData"
		}
		configDir = filepath.Join(programData, "reportcron")

	case "darwin":
		// macOS: /Library/Application Support/reportcron
		configDir = "/Library/Application Support/reportcron"

	case "linux", "freebsd", "openbsd", "netbsd":
		// Unix-like: /etc/reportcron
		configDir = "/etc/reportcron"

	default:
		return "", fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}

	return configDir, nil
}

// getConfigPaths returns all possible configuration file paths in order of precedence
func getConfigPaths() ([]string, error) {
	systemConfigDir, err := getSystemConfigPath()
	if err != nil {
		return nil, err
	}

	// Configuration search paths in order of precedence (first found wins):
	paths := []string{}

	// 1. Current directory (for development and testing)
	paths = append(paths, "reportcrond.yaml")

	// 2. User's home directory (~/.config/reportcron/)
	if home, err := os.UserHomeDir(); err == nil {
		userConfigDir := filepath.Join(home, ".config", "reportcron")
		paths = append(paths, filepath.Join(userConfigDir, "reportcrond.yaml"))
	}

	// 3. System-wide configuration directory
	paths = append(paths, filepath.Join(systemConfigDir, "reportcrond.yaml"))

	return paths, nil
}

// Load loads configuration from file, environment variables, or defaults
func Load() (*types.Config, error) {
	v := viper.New()
	v.SetConfigName("reportcrond") // Name of config file (without extension)
	v.SetConfigType("yaml")

	// Set default values
	v.SetDefault("app_name", defaultConfig.AppName)
	v.SetDefault("environment", defaultConfig.Environment)
	v.SetDefault("log_level", defaultConfig.LogLevel)
	v.SetDefault("runner.mode", defaultConfig.Runner.Mode)
	v.SetDefault("runner.docker.socket_path", defaultConfig.Runner.Docker.SocketPath)
	v.SetDefault("runner.docker.pull_timeout", defaultConfig.Runner.Docker.PullTimeout)
	v.SetDefault("shutdown.timeout", defaultConfig.Shutdown.Timeout)
	v.SetDefault("logger.level", defaultConfig.Logger.Level)
	v.SetDefault("logger.format", defaultConfig.Logger.Format)
	v.SetDefault("logger.output", defaultConfig.Logger.Output)
	v.SetDefault("logger.timestamp_format", defaultConfig.Logger.TimestampFormat)
	v.SetDefault("logger.colors", defaultConfig.Logger.Colors)

	// Add configuration paths
	configPaths, err := getConfigPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to get config paths: %w", err)
	}

	for _, path := range configPaths {
		v.AddConfigPath(filepath.Dir(path))
	}

	// Try to read configuration file
	if err := v.ReadInConfig(); err != nil {
		// If file doesn't exist, we'll use defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Bind environment variables
	v.SetEnvPrefix("REPORTCRON") // Environment variables will be prefixed with REPORTCRON_
	v.AutomaticEnv()             // Automatically override config with environment variables

	// Unmarshal configuration into struct
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// GetSystemConfigDir returns the system-wide configuration directory
func GetSystemConfigDir() (string, error) {
	return getSystemConfigPath()
}

// CreateDefaultConfig creates a default configuration file in the system config directory
func CreateDefaultConfig() error {
	systemConfigDir, err := getSystemConfigPath()
	if err != nil {
		return err
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(systemConfigDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(systemConfigDir, "reportcrond.yaml")

	// Check if file already exists
	if _, err := os.Stat(configPath); err == nil {
		return errors.New("config file already exists")
	}

	if err := os.WriteFile(configPath, []byte(DEFAULT_CONFIG_YAML), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
