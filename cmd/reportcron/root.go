package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mdnishan/reportcron/internal/config"
	"github.com/mdnishan/reportcron/internal/types"
	"github.com/mdnishan/reportcron/pkg/logger"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "reportcron",
		Short: "Scheduled runner for report scripts",
		Long: `reportcron runs report scripts on a cron schedule, provisioning a
python environment per run, installing the dependency manifest on a
best-effort basis and binding one secret into the script's environment.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newServeCmd(),
		newRunCmd(),
		newConfigCmd(),
	)

	return root
}

// setup is the shared startup sequence: load configuration, then build
// the logger from it.
func setup() (*types.Config, logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logCfg := cfg.Logger
	if cfg.LogLevel != "" {
		logCfg.Level = cfg.LogLevel
	}

	return cfg, logger.NewWithConfig(&logCfg), nil
}
