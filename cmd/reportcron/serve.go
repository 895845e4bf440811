package main

import (
	"github.com/spf13/cobra"

	"github.com/mdnishan/reportcron/internal/app"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the scheduler daemon",
		Long:  "Run the daemon: registered jobs fire on their cron schedule, SIGUSR1 triggers a manual run of every job.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer log.Sync()

			application, err := app.New(cfg, log)
			if err != nil {
				return err
			}

			return application.Run()
		},
	}
}
