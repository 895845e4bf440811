package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mdnishan/reportcron/internal/runner"
	"github.com/mdnishan/reportcron/internal/worker"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [job...]",
		Short: "Trigger jobs immediately",
		Long:  "Run the named jobs (or all configured jobs) once, outside their schedule, and exit with the worst script exit code.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer log.Sync()

			r, err := runner.New(&cfg.Runner, log)
			if err != nil {
				return err
			}
			if closer, ok := r.(io.Closer); ok {
				defer closer.Close()
			}

			w := worker.New(cfg, log, r)
			ctx := cmd.Context()

			var results []*runner.Result
			if len(args) == 0 {
				results = w.TriggerAll(ctx)
			} else {
				for _, name := range args {
					result, err := w.Trigger(ctx, name)
					if err != nil {
						return err
					}
					results = append(results, result)
				}
			}

			if code := worstExitCode(results); code != 0 {
				log.Sync()
				os.Exit(code)
			}
			return nil
		},
	}
}

// worstExitCode reduces the results to a single shell exit code: the
// maximum script exit code, with -1 (never produced one) counted as 1.
func worstExitCode(results []*runner.Result) int {
	worst := 0
	for _, result := range results {
		code := result.ExitCode
		if code < 0 {
			code = 1
		}
		if code > worst {
			worst = code
		}
	}
	return worst
}
