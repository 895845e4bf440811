package app

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/mdnishan/reportcron/internal/runner"
	"github.com/mdnishan/reportcron/internal/signals"
	"github.com/mdnishan/reportcron/internal/types"
	"github.com/mdnishan/reportcron/internal/worker"
	"github.com/mdnishan/reportcron/pkg/logger"
	"github.com/mdnishan/reportcron/pkg/shutdown"
)

type App struct {
	config        *types.Config
	logger        logger.Logger
	runner        runner.Runner
	worker        *worker.Worker
	shutdown      *shutdown.Manager
	signalHandler *signals.Handler
	wg            sync.WaitGroup
}

func New(cfg *types.Config, logger logger.Logger) (*App, error) {
	r, err := runner.New(&cfg.Runner, logger)
	if err != nil {
		return nil, err
	}

	a := &App{
		config:        cfg,
		logger:        logger,
		runner:        r,
		worker:        worker.New(cfg, logger, r),
		shutdown:      shutdown.NewManager(logger),
		signalHandler: signals.NewHandler(logger),
	}
	a.shutdown.SetTimeout(cfg.Shutdown.Timeout)

	return a, nil
}

func (a *App) Run() error {
	a.logger.Info("Starting reportcron (%s)", a.config.Environment)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start signal handler: terminating signals initiate shutdown,
	// SIGUSR1 fires a manual run of every job.
	go a.signalHandler.Handle(ctx, func() {
		a.logger.Info("Received shutdown signal")
		a.shutdown.Initiate()
	}, func() {
		go a.worker.TriggerAll(ctx)
	})

	// Register cleanup tasks
	a.shutdown.RegisterTask("worker", a.worker.Stop)
	if closer, ok := a.runner.(io.Closer); ok {
		a.shutdown.RegisterTask("runner", closer.Close)
	}

	// Start worker
	if err := a.worker.Start(ctx, &a.wg); err != nil {
		return err
	}

	// Wait for shutdown and run the cleanup tasks
	if err := a.shutdown.Wait(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	cancel()
	a.wg.Wait()

	a.logger.Info("Application shutdown complete")
	return nil
}
