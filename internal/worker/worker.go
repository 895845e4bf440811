package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mdnishan/reportcron/internal/runner"
	"github.com/mdnishan/reportcron/internal/types"
	"github.com/mdnishan/reportcron/pkg/logger"
)

// cronParser supports standard 5-field cron and descriptors like "@daily".
var cronParser = cron.NewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ValidateSchedule checks a cron expression without registering it.
func ValidateSchedule(expr string) error {
	_, err := cronParser.Parse(expr)
	return err
}

// Worker owns the cron table and the single execution path used by
// both schedule ticks and manual triggers.
type Worker struct {
	config   *types.Config
	logger   logger.Logger
	runner   runner.Runner
	cron     *cron.Cron
	entries  map[string]cron.EntryID
	shutdown chan struct{}
	stopOnce sync.Once
	// ctx is written once in Start, before RegisterJobs and
	// cron.Start; cron closures read it only after the scheduler is
	// running. Keep that order.
	ctx context.Context
	mu  sync.RWMutex
}

func New(cfg *types.Config, logger logger.Logger, r runner.Runner) *Worker {
	return &Worker{
		config: cfg,
		logger: logger,
		runner: r,
		cron: cron.New(
			cron.WithParser(cronParser),
			cron.WithLocation(time.UTC),
		),
		entries:  make(map[string]cron.EntryID),
		shutdown: make(chan struct{}),
		ctx:      context.Background(),
	}
}

// RegisterJobs adds every configured job with a schedule to the cron
// table. Invalid expressions are rejected here, not at tick time.
func (w *Worker) RegisterJobs() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, job := range w.config.Jobs {
		if job.CronExpr == "" {
			w.logger.Debug("Job %s has no schedule, manual trigger only", job.Name)
			continue
		}

		id, err := w.cron.AddFunc(job.CronExpr, func() {
			w.execute(w.ctx, job)
		})
		if err != nil {
			return fmt.Errorf("invalid schedule %q for job %s: %w", job.CronExpr, job.Name, err)
		}

		w.entries[job.Name] = id
		w.logger.Info("Registered job %s with schedule %q", job.Name, job.CronExpr)
	}

	return nil
}

// execute is the single execution path: schedule ticks, SIGUSR1 and
// the run command all end up here.
func (w *Worker) execute(ctx context.Context, job types.JobConfig) *runner.Result {
	log := w.logger.WithField("job", job.Name)
	log.Info("Run started")

	result, err := w.runner.Run(logger.WithLogger(ctx, log), job)
	if err != nil {
		log.Error("Run failed: %s", err)
		if result == nil {
			result = &runner.Result{Job: job.Name, ExitCode: -1}
		}
		return result
	}

	log.Info("Run completed in %s", result.Duration.Round(time.Millisecond))
	return result
}

// Trigger runs one job immediately, outside its schedule.
func (w *Worker) Trigger(ctx context.Context, name string) (*runner.Result, error) {
	job, ok := w.findJob(name)
	if !ok {
		return nil, fmt.Errorf("unknown job: %s", name)
	}
	return w.execute(ctx, job), nil
}

// TriggerAll runs every configured job immediately, in config order.
func (w *Worker) TriggerAll(ctx context.Context) []*runner.Result {
	results := make([]*runner.Result, 0, len(w.config.Jobs))
	for _, job := range w.config.Jobs {
		results = append(results, w.execute(ctx, job))
	}
	return results
}

func (w *Worker) findJob(name string) (types.JobConfig, bool) {
	for _, job := range w.config.Jobs {
		if job.Name == name {
			return job, true
		}
	}
	return types.JobConfig{}, false
}

func (w *Worker) Start(ctx context.Context, wg *sync.WaitGroup) error {
	w.logger.Info("Starting worker")
	w.ctx = ctx

	if err := w.RegisterJobs(); err != nil {
		return err
	}
	if len(w.entries) == 0 {
		w.logger.Warn("No scheduled jobs registered, waiting for manual triggers only")
	}

	wg.Add(1)
	go w.runCron(ctx, wg)

	return nil
}

func (w *Worker) Stop() error {
	w.logger.Info("Stopping worker")
	w.stopOnce.Do(func() {
		close(w.shutdown)
	})
	return nil
}
