package worker

import (
	"context"
	"sync"
)

func (w *Worker) runCron(ctx context.Context, wg *sync.WaitGroup) {
	defer w.logger.Debug("cron worker | stopped")
	defer wg.Done()
	defer w.cleanupCron()

	// Start cron scheduler
	w.cron.Start()
	w.logger.Debug("cron worker | cron scheduler started")
	w.logNextRuns()

	// Wait for shutdown
	select {
	case <-ctx.Done():
		w.logger.Debug("cron worker | received context cancellation")
		return
	case <-w.shutdown:
		w.logger.Debug("cron worker | received shutdown signal")
		return
	}
}

func (w *Worker) cleanupCron() {
	w.logger.Debug("cron worker | cleanup")
	// Stop returns a context that closes once running jobs finish
	<-w.cron.Stop().Done()
}

func (w *Worker) logNextRuns() {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for name, id := range w.entries {
		w.logger.Info("Job %s next run at %s", name, w.cron.Entry(id).Next.Format("2006-01-02 15:04:05 MST"))
	}
}
