package signals

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mdnishan/reportcron/pkg/logger"
)

type Handler struct {
	logger logger.Logger
}

func NewHandler(logger logger.Logger) *Handler {
	return &Handler{logger: logger}
}

// Handle blocks until the context is cancelled or a terminating signal
// arrives. SIGUSR1 invokes triggerFunc (manual run) and keeps waiting;
// SIGTERM, SIGINT and SIGHUP invoke shutdownFunc and return.
func (h *Handler) Handle(ctx context.Context, shutdownFunc func(), triggerFunc func()) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP, syscall.SIGUSR1)
	defer signal.Stop(sigChan)

	for {
		select {
		case <-ctx.Done():
			h.logger.Info("Signal handler context cancelled")
			return
		case sig := <-sigChan:
			if sig == syscall.SIGUSR1 {
				h.logger.Info("Received signal %s, triggering manual run", sig)
				if triggerFunc != nil {
					triggerFunc()
				}
				continue
			}

			h.logger.Info("Received signal %s", sig)
			shutdownFunc()
			return
		}
	}
}
