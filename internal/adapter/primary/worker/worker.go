package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/papermint/fulfillment/internal/port/primary"
)

// Worker periodically surfaces fulfillment records stuck in the failed state
// so operators can follow them up. It respects context cancellation for
// graceful shutdown.
type Worker struct {
	service      primary.FulfillmentService
	pollInterval time.Duration
	logger       *zap.Logger
}

// NewWorker creates a Worker that reports failed sessions at the given interval.
func NewWorker(
	service primary.FulfillmentService,
	pollInterval time.Duration,
	logger *zap.Logger,
) *Worker {
	return &Worker{
		service:      service,
		pollInterval: pollInterval,
		logger:       logger.Named("worker"),
	}
}

// Run starts the reporting loop. It blocks until the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	w.logger.Info("worker started",
		zap.Duration("poll_interval", w.pollInterval),
	)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("worker shutting down")
			return ctx.Err()
		case <-ticker.C:
			if err := w.service.ReportFailedSessions(ctx); err != nil {
				// Log but do not return -- the worker should keep running.
				w.logger.Error("error reporting failed sessions", zap.Error(err))
			}
		}
	}
}
