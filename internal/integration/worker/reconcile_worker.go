// Package worker contains the background loops that keep ledger data healthy.
package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/project-ledger/backend/internal/application/usecase/reconciliation"
)

// QueueDrainer performs one pass over the reconcile queue.
type QueueDrainer interface {
	Execute(ctx context.Context) (*reconciliation.DrainQueueOutput, error)
}

// ReconcileWorker periodically recomputes the projects waiting in the reconcile queue.
type ReconcileWorker struct {
	drainer      QueueDrainer
	pollInterval time.Duration
}

// NewReconcileWorker creates a new reconcile worker.
func NewReconcileWorker(drainer QueueDrainer, pollInterval time.Duration) *ReconcileWorker {
	if pollInterval <= 0 {
		pollInterval = 30 * time.Second
	}
	return &ReconcileWorker{
		drainer:      drainer,
		pollInterval: pollInterval,
	}
}

// Start begins the worker loop. It blocks until the context is cancelled.
func (w *ReconcileWorker) Start(ctx context.Context) {
	slog.Info("Reconcile worker started", "poll_interval", w.pollInterval)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.ProcessNow(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Reconcile worker shutting down")
			return
		case <-ticker.C:
			w.ProcessNow(ctx)
		}
	}
}

// ProcessNow drains the queue once.
func (w *ReconcileWorker) ProcessNow(ctx context.Context) {
	out, err := w.drainer.Execute(ctx)
	if err != nil {
		slog.Error("Failed to drain reconcile queue", "error", err)
		return
	}
	if out.Processed > 0 || out.Failed > 0 {
		slog.Info("Reconcile queue drained",
			"processed", out.Processed,
			"failed", out.Failed,
		)
	}
}
