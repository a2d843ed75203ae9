package reconciliation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/project-ledger/backend/internal/application/adapter"
)

// GetPendingUseCase lists the projects waiting for a recompute.
type GetPendingUseCase struct {
	queue adapter.ReconcileQueue
}

// NewGetPendingUseCase creates a new GetPendingUseCase instance.
func NewGetPendingUseCase(queue adapter.ReconcileQueue) *GetPendingUseCase {
	return &GetPendingUseCase{
		queue: queue,
	}
}

// Execute returns the queued project ids.
func (uc *GetPendingUseCase) Execute(ctx context.Context) ([]uuid.UUID, error) {
	ids, err := uc.queue.Pending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending reconciliations: %w", err)
	}
	return ids, nil
}

// DrainQueueOutput represents one pass over the reconcile queue.
type DrainQueueOutput struct {
	Processed int
	Failed    int
}

// DrainQueueUseCase recomputes every queued project. Failed ids stay queued
// for the next pass.
type DrainQueueUseCase struct {
	queue      adapter.ReconcileQueue
	recomputer Recomputer
}

// NewDrainQueueUseCase creates a new DrainQueueUseCase instance.
func NewDrainQueueUseCase(queue adapter.ReconcileQueue, recomputer Recomputer) *DrainQueueUseCase {
	return &DrainQueueUseCase{
		queue:      queue,
		recomputer: recomputer,
	}
}

// Execute performs one pass.
func (uc *DrainQueueUseCase) Execute(ctx context.Context) (*DrainQueueOutput, error) {
	ids, err := uc.queue.Pending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending reconciliations: %w", err)
	}

	output := &DrainQueueOutput{}
	for _, id := range ids {
		if ctx.Err() != nil {
			break
		}

		if _, err := recomputeQueued(ctx, uc.queue, uc.recomputer, id); err != nil && !isNotFound(err) {
			slog.Warn("Queued recompute failed", "project_id", id, "error", err)
			output.Failed++
			continue
		}
		output.Processed++
	}
	return output, nil
}
