// Package reconciliation contains use cases that rebuild project paid amounts
// from their income transactions.
package reconciliation

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/project-ledger/backend/internal/application/adapter"
	"github.com/project-ledger/backend/internal/domain/entity"
	domainerror "github.com/project-ledger/backend/internal/domain/error"
)

// Recomputer rebuilds a project's paid amount. Implemented by ledger.Engine.
type Recomputer interface {
	RecomputeProjectBalance(ctx context.Context, projectID uuid.UUID) (*entity.RecomputeResult, error)
}

// RecomputeProjectOutput represents the outcome of recomputing one project.
type RecomputeProjectOutput struct {
	Result *entity.RecomputeResult
}

// RecomputeProjectUseCase handles an on-demand recompute of one project.
type RecomputeProjectUseCase struct {
	recomputer Recomputer
	queue      adapter.ReconcileQueue
}

// NewRecomputeProjectUseCase creates a new RecomputeProjectUseCase instance.
func NewRecomputeProjectUseCase(recomputer Recomputer, queue adapter.ReconcileQueue) *RecomputeProjectUseCase {
	return &RecomputeProjectUseCase{
		recomputer: recomputer,
		queue:      queue,
	}
}

// Execute recomputes the project and drops it from the queue if it was pending.
// A failed recompute leaves the project queued.
func (uc *RecomputeProjectUseCase) Execute(ctx context.Context, projectID uuid.UUID) (*RecomputeProjectOutput, error) {
	var (
		result *entity.RecomputeResult
		err    error
	)
	if uc.queue != nil {
		result, err = recomputeQueued(ctx, uc.queue, uc.recomputer, projectID)
	} else {
		result, err = uc.recomputer.RecomputeProjectBalance(ctx, projectID)
	}
	if err != nil {
		return nil, err
	}

	return &RecomputeProjectOutput{Result: result}, nil
}

// recomputeQueued takes the project off the queue before recomputing it and
// puts it back if the recompute fails. An enqueue that lands after the take
// stays queued, because the recompute may have read the project before that
// write finished.
func recomputeQueued(ctx context.Context, queue adapter.ReconcileQueue, recomputer Recomputer, projectID uuid.UUID) (*entity.RecomputeResult, error) {
	if err := queue.Remove(ctx, projectID); err != nil {
		slog.Warn("Failed to dequeue project before recompute", "project_id", projectID, "error", err)
	}

	result, err := recomputer.RecomputeProjectBalance(ctx, projectID)
	if err != nil && !isNotFound(err) {
		if requeueErr := queue.Enqueue(context.WithoutCancel(ctx), projectID); requeueErr != nil {
			slog.Error("Failed to requeue project after failed recompute",
				"project_id", projectID,
				"error", requeueErr,
			)
		}
	}
	return result, err
}

func isNotFound(err error) bool {
	return errors.Is(err, domainerror.ErrProjectNotFound)
}
