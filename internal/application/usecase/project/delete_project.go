package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/project-ledger/backend/internal/application/adapter"
	domainerror "github.com/project-ledger/backend/internal/domain/error"
)

// DeleteProjectOutput represents the output of project deletion.
type DeleteProjectOutput struct {
	DeletedTransactions int
	OrphanedImages      int
}

// DeleteProjectUseCase handles deleting a project with all of its transactions.
type DeleteProjectUseCase struct {
	projectRepo adapter.ProjectRepository
	storage     adapter.BlobStorage
	queue       adapter.ReconcileQueue
}

// NewDeleteProjectUseCase creates a new DeleteProjectUseCase instance. storage
// and queue may be nil.
func NewDeleteProjectUseCase(
	projectRepo adapter.ProjectRepository,
	storage adapter.BlobStorage,
	queue adapter.ReconcileQueue,
) *DeleteProjectUseCase {
	return &DeleteProjectUseCase{
		projectRepo: projectRepo,
		storage:     storage,
		queue:       queue,
	}
}

// Execute removes the project and its transactions in one database transaction,
// then deletes evidence images. Image cleanup failures are logged, not returned.
func (uc *DeleteProjectUseCase) Execute(ctx context.Context, id uuid.UUID) (*DeleteProjectOutput, error) {
	deleted, err := uc.projectRepo.DeleteCascade(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrProjectNotFound) {
			return nil, projectNotFound()
		}
		return nil, fmt.Errorf("failed to delete project: %w", err)
	}

	output := &DeleteProjectOutput{DeletedTransactions: len(deleted)}

	if uc.queue != nil {
		if err := uc.queue.Remove(ctx, id); err != nil {
			slog.Warn("Failed to drop deleted project from reconcile queue", "project_id", id, "error", err)
		}
	}

	if uc.storage == nil {
		return output, nil
	}

	for _, t := range deleted {
		if t.ImagePath == "" {
			continue
		}
		if err := uc.storage.Delete(context.WithoutCancel(ctx), t.ImagePath); err != nil {
			output.OrphanedImages++
			slog.Warn("Failed to delete evidence image",
				"project_id", id,
				"transaction_id", t.ID,
				"path", t.ImagePath,
				"error", err,
			)
		}
	}

	slog.Info("Project deleted",
		"project_id", id,
		"transactions", output.DeletedTransactions,
		"orphaned_images", output.OrphanedImages,
	)
	return output, nil
}
