package reconciliation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/project-ledger/backend/internal/application/adapter"
	"github.com/project-ledger/backend/internal/domain/entity"
)

// RunReconciliationOutput represents the outcome of checking every project.
type RunReconciliationOutput struct {
	Checked int
	Drifted []*entity.RecomputeResult
	Failed  []uuid.UUID
}

// RunReconciliationUseCase recomputes every project and reports the ones whose
// stored paid amount was wrong.
type RunReconciliationUseCase struct {
	projectRepo adapter.ProjectRepository
	recomputer  Recomputer
}

// NewRunReconciliationUseCase creates a new RunReconciliationUseCase instance.
func NewRunReconciliationUseCase(projectRepo adapter.ProjectRepository, recomputer Recomputer) *RunReconciliationUseCase {
	return &RunReconciliationUseCase{
		projectRepo: projectRepo,
		recomputer:  recomputer,
	}
}

// Execute recomputes all projects. A failure on one project does not stop the run.
func (uc *RunReconciliationUseCase) Execute(ctx context.Context) (*RunReconciliationOutput, error) {
	projects, err := uc.projectRepo.FindAll(ctx, entity.ProjectFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	output := &RunReconciliationOutput{
		Drifted: []*entity.RecomputeResult{},
		Failed:  []uuid.UUID{},
	}
	for _, project := range projects {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := uc.recomputer.RecomputeProjectBalance(ctx, project.ID)
		if err != nil {
			if isNotFound(err) {
				// Deleted since the listing.
				continue
			}
			slog.Error("Failed to recompute project", "project_id", project.ID, "error", err)
			output.Failed = append(output.Failed, project.ID)
			continue
		}

		output.Checked++
		if result.Drifted() {
			output.Drifted = append(output.Drifted, result)
		}
	}

	slog.Info("Reconciliation run finished",
		"checked", output.Checked,
		"drifted", len(output.Drifted),
		"failed", len(output.Failed),
	)
	return output, nil
}
