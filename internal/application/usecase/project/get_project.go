package project

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/project-ledger/backend/internal/application/adapter"
	"github.com/project-ledger/backend/internal/application/usecase/report"
	"github.com/project-ledger/backend/internal/domain/entity"
)

// GetProjectOutput represents a project with its transactions and figures.
type GetProjectOutput struct {
	Project      *entity.Project
	Transactions []*entity.Transaction
	Stats        report.ProjectStatistics
}

// GetProjectUseCase handles retrieving a single project.
type GetProjectUseCase struct {
	projectRepo     adapter.ProjectRepository
	transactionRepo adapter.TransactionRepository
}

// NewGetProjectUseCase creates a new GetProjectUseCase instance.
func NewGetProjectUseCase(
	projectRepo adapter.ProjectRepository,
	transactionRepo adapter.TransactionRepository,
) *GetProjectUseCase {
	return &GetProjectUseCase{
		projectRepo:     projectRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute retrieves the project, newest transactions first.
func (uc *GetProjectUseCase) Execute(ctx context.Context, id uuid.UUID) (*GetProjectOutput, error) {
	project, err := findProject(ctx, uc.projectRepo, id)
	if err != nil {
		return nil, err
	}

	transactions, err := uc.transactionRepo.FindByProject(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list project transactions: %w", err)
	}

	return &GetProjectOutput{
		Project:      project,
		Transactions: transactions,
		Stats:        report.ProjectStats(project, transactions),
	}, nil
}
