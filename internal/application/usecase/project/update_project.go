package project

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/project-ledger/backend/internal/application/adapter"
	"github.com/project-ledger/backend/internal/domain/entity"
	domainerror "github.com/project-ledger/backend/internal/domain/error"
)

// UpdateProjectInput represents the input for project update. Nil fields are
// left unchanged. There is deliberately no paid amount field.
type UpdateProjectInput struct {
	ProjectID      uuid.UUID
	Name           *string
	Partner        *string
	Status         *entity.ProjectStatus
	Value          *decimal.Decimal
	TaxRate        *int
	StartDate      *time.Time
	EndDate        *time.Time
	ContractNumber *string
	Description    *string
	Actor          entity.Principal
}

// UpdateProjectOutput represents the output of project update.
type UpdateProjectOutput struct {
	Project *entity.Project
}

// UpdateProjectUseCase handles project update logic.
type UpdateProjectUseCase struct {
	projectRepo adapter.ProjectRepository
}

// NewUpdateProjectUseCase creates a new UpdateProjectUseCase instance.
func NewUpdateProjectUseCase(projectRepo adapter.ProjectRepository) *UpdateProjectUseCase {
	return &UpdateProjectUseCase{
		projectRepo: projectRepo,
	}
}

// Execute performs the project update.
func (uc *UpdateProjectUseCase) Execute(ctx context.Context, input UpdateProjectInput) (*UpdateProjectOutput, error) {
	project, err := findProject(ctx, uc.projectRepo, input.ProjectID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		project.Name = strings.TrimSpace(*input.Name)
	}
	if input.Partner != nil {
		project.Partner = strings.TrimSpace(*input.Partner)
	}
	if input.Status != nil {
		project.Status = *input.Status
	}
	if input.Value != nil {
		project.Value = *input.Value
	}
	if input.TaxRate != nil {
		project.TaxRate = *input.TaxRate
	}
	if input.StartDate != nil {
		project.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		project.EndDate = *input.EndDate
	}
	if input.ContractNumber != nil {
		project.ContractNumber = strings.TrimSpace(*input.ContractNumber)
	}
	if input.Description != nil {
		project.Description = *input.Description
	}

	if err := ValidateProject(project); err != nil {
		return nil, err
	}

	project.Audit.Touch(input.Actor)
	project.UpdatedAt = time.Now().UTC()

	if err := uc.projectRepo.Update(ctx, project); err != nil {
		if errors.Is(err, domainerror.ErrProjectNotFound) {
			return nil, projectNotFound()
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return &UpdateProjectOutput{Project: project}, nil
}

func findProject(ctx context.Context, repo adapter.ProjectRepository, id uuid.UUID) (*entity.Project, error) {
	project, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrProjectNotFound) {
			return nil, projectNotFound()
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

func projectNotFound() error {
	return domainerror.NewProjectError(
		domainerror.ErrCodeProjectNotFound,
		"project not found",
		domainerror.ErrProjectNotFound,
	)
}
