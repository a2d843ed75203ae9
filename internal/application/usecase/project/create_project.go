// Package project contains project-related use cases.
package project

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/project-ledger/backend/internal/application/adapter"
	"github.com/project-ledger/backend/internal/domain/entity"
	domainerror "github.com/project-ledger/backend/internal/domain/error"
)

// CreateProjectInput represents the input for project creation.
type CreateProjectInput struct {
	Name           string
	Partner        string
	Status         entity.ProjectStatus
	Value          decimal.Decimal
	TaxRate        int
	StartDate      time.Time
	EndDate        time.Time
	ContractNumber string
	Description    string
	Actor          entity.Principal
}

// CreateProjectOutput represents the output of project creation.
type CreateProjectOutput struct {
	Project *entity.Project
}

// CreateProjectUseCase handles project creation logic.
type CreateProjectUseCase struct {
	projectRepo adapter.ProjectRepository
}

// NewCreateProjectUseCase creates a new CreateProjectUseCase instance.
func NewCreateProjectUseCase(projectRepo adapter.ProjectRepository) *CreateProjectUseCase {
	return &CreateProjectUseCase{
		projectRepo: projectRepo,
	}
}

// Execute performs the project creation. The paid amount always starts at zero.
func (uc *CreateProjectUseCase) Execute(ctx context.Context, input CreateProjectInput) (*CreateProjectOutput, error) {
	project := entity.NewProject(
		strings.TrimSpace(input.Name),
		strings.TrimSpace(input.Partner),
		input.Status,
		input.Value,
		input.TaxRate,
		input.StartDate,
		input.EndDate,
		strings.TrimSpace(input.ContractNumber),
		input.Description,
		input.Actor,
	)

	if err := ValidateProject(project); err != nil {
		return nil, err
	}

	if err := uc.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	slog.Info("Project created",
		"project_id", project.ID,
		"created_by", input.Actor.Email,
	)

	return &CreateProjectOutput{Project: project}, nil
}

// ValidateProject checks the editable fields of a project.
func ValidateProject(p *entity.Project) error {
	if p.Name == "" {
		return domainerror.NewProjectError(
			domainerror.ErrCodeMissingProjectName,
			"project name is required",
			domainerror.ErrMissingProjectName,
		)
	}

	if p.Partner == "" {
		return domainerror.NewProjectError(
			domainerror.ErrCodeMissingPartner,
			"project partner is required",
			domainerror.ErrMissingPartner,
		)
	}

	if !p.Status.IsValid() {
		return domainerror.NewProjectError(
			domainerror.ErrCodeInvalidProjectStatus,
			"status must be one of 'akan-datang', 'ongoing', 'retensi' or 'selesai'",
			domainerror.ErrInvalidProjectStatus,
		)
	}

	if !entity.IsAllowedTaxRate(p.TaxRate) {
		return domainerror.NewProjectError(
			domainerror.ErrCodeInvalidTaxRate,
			fmt.Sprintf("tax rate must be one of %v", entity.AllowedTaxRates),
			domainerror.ErrInvalidTaxRate,
		)
	}

	if p.Value.IsNegative() {
		return domainerror.NewProjectError(
			domainerror.ErrCodeNegativeProjectValue,
			"project value must not be negative",
			domainerror.ErrNegativeProjectValue,
		)
	}

	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		return domainerror.NewProjectError(
			domainerror.ErrCodeMissingProjectFields,
			"start date and end date are required",
			domainerror.ErrInvalidDateRange,
		)
	}

	if p.EndDate.Before(p.StartDate) {
		return domainerror.NewProjectError(
			domainerror.ErrCodeInvalidDateRange,
			"end date must not be before start date",
			domainerror.ErrInvalidDateRange,
		)
	}

	return nil
}
