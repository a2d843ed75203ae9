package project

import (
	"context"
	"fmt"

	"github.com/project-ledger/backend/internal/application/adapter"
	"github.com/project-ledger/backend/internal/application/usecase/report"
	"github.com/project-ledger/backend/internal/domain/entity"
	domainerror "github.com/project-ledger/backend/internal/domain/error"
)

// ListProjectsInput represents the input for listing projects.
type ListProjectsInput struct {
	Status *entity.ProjectStatus
}

// ProjectSummary is a list entry with its progress.
type ProjectSummary struct {
	Project  *entity.Project
	Progress int
}

// ListProjectsOutput represents the output of listing projects.
type ListProjectsOutput struct {
	Projects []ProjectSummary
}

// ListProjectsUseCase handles listing projects.
type ListProjectsUseCase struct {
	projectRepo adapter.ProjectRepository
}

// NewListProjectsUseCase creates a new ListProjectsUseCase instance.
func NewListProjectsUseCase(projectRepo adapter.ProjectRepository) *ListProjectsUseCase {
	return &ListProjectsUseCase{
		projectRepo: projectRepo,
	}
}

// Execute lists projects, newest first.
func (uc *ListProjectsUseCase) Execute(ctx context.Context, input ListProjectsInput) (*ListProjectsOutput, error) {
	if input.Status != nil && !input.Status.IsValid() {
		return nil, domainerror.NewProjectError(
			domainerror.ErrCodeInvalidProjectStatus,
			"status must be one of 'akan-datang', 'ongoing', 'retensi' or 'selesai'",
			domainerror.ErrInvalidProjectStatus,
		)
	}

	projects, err := uc.projectRepo.FindAll(ctx, entity.ProjectFilter{Status: input.Status})
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	summaries := make([]ProjectSummary, 0, len(projects))
	for _, p := range projects {
		summaries = append(summaries, ProjectSummary{Project: p, Progress: report.ProjectProgress(p)})
	}

	return &ListProjectsOutput{Projects: summaries}, nil
}
