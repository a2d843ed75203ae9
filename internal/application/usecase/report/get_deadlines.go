package report

import (
	"context"
	"fmt"
	"time"

	"github.com/project-ledger/backend/internal/application/adapter"
	"github.com/project-ledger/backend/internal/domain/entity"
)

// GetDeadlinesInput represents the input for listing project deadlines.
type GetDeadlinesInput struct {
	Today      time.Time
	WindowDays int
}

// GetDeadlinesOutput lists upcoming and overdue ongoing projects.
type GetDeadlinesOutput struct {
	WindowDays int
	Upcoming   []ProjectDeadline
	Overdue    []ProjectDeadline
}

// GetDeadlinesUseCase handles listing project deadlines.
type GetDeadlinesUseCase struct {
	projectRepo adapter.ProjectRepository
}

// NewGetDeadlinesUseCase creates a new GetDeadlinesUseCase instance.
func NewGetDeadlinesUseCase(projectRepo adapter.ProjectRepository) *GetDeadlinesUseCase {
	return &GetDeadlinesUseCase{projectRepo: projectRepo}
}

// Execute lists ongoing projects that are due soon or overdue.
func (uc *GetDeadlinesUseCase) Execute(ctx context.Context, input GetDeadlinesInput) (*GetDeadlinesOutput, error) {
	if input.Today.IsZero() {
		input.Today = time.Now()
	}
	if input.WindowDays <= 0 {
		input.WindowDays = DeadlineWarningDays
	}

	status := entity.ProjectStatusOngoing
	projects, err := uc.projectRepo.FindAll(ctx, entity.ProjectFilter{Status: &status})
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	return &GetDeadlinesOutput{
		WindowDays: input.WindowDays,
		Upcoming:   UpcomingDeadlines(projects, input.Today, input.WindowDays),
		Overdue:    OverdueProjects(projects, input.Today),
	}, nil
}
