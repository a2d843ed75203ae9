package report

import (
	"context"
	"fmt"
	"time"

	"github.com/project-ledger/backend/internal/application/adapter"
	"github.com/project-ledger/backend/internal/domain/entity"
)

// DefaultRecentLimit is the number of recent transactions shown on the dashboard.
const DefaultRecentLimit = 5

// GetDashboardInput represents the input for building the dashboard.
type GetDashboardInput struct {
	Today       time.Time
	WindowDays  int
	RecentLimit int
}

// MonthRow is one entry of the monthly chart, in chronological order.
type MonthRow struct {
	Month string
	MonthTotals
}

// GetDashboardOutput represents the dashboard figures.
type GetDashboardOutput struct {
	Totals     Totals
	Projects   PortfolioTotals
	Months     []MonthRow
	Categories []CategoryTotals
	Upcoming   []ProjectDeadline
	Overdue    []ProjectDeadline
	Recent     []*entity.Transaction
}

// GetDashboardUseCase handles building the dashboard.
type GetDashboardUseCase struct {
	projectRepo     adapter.ProjectRepository
	transactionRepo adapter.TransactionRepository
}

// NewGetDashboardUseCase creates a new GetDashboardUseCase instance.
func NewGetDashboardUseCase(
	projectRepo adapter.ProjectRepository,
	transactionRepo adapter.TransactionRepository,
) *GetDashboardUseCase {
	return &GetDashboardUseCase{
		projectRepo:     projectRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute loads one snapshot of projects and transactions and aggregates it.
func (uc *GetDashboardUseCase) Execute(ctx context.Context, input GetDashboardInput) (*GetDashboardOutput, error) {
	if input.Today.IsZero() {
		input.Today = time.Now()
	}
	if input.WindowDays <= 0 {
		input.WindowDays = DeadlineWarningDays
	}
	if input.RecentLimit <= 0 {
		input.RecentLimit = DefaultRecentLimit
	}

	projects, err := uc.projectRepo.FindAll(ctx, entity.ProjectFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	transactions, err := uc.transactionRepo.FindAll(ctx, entity.TransactionFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	breakdown := MonthlyBreakdown(transactions)
	months := make([]MonthRow, 0, len(breakdown))
	for _, key := range SortedMonths(breakdown) {
		months = append(months, MonthRow{Month: key, MonthTotals: breakdown[key]})
	}

	return &GetDashboardOutput{
		Totals:     TransactionTotals(transactions),
		Projects:   ProjectTotals(projects),
		Months:     months,
		Categories: CategoryBreakdown(transactions),
		Upcoming:   UpcomingDeadlines(projects, input.Today, input.WindowDays),
		Overdue:    OverdueProjects(projects, input.Today),
		Recent:     RecentTransactions(transactions, input.RecentLimit),
	}, nil
}
