package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/project-ledger/backend/internal/application/adapter"
	"github.com/project-ledger/backend/internal/domain/entity"
	domainerror "github.com/project-ledger/backend/internal/domain/error"
)

// GetDateRangeInput represents the input for totals over a date range.
type GetDateRangeInput struct {
	StartDate time.Time
	EndDate   time.Time
	ProjectID *uuid.UUID
}

// GetDateRangeOutput represents totals over a date range. The end day is included.
type GetDateRangeOutput struct {
	StartDate    time.Time
	EndDate      time.Time
	Totals       Totals
	Categories   []CategoryTotals
	Transactions []*entity.Transaction
}

// GetDateRangeUseCase handles totals over a date range.
type GetDateRangeUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewGetDateRangeUseCase creates a new GetDateRangeUseCase instance.
func NewGetDateRangeUseCase(transactionRepo adapter.TransactionRepository) *GetDateRangeUseCase {
	return &GetDateRangeUseCase{transactionRepo: transactionRepo}
}

// Execute totals the transactions dated from the start of StartDate to the end of EndDate.
func (uc *GetDateRangeUseCase) Execute(ctx context.Context, input GetDateRangeInput) (*GetDateRangeOutput, error) {
	if err := validateRange(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	from, until := DayBounds(input.StartDate, input.EndDate)
	transactions, err := uc.transactionRepo.FindAll(ctx, entity.TransactionFilter{
		ProjectID: input.ProjectID,
		StartDate: &from,
		EndDate:   &until,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	// The store filter is inclusive at until, which is midnight of the next day.
	transactions = InDateRange(transactions, input.StartDate, input.EndDate)

	return &GetDateRangeOutput{
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		Totals:       TransactionTotals(transactions),
		Categories:   CategoryBreakdown(transactions),
		Transactions: transactions,
	}, nil
}

func validateRange(start, end time.Time) error {
	if start.IsZero() {
		return domainerror.NewReportError(
			domainerror.ErrCodeMissingStartDate,
			"start_date is required",
			domainerror.ErrMissingStartDate,
		)
	}

	if end.IsZero() {
		return domainerror.NewReportError(
			domainerror.ErrCodeMissingEndDate,
			"end_date is required",
			domainerror.ErrMissingEndDate,
		)
	}

	if end.Before(start) {
		return domainerror.NewReportError(
			domainerror.ErrCodeInvalidReportRange,
			"end_date must be after start_date",
			domainerror.ErrInvalidReportRange,
		)
	}
	return nil
}
