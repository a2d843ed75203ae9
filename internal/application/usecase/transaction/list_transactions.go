package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/project-ledger/backend/internal/application/adapter"
	"github.com/project-ledger/backend/internal/domain/entity"
	domainerror "github.com/project-ledger/backend/internal/domain/error"
)

const (
	// DefaultPageLimit is used when no limit is requested.
	DefaultPageLimit = 20
	// MaxPageLimit caps the page size.
	MaxPageLimit = 100
	// DefaultRecentLimit is the default number of recent transactions.
	DefaultRecentLimit = 5
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	ProjectID *uuid.UUID
	Type      *entity.TransactionType
	Category  string
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Transactions []*entity.Transaction
	Page         int
	Limit        int
	Total        int64
	TotalPages   int
}

// ListTransactionsUseCase handles listing transactions.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute lists a page of transactions, newest first.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	if input.Type != nil && !input.Type.IsValid() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionType,
		)
	}

	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 {
		input.Limit = DefaultPageLimit
	}
	if input.Limit > MaxPageLimit {
		input.Limit = MaxPageLimit
	}

	result, err := uc.transactionRepo.FindByFilter(ctx, entity.TransactionFilter{
		ProjectID: input.ProjectID,
		Type:      input.Type,
		Category:  input.Category,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	}, adapter.TransactionPagination{
		Page:  input.Page,
		Limit: input.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &ListTransactionsOutput{
		Transactions: result.Transactions,
		Page:         result.Page,
		Limit:        result.Limit,
		Total:        result.Total,
		TotalPages:   result.TotalPages,
	}, nil
}

// ListRecentTransactionsUseCase handles listing the latest transactions.
type ListRecentTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListRecentTransactionsUseCase creates a new ListRecentTransactionsUseCase instance.
func NewListRecentTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ListRecentTransactionsUseCase {
	return &ListRecentTransactionsUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute returns up to limit transactions across all projects.
func (uc *ListRecentTransactionsUseCase) Execute(ctx context.Context, limit int) ([]*entity.Transaction, error) {
	if limit < 1 {
		limit = DefaultRecentLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	transactions, err := uc.transactionRepo.FindRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent transactions: %w", err)
	}
	return transactions, nil
}
