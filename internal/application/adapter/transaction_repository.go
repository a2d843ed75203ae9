// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/project-ledger/backend/internal/domain/entity"
)

// TransactionPagination defines pagination options.
type TransactionPagination struct {
	Page  int
	Limit int
}

// TransactionRepository defines the interface for transaction persistence operations.
// It never touches project balances; balance changes go through the ledger engine.
type TransactionRepository interface {
	// Create creates a new transaction in the database.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByFilter retrieves transactions based on filter criteria with pagination,
	// newest first.
	FindByFilter(ctx context.Context, filter entity.TransactionFilter, pagination TransactionPagination) (*entity.TransactionListResult, error)

	// FindAll retrieves every transaction matching the filter, newest first.
	FindAll(ctx context.Context, filter entity.TransactionFilter) ([]*entity.Transaction, error)

	// FindByProject retrieves all transactions of a project, newest first.
	FindByProject(ctx context.Context, projectID uuid.UUID) ([]*entity.Transaction, error)

	// FindRecent retrieves the latest transactions across all projects.
	FindRecent(ctx context.Context, limit int) ([]*entity.Transaction, error)

	// Update overwrites a transaction only if its stored ledger state still matches
	// expected. Returns domainerror.ErrTransactionChanged otherwise.
	Update(ctx context.Context, transaction *entity.Transaction, expected *entity.Transaction) error

	// Delete removes a transaction only if its stored ledger state still matches
	// expected. Returns domainerror.ErrTransactionChanged otherwise.
	Delete(ctx context.Context, expected *entity.Transaction) error

	// SumIncomeByProject returns the sum of INCOME amounts for a project.
	SumIncomeByProject(ctx context.Context, projectID uuid.UUID) (decimal.Decimal, error)
}
