package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/project-ledger/backend/internal/domain/entity"
)

// LedgerStore writes a transaction together with its balance adjustments in a
// single database transaction. Either everything commits or nothing does.
type LedgerStore interface {
	// CreateWithAdjustments inserts the transaction and applies the adjustments.
	CreateWithAdjustments(ctx context.Context, transaction *entity.Transaction, adjustments []entity.BalanceAdjustment) error

	// UpdateWithAdjustments overwrites the transaction, guarded on the stored row
	// still matching previous, and applies the adjustments.
	UpdateWithAdjustments(ctx context.Context, previous, next *entity.Transaction, adjustments []entity.BalanceAdjustment) error

	// DeleteWithAdjustments removes the transaction, guarded on the stored row
	// still matching previous, and applies the adjustments.
	DeleteWithAdjustments(ctx context.Context, previous *entity.Transaction, adjustments []entity.BalanceAdjustment) error

	// RecomputePaidAmount rebuilds a project's paid amount from its INCOME
	// transactions under a consistent snapshot.
	RecomputePaidAmount(ctx context.Context, projectID uuid.UUID) (*entity.RecomputeResult, error)
}
