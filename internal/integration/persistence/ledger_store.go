package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/project-ledger/backend/internal/application/adapter"
	"github.com/project-ledger/backend/internal/domain/entity"
	domainerror "github.com/project-ledger/backend/internal/domain/error"
	"github.com/project-ledger/backend/internal/integration/persistence/model"
)

// ledgerStore implements the adapter.LedgerStore interface. Each method runs
// in one database transaction, so a failed adjustment rolls back the row write.
type ledgerStore struct {
	db *gorm.DB
}

// NewLedgerStore creates a new ledger store instance.
func NewLedgerStore(db *gorm.DB) adapter.LedgerStore {
	return &ledgerStore{
		db: db,
	}
}

// CreateWithAdjustments inserts the transaction and applies the adjustments.
func (s *ledgerStore) CreateWithAdjustments(ctx context.Context, transaction *entity.Transaction, adjustments []entity.BalanceAdjustment) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := createTransaction(tx, model.TransactionFromEntity(transaction)); err != nil {
			return err
		}
		return applyAdjustments(tx, adjustments)
	})
}

// UpdateWithAdjustments overwrites the transaction if it still matches previous
// and applies the adjustments.
func (s *ledgerStore) UpdateWithAdjustments(ctx context.Context, previous, next *entity.Transaction, adjustments []entity.BalanceAdjustment) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := updateTransactionGuarded(tx, next, previous); err != nil {
			return err
		}
		return applyAdjustments(tx, adjustments)
	})
}

// DeleteWithAdjustments removes the transaction if it still matches previous
// and applies the adjustments.
func (s *ledgerStore) DeleteWithAdjustments(ctx context.Context, previous *entity.Transaction, adjustments []entity.BalanceAdjustment) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteTransactionGuarded(tx, previous); err != nil {
			return err
		}
		return applyAdjustments(tx, adjustments)
	})
}

// RecomputePaidAmount sums the project's INCOME transactions and overwrites paid_amount.
// On PostgreSQL the project row is locked for the duration of the transaction.
func (s *ledgerStore) RecomputePaidAmount(ctx context.Context, projectID uuid.UUID) (*entity.RecomputeResult, error) {
	var recomputed *entity.RecomputeResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Where("id = ?", projectID)
		if tx.Dialector.Name() == "postgres" {
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var projectModel model.ProjectModel
		if err := query.First(&projectModel).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerror.ErrProjectNotFound
			}
			return fmt.Errorf("failed to load project: %w", err)
		}

		total, err := sumIncome(tx, projectID)
		if err != nil {
			return err
		}

		recomputed = &entity.RecomputeResult{
			ProjectID:  projectID,
			Previous:   projectModel.PaidAmount,
			PaidAmount: total,
		}
		if !recomputed.Drifted() {
			return nil
		}

		result := tx.Model(&model.ProjectModel{}).
			Where("id = ?", projectID).
			Updates(map[string]any{
				"paid_amount": total,
				"updated_at":  time.Now().UTC(),
			})
		if result.Error != nil {
			return fmt.Errorf("failed to set paid amount: %w", result.Error)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recomputed, nil
}

func applyAdjustments(tx *gorm.DB, adjustments []entity.BalanceAdjustment) error {
	for _, adj := range adjustments {
		if err := adjustPaidAmount(tx, adj.ProjectID, adj.Delta); err != nil {
			return err
		}
	}
	return nil
}
