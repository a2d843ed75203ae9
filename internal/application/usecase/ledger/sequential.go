package ledger

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/project-ledger/backend/internal/domain/entity"
	domainerror "github.com/project-ledger/backend/internal/domain/error"
)

// createSequential inserts the row, then applies the increment. A failed
// increment is compensated by deleting the row again.
func (e *Engine) createSequential(ctx context.Context, t *entity.Transaction, adjustments []entity.BalanceAdjustment) error {
	if err := e.transactionRepo.Create(ctx, t); err != nil {
		if errors.Is(err, domainerror.ErrProjectNotFound) {
			return projectNotFound()
		}
		return domainerror.NewTransientError("failed to create transaction", err)
	}

	for _, adj := range adjustments {
		err := e.projectRepo.AdjustPaidAmount(ctx, adj.ProjectID, adj.Delta)
		if err == nil {
			continue
		}

		if rollbackErr := e.transactionRepo.Delete(context.WithoutCancel(ctx), t); rollbackErr != nil {
			slog.Error("Failed to roll back transaction after balance update failure",
				"transaction_id", t.ID,
				"project_id", adj.ProjectID,
				"error", rollbackErr,
			)
			return e.reconcile(ctx, domainerror.ErrCodeBalanceNotApplied,
				"transaction saved but paid amount not updated", touchedProjects(t),
				errors.Join(err, rollbackErr))
		}

		if errors.Is(err, domainerror.ErrProjectNotFound) {
			return projectNotFound()
		}
		return domainerror.NewTransientError("failed to update paid amount", err)
	}
	return nil
}

// updateSequential writes the row, then applies the reversal before the
// application. Any adjustment failure leaves the balances suspect, so every
// touched project is reconciled.
func (e *Engine) updateSequential(ctx context.Context, stored, next *entity.Transaction, adjustments []entity.BalanceAdjustment, projectIDs []uuid.UUID) error {
	if err := e.transactionRepo.Update(ctx, next, stored); err != nil {
		return rowWriteFailure(err, projectIDs)
	}

	if err := e.applySequential(ctx, adjustments); err != nil {
		return e.reconcile(ctx, domainerror.ErrCodeBalanceNotApplied,
			"transaction updated but paid amount not fully adjusted", projectIDs, err)
	}
	return nil
}

// deleteSequential removes the row, then applies the decrement.
func (e *Engine) deleteSequential(ctx context.Context, stored *entity.Transaction, adjustments []entity.BalanceAdjustment, projectIDs []uuid.UUID) error {
	if err := e.transactionRepo.Delete(ctx, stored); err != nil {
		return rowWriteFailure(err, projectIDs)
	}

	if err := e.applySequential(ctx, adjustments); err != nil {
		return e.reconcile(ctx, domainerror.ErrCodeBalanceNotApplied,
			"transaction deleted but paid amount not updated", projectIDs, err)
	}
	return nil
}

func (e *Engine) applySequential(ctx context.Context, adjustments []entity.BalanceAdjustment) error {
	for _, adj := range adjustments {
		if err := e.projectRepo.AdjustPaidAmount(ctx, adj.ProjectID, adj.Delta); err != nil {
			return err
		}
	}
	return nil
}

// rowWriteFailure classifies an error from the first, row-level step. No
// balance has been touched yet.
func rowWriteFailure(err error, projectIDs []uuid.UUID) error {
	switch {
	case errors.Is(err, domainerror.ErrTransactionChanged):
		return staleError(projectIDs, err)
	case errors.Is(err, domainerror.ErrTransactionNotFound):
		return transactionNotFound()
	case errors.Is(err, domainerror.ErrProjectNotFound):
		return projectNotFound()
	default:
		return domainerror.NewTransientError("failed to write transaction", err)
	}
}
