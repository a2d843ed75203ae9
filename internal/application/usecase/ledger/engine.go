// Package ledger keeps every project's paid amount equal to the sum of its
// income transactions across create, update, delete and reassignment.
package ledger

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/project-ledger/backend/internal/application/adapter"
	"github.com/project-ledger/backend/internal/domain/entity"
	domainerror "github.com/project-ledger/backend/internal/domain/error"
)

// Strategy selects how a transaction write and its balance effect are applied.
type Strategy string

const (
	// StrategyAtomic writes the row and every adjustment in one database transaction.
	StrategyAtomic Strategy = "atomic"
	// StrategySequential issues separate store calls and falls back to
	// compensation or recomputation when a later step fails.
	StrategySequential Strategy = "sequential"
)

// Engine applies transaction mutations together with their balance effects.
type Engine struct {
	transactionRepo adapter.TransactionRepository
	projectRepo     adapter.ProjectRepository
	store           adapter.LedgerStore
	queue           adapter.ReconcileQueue
}

// NewEngine creates a new Engine. When store is nil the engine uses the
// sequential strategy.
func NewEngine(
	transactionRepo adapter.TransactionRepository,
	projectRepo adapter.ProjectRepository,
	store adapter.LedgerStore,
	queue adapter.ReconcileQueue,
) *Engine {
	return &Engine{
		transactionRepo: transactionRepo,
		projectRepo:     projectRepo,
		store:           store,
		queue:           queue,
	}
}

// Strategy reports the strategy in use.
func (e *Engine) Strategy() Strategy {
	if e.store != nil {
		return StrategyAtomic
	}
	return StrategySequential
}

// RecordCreate persists t and, for income, raises its project's paid amount by t.Amount.
func (e *Engine) RecordCreate(ctx context.Context, t *entity.Transaction) error {
	if err := ValidateTransaction(t); err != nil {
		return err
	}

	if err := e.ensureProject(ctx, t.ProjectID); err != nil {
		return err
	}

	adjustments := PlanCreate(t)

	if e.store != nil {
		if err := e.store.CreateWithAdjustments(ctx, t, adjustments); err != nil {
			return e.atomicFailure(ctx, err, touchedProjects(t))
		}
		return nil
	}
	return e.createSequential(ctx, t, adjustments)
}

// RecordUpdate replaces the stored transaction with next and moves its balance
// effect accordingly. previous is the state the caller based the edit on; when
// it is nil the stored row is used. The stored row is authoritative: if it no
// longer matches previous the edit is rejected as stale and nothing changes.
func (e *Engine) RecordUpdate(ctx context.Context, previous, next *entity.Transaction) error {
	if err := ValidateTransaction(next); err != nil {
		return err
	}

	stored, err := e.findTransaction(ctx, next.ID)
	if err != nil {
		return err
	}

	projectIDs := touchedProjects(stored, next)
	if previous != nil && !stored.SameLedgerState(previous) {
		return staleError(projectIDs, nil)
	}

	if next.ProjectID != stored.ProjectID {
		if err := e.ensureProject(ctx, next.ProjectID); err != nil {
			return err
		}
	}

	adjustments := PlanUpdate(stored, next)

	if e.store != nil {
		if err := e.store.UpdateWithAdjustments(ctx, stored, next, adjustments); err != nil {
			return e.atomicFailure(ctx, err, projectIDs)
		}
		return nil
	}
	return e.updateSequential(ctx, stored, next, adjustments, projectIDs)
}

// RecordDelete removes the transaction and, for income, lowers its project's
// paid amount. previous is optional, as for RecordUpdate. The removed row is returned.
func (e *Engine) RecordDelete(ctx context.Context, id uuid.UUID, previous *entity.Transaction) (*entity.Transaction, error) {
	stored, err := e.findTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	projectIDs := touchedProjects(stored)
	if previous != nil && !stored.SameLedgerState(previous) {
		return nil, staleError(projectIDs, nil)
	}

	adjustments := PlanDelete(stored)

	if e.store != nil {
		if err := e.store.DeleteWithAdjustments(ctx, stored, adjustments); err != nil {
			return nil, e.atomicFailure(ctx, err, projectIDs)
		}
		return stored, nil
	}
	if err := e.deleteSequential(ctx, stored, adjustments, projectIDs); err != nil {
		return nil, err
	}
	return stored, nil
}

// RecomputeProjectBalance overwrites the project's paid amount with the sum of
// its income transactions. It is idempotent.
func (e *Engine) RecomputeProjectBalance(ctx context.Context, projectID uuid.UUID) (*entity.RecomputeResult, error) {
	var (
		result *entity.RecomputeResult
		err    error
	)
	if e.store != nil {
		result, err = e.store.RecomputePaidAmount(ctx, projectID)
	} else {
		result, err = e.recomputeSequential(ctx, projectID)
	}

	if err != nil {
		if errors.Is(err, domainerror.ErrProjectNotFound) {
			return nil, projectNotFound()
		}
		return nil, domainerror.NewTransientError("failed to recompute paid amount", err)
	}

	if result.Drifted() {
		slog.Warn("Paid amount drift corrected",
			"project_id", projectID,
			"previous", result.Previous.String(),
			"paid_amount", result.PaidAmount.String(),
		)
	}
	return result, nil
}

func (e *Engine) recomputeSequential(ctx context.Context, projectID uuid.UUID) (*entity.RecomputeResult, error) {
	project, err := e.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	total, err := e.transactionRepo.SumIncomeByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	result := &entity.RecomputeResult{
		ProjectID:  projectID,
		Previous:   project.PaidAmount,
		PaidAmount: total,
	}
	if result.Drifted() {
		if err := e.projectRepo.SetPaidAmount(ctx, projectID, total); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// atomicFailure classifies an error from a rolled-back atomic write.
func (e *Engine) atomicFailure(ctx context.Context, err error, projectIDs []uuid.UUID) error {
	switch {
	case errors.Is(err, domainerror.ErrTransactionChanged):
		return staleError(projectIDs, err)
	case errors.Is(err, domainerror.ErrTransactionNotFound):
		return transactionNotFound()
	case errors.Is(err, domainerror.ErrProjectNotFound):
		return projectNotFound()
	case errors.Is(err, domainerror.ErrPaidAmountUnderflow):
		// The stored balance was already lower than the rows say. Repair it.
		return e.reconcile(ctx, domainerror.ErrCodePaidUnderflow,
			"paid amount would become negative", projectIDs, err)
	default:
		return domainerror.NewTransientError("ledger store unavailable", err)
	}
}

// reconcile queues the projects, tries to recompute them right away, and
// returns the ConsistencyError describing the outcome.
func (e *Engine) reconcile(ctx context.Context, code domainerror.LedgerErrorCode, message string, projectIDs []uuid.UUID, cause error) *domainerror.ConsistencyError {
	consistencyErr := domainerror.NewConsistencyError(code, message, projectIDs, cause)

	// The caller's request may already be cancelled; repair regardless.
	ctx = context.WithoutCancel(ctx)

	queued := true
	if err := e.queue.Enqueue(ctx, projectIDs...); err != nil {
		queued = false
		slog.Error("Failed to queue projects for reconciliation",
			"project_ids", projectIDs,
			"error", err,
		)
	}

	reconciled := true
	for _, id := range projectIDs {
		// Take the id before recomputing, so an enqueue by a concurrent failed
		// write that lands mid-recompute stays queued.
		if queued {
			if err := e.queue.Remove(ctx, id); err != nil {
				slog.Warn("Failed to dequeue project before recompute", "project_id", id, "error", err)
			}
		}

		if _, err := e.RecomputeProjectBalance(ctx, id); err != nil {
			reconciled = false
			requeued := e.queue.Enqueue(ctx, id) == nil
			slog.Error("Immediate reconciliation failed",
				"project_id", id,
				"queued", requeued,
				"error", err,
			)
		}
	}
	consistencyErr.Reconciled = reconciled

	slog.Warn("Ledger consistency error",
		"code", code,
		"project_ids", projectIDs,
		"reconciled", reconciled,
		"error", cause,
	)
	return consistencyErr
}

func (e *Engine) ensureProject(ctx context.Context, projectID uuid.UUID) error {
	if _, err := e.projectRepo.FindByID(ctx, projectID); err != nil {
		if errors.Is(err, domainerror.ErrProjectNotFound) {
			return projectNotFound()
		}
		return domainerror.NewTransientError("failed to find project", err)
	}
	return nil
}

func (e *Engine) findTransaction(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	stored, err := e.transactionRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, transactionNotFound()
		}
		return nil, domainerror.NewTransientError("failed to find transaction", err)
	}
	return stored, nil
}

func staleError(projectIDs []uuid.UUID, cause error) *domainerror.ConsistencyError {
	err := domainerror.NewConsistencyError(
		domainerror.ErrCodeStaleTransaction,
		"transaction was changed by another request, reload and retry",
		projectIDs,
		cause,
	)
	// Nothing was written, so the balances are still correct.
	err.Reconciled = true
	return err
}

func transactionNotFound() error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeTransactionNotFound,
		"transaction not found",
		domainerror.ErrTransactionNotFound,
	)
}

func projectNotFound() error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeTxnProjectNotFound,
		"project not found",
		domainerror.ErrProjectNotFound,
	)
}
