package transaction

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/project-ledger/backend/internal/application/adapter"
	"github.com/project-ledger/backend/internal/domain/entity"
	domainerror "github.com/project-ledger/backend/internal/domain/error"
)

// LedgerState is the part of a transaction that affects project balances. A
// client passes the state it last saw so concurrent edits are detected.
type LedgerState struct {
	ProjectID uuid.UUID
	Type      entity.TransactionType
	Amount    decimal.Decimal
}

func (s *LedgerState) asTransaction(id uuid.UUID) *entity.Transaction {
	if s == nil {
		return nil
	}
	return &entity.Transaction{ID: id, ProjectID: s.ProjectID, Type: s.Type, Amount: s.Amount}
}

// UpdateTransactionInput represents the input for transaction update. Nil
// fields are left unchanged.
type UpdateTransactionInput struct {
	TransactionID uuid.UUID
	ProjectID     *uuid.UUID
	Date          *time.Time
	Type          *entity.TransactionType
	Category      *string
	Amount        *decimal.Decimal
	Description   *string
	ImageURL      *string
	ImagePath     *string
	Expected      *LedgerState
	Actor         entity.Principal
}

// UpdateTransactionOutput represents the output of transaction update.
type UpdateTransactionOutput struct {
	Transaction *entity.Transaction
}

// UpdateTransactionUseCase handles transaction update logic.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	ledger          Ledger
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	ledger Ledger,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
		ledger:          ledger,
	}
}

// Execute performs the transaction update, moving its balance effect between
// projects or types as needed.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	stored, err := uc.transactionRepo.FindByID(ctx, input.TransactionID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionNotFound,
				"transaction not found",
				domainerror.ErrTransactionNotFound,
			)
		}
		return nil, domainerror.NewTransientError("failed to find transaction", err)
	}

	next := *stored
	if input.ProjectID != nil {
		next.ProjectID = *input.ProjectID
	}
	if input.Date != nil {
		next.Date = *input.Date
	}
	if input.Type != nil {
		next.Type = *input.Type
	}
	if input.Category != nil {
		next.Category = strings.TrimSpace(*input.Category)
	}
	if input.Amount != nil {
		next.Amount = *input.Amount
	}
	if input.Description != nil {
		next.Description = strings.TrimSpace(*input.Description)
	}
	if input.ImageURL != nil {
		next.ImageURL = *input.ImageURL
	}
	if input.ImagePath != nil {
		next.ImagePath = *input.ImagePath
	}

	next.Audit.Touch(input.Actor)
	next.UpdatedAt = time.Now().UTC()

	// Without a client-supplied state, guard against edits made since our read.
	previous := input.Expected.asTransaction(stored.ID)
	if previous == nil {
		previous = stored
	}

	if err := uc.ledger.RecordUpdate(ctx, previous, &next); err != nil {
		return nil, err
	}

	return &UpdateTransactionOutput{Transaction: &next}, nil
}
