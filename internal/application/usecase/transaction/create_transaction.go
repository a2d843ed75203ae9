// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/project-ledger/backend/internal/domain/entity"
)

// Ledger applies transaction writes together with their paid amount effect.
// It is implemented by ledger.Engine.
type Ledger interface {
	RecordCreate(ctx context.Context, t *entity.Transaction) error
	RecordUpdate(ctx context.Context, previous, next *entity.Transaction) error
	RecordDelete(ctx context.Context, id uuid.UUID, previous *entity.Transaction) (*entity.Transaction, error)
}

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	ProjectID     uuid.UUID
	Date          time.Time
	Type          entity.TransactionType
	Category      string
	Amount        decimal.Decimal
	Description   string
	ImageURL      string
	ImagePath     string
	IsAIProcessed bool
	Actor         entity.Principal
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *entity.Transaction
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	ledger Ledger
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(ledger Ledger) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		ledger: ledger,
	}
}

// Execute performs the transaction creation. AI-assisted entries go through the
// same validation as manual ones.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	transaction := entity.NewTransaction(
		input.ProjectID,
		input.Date,
		input.Type,
		strings.TrimSpace(input.Category),
		input.Amount,
		strings.TrimSpace(input.Description),
		input.Actor,
	)
	transaction.ImageURL = input.ImageURL
	transaction.ImagePath = input.ImagePath
	transaction.IsAIProcessed = input.IsAIProcessed

	if err := uc.ledger.RecordCreate(ctx, transaction); err != nil {
		return nil, err
	}

	slog.Info("Transaction created",
		"transaction_id", transaction.ID,
		"project_id", transaction.ProjectID,
		"type", transaction.Type,
		"ai_processed", transaction.IsAIProcessed,
	)

	return &CreateTransactionOutput{Transaction: transaction}, nil
}
