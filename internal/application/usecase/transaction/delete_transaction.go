package transaction

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/project-ledger/backend/internal/application/adapter"
)

// DeleteTransactionInput represents the input for transaction deletion.
type DeleteTransactionInput struct {
	TransactionID uuid.UUID
	Expected      *LedgerState
}

// DeleteTransactionOutput represents the output of transaction deletion.
type DeleteTransactionOutput struct {
	Success bool
}

// DeleteTransactionUseCase handles transaction deletion logic.
type DeleteTransactionUseCase struct {
	ledger  Ledger
	storage adapter.BlobStorage
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
// storage may be nil.
func NewDeleteTransactionUseCase(ledger Ledger, storage adapter.BlobStorage) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{
		ledger:  ledger,
		storage: storage,
	}
}

// Execute performs the transaction deletion, then removes its evidence image.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) (*DeleteTransactionOutput, error) {
	deleted, err := uc.ledger.RecordDelete(ctx, input.TransactionID, input.Expected.asTransaction(input.TransactionID))
	if err != nil {
		return nil, err
	}

	if uc.storage != nil && deleted.ImagePath != "" {
		if err := uc.storage.Delete(context.WithoutCancel(ctx), deleted.ImagePath); err != nil {
			slog.Warn("Failed to delete evidence image",
				"transaction_id", deleted.ID,
				"path", deleted.ImagePath,
				"error", err,
			)
		}
	}

	return &DeleteTransactionOutput{Success: true}, nil
}
