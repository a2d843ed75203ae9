package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/project-ledger/backend/internal/domain/entity"
)

// ProjectRepository defines the interface for project persistence operations.
type ProjectRepository interface {
	// Create creates a new project in the database.
	Create(ctx context.Context, project *entity.Project) error

	// FindByID retrieves a project by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Project, error)

	// FindAll retrieves projects matching the filter, newest first.
	FindAll(ctx context.Context, filter entity.ProjectFilter) ([]*entity.Project, error)

	// Update saves field edits. The paid amount column is never written.
	Update(ctx context.Context, project *entity.Project) error

	// DeleteCascade removes a project and all of its transactions in one database
	// transaction and returns the deleted transactions.
	DeleteCascade(ctx context.Context, id uuid.UUID) ([]*entity.Transaction, error)

	// AdjustPaidAmount applies a server-side increment to paid_amount.
	// Returns domainerror.ErrPaidAmountUnderflow when the result would be negative.
	AdjustPaidAmount(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error

	// SetPaidAmount overwrites paid_amount.
	SetPaidAmount(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error
}
