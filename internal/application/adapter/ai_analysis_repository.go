package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/project-ledger/backend/internal/domain/entity"
)

// AIAnalysisRepository defines the interface for AI analysis audit records.
type AIAnalysisRepository interface {
	// Create stores an analysis record.
	Create(ctx context.Context, analysis *entity.AIAnalysis) error

	// FindByID retrieves an analysis by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.AIAnalysis, error)
}
