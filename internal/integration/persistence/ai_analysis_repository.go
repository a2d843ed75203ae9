package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/project-ledger/backend/internal/application/adapter"
	"github.com/project-ledger/backend/internal/domain/entity"
	"github.com/project-ledger/backend/internal/integration/persistence/model"
)

// ErrAIAnalysisNotFound is returned when an analysis record does not exist.
var ErrAIAnalysisNotFound = errors.New("ai analysis not found")

// aiAnalysisRepository implements the adapter.AIAnalysisRepository interface.
type aiAnalysisRepository struct {
	db *gorm.DB
}

// NewAIAnalysisRepository creates a new AI analysis repository instance.
func NewAIAnalysisRepository(db *gorm.DB) adapter.AIAnalysisRepository {
	return &aiAnalysisRepository{
		db: db,
	}
}

// Create stores an analysis record.
func (r *aiAnalysisRepository) Create(ctx context.Context, analysis *entity.AIAnalysis) error {
	result := r.db.WithContext(ctx).Create(model.AIAnalysisFromEntity(analysis))
	if result.Error != nil {
		return fmt.Errorf("failed to create ai analysis: %w", result.Error)
	}
	return nil
}

// FindByID retrieves an analysis by its ID.
func (r *aiAnalysisRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.AIAnalysis, error) {
	var analysisModel model.AIAnalysisModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&analysisModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrAIAnalysisNotFound
		}
		return nil, fmt.Errorf("failed to find ai analysis: %w", result.Error)
	}
	return analysisModel.ToEntity(), nil
}
