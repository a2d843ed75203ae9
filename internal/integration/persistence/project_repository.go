package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/project-ledger/backend/internal/application/adapter"
	"github.com/project-ledger/backend/internal/domain/entity"
	domainerror "github.com/project-ledger/backend/internal/domain/error"
	"github.com/project-ledger/backend/internal/integration/persistence/model"
)

// projectRepository implements the adapter.ProjectRepository interface.
type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository instance.
func NewProjectRepository(db *gorm.DB) adapter.ProjectRepository {
	return &projectRepository{
		db: db,
	}
}

// Create creates a new project in the database.
func (r *projectRepository) Create(ctx context.Context, project *entity.Project) error {
	projectModel := model.ProjectFromEntity(project)
	result := r.db.WithContext(ctx).Create(projectModel)
	if result.Error != nil {
		return fmt.Errorf("failed to create project: %w", result.Error)
	}
	return nil
}

// FindByID retrieves a project by its ID.
func (r *projectRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Project, error) {
	var projectModel model.ProjectModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&projectModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", result.Error)
	}
	return projectModel.ToEntity(), nil
}

// FindAll retrieves projects matching the filter, newest first.
func (r *projectRepository) FindAll(ctx context.Context, filter entity.ProjectFilter) ([]*entity.Project, error) {
	query := r.db.WithContext(ctx).Model(&model.ProjectModel{})
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}

	var projectModels []model.ProjectModel
	if err := query.Order("created_at DESC").Find(&projectModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	projects := make([]*entity.Project, len(projectModels))
	for i := range projectModels {
		projects[i] = projectModels[i].ToEntity()
	}
	return projects, nil
}

// Update saves field edits. paid_amount and the creation audit are left untouched.
func (r *projectRepository) Update(ctx context.Context, project *entity.Project) error {
	result := r.db.WithContext(ctx).
		Model(&model.ProjectModel{}).
		Where("id = ?", project.ID).
		Updates(map[string]any{
			"name":             project.Name,
			"partner":          project.Partner,
			"status":           string(project.Status),
			"value":            project.Value,
			"tax_rate":         project.TaxRate,
			"start_date":       project.StartDate,
			"end_date":         project.EndDate,
			"contract_number":  project.ContractNumber,
			"description":      project.Description,
			"updated_by":       project.Audit.UpdatedBy,
			"updated_by_email": project.Audit.UpdatedByEmail,
			"updated_at":       project.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update project: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrProjectNotFound
	}
	return nil
}

// DeleteCascade removes a project and its transactions in one database transaction.
func (r *projectRepository) DeleteCascade(ctx context.Context, id uuid.UUID) ([]*entity.Transaction, error) {
	var deleted []*entity.Transaction

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var transactionModels []model.TransactionModel
		if err := tx.Where("project_id = ?", id).Find(&transactionModels).Error; err != nil {
			return fmt.Errorf("failed to load project transactions: %w", err)
		}

		if err := tx.Where("project_id = ?", id).Delete(&model.TransactionModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete project transactions: %w", err)
		}

		result := tx.Where("id = ?", id).Delete(&model.ProjectModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete project: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrProjectNotFound
		}

		deleted = make([]*entity.Transaction, len(transactionModels))
		for i := range transactionModels {
			deleted[i] = transactionModels[i].ToEntity()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// AdjustPaidAmount applies a server-side increment to paid_amount.
func (r *projectRepository) AdjustPaidAmount(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	return adjustPaidAmount(r.db.WithContext(ctx), id, delta)
}

// SetPaidAmount overwrites paid_amount.
func (r *projectRepository) SetPaidAmount(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&model.ProjectModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"paid_amount": amount,
			"updated_at":  time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to set paid amount: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrProjectNotFound
	}
	return nil
}

// adjustPaidAmount increments paid_amount in place, refusing to go below zero.
// It runs on whatever handle it is given, so the ledger store can call it
// inside its own transaction.
func adjustPaidAmount(db *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	if delta.IsZero() {
		return nil
	}

	query := db.Model(&model.ProjectModel{}).Where("id = ?", id)
	if delta.IsNegative() {
		query = query.Where("ROUND(paid_amount + ?, 2) >= 0", delta)
	}

	result := query.Updates(map[string]any{
		"paid_amount": gorm.Expr("paid_amount + ?", delta),
		"updated_at":  time.Now().UTC(),
	})
	if result.Error != nil {
		return fmt.Errorf("failed to adjust paid amount: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// Nothing matched: either the project is gone or the guard rejected the decrement.
	var count int64
	if err := db.Model(&model.ProjectModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check project: %w", err)
	}
	if count == 0 {
		return domainerror.ErrProjectNotFound
	}
	return domainerror.ErrPaidAmountUnderflow
}
