// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/project-ledger/backend/internal/application/adapter"
	"github.com/project-ledger/backend/internal/domain/entity"
	domainerror "github.com/project-ledger/backend/internal/domain/error"
	"github.com/project-ledger/backend/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction in the database.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	return createTransaction(r.db.WithContext(ctx), transactionModel)
}

func createTransaction(db *gorm.DB, transactionModel *model.TransactionModel) error {
	if err := db.Create(transactionModel).Error; err != nil {
		if isForeignKeyViolation(err) {
			return domainerror.ErrProjectNotFound
		}
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// isForeignKeyViolation reports whether the database rejected a reference to a
// row that no longer exists, such as a project deleted mid-request.
func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// FindByID retrieves a transaction by its ID.
func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to find transaction: %w", result.Error)
	}
	return transactionModel.ToEntity(), nil
}

// FindByFilter retrieves transactions based on filter criteria with pagination.
func (r *transactionRepository) FindByFilter(ctx context.Context, filter entity.TransactionFilter, pagination adapter.TransactionPagination) (*entity.TransactionListResult, error) {
	query := applyTransactionFilter(r.db.WithContext(ctx).Model(&model.TransactionModel{}), filter)

	// Get total count
	var total int64
	countQuery := query.Session(&gorm.Session{})
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	// Calculate pagination
	offset := (pagination.Page - 1) * pagination.Limit
	totalPages := int((total + int64(pagination.Limit) - 1) / int64(pagination.Limit))
	if totalPages == 0 {
		totalPages = 1
	}

	var transactionModels []model.TransactionModel
	result := query.
		Order("date DESC, created_at DESC").
		Offset(offset).
		Limit(pagination.Limit).
		Find(&transactionModels)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", result.Error)
	}

	return &entity.TransactionListResult{
		Transactions: toTransactionEntities(transactionModels),
		Total:        total,
		Page:         pagination.Page,
		Limit:        pagination.Limit,
		TotalPages:   totalPages,
	}, nil
}

// FindAll retrieves every transaction matching the filter, newest first.
func (r *transactionRepository) FindAll(ctx context.Context, filter entity.TransactionFilter) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := applyTransactionFilter(r.db.WithContext(ctx).Model(&model.TransactionModel{}), filter).
		Order("date DESC, created_at DESC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", result.Error)
	}
	return toTransactionEntities(transactionModels), nil
}

// FindByProject retrieves all transactions of a project.
func (r *transactionRepository) FindByProject(ctx context.Context, projectID uuid.UUID) ([]*entity.Transaction, error) {
	return r.FindAll(ctx, entity.TransactionFilter{ProjectID: &projectID})
}

// FindRecent retrieves the latest transactions across all projects.
func (r *transactionRepository) FindRecent(ctx context.Context, limit int) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Order("date DESC, created_at DESC").
		Limit(limit).
		Find(&transactionModels)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list recent transactions: %w", result.Error)
	}
	return toTransactionEntities(transactionModels), nil
}

// Update overwrites a transaction if its stored ledger state still matches expected.
func (r *transactionRepository) Update(ctx context.Context, transaction *entity.Transaction, expected *entity.Transaction) error {
	return updateTransactionGuarded(r.db.WithContext(ctx), transaction, expected)
}

// Delete removes a transaction if its stored ledger state still matches expected.
func (r *transactionRepository) Delete(ctx context.Context, expected *entity.Transaction) error {
	return deleteTransactionGuarded(r.db.WithContext(ctx), expected)
}

// SumIncomeByProject returns the sum of INCOME amounts for a project.
func (r *transactionRepository) SumIncomeByProject(ctx context.Context, projectID uuid.UUID) (decimal.Decimal, error) {
	return sumIncome(r.db.WithContext(ctx), projectID)
}

func applyTransactionFilter(query *gorm.DB, filter entity.TransactionFilter) *gorm.DB {
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.StartDate != nil {
		query = query.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", *filter.EndDate)
	}
	return query
}

// updateTransactionGuarded writes every mutable column, matching on the
// previous project, type and amount so a concurrent edit is detected.
func updateTransactionGuarded(db *gorm.DB, transaction *entity.Transaction, expected *entity.Transaction) error {
	result := db.Model(&model.TransactionModel{}).
		Where("id = ?", transaction.ID).
		Where("project_id = ? AND type = ? AND amount = ?", expected.ProjectID, string(expected.Type), expected.Amount).
		Updates(map[string]any{
			"project_id":       transaction.ProjectID,
			"date":             transaction.Date,
			"type":             string(transaction.Type),
			"category":         transaction.Category,
			"amount":           transaction.Amount,
			"description":      transaction.Description,
			"image_url":        transaction.ImageURL,
			"image_path":       transaction.ImagePath,
			"is_ai_processed":  transaction.IsAIProcessed,
			"updated_by":       transaction.Audit.UpdatedBy,
			"updated_by_email": transaction.Audit.UpdatedByEmail,
			"updated_at":       transaction.UpdatedAt,
		})
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			return domainerror.ErrProjectNotFound
		}
		return fmt.Errorf("failed to update transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return transactionMissOrChanged(db, transaction.ID)
	}
	return nil
}

// deleteTransactionGuarded removes a transaction only if it still matches expected.
func deleteTransactionGuarded(db *gorm.DB, expected *entity.Transaction) error {
	result := db.
		Where("id = ?", expected.ID).
		Where("project_id = ? AND type = ? AND amount = ?", expected.ProjectID, string(expected.Type), expected.Amount).
		Delete(&model.TransactionModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return transactionMissOrChanged(db, expected.ID)
	}
	return nil
}

func transactionMissOrChanged(db *gorm.DB, id uuid.UUID) error {
	var count int64
	if err := db.Model(&model.TransactionModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check transaction: %w", err)
	}
	if count == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return domainerror.ErrTransactionChanged
}

func sumIncome(db *gorm.DB, projectID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := db.Model(&model.TransactionModel{}).
		Select("SUM(amount)").
		Where("project_id = ? AND type = ?", projectID, string(entity.TransactionTypeIncome)).
		Row().
		Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum income: %w", err)
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal.Round(2), nil
}

func toTransactionEntities(models []model.TransactionModel) []*entity.Transaction {
	transactions := make([]*entity.Transaction, len(models))
	for i := range models {
		transactions[i] = models[i].ToEntity()
	}
	return transactions
}
