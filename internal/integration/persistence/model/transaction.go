package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/project-ledger/backend/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProjectID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Date           time.Time       `gorm:"not null;index"`
	Type           string          `gorm:"type:varchar(10);not null;index"`
	Category       string          `gorm:"type:varchar(50);not null"`
	Amount         decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Description    string          `gorm:"type:varchar(255)"`
	ImageURL       string          `gorm:"type:text"`
	ImagePath      string          `gorm:"type:varchar(500)"`
	IsAIProcessed  bool            `gorm:"default:false"`
	CreatedBy      uuid.UUID       `gorm:"type:uuid"`
	CreatedByEmail string          `gorm:"type:varchar(255)"`
	UpdatedBy      uuid.UUID       `gorm:"type:uuid"`
	UpdatedByEmail string          `gorm:"type:varchar(255)"`
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`

	// Relationships (not loaded by default, use Preload)
	Project *ProjectModel `gorm:"foreignKey:ProjectID;references:ID"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:            m.ID,
		ProjectID:     m.ProjectID,
		Date:          m.Date,
		Type:          entity.TransactionType(m.Type),
		Category:      m.Category,
		Amount:        m.Amount,
		Description:   m.Description,
		ImageURL:      m.ImageURL,
		ImagePath:     m.ImagePath,
		IsAIProcessed: m.IsAIProcessed,
		Audit: entity.Audit{
			CreatedBy:      m.CreatedBy,
			CreatedByEmail: m.CreatedByEmail,
			UpdatedBy:      m.UpdatedBy,
			UpdatedByEmail: m.UpdatedByEmail,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:             transaction.ID,
		ProjectID:      transaction.ProjectID,
		Date:           transaction.Date,
		Type:           string(transaction.Type),
		Category:       transaction.Category,
		Amount:         transaction.Amount,
		Description:    transaction.Description,
		ImageURL:       transaction.ImageURL,
		ImagePath:      transaction.ImagePath,
		IsAIProcessed:  transaction.IsAIProcessed,
		CreatedBy:      transaction.Audit.CreatedBy,
		CreatedByEmail: transaction.Audit.CreatedByEmail,
		UpdatedBy:      transaction.Audit.UpdatedBy,
		UpdatedByEmail: transaction.Audit.UpdatedByEmail,
		CreatedAt:      transaction.CreatedAt,
		UpdatedAt:      transaction.UpdatedAt,
	}
}
