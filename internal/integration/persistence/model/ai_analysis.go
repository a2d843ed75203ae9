package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/project-ledger/backend/internal/domain/entity"
)

// AIAnalysisModel represents the ai_analyses table in the database.
type AIAnalysisModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	ImageURL    string    `gorm:"type:text"`
	ImagePath   string    `gorm:"type:varchar(500)"`
	MimeType    string    `gorm:"type:varchar(50)"`
	RawResponse string    `gorm:"type:text"`

	// Parsed suggestion, empty when the response could not be parsed
	HasSuggestion        bool             `gorm:"default:false"`
	SuggestedDate        *time.Time       `gorm:"type:timestamptz"`
	SuggestedAmount      *decimal.Decimal `gorm:"type:decimal(15,2)"`
	SuggestedType        string           `gorm:"type:varchar(10)"`
	SuggestedCategory    string           `gorm:"type:varchar(50)"`
	SuggestedDescription string           `gorm:"type:varchar(255)"`

	Issues    pq.StringArray `gorm:"type:text[]"`
	Status    string         `gorm:"type:varchar(20);not null"`
	ErrorCode string         `gorm:"type:varchar(20)"`
	CreatedAt time.Time      `gorm:"not null"`
}

// TableName returns the table name for the AIAnalysisModel.
func (AIAnalysisModel) TableName() string {
	return "ai_analyses"
}

// ToEntity converts an AIAnalysisModel to a domain AIAnalysis entity.
func (m *AIAnalysisModel) ToEntity() *entity.AIAnalysis {
	analysis := &entity.AIAnalysis{
		ID:          m.ID,
		UserID:      m.UserID,
		ImageURL:    m.ImageURL,
		ImagePath:   m.ImagePath,
		MimeType:    m.MimeType,
		RawResponse: m.RawResponse,
		Issues:      []string(m.Issues),
		Status:      entity.AIAnalysisStatus(m.Status),
		ErrorCode:   m.ErrorCode,
		CreatedAt:   m.CreatedAt,
	}

	if m.HasSuggestion {
		suggestion := &entity.TransactionSuggestion{
			Date:        m.SuggestedDate,
			Type:        entity.TransactionType(m.SuggestedType),
			Category:    m.SuggestedCategory,
			Description: m.SuggestedDescription,
		}
		if m.SuggestedAmount != nil {
			suggestion.Amount = *m.SuggestedAmount
		}
		analysis.Suggestion = suggestion
	}

	return analysis
}

// AIAnalysisFromEntity creates an AIAnalysisModel from a domain AIAnalysis entity.
func AIAnalysisFromEntity(analysis *entity.AIAnalysis) *AIAnalysisModel {
	m := &AIAnalysisModel{
		ID:          analysis.ID,
		UserID:      analysis.UserID,
		ImageURL:    analysis.ImageURL,
		ImagePath:   analysis.ImagePath,
		MimeType:    analysis.MimeType,
		RawResponse: analysis.RawResponse,
		Issues:      pq.StringArray(analysis.Issues),
		Status:      string(analysis.Status),
		ErrorCode:   analysis.ErrorCode,
		CreatedAt:   analysis.CreatedAt,
	}

	if s := analysis.Suggestion; s != nil {
		amount := s.Amount
		m.HasSuggestion = true
		m.SuggestedDate = s.Date
		m.SuggestedAmount = &amount
		m.SuggestedType = string(s.Type)
		m.SuggestedCategory = s.Category
		m.SuggestedDescription = s.Description
	}

	return m
}
