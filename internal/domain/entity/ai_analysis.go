package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AIAnalysisStatus represents the outcome of an image analysis.
type AIAnalysisStatus string

const (
	AIAnalysisStatusSucceeded AIAnalysisStatus = "succeeded"
	AIAnalysisStatusFailed    AIAnalysisStatus = "failed"
)

// TransactionSuggestion is the structured guess extracted from an image.
// Every field is untrusted input and must be validated before use.
type TransactionSuggestion struct {
	Date        *time.Time
	Amount      decimal.Decimal
	Type        TransactionType
	Category    string
	Description string
}

// AIAnalysis records one call to the image analysis service.
type AIAnalysis struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	ImageURL    string
	ImagePath   string
	MimeType    string
	RawResponse string
	Suggestion  *TransactionSuggestion
	Issues      []string
	Status      AIAnalysisStatus
	ErrorCode   string
	CreatedAt   time.Time
}

// NewAIAnalysis creates a new AIAnalysis for the given user and image.
func NewAIAnalysis(userID uuid.UUID, imageURL, imagePath, mimeType string) *AIAnalysis {
	return &AIAnalysis{
		ID:        uuid.New(),
		UserID:    userID,
		ImageURL:  imageURL,
		ImagePath: imagePath,
		MimeType:  mimeType,
		Status:    AIAnalysisStatusSucceeded,
		CreatedAt: time.Now().UTC(),
	}
}

// MarkFailed records a failed analysis.
func (a *AIAnalysis) MarkFailed(code string) {
	a.Status = AIAnalysisStatusFailed
	a.ErrorCode = code
}
