package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/project-ledger/backend/internal/application/usecase/transaction"
	"github.com/project-ledger/backend/internal/domain/entity"
)

// CreateTransactionRequest represents the request body for transaction creation.
// Amount accepts a JSON number or a numeric string.
type CreateTransactionRequest struct {
	ProjectID     string          `json:"project_id" binding:"required,uuid"`
	Date          string          `json:"date" binding:"required"`
	Type          string          `json:"type" binding:"required,tx_type"`
	Category      string          `json:"category" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"money"`
	Description   string          `json:"description" binding:"max=255"`
	ImageURL      string          `json:"image_url,omitempty" binding:"omitempty,url"`
	ImagePath     string          `json:"image_path,omitempty"`
	IsAIProcessed bool            `json:"is_ai_processed,omitempty"`
}

// LedgerStateRequest is the balance-relevant state a client last saw. When sent
// with an update or delete, the write is refused if the stored row differs.
type LedgerStateRequest struct {
	ProjectID string          `json:"project_id" binding:"required,uuid"`
	Type      string          `json:"type" binding:"required,tx_type"`
	Amount    decimal.Decimal `json:"amount"`
}

// UpdateTransactionRequest represents the request body for transaction update.
type UpdateTransactionRequest struct {
	ProjectID   *string             `json:"project_id,omitempty" binding:"omitempty,uuid"`
	Date        *string             `json:"date,omitempty"`
	Type        *string             `json:"type,omitempty" binding:"omitempty,tx_type"`
	Category    *string             `json:"category,omitempty"`
	Amount      *decimal.Decimal    `json:"amount,omitempty" binding:"omitempty,money"`
	Description *string             `json:"description,omitempty" binding:"omitempty,max=255"`
	ImageURL    *string             `json:"image_url,omitempty"`
	ImagePath   *string             `json:"image_path,omitempty"`
	Expected    *LedgerStateRequest `json:"expected,omitempty"`
}

// DeleteTransactionRequest is the optional body of a transaction delete.
type DeleteTransactionRequest struct {
	Expected *LedgerStateRequest `json:"expected,omitempty"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID            string        `json:"id"`
	ProjectID     string        `json:"project_id"`
	Date          string        `json:"date"`
	Type          string        `json:"type"`
	TypeLabel     string        `json:"type_label"`
	Category      string        `json:"category"`
	Amount        string        `json:"amount"`
	Description   string        `json:"description"`
	ImageURL      string        `json:"image_url,omitempty"`
	ImagePath     string        `json:"image_path,omitempty"`
	IsAIProcessed bool          `json:"is_ai_processed"`
	Audit         AuditResponse `json:"audit"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// TransactionPaginationResponse represents pagination information in API responses.
type TransactionPaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse         `json:"transactions"`
	Pagination   TransactionPaginationResponse `json:"pagination"`
}

// EvidenceResponse describes an uploaded evidence image.
type EvidenceResponse struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}

// CategoriesResponse lists the accepted categories per transaction type.
type CategoriesResponse struct {
	Income  []string `json:"income"`
	Expense []string `json:"expense"`
}

// ToTransactionResponse converts a Transaction entity to a TransactionResponse DTO.
func ToTransactionResponse(t *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:            t.ID.String(),
		ProjectID:     t.ProjectID.String(),
		Date:          t.Date.Format("2006-01-02T15:04"),
		Type:          string(t.Type),
		TypeLabel:     t.Type.Label(),
		Category:      t.Category,
		Amount:        t.Amount.StringFixed(2),
		Description:   t.Description,
		ImageURL:      t.ImageURL,
		ImagePath:     t.ImagePath,
		IsAIProcessed: t.IsAIProcessed,
		Audit: AuditResponse{
			CreatedBy: t.Audit.CreatedByEmail,
			UpdatedBy: t.Audit.UpdatedByEmail,
		},
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// ToTransactionResponses converts a slice of transactions.
func ToTransactionResponses(transactions []*entity.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		responses = append(responses, ToTransactionResponse(t))
	}
	return responses
}

// ToTransactionListResponse converts the list output to a TransactionListResponse DTO.
func ToTransactionListResponse(output *transaction.ListTransactionsOutput) TransactionListResponse {
	return TransactionListResponse{
		Transactions: ToTransactionResponses(output.Transactions),
		Pagination: TransactionPaginationResponse{
			Page:       output.Page,
			Limit:      output.Limit,
			Total:      output.Total,
			TotalPages: output.TotalPages,
		},
	}
}
