// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// IsValid reports whether the type is income or expense.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Label returns the report label for the type.
func (t TransactionType) Label() string {
	if t == TransactionTypeIncome {
		return "Pemasukan"
	}
	return "Pengeluaran"
}

// AmountDecimalPlaces is the number of decimal places stored for money amounts.
const AmountDecimalPlaces int32 = 2

// HasMoneyScale reports whether amount fits the stored precision without rounding.
func HasMoneyScale(amount decimal.Decimal) bool {
	return amount.Equal(amount.Round(AmountDecimalPlaces))
}

// Transaction represents a payment received for, or money spent on, a project.
type Transaction struct {
	ID            uuid.UUID
	ProjectID     uuid.UUID
	Date          time.Time
	Type          TransactionType
	Category      string
	Amount        decimal.Decimal // Always positive; direction comes from Type
	Description   string
	ImageURL      string
	ImagePath     string
	IsAIProcessed bool
	Audit         Audit
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	projectID uuid.UUID,
	date time.Time,
	transactionType TransactionType,
	category string,
	amount decimal.Decimal,
	description string,
	actor Principal,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:          uuid.New(),
		ProjectID:   projectID,
		Date:        date,
		Type:        transactionType,
		Category:    category,
		Amount:      amount,
		Description: description,
		Audit:       NewAudit(actor),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsIncome reports whether the transaction counts toward the project's paid amount.
func (t *Transaction) IsIncome() bool {
	return t.Type == TransactionTypeIncome
}

// Contribution returns the amount this transaction adds to its project's paid amount.
func (t *Transaction) Contribution() decimal.Decimal {
	if t.IsIncome() {
		return t.Amount
	}
	return decimal.Zero
}

// SameLedgerState reports whether two snapshots have the same effect on paid amounts.
func (t *Transaction) SameLedgerState(other *Transaction) bool {
	return t.ProjectID == other.ProjectID &&
		t.Type == other.Type &&
		t.Amount.Equal(other.Amount)
}

// TransactionFilter holds optional criteria for listing transactions.
type TransactionFilter struct {
	ProjectID *uuid.UUID
	Type      *TransactionType
	Category  string
	StartDate *time.Time
	EndDate   *time.Time
}

// TransactionListResult represents a page of transactions.
type TransactionListResult struct {
	Transactions []*Transaction
	Total        int64
	Page         int
	Limit        int
	TotalPages   int
}
