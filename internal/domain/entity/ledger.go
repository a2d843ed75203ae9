package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BalanceAdjustment is a signed change to one project's paid amount.
type BalanceAdjustment struct {
	ProjectID uuid.UUID
	Delta     decimal.Decimal
}

// IsDecrement reports whether the adjustment lowers the paid amount.
func (a BalanceAdjustment) IsDecrement() bool {
	return a.Delta.IsNegative()
}

// RecomputeResult is the outcome of rebuilding a project's paid amount from its transactions.
type RecomputeResult struct {
	ProjectID  uuid.UUID
	Previous   decimal.Decimal
	PaidAmount decimal.Decimal
}

// Drifted reports whether the stored paid amount disagreed with the transactions.
func (r RecomputeResult) Drifted() bool {
	return !r.Previous.Equal(r.PaidAmount)
}
