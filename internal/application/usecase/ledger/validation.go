package ledger

import (
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/project-ledger/backend/internal/domain/entity"
	domainerror "github.com/project-ledger/backend/internal/domain/error"
)

// MaxDescriptionLength is the maximum length of a transaction description.
const MaxDescriptionLength = 255

// ValidationIssues returns every rule the transaction breaks, in a stable order.
// It is shared by manual entry and AI suggestions so both are held to the same rules.
func ValidationIssues(t *entity.Transaction) []*domainerror.TransactionError {
	var issues []*domainerror.TransactionError

	if t.ProjectID == uuid.Nil {
		issues = append(issues, domainerror.NewTransactionError(
			domainerror.ErrCodeMissingProject,
			"project is required",
			domainerror.ErrMissingProject,
		))
	}

	if t.Date.IsZero() {
		issues = append(issues, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"transaction date is required",
			domainerror.ErrInvalidTransactionDate,
		))
	}

	if !t.Type.IsValid() {
		issues = append(issues, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionType,
		))
	}

	if !t.Amount.IsPositive() {
		issues = append(issues, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidTransactionAmount,
		))
	} else if !entity.HasMoneyScale(t.Amount) {
		issues = append(issues, domainerror.NewTransactionError(
			domainerror.ErrCodeAmountPrecision,
			fmt.Sprintf("amount must not have more than %d decimal places", entity.AmountDecimalPlaces),
			domainerror.ErrAmountPrecision,
		))
	}

	// A category can only be checked against a known type.
	if t.Type.IsValid() && !entity.IsValidCategory(t.Type, t.Category) {
		issues = append(issues, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidCategory,
			fmt.Sprintf("category %q is not valid for %s transactions", t.Category, t.Type),
			domainerror.ErrInvalidCategory,
		))
	}

	if utf8.RuneCountInString(t.Description) > MaxDescriptionLength {
		issues = append(issues, domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		))
	}

	return issues
}

// ValidateTransaction returns the first validation issue, or nil.
func ValidateTransaction(t *entity.Transaction) error {
	if issues := ValidationIssues(t); len(issues) > 0 {
		return issues[0]
	}
	return nil
}
