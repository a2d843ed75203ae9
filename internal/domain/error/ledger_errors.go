package error

import (
	"errors"

	"github.com/google/uuid"
)

// Ledger store sentinels. Repositories return these so the engine can
// distinguish a rejected balance change from an unavailable store.
var (
	// ErrPaidAmountUnderflow is returned when a decrement would drive paid_amount below zero.
	ErrPaidAmountUnderflow = errors.New("paid amount would become negative")

	// ErrTransactionChanged is returned when a conditional update finds the row no longer matches the expected state.
	ErrTransactionChanged = errors.New("transaction changed concurrently")

	// ErrStoreUnavailable is returned when the backing store cannot be reached.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// LedgerErrorCode defines error codes for ledger engine errors.
// Format: LED-XXYYYY where XX is category and YYYY is specific error.
type LedgerErrorCode string

const (
	// Consistency errors (03XXXX)
	ErrCodeBalanceNotApplied LedgerErrorCode = "LED-030001"
	ErrCodeStaleTransaction  LedgerErrorCode = "LED-030002"
	ErrCodePaidUnderflow     LedgerErrorCode = "LED-030003"

	// Transient errors (04XXXX)
	ErrCodeStoreUnavailable LedgerErrorCode = "LED-040001"
)

// ConsistencyError reports a write whose effect on the affected projects'
// paid amounts could not be confirmed. ProjectIDs have been queued for
// recomputation. Reconciled is true when the immediate recompute of every
// affected project succeeded, so the balances are already correct again.
type ConsistencyError struct {
	Code       LedgerErrorCode
	Message    string
	ProjectIDs []uuid.UUID
	Reconciled bool
	Err        error
}

// Error implements the error interface.
func (e *ConsistencyError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ConsistencyError) Unwrap() error {
	return e.Err
}

// Kind always reports KindConsistency.
func (e *ConsistencyError) Kind() ErrorKind {
	return KindConsistency
}

// NewConsistencyError creates a new ConsistencyError for the given projects.
func NewConsistencyError(code LedgerErrorCode, message string, projectIDs []uuid.UUID, err error) *ConsistencyError {
	return &ConsistencyError{
		Code:       code,
		Message:    message,
		ProjectIDs: projectIDs,
		Err:        err,
	}
}

// TransientError reports an operation that failed without any partial
// effect and may be retried as-is.
type TransientError struct {
	Code    LedgerErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransientError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransientError) Unwrap() error {
	return e.Err
}

// Kind always reports KindTransient.
func (e *TransientError) Kind() ErrorKind {
	return KindTransient
}

// NewTransientError creates a new TransientError.
func NewTransientError(message string, err error) *TransientError {
	return &TransientError{
		Code:    ErrCodeStoreUnavailable,
		Message: message,
		Err:     err,
	}
}
