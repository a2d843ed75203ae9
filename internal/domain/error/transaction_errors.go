package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found in the system.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidTransactionType is returned when the transaction type is invalid.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInvalidTransactionDate is returned when the transaction date is invalid.
	ErrInvalidTransactionDate = errors.New("invalid transaction date")

	// ErrInvalidTransactionAmount is returned when the transaction amount is not positive.
	ErrInvalidTransactionAmount = errors.New("invalid transaction amount")

	// ErrAmountPrecision is returned when the amount has more than two decimal places.
	ErrAmountPrecision = errors.New("amount has too many decimal places")

	// ErrMissingProject is returned when a transaction has no project.
	ErrMissingProject = errors.New("project is required")

	// ErrInvalidCategory is returned when the category does not belong to the transaction type.
	ErrInvalidCategory = errors.New("invalid category for transaction type")

	// ErrDescriptionTooLong is returned when the transaction description exceeds the maximum length.
	ErrDescriptionTooLong = errors.New("description too long")

	// ErrInvalidImage is returned when an evidence image has an unsupported type.
	ErrInvalidImage = errors.New("unsupported image type")

	// ErrImageTooLarge is returned when an evidence image exceeds the size limit.
	ErrImageTooLarge = errors.New("image too large")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionType   TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionDate   TransactionErrorCode = "TXN-010002"
	ErrCodeInvalidTransactionAmount TransactionErrorCode = "TXN-010003"
	ErrCodeMissingProject           TransactionErrorCode = "TXN-010004"
	ErrCodeInvalidCategory          TransactionErrorCode = "TXN-010005"
	ErrCodeDescriptionTooLong       TransactionErrorCode = "TXN-010006"
	ErrCodeMissingTransactionFields TransactionErrorCode = "TXN-010007"
	ErrCodeInvalidImage             TransactionErrorCode = "TXN-010008"
	ErrCodeImageTooLarge            TransactionErrorCode = "TXN-010009"
	ErrCodeAmountPrecision          TransactionErrorCode = "TXN-010010"

	// Not found errors (02XXXX)
	ErrCodeTransactionNotFound TransactionErrorCode = "TXN-020001"
	ErrCodeTxnProjectNotFound  TransactionErrorCode = "TXN-020002"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// Kind classifies the error from its code category.
func (e *TransactionError) Kind() ErrorKind {
	return kindFromCode(string(e.Code))
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
