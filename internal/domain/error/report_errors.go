package error

import "errors"

// Report domain errors.
var (
	// ErrMissingStartDate is returned when start_date is not provided.
	ErrMissingStartDate = errors.New("start_date is required")

	// ErrMissingEndDate is returned when end_date is not provided.
	ErrMissingEndDate = errors.New("end_date is required")

	// ErrInvalidReportRange is returned when end_date is before start_date.
	ErrInvalidReportRange = errors.New("end_date must be after start_date")

	// ErrInvalidDateFormat is returned when date format is invalid.
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")

	// ErrMissingRecipient is returned when a report email has no recipient.
	ErrMissingRecipient = errors.New("recipient email is required")
)

// ReportErrorCode defines error codes for report errors.
// Format: RPT-XXYYYY where XX is category and YYYY is specific error.
type ReportErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingStartDate   ReportErrorCode = "RPT-010001"
	ErrCodeMissingEndDate     ReportErrorCode = "RPT-010002"
	ErrCodeInvalidReportRange ReportErrorCode = "RPT-010003"
	ErrCodeInvalidDateFormat  ReportErrorCode = "RPT-010004"
	ErrCodeMissingRecipient   ReportErrorCode = "RPT-010005"

	// Not found errors (02XXXX)
	ErrCodeReportProjectNotFound ReportErrorCode = "RPT-020001"

	// Internal errors (99XXXX)
	ErrCodeReportInternalError ReportErrorCode = "RPT-990001"
)

// ReportError represents a report error with code and message.
type ReportError struct {
	Code    ReportErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReportError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReportError) Unwrap() error {
	return e.Err
}

// Kind classifies the error from its code category.
func (e *ReportError) Kind() ErrorKind {
	return kindFromCode(string(e.Code))
}

// NewReportError creates a new ReportError with the given code and message.
func NewReportError(code ReportErrorCode, message string, err error) *ReportError {
	return &ReportError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
