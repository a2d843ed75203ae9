package error

import "errors"

// ErrInvalidTemplate is returned when a queued job names a template the
// renderer does not know.
var ErrInvalidTemplate = errors.New("invalid email template")

// EmailErrorCode defines error codes for outbound notification errors.
// Format: EMAIL-XXYYYY where XX is category and YYYY is specific error.
type EmailErrorCode string

const (
	// Outbox errors (01XXXX)
	ErrCodeEmailQueueFailed EmailErrorCode = "EMAIL-010001"

	// Delivery errors (02XXXX). Rejected deliveries are never retried.
	ErrCodeEmailSendFailed   EmailErrorCode = "EMAIL-020001"
	ErrCodeEmailSendRejected EmailErrorCode = "EMAIL-020002"

	// Template errors (03XXXX)
	ErrCodeInvalidTemplate      EmailErrorCode = "EMAIL-030001"
	ErrCodeTemplateRenderFailed EmailErrorCode = "EMAIL-030002"
)

// EmailError represents a notification error with code and message.
type EmailError struct {
	Code    EmailErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *EmailError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *EmailError) Unwrap() error {
	return e.Err
}

// Retryable reports whether another delivery attempt can succeed.
func (e *EmailError) Retryable() bool {
	return e.Code == ErrCodeEmailSendFailed
}

// NewEmailError creates a new EmailError with the given code and message.
func NewEmailError(code EmailErrorCode, message string, err error) *EmailError {
	return &EmailError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
