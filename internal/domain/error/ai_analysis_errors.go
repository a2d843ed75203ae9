package error

import "errors"

// AI image analysis domain errors.
var (
	// ErrAIServiceUnavailable is returned when no AI service is configured.
	ErrAIServiceUnavailable = errors.New("ai service unavailable")

	// ErrAIServiceError is returned when the AI service encounters an error.
	ErrAIServiceError = errors.New("ai service error")

	// ErrAIRateLimited is returned when the AI service rate limits requests.
	ErrAIRateLimited = errors.New("ai service rate limited")

	// ErrAIUnparseableResponse is returned when the AI output cannot be decoded.
	ErrAIUnparseableResponse = errors.New("ai response could not be parsed")

	// ErrStorageUnavailable is returned when the blob storage is not configured.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrUploadFailed is returned when an evidence image could not be stored.
	ErrUploadFailed = errors.New("failed to upload image")
)

// AIAnalysisErrorCode defines error codes for AI analysis and evidence storage errors.
// Format: AIA-XXYYYY where XX is category and YYYY is specific error.
type AIAnalysisErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeAIInvalidImage       AIAnalysisErrorCode = "AIA-010001"
	ErrCodeAIUnparseable        AIAnalysisErrorCode = "AIA-010002"
	ErrCodeAIMissingImage       AIAnalysisErrorCode = "AIA-010003"
	ErrCodeAIAnalysisImageLarge AIAnalysisErrorCode = "AIA-010004"

	// External service errors (04XXXX)
	ErrCodeAIServiceError     AIAnalysisErrorCode = "AIA-040001"
	ErrCodeAIRateLimited      AIAnalysisErrorCode = "AIA-040002"
	ErrCodeAIUnavailable      AIAnalysisErrorCode = "AIA-040003"
	ErrCodeStorageUnavailable AIAnalysisErrorCode = "AIA-040004"
	ErrCodeUploadFailed       AIAnalysisErrorCode = "AIA-040005"
	ErrCodeAITimeout          AIAnalysisErrorCode = "AIA-040006"

	// Errors a retry will not fix (99XXXX)
	ErrCodeAIAuthError    AIAnalysisErrorCode = "AIA-990001"
	ErrCodeAIUnknownError AIAnalysisErrorCode = "AIA-990002"
)

// AIAnalysisError represents an AI analysis error with code and message.
type AIAnalysisError struct {
	Code    AIAnalysisErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AIAnalysisError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AIAnalysisError) Unwrap() error {
	return e.Err
}

// Kind classifies the error from its code category.
func (e *AIAnalysisError) Kind() ErrorKind {
	return kindFromCode(string(e.Code))
}

// NewAIAnalysisError creates a new AIAnalysisError with the given code and message.
func NewAIAnalysisError(code AIAnalysisErrorCode, message string, err error) *AIAnalysisError {
	return &AIAnalysisError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
