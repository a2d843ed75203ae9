package error

import "errors"

// Project domain errors.
var (
	// ErrProjectNotFound is returned when a project is not found in the system.
	ErrProjectNotFound = errors.New("project not found")

	// ErrMissingProjectName is returned when a project has no name.
	ErrMissingProjectName = errors.New("project name is required")

	// ErrMissingPartner is returned when a project has no partner.
	ErrMissingPartner = errors.New("project partner is required")

	// ErrInvalidProjectStatus is returned when the status is not a known project status.
	ErrInvalidProjectStatus = errors.New("invalid project status")

	// ErrInvalidTaxRate is returned when the tax rate is not an accepted percentage.
	ErrInvalidTaxRate = errors.New("invalid tax rate")

	// ErrInvalidDateRange is returned when the end date is before the start date.
	ErrInvalidDateRange = errors.New("end date must not be before start date")

	// ErrNegativeProjectValue is returned when the project value is negative.
	ErrNegativeProjectValue = errors.New("project value must not be negative")
)

// ProjectErrorCode defines error codes for project errors.
// Format: PRJ-XXYYYY where XX is category and YYYY is specific error.
type ProjectErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingProjectName   ProjectErrorCode = "PRJ-010001"
	ErrCodeMissingPartner       ProjectErrorCode = "PRJ-010002"
	ErrCodeInvalidProjectStatus ProjectErrorCode = "PRJ-010003"
	ErrCodeInvalidTaxRate       ProjectErrorCode = "PRJ-010004"
	ErrCodeInvalidDateRange     ProjectErrorCode = "PRJ-010005"
	ErrCodeNegativeProjectValue ProjectErrorCode = "PRJ-010006"
	ErrCodeMissingProjectFields ProjectErrorCode = "PRJ-010007"

	// Not found errors (02XXXX)
	ErrCodeProjectNotFound ProjectErrorCode = "PRJ-020001"
)

// ProjectError represents a project error with code and message.
type ProjectError struct {
	Code    ProjectErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ProjectError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ProjectError) Unwrap() error {
	return e.Err
}

// Kind classifies the error from its code category.
func (e *ProjectError) Kind() ErrorKind {
	return kindFromCode(string(e.Code))
}

// NewProjectError creates a new ProjectError with the given code and message.
func NewProjectError(code ProjectErrorCode, message string, err error) *ProjectError {
	return &ProjectError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
