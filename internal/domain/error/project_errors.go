// Package error defines domain-specific errors for the budget ledger application.
package error

import "errors"

// Project domain errors.
var (
	// ErrProjectNotFound is returned when a project is not found in the system.
	ErrProjectNotFound = errors.New("project not found")

	// ErrProjectCodeExists is returned when a project code collides with an existing one.
	ErrProjectCodeExists = errors.New("project code already exists")

	// ErrNotAuthorizedToAccessProject is returned when the user does not own the project.
	ErrNotAuthorizedToAccessProject = errors.New("not authorized to access project")

	// ErrInvalidProjectAmount is returned when a contract or budget amount is negative or malformed.
	ErrInvalidProjectAmount = errors.New("invalid project amount")

	// ErrInvalidManagementRate is returned when the target management rate is negative.
	ErrInvalidManagementRate = errors.New("invalid target management rate")
)

// ProjectErrorCode defines error codes for project errors.
// Format: PRJ-XXYYYY where XX is category and YYYY is specific error.
type ProjectErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidProjectAmount  ProjectErrorCode = "PRJ-010001"
	ErrCodeMissingProjectFields  ProjectErrorCode = "PRJ-010002"
	ErrCodeInvalidManagementRate ProjectErrorCode = "PRJ-010003"

	// Lookup errors (02XXXX)
	ErrCodeProjectNotFound       ProjectErrorCode = "PRJ-020001"
	ErrCodeNotAuthorizedProject  ProjectErrorCode = "PRJ-020002"

	// Uniqueness errors (03XXXX)
	ErrCodeProjectCodeExists     ProjectErrorCode = "PRJ-030001"
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

// NewProjectError creates a new ProjectError with the given code and message.
func NewProjectError(code ProjectErrorCode, message string, err error) *ProjectError {
	return &ProjectError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
