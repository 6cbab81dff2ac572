// Package error defines domain-specific errors for the budget ledger application.
package error

import "errors"

// Work item domain errors.
var (
	// ErrWorkItemNotFound is returned when a work item is not found in the system.
	ErrWorkItemNotFound = errors.New("work item not found")

	// ErrWorkItemNotInProject is returned when a work item does not belong to the addressed project.
	ErrWorkItemNotInProject = errors.New("work item does not belong to project")

	// ErrInvalidWorkItemBudget is returned when the budget allocation is negative or malformed.
	ErrInvalidWorkItemBudget = errors.New("invalid work item budget amount")
)

// WorkItemErrorCode defines error codes for work item errors.
// Format: WRK-XXYYYY where XX is category and YYYY is specific error.
type WorkItemErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidWorkItemBudget WorkItemErrorCode = "WRK-010001"
	ErrCodeMissingWorkItemFields WorkItemErrorCode = "WRK-010002"

	// Lookup errors (02XXXX)
	ErrCodeWorkItemNotFound      WorkItemErrorCode = "WRK-020001"
	ErrCodeWorkItemNotInProject  WorkItemErrorCode = "WRK-020002"
)

// WorkItemError represents a work item error with code and message.
type WorkItemError struct {
	Code    WorkItemErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *WorkItemError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *WorkItemError) Unwrap() error {
	return e.Err
}

// NewWorkItemError creates a new WorkItemError with the given code and message.
func NewWorkItemError(code WorkItemErrorCode, message string, err error) *WorkItemError {
	return &WorkItemError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
