// Package error defines domain-specific errors for the budget ledger application.
package error

import "errors"

// User management domain errors.
var (
	// ErrNotAuthorizedToManageUsers is returned when a non-admin touches another user's account.
	ErrNotAuthorizedToManageUsers = errors.New("not authorized to manage users")

	// ErrCannotDeleteSelf is returned when a user attempts to delete their own account.
	ErrCannotDeleteSelf = errors.New("cannot delete own account")

	// ErrUsernameAlreadyExists is returned when a username collides with an existing one.
	ErrUsernameAlreadyExists = errors.New("username already exists")
)

// UserErrorCode defines error codes for user management errors.
// Format: USR-XXYYYY where XX is category and YYYY is specific error.
type UserErrorCode string

const (
	// Authorization errors (01XXXX)
	ErrCodeNotAuthorizedUsers UserErrorCode = "USR-010001"
	ErrCodeCannotDeleteSelf   UserErrorCode = "USR-010002"

	// Uniqueness errors (02XXXX)
	ErrCodeUsernameExists     UserErrorCode = "USR-020001"
)

// UserError represents a user management error with code and message.
type UserError struct {
	Code    UserErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *UserError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new UserError with the given code and message.
func NewUserError(code UserErrorCode, message string, err error) *UserError {
	return &UserError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
