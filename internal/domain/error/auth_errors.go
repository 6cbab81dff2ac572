// Package error defines domain-specific errors for the budget ledger application.
package error

import "errors"

// Sentinel errors for authentication and account management.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
	ErrInvalidResetToken  = errors.New("invalid or expired password reset token")
	ErrWeakPassword       = errors.New("password does not meet minimum requirements")
	ErrInvalidEmail       = errors.New("invalid email format")
)

// AuthErrorCode is a stable machine-readable code returned to API
// clients. Format: AUTH-XXYYYY, XX = category, YYYY = specific error.
type AuthErrorCode string

// Registration (01), login (02), token (03) and password reset (04) codes.
const (
	ErrCodeEmailExists   AuthErrorCode = "AUTH-010001"
	ErrCodeUsernameTaken AuthErrorCode = "AUTH-010002"
	ErrCodeWeakPassword  AuthErrorCode = "AUTH-010003"
	ErrCodeInvalidEmail  AuthErrorCode = "AUTH-010004"
	ErrCodeMissingFields AuthErrorCode = "AUTH-010005"

	ErrCodeInvalidCredentials AuthErrorCode = "AUTH-020001"
	ErrCodeUserNotFound       AuthErrorCode = "AUTH-020002"
	ErrCodeRateLimited        AuthErrorCode = "AUTH-020003"

	ErrCodeInvalidToken AuthErrorCode = "AUTH-030001"
	ErrCodeExpiredToken AuthErrorCode = "AUTH-030002"
	ErrCodeMissingToken AuthErrorCode = "AUTH-030003"

	ErrCodeInvalidResetToken AuthErrorCode = "AUTH-040001"
	ErrCodeExpiredResetToken AuthErrorCode = "AUTH-040002"
)

// AuthError pairs a client-facing code with a message and the
// underlying cause.
type AuthError struct {
	Code    AuthErrorCode
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewAuthError builds an AuthError wrapping err.
func NewAuthError(code AuthErrorCode, message string, err error) *AuthError {
	return &AuthError{Code: code, Message: message, Err: err}
}
