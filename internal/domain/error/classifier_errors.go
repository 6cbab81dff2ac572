// Package error defines domain-specific errors for the budget ledger application.
package error

import "errors"

// Work-code classifier domain errors.
var (
	// ErrClassifierUnavailable is returned when the classifier is not configured.
	ErrClassifierUnavailable = errors.New("work code classifier unavailable")

	// ErrClassifierServiceError is returned when the classifier backend fails.
	ErrClassifierServiceError = errors.New("work code classifier error")

	// ErrClassifierRateLimited is returned when the classifier backend rate limits requests.
	ErrClassifierRateLimited = errors.New("work code classifier rate limited")

	// ErrClassifierBadResponse is returned when the classifier response cannot be parsed
	// or names a code outside the construction-type catalog.
	ErrClassifierBadResponse = errors.New("work code classifier returned unusable response")
)

// ClassifierErrorCode defines error codes for classifier errors.
// Format: CLS-XXYYYY where XX is category and YYYY is specific error.
type ClassifierErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeClassifierEmptyDescription ClassifierErrorCode = "CLS-010001"

	// External service errors (02XXXX)
	ErrCodeClassifierUnavailable  ClassifierErrorCode = "CLS-020001"
	ErrCodeClassifierServiceError ClassifierErrorCode = "CLS-020002"
	ErrCodeClassifierRateLimited  ClassifierErrorCode = "CLS-020003"
	ErrCodeClassifierBadResponse  ClassifierErrorCode = "CLS-020004"
)

// ClassifierError represents a classifier error with code and message.
type ClassifierError struct {
	Code    ClassifierErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ClassifierError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ClassifierError) Unwrap() error {
	return e.Err
}

// NewClassifierError creates a new ClassifierError with the given code and message.
func NewClassifierError(code ClassifierErrorCode, message string, err error) *ClassifierError {
	return &ClassifierError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
