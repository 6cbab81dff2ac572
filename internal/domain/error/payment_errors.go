// Package error defines domain-specific errors for the budget ledger application.
package error

import "errors"

// Payment domain errors.
var (
	// ErrPaymentNotFound is returned when a payment is not found in the system.
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrInvalidPaymentAmount is returned when the payment amount is negative or malformed.
	ErrInvalidPaymentAmount = errors.New("invalid payment amount")

	// ErrInvalidPaymentCategory is returned when the payment category is not recognized.
	ErrInvalidPaymentCategory = errors.New("invalid payment category")

	// ErrInvalidPaymentPeriod is returned when year and month are not both set or both undecided.
	ErrInvalidPaymentPeriod = errors.New("invalid payment period")

	// ErrContractPaymentNotFound is returned when a referenced contract payment does not exist.
	ErrContractPaymentNotFound = errors.New("contract payment not found")

	// ErrContractPaymentMismatch is returned when the referenced contract payment belongs to
	// another work item or is not a contract payment.
	ErrContractPaymentMismatch = errors.New("contract payment does not match work item")

	// ErrInvalidProgressRate is returned when a progress rate is negative or cannot be derived.
	ErrInvalidProgressRate = errors.New("invalid progress rate")
)

// PaymentErrorCode defines error codes for payment errors.
// Format: PAY-XXYYYY where XX is category and YYYY is specific error.
type PaymentErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidPaymentAmount   PaymentErrorCode = "PAY-010001"
	ErrCodeInvalidPaymentCategory PaymentErrorCode = "PAY-010002"
	ErrCodeInvalidPaymentPeriod   PaymentErrorCode = "PAY-010003"
	ErrCodeMissingPaymentFields   PaymentErrorCode = "PAY-010004"
	ErrCodeInvalidProgressRate    PaymentErrorCode = "PAY-010005"

	// Lookup errors (02XXXX)
	ErrCodePaymentNotFound         PaymentErrorCode = "PAY-020001"
	ErrCodeContractPaymentNotFound PaymentErrorCode = "PAY-020002"
	ErrCodeContractPaymentMismatch PaymentErrorCode = "PAY-020003"
)

// PaymentError represents a payment error with code and message.
type PaymentError struct {
	Code    PaymentErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *PaymentError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *PaymentError) Unwrap() error {
	return e.Err
}

// NewPaymentError creates a new PaymentError with the given code and message.
func NewPaymentError(code PaymentErrorCode, message string, err error) *PaymentError {
	return &PaymentError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
