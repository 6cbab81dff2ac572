package error

import "errors"

// Sentinel errors for the email queue and delivery pipeline.
var (
	ErrEmailQueueFailed      = errors.New("failed to queue email")
	ErrEmailSendFailed       = errors.New("failed to send email")
	ErrInvalidTemplate       = errors.New("invalid email template")
	ErrTemplateRenderFailed  = errors.New("failed to render email template")
	ErrEmailJobNotFound      = errors.New("email job not found")
	ErrPermanentEmailFailure = errors.New("permanent email failure")
	ErrTemporaryEmailFailure = errors.New("temporary email failure")
)

// EmailErrorCode is a stable machine-readable code for email failures.
// Format: EMAIL-XXYYYY, XX = category, YYYY = specific error.
type EmailErrorCode string

// Queue (01), delivery (02) and template (03) codes. The worker treats
// permanent delivery failures as non-retryable.
const (
	ErrCodeEmailQueueFailed EmailErrorCode = "EMAIL-010001"
	ErrCodeEmailJobNotFound EmailErrorCode = "EMAIL-010002"

	ErrCodeEmailSendFailed       EmailErrorCode = "EMAIL-020001"
	ErrCodePermanentEmailFailure EmailErrorCode = "EMAIL-020002"
	ErrCodeTemporaryEmailFailure EmailErrorCode = "EMAIL-020003"

	ErrCodeInvalidTemplate      EmailErrorCode = "EMAIL-030001"
	ErrCodeTemplateRenderFailed EmailErrorCode = "EMAIL-030002"
)

// EmailError pairs a client-facing code with a message and the
// underlying cause.
type EmailError struct {
	Code    EmailErrorCode
	Message string
	Err     error
}

func (e *EmailError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *EmailError) Unwrap() error {
	return e.Err
}

// NewEmailError builds an EmailError wrapping err.
func NewEmailError(code EmailErrorCode, message string, err error) *EmailError {
	return &EmailError{Code: code, Message: message, Err: err}
}
