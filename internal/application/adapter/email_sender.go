package adapter

import "context"

// SendEmailInput is one rendered email ready for delivery.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult carries the provider's message identifier.
type SendEmailResult struct {
	ResendID string
}

// EmailSender delivers a rendered email through an external provider.
type EmailSender interface {
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// QueuePasswordResetInput describes the password-reset email to enqueue.
type QueuePasswordResetInput struct {
	UserID    string
	UserEmail string
	UserName  string
	ResetURL  string
	ExpiresIn string
}

// EmailService enqueues outbound email for the background worker.
type EmailService interface {
	QueuePasswordResetEmail(ctx context.Context, input QueuePasswordResetInput) error
}
