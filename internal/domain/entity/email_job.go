package entity

import (
	"time"

	"github.com/google/uuid"
)

// EmailStatus is the lifecycle state of a queued email.
type EmailStatus string

const (
	EmailStatusPending    EmailStatus = "pending"
	EmailStatusProcessing EmailStatus = "processing"
	EmailStatusSent       EmailStatus = "sent"
	EmailStatusFailed     EmailStatus = "failed"
)

// EmailTemplateType names the template an email job renders.
type EmailTemplateType string

const (
	TemplatePasswordReset EmailTemplateType = "password_reset"
)

const emailMaxAttempts = 3

// Delivery retries back off: immediate, one minute, five minutes.
var emailRetryDelays = []time.Duration{0, 1 * time.Minute, 5 * time.Minute}

// EmailJob is one email waiting in the queue. The worker moves it
// through pending → processing → sent, or back to pending with a later
// ScheduledAt when a retryable delivery attempt fails.
type EmailJob struct {
	ID             uuid.UUID
	TemplateType   EmailTemplateType
	RecipientEmail string
	RecipientName  string
	Subject        string
	TemplateData   map[string]interface{}
	Status         EmailStatus
	Attempts       int
	MaxAttempts    int
	LastError      string
	ResendID       string
	CreatedAt      time.Time
	ScheduledAt    time.Time
	ProcessedAt    *time.Time
}

// NewEmailJob creates a pending job scheduled for immediate delivery.
func NewEmailJob(templateType EmailTemplateType, recipientEmail, recipientName, subject string, data map[string]interface{}) *EmailJob {
	now := time.Now().UTC()
	return &EmailJob{
		ID:             uuid.New(),
		TemplateType:   templateType,
		RecipientEmail: recipientEmail,
		RecipientName:  recipientName,
		Subject:        subject,
		TemplateData:   data,
		Status:         EmailStatusPending,
		MaxAttempts:    emailMaxAttempts,
		CreatedAt:      now,
		ScheduledAt:    now,
	}
}

// MarkProcessing claims the job for a delivery attempt.
func (e *EmailJob) MarkProcessing() {
	e.Status = EmailStatusProcessing
}

// MarkSent records a successful delivery and the provider's message ID.
func (e *EmailJob) MarkSent(resendID string) {
	now := time.Now().UTC()
	e.Status = EmailStatusSent
	e.ResendID = resendID
	e.ProcessedAt = &now
}

// MarkFailed records a failed attempt. The job is requeued with backoff
// unless the failure is permanent or the attempt budget is spent.
func (e *EmailJob) MarkFailed(err error, permanent bool) {
	e.Attempts++
	e.LastError = err.Error()

	if permanent || e.Attempts >= e.MaxAttempts {
		now := time.Now().UTC()
		e.Status = EmailStatusFailed
		e.ProcessedAt = &now
		return
	}

	e.Status = EmailStatusPending
	e.ScheduledAt = time.Now().UTC().Add(e.nextRetryDelay())
}

func (e *EmailJob) nextRetryDelay() time.Duration {
	if e.Attempts < len(emailRetryDelays) {
		return emailRetryDelays[e.Attempts]
	}
	return emailRetryDelays[len(emailRetryDelays)-1]
}
