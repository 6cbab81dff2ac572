// Package email delivers queued notification emails.
package email

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/yosan-kanri/backend/internal/application/adapter"
	"github.com/yosan-kanri/backend/internal/domain/entity"
	domainerror "github.com/yosan-kanri/backend/internal/domain/error"
	"github.com/yosan-kanri/backend/internal/integration/email/templates"
)

// WorkerConfig controls how often the queue is polled and how many jobs
// are claimed per poll.
type WorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
}

// DefaultWorkerConfig returns a conservative polling setup.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{PollInterval: 5 * time.Second, BatchSize: 10}
}

// Worker drains the email queue: it claims pending jobs, renders their
// templates and hands the result to the configured sender. Failed jobs
// are rescheduled unless the failure is permanent.
type Worker struct {
	queue    adapter.EmailQueueRepository
	sender   adapter.EmailSender
	renderer *templates.Renderer
	cfg      WorkerConfig
}

// NewWorker creates a queue worker with the given sender and renderer.
func NewWorker(queue adapter.EmailQueueRepository, sender adapter.EmailSender, renderer *templates.Renderer, cfg WorkerConfig) *Worker {
	return &Worker{queue: queue, sender: sender, renderer: renderer, cfg: cfg}
}

// Start runs the polling loop until ctx is cancelled. One batch is
// processed immediately so queued mail is not delayed by the first tick.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("email worker started",
		"poll_interval", w.cfg.PollInterval,
		"batch_size", w.cfg.BatchSize,
	)

	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	w.drainOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			slog.Info("email worker stopped")
			return
		case <-ticker.C:
			w.drainOnce(ctx)
		}
	}
}

// ProcessNow drains one batch synchronously. Tests use this instead of
// waiting for the poll interval.
func (w *Worker) ProcessNow(ctx context.Context) {
	w.drainOnce(ctx)
}

func (w *Worker) drainOnce(ctx context.Context) {
	jobs, err := w.queue.GetPendingJobs(ctx, w.cfg.BatchSize)
	if err != nil {
		slog.Error("fetch pending email jobs", "error", err)
		return
	}

	for _, job := range jobs {
		if ctx.Err() != nil {
			return
		}
		w.deliver(ctx, job)
	}
}

func (w *Worker) deliver(ctx context.Context, job *entity.EmailJob) {
	logger := slog.With(
		"job_id", job.ID,
		"template", job.TemplateType,
		"recipient", job.RecipientEmail,
	)

	job.MarkProcessing()
	if err := w.queue.Update(ctx, job); err != nil {
		logger.Error("claim email job", "error", err)
		return
	}

	html, text, err := w.render(job)
	if err != nil {
		logger.Error("render email template", "error", err)
		// A job that cannot render will never succeed; do not retry.
		w.fail(ctx, job, err, true)
		return
	}

	result, err := w.sender.Send(ctx, adapter.SendEmailInput{
		To:      job.RecipientEmail,
		Name:    job.RecipientName,
		Subject: job.Subject,
		HTML:    html,
		Text:    text,
	})
	if err != nil {
		logger.Error("send email", "error", err)
		var emailErr *domainerror.EmailError
		permanent := errors.As(err, &emailErr) && emailErr.Code == domainerror.ErrCodePermanentEmailFailure
		w.fail(ctx, job, err, permanent)
		return
	}

	job.MarkSent(result.ResendID)
	if err := w.queue.Update(ctx, job); err != nil {
		logger.Error("mark email job sent", "error", err)
		return
	}
	logger.Info("email delivered", "resend_id", result.ResendID)
}

func (w *Worker) render(job *entity.EmailJob) (html, text string, err error) {
	switch job.TemplateType {
	case entity.TemplatePasswordReset:
		data := templates.PasswordResetData{
			UserName:  stringValue(job.TemplateData, "user_name"),
			ResetURL:  stringValue(job.TemplateData, "reset_url"),
			ExpiresIn: stringValue(job.TemplateData, "expires_in"),
		}
		return w.renderer.Render(string(job.TemplateType), data)
	default:
		return "", "", domainerror.NewEmailError(
			domainerror.ErrCodeInvalidTemplate,
			"unknown template type",
			domainerror.ErrInvalidTemplate,
		)
	}
}

func (w *Worker) fail(ctx context.Context, job *entity.EmailJob, cause error, permanent bool) {
	job.MarkFailed(cause, permanent)

	if err := w.queue.Update(ctx, job); err != nil {
		slog.Error("update failed email job", "job_id", job.ID, "error", err)
	}

	if job.Status == entity.EmailStatusFailed {
		slog.Warn("email job permanently failed",
			"job_id", job.ID,
			"attempts", job.Attempts,
			"last_error", job.LastError,
		)
		return
	}
	slog.Info("email job scheduled for retry",
		"job_id", job.ID,
		"attempts", job.Attempts,
		"scheduled_at", job.ScheduledAt,
	)
}

func stringValue(data map[string]interface{}, key string) string {
	s, _ := data[key].(string)
	return s
}
