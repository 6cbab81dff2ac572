package email

import (
	"context"

	"github.com/yosan-kanri/backend/internal/application/adapter"
	"github.com/yosan-kanri/backend/internal/domain/entity"
	domainerror "github.com/yosan-kanri/backend/internal/domain/error"
)

const passwordResetSubject = "パスワード再設定のご案内 - 予算管理"

// Service enqueues outbound email; the worker delivers it asynchronously.
type Service struct {
	queue      adapter.EmailQueueRepository
	appBaseURL string
}

// NewService creates the email queueing service.
func NewService(queue adapter.EmailQueueRepository, appBaseURL string) *Service {
	return &Service{queue: queue, appBaseURL: appBaseURL}
}

// QueuePasswordResetEmail enqueues a password-reset email for the user.
func (s *Service) QueuePasswordResetEmail(ctx context.Context, input adapter.QueuePasswordResetInput) error {
	job := entity.NewEmailJob(
		entity.TemplatePasswordReset,
		input.UserEmail,
		input.UserName,
		passwordResetSubject,
		map[string]interface{}{
			"user_name":  input.UserName,
			"reset_url":  input.ResetURL,
			"expires_in": input.ExpiresIn,
		},
	)

	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue password reset email",
			err,
		)
	}
	return nil
}

var _ adapter.EmailService = (*Service)(nil)
