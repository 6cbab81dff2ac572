package auth

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/yosan-kanri/backend/internal/application/adapter"
	domainerror "github.com/yosan-kanri/backend/internal/domain/error"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// The response never reveals whether the address has an account.
const forgotPasswordMessage = "If an account with that email exists, we have sent a password reset link"

// ForgotPasswordInput carries the address that requested a reset.
type ForgotPasswordInput struct {
	Email string
}

// ForgotPasswordOutput carries the uniform confirmation message.
type ForgotPasswordOutput struct {
	Message string
}

// ForgotPasswordUseCase issues a reset token and queues the reset email.
type ForgotPasswordUseCase struct {
	userRepo          adapter.UserRepository
	resetTokenService adapter.PasswordResetTokenService
	emailService      adapter.EmailService
	appBaseURL        string
}

// NewForgotPasswordUseCase wires the forgot-password use case.
func NewForgotPasswordUseCase(
	userRepo adapter.UserRepository,
	resetTokenService adapter.PasswordResetTokenService,
	emailService adapter.EmailService,
	appBaseURL string,
) *ForgotPasswordUseCase {
	return &ForgotPasswordUseCase{
		userRepo:          userRepo,
		resetTokenService: resetTokenService,
		emailService:      emailService,
		appBaseURL:        appBaseURL,
	}
}

// Execute handles a reset request. Apart from a malformed address, the
// outcome is always the same success message so account existence
// cannot be probed; failures past that point are logged, not returned.
func (uc *ForgotPasswordUseCase) Execute(ctx context.Context, input ForgotPasswordInput) (*ForgotPasswordOutput, error) {
	if !emailPattern.MatchString(input.Email) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidEmail,
			"invalid email format",
			domainerror.ErrInvalidEmail,
		)
	}

	user, err := uc.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		slog.Debug("password reset requested for unknown email", "email", input.Email)
		return &ForgotPasswordOutput{Message: forgotPasswordMessage}, nil
	}

	resetToken, err := uc.resetTokenService.GenerateResetToken(ctx, user.ID, user.Email)
	if err != nil {
		slog.Error("generate reset token", "error", err, "user_id", user.ID)
		return &ForgotPasswordOutput{Message: forgotPasswordMessage}, nil
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", uc.appBaseURL, resetToken.Token)

	if uc.emailService == nil {
		slog.Info("reset token generated but no email service is configured",
			"user_id", user.ID,
			"email", user.Email,
			"reset_url", resetURL,
		)
		return &ForgotPasswordOutput{Message: forgotPasswordMessage}, nil
	}

	err = uc.emailService.QueuePasswordResetEmail(ctx, adapter.QueuePasswordResetInput{
		UserID:    user.ID.String(),
		UserEmail: user.Email,
		UserName:  user.Username,
		ResetURL:  resetURL,
		ExpiresIn: "1時間",
	})
	if err != nil {
		slog.Error("queue password reset email", "error", err, "user_id", user.ID)
	} else {
		slog.Info("password reset email queued", "user_id", user.ID, "email", user.Email)
	}

	return &ForgotPasswordOutput{Message: forgotPasswordMessage}, nil
}
