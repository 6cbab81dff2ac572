// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"fmt"

	"github.com/yosan-kanri/backend/internal/application/adapter"
	"github.com/yosan-kanri/backend/internal/domain/entity"
	domainerror "github.com/yosan-kanri/backend/internal/domain/error"
)

// LoginUserInput carries the submitted credentials.
type LoginUserInput struct {
	Username   string
	Password   string
	RememberMe bool
}

// LoginUserOutput carries the issued tokens and the authenticated user.
type LoginUserOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// LoginUserUseCase authenticates a user and issues a token pair.
type LoginUserUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
}

// NewLoginUserUseCase wires the login use case.
func NewLoginUserUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
) *LoginUserUseCase {
	return &LoginUserUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}

// Execute checks the credentials and issues tokens. An unknown username
// and a wrong password produce the same error so usernames cannot be
// enumerated.
func (uc *LoginUserUseCase) Execute(ctx context.Context, input LoginUserInput) (*LoginUserOutput, error) {
	user, err := uc.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		return nil, invalidCredentials()
	}

	if err := uc.passwordService.VerifyPassword(user.PasswordHash, input.Password); err != nil {
		return nil, invalidCredentials()
	}

	pair, err := uc.tokenService.GenerateTokenPair(ctx, user.ID, user.Email, input.RememberMe)
	if err != nil {
		return nil, fmt.Errorf("generate tokens: %w", err)
	}

	return &LoginUserOutput{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         user,
	}, nil
}

func invalidCredentials() error {
	return domainerror.NewAuthError(
		domainerror.ErrCodeInvalidCredentials,
		"invalid username or password",
		domainerror.ErrInvalidCredentials,
	)
}
