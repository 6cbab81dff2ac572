package auth

import (
	"context"

	"github.com/yosan-kanri/backend/internal/application/adapter"
)

// LogoutUserInput names the refresh token to revoke.
type LogoutUserInput struct {
	RefreshToken string
}

// LogoutUserOutput confirms the logout.
type LogoutUserOutput struct {
	Message string
}

// LogoutUserUseCase revokes the caller's refresh token.
type LogoutUserUseCase struct {
	tokenService adapter.TokenService
}

// NewLogoutUserUseCase wires the logout use case.
func NewLogoutUserUseCase(tokenService adapter.TokenService) *LogoutUserUseCase {
	return &LogoutUserUseCase{tokenService: tokenService}
}

// Execute revokes the refresh token. Logout always succeeds; a token
// that is already invalid needs no further revocation.
func (uc *LogoutUserUseCase) Execute(ctx context.Context, input LogoutUserInput) (*LogoutUserOutput, error) {
	_ = uc.tokenService.InvalidateRefreshToken(ctx, input.RefreshToken)
	return &LogoutUserOutput{Message: "Successfully logged out"}, nil
}
