// Package adapter declares the outbound interfaces the use cases depend
// on. The integration layer provides the concrete implementations.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenPair bundles the access token and refresh token issued at login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenClaims is the identity carried inside a validated JWT.
type TokenClaims struct {
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// TokenService issues and validates the JWT pair used by the API.
type TokenService interface {
	// GenerateTokenPair issues a fresh access/refresh pair. rememberMe
	// extends the refresh token lifetime.
	GenerateTokenPair(ctx context.Context, userID uuid.UUID, email string, rememberMe bool) (*TokenPair, error)

	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)

	ValidateRefreshToken(ctx context.Context, token string) (*TokenClaims, error)

	// InvalidateRefreshToken revokes a single refresh token (logout).
	InvalidateRefreshToken(ctx context.Context, token string) error

	// InvalidateAllUserTokens revokes every refresh token a user holds.
	InvalidateAllUserTokens(ctx context.Context, userID uuid.UUID) error

	// IsRefreshTokenValid reports whether the token is known and unrevoked.
	IsRefreshTokenValid(ctx context.Context, token string) (bool, error)
}

// PasswordResetToken is a single-use token emailed to a user who
// requested a password reset.
type PasswordResetToken struct {
	Token     string
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// PasswordResetTokenService manages the reset-token lifecycle.
type PasswordResetTokenService interface {
	GenerateResetToken(ctx context.Context, userID uuid.UUID, email string) (*PasswordResetToken, error)

	// ValidateResetToken returns the token's claims if it is known,
	// unused and unexpired.
	ValidateResetToken(ctx context.Context, token string) (*PasswordResetToken, error)

	// InvalidateResetToken consumes the token after a successful reset.
	InvalidateResetToken(ctx context.Context, token string) error
}
