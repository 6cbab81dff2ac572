// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yosan-kanri/backend/internal/application/adapter"
	domainerror "github.com/yosan-kanri/backend/internal/domain/error"
	"github.com/yosan-kanri/backend/internal/integration/entrypoint/dto"
)

// Context keys under which the authenticated user is stored for handlers.
const (
	userIDContextKey    = "user_id"
	userEmailContextKey = "user_email"
)

const bearerPrefix = "Bearer "

// AuthMiddleware guards routes with JWT access-token authentication.
type AuthMiddleware struct {
	tokenService adapter.TokenService
}

// NewAuthMiddleware creates the authentication middleware.
func NewAuthMiddleware(tokenService adapter.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenService: tokenService}
}

// Authenticate validates the Bearer token and stores the caller's identity
// in the request context. Requests without a valid token are rejected
// with 401 before reaching the handler.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, errCode, errMsg := bearerToken(c)
		if token == "" {
			abortUnauthorized(c, errCode, errMsg)
			return
		}

		claims, err := m.tokenService.ValidateAccessToken(c.Request.Context(), token)
		if err != nil {
			abortUnauthorized(c, domainerror.ErrCodeInvalidToken, "Invalid or expired token")
			return
		}

		c.Set(userIDContextKey, claims.UserID)
		c.Set(userEmailContextKey, claims.Email)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (token string, code domainerror.AuthErrorCode, msg string) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", domainerror.ErrCodeMissingToken, "Authorization header is required"
	}
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", domainerror.ErrCodeInvalidToken, "Invalid authorization header format"
	}
	token = strings.TrimPrefix(header, bearerPrefix)
	if token == "" {
		return "", domainerror.ErrCodeMissingToken, "Token is required"
	}
	return token, "", ""
}

func abortUnauthorized(c *gin.Context, code domainerror.AuthErrorCode, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: msg,
		Code:  string(code),
	})
}

// GetUserIDFromContext returns the authenticated user's ID set by Authenticate.
func GetUserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(userIDContextKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// GetUserEmailFromContext returns the authenticated user's email set by Authenticate.
func GetUserEmailFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(userEmailContextKey)
	if !ok {
		return "", false
	}
	email, ok := v.(string)
	return email, ok
}
