// Package adapters implements the application-layer adapter interfaces.
package adapters

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/yosan-kanri/backend/internal/application/adapter"
)

// Passwords are hashed with a fixed bcrypt cost so that hashes stay
// comparable across deployments.
const passwordHashCost = 12

const passwordMinLength = 8

type passwordService struct{}

// NewPasswordService returns the bcrypt-backed password adapter.
func NewPasswordService() adapter.PasswordService {
	return passwordService{}
}

func (passwordService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (passwordService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func (passwordService) ValidatePasswordStrength(password string) error {
	if len(password) < passwordMinLength {
		return errors.New("password must be at least 8 characters long")
	}
	return nil
}
