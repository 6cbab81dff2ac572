package auth

import (
	"context"
	"fmt"

	"github.com/yosan-kanri/backend/internal/application/adapter"
	"github.com/yosan-kanri/backend/internal/domain/entity"
	domainerror "github.com/yosan-kanri/backend/internal/domain/error"
)

// RegisterUserInput carries the registration form fields.
type RegisterUserInput struct {
	Username string
	Email    string
	Password string
}

// RegisterUserOutput carries the new user and their first token pair.
type RegisterUserOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// RegisterUserUseCase creates a new account and logs it in.
type RegisterUserUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
}

// NewRegisterUserUseCase wires the registration use case.
func NewRegisterUserUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}

// Execute validates the form, rejects username and email collisions,
// stores the user with a hashed password and issues tokens so the new
// account is signed in immediately.
func (uc *RegisterUserUseCase) Execute(ctx context.Context, input RegisterUserInput) (*RegisterUserOutput, error) {
	if err := uc.validate(ctx, input); err != nil {
		return nil, err
	}

	hash, err := uc.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := entity.NewUser(input.Username, input.Email, hash)
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	pair, err := uc.tokenService.GenerateTokenPair(ctx, user.ID, user.Email, false)
	if err != nil {
		return nil, fmt.Errorf("generate tokens: %w", err)
	}

	return &RegisterUserOutput{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         user,
	}, nil
}

func (uc *RegisterUserUseCase) validate(ctx context.Context, input RegisterUserInput) error {
	if !emailPattern.MatchString(input.Email) {
		return domainerror.NewAuthError(
			domainerror.ErrCodeInvalidEmail,
			"invalid email format",
			domainerror.ErrInvalidEmail,
		)
	}

	if err := uc.passwordService.ValidatePasswordStrength(input.Password); err != nil {
		return domainerror.NewAuthError(
			domainerror.ErrCodeWeakPassword,
			"password does not meet minimum requirements",
			domainerror.ErrWeakPassword,
		)
	}

	taken, err := uc.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return fmt.Errorf("check username existence: %w", err)
	}
	if taken {
		return domainerror.NewAuthError(
			domainerror.ErrCodeUsernameTaken,
			"username already exists",
			domainerror.ErrUsernameAlreadyExists,
		)
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return fmt.Errorf("check email existence: %w", err)
	}
	if exists {
		return domainerror.NewAuthError(
			domainerror.ErrCodeEmailExists,
			"email already exists",
			domainerror.ErrEmailAlreadyExists,
		)
	}
	return nil
}
