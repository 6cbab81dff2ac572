// Package user contains user management use cases.
package user

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yosan-kanri/backend/internal/application/adapter"
	"github.com/yosan-kanri/backend/internal/domain/entity"
	domainerror "github.com/yosan-kanri/backend/internal/domain/error"
)

// UpdateUserInput represents the input for updating a user.
type UpdateUserInput struct {
	RequesterID uuid.UUID
	UserID      uuid.UUID
	Username    *string
	Email       *string
	Password    *string
	IsAdmin     *bool // Admin-only field
}

// UpdateUserOutput represents the output of updating a user.
type UpdateUserOutput struct {
	User *entity.User
}

// UpdateUserUseCase handles updating a user. Self or admin; only an admin
// may toggle the admin flag.
type UpdateUserUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
}

// NewUpdateUserUseCase creates a new UpdateUserUseCase instance.
func NewUpdateUserUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
) *UpdateUserUseCase {
	return &UpdateUserUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
	}
}

// Execute performs the user update.
func (uc *UpdateUserUseCase) Execute(ctx context.Context, input UpdateUserInput) (*UpdateUserOutput, error) {
	requester, err := uc.userRepo.FindByID(ctx, input.RequesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to load requester: %w", err)
	}

	if !requester.CanManage(input.UserID) {
		return nil, domainerror.NewUserError(
			domainerror.ErrCodeNotAuthorizedUsers,
			"not authorized to edit this user",
			domainerror.ErrNotAuthorizedToManageUsers,
		)
	}

	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Username != nil && *input.Username != user.Username {
		taken, err := uc.userRepo.ExistsByUsername(ctx, *input.Username)
		if err != nil {
			return nil, fmt.Errorf("failed to check username existence: %w", err)
		}
		if taken {
			return nil, domainerror.NewUserError(
				domainerror.ErrCodeUsernameExists,
				"username already exists",
				domainerror.ErrUsernameAlreadyExists,
			)
		}
		user.Username = *input.Username
	}

	if input.Email != nil && *input.Email != user.Email {
		exists, err := uc.userRepo.ExistsByEmail(ctx, *input.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check email existence: %w", err)
		}
		if exists {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeEmailExists,
				"email already exists",
				domainerror.ErrEmailAlreadyExists,
			)
		}
		user.Email = *input.Email
	}

	if input.Password != nil {
		if err := uc.passwordService.ValidatePasswordStrength(*input.Password); err != nil {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeWeakPassword,
				"password does not meet minimum requirements",
				domainerror.ErrWeakPassword,
			)
		}
		hash, err := uc.passwordService.HashPassword(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	// The admin flag is only editable by admins, never by the user themself.
	if input.IsAdmin != nil {
		if !requester.IsAdmin {
			return nil, domainerror.NewUserError(
				domainerror.ErrCodeNotAuthorizedUsers,
				"only admins may change the admin flag",
				domainerror.ErrNotAuthorizedToManageUsers,
			)
		}
		user.IsAdmin = *input.IsAdmin
	}

	user.UpdatedAt = time.Now().UTC()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return &UpdateUserOutput{User: user}, nil
}
