// Package user contains user management use cases.
package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yosan-kanri/backend/internal/application/adapter"
	domainerror "github.com/yosan-kanri/backend/internal/domain/error"
)

// DeleteUserInput represents the input for deleting a user.
type DeleteUserInput struct {
	RequesterID uuid.UUID
	UserID      uuid.UUID
}

// DeleteUserOutput represents the output of deleting a user.
type DeleteUserOutput struct {
	Message string
}

// DeleteUserUseCase handles deleting a user. Admin only, and a user may
// never delete themself.
type DeleteUserUseCase struct {
	userRepo     adapter.UserRepository
	tokenService adapter.TokenService
}

// NewDeleteUserUseCase creates a new DeleteUserUseCase instance.
func NewDeleteUserUseCase(
	userRepo adapter.UserRepository,
	tokenService adapter.TokenService,
) *DeleteUserUseCase {
	return &DeleteUserUseCase{
		userRepo:     userRepo,
		tokenService: tokenService,
	}
}

// Execute performs the user deletion.
func (uc *DeleteUserUseCase) Execute(ctx context.Context, input DeleteUserInput) (*DeleteUserOutput, error) {
	requester, err := uc.userRepo.FindByID(ctx, input.RequesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to load requester: %w", err)
	}

	if !requester.IsAdmin {
		return nil, domainerror.NewUserError(
			domainerror.ErrCodeNotAuthorizedUsers,
			"only admins may delete users",
			domainerror.ErrNotAuthorizedToManageUsers,
		)
	}

	if input.RequesterID == input.UserID {
		return nil, domainerror.NewUserError(
			domainerror.ErrCodeCannotDeleteSelf,
			"cannot delete own account",
			domainerror.ErrCannotDeleteSelf,
		)
	}

	// Ensure the target exists before touching tokens.
	if _, err := uc.userRepo.FindByID(ctx, input.UserID); err != nil {
		return nil, err
	}

	// Revoke all sessions of the deleted user.
	if err := uc.tokenService.InvalidateAllUserTokens(ctx, input.UserID); err != nil {
		return nil, fmt.Errorf("failed to invalidate user tokens: %w", err)
	}

	if err := uc.userRepo.Delete(ctx, input.UserID); err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}

	return &DeleteUserOutput{Message: "User deleted"}, nil
}
