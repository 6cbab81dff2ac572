// Package user contains user management use cases.
package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yosan-kanri/backend/internal/application/adapter"
	"github.com/yosan-kanri/backend/internal/domain/entity"
	domainerror "github.com/yosan-kanri/backend/internal/domain/error"
)

// ListUsersInput represents the input for listing users.
type ListUsersInput struct {
	RequesterID uuid.UUID
}

// ListUsersOutput represents the output of listing users.
type ListUsersOutput struct {
	Users []*entity.User
}

// ListUsersUseCase handles listing all users. Admin only.
type ListUsersUseCase struct {
	userRepo adapter.UserRepository
}

// NewListUsersUseCase creates a new ListUsersUseCase instance.
func NewListUsersUseCase(userRepo adapter.UserRepository) *ListUsersUseCase {
	return &ListUsersUseCase{
		userRepo: userRepo,
	}
}

// Execute performs the user listing.
func (uc *ListUsersUseCase) Execute(ctx context.Context, input ListUsersInput) (*ListUsersOutput, error) {
	requester, err := uc.userRepo.FindByID(ctx, input.RequesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to load requester: %w", err)
	}

	if !requester.IsAdmin {
		return nil, domainerror.NewUserError(
			domainerror.ErrCodeNotAuthorizedUsers,
			"only admins may list users",
			domainerror.ErrNotAuthorizedToManageUsers,
		)
	}

	users, err := uc.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return &ListUsersOutput{Users: users}, nil
}
