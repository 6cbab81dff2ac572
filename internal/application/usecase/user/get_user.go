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

// GetUserInput represents the input for fetching a user.
type GetUserInput struct {
	RequesterID uuid.UUID
	UserID      uuid.UUID
}

// GetUserOutput represents the output of fetching a user.
type GetUserOutput struct {
	User *entity.User
}

// GetUserUseCase handles fetching a single user. Self or admin.
type GetUserUseCase struct {
	userRepo adapter.UserRepository
}

// NewGetUserUseCase creates a new GetUserUseCase instance.
func NewGetUserUseCase(userRepo adapter.UserRepository) *GetUserUseCase {
	return &GetUserUseCase{
		userRepo: userRepo,
	}
}

// Execute performs the user fetch.
func (uc *GetUserUseCase) Execute(ctx context.Context, input GetUserInput) (*GetUserOutput, error) {
	requester, err := uc.userRepo.FindByID(ctx, input.RequesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to load requester: %w", err)
	}

	if !requester.CanManage(input.UserID) {
		return nil, domainerror.NewUserError(
			domainerror.ErrCodeNotAuthorizedUsers,
			"not authorized to view this user",
			domainerror.ErrNotAuthorizedToManageUsers,
		)
	}

	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	return &GetUserOutput{User: user}, nil
}
