// Package workitem contains work item-related use cases.
package workitem

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yosan-kanri/backend/internal/application/adapter"
	"github.com/yosan-kanri/backend/internal/domain/entity"
	domainerror "github.com/yosan-kanri/backend/internal/domain/error"
)

// UpdateWorkItemInput represents the input for work item updates. Nil fields
// are left unchanged.
type UpdateWorkItemInput struct {
	UserID       uuid.UUID
	WorkItemID   uuid.UUID
	WorkCode     *string
	WorkName     *string
	BudgetAmount *int64
}

// UpdateWorkItemOutput represents the output of a work item update.
type UpdateWorkItemOutput struct {
	WorkItem *entity.WorkItem
}

// UpdateWorkItemUseCase handles work item update logic.
type UpdateWorkItemUseCase struct {
	workItemRepo adapter.WorkItemRepository
	projectRepo  adapter.ProjectRepository
}

// NewUpdateWorkItemUseCase creates a new UpdateWorkItemUseCase instance.
func NewUpdateWorkItemUseCase(
	workItemRepo adapter.WorkItemRepository,
	projectRepo adapter.ProjectRepository,
) *UpdateWorkItemUseCase {
	return &UpdateWorkItemUseCase{
		workItemRepo: workItemRepo,
		projectRepo:  projectRepo,
	}
}

// Execute applies a partial update to a work item the caller owns. Changing
// the budget allocation shifts the remaining amount by the same delta, which
// the repository rederives from the payment set on save.
func (uc *UpdateWorkItemUseCase) Execute(ctx context.Context, input UpdateWorkItemInput) (*UpdateWorkItemOutput, error) {
	item, err := loadOwnedWorkItem(ctx, uc.workItemRepo, uc.projectRepo, input.WorkItemID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.WorkCode != nil {
		item.WorkCode = *input.WorkCode
		if input.WorkName == nil {
			if name, ok := entity.ConstructionTypeName(*input.WorkCode); ok {
				item.WorkName = name
			}
		}
	}
	if input.WorkName != nil {
		item.WorkName = *input.WorkName
	}
	if input.BudgetAmount != nil {
		if *input.BudgetAmount < 0 {
			return nil, domainerror.NewWorkItemError(
				domainerror.ErrCodeInvalidWorkItemBudget,
				"budget amount must not be negative",
				domainerror.ErrInvalidWorkItemBudget,
			)
		}
		item.BudgetAmount = *input.BudgetAmount
	}
	item.UpdatedAt = time.Now().UTC()

	if err := uc.workItemRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update work item: %w", err)
	}

	return &UpdateWorkItemOutput{WorkItem: item}, nil
}
