// Package workitem contains work item-related use cases.
package workitem

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yosan-kanri/backend/internal/application/adapter"
)

// DeleteWorkItemInput represents the input for work item deletion.
type DeleteWorkItemInput struct {
	UserID     uuid.UUID
	WorkItemID uuid.UUID
}

// DeleteWorkItemUseCase handles work item deletion logic.
type DeleteWorkItemUseCase struct {
	workItemRepo adapter.WorkItemRepository
	projectRepo  adapter.ProjectRepository
}

// NewDeleteWorkItemUseCase creates a new DeleteWorkItemUseCase instance.
func NewDeleteWorkItemUseCase(
	workItemRepo adapter.WorkItemRepository,
	projectRepo adapter.ProjectRepository,
) *DeleteWorkItemUseCase {
	return &DeleteWorkItemUseCase{
		workItemRepo: workItemRepo,
		projectRepo:  projectRepo,
	}
}

// Execute deletes a work item the caller owns. Payments under the work item
// are removed by the database cascade.
func (uc *DeleteWorkItemUseCase) Execute(ctx context.Context, input DeleteWorkItemInput) error {
	item, err := loadOwnedWorkItem(ctx, uc.workItemRepo, uc.projectRepo, input.WorkItemID, input.UserID)
	if err != nil {
		return err
	}

	if err := uc.workItemRepo.Delete(ctx, item.ID); err != nil {
		return fmt.Errorf("failed to delete work item: %w", err)
	}

	return nil
}
