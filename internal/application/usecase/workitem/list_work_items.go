// Package workitem contains work item-related use cases.
package workitem

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yosan-kanri/backend/internal/application/adapter"
	"github.com/yosan-kanri/backend/internal/domain/entity"
)

// ListWorkItemsInput represents the input for listing a project's work items.
type ListWorkItemsInput struct {
	UserID    uuid.UUID
	ProjectID uuid.UUID
}

// ListWorkItemsOutput represents the output of listing work items.
type ListWorkItemsOutput struct {
	WorkItems []*entity.WorkItem
}

// ListWorkItemsUseCase handles work item listing logic.
type ListWorkItemsUseCase struct {
	workItemRepo adapter.WorkItemRepository
	projectRepo  adapter.ProjectRepository
}

// NewListWorkItemsUseCase creates a new ListWorkItemsUseCase instance.
func NewListWorkItemsUseCase(
	workItemRepo adapter.WorkItemRepository,
	projectRepo adapter.ProjectRepository,
) *ListWorkItemsUseCase {
	return &ListWorkItemsUseCase{
		workItemRepo: workItemRepo,
		projectRepo:  projectRepo,
	}
}

// Execute lists the work items of a project the caller owns. Remaining
// amounts are rederived from the payment set on every read so stale caches
// never reach the caller.
func (uc *ListWorkItemsUseCase) Execute(ctx context.Context, input ListWorkItemsInput) (*ListWorkItemsOutput, error) {
	if _, err := loadOwnedProject(ctx, uc.projectRepo, input.ProjectID, input.UserID); err != nil {
		return nil, err
	}

	items, err := uc.workItemRepo.FindByProject(ctx, input.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list work items: %w", err)
	}

	for _, item := range items {
		remaining, err := uc.workItemRepo.RecomputeRemaining(ctx, item.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to recompute remaining amount: %w", err)
		}
		item.RemainingAmount = remaining
	}

	return &ListWorkItemsOutput{WorkItems: items}, nil
}
