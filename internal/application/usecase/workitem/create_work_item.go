// Package workitem contains work item-related use cases.
package workitem

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yosan-kanri/backend/internal/application/adapter"
	"github.com/yosan-kanri/backend/internal/domain/entity"
	domainerror "github.com/yosan-kanri/backend/internal/domain/error"
)

// CreateWorkItemInput represents the input for work item creation.
type CreateWorkItemInput struct {
	UserID       uuid.UUID
	ProjectID    uuid.UUID
	WorkCode     string
	WorkName     string
	BudgetAmount int64
}

// CreateWorkItemOutput represents the output of work item creation.
type CreateWorkItemOutput struct {
	WorkItem *entity.WorkItem
}

// CreateWorkItemUseCase handles work item creation logic.
type CreateWorkItemUseCase struct {
	workItemRepo adapter.WorkItemRepository
	projectRepo  adapter.ProjectRepository
}

// NewCreateWorkItemUseCase creates a new CreateWorkItemUseCase instance.
func NewCreateWorkItemUseCase(
	workItemRepo adapter.WorkItemRepository,
	projectRepo adapter.ProjectRepository,
) *CreateWorkItemUseCase {
	return &CreateWorkItemUseCase{
		workItemRepo: workItemRepo,
		projectRepo:  projectRepo,
	}
}

// Execute performs the work item creation.
func (uc *CreateWorkItemUseCase) Execute(ctx context.Context, input CreateWorkItemInput) (*CreateWorkItemOutput, error) {
	if input.BudgetAmount < 0 {
		return nil, domainerror.NewWorkItemError(
			domainerror.ErrCodeInvalidWorkItemBudget,
			"budget amount must not be negative",
			domainerror.ErrInvalidWorkItemBudget,
		)
	}

	project, err := loadOwnedProject(ctx, uc.projectRepo, input.ProjectID, input.UserID)
	if err != nil {
		return nil, err
	}

	// Fall back to the catalog name when only a known code is supplied.
	workName := input.WorkName
	if workName == "" {
		if name, ok := entity.ConstructionTypeName(input.WorkCode); ok {
			workName = name
		}
	}

	item := entity.NewWorkItem(project.ID, input.WorkCode, workName, input.BudgetAmount)

	if err := uc.workItemRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create work item: %w", err)
	}

	return &CreateWorkItemOutput{WorkItem: item}, nil
}
