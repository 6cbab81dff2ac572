// Package workitem contains work item-related use cases.
package workitem

import (
	"context"

	"github.com/google/uuid"

	"github.com/yosan-kanri/backend/internal/application/adapter"
	"github.com/yosan-kanri/backend/internal/domain/entity"
	domainerror "github.com/yosan-kanri/backend/internal/domain/error"
)

// loadOwnedProject fetches a project and verifies the caller owns it.
func loadOwnedProject(ctx context.Context, repo adapter.ProjectRepository, projectID, userID uuid.UUID) (*entity.Project, error) {
	project, err := repo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if project.UserID != userID {
		return nil, domainerror.NewProjectError(
			domainerror.ErrCodeNotAuthorizedProject,
			"not authorized to access project",
			domainerror.ErrNotAuthorizedToAccessProject,
		)
	}

	return project, nil
}

// loadOwnedWorkItem fetches a work item and verifies, through its project,
// that the caller owns it.
func loadOwnedWorkItem(
	ctx context.Context,
	workItemRepo adapter.WorkItemRepository,
	projectRepo adapter.ProjectRepository,
	workItemID, userID uuid.UUID,
) (*entity.WorkItem, error) {
	item, err := workItemRepo.FindByID(ctx, workItemID)
	if err != nil {
		return nil, err
	}

	if _, err := loadOwnedProject(ctx, projectRepo, item.ProjectID, userID); err != nil {
		return nil, err
	}

	return item, nil
}
