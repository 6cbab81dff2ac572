// Package project contains project-related use cases.
package project

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
