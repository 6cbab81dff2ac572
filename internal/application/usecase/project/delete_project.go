// Package project contains project-related use cases.
package project

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yosan-kanri/backend/internal/application/adapter"
)

// DeleteProjectInput represents the input for project deletion.
type DeleteProjectInput struct {
	UserID    uuid.UUID
	ProjectID uuid.UUID
}

// DeleteProjectOutput represents the output of project deletion.
type DeleteProjectOutput struct {
	Message string
}

// DeleteProjectUseCase handles project deletion. Deleting a project removes
// all its work items and, transitively, all their payments.
type DeleteProjectUseCase struct {
	projectRepo adapter.ProjectRepository
}

// NewDeleteProjectUseCase creates a new DeleteProjectUseCase instance.
func NewDeleteProjectUseCase(projectRepo adapter.ProjectRepository) *DeleteProjectUseCase {
	return &DeleteProjectUseCase{
		projectRepo: projectRepo,
	}
}

// Execute performs the project deletion.
func (uc *DeleteProjectUseCase) Execute(ctx context.Context, input DeleteProjectInput) (*DeleteProjectOutput, error) {
	project, err := loadOwnedProject(ctx, uc.projectRepo, input.ProjectID, input.UserID)
	if err != nil {
		return nil, err
	}

	if err := uc.projectRepo.Delete(ctx, project.ID); err != nil {
		return nil, fmt.Errorf("failed to delete project: %w", err)
	}

	return &DeleteProjectOutput{Message: "Project deleted"}, nil
}
