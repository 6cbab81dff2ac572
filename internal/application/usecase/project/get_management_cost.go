// Package project contains project-related use cases.
package project

import (
	"context"

	"github.com/google/uuid"

	"github.com/yosan-kanri/backend/internal/application/adapter"
	"github.com/yosan-kanri/backend/internal/domain/entity"
	"github.com/yosan-kanri/backend/internal/domain/valueobject"
)

// GetManagementCostInput represents the input for the management cost figures.
type GetManagementCostInput struct {
	UserID    uuid.UUID
	ProjectID uuid.UUID
}

// GetManagementCostOutput represents the output of the management cost figures.
type GetManagementCostOutput struct {
	ManagementCost valueobject.ManagementCost
}

// GetManagementCostUseCase derives the target management cost for a project
// without mutating its contract or budget figures.
type GetManagementCostUseCase struct {
	projectRepo adapter.ProjectRepository
}

// NewGetManagementCostUseCase creates a new GetManagementCostUseCase instance.
func NewGetManagementCostUseCase(projectRepo adapter.ProjectRepository) *GetManagementCostUseCase {
	return &GetManagementCostUseCase{
		projectRepo: projectRepo,
	}
}

// Execute performs the management cost derivation.
func (uc *GetManagementCostUseCase) Execute(ctx context.Context, input GetManagementCostInput) (*GetManagementCostOutput, error) {
	project, err := loadOwnedProject(ctx, uc.projectRepo, input.ProjectID, input.UserID)
	if err != nil {
		return nil, err
	}

	return &GetManagementCostOutput{
		ManagementCost: entity.ComputeManagementCost(project),
	}, nil
}
