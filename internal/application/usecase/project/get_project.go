// Package project contains project-related use cases.
package project

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yosan-kanri/backend/internal/application/adapter"
	"github.com/yosan-kanri/backend/internal/domain/entity"
	"github.com/yosan-kanri/backend/internal/domain/valueobject"
)

// GetProjectInput represents the input for fetching a project.
type GetProjectInput struct {
	UserID    uuid.UUID
	ProjectID uuid.UUID
}

// GetProjectOutput represents the output of fetching a project.
type GetProjectOutput struct {
	Project   *entity.Project
	WorkItems []*entity.WorkItem
	Rollup    valueobject.ProjectRollup
}

// GetProjectUseCase handles fetching a project with its work items and
// freshly derived rollup figures.
type GetProjectUseCase struct {
	projectRepo  adapter.ProjectRepository
	workItemRepo adapter.WorkItemRepository
	paymentRepo  adapter.PaymentRepository
}

// NewGetProjectUseCase creates a new GetProjectUseCase instance.
func NewGetProjectUseCase(
	projectRepo adapter.ProjectRepository,
	workItemRepo adapter.WorkItemRepository,
	paymentRepo adapter.PaymentRepository,
) *GetProjectUseCase {
	return &GetProjectUseCase{
		projectRepo:  projectRepo,
		workItemRepo: workItemRepo,
		paymentRepo:  paymentRepo,
	}
}

// Execute performs the project fetch.
func (uc *GetProjectUseCase) Execute(ctx context.Context, input GetProjectInput) (*GetProjectOutput, error) {
	project, err := loadOwnedProject(ctx, uc.projectRepo, input.ProjectID, input.UserID)
	if err != nil {
		return nil, err
	}

	workItems, err := uc.workItemRepo.FindByProject(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load work items: %w", err)
	}

	payments, err := uc.paymentRepo.FindByProject(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}

	return &GetProjectOutput{
		Project:   project,
		WorkItems: workItems,
		Rollup:    entity.ComputeRollup(project, workItems, payments),
	}, nil
}
