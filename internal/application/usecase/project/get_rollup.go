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

// GetRollupInput represents the input for the project rollup.
type GetRollupInput struct {
	UserID    uuid.UUID
	ProjectID uuid.UUID
}

// GetRollupOutput represents the output of the project rollup.
type GetRollupOutput struct {
	Rollup valueobject.ProjectRollup
}

// GetRollupUseCase derives the project-level aggregate figures from the
// current work item and payment sets.
type GetRollupUseCase struct {
	projectRepo  adapter.ProjectRepository
	workItemRepo adapter.WorkItemRepository
	paymentRepo  adapter.PaymentRepository
}

// NewGetRollupUseCase creates a new GetRollupUseCase instance.
func NewGetRollupUseCase(
	projectRepo adapter.ProjectRepository,
	workItemRepo adapter.WorkItemRepository,
	paymentRepo adapter.PaymentRepository,
) *GetRollupUseCase {
	return &GetRollupUseCase{
		projectRepo:  projectRepo,
		workItemRepo: workItemRepo,
		paymentRepo:  paymentRepo,
	}
}

// Execute performs the rollup derivation.
func (uc *GetRollupUseCase) Execute(ctx context.Context, input GetRollupInput) (*GetRollupOutput, error) {
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

	return &GetRollupOutput{
		Rollup: entity.ComputeRollup(project, workItems, payments),
	}, nil
}
