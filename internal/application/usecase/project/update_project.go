// Package project contains project-related use cases.
package project

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yosan-kanri/backend/internal/application/adapter"
	"github.com/yosan-kanri/backend/internal/domain/entity"
	domainerror "github.com/yosan-kanri/backend/internal/domain/error"
)

// UpdateProjectInput represents the input for project update. Nil fields
// are left unchanged.
type UpdateProjectInput struct {
	UserID               uuid.UUID
	ProjectID            uuid.UUID
	Code                 *string
	Name                 *string
	ContractAmount       *int64
	BudgetAmount         *int64
	CurrentBudgetAmount  *int64
	TargetManagementRate *decimal.Decimal
}

// UpdateProjectOutput represents the output of project update.
type UpdateProjectOutput struct {
	Project *entity.Project
}

// UpdateProjectUseCase handles project update logic.
type UpdateProjectUseCase struct {
	projectRepo adapter.ProjectRepository
}

// NewUpdateProjectUseCase creates a new UpdateProjectUseCase instance.
func NewUpdateProjectUseCase(projectRepo adapter.ProjectRepository) *UpdateProjectUseCase {
	return &UpdateProjectUseCase{
		projectRepo: projectRepo,
	}
}

// Execute performs the project update.
func (uc *UpdateProjectUseCase) Execute(ctx context.Context, input UpdateProjectInput) (*UpdateProjectOutput, error) {
	project, err := loadOwnedProject(ctx, uc.projectRepo, input.ProjectID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Code != nil && *input.Code != project.Code {
		exists, err := uc.projectRepo.ExistsByCodeExcluding(ctx, *input.Code, project.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check project code: %w", err)
		}
		if exists {
			return nil, domainerror.NewProjectError(
				domainerror.ErrCodeProjectCodeExists,
				"project code already exists",
				domainerror.ErrProjectCodeExists,
			)
		}
		project.Code = *input.Code
	}

	if input.Name != nil {
		project.Name = *input.Name
	}
	if input.ContractAmount != nil {
		project.ContractAmount = *input.ContractAmount
	}
	if input.BudgetAmount != nil {
		project.BudgetAmount = *input.BudgetAmount
	}
	if input.CurrentBudgetAmount != nil {
		project.CurrentBudgetAmount = input.CurrentBudgetAmount
	}
	if input.TargetManagementRate != nil {
		if input.TargetManagementRate.IsNegative() {
			return nil, domainerror.NewProjectError(
				domainerror.ErrCodeInvalidManagementRate,
				"target management rate must not be negative",
				domainerror.ErrInvalidManagementRate,
			)
		}
		project.TargetManagementRate = *input.TargetManagementRate
	}

	if err := validateProjectAmounts(project.ContractAmount, project.BudgetAmount, project.CurrentBudgetAmount); err != nil {
		return nil, err
	}

	project.UpdatedAt = time.Now().UTC()

	if err := uc.projectRepo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return &UpdateProjectOutput{Project: project}, nil
}
