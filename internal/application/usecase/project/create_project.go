// Package project contains project-related use cases.
package project

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yosan-kanri/backend/internal/application/adapter"
	"github.com/yosan-kanri/backend/internal/domain/entity"
	domainerror "github.com/yosan-kanri/backend/internal/domain/error"
)

// CreateProjectInput represents the input for project creation.
type CreateProjectInput struct {
	UserID               uuid.UUID
	Code                 string
	Name                 string
	ContractAmount       int64
	BudgetAmount         int64
	CurrentBudgetAmount  *int64
	TargetManagementRate decimal.Decimal
}

// CreateProjectOutput represents the output of project creation.
type CreateProjectOutput struct {
	Project *entity.Project
}

// CreateProjectUseCase handles project creation logic.
type CreateProjectUseCase struct {
	projectRepo adapter.ProjectRepository
}

// NewCreateProjectUseCase creates a new CreateProjectUseCase instance.
func NewCreateProjectUseCase(projectRepo adapter.ProjectRepository) *CreateProjectUseCase {
	return &CreateProjectUseCase{
		projectRepo: projectRepo,
	}
}

// Execute performs the project creation.
func (uc *CreateProjectUseCase) Execute(ctx context.Context, input CreateProjectInput) (*CreateProjectOutput, error) {
	if err := validateProjectAmounts(input.ContractAmount, input.BudgetAmount, input.CurrentBudgetAmount); err != nil {
		return nil, err
	}

	if input.TargetManagementRate.IsNegative() {
		return nil, domainerror.NewProjectError(
			domainerror.ErrCodeInvalidManagementRate,
			"target management rate must not be negative",
			domainerror.ErrInvalidManagementRate,
		)
	}

	// Project codes are unique across all users.
	exists, err := uc.projectRepo.ExistsByCode(ctx, input.Code)
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

	project := entity.NewProject(
		input.UserID,
		input.Code,
		input.Name,
		input.ContractAmount,
		input.BudgetAmount,
		input.CurrentBudgetAmount,
		input.TargetManagementRate,
	)

	if err := uc.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return &CreateProjectOutput{Project: project}, nil
}

// validateProjectAmounts checks that all currency figures are non-negative
// whole yen values.
func validateProjectAmounts(contractAmount, budgetAmount int64, currentBudgetAmount *int64) error {
	if contractAmount < 0 || budgetAmount < 0 {
		return domainerror.NewProjectError(
			domainerror.ErrCodeInvalidProjectAmount,
			"contract and budget amounts must not be negative",
			domainerror.ErrInvalidProjectAmount,
		)
	}
	if currentBudgetAmount != nil && *currentBudgetAmount < 0 {
		return domainerror.NewProjectError(
			domainerror.ErrCodeInvalidProjectAmount,
			"current budget amount must not be negative",
			domainerror.ErrInvalidProjectAmount,
		)
	}
	return nil
}
