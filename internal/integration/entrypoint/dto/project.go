// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/yosan-kanri/backend/internal/domain/entity"
	"github.com/yosan-kanri/backend/internal/domain/valueobject"
)

// CreateProjectRequest represents the request body for project creation.
// All currency amounts are integer yen.
type CreateProjectRequest struct {
	Code                 string  `json:"code" binding:"required,min=1,max=50"`
	Name                 string  `json:"name" binding:"required,min=1,max=255"`
	ContractAmount       int64   `json:"contract_amount" binding:"min=0"`
	BudgetAmount         int64   `json:"budget_amount" binding:"min=0"`
	CurrentBudgetAmount  *int64  `json:"current_budget_amount,omitempty"`
	TargetManagementRate float64 `json:"target_management_rate,omitempty"`
}

// UpdateProjectRequest represents the request body for project update.
// Omitted fields are left unchanged.
type UpdateProjectRequest struct {
	Code                 *string  `json:"code,omitempty" binding:"omitempty,min=1,max=50"`
	Name                 *string  `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	ContractAmount       *int64   `json:"contract_amount,omitempty"`
	BudgetAmount         *int64   `json:"budget_amount,omitempty"`
	CurrentBudgetAmount  *int64   `json:"current_budget_amount,omitempty"`
	TargetManagementRate *float64 `json:"target_management_rate,omitempty"`
}

// ProjectResponse represents the project data in API responses.
type ProjectResponse struct {
	ID                   string    `json:"id"`
	Code                 string    `json:"code"`
	Name                 string    `json:"name"`
	ContractAmount       int64     `json:"contract_amount"`
	BudgetAmount         int64     `json:"budget_amount"`
	CurrentBudgetAmount  *int64    `json:"current_budget_amount,omitempty"`
	TargetManagementRate float64   `json:"target_management_rate"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// ProjectListResponse represents the response for listing projects.
type ProjectListResponse struct {
	Projects []ProjectResponse `json:"projects"`
}

// ProjectRollupResponse represents the derived aggregate figures of a project.
type ProjectRollupResponse struct {
	AllocatedBudget  int64   `json:"allocated_budget"`
	EffectiveBudget  int64   `json:"effective_budget"`
	TotalPayments    int64   `json:"total_payments"`
	RemainingBudget  int64   `json:"remaining_budget"`
	Profit           int64   `json:"profit"`
	ProfitRate       float64 `json:"profit_rate"`
	BudgetDifference int64   `json:"budget_difference"`
}

// ProjectDetailResponse represents a project with its work items and rollup.
type ProjectDetailResponse struct {
	Project   ProjectResponse       `json:"project"`
	WorkItems []WorkItemResponse    `json:"work_items"`
	Rollup    ProjectRollupResponse `json:"rollup"`
}

// ManagementCostResponse represents the target management cost figures.
type ManagementCostResponse struct {
	Base         int64   `json:"base"`
	Cost         int64   `json:"cost"`
	ProfitUplift int64   `json:"profit_uplift"`
	Rate         float64 `json:"rate"`
}

// ToProjectResponse converts a domain Project entity to a ProjectResponse DTO.
func ToProjectResponse(project *entity.Project) ProjectResponse {
	return ProjectResponse{
		ID:                   project.ID.String(),
		Code:                 project.Code,
		Name:                 project.Name,
		ContractAmount:       project.ContractAmount,
		BudgetAmount:         project.BudgetAmount,
		CurrentBudgetAmount:  project.CurrentBudgetAmount,
		TargetManagementRate: project.TargetManagementRate.InexactFloat64(),
		CreatedAt:            project.CreatedAt,
		UpdatedAt:            project.UpdatedAt,
	}
}

// ToProjectListResponse converts domain Project entities to a ProjectListResponse DTO.
func ToProjectListResponse(projects []*entity.Project) ProjectListResponse {
	resp := ProjectListResponse{Projects: make([]ProjectResponse, len(projects))}
	for i, p := range projects {
		resp.Projects[i] = ToProjectResponse(p)
	}
	return resp
}

// ToProjectRollupResponse converts a ProjectRollup value to its DTO.
func ToProjectRollupResponse(rollup valueobject.ProjectRollup) ProjectRollupResponse {
	return ProjectRollupResponse{
		AllocatedBudget:  rollup.AllocatedBudget,
		EffectiveBudget:  rollup.EffectiveBudget,
		TotalPayments:    rollup.TotalPayments,
		RemainingBudget:  rollup.RemainingBudget,
		Profit:           rollup.Profit,
		ProfitRate:       rollup.ProfitRate.InexactFloat64(),
		BudgetDifference: rollup.BudgetDifference,
	}
}

// ToManagementCostResponse converts a ManagementCost value to its DTO.
func ToManagementCostResponse(cost valueobject.ManagementCost) ManagementCostResponse {
	return ManagementCostResponse{
		Base:         cost.Base,
		Cost:         cost.Cost,
		ProfitUplift: cost.ProfitUplift,
		Rate:         cost.Rate.InexactFloat64(),
	}
}
