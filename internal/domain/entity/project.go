// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yosan-kanri/backend/internal/domain/valueobject"
)

// Project represents a contracted construction job.
type Project struct {
	ID                   uuid.UUID
	UserID               uuid.UUID
	Code                 string // Unique project code
	Name                 string
	ContractAmount       int64  // Amount owed by the client, in yen
	BudgetAmount         int64  // Internally planned cost, in yen
	CurrentBudgetAmount  *int64 // Optional revised planning figure
	TargetManagementRate decimal.Decimal
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// NewProject creates a new Project entity.
func NewProject(
	userID uuid.UUID,
	code string,
	name string,
	contractAmount int64,
	budgetAmount int64,
	currentBudgetAmount *int64,
	targetManagementRate decimal.Decimal,
) *Project {
	now := time.Now().UTC()

	return &Project{
		ID:                   uuid.New(),
		UserID:               userID,
		Code:                 code,
		Name:                 name,
		ContractAmount:       contractAmount,
		BudgetAmount:         budgetAmount,
		CurrentBudgetAmount:  currentBudgetAmount,
		TargetManagementRate: targetManagementRate,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// ComputeRollup derives the project-level aggregate figures from the current
// work item and payment sets. All figures are recomputed from scratch; none
// are read from cached columns.
func ComputeRollup(project *Project, workItems []*WorkItem, payments []*Payment) valueobject.ProjectRollup {
	var allocated int64
	for _, w := range workItems {
		allocated += w.BudgetAmount
	}

	var totalPaid int64
	for _, p := range payments {
		totalPaid += p.Amount
	}

	// When no work items have been allocated yet, the project's planned
	// budget stands in for the allocation total.
	effectiveBudget := project.BudgetAmount
	budgetDifference := int64(0)
	if len(workItems) > 0 {
		effectiveBudget = allocated
		budgetDifference = project.BudgetAmount - allocated
	}

	profit := project.ContractAmount - totalPaid

	// A zero contract amount yields a zero rate by definition, not an error.
	profitRate := decimal.Zero
	if project.ContractAmount != 0 {
		profitRate = decimal.NewFromInt(profit).
			Div(decimal.NewFromInt(project.ContractAmount)).
			Mul(decimal.NewFromInt(100))
	}

	return valueobject.ProjectRollup{
		AllocatedBudget:  allocated,
		EffectiveBudget:  effectiveBudget,
		TotalPayments:    totalPaid,
		RemainingBudget:  effectiveBudget - totalPaid,
		Profit:           profit,
		ProfitRate:       profitRate,
		BudgetDifference: budgetDifference,
	}
}

// ComputeManagementCost derives the target management cost figures. The base
// margin is the spread between contract and budget; a positive target rate
// uplifts it without mutating the underlying contract or budget amounts.
func ComputeManagementCost(project *Project) valueobject.ManagementCost {
	base := project.ContractAmount - project.BudgetAmount

	if !project.TargetManagementRate.IsPositive() {
		return valueobject.ManagementCost{
			Base: base,
			Cost: base,
			Rate: project.TargetManagementRate,
		}
	}

	multiplier := decimal.NewFromInt(1).Add(
		project.TargetManagementRate.Div(decimal.NewFromInt(100)),
	)
	cost := decimal.NewFromInt(base).Mul(multiplier).Round(0).IntPart()

	return valueobject.ManagementCost{
		Base:         base,
		Cost:         cost,
		ProfitUplift: cost - base,
		Rate:         project.TargetManagementRate,
	}
}
