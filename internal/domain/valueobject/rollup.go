// Package valueobject defines immutable derived values for the domain layer.
package valueobject

import "github.com/shopspring/decimal"

// ProjectRollup holds the aggregate figures derived for a project from its
// work items and payments. All currency figures are in yen.
type ProjectRollup struct {
	// AllocatedBudget is the sum of all work item budget allocations.
	AllocatedBudget int64

	// EffectiveBudget is AllocatedBudget when any work items exist,
	// falling back to the project's planned budget otherwise.
	EffectiveBudget int64

	// TotalPayments is the sum of all payments across all work items.
	TotalPayments int64

	// RemainingBudget is EffectiveBudget minus TotalPayments.
	RemainingBudget int64

	// Profit is the contract amount minus TotalPayments.
	Profit int64

	// ProfitRate is Profit over the contract amount as a percentage;
	// zero when the contract amount is zero.
	ProfitRate decimal.Decimal

	// BudgetDifference is the planned budget minus AllocatedBudget;
	// zero when no work items exist.
	BudgetDifference int64
}

// ManagementCost holds the target management cost figures for a project.
type ManagementCost struct {
	// Base is the built-in management margin: contract minus budget.
	Base int64

	// Cost is Base uplifted by the target rate, or Base when no rate is set.
	Cost int64

	// ProfitUplift is Cost minus Base.
	ProfitUplift int64

	// Rate is the target management rate applied, as a percentage.
	Rate decimal.Decimal
}
