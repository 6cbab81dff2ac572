// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// WorkItem represents a cost-category line under a project, e.g. excavation
// or electrical work. It owns the payments posted against its allocation.
type WorkItem struct {
	ID           uuid.UUID
	ProjectID    uuid.UUID
	WorkCode     string
	WorkName     string
	BudgetAmount int64 // Allocation from the project budget, in yen

	// RemainingAmount is a cached derivation of the payment set. It is
	// recomputed from scratch on every payment mutation and is never
	// authoritative on its own.
	RemainingAmount int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewWorkItem creates a new WorkItem entity. The remaining amount of a fresh
// work item equals its full allocation.
func NewWorkItem(projectID uuid.UUID, workCode, workName string, budgetAmount int64) *WorkItem {
	now := time.Now().UTC()

	return &WorkItem{
		ID:              uuid.New(),
		ProjectID:       projectID,
		WorkCode:        workCode,
		WorkName:        workName,
		BudgetAmount:    budgetAmount,
		RemainingAmount: budgetAmount,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// RemainingAmount derives a work item's remaining budget from its full
// payment set: allocation minus vendor payments minus profit bookings.
// The result is independent of payment order and safe to recompute on
// every read.
func RemainingAmount(budgetAmount int64, payments []*Payment) int64 {
	var spent, profitBooked int64
	for _, p := range payments {
		if p.IsProfit() {
			profitBooked += p.Amount
		} else {
			spent += p.Amount
		}
	}
	return budgetAmount - spent - profitBooked
}
