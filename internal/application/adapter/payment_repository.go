// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/yosan-kanri/backend/internal/domain/entity"
)

// PaymentRepository defines the interface for payment persistence operations.
//
// Every mutation recomputes the owning work item's remaining amount inside
// the same database transaction, so the cached figure never observably lags
// committed payments.
type PaymentRepository interface {
	// Create persists a payment and recomputes the work item's remaining
	// amount transactionally.
	Create(ctx context.Context, payment *entity.Payment) error

	// FindByID retrieves a payment by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)

	// FindByWorkItem retrieves all payments for a work item, newest first.
	FindByWorkItem(ctx context.Context, workItemID uuid.UUID) ([]*entity.Payment, error)

	// FindByProject retrieves all payments across all of a project's work
	// items.
	FindByProject(ctx context.Context, projectID uuid.UUID) ([]*entity.Payment, error)

	// FindLatestProgress retrieves the most recent progress payment in the
	// chain scoped to (work item, contractor, contract reference), or nil
	// when the chain is empty.
	FindLatestProgress(ctx context.Context, workItemID uuid.UUID, contractor string, contractPaymentID *uuid.UUID) (*entity.Payment, error)

	// Update persists changes to a payment and recomputes the work item's
	// remaining amount transactionally.
	Update(ctx context.Context, payment *entity.Payment) error

	// Delete removes a payment and recomputes the work item's remaining
	// amount transactionally.
	Delete(ctx context.Context, id uuid.UUID) error
}
