// Package payment contains payment-related use cases.
package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yosan-kanri/backend/internal/application/adapter"
)

// DeletePaymentInput represents the input for payment deletion.
type DeletePaymentInput struct {
	UserID    uuid.UUID
	PaymentID uuid.UUID
}

// DeletePaymentOutput represents the output of a payment deletion.
type DeletePaymentOutput struct {
	// RemainingAmount is the work item's remaining budget after the payment
	// was removed.
	RemainingAmount int64
}

// DeletePaymentUseCase handles payment deletion logic.
type DeletePaymentUseCase struct {
	paymentRepo  adapter.PaymentRepository
	workItemRepo adapter.WorkItemRepository
	projectRepo  adapter.ProjectRepository
}

// NewDeletePaymentUseCase creates a new DeletePaymentUseCase instance.
func NewDeletePaymentUseCase(
	paymentRepo adapter.PaymentRepository,
	workItemRepo adapter.WorkItemRepository,
	projectRepo adapter.ProjectRepository,
) *DeletePaymentUseCase {
	return &DeletePaymentUseCase{
		paymentRepo:  paymentRepo,
		workItemRepo: workItemRepo,
		projectRepo:  projectRepo,
	}
}

// Execute deletes a payment on a work item the caller owns and returns the
// remaining amount recomputed from the surviving payment set.
func (uc *DeletePaymentUseCase) Execute(ctx context.Context, input DeletePaymentInput) (*DeletePaymentOutput, error) {
	payment, err := uc.paymentRepo.FindByID(ctx, input.PaymentID)
	if err != nil {
		return nil, err
	}

	item, err := loadOwnedWorkItem(ctx, uc.workItemRepo, uc.projectRepo, payment.WorkItemID, input.UserID)
	if err != nil {
		return nil, err
	}

	if err := uc.paymentRepo.Delete(ctx, payment.ID); err != nil {
		return nil, fmt.Errorf("failed to delete payment: %w", err)
	}

	remaining, err := uc.workItemRepo.RecomputeRemaining(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to recompute remaining amount: %w", err)
	}

	return &DeletePaymentOutput{RemainingAmount: remaining}, nil
}
