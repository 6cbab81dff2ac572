// Package payment contains payment-related use cases.
package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yosan-kanri/backend/internal/application/adapter"
	"github.com/yosan-kanri/backend/internal/domain/entity"
)

// ListPaymentsInput represents the input for listing a work item's payments.
type ListPaymentsInput struct {
	UserID     uuid.UUID
	WorkItemID uuid.UUID
}

// ListPaymentsOutput represents the output of listing payments.
type ListPaymentsOutput struct {
	Payments []*entity.Payment
}

// ListPaymentsUseCase handles payment listing logic.
type ListPaymentsUseCase struct {
	paymentRepo  adapter.PaymentRepository
	workItemRepo adapter.WorkItemRepository
	projectRepo  adapter.ProjectRepository
}

// NewListPaymentsUseCase creates a new ListPaymentsUseCase instance.
func NewListPaymentsUseCase(
	paymentRepo adapter.PaymentRepository,
	workItemRepo adapter.WorkItemRepository,
	projectRepo adapter.ProjectRepository,
) *ListPaymentsUseCase {
	return &ListPaymentsUseCase{
		paymentRepo:  paymentRepo,
		workItemRepo: workItemRepo,
		projectRepo:  projectRepo,
	}
}

// Execute lists the payments of a work item the caller owns, newest first.
func (uc *ListPaymentsUseCase) Execute(ctx context.Context, input ListPaymentsInput) (*ListPaymentsOutput, error) {
	item, err := loadOwnedWorkItem(ctx, uc.workItemRepo, uc.projectRepo, input.WorkItemID, input.UserID)
	if err != nil {
		return nil, err
	}

	payments, err := uc.paymentRepo.FindByWorkItem(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	return &ListPaymentsOutput{Payments: payments}, nil
}
