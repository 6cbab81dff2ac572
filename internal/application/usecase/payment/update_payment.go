// Package payment contains payment-related use cases.
package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yosan-kanri/backend/internal/application/adapter"
	"github.com/yosan-kanri/backend/internal/domain/entity"
)

// UpdatePaymentInput represents the input for payment updates. Nil fields are
// left unchanged.
type UpdatePaymentInput struct {
	UserID    uuid.UUID
	PaymentID uuid.UUID

	Year        *int
	Month       *int
	Contractor  *string
	Description *string
	Amount      *int64

	// Progress payments only.
	ProgressRate *decimal.Decimal
}

// UpdatePaymentOutput represents the output of a payment update.
type UpdatePaymentOutput struct {
	Payment *entity.Payment

	// RemainingAmount is the work item's remaining budget after the update
	// was committed.
	RemainingAmount int64
}

// UpdatePaymentUseCase handles payment update logic. The payment's category
// is fixed at creation; edits change amounts, period and labels, never the
// category.
type UpdatePaymentUseCase struct {
	paymentRepo  adapter.PaymentRepository
	workItemRepo adapter.WorkItemRepository
	projectRepo  adapter.ProjectRepository
}

// NewUpdatePaymentUseCase creates a new UpdatePaymentUseCase instance.
func NewUpdatePaymentUseCase(
	paymentRepo adapter.PaymentRepository,
	workItemRepo adapter.WorkItemRepository,
	projectRepo adapter.ProjectRepository,
) *UpdatePaymentUseCase {
	return &UpdatePaymentUseCase{
		paymentRepo:  paymentRepo,
		workItemRepo: workItemRepo,
		projectRepo:  projectRepo,
	}
}

// Execute applies a partial update to a payment on a work item the caller
// owns. For progress payments the current progress is rederived from the
// stored previous progress and the effective rate, so an amended figure stays
// consistent with its own chain position.
func (uc *UpdatePaymentUseCase) Execute(ctx context.Context, input UpdatePaymentInput) (*UpdatePaymentOutput, error) {
	payment, err := uc.paymentRepo.FindByID(ctx, input.PaymentID)
	if err != nil {
		return nil, err
	}

	item, err := loadOwnedWorkItem(ctx, uc.workItemRepo, uc.projectRepo, payment.WorkItemID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Year != nil {
		payment.Year = *input.Year
	}
	if input.Month != nil {
		payment.Month = *input.Month
	}
	if input.Contractor != nil {
		payment.Contractor = *input.Contractor
	}
	if input.Description != nil {
		payment.Description = *input.Description
	}
	if input.Amount != nil {
		payment.Amount = *input.Amount
	}

	if err := validatePaymentFields(payment.Amount, payment.Category, payment.Year, payment.Month); err != nil {
		return nil, err
	}

	if payment.IsProgress() && (input.Amount != nil || input.ProgressRate != nil) {
		rate := payment.ProgressRate
		if input.ProgressRate != nil {
			rate = *input.ProgressRate
		}

		contract, err := resolveContractPayment(ctx, uc.paymentRepo, item.ID, payment.ContractPaymentID)
		if err != nil {
			return nil, err
		}
		if err := validateProgressRate(rate, contract); err != nil {
			return nil, err
		}

		if rate.IsZero() && contract != nil && contract.Amount != 0 {
			rate = decimal.NewFromInt(payment.Amount).
				Div(decimal.NewFromInt(contract.Amount)).
				Mul(decimal.NewFromInt(100))
		}

		payment.ProgressRate = rate
		payment.CurrentProgress = payment.PreviousProgress.Add(rate)
	}

	payment.UpdatedAt = time.Now().UTC()

	if err := uc.paymentRepo.Update(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}

	remaining, err := uc.workItemRepo.RecomputeRemaining(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to recompute remaining amount: %w", err)
	}

	return &UpdatePaymentOutput{Payment: payment, RemainingAmount: remaining}, nil
}
