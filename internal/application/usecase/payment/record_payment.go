// Package payment contains payment-related use cases.
package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yosan-kanri/backend/internal/application/adapter"
	"github.com/yosan-kanri/backend/internal/domain/entity"
)

// RecordPaymentInput represents the input for posting a payment.
type RecordPaymentInput struct {
	UserID      uuid.UUID
	WorkItemID  uuid.UUID
	Year        int
	Month       int
	Contractor  string
	Description string
	Category    entity.PaymentCategory
	Amount      int64

	// Progress payments only.
	ProgressRate      decimal.Decimal
	ContractPaymentID *uuid.UUID
}

// RecordPaymentOutput represents the output of posting a payment.
type RecordPaymentOutput struct {
	Payment *entity.Payment

	// RemainingAmount is the work item's remaining budget after the payment
	// was committed.
	RemainingAmount int64
}

// RecordPaymentUseCase posts a payment against a work item. This is the core
// ledger write: all validation happens before any persistence, and the work
// item's remaining amount is recomputed in the same transaction as the
// insert.
type RecordPaymentUseCase struct {
	paymentRepo  adapter.PaymentRepository
	workItemRepo adapter.WorkItemRepository
	projectRepo  adapter.ProjectRepository
}

// NewRecordPaymentUseCase creates a new RecordPaymentUseCase instance.
func NewRecordPaymentUseCase(
	paymentRepo adapter.PaymentRepository,
	workItemRepo adapter.WorkItemRepository,
	projectRepo adapter.ProjectRepository,
) *RecordPaymentUseCase {
	return &RecordPaymentUseCase{
		paymentRepo:  paymentRepo,
		workItemRepo: workItemRepo,
		projectRepo:  projectRepo,
	}
}

// Execute validates and posts the payment. A validation failure leaves the
// ledger untouched. For progress payments the previous and current progress
// are chained from the latest progress payment with the same work item,
// contractor and contract reference.
func (uc *RecordPaymentUseCase) Execute(ctx context.Context, input RecordPaymentInput) (*RecordPaymentOutput, error) {
	if err := validatePaymentFields(input.Amount, input.Category, input.Year, input.Month); err != nil {
		return nil, err
	}

	item, err := loadOwnedWorkItem(ctx, uc.workItemRepo, uc.projectRepo, input.WorkItemID, input.UserID)
	if err != nil {
		return nil, err
	}

	payment := entity.NewPayment(
		item.ID,
		input.Year,
		input.Month,
		input.Contractor,
		input.Description,
		input.Category,
		input.Amount,
	)

	if input.Category == entity.PaymentCategoryProgress {
		contract, err := resolveContractPayment(ctx, uc.paymentRepo, item.ID, input.ContractPaymentID)
		if err != nil {
			return nil, err
		}
		if err := validateProgressRate(input.ProgressRate, contract); err != nil {
			return nil, err
		}

		previous, err := uc.paymentRepo.FindLatestProgress(ctx, item.ID, input.Contractor, input.ContractPaymentID)
		if err != nil {
			return nil, fmt.Errorf("failed to load progress chain: %w", err)
		}

		payment.ChainProgress(previous, input.ProgressRate, contract)
	}

	if err := uc.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	remaining, err := uc.workItemRepo.RecomputeRemaining(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to recompute remaining amount: %w", err)
	}

	return &RecordPaymentOutput{Payment: payment, RemainingAmount: remaining}, nil
}
