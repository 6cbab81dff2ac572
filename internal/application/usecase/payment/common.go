// Package payment contains payment-related use cases.
package payment

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yosan-kanri/backend/internal/application/adapter"
	"github.com/yosan-kanri/backend/internal/domain/entity"
	domainerror "github.com/yosan-kanri/backend/internal/domain/error"
)

// loadOwnedWorkItem fetches a work item and verifies, through its project,
// that the caller owns it.
func loadOwnedWorkItem(
	ctx context.Context,
	workItemRepo adapter.WorkItemRepository,
	projectRepo adapter.ProjectRepository,
	workItemID, userID uuid.UUID,
) (*entity.WorkItem, error) {
	item, err := workItemRepo.FindByID(ctx, workItemID)
	if err != nil {
		return nil, err
	}

	project, err := projectRepo.FindByID(ctx, item.ProjectID)
	if err != nil {
		return nil, err
	}
	if project.UserID != userID {
		return nil, domainerror.NewProjectError(
			domainerror.ErrCodeNotAuthorizedProject,
			"not authorized to access project",
			domainerror.ErrNotAuthorizedToAccessProject,
		)
	}

	return item, nil
}

// validatePaymentFields checks the field-level invariants shared by create
// and update: non-negative amount, recognized category, and a period that is
// either fully decided or fully undecided.
func validatePaymentFields(amount int64, category entity.PaymentCategory, year, month int) error {
	if amount < 0 {
		return domainerror.NewPaymentError(
			domainerror.ErrCodeInvalidPaymentAmount,
			"payment amount must not be negative",
			domainerror.ErrInvalidPaymentAmount,
		)
	}
	if !category.IsValid() {
		return domainerror.NewPaymentError(
			domainerror.ErrCodeInvalidPaymentCategory,
			"unrecognized payment category",
			domainerror.ErrInvalidPaymentCategory,
		)
	}

	yearSet := year != entity.UndecidedPeriod
	monthSet := month != entity.UndecidedPeriod
	if yearSet != monthSet {
		return domainerror.NewPaymentError(
			domainerror.ErrCodeInvalidPaymentPeriod,
			"year and month must be set together or both left undecided",
			domainerror.ErrInvalidPaymentPeriod,
		)
	}
	if monthSet && (month < 1 || month > 12) {
		return domainerror.NewPaymentError(
			domainerror.ErrCodeInvalidPaymentPeriod,
			"month must be between 1 and 12",
			domainerror.ErrInvalidPaymentPeriod,
		)
	}

	return nil
}

// resolveContractPayment loads and validates the contract payment a progress
// payment references. The reference must exist, be on the same work item, and
// carry the contract category.
func resolveContractPayment(
	ctx context.Context,
	paymentRepo adapter.PaymentRepository,
	workItemID uuid.UUID,
	contractPaymentID *uuid.UUID,
) (*entity.Payment, error) {
	if contractPaymentID == nil {
		return nil, nil
	}

	contract, err := paymentRepo.FindByID(ctx, *contractPaymentID)
	if err != nil {
		return nil, domainerror.NewPaymentError(
			domainerror.ErrCodeContractPaymentNotFound,
			"referenced contract payment not found",
			domainerror.ErrContractPaymentNotFound,
		)
	}
	if contract.WorkItemID != workItemID || contract.Category != entity.PaymentCategoryContract {
		return nil, domainerror.NewPaymentError(
			domainerror.ErrCodeContractPaymentMismatch,
			"referenced payment is not a contract payment on this work item",
			domainerror.ErrContractPaymentMismatch,
		)
	}

	return contract, nil
}

// validateProgressRate rejects negative rates. A zero rate is accepted when a
// contract payment is present, since the rate is then derived from the
// amounts.
func validateProgressRate(rate decimal.Decimal, contract *entity.Payment) error {
	if rate.IsNegative() {
		return domainerror.NewPaymentError(
			domainerror.ErrCodeInvalidProgressRate,
			"progress rate must not be negative",
			domainerror.ErrInvalidProgressRate,
		)
	}
	if rate.IsZero() && (contract == nil || contract.Amount == 0) {
		return domainerror.NewPaymentError(
			domainerror.ErrCodeInvalidProgressRate,
			"progress rate missing and cannot be derived without a contract payment",
			domainerror.ErrInvalidProgressRate,
		)
	}
	return nil
}
