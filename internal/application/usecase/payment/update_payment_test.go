// Package payment contains payment-related use cases.
package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/yosan-kanri/backend/internal/domain/entity"
	domainerror "github.com/yosan-kanri/backend/internal/domain/error"
)

func TestUpdatePaymentAmountRecomputesRemaining(t *testing.T) {
	paymentRepo, workItemRepo, projectRepo, userID, itemID := newLedgerFixture(10_000_000)
	recordUC := NewRecordPaymentUseCase(paymentRepo, workItemRepo, projectRepo)
	updateUC := NewUpdatePaymentUseCase(paymentRepo, workItemRepo, projectRepo)

	recorded, err := recordUC.Execute(context.Background(), RecordPaymentInput{
		UserID:     userID,
		WorkItemID: itemID,
		Year:       2024,
		Month:      6,
		Contractor: "山田工務店",
		Category:   entity.PaymentCategoryNonContract,
		Amount:     3_000_000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	newAmount := int64(4_500_000)
	out, err := updateUC.Execute(context.Background(), UpdatePaymentInput{
		UserID:    userID,
		PaymentID: recorded.Payment.ID,
		Amount:    &newAmount,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Payment.Amount != newAmount {
		t.Errorf("expected amount %d, got %d", newAmount, out.Payment.Amount)
	}
	if out.RemainingAmount != 5_500_000 {
		t.Errorf("expected remaining 5500000, got %d", out.RemainingAmount)
	}
}

func TestUpdatePaymentKeepsCategoryAndChainPosition(t *testing.T) {
	paymentRepo, workItemRepo, projectRepo, userID, itemID := newLedgerFixture(10_000_000)
	recordUC := NewRecordPaymentUseCase(paymentRepo, workItemRepo, projectRepo)
	updateUC := NewUpdatePaymentUseCase(paymentRepo, workItemRepo, projectRepo)

	_, err := recordUC.Execute(context.Background(), RecordPaymentInput{
		UserID:       userID,
		WorkItemID:   itemID,
		Year:         2024,
		Month:        4,
		Contractor:   "山田工務店",
		Category:     entity.PaymentCategoryProgress,
		Amount:       500_000,
		ProgressRate: decimal.NewFromInt(30),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := recordUC.Execute(context.Background(), RecordPaymentInput{
		UserID:       userID,
		WorkItemID:   itemID,
		Year:         2024,
		Month:        5,
		Contractor:   "山田工務店",
		Category:     entity.PaymentCategoryProgress,
		Amount:       500_000,
		ProgressRate: decimal.NewFromInt(20),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Amending the second payment's rate rederives its current progress from
	// its stored previous progress.
	newRate := decimal.NewFromInt(35)
	out, err := updateUC.Execute(context.Background(), UpdatePaymentInput{
		UserID:       userID,
		PaymentID:    second.Payment.ID,
		ProgressRate: &newRate,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Payment.Category != entity.PaymentCategoryProgress {
		t.Errorf("category changed to %q", out.Payment.Category)
	}
	if !out.Payment.PreviousProgress.Equal(decimal.NewFromInt(30)) {
		t.Errorf("expected previous progress 30, got %s", out.Payment.PreviousProgress)
	}
	if !out.Payment.CurrentProgress.Equal(decimal.NewFromInt(65)) {
		t.Errorf("expected current progress 65, got %s", out.Payment.CurrentProgress)
	}
}

func TestUpdatePaymentRejectsInvalidPeriod(t *testing.T) {
	paymentRepo, workItemRepo, projectRepo, userID, itemID := newLedgerFixture(10_000_000)
	recordUC := NewRecordPaymentUseCase(paymentRepo, workItemRepo, projectRepo)
	updateUC := NewUpdatePaymentUseCase(paymentRepo, workItemRepo, projectRepo)

	recorded, err := recordUC.Execute(context.Background(), RecordPaymentInput{
		UserID:     userID,
		WorkItemID: itemID,
		Year:       2024,
		Month:      6,
		Contractor: "山田工務店",
		Category:   entity.PaymentCategoryNonContract,
		Amount:     1_000_000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	undecided := entity.UndecidedPeriod
	_, err = updateUC.Execute(context.Background(), UpdatePaymentInput{
		UserID:    userID,
		PaymentID: recorded.Payment.ID,
		Month:     &undecided,
	})
	if !errors.Is(err, domainerror.ErrInvalidPaymentPeriod) {
		t.Fatalf("expected invalid period error, got %v", err)
	}
}

func TestDeletePaymentRestoresRemaining(t *testing.T) {
	paymentRepo, workItemRepo, projectRepo, userID, itemID := newLedgerFixture(10_000_000)
	recordUC := NewRecordPaymentUseCase(paymentRepo, workItemRepo, projectRepo)
	deleteUC := NewDeletePaymentUseCase(paymentRepo, workItemRepo, projectRepo)

	recorded, err := recordUC.Execute(context.Background(), RecordPaymentInput{
		UserID:     userID,
		WorkItemID: itemID,
		Year:       2024,
		Month:      6,
		Contractor: "山田工務店",
		Category:   entity.PaymentCategoryNonContract,
		Amount:     3_000_000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := deleteUC.Execute(context.Background(), DeletePaymentInput{
		UserID:    userID,
		PaymentID: recorded.Payment.ID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.RemainingAmount != 10_000_000 {
		t.Errorf("expected remaining restored to 10000000, got %d", out.RemainingAmount)
	}

	if _, err := deleteUC.Execute(context.Background(), DeletePaymentInput{
		UserID:    userID,
		PaymentID: recorded.Payment.ID,
	}); !errors.Is(err, domainerror.ErrPaymentNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
