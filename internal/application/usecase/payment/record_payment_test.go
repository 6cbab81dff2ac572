// Package payment contains payment-related use cases.
package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yosan-kanri/backend/internal/domain/entity"
	domainerror "github.com/yosan-kanri/backend/internal/domain/error"
)

func TestRecordPaymentValidationLeavesLedgerUntouched(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RecordPaymentInput)
		wantErr error
	}{
		{
			name:    "negative amount",
			mutate:  func(in *RecordPaymentInput) { in.Amount = -1 },
			wantErr: domainerror.ErrInvalidPaymentAmount,
		},
		{
			name:    "unknown category",
			mutate:  func(in *RecordPaymentInput) { in.Category = entity.PaymentCategory("refund") },
			wantErr: domainerror.ErrInvalidPaymentCategory,
		},
		{
			name:    "year without month",
			mutate:  func(in *RecordPaymentInput) { in.Month = entity.UndecidedPeriod },
			wantErr: domainerror.ErrInvalidPaymentPeriod,
		},
		{
			name:    "month without year",
			mutate:  func(in *RecordPaymentInput) { in.Year = entity.UndecidedPeriod },
			wantErr: domainerror.ErrInvalidPaymentPeriod,
		},
		{
			name:    "month out of range",
			mutate:  func(in *RecordPaymentInput) { in.Month = 13 },
			wantErr: domainerror.ErrInvalidPaymentPeriod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paymentRepo, workItemRepo, projectRepo, userID, itemID := newLedgerFixture(10_000_000)
			uc := NewRecordPaymentUseCase(paymentRepo, workItemRepo, projectRepo)

			input := RecordPaymentInput{
				UserID:     userID,
				WorkItemID: itemID,
				Year:       2024,
				Month:      6,
				Contractor: "山田工務店",
				Category:   entity.PaymentCategoryNonContract,
				Amount:     1_000_000,
			}
			tt.mutate(&input)

			_, err := uc.Execute(context.Background(), input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if paymentRepo.createCalls != 0 {
				t.Errorf("expected no writes after validation failure, got %d", paymentRepo.createCalls)
			}
		})
	}
}

func TestRecordPaymentRejectsForeignWorkItem(t *testing.T) {
	paymentRepo, workItemRepo, projectRepo, _, itemID := newLedgerFixture(10_000_000)
	uc := NewRecordPaymentUseCase(paymentRepo, workItemRepo, projectRepo)

	_, err := uc.Execute(context.Background(), RecordPaymentInput{
		UserID:     uuid.New(),
		WorkItemID: itemID,
		Year:       2024,
		Month:      6,
		Contractor: "山田工務店",
		Category:   entity.PaymentCategoryNonContract,
		Amount:     1_000_000,
	})
	if !errors.Is(err, domainerror.ErrNotAuthorizedToAccessProject) {
		t.Fatalf("expected authorization error, got %v", err)
	}
}

func TestRecordPaymentUpdatesRemaining(t *testing.T) {
	paymentRepo, workItemRepo, projectRepo, userID, itemID := newLedgerFixture(10_000_000)
	uc := NewRecordPaymentUseCase(paymentRepo, workItemRepo, projectRepo)

	out, err := uc.Execute(context.Background(), RecordPaymentInput{
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
	if out.RemainingAmount != 7_000_000 {
		t.Errorf("expected remaining 7000000, got %d", out.RemainingAmount)
	}

	// Profit bookings consume the budget exactly like vendor payments.
	out, err = uc.Execute(context.Background(), RecordPaymentInput{
		UserID:     userID,
		WorkItemID: itemID,
		Year:       entity.UndecidedPeriod,
		Month:      entity.UndecidedPeriod,
		Category:   entity.PaymentCategoryProfitBooking,
		Amount:     2_000_000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.RemainingAmount != 5_000_000 {
		t.Errorf("expected remaining 5000000, got %d", out.RemainingAmount)
	}
}

func TestRecordPaymentChainsProgressPerContractor(t *testing.T) {
	paymentRepo, workItemRepo, projectRepo, userID, itemID := newLedgerFixture(10_000_000)
	uc := NewRecordPaymentUseCase(paymentRepo, workItemRepo, projectRepo)

	record := func(contractor string, rate int64) *RecordPaymentOutput {
		t.Helper()
		out, err := uc.Execute(context.Background(), RecordPaymentInput{
			UserID:       userID,
			WorkItemID:   itemID,
			Year:         2024,
			Month:        6,
			Contractor:   contractor,
			Category:     entity.PaymentCategoryProgress,
			Amount:       500_000,
			ProgressRate: decimal.NewFromInt(rate),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return out
	}

	first := record("山田工務店", 30)
	if !first.Payment.PreviousProgress.IsZero() || !first.Payment.CurrentProgress.Equal(decimal.NewFromInt(30)) {
		t.Errorf("first payment: expected 0 -> 30, got %s -> %s",
			first.Payment.PreviousProgress, first.Payment.CurrentProgress)
	}

	second := record("山田工務店", 25)
	if !second.Payment.PreviousProgress.Equal(decimal.NewFromInt(30)) || !second.Payment.CurrentProgress.Equal(decimal.NewFromInt(55)) {
		t.Errorf("second payment: expected 30 -> 55, got %s -> %s",
			second.Payment.PreviousProgress, second.Payment.CurrentProgress)
	}

	// A different contractor starts its own chain.
	other := record("鈴木電設", 40)
	if !other.Payment.PreviousProgress.IsZero() || !other.Payment.CurrentProgress.Equal(decimal.NewFromInt(40)) {
		t.Errorf("other contractor: expected 0 -> 40, got %s -> %s",
			other.Payment.PreviousProgress, other.Payment.CurrentProgress)
	}
}

func TestRecordPaymentDerivesRateFromContract(t *testing.T) {
	paymentRepo, workItemRepo, projectRepo, userID, itemID := newLedgerFixture(10_000_000)
	uc := NewRecordPaymentUseCase(paymentRepo, workItemRepo, projectRepo)

	contract, err := uc.Execute(context.Background(), RecordPaymentInput{
		UserID:     userID,
		WorkItemID: itemID,
		Year:       2024,
		Month:      4,
		Contractor: "山田工務店",
		Category:   entity.PaymentCategoryContract,
		Amount:     2_000_000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	contractID := contract.Payment.ID
	out, err := uc.Execute(context.Background(), RecordPaymentInput{
		UserID:            userID,
		WorkItemID:        itemID,
		Year:              2024,
		Month:             5,
		Contractor:        "山田工務店",
		Category:          entity.PaymentCategoryProgress,
		Amount:            500_000,
		ContractPaymentID: &contractID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 500000 / 2000000 * 100 = 25%
	if !out.Payment.ProgressRate.Equal(decimal.NewFromInt(25)) {
		t.Errorf("expected derived rate 25, got %s", out.Payment.ProgressRate)
	}
	if out.Payment.ContractPaymentID == nil || *out.Payment.ContractPaymentID != contractID {
		t.Errorf("expected contract reference %s retained", contractID)
	}
}

func TestRecordPaymentRejectsBadContractReference(t *testing.T) {
	paymentRepo, workItemRepo, projectRepo, userID, itemID := newLedgerFixture(10_000_000)
	uc := NewRecordPaymentUseCase(paymentRepo, workItemRepo, projectRepo)

	// Reference a non-contract payment.
	nonContract, err := uc.Execute(context.Background(), RecordPaymentInput{
		UserID:     userID,
		WorkItemID: itemID,
		Year:       2024,
		Month:      4,
		Contractor: "山田工務店",
		Category:   entity.PaymentCategoryNonContract,
		Amount:     1_000_000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	badID := nonContract.Payment.ID
	_, err = uc.Execute(context.Background(), RecordPaymentInput{
		UserID:            userID,
		WorkItemID:        itemID,
		Year:              2024,
		Month:             5,
		Contractor:        "山田工務店",
		Category:          entity.PaymentCategoryProgress,
		Amount:            500_000,
		ProgressRate:      decimal.NewFromInt(10),
		ContractPaymentID: &badID,
	})
	if !errors.Is(err, domainerror.ErrContractPaymentMismatch) {
		t.Fatalf("expected contract mismatch error, got %v", err)
	}

	// Reference a payment that does not exist at all.
	missing := uuid.New()
	_, err = uc.Execute(context.Background(), RecordPaymentInput{
		UserID:            userID,
		WorkItemID:        itemID,
		Year:              2024,
		Month:             5,
		Contractor:        "山田工務店",
		Category:          entity.PaymentCategoryProgress,
		Amount:            500_000,
		ProgressRate:      decimal.NewFromInt(10),
		ContractPaymentID: &missing,
	})
	if !errors.Is(err, domainerror.ErrContractPaymentNotFound) {
		t.Fatalf("expected contract not found error, got %v", err)
	}
}

func TestRecordPaymentRejectsUnderivableRate(t *testing.T) {
	paymentRepo, workItemRepo, projectRepo, userID, itemID := newLedgerFixture(10_000_000)
	uc := NewRecordPaymentUseCase(paymentRepo, workItemRepo, projectRepo)

	_, err := uc.Execute(context.Background(), RecordPaymentInput{
		UserID:     userID,
		WorkItemID: itemID,
		Year:       2024,
		Month:      5,
		Contractor: "山田工務店",
		Category:   entity.PaymentCategoryProgress,
		Amount:     500_000,
	})
	if !errors.Is(err, domainerror.ErrInvalidProgressRate) {
		t.Fatalf("expected invalid progress rate error, got %v", err)
	}
	if paymentRepo.createCalls != 0 {
		t.Errorf("expected no writes, got %d", paymentRepo.createCalls)
	}
}
