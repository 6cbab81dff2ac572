// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentCategory represents the semantic category of a payment. Exactly one
// category applies per payment; the category decides which derivation rules
// run when the payment is posted.
type PaymentCategory string

const (
	// PaymentCategoryContract is a payment under the contract (請負).
	PaymentCategoryContract PaymentCategory = "contract"

	// PaymentCategoryNonContract is a payment outside the contract (請負外).
	PaymentCategoryNonContract PaymentCategory = "non_contract"

	// PaymentCategoryProgress is a partial payment tied to a percentage of
	// work completed (出来高), chained to prior progress for the same
	// contractor and contract.
	PaymentCategoryProgress PaymentCategory = "progress"

	// PaymentCategoryProfitBooking is a ledger entry that reduces remaining
	// budget without representing an external vendor payment (利益計上).
	PaymentCategoryProfitBooking PaymentCategory = "profit_booking"
)

// IsValid reports whether the category is one of the recognized values.
func (c PaymentCategory) IsValid() bool {
	switch c {
	case PaymentCategoryContract, PaymentCategoryNonContract,
		PaymentCategoryProgress, PaymentCategoryProfitBooking:
		return true
	}
	return false
}

// UndecidedPeriod is the sentinel for a payment whose year and month have
// not been decided yet. Year and month are either both real calendar values
// or both this sentinel.
const UndecidedPeriod = 0

// Payment represents a single posted transaction against a work item.
type Payment struct {
	ID          uuid.UUID
	WorkItemID  uuid.UUID
	Year        int // UndecidedPeriod when the period is not set
	Month       int // UndecidedPeriod when the period is not set
	Contractor  string
	Description string
	Category    PaymentCategory
	Amount      int64 // Signed toward increasing spend, in yen

	// Progress payment fields; zero-valued for every other category.
	ProgressRate      decimal.Decimal
	PreviousProgress  decimal.Decimal
	CurrentProgress   decimal.Decimal
	ContractPaymentID *uuid.UUID // Originating contract payment, if any

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewPayment creates a new Payment entity.
func NewPayment(
	workItemID uuid.UUID,
	year, month int,
	contractor string,
	description string,
	category PaymentCategory,
	amount int64,
) *Payment {
	now := time.Now().UTC()

	return &Payment{
		ID:          uuid.New(),
		WorkItemID:  workItemID,
		Year:        year,
		Month:       month,
		Contractor:  contractor,
		Description: description,
		Category:    category,
		Amount:      amount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsProfit reports whether this payment is a profit booking rather than an
// external vendor payment.
func (p *Payment) IsProfit() bool {
	return p.Category == PaymentCategoryProfitBooking
}

// IsProgress reports whether this payment is a progress payment.
func (p *Payment) IsProgress() bool {
	return p.Category == PaymentCategoryProgress
}

// HasPeriod reports whether the payment carries a decided year and month.
func (p *Payment) HasPeriod() bool {
	return p.Year != UndecidedPeriod && p.Month != UndecidedPeriod
}

// ChainProgress fills the progress fields from the latest prior progress
// payment in the same chain, scoped per (work item, contractor, contract
// reference). The rate may be supplied directly; when it is zero and the
// payment references a contract payment, it is derived from the amount as a
// percentage of the contract payment's amount.
//
// The chain is monotonic under correct input: each current progress is the
// previous chain head plus a non-negative rate. Editing amounts out of order
// is not re-validated here.
func (p *Payment) ChainProgress(previous *Payment, rate decimal.Decimal, contractPayment *Payment) {
	if rate.IsZero() && contractPayment != nil && contractPayment.Amount != 0 {
		rate = decimal.NewFromInt(p.Amount).
			Div(decimal.NewFromInt(contractPayment.Amount)).
			Mul(decimal.NewFromInt(100))
	}

	previousProgress := decimal.Zero
	if previous != nil {
		previousProgress = previous.CurrentProgress
	}

	p.ProgressRate = rate
	p.PreviousProgress = previousProgress
	p.CurrentProgress = previousProgress.Add(rate)
	if contractPayment != nil {
		id := contractPayment.ID
		p.ContractPaymentID = &id
	}
}
