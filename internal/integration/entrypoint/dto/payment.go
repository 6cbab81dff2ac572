// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/yosan-kanri/backend/internal/domain/entity"
)

// RecordPaymentRequest represents the request body for posting a payment.
// Year and month are supplied together or both omitted for an undecided
// period.
type RecordPaymentRequest struct {
	Year        int    `json:"year,omitempty"`
	Month       int    `json:"month,omitempty"`
	Contractor  string `json:"contractor" binding:"omitempty,max=255"`
	Description string `json:"description" binding:"omitempty,max=1000"`
	Category    string `json:"category" binding:"required,oneof=contract non_contract progress profit_booking"`
	Amount      int64  `json:"amount" binding:"min=0"`

	// Progress payments only. The rate is decoded straight into a
	// decimal so it never takes a float64 detour.
	ProgressRate      decimal.Decimal `json:"progress_rate"`
	ContractPaymentID *string         `json:"contract_payment_id,omitempty"`
}

// UpdatePaymentRequest represents the request body for payment update.
// Omitted fields are left unchanged; the category is fixed at creation.
type UpdatePaymentRequest struct {
	Year        *int    `json:"year,omitempty"`
	Month       *int    `json:"month,omitempty"`
	Contractor  *string `json:"contractor,omitempty" binding:"omitempty,max=255"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=1000"`
	Amount      *int64  `json:"amount,omitempty"`

	ProgressRate *decimal.Decimal `json:"progress_rate,omitempty"`
}

// PaymentResponse represents the payment data in API responses.
type PaymentResponse struct {
	ID          string `json:"id"`
	WorkItemID  string `json:"work_item_id"`
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	Contractor  string `json:"contractor"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Amount      int64  `json:"amount"`

	ProgressRate      float64 `json:"progress_rate"`
	PreviousProgress  float64 `json:"previous_progress"`
	CurrentProgress   float64 `json:"current_progress"`
	ContractPaymentID *string `json:"contract_payment_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PaymentListResponse represents the response for listing payments.
type PaymentListResponse struct {
	Payments []PaymentResponse `json:"payments"`
}

// RecordPaymentResponse represents the response after a payment mutation,
// carrying the work item's freshly derived remaining amount.
type RecordPaymentResponse struct {
	Payment         PaymentResponse `json:"payment"`
	RemainingAmount int64           `json:"remaining_amount"`
}

// DeletePaymentResponse represents the response after deleting a payment.
type DeletePaymentResponse struct {
	RemainingAmount int64 `json:"remaining_amount"`
}

// ToPaymentResponse converts a domain Payment entity to a PaymentResponse DTO.
func ToPaymentResponse(payment *entity.Payment) PaymentResponse {
	resp := PaymentResponse{
		ID:               payment.ID.String(),
		WorkItemID:       payment.WorkItemID.String(),
		Year:             payment.Year,
		Month:            payment.Month,
		Contractor:       payment.Contractor,
		Description:      payment.Description,
		Category:         string(payment.Category),
		Amount:           payment.Amount,
		ProgressRate:     payment.ProgressRate.InexactFloat64(),
		PreviousProgress: payment.PreviousProgress.InexactFloat64(),
		CurrentProgress:  payment.CurrentProgress.InexactFloat64(),
		CreatedAt:        payment.CreatedAt,
		UpdatedAt:        payment.UpdatedAt,
	}
	if payment.ContractPaymentID != nil {
		id := payment.ContractPaymentID.String()
		resp.ContractPaymentID = &id
	}
	return resp
}

// ToPaymentListResponse converts domain Payment entities to a PaymentListResponse DTO.
func ToPaymentListResponse(payments []*entity.Payment) PaymentListResponse {
	resp := PaymentListResponse{Payments: make([]PaymentResponse, len(payments))}
	for i, p := range payments {
		resp.Payments[i] = ToPaymentResponse(p)
	}
	return resp
}
