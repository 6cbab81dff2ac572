// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yosan-kanri/backend/internal/domain/entity"
)

// PaymentModel represents the payments table in the database.
type PaymentModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	WorkItemID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Year        int       `gorm:"type:integer;not null;index"`
	Month       int       `gorm:"type:integer;not null"`
	Contractor  string    `gorm:"type:varchar(255);index"`
	Description string    `gorm:"type:text"`
	Category    string    `gorm:"type:varchar(20);not null;index"`
	Amount      int64     `gorm:"type:bigint;not null"`

	ProgressRate      decimal.Decimal `gorm:"type:decimal(7,3);not null;default:0"`
	PreviousProgress  decimal.Decimal `gorm:"type:decimal(7,3);not null;default:0"`
	CurrentProgress   decimal.Decimal `gorm:"type:decimal(7,3);not null;default:0"`
	ContractPaymentID *uuid.UUID      `gorm:"type:uuid;index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	WorkItem        *WorkItemModel `gorm:"foreignKey:WorkItemID;references:ID;constraint:OnDelete:CASCADE"`
	ContractPayment *PaymentModel  `gorm:"foreignKey:ContractPaymentID;references:ID"`
}

// TableName returns the table name for the PaymentModel.
func (PaymentModel) TableName() string {
	return "payments"
}

// ToEntity converts a PaymentModel to a domain Payment entity.
func (m *PaymentModel) ToEntity() *entity.Payment {
	return &entity.Payment{
		ID:                m.ID,
		WorkItemID:        m.WorkItemID,
		Year:              m.Year,
		Month:             m.Month,
		Contractor:        m.Contractor,
		Description:       m.Description,
		Category:          entity.PaymentCategory(m.Category),
		Amount:            m.Amount,
		ProgressRate:      m.ProgressRate,
		PreviousProgress:  m.PreviousProgress,
		CurrentProgress:   m.CurrentProgress,
		ContractPaymentID: m.ContractPaymentID,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// PaymentFromEntity creates a PaymentModel from a domain Payment entity.
func PaymentFromEntity(payment *entity.Payment) *PaymentModel {
	return &PaymentModel{
		ID:                payment.ID,
		WorkItemID:        payment.WorkItemID,
		Year:              payment.Year,
		Month:             payment.Month,
		Contractor:        payment.Contractor,
		Description:       payment.Description,
		Category:          string(payment.Category),
		Amount:            payment.Amount,
		ProgressRate:      payment.ProgressRate,
		PreviousProgress:  payment.PreviousProgress,
		CurrentProgress:   payment.CurrentProgress,
		ContractPaymentID: payment.ContractPaymentID,
		CreatedAt:         payment.CreatedAt,
		UpdatedAt:         payment.UpdatedAt,
	}
}
