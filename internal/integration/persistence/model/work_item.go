// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/yosan-kanri/backend/internal/domain/entity"
)

// WorkItemModel represents the work_items table in the database.
type WorkItemModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProjectID       uuid.UUID `gorm:"type:uuid;not null;index"`
	WorkCode        string    `gorm:"type:varchar(20);not null;index"`
	WorkName        string    `gorm:"type:varchar(255);not null"`
	BudgetAmount    int64     `gorm:"type:bigint;not null"`
	RemainingAmount int64     `gorm:"type:bigint;not null"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`

	Project *ProjectModel `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for the WorkItemModel.
func (WorkItemModel) TableName() string {
	return "work_items"
}

// ToEntity converts a WorkItemModel to a domain WorkItem entity.
func (m *WorkItemModel) ToEntity() *entity.WorkItem {
	return &entity.WorkItem{
		ID:              m.ID,
		ProjectID:       m.ProjectID,
		WorkCode:        m.WorkCode,
		WorkName:        m.WorkName,
		BudgetAmount:    m.BudgetAmount,
		RemainingAmount: m.RemainingAmount,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// WorkItemFromEntity creates a WorkItemModel from a domain WorkItem entity.
func WorkItemFromEntity(item *entity.WorkItem) *WorkItemModel {
	return &WorkItemModel{
		ID:              item.ID,
		ProjectID:       item.ProjectID,
		WorkCode:        item.WorkCode,
		WorkName:        item.WorkName,
		BudgetAmount:    item.BudgetAmount,
		RemainingAmount: item.RemainingAmount,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}
}
