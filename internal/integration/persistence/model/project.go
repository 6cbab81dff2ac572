// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yosan-kanri/backend/internal/domain/entity"
)

// ProjectModel represents the projects table in the database.
type ProjectModel struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID               uuid.UUID       `gorm:"type:uuid;not null;index"`
	Code                 string          `gorm:"type:varchar(50);uniqueIndex;not null"`
	Name                 string          `gorm:"type:varchar(255);not null"`
	ContractAmount       int64           `gorm:"type:bigint;not null"`
	BudgetAmount         int64           `gorm:"type:bigint;not null"`
	CurrentBudgetAmount  *int64          `gorm:"type:bigint"`
	TargetManagementRate decimal.Decimal `gorm:"type:decimal(7,3);not null;default:0"`
	CreatedAt            time.Time       `gorm:"not null"`
	UpdatedAt            time.Time       `gorm:"not null"`

	User *UserModel `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for the ProjectModel.
func (ProjectModel) TableName() string {
	return "projects"
}

// ToEntity converts a ProjectModel to a domain Project entity.
func (m *ProjectModel) ToEntity() *entity.Project {
	return &entity.Project{
		ID:                   m.ID,
		UserID:               m.UserID,
		Code:                 m.Code,
		Name:                 m.Name,
		ContractAmount:       m.ContractAmount,
		BudgetAmount:         m.BudgetAmount,
		CurrentBudgetAmount:  m.CurrentBudgetAmount,
		TargetManagementRate: m.TargetManagementRate,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

// ProjectFromEntity creates a ProjectModel from a domain Project entity.
func ProjectFromEntity(project *entity.Project) *ProjectModel {
	return &ProjectModel{
		ID:                   project.ID,
		UserID:               project.UserID,
		Code:                 project.Code,
		Name:                 project.Name,
		ContractAmount:       project.ContractAmount,
		BudgetAmount:         project.BudgetAmount,
		CurrentBudgetAmount:  project.CurrentBudgetAmount,
		TargetManagementRate: project.TargetManagementRate,
		CreatedAt:            project.CreatedAt,
		UpdatedAt:            project.UpdatedAt,
	}
}
