// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/yosan-kanri/backend/internal/domain/entity"
)

// CreateWorkItemRequest represents the request body for work item creation.
type CreateWorkItemRequest struct {
	WorkCode     string `json:"work_code" binding:"required,min=1,max=20"`
	WorkName     string `json:"work_name" binding:"omitempty,max=255"`
	BudgetAmount int64  `json:"budget_amount" binding:"min=0"`
}

// UpdateWorkItemRequest represents the request body for work item update.
// Omitted fields are left unchanged.
type UpdateWorkItemRequest struct {
	WorkCode     *string `json:"work_code,omitempty" binding:"omitempty,min=1,max=20"`
	WorkName     *string `json:"work_name,omitempty" binding:"omitempty,max=255"`
	BudgetAmount *int64  `json:"budget_amount,omitempty"`
}

// WorkItemResponse represents the work item data in API responses.
type WorkItemResponse struct {
	ID              string    `json:"id"`
	ProjectID       string    `json:"project_id"`
	WorkCode        string    `json:"work_code"`
	WorkName        string    `json:"work_name"`
	BudgetAmount    int64     `json:"budget_amount"`
	RemainingAmount int64     `json:"remaining_amount"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// WorkItemListResponse represents the response for listing work items.
type WorkItemListResponse struct {
	WorkItems []WorkItemResponse `json:"work_items"`
}

// WorkItemDetailResponse represents a work item with its payment history.
type WorkItemDetailResponse struct {
	WorkItem WorkItemResponse  `json:"work_item"`
	Payments []PaymentResponse `json:"payments"`
}

// ConstructionTypeResponse represents one catalog entry.
type ConstructionTypeResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// ConstructionTypeListResponse represents the construction-type catalog.
type ConstructionTypeListResponse struct {
	ConstructionTypes []ConstructionTypeResponse `json:"construction_types"`
}

// ToWorkItemResponse converts a domain WorkItem entity to a WorkItemResponse DTO.
func ToWorkItemResponse(item *entity.WorkItem) WorkItemResponse {
	return WorkItemResponse{
		ID:              item.ID.String(),
		ProjectID:       item.ProjectID.String(),
		WorkCode:        item.WorkCode,
		WorkName:        item.WorkName,
		BudgetAmount:    item.BudgetAmount,
		RemainingAmount: item.RemainingAmount,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}
}

// ToWorkItemListResponse converts domain WorkItem entities to a WorkItemListResponse DTO.
func ToWorkItemListResponse(items []*entity.WorkItem) WorkItemListResponse {
	resp := WorkItemListResponse{WorkItems: make([]WorkItemResponse, len(items))}
	for i, item := range items {
		resp.WorkItems[i] = ToWorkItemResponse(item)
	}
	return resp
}

// ToConstructionTypeListResponse converts the catalog to its DTO.
func ToConstructionTypeListResponse(types []entity.ConstructionType) ConstructionTypeListResponse {
	resp := ConstructionTypeListResponse{
		ConstructionTypes: make([]ConstructionTypeResponse, len(types)),
	}
	for i, ct := range types {
		resp.ConstructionTypes[i] = ConstructionTypeResponse{Code: ct.Code, Name: ct.Name}
	}
	return resp
}
