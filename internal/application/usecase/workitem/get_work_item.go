// Package workitem contains work item-related use cases.
package workitem

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yosan-kanri/backend/internal/application/adapter"
	"github.com/yosan-kanri/backend/internal/domain/entity"
)

// GetWorkItemInput represents the input for fetching a single work item.
type GetWorkItemInput struct {
	UserID     uuid.UUID
	WorkItemID uuid.UUID
}

// GetWorkItemOutput represents the output of fetching a work item.
type GetWorkItemOutput struct {
	WorkItem *entity.WorkItem
	Payments []*entity.Payment
}

// GetWorkItemUseCase handles single work item retrieval.
type GetWorkItemUseCase struct {
	workItemRepo adapter.WorkItemRepository
	projectRepo  adapter.ProjectRepository
	paymentRepo  adapter.PaymentRepository
}

// NewGetWorkItemUseCase creates a new GetWorkItemUseCase instance.
func NewGetWorkItemUseCase(
	workItemRepo adapter.WorkItemRepository,
	projectRepo adapter.ProjectRepository,
	paymentRepo adapter.PaymentRepository,
) *GetWorkItemUseCase {
	return &GetWorkItemUseCase{
		workItemRepo: workItemRepo,
		projectRepo:  projectRepo,
		paymentRepo:  paymentRepo,
	}
}

// Execute fetches a work item the caller owns along with its payment history.
func (uc *GetWorkItemUseCase) Execute(ctx context.Context, input GetWorkItemInput) (*GetWorkItemOutput, error) {
	item, err := loadOwnedWorkItem(ctx, uc.workItemRepo, uc.projectRepo, input.WorkItemID, input.UserID)
	if err != nil {
		return nil, err
	}

	remaining, err := uc.workItemRepo.RecomputeRemaining(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to recompute remaining amount: %w", err)
	}
	item.RemainingAmount = remaining

	payments, err := uc.paymentRepo.FindByWorkItem(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}

	return &GetWorkItemOutput{WorkItem: item, Payments: payments}, nil
}
