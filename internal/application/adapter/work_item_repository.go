// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/yosan-kanri/backend/internal/domain/entity"
)

// WorkItemRepository defines the interface for work item persistence operations.
type WorkItemRepository interface {
	// Create creates a new work item in the database.
	Create(ctx context.Context, item *entity.WorkItem) error

	// FindByID retrieves a work item by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.WorkItem, error)

	// FindByProject retrieves all work items under a project, ordered by
	// work code.
	FindByProject(ctx context.Context, projectID uuid.UUID) ([]*entity.WorkItem, error)

	// Update updates an existing work item and recomputes its remaining
	// amount from the current payment set within the same transaction.
	Update(ctx context.Context, item *entity.WorkItem) error

	// Delete removes a work item and, by cascade, its payments.
	Delete(ctx context.Context, id uuid.UUID) error

	// RecomputeRemaining rederives the cached remaining amount from the
	// work item's full payment set and persists it. Idempotent.
	RecomputeRemaining(ctx context.Context, id uuid.UUID) (int64, error)
}
