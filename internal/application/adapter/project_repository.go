// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/yosan-kanri/backend/internal/domain/entity"
)

// ProjectRepository defines the interface for project persistence operations.
type ProjectRepository interface {
	// Create creates a new project in the database.
	Create(ctx context.Context, project *entity.Project) error

	// FindByID retrieves a project by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Project, error)

	// FindByUser retrieves all projects owned by a user, newest first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Project, error)

	// Update updates an existing project in the database.
	Update(ctx context.Context, project *entity.Project) error

	// Delete removes a project and, by cascade, its work items and their
	// payments.
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByCode checks if a project with the given code exists.
	ExistsByCode(ctx context.Context, code string) (bool, error)

	// ExistsByCodeExcluding checks if another project uses the given code.
	ExistsByCodeExcluding(ctx context.Context, code string, excludeID uuid.UUID) (bool, error)
}
