package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/yosan-kanri/backend/internal/domain/entity"
)

// UserRepository persists user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindAll returns every user ordered by username.
	FindAll(ctx context.Context) ([]*entity.User, error)

	Update(ctx context.Context, user *entity.User) error

	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByUsername and ExistsByEmail support uniqueness checks
	// before an insert or rename.
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
