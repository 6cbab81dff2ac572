package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/yosan-kanri/backend/internal/domain/entity"
)

// EmailQueueRepository persists email jobs for the background worker.
type EmailQueueRepository interface {
	Create(ctx context.Context, job *entity.EmailJob) error

	// GetPendingJobs returns jobs whose scheduled time has passed,
	// oldest first, up to limit.
	GetPendingJobs(ctx context.Context, limit int) ([]*entity.EmailJob, error)

	Update(ctx context.Context, job *entity.EmailJob) error

	GetByID(ctx context.Context, id uuid.UUID) (*entity.EmailJob, error)

	// DeleteOldSentJobs prunes sent jobs older than the given age and
	// returns how many rows were removed.
	DeleteOldSentJobs(ctx context.Context, olderThanDays int) (int64, error)
}
