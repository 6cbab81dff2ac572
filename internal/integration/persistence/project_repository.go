// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yosan-kanri/backend/internal/application/adapter"
	"github.com/yosan-kanri/backend/internal/domain/entity"
	domainerror "github.com/yosan-kanri/backend/internal/domain/error"
	"github.com/yosan-kanri/backend/internal/integration/persistence/model"
)

// projectRepository implements the adapter.ProjectRepository interface.
type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository instance.
func NewProjectRepository(db *gorm.DB) adapter.ProjectRepository {
	return &projectRepository{
		db: db,
	}
}

// Create creates a new project in the database.
func (r *projectRepository) Create(ctx context.Context, project *entity.Project) error {
	projectModel := model.ProjectFromEntity(project)
	result := r.db.WithContext(ctx).Create(projectModel)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerror.ErrProjectCodeExists
		}
		return result.Error
	}
	return nil
}

// FindByID retrieves a project by its ID.
func (r *projectRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Project, error) {
	var projectModel model.ProjectModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&projectModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrProjectNotFound
		}
		return nil, result.Error
	}
	return projectModel.ToEntity(), nil
}

// FindByUser retrieves all projects owned by a user, newest first.
func (r *projectRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Project, error) {
	var projectModels []model.ProjectModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&projectModels)
	if result.Error != nil {
		return nil, result.Error
	}

	projects := make([]*entity.Project, len(projectModels))
	for i, pm := range projectModels {
		projects[i] = pm.ToEntity()
	}
	return projects, nil
}

// Update updates an existing project in the database.
func (r *projectRepository) Update(ctx context.Context, project *entity.Project) error {
	projectModel := model.ProjectFromEntity(project)
	result := r.db.WithContext(ctx).Save(projectModel)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerror.ErrProjectCodeExists
		}
		return result.Error
	}
	return nil
}

// Delete removes a project together with its work items and their
// payments. The children are deleted explicitly inside one transaction
// so no orphan rows remain even when the database does not enforce the
// ON DELETE CASCADE constraints.
func (r *projectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var itemIDs []uuid.UUID
		if err := tx.Model(&model.WorkItemModel{}).
			Where("project_id = ?", id).
			Pluck("id", &itemIDs).Error; err != nil {
			return err
		}
		if len(itemIDs) > 0 {
			// Progress payments reference their contract payment, so
			// they go first.
			if err := tx.Where("work_item_id IN ? AND contract_payment_id IS NOT NULL", itemIDs).
				Delete(&model.PaymentModel{}).Error; err != nil {
				return err
			}
			if err := tx.Where("work_item_id IN ?", itemIDs).
				Delete(&model.PaymentModel{}).Error; err != nil {
				return err
			}
			if err := tx.Where("project_id = ?", id).
				Delete(&model.WorkItemModel{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.ProjectModel{}, "id = ?", id).Error
	})
}

// ExistsByCode checks if a project with the given code exists.
func (r *projectRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.ProjectModel{}).Where("code = ?", code).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// ExistsByCodeExcluding checks if another project uses the given code.
func (r *projectRepository) ExistsByCodeExcluding(ctx context.Context, code string, excludeID uuid.UUID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.ProjectModel{}).
		Where("code = ? AND id <> ?", code, excludeID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}
