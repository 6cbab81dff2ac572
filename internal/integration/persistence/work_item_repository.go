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

// workItemRepository implements the adapter.WorkItemRepository interface.
type workItemRepository struct {
	db *gorm.DB
}

// NewWorkItemRepository creates a new work item repository instance.
func NewWorkItemRepository(db *gorm.DB) adapter.WorkItemRepository {
	return &workItemRepository{
		db: db,
	}
}

// Create creates a new work item in the database.
func (r *workItemRepository) Create(ctx context.Context, item *entity.WorkItem) error {
	itemModel := model.WorkItemFromEntity(item)
	result := r.db.WithContext(ctx).Create(itemModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a work item by its ID.
func (r *workItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.WorkItem, error) {
	var itemModel model.WorkItemModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&itemModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrWorkItemNotFound
		}
		return nil, result.Error
	}
	return itemModel.ToEntity(), nil
}

// FindByProject retrieves all work items under a project, ordered by work code.
func (r *workItemRepository) FindByProject(ctx context.Context, projectID uuid.UUID) ([]*entity.WorkItem, error) {
	var itemModels []model.WorkItemModel
	result := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("work_code ASC, created_at ASC").
		Find(&itemModels)
	if result.Error != nil {
		return nil, result.Error
	}

	items := make([]*entity.WorkItem, len(itemModels))
	for i, im := range itemModels {
		items[i] = im.ToEntity()
	}
	return items, nil
}

// Update updates a work item and rederives its remaining amount from the
// current payment set within the same transaction, so a changed allocation
// can never leave a stale cached figure behind.
func (r *workItemRepository) Update(ctx context.Context, item *entity.WorkItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		itemModel := model.WorkItemFromEntity(item)
		if err := tx.Save(itemModel).Error; err != nil {
			return err
		}

		remaining, err := recomputeRemaining(tx, item.ID, item.BudgetAmount)
		if err != nil {
			return err
		}
		item.RemainingAmount = remaining

		return tx.Model(&model.WorkItemModel{}).
			Where("id = ?", item.ID).
			Update("remaining_amount", remaining).Error
	})
}

// Delete removes a work item and its payments in one transaction, so
// no orphan payments remain even without FK enforcement.
func (r *workItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Progress payments reference their contract payment, so they
		// go first.
		if err := tx.Where("work_item_id = ? AND contract_payment_id IS NOT NULL", id).
			Delete(&model.PaymentModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("work_item_id = ?", id).
			Delete(&model.PaymentModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.WorkItemModel{}, "id = ?", id).Error
	})
}

// RecomputeRemaining rederives the cached remaining amount from the work
// item's full payment set and persists it. Safe to call on every read.
func (r *workItemRepository) RecomputeRemaining(ctx context.Context, id uuid.UUID) (int64, error) {
	var remaining int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var itemModel model.WorkItemModel
		if err := tx.Where("id = ?", id).First(&itemModel).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerror.ErrWorkItemNotFound
			}
			return err
		}

		var err error
		remaining, err = recomputeRemaining(tx, id, itemModel.BudgetAmount)
		if err != nil {
			return err
		}

		if remaining == itemModel.RemainingAmount {
			return nil
		}
		return tx.Model(&model.WorkItemModel{}).
			Where("id = ?", id).
			Update("remaining_amount", remaining).Error
	})
	if err != nil {
		return 0, err
	}
	return remaining, nil
}

// recomputeRemaining loads the full payment set of a work item inside tx and
// derives the remaining amount from scratch.
func recomputeRemaining(tx *gorm.DB, workItemID uuid.UUID, budgetAmount int64) (int64, error) {
	var paymentModels []model.PaymentModel
	if err := tx.Where("work_item_id = ?", workItemID).Find(&paymentModels).Error; err != nil {
		return 0, err
	}

	payments := make([]*entity.Payment, len(paymentModels))
	for i, pm := range paymentModels {
		payments[i] = pm.ToEntity()
	}
	return entity.RemainingAmount(budgetAmount, payments), nil
}
