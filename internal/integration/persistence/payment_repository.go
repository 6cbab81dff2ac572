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

// paymentRepository implements the adapter.PaymentRepository interface.
//
// Every mutation runs inside a transaction that also rederives the owning
// work item's remaining amount, so the cached figure commits atomically with
// the payment change.
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository instance.
func NewPaymentRepository(db *gorm.DB) adapter.PaymentRepository {
	return &paymentRepository{
		db: db,
	}
}

// Create persists a payment and recomputes the work item's remaining amount
// transactionally.
func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		paymentModel := model.PaymentFromEntity(payment)
		if err := tx.Create(paymentModel).Error; err != nil {
			return err
		}
		return syncRemaining(tx, payment.WorkItemID)
	})
}

// FindByID retrieves a payment by its ID.
func (r *paymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	var paymentModel model.PaymentModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&paymentModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrPaymentNotFound
		}
		return nil, result.Error
	}
	return paymentModel.ToEntity(), nil
}

// FindByWorkItem retrieves all payments for a work item, newest first.
func (r *paymentRepository) FindByWorkItem(ctx context.Context, workItemID uuid.UUID) ([]*entity.Payment, error) {
	var paymentModels []model.PaymentModel
	result := r.db.WithContext(ctx).
		Where("work_item_id = ?", workItemID).
		Order("created_at DESC").
		Find(&paymentModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toPaymentEntities(paymentModels), nil
}

// FindByProject retrieves all payments across all of a project's work items.
func (r *paymentRepository) FindByProject(ctx context.Context, projectID uuid.UUID) ([]*entity.Payment, error) {
	var paymentModels []model.PaymentModel
	result := r.db.WithContext(ctx).
		Joins("JOIN work_items ON work_items.id = payments.work_item_id").
		Where("work_items.project_id = ?", projectID).
		Order("payments.created_at DESC").
		Find(&paymentModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toPaymentEntities(paymentModels), nil
}

// FindLatestProgress retrieves the most recent progress payment in the chain
// scoped to (work item, contractor, contract reference), or nil when the
// chain is empty.
func (r *paymentRepository) FindLatestProgress(ctx context.Context, workItemID uuid.UUID, contractor string, contractPaymentID *uuid.UUID) (*entity.Payment, error) {
	query := r.db.WithContext(ctx).
		Where("work_item_id = ? AND category = ? AND contractor = ?",
			workItemID, string(entity.PaymentCategoryProgress), contractor)

	if contractPaymentID != nil {
		query = query.Where("contract_payment_id = ?", *contractPaymentID)
	} else {
		query = query.Where("contract_payment_id IS NULL")
	}

	var paymentModel model.PaymentModel
	result := query.Order("created_at DESC").First(&paymentModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return paymentModel.ToEntity(), nil
}

// Update persists changes to a payment and recomputes the work item's
// remaining amount transactionally.
func (r *paymentRepository) Update(ctx context.Context, payment *entity.Payment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		paymentModel := model.PaymentFromEntity(payment)
		if err := tx.Save(paymentModel).Error; err != nil {
			return err
		}
		return syncRemaining(tx, payment.WorkItemID)
	})
}

// Delete removes a payment and recomputes the work item's remaining amount
// transactionally.
func (r *paymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var paymentModel model.PaymentModel
		if err := tx.Where("id = ?", id).First(&paymentModel).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerror.ErrPaymentNotFound
			}
			return err
		}

		if err := tx.Delete(&model.PaymentModel{}, "id = ?", id).Error; err != nil {
			return err
		}
		return syncRemaining(tx, paymentModel.WorkItemID)
	})
}

// syncRemaining rederives the work item's remaining amount inside tx and
// writes it back.
func syncRemaining(tx *gorm.DB, workItemID uuid.UUID) error {
	var itemModel model.WorkItemModel
	if err := tx.Where("id = ?", workItemID).First(&itemModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainerror.ErrWorkItemNotFound
		}
		return err
	}

	remaining, err := recomputeRemaining(tx, workItemID, itemModel.BudgetAmount)
	if err != nil {
		return err
	}

	return tx.Model(&model.WorkItemModel{}).
		Where("id = ?", workItemID).
		Update("remaining_amount", remaining).Error
}

func toPaymentEntities(paymentModels []model.PaymentModel) []*entity.Payment {
	payments := make([]*entity.Payment, len(paymentModels))
	for i, pm := range paymentModels {
		payments[i] = pm.ToEntity()
	}
	return payments
}
