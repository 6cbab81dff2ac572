// Package payment contains payment-related use cases.
package payment

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yosan-kanri/backend/internal/domain/entity"
	domainerror "github.com/yosan-kanri/backend/internal/domain/error"
)

// fakePaymentRepo is an in-memory PaymentRepository for use case tests. It
// keeps insertion order so FindLatestProgress returns the newest entry in a
// chain.
type fakePaymentRepo struct {
	payments    []*entity.Payment
	createCalls int
}

func (r *fakePaymentRepo) Create(_ context.Context, p *entity.Payment) error {
	r.createCalls++
	r.payments = append(r.payments, p)
	return nil
}

func (r *fakePaymentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Payment, error) {
	for _, p := range r.payments {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, domainerror.ErrPaymentNotFound
}

func (r *fakePaymentRepo) FindByWorkItem(_ context.Context, workItemID uuid.UUID) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.payments {
		if p.WorkItemID == workItemID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) FindByProject(_ context.Context, _ uuid.UUID) ([]*entity.Payment, error) {
	return r.payments, nil
}

func (r *fakePaymentRepo) FindLatestProgress(_ context.Context, workItemID uuid.UUID, contractor string, contractPaymentID *uuid.UUID) (*entity.Payment, error) {
	for i := len(r.payments) - 1; i >= 0; i-- {
		p := r.payments[i]
		if p.WorkItemID != workItemID || p.Category != entity.PaymentCategoryProgress || p.Contractor != contractor {
			continue
		}
		if !sameContractRef(p.ContractPaymentID, contractPaymentID) {
			continue
		}
		return p, nil
	}
	return nil, nil
}

func sameContractRef(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (r *fakePaymentRepo) Update(_ context.Context, p *entity.Payment) error {
	for i, existing := range r.payments {
		if existing.ID == p.ID {
			r.payments[i] = p
			return nil
		}
	}
	return domainerror.ErrPaymentNotFound
}

func (r *fakePaymentRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, p := range r.payments {
		if p.ID == id {
			r.payments = append(r.payments[:i], r.payments[i+1:]...)
			return nil
		}
	}
	return domainerror.ErrPaymentNotFound
}

// fakeWorkItemRepo serves a fixed set of work items and recomputes remaining
// amounts from the paired payment repo.
type fakeWorkItemRepo struct {
	items       map[uuid.UUID]*entity.WorkItem
	paymentRepo *fakePaymentRepo
}

func (r *fakeWorkItemRepo) Create(_ context.Context, item *entity.WorkItem) error {
	r.items[item.ID] = item
	return nil
}

func (r *fakeWorkItemRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.WorkItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, domainerror.ErrWorkItemNotFound
	}
	return item, nil
}

func (r *fakeWorkItemRepo) FindByProject(_ context.Context, projectID uuid.UUID) ([]*entity.WorkItem, error) {
	var out []*entity.WorkItem
	for _, item := range r.items {
		if item.ProjectID == projectID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *fakeWorkItemRepo) Update(_ context.Context, item *entity.WorkItem) error {
	r.items[item.ID] = item
	return nil
}

func (r *fakeWorkItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

func (r *fakeWorkItemRepo) RecomputeRemaining(ctx context.Context, id uuid.UUID) (int64, error) {
	item, ok := r.items[id]
	if !ok {
		return 0, domainerror.ErrWorkItemNotFound
	}
	payments, _ := r.paymentRepo.FindByWorkItem(ctx, id)
	remaining := entity.RemainingAmount(item.BudgetAmount, payments)
	item.RemainingAmount = remaining
	return remaining, nil
}

// fakeProjectRepo serves a fixed set of projects.
type fakeProjectRepo struct {
	projects map[uuid.UUID]*entity.Project
}

func (r *fakeProjectRepo) Create(_ context.Context, p *entity.Project) error {
	r.projects[p.ID] = p
	return nil
}

func (r *fakeProjectRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, domainerror.ErrProjectNotFound
	}
	return p, nil
}

func (r *fakeProjectRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.Project, error) {
	var out []*entity.Project
	for _, p := range r.projects {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) Update(_ context.Context, p *entity.Project) error {
	r.projects[p.ID] = p
	return nil
}

func (r *fakeProjectRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.projects, id)
	return nil
}

func (r *fakeProjectRepo) ExistsByCode(_ context.Context, code string) (bool, error) {
	for _, p := range r.projects {
		if p.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeProjectRepo) ExistsByCodeExcluding(_ context.Context, code string, excludeID uuid.UUID) (bool, error) {
	for _, p := range r.projects {
		if p.Code == code && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

// newLedgerFixture wires the three fakes around a single project owning a
// single work item and returns the IDs tests need.
func newLedgerFixture(budget int64) (*fakePaymentRepo, *fakeWorkItemRepo, *fakeProjectRepo, uuid.UUID, uuid.UUID) {
	userID := uuid.New()
	project := entity.NewProject(userID, "P-001", "本社ビル新築工事", 50_000_000, 40_000_000, nil, decimal.Zero)
	item := entity.NewWorkItem(project.ID, "43-04", "別途外構工事", budget)

	paymentRepo := &fakePaymentRepo{}
	workItemRepo := &fakeWorkItemRepo{
		items:       map[uuid.UUID]*entity.WorkItem{item.ID: item},
		paymentRepo: paymentRepo,
	}
	projectRepo := &fakeProjectRepo{
		projects: map[uuid.UUID]*entity.Project{project.ID: project},
	}

	return paymentRepo, workItemRepo, projectRepo, userID, item.ID
}
