// Package workitem contains work item-related use cases.
package workitem

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yosan-kanri/backend/internal/domain/entity"
	domainerror "github.com/yosan-kanri/backend/internal/domain/error"
)

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

func (r *fakeProjectRepo) FindByUser(_ context.Context, _ uuid.UUID) ([]*entity.Project, error) {
	return nil, nil
}

func (r *fakeProjectRepo) Update(_ context.Context, p *entity.Project) error {
	r.projects[p.ID] = p
	return nil
}

func (r *fakeProjectRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.projects, id)
	return nil
}

func (r *fakeProjectRepo) ExistsByCode(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func (r *fakeProjectRepo) ExistsByCodeExcluding(_ context.Context, _ string, _ uuid.UUID) (bool, error) {
	return false, nil
}

// fakeWorkItemRepo is an in-memory WorkItemRepository for use case tests.
type fakeWorkItemRepo struct {
	items map[uuid.UUID]*entity.WorkItem
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
	if _, ok := r.items[item.ID]; !ok {
		return domainerror.ErrWorkItemNotFound
	}
	r.items[item.ID] = item
	return nil
}

func (r *fakeWorkItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.items[id]; !ok {
		return domainerror.ErrWorkItemNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeWorkItemRepo) RecomputeRemaining(_ context.Context, id uuid.UUID) (int64, error) {
	item, ok := r.items[id]
	if !ok {
		return 0, domainerror.ErrWorkItemNotFound
	}
	return item.RemainingAmount, nil
}

func newWorkItemFixture() (*fakeWorkItemRepo, *fakeProjectRepo, uuid.UUID, uuid.UUID) {
	userID := uuid.New()
	project := entity.NewProject(userID, "P-001", "本社ビル新築工事", 50_000_000, 40_000_000, nil, decimal.Zero)

	workItemRepo := &fakeWorkItemRepo{items: make(map[uuid.UUID]*entity.WorkItem)}
	projectRepo := &fakeProjectRepo{projects: map[uuid.UUID]*entity.Project{project.ID: project}}

	return workItemRepo, projectRepo, userID, project.ID
}

func TestCreateWorkItemFallsBackToCatalogName(t *testing.T) {
	workItemRepo, projectRepo, userID, projectID := newWorkItemFixture()
	uc := NewCreateWorkItemUseCase(workItemRepo, projectRepo)

	catalogName, ok := entity.ConstructionTypeName("42-08")
	if !ok {
		t.Fatal("expected catalog code 42-08 to exist")
	}

	out, err := uc.Execute(context.Background(), CreateWorkItemInput{
		UserID:       userID,
		ProjectID:    projectID,
		WorkCode:     "42-08",
		BudgetAmount: 5_000_000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.WorkItem.WorkName != catalogName {
		t.Errorf("expected catalog name %q, got %q", catalogName, out.WorkItem.WorkName)
	}

	// An explicit name always wins over the catalog.
	out, err = uc.Execute(context.Background(), CreateWorkItemInput{
		UserID:       userID,
		ProjectID:    projectID,
		WorkCode:     "42-08",
		WorkName:     "特注外構工事",
		BudgetAmount: 3_000_000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.WorkItem.WorkName != "特注外構工事" {
		t.Errorf("expected explicit name kept, got %q", out.WorkItem.WorkName)
	}
}

func TestCreateWorkItemRejectsNegativeBudget(t *testing.T) {
	workItemRepo, projectRepo, userID, projectID := newWorkItemFixture()
	uc := NewCreateWorkItemUseCase(workItemRepo, projectRepo)

	_, err := uc.Execute(context.Background(), CreateWorkItemInput{
		UserID:       userID,
		ProjectID:    projectID,
		WorkCode:     "42-08",
		BudgetAmount: -1,
	})
	if !errors.Is(err, domainerror.ErrInvalidWorkItemBudget) {
		t.Fatalf("expected budget validation error, got %v", err)
	}
	if len(workItemRepo.items) != 0 {
		t.Error("expected no work item persisted")
	}
}

func TestCreateWorkItemDeniesForeignProject(t *testing.T) {
	workItemRepo, projectRepo, _, projectID := newWorkItemFixture()
	uc := NewCreateWorkItemUseCase(workItemRepo, projectRepo)

	_, err := uc.Execute(context.Background(), CreateWorkItemInput{
		UserID:       uuid.New(),
		ProjectID:    projectID,
		WorkCode:     "42-08",
		BudgetAmount: 5_000_000,
	})
	if !errors.Is(err, domainerror.ErrNotAuthorizedToAccessProject) {
		t.Fatalf("expected authorization error, got %v", err)
	}
}

func TestUpdateWorkItemRefreshesCatalogNameOnCodeChange(t *testing.T) {
	workItemRepo, projectRepo, userID, projectID := newWorkItemFixture()
	createUC := NewCreateWorkItemUseCase(workItemRepo, projectRepo)
	updateUC := NewUpdateWorkItemUseCase(workItemRepo, projectRepo)

	created, err := createUC.Execute(context.Background(), CreateWorkItemInput{
		UserID:       userID,
		ProjectID:    projectID,
		WorkCode:     "42-08",
		BudgetAmount: 5_000_000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	newCode := "42-01"
	catalogName, ok := entity.ConstructionTypeName(newCode)
	if !ok {
		t.Fatal("expected catalog code 42-01 to exist")
	}

	out, err := updateUC.Execute(context.Background(), UpdateWorkItemInput{
		UserID:     userID,
		WorkItemID: created.WorkItem.ID,
		WorkCode:   &newCode,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.WorkItem.WorkCode != newCode {
		t.Errorf("expected code %q, got %q", newCode, out.WorkItem.WorkCode)
	}
	if out.WorkItem.WorkName != catalogName {
		t.Errorf("expected refreshed catalog name %q, got %q", catalogName, out.WorkItem.WorkName)
	}
}
