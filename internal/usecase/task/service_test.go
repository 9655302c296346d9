package task

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"

	taskdto "github.com/notetrackhq/notetrack/internal/adapter/dto/task"
	"github.com/notetrackhq/notetrack/internal/domain/entities"
	"github.com/notetrackhq/notetrack/internal/domain/repositories"
)

type memTaskRepo struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]*entities.Task
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{tasks: make(map[uuid.UUID]*entities.Task)}
}

func (r *memTaskRepo) Create(_ context.Context, t *entities.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[t.ID] = t
	return nil
}

func (r *memTaskRepo) GetOwned(_ context.Context, id, ownerID uuid.UUID) (*entities.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok || t.OwnerID != ownerID {
		return nil, nil
	}
	copied := *t
	return &copied, nil
}

func (r *memTaskRepo) List(_ context.Context, ownerID uuid.UUID, _ repositories.TaskFilter) ([]*entities.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.Task
	for _, t := range r.tasks {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memTaskRepo) Update(_ context.Context, t *entities.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *t
	r.tasks[t.ID] = &copied
	return nil
}

func (r *memTaskRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tasks, id)
	return nil
}

func (r *memTaskRepo) ReplaceAssignees(_ context.Context, t *entities.Task, contacts []*entities.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.tasks[t.ID]
	if !ok {
		return nil
	}
	stored.Assignees = stored.Assignees[:0]
	for _, c := range contacts {
		stored.Assignees = append(stored.Assignees, *c)
	}
	return nil
}

type stubGoalRepo struct {
	goals      map[uuid.UUID]*entities.Goal
	categories map[uuid.UUID]*entities.Category
}

func (r *stubGoalRepo) Create(context.Context, *entities.Goal) error { return nil }
func (r *stubGoalRepo) GetOwned(_ context.Context, id, ownerID uuid.UUID) (*entities.Goal, error) {
	g, ok := r.goals[id]
	if !ok || g.OwnerID != ownerID {
		return nil, nil
	}
	return g, nil
}
func (r *stubGoalRepo) List(context.Context, uuid.UUID) ([]*entities.Goal, error) { return nil, nil }
func (r *stubGoalRepo) Update(context.Context, *entities.Goal) error              { return nil }
func (r *stubGoalRepo) Delete(context.Context, uuid.UUID) error                   { return nil }
func (r *stubGoalRepo) CreateCategory(context.Context, *entities.Category) error  { return nil }
func (r *stubGoalRepo) GetCategoryOwned(_ context.Context, id, ownerID uuid.UUID) (*entities.Category, error) {
	c, ok := r.categories[id]
	if !ok || c.OwnerID != ownerID {
		return nil, nil
	}
	return c, nil
}
func (r *stubGoalRepo) ListCategories(context.Context, uuid.UUID, *uuid.UUID) ([]*entities.Category, error) {
	return nil, nil
}
func (r *stubGoalRepo) UpdateCategory(context.Context, *entities.Category) error { return nil }
func (r *stubGoalRepo) DeleteCategory(context.Context, uuid.UUID) error          { return nil }

type stubContactRepo struct {
	contacts map[uuid.UUID]*entities.Contact
}

func (r *stubContactRepo) Create(context.Context, *entities.Contact) error { return nil }
func (r *stubContactRepo) GetOwned(_ context.Context, id, ownerID uuid.UUID) (*entities.Contact, error) {
	c, ok := r.contacts[id]
	if !ok || c.OwnerID != ownerID {
		return nil, nil
	}
	return c, nil
}
func (r *stubContactRepo) List(context.Context, uuid.UUID) ([]*entities.Contact, error) {
	return nil, nil
}
func (r *stubContactRepo) Update(context.Context, *entities.Contact) error { return nil }
func (r *stubContactRepo) Delete(context.Context, uuid.UUID) error         { return nil }

func newTestService(taskRepo *memTaskRepo) Service {
	return NewService(taskRepo, &stubGoalRepo{}, &stubContactRepo{})
}

func strPtr(s string) *string { return &s }

func TestUpdateMarksExtractedTaskReviewed(t *testing.T) {
	ownerID := uuid.New()
	meetingID := uuid.New()
	runID := uuid.New()
	extracted := entities.NewExtractedTask(ownerID, meetingID, runID, "Ship the beta", "", entities.TaskPriorityHigh)

	repo := newMemTaskRepo()
	repo.tasks[extracted.ID] = extracted
	svc := newTestService(repo)

	updated, err := svc.Update(context.Background(), extracted.ID, ownerID, &taskdto.UpdateTaskRequest{
		Status: strPtr(entities.TaskStatusInProgress),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated.Reviewed || updated.ReviewedAt == nil {
		t.Error("editing an extracted task must mark it reviewed")
	}
	if !updated.AIExtracted {
		t.Error("review must not clear the extraction provenance")
	}

	stored := repo.tasks[extracted.ID]
	if !stored.Reviewed {
		t.Error("reviewed mark was not persisted")
	}
}

func TestUpdateLeavesManualTaskUnreviewed(t *testing.T) {
	ownerID := uuid.New()
	manual := entities.NewTask(ownerID, "Write release notes", "", "")

	repo := newMemTaskRepo()
	repo.tasks[manual.ID] = manual
	svc := newTestService(repo)

	updated, err := svc.Update(context.Background(), manual.ID, ownerID, &taskdto.UpdateTaskRequest{
		Title: strPtr("Write and publish release notes"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Reviewed || updated.ReviewedAt != nil {
		t.Error("manual tasks have no review state to set")
	}
}

func TestReviewedTimestampSticks(t *testing.T) {
	ownerID := uuid.New()
	extracted := entities.NewExtractedTask(ownerID, uuid.New(), uuid.New(), "Follow up with vendor", "", "")

	repo := newMemTaskRepo()
	repo.tasks[extracted.ID] = extracted
	svc := newTestService(repo)

	first, err := svc.Update(context.Background(), extracted.ID, ownerID, &taskdto.UpdateTaskRequest{
		Priority: strPtr(entities.TaskPriorityUrgent),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Update(context.Background(), extracted.ID, ownerID, &taskdto.UpdateTaskRequest{
		Status: strPtr(entities.TaskStatusCompleted),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.ReviewedAt == nil || !second.ReviewedAt.Equal(*first.ReviewedAt) {
		t.Error("reviewed_at must record the first review, not the latest edit")
	}
}

func TestUpdateUnknownTaskIsNotFound(t *testing.T) {
	svc := newTestService(newMemTaskRepo())

	_, err := svc.Update(context.Background(), uuid.New(), uuid.New(), &taskdto.UpdateTaskRequest{
		Title: strPtr("anything"),
	})
	if err == nil {
		t.Fatal("expected an error for an unknown task")
	}
}
