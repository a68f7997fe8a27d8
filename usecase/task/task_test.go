package task

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/taskhive/backend/domain"
)

type fakeTaskRepo struct {
	tasks  map[string]*domain.Task
	nextID int
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[string]*domain.Task)}
}

func (r *fakeTaskRepo) GetByID(_ context.Context, id string) (*domain.Task, error) {
	if t, ok := r.tasks[id]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, domain.ErrTaskNotFound
}

func (r *fakeTaskRepo) ListByUser(_ context.Context, userID string) ([]domain.Task, error) {
	out := make([]domain.Task, 0)
	for _, t := range r.tasks {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	r.nextID++
	stored := *task
	stored.ID = "task-" + strconv.Itoa(r.nextID)
	r.tasks[stored.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeTaskRepo) Update(_ context.Context, task *domain.Task) error {
	existing, ok := r.tasks[task.ID]
	if !ok {
		return domain.ErrTaskNotFound
	}
	existing.Name = task.Name
	existing.CreatedDate = task.CreatedDate
	existing.CompletionDate = task.CompletionDate
	task.IsCompleted = existing.IsCompleted
	return nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *fakeTaskRepo) Complete(_ context.Context, id string, completedAt time.Time) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	t.IsCompleted = true
	t.CompletionDate = &completedAt
	copied := *t
	return &copied, nil
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCreateTask_ForcesIncomplete(t *testing.T) {
	repo := newFakeTaskRepo()
	uc := New(repo, nil)

	created, err := uc.CreateTask(context.Background(), &domain.Task{
		UserID:      "user-1",
		Name:        "Groceries",
		CreatedDate: date("2026-01-10"),
		IsCompleted: true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.IsCompleted {
		t.Fatal("new tasks must start incomplete regardless of the payload")
	}
}

func TestListTasks_OnlyOwnersTasks(t *testing.T) {
	repo := newFakeTaskRepo()
	uc := New(repo, nil)
	ctx := context.Background()

	if _, err := uc.CreateTask(ctx, &domain.Task{UserID: "user-1", Name: "Mine", CreatedDate: date("2026-01-10")}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := uc.CreateTask(ctx, &domain.Task{UserID: "user-2", Name: "Theirs", CreatedDate: date("2026-01-10")}); err != nil {
		t.Fatalf("create: %v", err)
	}

	tasks, err := uc.ListTasks(ctx, "user-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Name != "Mine" {
		t.Fatalf("unexpected tasks: %+v", tasks)
	}

	empty, err := uc.ListTasks(ctx, "user-3")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", empty)
	}
}

func TestAuthorize(t *testing.T) {
	repo := newFakeTaskRepo()
	uc := New(repo, nil)
	ctx := context.Background()

	created, err := uc.CreateTask(ctx, &domain.Task{UserID: "user-1", Name: "Mine", CreatedDate: date("2026-01-10")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := uc.Authorize(ctx, created.ID, "user-1", domain.ActionView); err != nil {
		t.Fatalf("owner must be authorized: %v", err)
	}
	for _, action := range []domain.Action{domain.ActionView, domain.ActionUpdate, domain.ActionDelete} {
		if _, err := uc.Authorize(ctx, created.ID, "user-2", action); !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("action %s by stranger: expected ErrForbidden, got %v", action, err)
		}
	}
	if _, err := uc.Authorize(ctx, "missing-task", "user-1", domain.ActionView); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("unknown id: expected ErrTaskNotFound, got %v", err)
	}
}

func TestUpdateTask_LeavesCompletionStateAlone(t *testing.T) {
	repo := newFakeTaskRepo()
	uc := New(repo, nil)
	ctx := context.Background()

	created, err := uc.CreateTask(ctx, &domain.Task{UserID: "user-1", Name: "Mine", CreatedDate: date("2026-01-10")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := uc.CompleteTask(ctx, created.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	task, err := uc.Authorize(ctx, created.ID, "user-1", domain.ActionUpdate)
	if err != nil {
		t.Fatalf("authorize: %v", err)
	}
	newDate := date("2026-02-01")
	updated, err := uc.UpdateTask(ctx, task, "Renamed", newDate, nil)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Renamed" || !updated.CreatedDate.Equal(newDate) {
		t.Fatalf("fields not overwritten: %+v", updated)
	}
	if !updated.IsCompleted {
		t.Fatal("update must not reset completion state")
	}
}

func TestCompleteTask_OverwritesCompletionDate(t *testing.T) {
	repo := newFakeTaskRepo()
	uc := New(repo, nil)
	ctx := context.Background()

	future := date("2030-12-31")
	created, err := uc.CreateTask(ctx, &domain.Task{
		UserID:         "user-1",
		Name:           "Mine",
		CreatedDate:    date("2026-01-10"),
		CompletionDate: &future,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	before := time.Now()
	completed, err := uc.CompleteTask(ctx, created.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !completed.IsCompleted {
		t.Fatal("task must be completed")
	}
	if completed.CompletionDate == nil || completed.CompletionDate.Equal(future) {
		t.Fatal("completion date must be overwritten with the completion time")
	}
	if completed.CompletionDate.Before(before.Add(-time.Second)) {
		t.Fatalf("completion date not set to now: %v", completed.CompletionDate)
	}
}

func TestDeleteTask(t *testing.T) {
	repo := newFakeTaskRepo()
	uc := New(repo, nil)
	ctx := context.Background()

	created, err := uc.CreateTask(ctx, &domain.Task{UserID: "user-1", Name: "Mine", CreatedDate: date("2026-01-10")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := uc.DeleteTask(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := uc.Authorize(ctx, created.ID, "user-1", domain.ActionView); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("deleted task must be gone, got %v", err)
	}
}
