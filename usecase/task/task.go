package task

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository"
)

type UseCase struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		logger: logger,
	}
}

func (uc *UseCase) ListTasks(ctx context.Context, userID string) ([]domain.Task, error) {
	return uc.tasks.ListByUser(ctx, userID)
}

// Authorize resolves a task by id and applies the owner-only policy for the
// requested action before anything else happens to the record.
func (uc *UseCase) Authorize(ctx context.Context, id, callerID string, action domain.Action) (*domain.Task, error) {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.AuthorizeTask(action, task, callerID); err != nil {
		return nil, err
	}
	return task, nil
}

// CreateTask persists a new task for its owner. The completion flag is
// forced off no matter what the caller supplied.
func (uc *UseCase) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	task.IsCompleted = false
	return uc.tasks.Create(ctx, task)
}

// UpdateTask overwrites name and the two dates on an already authorized
// task. Completion state and ownership pass through untouched.
func (uc *UseCase) UpdateTask(ctx context.Context, task *domain.Task, name string, createdDate time.Time, completionDate *time.Time) (*domain.Task, error) {
	task.Name = name
	task.CreatedDate = createdDate
	task.CompletionDate = completionDate
	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (uc *UseCase) DeleteTask(ctx context.Context, id string) error {
	return uc.tasks.Delete(ctx, id)
}

// CompleteTask marks the task completed as of now, discarding any
// completion date set earlier.
func (uc *UseCase) CompleteTask(ctx context.Context, id string) (*domain.Task, error) {
	return uc.tasks.Complete(ctx, id, time.Now())
}
