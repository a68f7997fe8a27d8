package repository

import (
	"context"
	"time"

	"github.com/taskhive/backend/domain"
)

type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id string) error
	Complete(ctx context.Context, id string, completedAt time.Time) (*domain.Task, error)
}
