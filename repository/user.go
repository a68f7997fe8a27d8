package repository

import (
	"context"

	"github.com/taskhive/backend/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *domain.User) error
	UpdateImage(ctx context.Context, id string, image string) error
}
