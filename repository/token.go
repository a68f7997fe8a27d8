package repository

import (
	"context"

	"github.com/taskhive/backend/domain"
)

type TokenRepository interface {
	Get(ctx context.Context, value string) (*domain.Token, error)
	Save(ctx context.Context, token *domain.Token) error
	Delete(ctx context.Context, value string) error
}
