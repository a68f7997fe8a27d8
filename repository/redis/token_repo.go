package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository"
)

type tokenRepository struct {
	client *redislib.Client
	prefix string
	ttl    time.Duration
}

// NewTokenRepository creates a Redis-backed store for opaque bearer tokens.
// Each token lives under its own key so revoking one leaves the rest of the
// user's tokens untouched.
func NewTokenRepository(client *redislib.Client, ttl time.Duration) repository.TokenRepository {
	if ttl <= 0 {
		ttl = 720 * time.Hour
	}
	return &tokenRepository{
		client: client,
		prefix: "token:",
		ttl:    ttl,
	}
}

func (r *tokenRepository) Get(ctx context.Context, value string) (*domain.Token, error) {
	result, err := r.client.Get(ctx, r.key(value)).Result()
	if err != nil {
		if err == redislib.Nil {
			return nil, domain.ErrTokenNotFound
		}
		return nil, err
	}

	var token domain.Token
	if err := json.Unmarshal([]byte(result), &token); err != nil {
		return nil, err
	}
	token.Value = value
	return &token, nil
}

func (r *tokenRepository) Save(ctx context.Context, token *domain.Token) error {
	if token == nil || token.Value == "" {
		return domain.ErrInvalidPayload
	}

	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now()
	}
	if token.ExpiresAt.Before(token.CreatedAt) {
		token.ExpiresAt = token.CreatedAt.Add(r.ttl)
	}

	payload, err := json.Marshal(token)
	if err != nil {
		return err
	}

	ttl := time.Until(token.ExpiresAt)
	if ttl <= 0 {
		ttl = r.ttl
	}

	return r.client.Set(ctx, r.key(token.Value), payload, ttl).Err()
}

func (r *tokenRepository) Delete(ctx context.Context, value string) error {
	return r.client.Del(ctx, r.key(value)).Err()
}

func (r *tokenRepository) key(value string) string {
	return fmt.Sprintf("%s%s", r.prefix, value)
}
