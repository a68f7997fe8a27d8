package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository"
)

type UseCase struct {
	users      repository.UserRepository
	tokens     repository.TokenRepository
	tokenTTL   time.Duration
	bcryptCost int
	logger     *zap.Logger
}

func New(users repository.UserRepository, tokens repository.TokenRepository, tokenTTL time.Duration, logger *zap.Logger) *UseCase {
	if tokenTTL <= 0 {
		tokenTTL = 720 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:      users,
		tokens:     tokens,
		tokenTTL:   tokenTTL,
		bcryptCost: bcrypt.DefaultCost,
		logger:     logger,
	}
}

// Register stores a new user with a bcrypt-hashed password and issues the
// first token for it.
func (uc *UseCase) Register(ctx context.Context, name, email, password string) (*domain.User, *domain.Token, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), uc.bcryptCost)
	if err != nil {
		return nil, nil, domain.WrapError(domain.ErrCodeInternal, "failed to hash password", err)
	}

	user := &domain.User{
		Name:     name,
		Email:    strings.ToLower(email),
		Password: string(hashed),
	}

	if err := uc.users.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	token, err := uc.IssueToken(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, token, nil
}

// Login verifies credentials and issues a fresh token. Previously issued
// tokens stay valid. Lookup and comparison failures collapse into the same
// fixed error.
func (uc *UseCase) Login(ctx context.Context, email, password string) (*domain.User, *domain.Token, error) {
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	token, err := uc.IssueToken(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, token, nil
}

// Logout revokes exactly the presented token.
func (uc *UseCase) Logout(ctx context.Context, value string) error {
	return uc.tokens.Delete(ctx, value)
}

// IssueToken mints an opaque bearer token bound to the user.
func (uc *UseCase) IssueToken(ctx context.Context, userID string) (*domain.Token, error) {
	token := &domain.Token{
		Value:     uuid.NewString(),
		UserID:    userID,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(uc.tokenTTL),
	}
	if err := uc.tokens.Save(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

// ResolveToken maps a presented bearer token to its user id. Expired tokens
// are removed on sight and reported as unknown.
func (uc *UseCase) ResolveToken(ctx context.Context, value string) (string, error) {
	token, err := uc.tokens.Get(ctx, value)
	if err != nil {
		return "", err
	}
	if token.IsExpired(time.Now()) {
		if err := uc.tokens.Delete(ctx, value); err != nil {
			uc.logger.Warn("failed to delete expired token", zap.Error(err))
		}
		return "", domain.ErrTokenNotFound
	}
	return token.UserID, nil
}

// EmailTaken reports whether the email is already registered; the uniqueness
// validation rule calls through here.
func (uc *UseCase) EmailTaken(ctx context.Context, email string) (bool, error) {
	return uc.users.EmailExists(ctx, email)
}
