package profile

import (
	"context"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository"
	"github.com/taskhive/backend/usecase"
)

const pictureDir = "profile-pictures"

type UseCase struct {
	users  repository.UserRepository
	files  usecase.FileStore
	logger *zap.Logger
}

func New(users repository.UserRepository, files usecase.FileStore, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		files:  files,
		logger: logger,
	}
}

func (uc *UseCase) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return uc.users.GetByID(ctx, userID)
}

// ImageURL resolves the stored image reference to a public URL, or "" when
// the user has no picture.
func (uc *UseCase) ImageURL(user *domain.User) string {
	if !user.HasImage() {
		return ""
	}
	return uc.files.PublicURL(user.Image)
}

// UploadPicture replaces the user's profile picture: the previous file is
// deleted before the new one is stored, then the user's image reference is
// updated. File writes and the row update are not transactional with each
// other.
func (uc *UseCase) UploadPicture(ctx context.Context, userID, ext string, content io.Reader) (string, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	if user.HasImage() {
		if err := uc.files.Delete(ctx, user.Image); err != nil {
			uc.logger.Warn("failed to delete previous profile picture",
				zap.String("path", user.Image), zap.Error(err))
		}
	}

	name := uuid.NewString() + ext
	path, err := uc.files.Save(ctx, pictureDir, name, content)
	if err != nil {
		return "", err
	}

	if err := uc.users.UpdateImage(ctx, userID, path); err != nil {
		return "", err
	}

	return uc.files.PublicURL(path), nil
}
