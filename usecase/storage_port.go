package usecase

import (
	"context"
	"io"
)

// FileStore abstracts the public file storage so use cases stay agnostic of
// the disk layout. Paths are relative to the store root and double as the
// reference persisted on the user record.
type FileStore interface {
	Save(ctx context.Context, dir, name string, r io.Reader) (string, error)
	Delete(ctx context.Context, path string) error
	PublicURL(path string) string
}
