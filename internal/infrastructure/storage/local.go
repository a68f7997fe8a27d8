package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Local stores files on the local filesystem under a single root and
// serves them through the router's /storage mount.
type Local struct {
	root    string
	baseURL string
	logger  *zap.Logger
}

// NewLocal prepares the storage root and returns a disk-backed file store.
func NewLocal(root, baseURL string, logger *zap.Logger) (*Local, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &Local{
		root:    root,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  logger,
	}, nil
}

// Save writes content to dir/name under the storage root and returns the
// relative path used for later Delete and PublicURL calls.
func (l *Local) Save(ctx context.Context, dir, name string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	rel := filepath.ToSlash(filepath.Join(dir, name))
	abs := filepath.Join(l.root, dir, name)

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("create storage dir: %w", err)
	}

	f, err := os.Create(abs)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(abs)
		return "", fmt.Errorf("write file: %w", err)
	}

	l.logger.Debug("file stored", zap.String("path", rel))
	return rel, nil
}

// Delete removes a previously saved file. Missing files are not an error.
func (l *Local) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	abs := filepath.Join(l.root, filepath.FromSlash(path))
	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}

// PublicURL maps a stored relative path to its externally reachable URL.
func (l *Local) PublicURL(path string) string {
	return l.baseURL + "/storage/" + filepath.ToSlash(path)
}
