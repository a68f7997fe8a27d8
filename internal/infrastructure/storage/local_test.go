package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveDeleteRoundTrip(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocal(root, "http://localhost:8080/", nil)
	if err != nil {
		t.Fatalf("new local: %v", err)
	}
	ctx := context.Background()

	rel, err := store.Save(ctx, "profile-pictures", "a.png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if rel != "profile-pictures/a.png" {
		t.Fatalf("unexpected relative path: %q", rel)
	}

	content, err := os.ReadFile(filepath.Join(root, "profile-pictures", "a.png"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(content) != "png-bytes" {
		t.Fatalf("unexpected content: %q", content)
	}

	if err := store.Delete(ctx, rel); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "profile-pictures", "a.png")); !os.IsNotExist(err) {
		t.Fatalf("file must be gone, stat err=%v", err)
	}
}

func TestDelete_MissingFileIsNotAnError(t *testing.T) {
	store, err := NewLocal(t.TempDir(), "http://localhost:8080", nil)
	if err != nil {
		t.Fatalf("new local: %v", err)
	}
	if err := store.Delete(context.Background(), "profile-pictures/never-existed.png"); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestPublicURL_TrimsTrailingSlash(t *testing.T) {
	store, err := NewLocal(t.TempDir(), "http://cdn.example.com/", nil)
	if err != nil {
		t.Fatalf("new local: %v", err)
	}
	got := store.PublicURL("profile-pictures/a.png")
	if got != "http://cdn.example.com/storage/profile-pictures/a.png" {
		t.Fatalf("unexpected url: %q", got)
	}
}

func TestNewLocal_CreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "storage")
	if _, err := NewLocal(root, "http://localhost:8080", nil); err != nil {
		t.Fatalf("new local: %v", err)
	}
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		t.Fatalf("root must exist as a directory: %v", err)
	}
}
