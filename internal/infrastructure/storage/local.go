package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/johnquangdev/meeting-summarizer/pkg/config"
)

// LocalStore keeps audio files in a directory on local disk
type LocalStore struct {
	root string
}

// NewLocalStore creates the storage directory if needed
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := EnsureDir(dir); err != nil {
		return nil, err
	}
	return &LocalStore{root: dir}, nil
}

// EnsureDir creates dir and its parents when missing
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create storage dir %s: %w", dir, err)
	}
	return nil
}

// Backend implements Store
func (s *LocalStore) Backend() string {
	return config.StorageTypeLocal
}

// Save writes to a temp file in the same directory and renames it into
// place, so the final path only ever holds complete content.
func (s *LocalStore) Save(ctx context.Context, name string, r io.Reader, _ int64, _ string) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}
	if name == "" || filepath.Base(name) != name {
		return "", 0, fmt.Errorf("invalid storage name %q", name)
	}

	tmp, err := os.CreateTemp(s.root, ".upload-*")
	if err != nil {
		return "", 0, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	written, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		cleanup()
		return "", 0, fmt.Errorf("failed to write audio: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", 0, fmt.Errorf("failed to close audio file: %w", err)
	}

	dest := filepath.Join(s.root, name)
	if err := os.Rename(tmpPath, dest); err != nil {
		cleanup()
		return "", 0, fmt.Errorf("failed to move audio into place: %w", err)
	}
	return dest, written, nil
}

// Open implements Store
func (s *LocalStore) Open(_ context.Context, path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio: %w", err)
	}
	return f, nil
}
