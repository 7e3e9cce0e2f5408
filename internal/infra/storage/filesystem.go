package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemStore keeps objects under a root directory on local disk.
type FilesystemStore struct {
	root string
}

func NewFilesystemStore(root string) (*FilesystemStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("NewFilesystemStore: %w", err)
	}
	return &FilesystemStore{root: root}, nil
}

// resolve maps a store path to a filesystem path, rejecting traversal.
func (s *FilesystemStore) resolve(path string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(path))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid object path %q", path)
	}
	return filepath.Join(s.root, clean), nil
}

func (s *FilesystemStore) Put(ctx context.Context, path string, r io.Reader, size int64, contentType string) error {
	full, err := s.resolve(path)
	if err != nil {
		return fmt.Errorf("Put: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("Put: %w", err)
	}
	f, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("Put: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return fmt.Errorf("Put: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("Put: %w", err)
	}
	return nil
}

func (s *FilesystemStore) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	full, err := s.resolve(path)
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	f, err := os.Open(full)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return f, nil
}

func (s *FilesystemStore) Delete(ctx context.Context, path string) error {
	full, err := s.resolve(path)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}
