package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	catalogapp "github.com/booktime/backend/internal/application/catalog"
)

// Ensure LocalStorage implements ObjectStorage
var _ catalogapp.ObjectStorage = (*LocalStorage)(nil)

// LocalStorage implements ObjectStorage on the local filesystem.
// Keys map directly to file paths under the root directory.
// Intended for development and single-instance deployments.
type LocalStorage struct {
	root string
}

// NewLocalStorage creates a filesystem-backed store rooted at the given directory
func NewLocalStorage(root string) (*LocalStorage, error) {
	if root == "" {
		return nil, errors.New("storage root directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	return &LocalStorage{root: root}, nil
}

// Put writes an object to a file under the root directory
func (s *LocalStorage) Put(ctx context.Context, key, contentType string, body io.Reader) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create object file: %w", err)
	}

	if _, err := io.Copy(file, body); err != nil {
		file.Close()
		os.Remove(path)
		return fmt.Errorf("failed to write object: %w", err)
	}
	return file.Close()
}

// Delete removes the file for the key, ignoring objects that are already gone
func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// resolve maps a key to a path and rejects keys that escape the root
func (s *LocalStorage) resolve(key string) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}

	cleaned := filepath.Clean(filepath.FromSlash(key))
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid storage key: %s", key)
	}

	return filepath.Join(s.root, cleaned), nil
}
