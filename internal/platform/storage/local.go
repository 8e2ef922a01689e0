package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore writes images to a directory served by the HTTP layer under
// /uploads/. URLs are relative so the frontend resolves them against the API
// origin.
type LocalStore struct {
	root      string
	urlPrefix string
}

// NewLocalStore creates the upload directory when missing.
func NewLocalStore(root string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create upload dir: %w", err)
	}
	return &LocalStore{root: root, urlPrefix: "/uploads/"}, nil
}

// Save writes the content under a unique name derived from the original
// extension and returns the public URL.
func (s *LocalStore) Save(ctx context.Context, originalName, contentType string, content io.Reader) (string, error) {
	ext := strings.ToLower(path.Ext(originalName))
	name := uuid.NewString() + ext

	f, err := os.Create(filepath.Join(s.root, name))
	if err != nil {
		return "", fmt.Errorf("storage: create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("storage: write file: %w", err)
	}
	return s.urlPrefix + name, nil
}

// Remove deletes the file a URL points at. Missing files are not an error;
// the record referencing them is already gone or being replaced.
func (s *LocalStore) Remove(ctx context.Context, url string) error {
	name := strings.TrimPrefix(url, s.urlPrefix)
	if name == "" || name == url || strings.Contains(name, "/") {
		return nil
	}
	if err := os.Remove(filepath.Join(s.root, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: remove file: %w", err)
	}
	return nil
}

// Root exposes the directory for the static file route.
func (s *LocalStore) Root() string { return s.root }

var _ Store = (*LocalStore)(nil)
