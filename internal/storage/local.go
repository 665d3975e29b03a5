package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// PublicPrefix is the URL path under which locally stored images are served.
const PublicPrefix = "/uploads"

// LocalStore writes images to a directory served by the API under PublicPrefix.
type LocalStore struct {
	dir     string
	baseURL string
}

// NewLocalStore creates dir if needed. baseURL may be empty for host-relative URLs.
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir, baseURL: baseURL}, nil
}

func (s *LocalStore) Name() string { return "local" }

// Dir returns the directory images are written to.
func (s *LocalStore) Dir() string { return s.dir }

func (s *LocalStore) Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name = filepath.Base(name)
	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close image: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}
	return s.baseURL + PublicPrefix + "/" + name, nil
}
