package objectstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore implements ObjectStore on the local filesystem. It is meant for
// development; the router serves the directory under the public base URL.
type LocalStore struct {
	basePath      string
	publicBaseURL string
}

var _ ObjectStore = (*LocalStore)(nil)

// NewLocalStore creates a local store rooted at basePath.
func NewLocalStore(basePath, publicBaseURL string) *LocalStore {
	if basePath == "" {
		basePath = "_objects"
	}
	return &LocalStore{
		basePath:      basePath,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
	}
}

// BasePath returns the directory objects are written to.
func (s *LocalStore) BasePath() string {
	return s.basePath
}

// Put writes data to basePath/key. The file is written to a temp name first
// and renamed so readers never see a partial object.
func (s *LocalStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fullPath, err := s.resolve(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("create storage directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(fullPath), ".upload-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write object: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close object: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod object: %w", err)
	}
	if err := os.Rename(tmpName, fullPath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename object: %w", err)
	}

	return nil
}

// PublicURL returns publicBaseURL/key.
func (s *LocalStore) PublicURL(key string) string {
	return s.publicBaseURL + "/" + strings.TrimPrefix(key, "/")
}

// resolve maps key to a path inside basePath, rejecting keys that escape it.
func (s *LocalStore) resolve(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if clean == "/" {
		return "", fmt.Errorf("object key cannot be empty")
	}
	return filepath.Join(s.basePath, filepath.FromSlash(clean)), nil
}
