package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalStorage keeps objects under baseDir/<bucket>/<path>. Meant for
// development and tests; production deployments use MinioStorage.
type LocalStorage struct {
	baseDir string
}

func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStorage{baseDir: baseDir}, nil
}

func (s *LocalStorage) Download(ctx context.Context, bucket, path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, bucket, filepath.FromSlash(path)))
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s/%s: %w", bucket, path, err)
	}
	return data, nil
}

func (s *LocalStorage) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error {
	target := filepath.Join(s.baseDir, bucket, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create bucket directory: %w", err)
	}
	if err := os.WriteFile(target, data, 0644); err != nil {
		return fmt.Errorf("failed to write object %s/%s: %w", bucket, path, err)
	}
	return nil
}
