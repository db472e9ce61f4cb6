package storage

import (
	"context"
	"fmt"

	"github.com/haiminh/pdf-insight-be/config"
)

// ObjectStorage abstracts the bucket store holding uploaded PDFs. The
// pipeline only ever addresses objects by (bucket, path).
type ObjectStorage interface {
	Download(ctx context.Context, bucket, path string) ([]byte, error)
	Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error
}

// NewObjectStorage builds the storage backend selected by configuration.
func NewObjectStorage(cfg config.StorageConfig) (ObjectStorage, error) {
	switch cfg.Type {
	case "local":
		return NewLocalStorage(cfg.BaseDir)
	case "minio":
		return NewMinioStorage(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
