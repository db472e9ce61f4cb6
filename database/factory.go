package database

import (
	"context"
	"fmt"

	"github.com/haiminh/pdf-insight-be/config"
)

// NewStore builds the datastore selected by configuration. Fragment
// vectors written through one backend are only searchable through the
// same backend.
func NewStore(ctx context.Context, cfg config.StoreConfig, embeddingDimension int) (Store, error) {
	switch cfg.Type {
	case "postgres":
		return NewPostgresStore(ctx, cfg.PostgresDSN, embeddingDimension)
	case "weaviate":
		return NewWeaviateStore(cfg.WeaviateHost, cfg.WeaviateAPIKey)
	default:
		return nil, fmt.Errorf("unknown store type: %s", cfg.Type)
	}
}
