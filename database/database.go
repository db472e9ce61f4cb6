package database

import (
	"context"

	"github.com/haiminh/pdf-insight-be/types"
)

// DocumentStore persists document rows together with their raw parsed
// payloads. Documents are created once per successful parse and never
// mutated.
type DocumentStore interface {
	CreateDocument(ctx context.Context, doc *types.Document) (string, error)
	GetDocument(ctx context.Context, id string) (*types.Document, error)
}

// FragmentStore persists embedded fragments and serves document-scoped
// similarity search. Insertion order must follow the order of the given
// slice; search results come back ranked by similarity descending.
type FragmentStore interface {
	InsertFragments(ctx context.Context, fragments []types.Fragment) error
	SearchFragments(ctx context.Context, documentID string, embedding []float32, limit int) ([]types.SearchResult, error)
	DeleteDocumentFragments(ctx context.Context, documentID string) error
}

// Store is the combined datastore surface the pipeline runs against.
type Store interface {
	DocumentStore
	FragmentStore
}
