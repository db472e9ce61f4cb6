package types

import "encoding/json"

const (
	FragmentTypeText  = "text"
	FragmentTypeTable = "table"
)

// Document is one ingested PDF. The raw parser output is kept verbatim in
// ParsedJSON so fragments can be re-extracted later without re-parsing.
type Document struct {
	ID          string          `json:"id"`
	Filename    string          `json:"filename"`
	StoragePath string          `json:"storage_path"`
	ParsedJSON  json.RawMessage `json:"parsed_json,omitempty"`
	CreatedAt   int64           `json:"created_at"`
}

// Fragment is a unit of extracted document content destined for embedding
// and similarity search. Content is always non-empty and trimmed.
type Fragment struct {
	ID         string           `json:"id,omitempty"`
	DocumentID string           `json:"document_id,omitempty"`
	Content    string           `json:"content"`
	Metadata   FragmentMetadata `json:"metadata"`
	Embedding  []float32        `json:"embedding,omitempty"`
}

// FragmentMetadata carries the fragment kind and its provenance. Page and
// BBox are nil when the parser reported no provenance for the block.
type FragmentMetadata struct {
	Type string       `json:"type"`
	Page *int         `json:"page,omitempty"`
	BBox *BoundingBox `json:"bbox,omitempty"`
}

type BoundingBox struct {
	L float64 `json:"l"`
	T float64 `json:"t"`
	R float64 `json:"r"`
	B float64 `json:"b"`
}

// SearchResult is a fragment ranked against a query embedding. Similarity
// is cosine similarity (1 - cosine distance), in [-1, 1], larger is closer.
type SearchResult struct {
	ID         string           `json:"id"`
	Content    string           `json:"content"`
	Metadata   FragmentMetadata `json:"metadata"`
	Similarity float64          `json:"similarity"`
}

// IngestResult summarizes one ingestion run. FragmentsProcessed counts
// only rows that were actually inserted; it can be lower than
// FragmentsExtracted because of the per-document cap or skipped batches.
type IngestResult struct {
	DocumentID         string
	FragmentsExtracted int
	FragmentsProcessed int
}
