package types

// IngestRequest triggers the ingestion pipeline for an object already in
// storage. StoragePath is accepted as an alias for Path.
type IngestRequest struct {
	Bucket      string `json:"bucket"`
	Path        string `json:"path"`
	StoragePath string `json:"storagePath"`
	Title       string `json:"title"`
}

type SearchRequest struct {
	QueryText  string `json:"query_text"`
	DocID      string `json:"doc_id"`
	MatchCount int    `json:"match_count"`
}
