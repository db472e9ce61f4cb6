package types

type ErrorResponse struct {
	Error string `json:"error"`
}

type IngestResponse struct {
	DocumentID      string `json:"document_id"`
	ChunksProcessed int    `json:"chunks_processed"`
}

type UploadResponse struct {
	Bucket          string `json:"bucket"`
	Path            string `json:"path"`
	DocumentID      string `json:"document_id"`
	ChunksProcessed int    `json:"chunks_processed"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
