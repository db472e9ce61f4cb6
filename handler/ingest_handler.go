package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haiminh/pdf-insight-be/types"
)

// Ingestor is the slice of the ingestion service the HTTP layer needs.
type Ingestor interface {
	Ingest(ctx context.Context, bucket, path, title string) (*types.IngestResult, error)
	Reingest(ctx context.Context, documentID string) (*types.IngestResult, error)
}

type IngestHandler struct {
	ingestService Ingestor
}

func NewIngestHandler(ingestService Ingestor) *IngestHandler {
	return &IngestHandler{
		ingestService: ingestService,
	}
}

func (h *IngestHandler) HandleIngest(c *gin.Context) {
	var req types.IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "invalid request body"})
		return
	}
	if req.Path == "" {
		req.Path = req.StoragePath
	}
	if req.Path == "" {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "path (or storagePath) is required"})
		return
	}

	result, err := h.ingestService.Ingest(c.Request.Context(), req.Bucket, req.Path, req.Title)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.IngestResponse{
		DocumentID:      result.DocumentID,
		ChunksProcessed: result.FragmentsProcessed,
	})
}
