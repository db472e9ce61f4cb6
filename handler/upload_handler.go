package handler

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/haiminh/pdf-insight-be/storage"
	"github.com/haiminh/pdf-insight-be/types"
	"github.com/haiminh/pdf-insight-be/utils"
)

const maxUploadSize = 10 << 20 // matches the parser API's request limit

// UploadHandler stores an uploaded PDF in object storage and runs the
// ingestion pipeline on it in one request.
type UploadHandler struct {
	storage       storage.ObjectStorage
	ingestService Ingestor
	bucket        string
}

func NewUploadHandler(objectStorage storage.ObjectStorage, ingestService Ingestor, bucket string) *UploadHandler {
	return &UploadHandler{
		storage:       objectStorage,
		ingestService: ingestService,
		bucket:        bucket,
	}
}

func (h *UploadHandler) HandleUpload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "file is required"})
		return
	}
	defer file.Close()

	if strings.ToLower(filepath.Ext(header.Filename)) != ".pdf" {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "only PDF files are allowed"})
		return
	}
	if header.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "file too large"})
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "failed to read file"})
		return
	}

	objectPath := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), utils.SanitizeFileName(header.Filename))
	if err := h.storage.Upload(c.Request.Context(), h.bucket, objectPath, data, "application/pdf"); err != nil {
		writeError(c, &types.UpstreamError{Service: "storage", Detail: err.Error()})
		return
	}

	title := c.Request.FormValue("title")
	result, err := h.ingestService.Ingest(c.Request.Context(), h.bucket, objectPath, title)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.UploadResponse{
		Bucket:          h.bucket,
		Path:            objectPath,
		DocumentID:      result.DocumentID,
		ChunksProcessed: result.FragmentsProcessed,
	})
}
