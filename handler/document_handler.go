package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haiminh/pdf-insight-be/database"
	"github.com/haiminh/pdf-insight-be/types"
)

type DocumentHandler struct {
	store         database.DocumentStore
	ingestService Ingestor
}

func NewDocumentHandler(store database.DocumentStore, ingestService Ingestor) *DocumentHandler {
	return &DocumentHandler{
		store:         store,
		ingestService: ingestService,
	}
}

func (h *DocumentHandler) HandleGetDocument(c *gin.Context) {
	id := c.Param("id")
	doc, err := h.store.GetDocument(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, types.ErrorResponse{Error: "document not found"})
		return
	}
	// the parsed payload can be large; it stays server-side
	doc.ParsedJSON = nil
	c.JSON(http.StatusOK, doc)
}

// HandleReingest rebuilds a document's fragments from its stored parse
// payload, skipping download and parsing.
func (h *DocumentHandler) HandleReingest(c *gin.Context) {
	result, err := h.ingestService.Reingest(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.IngestResponse{
		DocumentID:      result.DocumentID,
		ChunksProcessed: result.FragmentsProcessed,
	})
}
