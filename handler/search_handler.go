package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haiminh/pdf-insight-be/types"
)

// Searcher is the slice of the query service the HTTP layer needs.
type Searcher interface {
	Search(ctx context.Context, queryText, documentID string, matchCount int) ([]types.SearchResult, error)
}

type SearchHandler struct {
	queryService Searcher
}

func NewSearchHandler(queryService Searcher) *SearchHandler {
	return &SearchHandler{
		queryService: queryService,
	}
}

// HandleSearch returns the ranked fragment list as a bare JSON array; an
// empty list is a valid, non-error result.
func (h *SearchHandler) HandleSearch(c *gin.Context) {
	var req types.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "invalid request body"})
		return
	}

	results, err := h.queryService.Search(c.Request.Context(), req.QueryText, req.DocID, req.MatchCount)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}
