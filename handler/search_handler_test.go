package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haiminh/pdf-insight-be/types"
)

type stubSearcher struct {
	results  []types.SearchResult
	err      error
	gotQuery string
	gotDocID string
	gotCount int
}

func (s *stubSearcher) Search(ctx context.Context, queryText, documentID string, matchCount int) ([]types.SearchResult, error) {
	s.gotQuery = queryText
	s.gotDocID = documentID
	s.gotCount = matchCount
	return s.results, s.err
}

func searchTestRouter(searcher Searcher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewSearchHandler(searcher)
	router.POST("/api/v1/search", h.HandleSearch)
	return router
}

func TestHandleSearch(t *testing.T) {
	page := 2
	searcher := &stubSearcher{results: []types.SearchResult{
		{ID: "f1", Content: "top hit", Metadata: types.FragmentMetadata{Type: "text", Page: &page}, Similarity: 0.88},
		{ID: "f2", Content: "runner up", Metadata: types.FragmentMetadata{Type: "table"}, Similarity: 0.61},
	}}
	router := searchTestRouter(searcher)

	w := postJSON(router, "/api/v1/search", `{"query_text": "refunds", "doc_id": "doc-1", "match_count": 2}`)
	require.Equal(t, http.StatusOK, w.Code)

	// response body is a bare JSON array
	var results []types.SearchResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	require.Len(t, results, 2)
	assert.Equal(t, "top hit", results[0].Content)
	assert.InDelta(t, 0.88, results[0].Similarity, 1e-9)

	assert.Equal(t, "refunds", searcher.gotQuery)
	assert.Equal(t, "doc-1", searcher.gotDocID)
	assert.Equal(t, 2, searcher.gotCount)
}

func TestHandleSearchEmptyResults(t *testing.T) {
	router := searchTestRouter(&stubSearcher{results: []types.SearchResult{}})

	w := postJSON(router, "/api/v1/search", `{"query_text": "nothing here", "doc_id": "doc-1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestHandleSearchValidationError(t *testing.T) {
	router := searchTestRouter(&stubSearcher{err: &types.ValidationError{Msg: "query_text is required"}})

	w := postJSON(router, "/api/v1/search", `{"doc_id": "doc-1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleSearchUpstreamError(t *testing.T) {
	router := searchTestRouter(&stubSearcher{err: &types.UpstreamError{Service: "embeddings", StatusCode: 429, Detail: "rate limited"}})

	w := postJSON(router, "/api/v1/search", `{"query_text": "q", "doc_id": "doc-1"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestHandleSearchInvalidBody(t *testing.T) {
	router := searchTestRouter(&stubSearcher{})

	w := postJSON(router, "/api/v1/search", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
