package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haiminh/pdf-insight-be/types"
)

type embeddingRecord struct {
	Object    string    `json:"object"`
	Index     int       `json:"index"`
	Embedding []float32 `json:"embedding"`
}

type embeddingAPIResponse struct {
	Object string            `json:"object"`
	Data   []embeddingRecord `json:"data"`
	Model  string            `json:"model"`
}

func embeddingTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *EmbeddingService) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server, NewEmbeddingService(server.URL+"/v1", "test-key", "text-embedding-ada-002")
}

func TestEmbedTextsRestoresInputOrder(t *testing.T) {
	// The API may return records in any order; the declared index is what
	// ties a vector back to its input.
	_, svc := embeddingTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		resp := embeddingAPIResponse{
			Object: "list",
			Model:  "text-embedding-ada-002",
			Data: []embeddingRecord{
				{Object: "embedding", Index: 2, Embedding: []float32{0.3}},
				{Object: "embedding", Index: 0, Embedding: []float32{0.1}},
				{Object: "embedding", Index: 1, Embedding: []float32{0.2}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	})

	vectors, err := svc.EmbedTexts(context.Background(), []string{"first", "second", "third"})
	require.NoError(t, err)
	require.Len(t, vectors, 3)
	assert.Equal(t, []float32{0.1}, vectors[0])
	assert.Equal(t, []float32{0.2}, vectors[1])
	assert.Equal(t, []float32{0.3}, vectors[2])
}

func TestEmbedTextsTruncatesLongInputs(t *testing.T) {
	var gotInputs []string
	_, svc := embeddingTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Input []string `json:"input"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotInputs = req.Input

		resp := embeddingAPIResponse{Object: "list"}
		for i := range req.Input {
			resp.Data = append(resp.Data, embeddingRecord{Index: i, Embedding: []float32{float32(i)}})
		}
		json.NewEncoder(w).Encode(resp)
	})

	long := strings.Repeat("a", MaxEmbedInputChars+500)
	_, err := svc.EmbedTexts(context.Background(), []string{long, "short"})
	require.NoError(t, err)
	require.Len(t, gotInputs, 2)
	assert.Len(t, gotInputs[0], MaxEmbedInputChars)
	assert.Equal(t, "short", gotInputs[1])
}

func TestEmbedTextsUpstreamFailure(t *testing.T) {
	_, svc := embeddingTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "rate limited", "type": "rate_limit"}}`))
	})

	_, err := svc.EmbedTexts(context.Background(), []string{"text"})
	require.Error(t, err)
	var upstream *types.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, "embeddings", upstream.Service)
	assert.Equal(t, http.StatusTooManyRequests, upstream.StatusCode)
}

func TestEmbedTextsCountMismatch(t *testing.T) {
	_, svc := embeddingTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		resp := embeddingAPIResponse{
			Object: "list",
			Data:   []embeddingRecord{{Index: 0, Embedding: []float32{0.5}}},
		}
		json.NewEncoder(w).Encode(resp)
	})

	_, err := svc.EmbedTexts(context.Background(), []string{"one", "two"})
	require.Error(t, err)
	var upstream *types.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Contains(t, upstream.Detail, "expected 2 embeddings")
}

func TestEmbedTextsEmptyInput(t *testing.T) {
	_, svc := embeddingTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no API call expected for empty input")
	})

	vectors, err := svc.EmbedTexts(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, vectors)
}

func TestEmbedQuery(t *testing.T) {
	_, svc := embeddingTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		resp := embeddingAPIResponse{
			Object: "list",
			Data:   []embeddingRecord{{Index: 0, Embedding: []float32{0.7, 0.1}}},
		}
		json.NewEncoder(w).Encode(resp)
	})

	vector, err := svc.EmbedQuery(context.Background(), "what is this about")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.7, 0.1}, vector)
}

func TestTruncateTextRuneSafe(t *testing.T) {
	// Multi-byte rune straddling the cut must not be split.
	s := strings.Repeat("a", 3999) + "é"
	got := truncateText(s, 4000)
	assert.Equal(t, strings.Repeat("a", 3999), got)
	assert.True(t, len(got) <= 4000)
}
