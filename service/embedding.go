package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/sashabaranov/go-openai"

	"github.com/haiminh/pdf-insight-be/types"
)

// MaxEmbedInputChars bounds the size of a single embedding input. Longer
// texts are truncated for the embedding call only; stored fragment
// content is never truncated.
const MaxEmbedInputChars = 4000

// Embedder converts texts into fixed-dimension vectors, one per input, in
// input order.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// EmbeddingService calls an OpenAI-compatible embeddings API. The same
// model must be used for ingestion and querying; vectors from different
// models are not comparable and mixing them breaks ranking silently.
type EmbeddingService struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

func NewEmbeddingService(baseURL, apiKey, model string) *EmbeddingService {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &EmbeddingService{
		client: openai.NewClientWithConfig(config),
		model:  openai.EmbeddingModel(model),
	}
}

// EmbedTexts returns one vector per input, in input order. The embeddings
// API does not guarantee response order, so records are re-sorted by
// their declared index before zipping back to the inputs.
func (s *EmbeddingService) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	inputs := make([]string, len(texts))
	for i, text := range texts {
		inputs[i] = truncateText(text, MaxEmbedInputChars)
	}

	resp, err := s.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: s.model,
		Input: inputs,
	})
	if err != nil {
		return nil, upstreamError("embeddings", err)
	}
	if len(resp.Data) != len(inputs) {
		return nil, &types.UpstreamError{
			Service: "embeddings",
			Detail:  fmt.Sprintf("expected %d embeddings, got %d", len(inputs), len(resp.Data)),
		}
	}

	data := make([]openai.Embedding, len(resp.Data))
	copy(data, resp.Data)
	sort.Slice(data, func(i, j int) bool { return data[i].Index < data[j].Index })

	vectors := make([][]float32, len(data))
	for i, record := range data {
		vectors[i] = record.Embedding
	}
	return vectors, nil
}

// EmbedQuery embeds a single text as a one-item batch.
func (s *EmbeddingService) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := s.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func upstreamError(service string, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &types.UpstreamError{Service: service, StatusCode: apiErr.HTTPStatusCode, Detail: apiErr.Message}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &types.UpstreamError{Service: service, StatusCode: reqErr.HTTPStatusCode, Detail: reqErr.Error()}
	}
	return &types.UpstreamError{Service: service, Detail: err.Error()}
}

// truncateText cuts s to at most max bytes without splitting a rune.
func truncateText(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
