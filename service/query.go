package service

import (
	"context"
	"strings"
	"time"

	"github.com/haiminh/pdf-insight-be/database"
	"github.com/haiminh/pdf-insight-be/types"
)

const DefaultMatchCount = 5

// QueryService embeds free-text queries and runs document-scoped
// similarity search over stored fragment vectors.
type QueryService struct {
	embedder Embedder
	store    database.FragmentStore
	timeout  time.Duration
}

func NewQueryService(embedder Embedder, store database.FragmentStore, upstreamTimeout time.Duration) *QueryService {
	return &QueryService{
		embedder: embedder,
		store:    store,
		timeout:  upstreamTimeout,
	}
}

// Search returns up to matchCount fragments of the given document ranked
// by similarity to the query text, descending. An empty result list is a
// valid outcome, not an error.
func (s *QueryService) Search(ctx context.Context, queryText, documentID string, matchCount int) ([]types.SearchResult, error) {
	if strings.TrimSpace(queryText) == "" {
		return nil, &types.ValidationError{Msg: "query_text is required"}
	}
	if documentID == "" {
		return nil, &types.ValidationError{Msg: "doc_id is required"}
	}
	if matchCount <= 0 {
		matchCount = DefaultMatchCount
	}

	embedCtx, cancel := s.callContext(ctx)
	vector, err := s.embedder.EmbedQuery(embedCtx, queryText)
	cancel()
	if err != nil {
		return nil, err
	}

	searchCtx, cancel := s.callContext(ctx)
	defer cancel()
	results, err := s.store.SearchFragments(searchCtx, documentID, vector, matchCount)
	if err != nil {
		return nil, &types.PersistenceError{Op: "search fragments", Err: err}
	}
	if results == nil {
		results = []types.SearchResult{}
	}
	return results, nil
}

func (s *QueryService) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(ctx, s.timeout)
	}
	return context.WithCancel(ctx)
}
