package service

import (
	"context"
	"fmt"
	"log"
	"path"
	"time"

	"github.com/haiminh/pdf-insight-be/database"
	"github.com/haiminh/pdf-insight-be/storage"
	"github.com/haiminh/pdf-insight-be/types"
)

const (
	// MaxFragmentsPerDocument caps embedding cost and latency per
	// ingestion; extraction beyond the cap is discarded, keeping the
	// earliest fragments by the text-then-table ordering.
	MaxFragmentsPerDocument = 50
	// EmbedBatchSize bounds a single embeddings request.
	EmbedBatchSize = 20

	DefaultBucket = "pdfs"
)

// IngestService runs the download → parse → persist → extract → embed →
// insert pipeline. It is at-most-once with partial success: a document
// row can exist with fewer fragments than were extracted, and callers
// must treat a reduced count as a soft success.
type IngestService struct {
	storage  storage.ObjectStorage
	parser   Parser
	embedder Embedder
	store    database.Store
	timeout  time.Duration
}

func NewIngestService(
	objectStorage storage.ObjectStorage,
	parser Parser,
	embedder Embedder,
	store database.Store,
	upstreamTimeout time.Duration,
) *IngestService {
	return &IngestService{
		storage:  objectStorage,
		parser:   parser,
		embedder: embedder,
		store:    store,
		timeout:  upstreamTimeout,
	}
}

// Ingest processes one stored PDF end to end. Failures before the
// document row is written abort with nothing persisted; after that,
// fragment batches that fail to embed or insert are logged and skipped
// while the rest of the pipeline continues.
func (s *IngestService) Ingest(ctx context.Context, bucket, objectPath, title string) (*types.IngestResult, error) {
	if objectPath == "" {
		return nil, &types.ValidationError{Msg: "path is required"}
	}
	if bucket == "" {
		bucket = DefaultBucket
	}

	log.Printf("Downloading %s/%s", bucket, objectPath)
	downloadCtx, cancel := s.callContext(ctx)
	pdf, err := s.storage.Download(downloadCtx, bucket, objectPath)
	cancel()
	if err != nil {
		return nil, &types.UpstreamError{
			Service: "storage",
			Detail:  fmt.Sprintf("failed to download %s/%s: %v", bucket, objectPath, err),
		}
	}

	log.Printf("Parsing %s (%d bytes)", objectPath, len(pdf))
	parseCtx, cancel := s.callContext(ctx)
	parsed, err := s.parser.Parse(parseCtx, pdf)
	cancel()
	if err != nil {
		return nil, err
	}

	filename := title
	if filename == "" {
		filename = path.Base(objectPath)
	}
	insertCtx, cancel := s.callContext(ctx)
	documentID, err := s.store.CreateDocument(insertCtx, &types.Document{
		Filename:    filename,
		StoragePath: bucket + "/" + objectPath,
		ParsedJSON:  parsed,
	})
	cancel()
	if err != nil {
		return nil, &types.PersistenceError{Op: "insert document", Err: err}
	}

	fragments := ExtractFragments(types.DecodeParsedDocument(parsed))
	extracted := len(fragments)
	if len(fragments) > MaxFragmentsPerDocument {
		fragments = fragments[:MaxFragmentsPerDocument]
	}
	log.Printf("Extracted %d fragments, processing %d", extracted, len(fragments))

	processed := s.processFragments(ctx, documentID, fragments)
	log.Printf("Done: document=%s fragments=%d", documentID, processed)

	return &types.IngestResult{
		DocumentID:         documentID,
		FragmentsExtracted: extracted,
		FragmentsProcessed: processed,
	}, nil
}

// Reingest rebuilds a document's fragments from the parsed payload stored
// on its row, without re-downloading or re-parsing the PDF. Existing
// fragments are removed first.
func (s *IngestService) Reingest(ctx context.Context, documentID string) (*types.IngestResult, error) {
	if documentID == "" {
		return nil, &types.ValidationError{Msg: "document id is required"}
	}

	loadCtx, cancel := s.callContext(ctx)
	doc, err := s.store.GetDocument(loadCtx, documentID)
	cancel()
	if err != nil {
		return nil, &types.PersistenceError{Op: "load document", Err: err}
	}
	if len(doc.ParsedJSON) == 0 {
		return nil, &types.ValidationError{Msg: "document has no stored parse payload"}
	}

	fragments := ExtractFragments(types.DecodeParsedDocument(doc.ParsedJSON))
	extracted := len(fragments)
	if len(fragments) > MaxFragmentsPerDocument {
		fragments = fragments[:MaxFragmentsPerDocument]
	}

	deleteCtx, cancel := s.callContext(ctx)
	err = s.store.DeleteDocumentFragments(deleteCtx, documentID)
	cancel()
	if err != nil {
		return nil, &types.PersistenceError{Op: "delete fragments", Err: err}
	}

	log.Printf("Reingesting %s: %d fragments extracted, processing %d", documentID, extracted, len(fragments))
	processed := s.processFragments(ctx, documentID, fragments)

	return &types.IngestResult{
		DocumentID:         documentID,
		FragmentsExtracted: extracted,
		FragmentsProcessed: processed,
	}, nil
}

// processFragments embeds and inserts fragments in fixed-size batches,
// strictly in order. A failed batch is logged and skipped; its fragments
// are not counted and not retried.
func (s *IngestService) processFragments(ctx context.Context, documentID string, fragments []types.Fragment) int {
	inserted := 0
	for start := 0; start < len(fragments); start += EmbedBatchSize {
		end := min(start+EmbedBatchSize, len(fragments))
		batch := fragments[start:end]
		batchNum := start/EmbedBatchSize + 1

		texts := make([]string, len(batch))
		for i, fragment := range batch {
			texts[i] = fragment.Content
		}

		embedCtx, cancel := s.callContext(ctx)
		vectors, err := s.embedder.EmbedTexts(embedCtx, texts)
		cancel()
		if err != nil {
			log.Printf("Embedding batch %d failed: %v", batchNum, err)
			continue
		}

		rows := make([]types.Fragment, len(batch))
		for i, fragment := range batch {
			fragment.DocumentID = documentID
			fragment.Embedding = vectors[i]
			rows[i] = fragment
		}

		insertCtx, cancel := s.callContext(ctx)
		err = s.store.InsertFragments(insertCtx, rows)
		cancel()
		if err != nil {
			log.Printf("Fragment insert for batch %d failed: %v", batchNum, err)
			continue
		}
		inserted += len(rows)
	}
	return inserted
}

func (s *IngestService) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(ctx, s.timeout)
	}
	return context.WithCancel(ctx)
}
