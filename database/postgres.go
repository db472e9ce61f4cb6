package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/haiminh/pdf-insight-be/types"
)

// PostgresStore keeps documents and fragments in PostgreSQL with the
// pgvector extension. Similarity search uses cosine distance, reported as
// similarity = 1 - distance.
type PostgresStore struct {
	pool      *pgxpool.Pool
	dimension int
}

func NewPostgresStore(ctx context.Context, dsn string, dimension int) (*PostgresStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn cannot be empty")
	}
	if dimension <= 0 {
		return nil, fmt.Errorf("embedding dimension must be positive, got %d", dimension)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	store := &PostgresStore{pool: pool, dimension: dimension}
	if err := store.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return store, nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		`CREATE TABLE IF NOT EXISTS documents (
			id uuid PRIMARY KEY,
			filename text NOT NULL,
			storage_path text NOT NULL,
			parsed_json jsonb,
			created_at timestamptz NOT NULL DEFAULT now()
		)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS chunks (
			id uuid PRIMARY KEY,
			document_id uuid NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
			content text NOT NULL,
			metadata jsonb NOT NULL,
			embedding vector(%d)
		)`, s.dimension),
		`CREATE INDEX IF NOT EXISTS chunks_document_id_idx ON chunks (document_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}

func (s *PostgresStore) CreateDocument(ctx context.Context, doc *types.Document) (string, error) {
	id := uuid.New().String()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO documents (id, filename, storage_path, parsed_json) VALUES ($1, $2, $3, $4)`,
		id, doc.Filename, doc.StoragePath, doc.ParsedJSON)
	if err != nil {
		return "", fmt.Errorf("failed to insert document: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) GetDocument(ctx context.Context, id string) (*types.Document, error) {
	var doc types.Document
	var createdAt time.Time
	err := s.pool.QueryRow(ctx,
		`SELECT id, filename, storage_path, parsed_json, created_at FROM documents WHERE id = $1`,
		id).Scan(&doc.ID, &doc.Filename, &doc.StoragePath, &doc.ParsedJSON, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to load document %s: %w", id, err)
	}
	doc.CreatedAt = createdAt.Unix()
	return &doc, nil
}

func (s *PostgresStore) InsertFragments(ctx context.Context, fragments []types.Fragment) error {
	if len(fragments) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, fragment := range fragments {
		id := fragment.ID
		if id == "" {
			id = uuid.New().String()
		}
		metadata, err := json.Marshal(fragment.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal fragment metadata: %w", err)
		}
		batch.Queue(
			`INSERT INTO chunks (id, document_id, content, metadata, embedding) VALUES ($1, $2, $3, $4, $5)`,
			id, fragment.DocumentID, fragment.Content, metadata, pgvector.NewVector(fragment.Embedding))
	}

	results := tx.SendBatch(ctx, batch)
	for range fragments {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("failed to insert fragment batch: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to close fragment batch: %w", err)
	}

	return tx.Commit(ctx)
}

func (s *PostgresStore) SearchFragments(ctx context.Context, documentID string, embedding []float32, limit int) ([]types.SearchResult, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, content, metadata, 1 - (embedding <=> $1) AS similarity
		 FROM chunks
		 WHERE document_id = $2
		 ORDER BY embedding <=> $1
		 LIMIT $3`,
		pgvector.NewVector(embedding), documentID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to execute vector search: %w", err)
	}
	defer rows.Close()

	var results []types.SearchResult
	for rows.Next() {
		var result types.SearchResult
		var metadata []byte
		if err := rows.Scan(&result.ID, &result.Content, &metadata, &result.Similarity); err != nil {
			return nil, fmt.Errorf("failed to scan search row: %w", err)
		}
		if err := json.Unmarshal(metadata, &result.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode fragment metadata: %w", err)
		}
		results = append(results, result)
	}
	return results, rows.Err()
}

func (s *PostgresStore) DeleteDocumentFragments(ctx context.Context, documentID string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM chunks WHERE document_id = $1`, documentID)
	if err != nil {
		return fmt.Errorf("failed to delete fragments for document %s: %w", documentID, err)
	}
	return nil
}
