package database

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/auth"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/filters"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"

	"github.com/haiminh/pdf-insight-be/types"
)

const (
	documentClass = "Document"
	chunkClass    = "Chunk"
)

// Vectors are computed by the pipeline, so both classes run without a
// vectorizer module.
var (
	documentClassObject = &models.Class{
		Class:      documentClass,
		Vectorizer: "none",
		Properties: []*models.Property{
			{Name: "filename", DataType: []string{"text"}},
			{Name: "storagePath", DataType: []string{"text"}},
			{Name: "parsedJson", DataType: []string{"text"}},
		},
	}
	chunkClassObject = &models.Class{
		Class:      chunkClass,
		Vectorizer: "none",
		Properties: []*models.Property{
			{Name: "documentId", DataType: []string{"text"}},
			{Name: "content", DataType: []string{"text"}},
			{Name: "type", DataType: []string{"text"}},
			{Name: "page", DataType: []string{"int"}},
			{Name: "bbox", DataType: []string{"text"}},
		},
		VectorIndexType: "hnsw",
	}
)

// WeaviateStore is the Weaviate-backed Store implementation. Similarity
// search runs nearVector with a documentId filter; Weaviate reports
// cosine distance, converted here to similarity = 1 - distance.
type WeaviateStore struct {
	client *weaviate.Client
}

func NewWeaviateStore(host, apiKey string) (*WeaviateStore, error) {
	var scheme string
	if strings.Contains(host, "https") {
		scheme = "https"
	} else {
		scheme = "http"
	}
	host = strings.TrimPrefix(host, scheme+"://")
	cfg := weaviate.Config{
		Host:   host,
		Scheme: scheme,
	}
	if apiKey != "" {
		cfg.AuthConfig = auth.ApiKey{Value: apiKey}
	}

	client, err := weaviate.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create weaviate client: %v", err)
	}

	store := &WeaviateStore{client: client}
	if err := store.ensureClasses(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *WeaviateStore) ensureClasses(ctx context.Context) error {
	schema, err := s.client.Schema().Getter().Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to get schema: %v", err)
	}

	existing := make(map[string]bool)
	for _, class := range schema.Classes {
		existing[class.Class] = true
	}
	for _, classObj := range []*models.Class{documentClassObject, chunkClassObject} {
		if existing[classObj.Class] {
			continue
		}
		if err := s.client.Schema().ClassCreator().WithClass(classObj).Do(ctx); err != nil {
			return fmt.Errorf("failed to create %s class: %v", classObj.Class, err)
		}
	}
	return nil
}

func (s *WeaviateStore) CreateDocument(ctx context.Context, doc *types.Document) (string, error) {
	result, err := s.client.Data().Creator().
		WithClassName(documentClass).
		WithProperties(map[string]interface{}{
			"filename":    doc.Filename,
			"storagePath": doc.StoragePath,
			"parsedJson":  string(doc.ParsedJSON),
		}).
		Do(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to insert document: %v", err)
	}
	return string(result.Object.ID), nil
}

func (s *WeaviateStore) GetDocument(ctx context.Context, id string) (*types.Document, error) {
	objects, err := s.client.Data().ObjectsGetter().
		WithClassName(documentClass).
		WithID(id).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load document %s: %v", id, err)
	}
	if len(objects) == 0 {
		return nil, fmt.Errorf("document %s not found", id)
	}

	obj := objects[0]
	doc := &types.Document{
		ID:        string(obj.ID),
		CreatedAt: obj.CreationTimeUnix / 1000,
	}
	if props, ok := obj.Properties.(map[string]interface{}); ok {
		doc.Filename, _ = props["filename"].(string)
		doc.StoragePath, _ = props["storagePath"].(string)
		if parsed, ok := props["parsedJson"].(string); ok && parsed != "" {
			doc.ParsedJSON = json.RawMessage(parsed)
		}
	}
	return doc, nil
}

func (s *WeaviateStore) InsertFragments(ctx context.Context, fragments []types.Fragment) error {
	if len(fragments) == 0 {
		return nil
	}

	batcher := s.client.Batch().ObjectsBatcher()
	for _, fragment := range fragments {
		properties := map[string]interface{}{
			"documentId": fragment.DocumentID,
			"content":    fragment.Content,
			"type":       fragment.Metadata.Type,
		}
		if fragment.Metadata.Page != nil {
			properties["page"] = *fragment.Metadata.Page
		}
		if fragment.Metadata.BBox != nil {
			bbox, err := json.Marshal(fragment.Metadata.BBox)
			if err != nil {
				return fmt.Errorf("failed to marshal bbox: %v", err)
			}
			properties["bbox"] = string(bbox)
		}
		batcher = batcher.WithObjects(&models.Object{
			Class:      chunkClass,
			Properties: properties,
			Vector:     fragment.Embedding,
		})
	}

	if _, err := batcher.Do(ctx); err != nil {
		return fmt.Errorf("failed to insert fragment batch: %v", err)
	}
	return nil
}

func (s *WeaviateStore) SearchFragments(ctx context.Context, documentID string, embedding []float32, limit int) ([]types.SearchResult, error) {
	fields := []graphql.Field{
		{Name: "content"},
		{Name: "type"},
		{Name: "page"},
		{Name: "bbox"},
		{Name: "_additional", Fields: []graphql.Field{{Name: "id"}, {Name: "distance"}}},
	}

	result, err := s.client.GraphQL().Get().
		WithClassName(chunkClass).
		WithFields(fields...).
		WithWhere(filters.Where().
			WithPath([]string{"documentId"}).
			WithOperator(filters.Equal).
			WithValueString(documentID)).
		WithNearVector((&graphql.NearVectorArgumentBuilder{}).WithVector(embedding)).
		WithLimit(limit).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("search failed: %v", err)
	}
	if result.Errors != nil {
		return nil, fmt.Errorf("search failed: %v", result.Errors)
	}

	var results []types.SearchResult
	data, ok := result.Data["Get"].(map[string]interface{})[chunkClass].([]interface{})
	if !ok {
		return results, nil
	}
	for _, item := range data {
		chunk, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		searchResult := types.SearchResult{}
		searchResult.Content, _ = chunk["content"].(string)
		searchResult.Metadata.Type, _ = chunk["type"].(string)
		if page, ok := chunk["page"].(float64); ok {
			p := int(page)
			searchResult.Metadata.Page = &p
		}
		if bbox, ok := chunk["bbox"].(string); ok && bbox != "" {
			var box types.BoundingBox
			if err := json.Unmarshal([]byte(bbox), &box); err == nil {
				searchResult.Metadata.BBox = &box
			}
		}
		if additional, ok := chunk["_additional"].(map[string]interface{}); ok {
			searchResult.ID, _ = additional["id"].(string)
			if distance, ok := additional["distance"].(float64); ok {
				searchResult.Similarity = 1 - distance
			}
		}
		results = append(results, searchResult)
	}
	return results, nil
}

func (s *WeaviateStore) DeleteDocumentFragments(ctx context.Context, documentID string) error {
	_, err := s.client.Batch().ObjectsBatchDeleter().
		WithClassName(chunkClass).
		WithWhere(filters.Where().
			WithPath([]string{"documentId"}).
			WithOperator(filters.Equal).
			WithValueString(documentID)).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete fragments for document %s: %v", documentID, err)
	}
	return nil
}
