package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/haiminh/pdf-insight-be/types"
)

// Parser turns raw PDF bytes into a structured document payload.
type Parser interface {
	Parse(ctx context.Context, pdf []byte) (json.RawMessage, error)
}

// DoclingClient calls the external Docling parser API. The payload comes
// back verbatim so it can be stored on the document row and replayed
// later without re-parsing.
type DoclingClient struct {
	baseURL string
	client  *http.Client
}

func NewDoclingClient(baseURL string, timeout time.Duration) *DoclingClient {
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &DoclingClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *DoclingClient) Parse(ctx context.Context, pdf []byte) (json.RawMessage, error) {
	body, err := json.Marshal(map[string]string{
		"pdf_base64": base64.StdEncoding.EncodeToString(pdf),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode parse request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/parse", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build parse request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &types.UpstreamError{Service: "docling", Detail: err.Error()}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &types.UpstreamError{Service: "docling", Detail: err.Error()}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &types.UpstreamError{
			Service:    "docling",
			StatusCode: resp.StatusCode,
			Detail:     string(payload),
		}
	}
	return json.RawMessage(payload), nil
}
