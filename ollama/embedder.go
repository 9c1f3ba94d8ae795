// Package ollama provides an arxharvest.Embedder backed by a local
// Ollama server, for deriving keywords without an API key.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/fwojciec/arxharvest"
)

// DefaultBaseURL is the Ollama server address used when none is
// configured.
const DefaultBaseURL = "http://localhost:11434"

// DefaultModel is a small sentence-embedding model suited to abstracts.
const DefaultModel = "all-minilm"

// Ensure Embedder implements arxharvest.Embedder at compile time.
var _ arxharvest.Embedder = (*Embedder)(nil)

// Embedder implements arxharvest.Embedder using the Ollama embed API.
type Embedder struct {
	client  *http.Client
	baseURL string
	model   string
}

// Option configures an Embedder.
type Option func(*Embedder)

// WithBaseURL overrides the Ollama server address.
// Defaults to DefaultBaseURL.
func WithBaseURL(url string) Option {
	return func(e *Embedder) {
		if url != "" {
			e.baseURL = url
		}
	}
}

// WithModel overrides the embedding model.
// Defaults to DefaultModel.
func WithModel(model string) Option {
	return func(e *Embedder) {
		if model != "" {
			e.model = model
		}
	}
}

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(client *http.Client) Option {
	return func(e *Embedder) {
		if client != nil {
			e.client = client
		}
	}
}

// NewEmbedder creates a new Embedder.
func NewEmbedder(opts ...Option) *Embedder {
	e := &Embedder{
		client:  http.DefaultClient,
		baseURL: DefaultBaseURL,
		model:   DefaultModel,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EmbedTexts embeds all texts with a single embed call and returns one
// vector per text, in input order.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	requestBody, err := json.Marshal(map[string]any{
		"model": e.model,
		"input": texts,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/api/embed", bytes.NewReader(requestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, arxharvest.Errorf(arxharvest.EUNAVAILABLE, "ollama request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, arxharvest.Errorf(arxharvest.EUNAVAILABLE, "ollama returned HTTP %d: %s", resp.StatusCode, body)
	}

	var response struct {
		Embeddings [][]float32 `json:"embeddings"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}
	if len(response.Embeddings) != len(texts) {
		return nil, arxharvest.Errorf(arxharvest.EINTERNAL, "ollama returned %d embeddings for %d texts", len(response.Embeddings), len(texts))
	}

	return response.Embeddings, nil
}
