package gemini

import (
	"context"

	"github.com/fwojciec/arxharvest"
	"google.golang.org/genai"
)

// DefaultModel is the embedding model used when none is configured.
const DefaultModel = "gemini-embedding-001"

// Ensure Embedder implements arxharvest.Embedder at compile time.
var _ arxharvest.Embedder = (*Embedder)(nil)

// Embedder implements arxharvest.Embedder using the Gemini API.
type Embedder struct {
	client *genai.Client
	model  string
}

// Option configures an Embedder.
type Option func(*Embedder)

// WithModel overrides the embedding model.
// Defaults to DefaultModel.
func WithModel(model string) Option {
	return func(e *Embedder) {
		if model != "" {
			e.model = model
		}
	}
}

// NewEmbedder creates a new Embedder using the given client.
func NewEmbedder(client *genai.Client, opts ...Option) *Embedder {
	e := &Embedder{client: client, model: DefaultModel}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EmbedTexts embeds all texts in one batched request and returns one
// vector per text, in input order.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	contents := make([]*genai.Content, 0, len(texts))
	for _, text := range texts {
		contents = append(contents, genai.NewContentFromText(text, "user"))
	}

	result, err := e.client.Models.EmbedContent(ctx, e.model, contents, nil)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, arxharvest.Errorf(arxharvest.EINTERNAL, "gemini returned nil result")
	}
	if len(result.Embeddings) != len(texts) {
		return nil, arxharvest.Errorf(arxharvest.EINTERNAL, "gemini returned %d embeddings for %d texts", len(result.Embeddings), len(texts))
	}

	vectors := make([][]float32, 0, len(texts))
	for _, embedding := range result.Embeddings {
		if embedding == nil || len(embedding.Values) == 0 {
			return nil, arxharvest.Errorf(arxharvest.EINTERNAL, "gemini returned an empty embedding")
		}
		vectors = append(vectors, embedding.Values)
	}
	return vectors, nil
}
