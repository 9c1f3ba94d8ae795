package mock

import (
	"context"

	"github.com/fwojciec/arxharvest"
)

var _ arxharvest.KeywordExtractor = (*KeywordExtractor)(nil)

// KeywordExtractor is a mock implementation of arxharvest.KeywordExtractor.
type KeywordExtractor struct {
	ExtractKeywordsFn func(ctx context.Context, text string) ([]arxharvest.Keyword, error)
}

func (e *KeywordExtractor) ExtractKeywords(ctx context.Context, text string) ([]arxharvest.Keyword, error) {
	return e.ExtractKeywordsFn(ctx, text)
}

var _ arxharvest.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of arxharvest.Embedder.
type Embedder struct {
	EmbedTextsFn func(ctx context.Context, texts []string) ([][]float32, error)
}

func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	return e.EmbedTextsFn(ctx, texts)
}
