package arxharvest

import "context"

// Keyword is a keyphrase paired with the model's relevance score for the
// text it was extracted from.
type Keyword struct {
	Phrase string
	Score  float64
}

// KeywordExtractor derives ranked keyphrases from free text.
type KeywordExtractor interface {
	// ExtractKeywords returns keyphrases ordered by descending relevance.
	// An empty text yields an empty slice, not an error.
	ExtractKeywords(ctx context.Context, text string) ([]Keyword, error)
}

// Embedder maps a batch of texts into vectors in a shared embedding
// space. Implementations are constructed once per process, before the
// first page is fetched; construction carries any expensive client or
// model initialization.
type Embedder interface {
	// EmbedTexts returns one vector per text, in input order.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}
