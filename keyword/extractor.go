// Package keyword derives keyphrases from free text. Candidate phrases
// are generated from the text itself, then ranked by cosine similarity
// between their embeddings and the embedding of the whole text.
package keyword

import (
	"context"
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fwojciec/arxharvest"
)

// Defaults bound the candidate phrases and the result size.
const (
	DefaultMaxPhraseWords = 3
	DefaultTopN           = 3
)

// Ensure Extractor implements arxharvest.KeywordExtractor at compile time.
var _ arxharvest.KeywordExtractor = (*Extractor)(nil)

// Extractor derives keyphrases by embedding the text and its candidate
// phrases in one batch and ranking candidates by similarity to the text.
type Extractor struct {
	embedder       arxharvest.Embedder
	maxPhraseWords int
	topN           int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMaxPhraseWords caps candidate phrases at n words.
// Defaults to DefaultMaxPhraseWords.
func WithMaxPhraseWords(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.maxPhraseWords = n
		}
	}
}

// WithTopN sets how many keyphrases ExtractKeywords returns.
// Defaults to DefaultTopN.
func WithTopN(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.topN = n
		}
	}
}

// NewExtractor creates an Extractor over the given embedder.
func NewExtractor(embedder arxharvest.Embedder, opts ...Option) *Extractor {
	e := &Extractor{
		embedder:       embedder,
		maxPhraseWords: DefaultMaxPhraseWords,
		topN:           DefaultTopN,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractKeywords returns up to TopN candidate phrases ordered by
// descending similarity to text. Ties keep candidate generation order.
// A text that yields no candidates returns an empty slice without
// calling the embedder.
func (e *Extractor) ExtractKeywords(ctx context.Context, text string) ([]arxharvest.Keyword, error) {
	candidates := Candidates(text, e.maxPhraseWords)
	if len(candidates) == 0 {
		return []arxharvest.Keyword{}, nil
	}

	vectors, err := e.embedder.EmbedTexts(ctx, append([]string{text}, candidates...))
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(candidates)+1 {
		return nil, arxharvest.Errorf(arxharvest.EINTERNAL, "embedder returned %d vectors for %d texts", len(vectors), len(candidates)+1)
	}

	textVector := vectors[0]
	keywords := make([]arxharvest.Keyword, 0, len(candidates))
	for i, candidate := range candidates {
		keywords = append(keywords, arxharvest.Keyword{
			Phrase: candidate,
			Score:  CosineSimilarity(textVector, vectors[i+1]),
		})
	}

	sort.SliceStable(keywords, func(i, j int) bool {
		return keywords[i].Score > keywords[j].Score
	})

	if len(keywords) > e.topN {
		keywords = keywords[:e.topN]
	}
	return keywords, nil
}

// Candidates generates the unique candidate phrases of one to maxWords
// words from text. Tokens are lowercased and stopwords are removed before
// n-grams are formed, so a phrase may bridge a removed stopword.
// Candidates are ordered by phrase length, then by first occurrence.
func Candidates(text string, maxWords int) []string {
	if maxWords <= 0 {
		maxWords = DefaultMaxPhraseWords
	}

	var content []string
	for _, token := range tokenize(text) {
		if !stopwords[token] {
			content = append(content, token)
		}
	}

	seen := make(map[string]bool)
	var candidates []string
	for n := 1; n <= maxWords; n++ {
		for i := 0; i+n <= len(content); i++ {
			phrase := strings.Join(content[i:i+n], " ")
			if seen[phrase] {
				continue
			}
			seen[phrase] = true
			candidates = append(candidates, phrase)
		}
	}
	return candidates
}

// tokenize splits text into lowercase alphanumeric tokens, dropping
// single-character tokens the way word-level vectorizers do.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		if utf8.RuneCountInString(field) >= 2 {
			tokens = append(tokens, field)
		}
	}
	return tokens
}

// CosineSimilarity returns the cosine of the angle between a and b.
// Mismatched lengths and zero vectors score 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
