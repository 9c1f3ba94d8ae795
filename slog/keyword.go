package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/arxharvest"
)

// Ensure LoggingKeywordExtractor implements arxharvest.KeywordExtractor.
var _ arxharvest.KeywordExtractor = (*LoggingKeywordExtractor)(nil)

// LoggingKeywordExtractor wraps a KeywordExtractor with debug logging.
type LoggingKeywordExtractor struct {
	next   arxharvest.KeywordExtractor
	logger *slog.Logger
}

// NewLoggingKeywordExtractor creates a new LoggingKeywordExtractor.
func NewLoggingKeywordExtractor(next arxharvest.KeywordExtractor, logger *slog.Logger) *LoggingKeywordExtractor {
	return &LoggingKeywordExtractor{next: next, logger: logger}
}

// ExtractKeywords delegates to the wrapped extractor and logs the operation.
func (e *LoggingKeywordExtractor) ExtractKeywords(ctx context.Context, text string) (keywords []arxharvest.Keyword, err error) {
	defer func(begin time.Time) {
		e.logger.Info("keyword extraction",
			"chars", len(text),
			"count", len(keywords),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractKeywords(ctx, text)
}
