package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/docbase/docbase"
)

// Ensure LoggingSearcher implements docbase.Searcher.
var _ docbase.Searcher = (*LoggingSearcher)(nil)

// LoggingSearcher wraps a Searcher with query logging.
type LoggingSearcher struct {
	next   docbase.Searcher
	logger *slog.Logger
}

// NewLoggingSearcher creates a new LoggingSearcher.
func NewLoggingSearcher(next docbase.Searcher, logger *slog.Logger) *LoggingSearcher {
	return &LoggingSearcher{next: next, logger: logger}
}

// Search delegates to the wrapped searcher and logs the query.
func (s *LoggingSearcher) Search(ctx context.Context, query string) ([]docbase.SearchResult, error) {
	begin := time.Now()
	results, err := s.next.Search(ctx, query)
	if err != nil {
		s.logger.Error("search",
			"query", query,
			"err", err,
			"duration", time.Since(begin),
		)
		return nil, err
	}
	s.logger.Info("search",
		"query", query,
		"results", len(results),
		"duration", time.Since(begin),
	)
	return results, nil
}
