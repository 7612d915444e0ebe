// Package slog provides logging decorators for the core service interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/docbase/docbase"
)

// Ensure LoggingFetcher implements docbase.Fetcher.
var _ docbase.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with request logging.
type LoggingFetcher struct {
	next   docbase.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next docbase.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the exchange.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (*docbase.FetchResult, error) {
	begin := time.Now()
	res, err := f.next.Fetch(ctx, url)
	if err != nil {
		f.logger.Error("fetch",
			"url", url,
			"err", err,
			"duration", time.Since(begin),
		)
		return nil, err
	}
	f.logger.Info("fetch",
		"url", url,
		"status", res.StatusCode,
		"bytes", len(res.Body),
		"duration", time.Since(begin),
	)
	return res, nil
}

// Head delegates to the wrapped fetcher and logs the exchange.
func (f *LoggingFetcher) Head(ctx context.Context, url string) (*docbase.FetchResult, error) {
	begin := time.Now()
	res, err := f.next.Head(ctx, url)
	if err != nil {
		f.logger.Error("head",
			"url", url,
			"err", err,
			"duration", time.Since(begin),
		)
		return nil, err
	}
	f.logger.Info("head",
		"url", url,
		"status", res.StatusCode,
		"duration", time.Since(begin),
	)
	return res, nil
}
