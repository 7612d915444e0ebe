package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/docbase/docbase"
	"github.com/docbase/docbase/mock"
	docslog "github.com/docbase/docbase/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with status, bytes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*docbase.FetchResult, error) {
				return &docbase.FetchResult{StatusCode: 200, Body: "<html>content</html>"}, nil
			},
		}

		fetcher := docslog.NewLoggingFetcher(inner, logger)
		res, err := fetcher.Fetch(context.Background(), "https://example.com/docs")

		require.NoError(t, err)
		assert.Equal(t, "<html>content</html>", res.Body)
		output := buf.String()
		assert.Contains(t, output, "fetch")
		assert.Contains(t, output, "url=https://example.com/docs")
		assert.Contains(t, output, "status=200")
		assert.Contains(t, output, "bytes=20")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*docbase.FetchResult, error) {
				return nil, errors.New("network error")
			},
		}

		fetcher := docslog.NewLoggingFetcher(inner, logger)
		_, err := fetcher.Fetch(context.Background(), "https://example.com/docs")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "fetch")
		assert.Contains(t, output, "err=\"network error\"")
	})
}

func TestLoggingFetcher_Head(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.Fetcher{
		HeadFn: func(ctx context.Context, url string) (*docbase.FetchResult, error) {
			return &docbase.FetchResult{StatusCode: 304}, nil
		},
	}

	fetcher := docslog.NewLoggingFetcher(inner, logger)
	res, err := fetcher.Head(context.Background(), "https://example.com/docs")

	require.NoError(t, err)
	assert.Equal(t, 304, res.StatusCode)
	output := buf.String()
	assert.Contains(t, output, "head")
	assert.Contains(t, output, "status=304")
}
