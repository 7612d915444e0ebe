package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/docbase/docbase"
	"github.com/docbase/docbase/change"
	main "github.com/docbase/docbase/cmd/docbase"
	"github.com/docbase/docbase/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubScanner implements main.ChangeScanner with a function field.
type stubScanner struct {
	fn func(ctx context.Context, origins []string) (*change.ScanResult, error)
}

func (s *stubScanner) ScanURLs(ctx context.Context, origins []string) (*change.ScanResult, error) {
	return s.fn(ctx, origins)
}

func TestChangesCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists recent records newest first", func(t *testing.T) {
		t.Parallel()

		var gotLimit int
		changes := &mock.ChangeLog{
			RecentFn: func(_ context.Context, limit int) ([]*docbase.ChangeRecord, error) {
				gotLimit = limit
				return []*docbase.ChangeRecord{
					{
						ID:         2,
						Origin:     "https://docs.example.com/api",
						DetectedAt: time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
						Kind:       docbase.ChangeContent,
						Processed:  true,
					},
					{
						ID:         1,
						Origin:     "https://docs.example.com/",
						DetectedAt: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
						Kind:       docbase.ChangeNew,
					},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Changes: changes,
		}

		err := (&main.ChangesCmd{Profile: "docs", Limit: 20}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, 20, gotLimit)
		output := stdout.String()
		assert.Contains(t, output, "2026-03-02 09:30")
		assert.Contains(t, output, "content")
		assert.Contains(t, output, "https://docs.example.com/api")
		assert.Contains(t, output, "new")
	})

	t.Run("stats prints counts by kind", func(t *testing.T) {
		t.Parallel()

		changes := &mock.ChangeLog{
			StatsFn: func(context.Context) (map[docbase.ChangeKind]int, error) {
				return map[docbase.ChangeKind]int{
					docbase.ChangeNew:     5,
					docbase.ChangeContent: 2,
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Changes: changes,
		}

		err := (&main.ChangesCmd{Profile: "docs", Stats: true}).Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "content  2")
		assert.Contains(t, output, "new  5")
	})

	t.Run("scan checks stored origins and prints buckets", func(t *testing.T) {
		t.Parallel()

		meta := &mock.MetadataStore{
			OriginsFn: func(context.Context) ([]string, error) {
				return []string{
					"https://docs.example.com/",
					"https://docs.example.com/api",
					"https://docs.example.com/guide",
				}, nil
			},
		}
		var scanned []string
		scanner := &stubScanner{
			fn: func(_ context.Context, origins []string) (*change.ScanResult, error) {
				scanned = origins
				return &change.ScanResult{
					Updated:   []string{"https://docs.example.com/api"},
					Unchanged: []string{"https://docs.example.com/", "https://docs.example.com/guide"},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Meta:     meta,
			Detector: scanner,
		}

		err := (&main.ChangesCmd{Profile: "docs", Scan: true}).Run(deps)

		require.NoError(t, err)
		assert.Len(t, scanned, 3)
		output := stdout.String()
		assert.Contains(t, output, "Scanned 3 origins: 0 new, 1 updated, 2 unchanged, 0 errored")
		assert.Contains(t, output, "updated  https://docs.example.com/api")
	})

	t.Run("scan with no origins suggests ingesting first", func(t *testing.T) {
		t.Parallel()

		meta := &mock.MetadataStore{
			OriginsFn: func(context.Context) ([]string, error) { return nil, nil },
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Meta:   meta,
		}

		err := (&main.ChangesCmd{Profile: "docs", Scan: true}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No origins recorded")
	})

	t.Run("empty log prints helpful message", func(t *testing.T) {
		t.Parallel()

		changes := &mock.ChangeLog{
			RecentFn: func(context.Context, int) ([]*docbase.ChangeRecord, error) {
				return nil, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Changes: changes,
		}

		err := (&main.ChangesCmd{Profile: "docs", Limit: 20}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No changes recorded")
	})
}
