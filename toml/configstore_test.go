package toml_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/docbase/docbase"
	"github.com/docbase/docbase/toml"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_RoundTrip(t *testing.T) {
	t.Parallel()

	store := toml.NewConfigStore(t.TempDir())
	ctx := context.Background()

	cfg := docbase.DefaultConfig()
	cfg.Source = docbase.Source{
		Type:   docbase.SourceWeb,
		Domain: "https://docs.example.com",
		Depth:  3,
	}
	cfg.Retrieval.CombineTopK = 5

	require.NoError(t, store.Save(ctx, "docs", &cfg))

	got, err := store.Load(ctx, "docs")
	require.NoError(t, err)
	require.Equal(t, "https://docs.example.com", got.Source.Domain)
	require.Equal(t, 3, got.Source.Depth)
	require.Equal(t, 5, got.Retrieval.CombineTopK)
	require.Equal(t, 40, got.Retrieval.KLexical)
}

func TestConfigStore_LoadAppliesDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := toml.NewConfigStore(dir)

	// A sparse config written by hand should still pick up defaults.
	sparse := "[source]\ntype = \"web\"\ndomain = \"https://example.com\"\n"
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sparse"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sparse", "config.toml"), []byte(sparse), 0o644))

	got, err := store.Load(context.Background(), "sparse")
	require.NoError(t, err)
	require.Equal(t, "https://example.com", got.Source.Domain)
	require.Equal(t, 40, got.Retrieval.KLexical)
	require.Equal(t, 10, got.Retrieval.CombineTopK)
	require.Equal(t, 120, got.Ingest.ChunkOverlap)
	require.Equal(t, "gemini-embedding-001", got.Model.Embedding)
}

func TestConfigStore_LoadMissingProfile(t *testing.T) {
	t.Parallel()

	store := toml.NewConfigStore(t.TempDir())
	_, err := store.Load(context.Background(), "missing")
	require.Equal(t, docbase.ENOTFOUND, docbase.ErrorCode(err))
}

func TestConfigStore_List(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := toml.NewConfigStore(dir)
	ctx := context.Background()

	profiles, err := store.List(ctx)
	require.NoError(t, err)
	require.Empty(t, profiles)

	cfg := docbase.DefaultConfig()
	require.NoError(t, store.Save(ctx, "beta", &cfg))
	require.NoError(t, store.Save(ctx, "alpha", &cfg))

	// Directories without a config file are not profiles.
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "stray"), 0o755))

	profiles, err = store.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"alpha", "beta"}, profiles)
}

func TestConfigStore_Delete(t *testing.T) {
	t.Parallel()

	store := toml.NewConfigStore(t.TempDir())
	ctx := context.Background()

	cfg := docbase.DefaultConfig()
	require.NoError(t, store.Save(ctx, "docs", &cfg))
	require.NoError(t, store.Delete(ctx, "docs"))

	_, err := store.Load(ctx, "docs")
	require.Equal(t, docbase.ENOTFOUND, docbase.ErrorCode(err))

	err = store.Delete(ctx, "docs")
	require.Equal(t, docbase.ENOTFOUND, docbase.ErrorCode(err))
}

func TestConfigStore_InvalidName(t *testing.T) {
	t.Parallel()

	store := toml.NewConfigStore(t.TempDir())
	ctx := context.Background()

	for _, name := range []string{"", "..", "a/b", `a\b`} {
		_, err := store.Load(ctx, name)
		require.Equal(t, docbase.EINVALID, docbase.ErrorCode(err))
	}
}
