package docbase

import "context"

// SearchResult is one fused retrieval hit.
type SearchResult struct {
	ChunkID  string
	Text     string
	Metadata map[string]string
}

// Searcher answers free-text queries over the indexed corpus. Results are
// ordered by fused rank and bounded by the configured result count.
type Searcher interface {
	Search(ctx context.Context, query string) ([]SearchResult, error)
}

// Answerer produces a natural-language answer to a question given the
// retrieved passages.
type Answerer interface {
	Answer(ctx context.Context, question string, passages []SearchResult) (string, error)
}
