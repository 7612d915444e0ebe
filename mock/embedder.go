package mock

import (
	"context"

	"github.com/docbase/docbase"
)

var _ docbase.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of docbase.Embedder.
type Embedder struct {
	EmbedFn    func(ctx context.Context, texts []string) ([][]float32, error)
	EmbedOneFn func(ctx context.Context, text string) ([]float32, error)
}

func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return e.EmbedFn(ctx, texts)
}

func (e *Embedder) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	return e.EmbedOneFn(ctx, text)
}
