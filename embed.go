package docbase

import "context"

// Embedder computes embedding vectors for text. Vectors are assumed
// L2-normalizable so cosine similarity is meaningful.
type Embedder interface {
	// Embed returns one vector per input text, in input order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedOne returns the vector for a single text.
	EmbedOne(ctx context.Context, text string) ([]float32, error)
}
