package docbase

import "context"

// IndexBatch is one upsert payload. Slices are parallel; metadata values
// must be primitive strings (composite values are flattened before calls).
type IndexBatch struct {
	IDs        []string
	Texts      []string
	Metadatas  []map[string]string
	Embeddings [][]float32
}

// Snapshot is a bounded read of indexed chunks used as the candidate pool
// for one query. Slices are parallel.
type Snapshot struct {
	IDs        []string
	Documents  []string
	Metadatas  []map[string]string
	Embeddings [][]float32
}

// IndexStore persists chunks with their embeddings. Upserting the same
// identifiers repeatedly is an idempotent overwrite; the store provides its
// own internal concurrency guarantees.
type IndexStore interface {
	// Upsert inserts or overwrites the chunks in the batch.
	Upsert(ctx context.Context, batch *IndexBatch) error

	// Get returns up to limit indexed chunks.
	Get(ctx context.Context, limit int) (*Snapshot, error)

	// Count returns the number of indexed chunks.
	Count(ctx context.Context) (int, error)

	// Delete removes chunks by identifier. Unknown identifiers are ignored.
	Delete(ctx context.Context, ids []string) error

	// Dimension returns the embedding dimension of the stored vectors, or 0
	// when the index is empty.
	Dimension(ctx context.Context) (int, error)

	// Reset drops all indexed chunks.
	Reset(ctx context.Context) error
}
