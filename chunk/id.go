package chunk

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// ID derives the stable chunk identifier from (origin, seq, text). It is a
// pure function, so re-chunking unchanged content reproduces identical
// identifiers and index upserts stay idempotent.
func ID(origin string, seq int, text string) string {
	textHash := fmt.Sprintf("%016x", xxhash.Sum64String(text))
	return fmt.Sprintf("%016x_%d_%s", xxhash.Sum64String(origin), seq, textHash[:8])
}
