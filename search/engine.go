// Package search implements hybrid retrieval: a lexical ranking and a
// semantic ranking computed independently over a bounded corpus snapshot,
// fused by first-seen deduplication with the lexical list taking priority.
package search

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/docbase/docbase"
	"golang.org/x/sync/errgroup"
)

// Ensure type implements interface.
var _ docbase.Searcher = (*Engine)(nil)

// Engine ranks indexed chunks against free-text queries.
type Engine struct {
	index    docbase.IndexStore
	embedder docbase.Embedder

	kLexical      int
	kEmbed        int
	combineTopK   int
	snapshotLimit int
}

// NewEngine returns an Engine bounded by the retrieval configuration.
func NewEngine(index docbase.IndexStore, embedder docbase.Embedder, cfg docbase.RetrievalConfig) *Engine {
	return &Engine{
		index:         index,
		embedder:      embedder,
		kLexical:      cfg.KLexical,
		kEmbed:        cfg.KEmbed,
		combineTopK:   cfg.CombineTopK,
		snapshotLimit: cfg.SnapshotLimit,
	}
}

// Search pulls a corpus snapshot and fuses the lexical and semantic
// rankings, both computed concurrently. An empty index yields an empty
// result without calling the embedder.
func (e *Engine) Search(ctx context.Context, query string) ([]docbase.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, docbase.Errorf(docbase.EINVALID, "query required")
	}

	snap, err := e.index.Get(ctx, e.snapshotLimit)
	if err != nil {
		return nil, err
	}
	n := len(snap.Documents)
	if n == 0 {
		return nil, nil
	}

	var lexIdx, emIdx []int
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lexIdx = lexicalRank(query, snap.Documents, min(e.kLexical, n))
		return nil
	})
	g.Go(func() error {
		qv, err := e.embedder.EmbedOne(ctx, query)
		if err != nil {
			return err
		}
		emIdx = cosineRank(qv, snap.Embeddings, min(e.kEmbed, n))
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Fusion: lexical hits first, then semantic, first occurrence wins.
	seen := make(map[int]bool)
	var results []docbase.SearchResult
	for _, i := range append(lexIdx, emIdx...) {
		if seen[i] || len(results) == e.combineTopK {
			continue
		}
		seen[i] = true
		var meta map[string]string
		if i < len(snap.Metadatas) {
			meta = snap.Metadatas[i]
		}
		results = append(results, docbase.SearchResult{
			ChunkID:  snap.IDs[i],
			Text:     snap.Documents[i],
			Metadata: meta,
		})
	}
	return results, nil
}

// lexicalRank orders documents by how many distinct query terms they
// contain. Ties resolve to the lower snapshot index, so the ranking is
// deterministic.
func lexicalRank(query string, docs []string, topK int) []int {
	terms := make(map[string]bool)
	for _, t := range strings.Fields(strings.ToLower(query)) {
		terms[t] = true
	}

	scores := make([]int, len(docs))
	for i, doc := range docs {
		present := make(map[string]bool)
		for _, t := range strings.Fields(strings.ToLower(doc)) {
			if terms[t] {
				present[t] = true
			}
		}
		scores[i] = len(present)
	}
	return topIndices(len(docs), topK, func(i, j int) bool {
		if scores[i] != scores[j] {
			return scores[i] > scores[j]
		}
		return i < j
	})
}

// cosineRank orders documents by cosine similarity to the query vector.
// Documents without a stored embedding sink to the bottom.
func cosineRank(query []float32, embeddings [][]float32, topK int) []int {
	scores := make([]float64, len(embeddings))
	for i, emb := range embeddings {
		scores[i] = cosine(query, emb)
	}
	return topIndices(len(embeddings), topK, func(i, j int) bool {
		if scores[i] != scores[j] {
			return scores[i] > scores[j]
		}
		return i < j
	})
}

func topIndices(n, topK int, less func(i, j int) bool) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return less(idx[a], idx[b]) })
	if topK < len(idx) {
		idx = idx[:topK]
	}
	return idx
}

func cosine(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return -1
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return -1
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
