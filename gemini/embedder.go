// Package gemini implements embedding and answer generation using the
// Google Gemini API.
package gemini

import (
	"context"

	"github.com/docbase/docbase"
	"google.golang.org/genai"
)

// Ensure Embedder implements docbase.Embedder at compile time.
var _ docbase.Embedder = (*Embedder)(nil)

// Embedder implements docbase.Embedder using Gemini embedding models.
type Embedder struct {
	client *genai.Client
	model  string
}

// NewEmbedder creates a new Embedder for the given embedding model.
func NewEmbedder(client *genai.Client, model string) *Embedder {
	return &Embedder{client: client, model: model}
}

// Embed returns one vector per input text, in input order.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = &genai.Content{Parts: []*genai.Part{{Text: text}}}
	}

	result, err := e.client.Models.EmbedContent(ctx, e.model, contents, nil)
	if err != nil {
		return nil, docbase.Errorf(docbase.EUNAVAILABLE, "embedding failed: %v", err)
	}
	if result == nil || len(result.Embeddings) != len(texts) {
		return nil, docbase.Errorf(docbase.EINTERNAL, "embedding count mismatch: want %d", len(texts))
	}

	vectors := make([][]float32, len(texts))
	for i, emb := range result.Embeddings {
		if emb == nil || len(emb.Values) == 0 {
			return nil, docbase.Errorf(docbase.EINTERNAL, "empty embedding at index %d", i)
		}
		vectors[i] = emb.Values
	}
	return vectors, nil
}

// EmbedOne returns the vector for a single text.
func (e *Embedder) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}
