package docbase

import (
	"context"
	"time"
)

// RawDocument is one fetched or parsed unit of source content. A re-fetch
// supersedes the previous RawDocument for the same origin; instances are
// never mutated.
type RawDocument struct {
	// Origin is the URL or file path the content came from.
	Origin string

	// Content is the raw text (HTML for web pages, parsed text for files).
	Content string

	// Hash is the stable content hash (volatile substrings stripped).
	Hash string

	// HTTP cache validators, when the origin is a URL.
	ETag          string
	LastModified  string
	ContentLength int64

	FetchedAt time.Time
}

// DocumentMeta is the persisted per-origin record used for change
// detection: the most recent stable hash, HTTP validators, and the chunk
// identifiers produced by the last ingestion of this origin.
type DocumentMeta struct {
	Origin        string
	Hash          string
	ETag          string
	LastModified  string
	ContentLength int64
	LastChecked   time.Time
	LastIngested  time.Time
	ChunkIDs      []string
}

// MetadataStore persists DocumentMeta keyed by origin identifier.
type MetadataStore interface {
	// Meta returns the stored metadata for an origin.
	// Returns ENOTFOUND if the origin has never been recorded.
	Meta(ctx context.Context, origin string) (*DocumentMeta, error)

	// PutMeta inserts or replaces the metadata for meta.Origin.
	PutMeta(ctx context.Context, meta *DocumentMeta) error

	// Origins returns all recorded origin identifiers.
	Origins(ctx context.Context) ([]string, error)

	// DeleteMeta removes the metadata for an origin.
	// Returns ENOTFOUND if the origin has never been recorded.
	DeleteMeta(ctx context.Context, origin string) error
}
