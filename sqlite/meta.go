package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/docbase/docbase"
)

// Ensure MetadataStore implements docbase.MetadataStore at compile time.
var _ docbase.MetadataStore = (*MetadataStore)(nil)

// MetadataStore persists per-origin document metadata in SQLite.
type MetadataStore struct {
	db *DB
}

// NewMetadataStore creates a new MetadataStore.
func NewMetadataStore(db *DB) *MetadataStore {
	return &MetadataStore{db: db}
}

// Meta returns the stored metadata for an origin.
func (s *MetadataStore) Meta(ctx context.Context, origin string) (*docbase.DocumentMeta, error) {
	var (
		meta        docbase.DocumentMeta
		checked     string
		ingested    string
		chunkIDsRaw string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT origin, hash, etag, last_modified, content_length, last_checked, last_ingested, chunk_ids
		FROM document_meta WHERE origin = ?`, origin,
	).Scan(&meta.Origin, &meta.Hash, &meta.ETag, &meta.LastModified, &meta.ContentLength, &checked, &ingested, &chunkIDsRaw)
	if err == sql.ErrNoRows {
		return nil, docbase.Errorf(docbase.ENOTFOUND, "no metadata for %q", origin)
	}
	if err != nil {
		return nil, err
	}

	meta.LastChecked = parseTime(checked)
	meta.LastIngested = parseTime(ingested)
	if err := json.Unmarshal([]byte(chunkIDsRaw), &meta.ChunkIDs); err != nil {
		return nil, docbase.Errorf(docbase.EINTERNAL, "corrupt chunk ID list for %q: %v", origin, err)
	}
	return &meta, nil
}

// PutMeta inserts or replaces the metadata for meta.Origin.
func (s *MetadataStore) PutMeta(ctx context.Context, meta *docbase.DocumentMeta) error {
	if meta.Origin == "" {
		return docbase.Errorf(docbase.EINVALID, "origin required")
	}
	chunkIDs, err := json.Marshal(meta.ChunkIDs)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO document_meta (origin, hash, etag, last_modified, content_length, last_checked, last_ingested, chunk_ids)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(origin) DO UPDATE SET
			hash = excluded.hash,
			etag = excluded.etag,
			last_modified = excluded.last_modified,
			content_length = excluded.content_length,
			last_checked = excluded.last_checked,
			last_ingested = excluded.last_ingested,
			chunk_ids = excluded.chunk_ids`,
		meta.Origin, meta.Hash, meta.ETag, meta.LastModified, meta.ContentLength,
		formatTime(meta.LastChecked), formatTime(meta.LastIngested), string(chunkIDs),
	)
	return err
}

// Origins returns all recorded origin identifiers.
func (s *MetadataStore) Origins(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT origin FROM document_meta ORDER BY origin`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var origins []string
	for rows.Next() {
		var origin string
		if err := rows.Scan(&origin); err != nil {
			return nil, err
		}
		origins = append(origins, origin)
	}
	return origins, rows.Err()
}

// DeleteMeta removes the metadata for an origin.
func (s *MetadataStore) DeleteMeta(ctx context.Context, origin string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM document_meta WHERE origin = ?`, origin)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return docbase.Errorf(docbase.ENOTFOUND, "no metadata for %q", origin)
	}
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
