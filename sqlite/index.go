package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"errors"
	"math"
	"strings"

	"github.com/docbase/docbase"
)

// Ensure IndexStore implements docbase.IndexStore at compile time.
var _ docbase.IndexStore = (*IndexStore)(nil)

// IndexStore persists chunks with their embeddings in SQLite. Embeddings
// are stored as little-endian float32 blobs; chunk metadata as JSON.
type IndexStore struct {
	db *DB
}

// NewIndexStore creates a new IndexStore.
func NewIndexStore(db *DB) *IndexStore {
	return &IndexStore{db: db}
}

// Upsert inserts or overwrites the chunks in the batch atomically.
func (s *IndexStore) Upsert(ctx context.Context, batch *docbase.IndexBatch) error {
	if len(batch.IDs) != len(batch.Texts) ||
		len(batch.IDs) != len(batch.Metadatas) ||
		len(batch.IDs) != len(batch.Embeddings) {
		return docbase.Errorf(docbase.EINVALID, "batch slices must be parallel")
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, text, metadata, embedding, dim)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			text = excluded.text,
			metadata = excluded.metadata,
			embedding = excluded.embedding,
			dim = excluded.dim`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, id := range batch.IDs {
		meta, err := json.Marshal(batch.Metadatas[i])
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, id, batch.Texts[i], string(meta),
			encodeVector(batch.Embeddings[i]), len(batch.Embeddings[i])); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Get returns up to limit indexed chunks ordered by identifier.
func (s *IndexStore) Get(ctx context.Context, limit int) (*docbase.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, text, metadata, embedding FROM chunks ORDER BY id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snap := &docbase.Snapshot{}
	for rows.Next() {
		var (
			id, text, metaRaw string
			blob              []byte
		)
		if err := rows.Scan(&id, &text, &metaRaw, &blob); err != nil {
			return nil, err
		}
		var meta map[string]string
		if err := json.Unmarshal([]byte(metaRaw), &meta); err != nil {
			return nil, docbase.Errorf(docbase.EINTERNAL, "corrupt metadata for chunk %q: %v", id, err)
		}
		snap.IDs = append(snap.IDs, id)
		snap.Documents = append(snap.Documents, text)
		snap.Metadatas = append(snap.Metadatas, meta)
		snap.Embeddings = append(snap.Embeddings, decodeVector(blob))
	}
	return snap, rows.Err()
}

// Count returns the number of indexed chunks.
func (s *IndexStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chunks`).Scan(&count)
	return count, err
}

// Delete removes chunks by identifier. Unknown identifiers are ignored.
func (s *IndexStore) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM chunks WHERE id IN (`+placeholders+`)`, args...)
	return err
}

// Dimension returns the embedding dimension of the stored vectors, or 0
// when the index is empty.
func (s *IndexStore) Dimension(ctx context.Context) (int, error) {
	var dim int
	err := s.db.QueryRowContext(ctx, `SELECT dim FROM chunks LIMIT 1`).Scan(&dim)
	if errors.Is(err, sql.ErrNoRows) {
		// An empty index has no dimension yet.
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return dim, nil
}

// Reset drops all indexed chunks.
func (s *IndexStore) Reset(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM chunks`)
	return err
}

func encodeVector(v []float32) []byte {
	buf := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(f))
	}
	return buf
}

func decodeVector(b []byte) []float32 {
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:]))
	}
	return v
}
