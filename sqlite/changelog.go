package sqlite

import (
	"context"

	"github.com/docbase/docbase"
)

// Ensure ChangeLog implements docbase.ChangeLog at compile time.
var _ docbase.ChangeLog = (*ChangeLog)(nil)

// ChangeLog persists detected changes append-only in SQLite.
type ChangeLog struct {
	db *DB
}

// NewChangeLog creates a new ChangeLog.
func NewChangeLog(db *DB) *ChangeLog {
	return &ChangeLog{db: db}
}

// Append adds a record to the log and sets record.ID.
func (l *ChangeLog) Append(ctx context.Context, record *docbase.ChangeRecord) error {
	if record.Origin == "" {
		return docbase.Errorf(docbase.EINVALID, "origin required")
	}
	res, err := l.db.ExecContext(ctx, `
		INSERT INTO change_log (origin, detected_at, kind, old_hash, new_hash, processed)
		VALUES (?, ?, ?, ?, ?, 0)`,
		record.Origin, formatTime(record.DetectedAt), string(record.Kind), record.OldHash, record.NewHash,
	)
	if err != nil {
		return err
	}
	record.ID, err = res.LastInsertId()
	return err
}

// Recent returns up to limit records, newest first.
func (l *ChangeLog) Recent(ctx context.Context, limit int) ([]*docbase.ChangeRecord, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT id, origin, detected_at, kind, old_hash, new_hash, processed
		FROM change_log ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*docbase.ChangeRecord
	for rows.Next() {
		var (
			r          docbase.ChangeRecord
			detectedAt string
			kind       string
		)
		if err := rows.Scan(&r.ID, &r.Origin, &detectedAt, &kind, &r.OldHash, &r.NewHash, &r.Processed); err != nil {
			return nil, err
		}
		r.DetectedAt = parseTime(detectedAt)
		r.Kind = docbase.ChangeKind(kind)
		records = append(records, &r)
	}
	return records, rows.Err()
}

// MarkProcessed flags a record as processed.
func (l *ChangeLog) MarkProcessed(ctx context.Context, id int64) error {
	res, err := l.db.ExecContext(ctx, `UPDATE change_log SET processed = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return docbase.Errorf(docbase.ENOTFOUND, "no change record with ID %d", id)
	}
	return nil
}

// Stats returns the count of records per change kind.
func (l *ChangeLog) Stats(ctx context.Context) (map[docbase.ChangeKind]int, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT kind, COUNT(*) FROM change_log GROUP BY kind`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make(map[docbase.ChangeKind]int)
	for rows.Next() {
		var (
			kind  string
			count int
		)
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, err
		}
		stats[docbase.ChangeKind(kind)] = count
	}
	return stats, rows.Err()
}
