package docbase

import (
	"context"
	"time"
)

// ChangeKind classifies a detected change.
type ChangeKind string

// Change kinds recorded in the change log.
const (
	ChangeNew      ChangeKind = "new"
	ChangeContent  ChangeKind = "content"
	ChangeDeleted  ChangeKind = "deleted"
	ChangeMetadata ChangeKind = "metadata"
)

// ChangeStatus is the tri-state outcome of a change check. Fetch errors
// yield ChangeUnknown, which is distinct from a confirmed non-change.
type ChangeStatus int

// Change check outcomes.
const (
	Unchanged ChangeStatus = iota
	Changed
	ChangeUnknown
)

// String returns the status name.
func (s ChangeStatus) String() string {
	switch s {
	case Unchanged:
		return "unchanged"
	case Changed:
		return "changed"
	case ChangeUnknown:
		return "unknown"
	}
	return "invalid"
}

// ChangeRecord is one append-only change log entry. Records are never
// mutated after creation, only marked processed.
type ChangeRecord struct {
	ID         int64
	Origin     string
	DetectedAt time.Time
	Kind       ChangeKind
	OldHash    string
	NewHash    string
	Processed  bool
}

// ChangeResult reports the outcome of checking one origin for changes.
type ChangeResult struct {
	Origin string

	// IsNew is true when no prior metadata exists for the origin.
	IsNew bool

	Status ChangeStatus

	// Confidence is the maximum weight among the signals that fired.
	Confidence float64

	// Signals names the header/content signals that fired, in cascade order.
	Signals []string

	// Meta holds the refreshed metadata (new hash and validators) when a
	// body fetch occurred. Nil when no signal fired for a known origin.
	Meta *DocumentMeta

	// Content is the fetched body when a body fetch occurred.
	Content string
}

// ChangeLog is the append-only store of ChangeRecord entries.
type ChangeLog interface {
	// Append adds a record to the log and sets record.ID.
	Append(ctx context.Context, record *ChangeRecord) error

	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]*ChangeRecord, error)

	// MarkProcessed flags a record as processed.
	// Returns ENOTFOUND if no record has the given ID.
	MarkProcessed(ctx context.Context, id int64) error

	// Stats returns the count of records per change kind.
	Stats(ctx context.Context) (map[ChangeKind]int, error)
}
