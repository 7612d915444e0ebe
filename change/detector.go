// Package change detects whether source content actually changed since the
// last ingestion run. It cascades cheap HTTP header signals (ETag,
// Last-Modified, Content-Length) before falling back to a stable content
// hash that ignores volatile substrings, so cosmetic or timestamp churn does
// not register as a change.
package change

import (
	"context"
	"time"

	"github.com/docbase/docbase"
)

// Signal weights. The confidence of a check is the maximum weight among
// the signals that fired. Content-Length is a re-fetch trigger only, never
// proof of change; the content hash is definitive.
const (
	WeightETag          = 0.9
	WeightLastModified  = 0.8
	WeightContentLength = 0.5
	WeightContentHash   = 1.0
)

// Signal names reported in ChangeResult.Signals.
const (
	SignalETag          = "etag"
	SignalLastModified  = "last_modified"
	SignalContentLength = "content_length"
	SignalContentHash   = "content_hash"
)

// Detector checks origins for content changes against stored metadata and
// appends detected changes to the change log.
type Detector struct {
	Fetcher docbase.Fetcher
	Meta    docbase.MetadataStore
	Log     docbase.ChangeLog

	// Cache, when set, is refreshed with the fetched body so a later crawl
	// serves the current content instead of a stale entry.
	Cache docbase.PageCache

	// Now is the clock; defaults to time.Now.
	Now func() time.Time
}

func (d *Detector) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now().UTC()
}

// Check determines whether the origin's content changed. For known origins
// it compares the cheap header signals first and fetches the body only when
// a signal fired; unseen origins are always fetched. The result's status is
// Changed only when the stable hash differs from the stored hash (or the
// origin is new); header-only differences with an identical hash are
// Unchanged. Fetch errors return ChangeUnknown alongside the error, so
// callers can tell an unknown outcome from a confirmed non-change.
func (d *Detector) Check(ctx context.Context, origin string) (*docbase.ChangeResult, error) {
	result := &docbase.ChangeResult{Origin: origin}

	stored, err := d.Meta.Meta(ctx, origin)
	if docbase.ErrorCode(err) == docbase.ENOTFOUND {
		result.IsNew = true
	} else if err != nil {
		result.Status = docbase.ChangeUnknown
		return result, err
	}

	head, err := d.Fetcher.Head(ctx, origin)
	if err != nil {
		result.Status = docbase.ChangeUnknown
		return result, err
	}

	if stored != nil {
		if head.ETag != "" && head.ETag != stored.ETag {
			d.fire(result, SignalETag, WeightETag)
		}
		if head.LastModified != "" && head.LastModified != stored.LastModified {
			d.fire(result, SignalLastModified, WeightLastModified)
		}
		if head.ContentLength > 0 && stored.ContentLength > 0 && head.ContentLength != stored.ContentLength {
			d.fire(result, SignalContentLength, WeightContentLength)
		}
	}

	if !result.IsNew && len(result.Signals) == 0 {
		result.Status = docbase.Unchanged
		return result, nil
	}

	body, err := d.Fetcher.Fetch(ctx, origin)
	if err != nil {
		result.Status = docbase.ChangeUnknown
		return result, err
	}

	hash := StableHash(body.Body)
	result.Content = body.Body
	if d.Cache != nil {
		_ = d.Cache.Put(origin, body.Body)
	}
	result.Meta = &docbase.DocumentMeta{
		Origin:        origin,
		Hash:          hash,
		ETag:          body.ETag,
		LastModified:  body.LastModified,
		ContentLength: body.ContentLength,
		LastChecked:   d.now(),
	}
	if stored != nil {
		result.Meta.LastIngested = stored.LastIngested
		result.Meta.ChunkIDs = stored.ChunkIDs
	}

	switch {
	case result.IsNew:
		d.fire(result, SignalContentHash, WeightContentHash)
		result.Status = docbase.Changed
		if err := d.append(ctx, origin, docbase.ChangeNew, "", hash); err != nil {
			return result, err
		}
	case hash != stored.Hash:
		d.fire(result, SignalContentHash, WeightContentHash)
		result.Status = docbase.Changed
		if err := d.append(ctx, origin, docbase.ChangeContent, stored.Hash, hash); err != nil {
			return result, err
		}
	default:
		// Headers moved but the normalized content did not.
		result.Status = docbase.Unchanged
		if err := d.append(ctx, origin, docbase.ChangeMetadata, stored.Hash, hash); err != nil {
			return result, err
		}
	}

	if err := d.Meta.PutMeta(ctx, result.Meta); err != nil {
		return result, err
	}
	return result, nil
}

func (d *Detector) fire(result *docbase.ChangeResult, name string, weight float64) {
	result.Signals = append(result.Signals, name)
	if weight > result.Confidence {
		result.Confidence = weight
	}
}

func (d *Detector) append(ctx context.Context, origin string, kind docbase.ChangeKind, oldHash, newHash string) error {
	return d.Log.Append(ctx, &docbase.ChangeRecord{
		Origin:     origin,
		DetectedAt: d.now(),
		Kind:       kind,
		OldHash:    oldHash,
		NewHash:    newHash,
	})
}

// ScanResult buckets origins by check outcome.
type ScanResult struct {
	New       []string
	Updated   []string
	Unchanged []string
	Errored   []string
}

// ScanURLs checks each origin and buckets it by outcome. Per-origin errors
// land in Errored and never abort the scan.
func (d *Detector) ScanURLs(ctx context.Context, origins []string) (*ScanResult, error) {
	out := &ScanResult{}
	for _, origin := range origins {
		if ctx.Err() != nil {
			return out, ctx.Err()
		}
		result, err := d.Check(ctx, origin)
		switch {
		case err != nil:
			out.Errored = append(out.Errored, origin)
		case result.IsNew:
			out.New = append(out.New, origin)
		case result.Status == docbase.Changed:
			out.Updated = append(out.Updated, origin)
		default:
			out.Unchanged = append(out.Unchanged, origin)
		}
	}
	return out, nil
}
