package ingest

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/docbase/docbase"
	"github.com/docbase/docbase/change"
	"github.com/docbase/docbase/classify"
	"github.com/docbase/docbase/chunk"
)

const (
	indexBatchSize = 100

	// Progress weighting: processing dominates, indexing fills the rest.
	// 1.0 is reserved for the completed state.
	processWeight = 0.7
	indexWeight   = 0.25

	dimensionProbe = "dimension probe"
)

// Task is one background ingestion run. Counters live in atomics so status
// snapshots never block the worker goroutine; the mutex guards only the
// string lists and timestamps.
type Task struct {
	id      string
	profile string
	cfg     docbase.Config
	m       *Manager

	state     atomic.Value // docbase.TaskState
	progress  atomic.Uint64
	cancelled atomic.Bool
	cancel    context.CancelFunc
	ctx       context.Context
	done      chan struct{}

	totalFiles     atomic.Int64
	processedFiles atomic.Int64
	totalChunks    atomic.Int64
	indexedChunks  atomic.Int64

	mu          sync.Mutex
	currentItem string
	errors      []string
	warnings    []string
	startedAt   time.Time
	endedAt     time.Time
}

func newTask(m *Manager, id, profile string, cfg docbase.Config) *Task {
	ctx, cancel := context.WithCancel(context.Background())
	t := &Task{
		id:      id,
		profile: profile,
		cfg:     cfg,
		m:       m,
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	t.state.Store(docbase.TaskIdle)
	return t
}

// State returns the task's current state.
func (t *Task) State() docbase.TaskState {
	return t.state.Load().(docbase.TaskState)
}

// Snapshot returns a point-in-time view of the task without blocking the
// worker.
func (t *Task) Snapshot() *docbase.TaskSnapshot {
	t.mu.Lock()
	snap := &docbase.TaskSnapshot{
		ID:          t.id,
		Profile:     t.profile,
		CurrentItem: t.currentItem,
		Errors:      append([]string(nil), t.errors...),
		Warnings:    append([]string(nil), t.warnings...),
		StartedAt:   t.startedAt,
		EndedAt:     t.endedAt,
	}
	t.mu.Unlock()

	snap.State = t.State()
	snap.Progress = math.Float64frombits(t.progress.Load())
	snap.TotalFiles = int(t.totalFiles.Load())
	snap.ProcessedFiles = int(t.processedFiles.Load())
	snap.TotalChunks = int(t.totalChunks.Load())
	snap.IndexedChunks = int(t.indexedChunks.Load())
	return snap
}

func (t *Task) requestCancel() {
	t.cancelled.Store(true)
	t.cancel()
}

func (t *Task) setState(s docbase.TaskState) { t.state.Store(s) }

func (t *Task) setProgress(p float64) { t.progress.Store(math.Float64bits(p)) }

func (t *Task) setCurrentItem(item string) {
	t.mu.Lock()
	t.currentItem = item
	t.mu.Unlock()
}

func (t *Task) addError(msg string) {
	t.mu.Lock()
	t.errors = append(t.errors, msg)
	t.mu.Unlock()
}

func (t *Task) addWarning(msg string) {
	t.mu.Lock()
	t.warnings = append(t.warnings, msg)
	t.mu.Unlock()
}

func (t *Task) run() {
	defer close(t.done)
	defer t.cancel()

	t.mu.Lock()
	t.startedAt = t.m.now()
	t.mu.Unlock()

	err := t.execute(t.ctx)

	switch {
	case t.cancelled.Load():
		t.setState(docbase.TaskCancelled)
	case err != nil:
		t.addError(err.Error())
		t.setState(docbase.TaskFailed)
	default:
		t.setProgress(1.0)
		t.setState(docbase.TaskCompleted)
	}

	t.mu.Lock()
	t.endedAt = t.m.now()
	t.mu.Unlock()
}

// execute drives the forward state machine. Errors returned here are fatal
// and move the task to failed; per-item failures are recorded on the task's
// error list inside process and never surface as a return value.
func (t *Task) execute(ctx context.Context) error {
	t.setState(docbase.TaskPreparing)
	if err := t.prepareIndex(ctx); err != nil {
		return err
	}

	t.setState(docbase.TaskScanning)
	items, err := t.scan(ctx)
	if err != nil {
		return err
	}
	t.totalFiles.Store(int64(len(items)))
	if t.cancelled.Load() {
		return nil
	}

	t.setState(docbase.TaskProcessing)
	chunks := t.process(ctx, items)
	if t.cancelled.Load() {
		return nil
	}

	t.setState(docbase.TaskIndexing)
	return t.index(ctx, chunks)
}

// prepareIndex verifies that the embedding model still produces vectors of
// the dimension stored in the index. A mismatch resets the index with a
// warning rather than failing the task.
func (t *Task) prepareIndex(ctx context.Context) error {
	dim, err := t.m.Index.Dimension(ctx)
	if err != nil {
		return err
	}
	if dim == 0 {
		return nil
	}
	probe, err := t.m.Embedder.EmbedOne(ctx, dimensionProbe)
	if err != nil {
		return err
	}
	if len(probe) == dim {
		return nil
	}
	t.addWarning(fmt.Sprintf("embedding dimension mismatch: index has %dD, model produces %dD; resetting index", dim, len(probe)))
	return t.m.Index.Reset(ctx)
}

// workItem is one unit of source content waiting to be processed. Web items
// carry the crawled HTML; local items are parsed lazily during processing.
type workItem struct {
	origin string
	web    bool
	html   string
}

func (t *Task) scan(ctx context.Context) ([]workItem, error) {
	src := t.cfg.Source
	var items []workItem

	if src.Type == docbase.SourceWeb || src.Type == docbase.SourceMixed {
		pages, err := t.m.Crawler.Crawl(ctx, src.Domain, src.AllowedPaths, src.Depth)
		if err != nil {
			return nil, err
		}
		urls := make([]string, 0, len(pages))
		for url := range pages {
			urls = append(urls, url)
		}
		sort.Strings(urls)
		for _, url := range urls {
			items = append(items, workItem{origin: url, web: true, html: pages[url]})
		}
	}

	if src.Type == docbase.SourceLocal || src.Type == docbase.SourceMixed {
		for _, root := range src.LocalPaths {
			files, err := t.m.Scanner.Scan(root, src.FileTypes)
			if err != nil {
				t.addWarning(fmt.Sprintf("scan %s: %s", root, err))
				continue
			}
			for _, f := range files {
				items = append(items, workItem{origin: f})
			}
		}
	}
	return items, nil
}

// process runs every work item through the per-item guard: a failing item
// lands on the error list and the loop continues with the next one.
func (t *Task) process(ctx context.Context, items []workItem) []docbase.Chunk {
	var all []docbase.Chunk
	total := int64(len(items))
	for _, item := range items {
		if t.cancelled.Load() {
			return all
		}
		t.setCurrentItem(item.origin)

		chunks, err := t.processItem(ctx, item)
		if err != nil {
			t.addError(fmt.Sprintf("%s: %s", item.origin, err))
		}
		all = append(all, chunks...)

		n := t.processedFiles.Add(1)
		if total > 0 {
			t.setProgress(processWeight * float64(n) / float64(total))
		}
	}
	t.totalChunks.Store(int64(len(all)))
	return all
}

func (t *Task) processItem(ctx context.Context, item workItem) ([]docbase.Chunk, error) {
	var content string
	if item.web {
		md, err := t.m.Converter.Convert(item.html)
		if err != nil {
			return nil, err
		}
		content = md
	} else {
		res := t.m.Parser.Parse(item.origin)
		if res.Err != "" {
			t.addWarning(fmt.Sprintf("%s: %s", item.origin, res.Err))
			return nil, nil
		}
		content = res.Content
	}
	if len(content) < t.cfg.Ingest.MinContentLen {
		return nil, nil
	}

	hash := change.StableHash(content)
	stored, err := t.m.Meta.Meta(ctx, item.origin)
	isNew := docbase.ErrorCode(err) == docbase.ENOTFOUND
	if err != nil && !isNew {
		return nil, err
	}
	if stored != nil && stored.Hash == hash {
		// Unchanged since the last run; existing chunks stay in place.
		return nil, nil
	}

	cls := classify.Classify(item.origin, content)
	docMeta := classify.Extract(content, cls.Extractors)

	sourceType := "file"
	if item.web {
		sourceType = "web"
	}

	var kept []docbase.Chunk
	for _, c := range chunk.Split(item.origin, content, cls.Strategy, cls.ChunkSize, t.cfg.Ingest.ChunkOverlap) {
		if len(c.Text) < t.cfg.Ingest.MinTextLen {
			continue
		}
		meta := make(map[string]string, len(docMeta)+len(c.Metadata)+4)
		for k, v := range docMeta {
			meta[k] = v
		}
		for k, v := range c.Metadata {
			meta[k] = v
		}
		meta["source"] = item.origin
		meta["source_type"] = sourceType
		meta["category"] = string(cls.Category)
		meta["chunk_index"] = strconv.Itoa(c.Seq)
		c.Metadata = meta
		c.Text += "\n\n(Source: " + item.origin + ")"
		kept = append(kept, c)
	}

	// Superseded chunks from the previous ingestion of this origin.
	if stored != nil && len(stored.ChunkIDs) > 0 {
		if err := t.m.Index.Delete(ctx, stored.ChunkIDs); err != nil {
			return nil, err
		}
	}

	record := &docbase.ChangeRecord{
		Origin:     item.origin,
		DetectedAt: t.m.now(),
		Kind:       docbase.ChangeContent,
		NewHash:    hash,
	}
	if isNew {
		record.Kind = docbase.ChangeNew
	} else if stored != nil {
		record.OldHash = stored.Hash
	}
	if err := t.m.Changes.Append(ctx, record); err != nil {
		return nil, err
	}

	ids := make([]string, len(kept))
	for i, c := range kept {
		ids[i] = c.ID
	}
	now := t.m.now()
	meta := &docbase.DocumentMeta{
		Origin:       item.origin,
		Hash:         hash,
		LastChecked:  now,
		LastIngested: now,
		ChunkIDs:     ids,
	}
	if stored != nil {
		meta.ETag = stored.ETag
		meta.LastModified = stored.LastModified
		meta.ContentLength = stored.ContentLength
	}
	if err := t.m.Meta.PutMeta(ctx, meta); err != nil {
		return nil, err
	}
	return kept, nil
}

func (t *Task) index(ctx context.Context, chunks []docbase.Chunk) error {
	total := len(chunks)
	for start := 0; start < total; start += indexBatchSize {
		if t.cancelled.Load() {
			return nil
		}
		end := min(start+indexBatchSize, total)
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		ids := make([]string, len(batch))
		metas := make([]map[string]string, len(batch))
		for i, c := range batch {
			ids[i] = c.ID
			texts[i] = c.Text
			metas[i] = c.Metadata
		}

		embeddings, err := t.m.Embedder.Embed(ctx, texts)
		if err != nil {
			return err
		}
		if err := t.m.Index.Upsert(ctx, &docbase.IndexBatch{
			IDs:        ids,
			Texts:      texts,
			Metadatas:  metas,
			Embeddings: embeddings,
		}); err != nil {
			return err
		}

		n := t.indexedChunks.Add(int64(len(batch)))
		t.setProgress(processWeight + indexWeight*float64(n)/float64(total))
	}
	return nil
}
