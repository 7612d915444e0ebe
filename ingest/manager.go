// Package ingest runs background ingestion tasks: crawl or scan a profile's
// sources, classify and chunk each document, embed chunk batches, and upsert
// them into the index. One goroutine drives each task through a strict
// forward state machine with cooperative cancellation.
package ingest

import (
	"context"
	"sync"
	"time"

	"github.com/docbase/docbase"
	"github.com/google/uuid"
)

// Ensure type implements interface.
var _ docbase.TaskService = (*Manager)(nil)

// Manager owns the ingestion tasks of all profiles. At most one task per
// profile may be active; completed tasks stay queryable until the process
// exits.
type Manager struct {
	Configs   docbase.ConfigStore
	Crawler   docbase.Crawler
	Scanner   docbase.Scanner
	Parser    docbase.FileParser
	Converter docbase.Converter
	Meta      docbase.MetadataStore
	Changes   docbase.ChangeLog
	Embedder  docbase.Embedder
	Index     docbase.IndexStore

	// Now is the clock; defaults to time.Now.
	Now func() time.Time

	// NewID generates task identifiers; defaults to uuid.NewString.
	NewID func() string

	mu        sync.Mutex
	tasks     map[string]*Task
	byProfile map[string]*Task
}

func (m *Manager) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now().UTC()
}

func (m *Manager) newID() string {
	if m.NewID != nil {
		return m.NewID()
	}
	return uuid.NewString()
}

// Start begins ingestion for the profile and returns the task ID. If the
// profile already has a non-terminal task its ID is returned instead and no
// new task is started.
func (m *Manager) Start(ctx context.Context, profile string) (string, error) {
	cfg, err := m.Configs.Load(ctx, profile)
	if err != nil {
		return "", err
	}
	if err := cfg.Source.Validate(); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if active, ok := m.byProfile[profile]; ok && !active.State().Terminal() {
		return active.id, nil
	}

	if m.tasks == nil {
		m.tasks = make(map[string]*Task)
		m.byProfile = make(map[string]*Task)
	}

	t := newTask(m, m.newID(), profile, *cfg)
	m.tasks[t.id] = t
	m.byProfile[profile] = t

	go t.run()
	return t.id, nil
}

// Status returns a snapshot of the task.
func (m *Manager) Status(taskID string) (*docbase.TaskSnapshot, error) {
	m.mu.Lock()
	t, ok := m.tasks[taskID]
	m.mu.Unlock()
	if !ok {
		return nil, docbase.Errorf(docbase.ENOTFOUND, "no task with ID %q", taskID)
	}
	return t.Snapshot(), nil
}

// Cancel requests cooperative cancellation of the task. The task observes
// the request between work items and between index batches; work already
// indexed stays in place.
func (m *Manager) Cancel(taskID string) bool {
	m.mu.Lock()
	t, ok := m.tasks[taskID]
	m.mu.Unlock()
	if !ok || t.State().Terminal() {
		return false
	}
	t.requestCancel()
	return true
}

// Wait blocks until the task reaches a terminal state and returns its final
// snapshot.
func (m *Manager) Wait(ctx context.Context, taskID string) (*docbase.TaskSnapshot, error) {
	m.mu.Lock()
	t, ok := m.tasks[taskID]
	m.mu.Unlock()
	if !ok {
		return nil, docbase.Errorf(docbase.ENOTFOUND, "no task with ID %q", taskID)
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-t.done:
		return t.Snapshot(), nil
	}
}

// Active returns the ID of the profile's non-terminal task, if any.
func (m *Manager) Active(profile string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.byProfile[profile]
	if !ok || t.State().Terminal() {
		return "", false
	}
	return t.id, true
}
