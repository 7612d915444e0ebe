package docbase

import (
	"context"
	"time"
)

// TaskState is the state of an ingestion task. Transitions are strictly
// forward; the three terminal states are absorbing.
type TaskState string

// Ingestion task states.
const (
	TaskIdle       TaskState = "idle"
	TaskPreparing  TaskState = "preparing"
	TaskScanning   TaskState = "scanning"
	TaskProcessing TaskState = "processing"
	TaskIndexing   TaskState = "indexing"
	TaskCompleted  TaskState = "completed"
	TaskFailed     TaskState = "failed"
	TaskCancelled  TaskState = "cancelled"
)

// Terminal reports whether the state is absorbing.
func (s TaskState) Terminal() bool {
	return s == TaskCompleted || s == TaskFailed || s == TaskCancelled
}

// TaskSnapshot is a point-in-time view of one ingestion task. Snapshots are
// taken without blocking the worker, so a reader may observe counters that
// are slightly behind the worker's progress.
type TaskSnapshot struct {
	ID      string
	Profile string
	State   TaskState

	// Progress is a weighted combination of processing and indexing
	// completion in [0, 1]; it reaches 1.0 only in TaskCompleted.
	Progress float64

	CurrentItem    string
	TotalFiles     int
	ProcessedFiles int
	TotalChunks    int
	IndexedChunks  int

	// Errors and Warnings describe skipped items and recovered conditions.
	// A completed task may carry a non-empty error list.
	Errors   []string
	Warnings []string

	StartedAt time.Time
	EndedAt   time.Time
}

// TaskService starts and observes background ingestion tasks. At most one
// task may be active per profile; starting a second returns the active
// task's identifier.
type TaskService interface {
	// Start begins ingestion for a profile and returns the task ID. If a
	// non-terminal task already exists for the profile, its ID is returned
	// and no new task is started.
	Start(ctx context.Context, profile string) (string, error)

	// Status returns a snapshot of the task.
	// Returns ENOTFOUND if no task has the given ID.
	Status(taskID string) (*TaskSnapshot, error)

	// Cancel requests cooperative cancellation. It returns true if the task
	// exists and was in a cancellable (non-terminal, started) state.
	Cancel(taskID string) bool

	// Active returns the ID of the profile's non-terminal task, if any.
	Active(profile string) (string, bool)
}
