package workspace

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Task is the handle spec §5 requires be passed into every long-running
// operation: it exposes per-resource job events and a cancel flag checked
// between resources. No in-flight analysis is ever suspended mid-AST —
// cancellation only takes effect at a resource boundary.
type Task struct {
	ID uuid.UUID

	// OnStartedJob/OnFinishedJob, if set, are called synchronously as each
	// resource begins/finishes processing.
	OnStartedJob  func(resource string)
	OnFinishedJob func(resource string)

	cancelled atomic.Bool
	mu        sync.Mutex
}

// NewTask creates a fresh, non-cancelled task handle with an opaque
// identity (spec §5 "task handle").
func NewTask() *Task {
	return &Task{ID: uuid.New()}
}

// Cancel requests cancellation. It may be called from any goroutine; the
// operation holding this Task observes it at its next resource boundary.
func (t *Task) Cancel() {
	t.cancelled.Store(true)
}

// Cancelled reports whether Cancel has been called.
func (t *Task) Cancelled() bool {
	return t.cancelled.Load()
}

func (t *Task) startedJob(resource string) {
	if t == nil || t.OnStartedJob == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.OnStartedJob(resource)
}

func (t *Task) finishedJob(resource string) {
	if t == nil || t.OnFinishedJob == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.OnFinishedJob(resource)
}

// cancelFunc adapts a possibly-nil Task into the cancelled func that
// occurrence.Finder.Find polls between resources.
func (t *Task) cancelFunc() func() bool {
	if t == nil {
		return func() bool { return false }
	}
	return t.Cancelled
}
