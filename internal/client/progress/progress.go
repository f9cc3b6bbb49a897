// Package progress tracks per-file state for a batch operation. It is an
// ordered map from task id to task state, updated one key at a time and
// exposed to consumers as read-only snapshots, so a renderer never observes
// a half-applied update.
package progress

import "sync"

type Status string

const (
	StatusQueued     Status = "queued"
	StatusUploading  Status = "uploading"
	StatusProcessing Status = "processing"
	StatusComplete   Status = "complete"
	StatusError      Status = "error"
)

// Task is the state of one file in a batch.
type Task struct {
	ID      string
	Name    string
	Percent int
	Status  Status
	Message string
}

// Tracker holds the batch's tasks in submission order.
type Tracker struct {
	mu       sync.Mutex
	order    []string
	tasks    map[string]Task
	onChange func([]Task)
}

func NewTracker() *Tracker {
	return &Tracker{tasks: make(map[string]Task)}
}

// OnChange registers a callback invoked with a fresh snapshot after every
// update. The callback runs on the updating goroutine.
func (t *Tracker) OnChange(fn func([]Task)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onChange = fn
}

// Add registers a new task in queued state. Submission order is preserved.
func (t *Tracker) Add(id, name string) {
	t.mu.Lock()
	if _, ok := t.tasks[id]; !ok {
		t.order = append(t.order, id)
	}
	t.tasks[id] = Task{ID: id, Name: name, Status: StatusQueued}
	t.notifyAndUnlock()
}

// Update moves a task forward. Progress may only grow within a non-error
// run; a stale smaller value is ignored.
func (t *Tracker) Update(id string, percent int, status Status) {
	t.mu.Lock()
	task, ok := t.tasks[id]
	if !ok {
		t.mu.Unlock()
		return
	}
	if percent > task.Percent {
		task.Percent = percent
	}
	task.Status = status
	t.tasks[id] = task
	t.notifyAndUnlock()
}

// Fail marks a task failed. Progress resets to zero so the renderer shows
// the visual rollback.
func (t *Tracker) Fail(id string, message string) {
	t.mu.Lock()
	task, ok := t.tasks[id]
	if !ok {
		t.mu.Unlock()
		return
	}
	task.Status = StatusError
	task.Percent = 0
	task.Message = message
	t.tasks[id] = task
	t.notifyAndUnlock()
}

// Snapshot returns the tasks in submission order. The returned slice is a
// copy; the caller may keep it.
func (t *Tracker) Snapshot() []Task {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

// Clear drops all tasks, e.g. after the post-batch settle delay.
func (t *Tracker) Clear() {
	t.mu.Lock()
	t.order = nil
	t.tasks = make(map[string]Task)
	t.notifyAndUnlock()
}

// Settled reports whether every task reached a terminal state.
func (t *Tracker) Settled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, id := range t.order {
		s := t.tasks[id].Status
		if s != StatusComplete && s != StatusError {
			return false
		}
	}
	return true
}

func (t *Tracker) snapshotLocked() []Task {
	out := make([]Task, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.tasks[id])
	}
	return out
}

func (t *Tracker) notifyAndUnlock() {
	fn := t.onChange
	snapshot := t.snapshotLocked()
	t.mu.Unlock()
	if fn != nil {
		fn(snapshot)
	}
}
