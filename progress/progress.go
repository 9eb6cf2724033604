package progress

import (
	"context"
	"sync"
	"time"
)

// Delta represents an incremental counter change emitted by the assignment
// or the simulation phase.
type Delta struct {
	Total     int
	Assigned  int
	Preempted int
	Completed int
}

// Progress holds the counters of a single run. Values returned by a Tracker
// are detached snapshots.
type Progress struct {
	RunID     string
	Workers   int
	StartedAt time.Time

	TotalJobs     int
	AssignedJobs  int
	Preemptions   int
	CompletedJobs int
}

// Tracker aggregates run counters. It is safe for concurrent use.
type Tracker struct {
	mu       sync.Mutex
	state    Progress
	onChange func(Progress)
}

// New creates a tracker for the supplied run.
func New(runID string, workers int, onChange func(Progress)) *Tracker {
	return &Tracker{
		state:    Progress{RunID: runID, Workers: workers, StartedAt: time.Now()},
		onChange: onChange,
	}
}

// Update applies the supplied delta.  The onChange callback, if any, receives
// a snapshot taken under the lock and is invoked outside of it.
func (t *Tracker) Update(d Delta) {
	if t == nil {
		return
	}

	t.mu.Lock()
	t.state.TotalJobs += d.Total
	t.state.AssignedJobs += d.Assigned
	t.state.Preemptions += d.Preempted
	t.state.CompletedJobs += d.Completed
	snapshot := t.state
	cb := t.onChange
	t.mu.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// Snapshot returns the current counters.
func (t *Tracker) Snapshot() Progress {
	if t == nil {
		return Progress{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// OnChange registers a callback invoked after every Update.  Passing nil
// disables it.
func (t *Tracker) OnChange(cb func(Progress)) {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.onChange = cb
	t.mu.Unlock()
}

// ----------------------------------------------------------------------------
// Context helpers
// ----------------------------------------------------------------------------

type trackerKeyT struct{}

var trackerKey trackerKeyT

// WithTracker embeds tracker in a derived context.
func WithTracker(ctx context.Context, tracker *Tracker) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, trackerKey, tracker)
}

// FromContext extracts the tracker from ctx.
func FromContext(ctx context.Context) (*Tracker, bool) {
	if ctx == nil {
		return nil, false
	}
	tr, ok := ctx.Value(trackerKey).(*Tracker)
	return tr, ok
}

// UpdateCtx looks up the tracker in ctx (if any) and applies the delta.
func UpdateCtx(ctx context.Context, d Delta) {
	if tr, ok := FromContext(ctx); ok {
		tr.Update(d)
	}
}
