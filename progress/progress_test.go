package progress

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgress_Update(t *testing.T) {
	var last Progress
	var calls int
	tracker := New("run-1", 2, func(p Progress) {
		calls++
		last = p
	})
	tracker.Update(Delta{Total: 3})
	tracker.Update(Delta{Assigned: 3})
	tracker.Update(Delta{Preempted: 1, Completed: 2})

	assert.Equal(t, 3, calls)
	assert.Equal(t, 3, last.TotalJobs)
	assert.Equal(t, 3, last.AssignedJobs)
	assert.Equal(t, 1, last.Preemptions)
	assert.Equal(t, 2, last.CompletedJobs)
	assert.Equal(t, "run-1", last.RunID)

	tracker.OnChange(nil)
	tracker.Update(Delta{Completed: 1})
	assert.Equal(t, 3, calls)
	assert.Equal(t, 3, tracker.Snapshot().CompletedJobs)
}

func TestProgress_Concurrent(t *testing.T) {
	tracker := New("run-2", 8, nil)
	ctx := WithTracker(context.Background(), tracker)
	wg := sync.WaitGroup{}
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				UpdateCtx(ctx, Delta{Completed: 1})
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 800, tracker.Snapshot().CompletedJobs)
}

func TestFromContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)
	UpdateCtx(context.Background(), Delta{Completed: 1})

	var nilTracker *Tracker
	nilTracker.Update(Delta{Completed: 1})
	assert.Equal(t, Progress{}, nilTracker.Snapshot())
}

func TestTracker_SnapshotDetached(t *testing.T) {
	tracker := New("run-3", 1, nil)
	tracker.Update(Delta{Completed: 1})
	snapshot := tracker.Snapshot()
	tracker.Update(Delta{Completed: 1})
	assert.Equal(t, 1, snapshot.CompletedJobs)
	assert.Equal(t, 2, tracker.Snapshot().CompletedJobs)
}
