package simulator

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/jobsim/model"
	"github.com/viant/jobsim/progress"
	"github.com/viant/jobsim/service/balancer"
)

func workerOf(jobs ...*model.Job) *model.Worker {
	return &model.Worker{Jobs: jobs}
}

func completions(jobs []*model.Job) map[int]int {
	ret := make(map[int]int, len(jobs))
	for _, job := range jobs {
		ret[job.ID] = job.CompletionTime
	}
	return ret
}

func TestSimulate(t *testing.T) {
	testCases := []struct {
		description string
		jobs        []*model.Job
		expect      map[int]int
		order       []int
		preemptions int
	}{
		{
			description: "no overlap",
			jobs:        []*model.Job{model.NewJob(1, 3, 0), model.NewJob(2, 2, 5)},
			expect:      map[int]int{1: 3, 2: 7},
			order:       []int{1, 2},
		},
		{
			description: "short job overtakes long one",
			jobs:        []*model.Job{model.NewJob(1, 10, 0), model.NewJob(2, 1, 2)},
			expect:      map[int]int{1: 11, 2: 3},
			order:       []int{2, 1},
			preemptions: 1,
		},
		{
			description: "equal score resolved by lower id",
			jobs:        []*model.Job{model.NewJob(7, 5, 0), model.NewJob(3, 1, 2)},
			expect:      map[int]int{3: 3, 7: 6},
			order:       []int{3, 7},
			preemptions: 1,
		},
		{
			description: "equal score keeps earlier job when its id is lower",
			jobs:        []*model.Job{model.NewJob(1, 5, 0), model.NewJob(9, 1, 2)},
			expect:      map[int]int{1: 5, 9: 6},
			order:       []int{1, 9},
			preemptions: 1,
		},
		{
			description: "several jobs finish before next arrival",
			jobs:        []*model.Job{model.NewJob(1, 1, 0), model.NewJob(2, 1, 0), model.NewJob(3, 1, 10)},
			expect:      map[int]int{1: 1, 2: 2, 3: 11},
			order:       []int{1, 2, 3},
			preemptions: 1,
		},
		{
			description: "job finishing exactly on arrival is not preempted",
			jobs:        []*model.Job{model.NewJob(1, 4, 1), model.NewJob(2, 2, 5)},
			expect:      map[int]int{1: 5, 2: 7},
			order:       []int{1, 2},
		},
		{
			description: "idle gap between jobs",
			jobs:        []*model.Job{model.NewJob(1, 2, 3), model.NewJob(2, 2, 20)},
			expect:      map[int]int{1: 5, 2: 22},
			order:       []int{1, 2},
		},
	}

	for _, testCase := range testCases {
		result, err := Simulate(workerOf(testCase.jobs...))
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expect, completions(result.Finished), testCase.description)
		var order []int
		for _, job := range result.Finished {
			order = append(order, job.ID)
		}
		assert.Equal(t, testCase.order, order, testCase.description)
		assert.Equal(t, testCase.preemptions, result.Preemptions, testCase.description)
	}
}

func TestSimulate_Empty(t *testing.T) {
	result, err := Simulate(workerOf())
	require.NoError(t, err)
	assert.Empty(t, result.Finished)
}

func randomJobs(seed int64, count int) []*model.Job {
	rnd := rand.New(rand.NewSource(seed))
	ret := make([]*model.Job, count)
	arrival := 0
	for i := range ret {
		arrival += rnd.Intn(4)
		ret[i] = model.NewJob(count-i, 1+rnd.Intn(12), arrival)
	}
	return ret
}

func assign(t *testing.T, workers int, jobs []*model.Job) []*model.Worker {
	t.Helper()
	srv, err := balancer.New(workers)
	require.NoError(t, err)
	for _, job := range jobs {
		_, err := srv.Assign(job)
		require.NoError(t, err)
	}
	return srv.Workers()
}

func TestService_Run_Properties(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		jobs := randomJobs(seed, 200)
		workers := assign(t, 1+int(seed%4), jobs)

		tracker := progress.New("test", len(workers), nil)
		ctx := progress.WithTracker(context.Background(), tracker)
		finished, err := New().Run(ctx, workers)
		require.NoError(t, err)

		require.Len(t, finished, len(jobs))
		for i, job := range finished {
			assert.Equal(t, i+1, job.ID, "sorted by id without gaps")
			assert.True(t, job.IsCompleted())
			assert.GreaterOrEqual(t, job.Turnaround(), job.Size, "job %d", job.ID)
		}
		assert.Equal(t, len(jobs), tracker.Snapshot().CompletedJobs)
	}
}

func TestService_Run_ParallelMatchesSequential(t *testing.T) {
	sequentialJobs := randomJobs(99, 300)
	parallelJobs := randomJobs(99, 300)

	sequential, err := New().Run(context.Background(), assign(t, 5, sequentialJobs))
	require.NoError(t, err)
	parallel, err := New(WithParallel(true)).Run(context.Background(), assign(t, 5, parallelJobs))
	require.NoError(t, err)

	assert.Equal(t, completions(sequential), completions(parallel))
}

func TestService_Run_IdleWorkers(t *testing.T) {
	workers := assign(t, 4, []*model.Job{model.NewJob(1, 3, 0)})
	for _, parallel := range []bool{false, true} {
		finished, err := New(WithParallel(parallel)).Run(context.Background(), workers)
		require.NoError(t, err)
		assert.Len(t, finished, 1)
	}
}

func TestService_Run_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().Run(ctx, assign(t, 1, []*model.Job{model.NewJob(1, 3, 0)}))
	assert.ErrorIs(t, err, context.Canceled)
}
