package simulator

import (
	"fmt"

	"github.com/viant/jobsim/model"
	"github.com/viant/jobsim/pqueue"
)

// pending tracks work left on a job that arrived but has not finished.
type pending struct {
	remaining int
	job       *model.Job
}

func (p pending) score() int {
	return p.remaining + p.job.ArrivalTime
}

func byScore(a, b pending) bool {
	if sa, sb := a.score(), b.score(); sa != sb {
		return sa < sb
	}
	return a.job.ID < b.job.ID
}

// Result holds the outcome of a single worker replay.
type Result struct {
	WorkerID    int
	Finished    []*model.Job
	Preemptions int
}

// replay runs the worker's assignment list against a single logical clock.
type replay struct {
	queue  *pqueue.Queue[pending]
	time   int
	result *Result
}

// Simulate replays the worker's jobs in assignment order and sets their
// completion times.
func Simulate(worker *model.Worker) (*Result, error) {
	r := &replay{
		queue:  pqueue.New[pending](byScore),
		result: &Result{WorkerID: worker.ID, Finished: make([]*model.Job, 0, len(worker.Jobs))},
	}
	for _, job := range worker.Jobs {
		queued, err := r.runUntil(job)
		if err != nil {
			return nil, fmt.Errorf("worker %d: %w", worker.ID, err)
		}
		if !queued {
			r.queue.Push(pending{remaining: job.Size, job: job})
			r.time = job.ArrivalTime
		}
	}
	if err := r.drain(); err != nil {
		return nil, fmt.Errorf("worker %d: %w", worker.ID, err)
	}
	return r.result, nil
}

// runUntil executes pending work up to the arrival of next. It returns true
// when a pending job could not finish in time, in which case both that job
// and next are already queued and the clock sits at next's arrival.
func (r *replay) runUntil(next *model.Job) (bool, error) {
	for !r.queue.IsEmpty() {
		current, err := r.queue.Pop()
		if err != nil {
			return false, err
		}
		untilArrival := next.ArrivalTime - r.time
		if current.remaining > untilArrival {
			r.queue.Push(pending{remaining: current.remaining - untilArrival, job: current.job})
			r.queue.Push(pending{remaining: next.Size, job: next})
			r.time = next.ArrivalTime
			r.result.Preemptions++
			return true, nil
		}
		r.complete(current)
	}
	return false, nil
}

func (r *replay) drain() error {
	for !r.queue.IsEmpty() {
		current, err := r.queue.Pop()
		if err != nil {
			return err
		}
		r.complete(current)
	}
	return nil
}

func (r *replay) complete(p pending) {
	r.time += p.remaining
	p.job.CompletionTime = r.time
	r.result.Finished = append(r.result.Finished, p.job)
}
