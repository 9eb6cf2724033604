package balancer

import (
	"fmt"

	"github.com/viant/jobsim/model"
	"github.com/viant/jobsim/pqueue"
)

// Service distributes jobs across workers using a load-ordered queue.
type Service struct {
	workers         []*model.Worker
	queue           *pqueue.Queue[*model.Worker]
	validateArrival bool
	lastArrival     int
	assigned        int
}

// New creates a balancer over count zero-loaded workers.
func New(count int, options ...Option) (*Service, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWorkerCount, count)
	}
	ret := &Service{
		workers:         model.NewWorkers(count),
		validateArrival: true,
	}
	for _, option := range options {
		option(ret)
	}
	ret.queue = pqueue.New(byLoad, ret.workers...)
	return ret, nil
}

func byLoad(a, b *model.Worker) bool {
	return a.Load < b.Load
}

// Assign hands job to the least loaded worker and returns that worker.
func (s *Service) Assign(job *model.Job) (*model.Worker, error) {
	if err := s.Validate(job); err != nil {
		return nil, err
	}
	worker, err := s.queue.Pop()
	if err != nil {
		return nil, fmt.Errorf("failed to select worker for job %d: %w", job.ID, err)
	}
	worker.Load = nextLoad(worker, job)
	worker.Assign(job)
	s.queue.Push(worker)
	s.lastArrival = job.ArrivalTime
	s.assigned++
	return worker, nil
}

// nextLoad approximates when worker frees up using only the previous job's
// arrival time, not its completion.
func nextLoad(worker *model.Worker, job *model.Job) int {
	gap := job.ArrivalTime
	if last := worker.Last(); last != nil {
		gap = job.ArrivalTime - last.ArrivalTime
	}
	return max(gap, worker.Load) + job.Size
}

// Validate reports whether Assign would accept job, without changing any worker.
func (s *Service) Validate(job *model.Job) error {
	if job == nil {
		return fmt.Errorf("%w: nil job", ErrInvalidJob)
	}
	if job.Size <= 0 {
		return fmt.Errorf("%w: job %d size %d", ErrInvalidJob, job.ID, job.Size)
	}
	if job.ArrivalTime < 0 {
		return fmt.Errorf("%w: job %d arrival %d", ErrInvalidJob, job.ID, job.ArrivalTime)
	}
	if s.validateArrival && s.assigned > 0 && job.ArrivalTime < s.lastArrival {
		return fmt.Errorf("%w: job %d arrives at %d, previous job arrived at %d", ErrOutOfOrderArrival, job.ID, job.ArrivalTime, s.lastArrival)
	}
	return nil
}

// Workers returns the worker pool in creation order.
func (s *Service) Workers() []*model.Worker {
	return s.workers
}

// Assigned returns number of successfully assigned jobs.
func (s *Service) Assigned() int {
	return s.assigned
}
