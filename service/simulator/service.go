package simulator

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/viant/jobsim/model"
	"github.com/viant/jobsim/progress"
	"github.com/viant/jobsim/tracing"
)

// Service computes completion times for a fixed set of workers.
type Service struct {
	parallel bool
}

// New creates a simulator service
func New(options ...Option) *Service {
	ret := &Service{}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// Run replays every worker and returns all finished jobs sorted by id.
// Workers never share jobs, so replays do not coordinate even when parallel.
func (s *Service) Run(ctx context.Context, workers []*model.Worker) ([]*model.Job, error) {
	var results []*Result
	var err error
	if s.parallel {
		results, err = s.runParallel(ctx, workers)
	} else {
		results, err = s.runSequential(ctx, workers)
	}
	if err != nil {
		return nil, err
	}
	return merge(results), nil
}

func (s *Service) runSequential(ctx context.Context, workers []*model.Worker) ([]*Result, error) {
	results := make([]*Result, 0, len(workers))
	for _, worker := range workers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result, err := simulate(ctx, worker)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *Service) runParallel(ctx context.Context, workers []*model.Worker) ([]*Result, error) {
	results := make([]*Result, len(workers))
	errs := make([]error, len(workers))
	wg := sync.WaitGroup{}
	for i, worker := range workers {
		if len(worker.Jobs) == 0 {
			results[i] = &Result{WorkerID: worker.ID}
			continue
		}
		wg.Add(1)
		go func(i int, worker *model.Worker) {
			defer wg.Done()
			results[i], errs[i] = simulate(ctx, worker)
		}(i, worker)
	}
	wg.Wait()
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return results, nil
}

func simulate(ctx context.Context, worker *model.Worker) (*Result, error) {
	if len(worker.Jobs) == 0 {
		return &Result{WorkerID: worker.ID}, nil
	}
	_, span := tracing.StartSpan(ctx, "jobsim.simulate.worker")
	span.WithAttributes(tracing.WorkerAttributes(worker.ID, len(worker.Jobs)))
	result, err := Simulate(worker)
	if err == nil {
		span.WithInt("worker.preemptions", result.Preemptions)
		progress.UpdateCtx(ctx, progress.Delta{Completed: len(result.Finished), Preempted: result.Preemptions})
	}
	tracing.EndSpan(span, err)
	return result, err
}

func merge(results []*Result) []*model.Job {
	total := 0
	for _, result := range results {
		total += len(result.Finished)
	}
	ret := make([]*model.Job, 0, total)
	for _, result := range results {
		ret = append(ret, result.Finished...)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].ID < ret[j].ID })
	return ret
}
