package jobsim

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/viant/jobsim/internal/clock"
	"github.com/viant/jobsim/internal/idgen"
	"github.com/viant/jobsim/model"
	"github.com/viant/jobsim/progress"
	"github.com/viant/jobsim/service/balancer"
	"github.com/viant/jobsim/service/dao"
	"github.com/viant/jobsim/service/dao/job/memory"
	"github.com/viant/jobsim/service/report"
	"github.com/viant/jobsim/service/simulator"
	"github.com/viant/jobsim/tracing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Service assigns jobs to workers and computes their completion times.
// It is not safe for concurrent use.
type Service struct {
	config     *Config
	balancer   *balancer.Service
	simulator  *simulator.Service
	jobs       dao.Service[int, model.Job]
	logger     *logrus.Logger
	log        *logrus.Entry
	exporter   sdktrace.SpanExporter
	onProgress func(progress.Progress)
	tracker    *progress.Tracker

	runID       string
	startedAt   time.Time
	finishedAt  time.Time
	completions []model.Completion
	sealed      bool
}

func (s *Service) init(options []Option) error {
	for _, option := range options {
		option(s)
	}
	if err := s.config.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	s.runID = idgen.NewRunID()
	s.startedAt = clock.Now()
	if err := s.ensureBaseSetup(); err != nil {
		return err
	}
	var err error
	if s.balancer, err = balancer.New(s.config.Workers, balancer.WithArrivalValidation(s.config.Arrival.Validate)); err != nil {
		return err
	}
	s.simulator = simulator.New(simulator.WithParallel(s.config.Simulator.Parallel))
	s.tracker = progress.New(s.runID, s.config.Workers, s.onProgress)
	return nil
}

func (s *Service) ensureBaseSetup() error {
	if s.jobs == nil {
		s.jobs = memory.New()
	}
	if s.logger == nil {
		s.logger = logrus.New()
		if s.config.Log.Level != "" {
			level, err := logrus.ParseLevel(s.config.Log.Level)
			if err != nil {
				return err
			}
			s.logger.SetLevel(level)
		}
	}
	s.log = s.logger.WithFields(logrus.Fields{"run": s.runID, "workers": s.config.Workers})
	if s.config.Tracing.Enabled {
		var err error
		if s.exporter != nil {
			err = tracing.InitWithExporter(s.config.Tracing.Service, s.config.Tracing.Version, s.exporter)
		} else {
			err = tracing.Init(s.config.Tracing.Service, s.config.Tracing.Version, s.config.Tracing.OutputFile)
		}
		if err != nil {
			return fmt.Errorf("failed to init tracing: %w", err)
		}
	}
	return nil
}

// Assign registers job and hands it to the least loaded worker. Jobs must
// arrive in non-decreasing arrival order and carry unique ids. A job is
// placed on a worker only once the registry has accepted it.
func (s *Service) Assign(ctx context.Context, job *model.Job) error {
	if s.sealed {
		return ErrSealed
	}
	if err := s.balancer.Validate(job); err != nil {
		return err
	}
	if _, err := s.jobs.Load(ctx, job.ID); err == nil {
		return fmt.Errorf("%w: %d", ErrDuplicateJob, job.ID)
	} else if !errors.Is(err, dao.ErrNotFound) {
		return fmt.Errorf("failed to check job %d: %w", job.ID, err)
	}
	job.CompletionTime = model.Unset
	if err := s.jobs.Save(ctx, job); err != nil {
		return fmt.Errorf("failed to register job %d: %w", job.ID, err)
	}
	worker, err := s.balancer.Assign(job)
	if err != nil {
		if dErr := s.jobs.Delete(ctx, job.ID); dErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to unregister job %d: %w", job.ID, dErr))
		}
		return err
	}
	s.tracker.Update(progress.Delta{Total: 1, Assigned: 1})
	s.log.WithFields(logrus.Fields{
		"job":     job.ID,
		"worker":  worker.ID,
		"arrival": job.ArrivalTime,
		"load":    worker.Load,
	}).Debug("job assigned")
	return nil
}

// ComputeCompletions simulates every worker and returns completion times
// sorted by job id. The first call seals the service; subsequent calls
// return the same result.
func (s *Service) ComputeCompletions(ctx context.Context) ([]model.Completion, error) {
	if s.sealed {
		return append([]model.Completion(nil), s.completions...), nil
	}
	ctx, span := tracing.StartSpan(ctx, "jobsim.computeCompletions")
	span.WithInt("jobs", s.balancer.Assigned())
	completions, err := s.computeCompletions(progress.WithTracker(ctx, s.tracker))
	tracing.EndSpan(span, err)
	if err != nil {
		s.log.WithError(err).Error("simulation failed")
		return nil, err
	}
	s.completions = completions
	s.sealed = true
	s.finishedAt = clock.Now()
	snapshot := s.tracker.Snapshot()
	s.log.WithFields(logrus.Fields{
		"jobs":        len(completions),
		"preemptions": snapshot.Preemptions,
		"elapsed":     clock.Since(s.startedAt).String(),
	}).Info("completions computed")
	return append([]model.Completion(nil), completions...), nil
}

func (s *Service) computeCompletions(ctx context.Context) ([]model.Completion, error) {
	finished, err := s.simulator.Run(ctx, s.balancer.Workers())
	if err != nil {
		return nil, err
	}
	if len(finished) != s.balancer.Assigned() {
		return nil, fmt.Errorf("simulated %d jobs, assigned %d", len(finished), s.balancer.Assigned())
	}
	ret := make([]model.Completion, 0, len(finished))
	for _, job := range finished {
		if err := s.jobs.Save(ctx, job); err != nil {
			return nil, fmt.Errorf("failed to record completion of job %d: %w", job.ID, err)
		}
		ret = append(ret, model.Completion{JobID: job.ID, CompletionTime: job.CompletionTime})
	}
	return ret, nil
}

// Run assigns all jobs in order, computes completions and returns a report.
func (s *Service) Run(ctx context.Context, jobs []*model.Job) (*report.Report, error) {
	ctx, span := tracing.StartSpan(ctx, "jobsim.run")
	aReport, err := s.run(ctx, jobs)
	tracing.EndSpan(span, err)
	return aReport, err
}

func (s *Service) run(ctx context.Context, jobs []*model.Job) (*report.Report, error) {
	assignCtx, span := tracing.StartSpan(ctx, "jobsim.assign")
	span.WithInt("jobs", len(jobs))
	var err error
	for _, job := range jobs {
		if err = s.Assign(assignCtx, job); err != nil {
			break
		}
	}
	tracing.EndSpan(span, err)
	if err != nil {
		return nil, err
	}
	s.log.WithField("jobs", len(jobs)).Info("jobs assigned")
	if _, err = s.ComputeCompletions(ctx); err != nil {
		return nil, err
	}
	return s.Report(), nil
}

// Report summarises the run; completions are empty until computed.
func (s *Service) Report() *report.Report {
	workers := s.balancer.Workers()
	loads := make([]report.WorkerLoad, 0, len(workers))
	for _, worker := range workers {
		loads = append(loads, report.WorkerLoad{WorkerID: worker.ID, Load: worker.Load, Jobs: len(worker.Jobs)})
	}
	return &report.Report{
		RunID:       s.runID,
		Workers:     len(workers),
		StartedAt:   s.startedAt,
		FinishedAt:  s.finishedAt,
		Preemptions: s.tracker.Snapshot().Preemptions,
		Loads:       loads,
		Completions: append([]model.Completion(nil), s.completions...),
	}
}

// Workers returns the worker pool
func (s *Service) Workers() []*model.Worker {
	return s.balancer.Workers()
}

// Jobs returns the job registry
func (s *Service) Jobs() dao.Service[int, model.Job] {
	return s.jobs
}

// Progress returns a snapshot of run counters
func (s *Service) Progress() progress.Progress {
	return s.tracker.Snapshot()
}

// RunID returns the run identifier
func (s *Service) RunID() string {
	return s.runID
}

// New creates a service; the worker count defaults to 1.
func New(options ...Option) (*Service, error) {
	ret := &Service{config: DefaultConfig()}
	if err := ret.init(options); err != nil {
		return nil, err
	}
	return ret, nil
}

// NewFromConfig creates a service from config, followed by extra options.
func NewFromConfig(config *Config, options ...Option) (*Service, error) {
	return New(append([]Option{WithConfig(config)}, options...)...)
}
