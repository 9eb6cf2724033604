package memory

import (
	"context"
	"sort"

	"github.com/viant/jobsim/model"
	"github.com/viant/jobsim/service/dao"
	"github.com/viant/jobsim/service/dao/store"
)

// Service is the default job registry.  Jobs are kept by reference so that
// workers and the registry observe the same records.
type Service struct {
	*store.MemoryStore[int, model.Job]
}

var _ dao.Service[int, model.Job] = (*Service)(nil)

// List returns all jobs ordered by id.
func (s *Service) List(ctx context.Context) ([]*model.Job, error) {
	jobs, err := s.MemoryStore.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].ID < jobs[j].ID })
	return jobs, nil
}

func New() *Service {
	return &Service{MemoryStore: store.NewMemoryStore[int, model.Job](func(job *model.Job) int { return job.ID })}
}
