package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/jobsim/model"
	"github.com/viant/jobsim/service/dao"
)

// Service implements a storage-backed job registry, one JSON document per job.
type Service struct {
	baseURL string
	fs      afs.Service
	mu      sync.RWMutex
}

// Ensure Service implements dao.Service
var _ dao.Service[int, model.Job] = (*Service)(nil)

// Save persists a job
func (s *Service) Save(ctx context.Context, job *model.Job) error {
	if job == nil {
		return dao.ErrNilEntity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job %d: %w", job.ID, err)
	}
	URL := s.jobURL(job.ID)
	if err = s.fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save job to %s: %w", URL, err)
	}
	return nil
}

// Load retrieves a job
func (s *Service) Load(ctx context.Context, id int) (*model.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.load(ctx, s.jobURL(id))
}

func (s *Service) load(ctx context.Context, URL string) (*model.Job, error) {
	exists, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to check if job exists: %w", err)
	}
	if !exists {
		return nil, dao.ErrNotFound
	}
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file %s: %w", URL, err)
	}
	job := &model.Job{}
	if err := json.Unmarshal(data, job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job %s: %w", URL, err)
	}
	return job, nil
}

// Delete removes a job
func (s *Service) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	URL := s.jobURL(id)
	exists, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return fmt.Errorf("failed to check if job exists: %w", err)
	}
	if !exists {
		return dao.ErrNotFound
	}
	if err := s.fs.Delete(ctx, URL); err != nil {
		return fmt.Errorf("failed to delete job file: %w", err)
	}
	return nil
}

// List returns all stored jobs ordered by id
func (s *Service) List(ctx context.Context) ([]*model.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	exists, err := s.fs.Exists(ctx, s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to check job location: %w", err)
	}
	if !exists {
		return []*model.Job{}, nil
	}
	objects, err := s.fs.List(ctx, s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to list job files: %w", err)
	}
	var jobs []*model.Job
	for _, object := range objects {
		if object.IsDir() || !strings.HasSuffix(object.Name(), ".json") {
			continue
		}
		job, err := s.load(ctx, object.URL())
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].ID < jobs[j].ID })
	return jobs, nil
}

func (s *Service) jobURL(id int) string {
	return url.Join(s.baseURL, strconv.Itoa(id)+".json")
}

// New creates a registry storing jobs under baseURL
func New(baseURL string, fs afs.Service) *Service {
	if fs == nil {
		fs = afs.New()
	}
	return &Service{baseURL: baseURL, fs: fs}
}
