package workload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/viant/jobsim/model"
	"github.com/viant/jobsim/service/meta"
	"gopkg.in/yaml.v3"
)

// Format identifies a workload encoding
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

var (
	// ErrInvalidWorkload is returned for malformed documents or job definitions.
	ErrInvalidWorkload = errors.New("workload: invalid")
)

type jobRecord struct {
	ID      *int `yaml:"id"`
	Size    *int `yaml:"size"`
	Arrival *int `yaml:"arrival"`
}

func (r *jobRecord) missing() string {
	switch {
	case r.ID == nil:
		return "id"
	case r.Size == nil:
		return "size"
	case r.Arrival == nil:
		return "arrival"
	}
	return ""
}

type document struct {
	Jobs []*jobRecord `yaml:"jobs"`
}

// FormatOf infers the format from a location extension.
func FormatOf(location string) Format {
	switch strings.ToLower(path.Ext(location)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	}
	return FormatText
}

// Detect infers the format from content, used for stdin input.
func Detect(data []byte) Format {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return FormatText
	}
	switch trimmed[0] {
	case '[', '{':
		return FormatJSON
	case '-':
		if len(trimmed) > 1 && (trimmed[1] == ' ' || trimmed[1] == '\n') {
			return FormatYAML
		}
	}
	if bytes.HasPrefix(trimmed, []byte("jobs:")) {
		return FormatYAML
	}
	return FormatText
}

// Decode parses data in the supplied format and validates the result.
func Decode(data []byte, format Format) ([]*model.Job, error) {
	var jobs []*model.Job
	var err error
	switch format {
	case FormatYAML, FormatJSON:
		jobs, err = decodeDocument(data)
	default:
		jobs, err = Parse(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWorkload, err)
	}
	if err = Validate(jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func decodeDocument(data []byte) ([]*model.Job, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return []*model.Job{}, nil
	}
	var records []*jobRecord
	switch root := node.Content[0]; root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&records); err != nil {
			return nil, err
		}
	case yaml.MappingNode:
		doc := &document{}
		if err := root.Decode(doc); err != nil {
			return nil, err
		}
		records = doc.Jobs
	default:
		return nil, fmt.Errorf("unsupported document kind: %v", root.Tag)
	}
	jobs := make([]*model.Job, 0, len(records))
	for i, record := range records {
		if record == nil {
			return nil, fmt.Errorf("empty job definition at %d", i)
		}
		if key := record.missing(); key != "" {
			return nil, fmt.Errorf("%w: job definition at %d: missing %v", ErrInvalidWorkload, i, key)
		}
		jobs = append(jobs, model.NewJob(*record.ID, *record.Size, *record.Arrival))
	}
	return jobs, nil
}

// Validate checks job attributes and id uniqueness.
func Validate(jobs []*model.Job) error {
	seen := make(map[int]bool, len(jobs))
	for _, job := range jobs {
		switch {
		case job.Size <= 0:
			return fmt.Errorf("%w: job %d: size must be > 0, got %d", ErrInvalidWorkload, job.ID, job.Size)
		case job.ArrivalTime < 0:
			return fmt.Errorf("%w: job %d: arrival must be >= 0, got %d", ErrInvalidWorkload, job.ID, job.ArrivalTime)
		case seen[job.ID]:
			return fmt.Errorf("%w: duplicate job id %d", ErrInvalidWorkload, job.ID)
		}
		seen[job.ID] = true
	}
	return nil
}

// Sort orders jobs by arrival, then id, keeping equal keys stable.
func Sort(jobs []*model.Job) {
	sort.SliceStable(jobs, func(i, j int) bool {
		if jobs[i].ArrivalTime != jobs[j].ArrivalTime {
			return jobs[i].ArrivalTime < jobs[j].ArrivalTime
		}
		return jobs[i].ID < jobs[j].ID
	})
}

// Load downloads and decodes a workload, choosing the format by extension.
func Load(ctx context.Context, metaService *meta.Service, location string) ([]*model.Job, error) {
	data, err := metaService.Download(ctx, location)
	if err != nil {
		return nil, err
	}
	jobs, err := Decode(data, FormatOf(location))
	if err != nil {
		return nil, fmt.Errorf("failed to load workload %v: %w", location, err)
	}
	return jobs, nil
}
