package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/jobsim/model"
	"gopkg.in/yaml.v3"
)

// WorkerLoad captures the load estimate and assignment count of a worker.
type WorkerLoad struct {
	WorkerID int `json:"worker" yaml:"worker"`
	Load     int `json:"load" yaml:"load"`
	Jobs     int `json:"jobs" yaml:"jobs"`
}

// Report is the outcome of a single run.
type Report struct {
	RunID       string             `json:"runId" yaml:"runId"`
	Workers     int                `json:"workers" yaml:"workers"`
	StartedAt   time.Time          `json:"startedAt" yaml:"startedAt"`
	FinishedAt  time.Time          `json:"finishedAt" yaml:"finishedAt"`
	Preemptions int                `json:"preemptions" yaml:"preemptions"`
	Loads       []WorkerLoad       `json:"loads,omitempty" yaml:"loads,omitempty"`
	Completions []model.Completion `json:"completions" yaml:"completions"`
}

// Text renders one "id completion" line per job.
func (r *Report) Text() []byte {
	return Text(r.Completions)
}

// Text renders completions as "id completion" lines.
func Text(completions []model.Completion) []byte {
	buf := bytes.Buffer{}
	for _, completion := range completions {
		buf.WriteString(strconv.Itoa(completion.JobID))
		buf.WriteByte(' ')
		buf.WriteString(strconv.Itoa(completion.CompletionTime))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// Encode renders the report in a format inferred from location extension:
// JSON, YAML or plain text.
func (r *Report) Encode(location string) ([]byte, error) {
	switch strings.ToLower(path.Ext(location)) {
	case ".json":
		return json.MarshalIndent(r, "", "  ")
	case ".yaml", ".yml":
		return yaml.Marshal(r)
	}
	return r.Text(), nil
}

// Save writes the report to URL.
func (r *Report) Save(ctx context.Context, fs afs.Service, URL string) error {
	data, err := r.Encode(URL)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err = fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save report to %v: %w", URL, err)
	}
	return nil
}
