package model

// Unset marks a completion time that has not been computed yet.
const Unset = -1

// Job represents a unit of work assigned to a single worker.
type Job struct {
	ID             int `json:"id" yaml:"id"`
	Size           int `json:"size" yaml:"size"`
	ArrivalTime    int `json:"arrival" yaml:"arrival"`
	CompletionTime int `json:"completion" yaml:"completion"`
}

// NewJob creates a job with an unset completion time.
func NewJob(id, size, arrivalTime int) *Job {
	return &Job{ID: id, Size: size, ArrivalTime: arrivalTime, CompletionTime: Unset}
}

// IsCompleted returns true once the simulator recorded a completion time.
func (j *Job) IsCompleted() bool {
	return j.CompletionTime != Unset
}

// Turnaround returns time elapsed between arrival and completion.
func (j *Job) Turnaround() int {
	if !j.IsCompleted() {
		return 0
	}
	return j.CompletionTime - j.ArrivalTime
}

// Completion pairs a job id with its computed completion time.
type Completion struct {
	JobID          int `json:"id" yaml:"id"`
	CompletionTime int `json:"completion" yaml:"completion"`
}
