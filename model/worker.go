package model

// Worker accumulates assigned jobs and a load estimate used for ranking.
// Jobs are references into the job registry, a worker never owns them.
type Worker struct {
	ID   int    `json:"id" yaml:"id"`
	Load int    `json:"load" yaml:"load"`
	Jobs []*Job `json:"-" yaml:"-"`
}

// NewWorkers creates count workers with zero load.
func NewWorkers(count int) []*Worker {
	ret := make([]*Worker, count)
	for i := range ret {
		ret[i] = &Worker{ID: i}
	}
	return ret
}

// Last returns the most recently assigned job or nil.
func (w *Worker) Last() *Job {
	if len(w.Jobs) == 0 {
		return nil
	}
	return w.Jobs[len(w.Jobs)-1]
}

// Assign appends job to the assignment list.
func (w *Worker) Assign(job *Job) {
	w.Jobs = append(w.Jobs, job)
}
