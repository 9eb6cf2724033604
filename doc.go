// Package jobsim assigns jobs to a fixed pool of workers and simulates when
// each job completes.
//
// A run has two phases separated by a strict barrier:
//
//   - assignment  – every job goes to the least loaded worker (service/balancer)
//   - simulation  – each worker replays its own jobs with preemption (service/simulator)
//
// Typical usage:
//
//	srv, _ := jobsim.New(jobsim.WithWorkers(4))
//	for _, job := range jobs {
//		if err := srv.Assign(ctx, job); err != nil { ... }
//	}
//	completions, _ := srv.ComputeCompletions(ctx)
//
// Jobs must be assigned in non-decreasing arrival order; see
// jobsim.WithArrivalValidation.
package jobsim
