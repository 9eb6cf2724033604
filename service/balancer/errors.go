package balancer

import "errors"

var (
	// ErrInvalidWorkerCount is returned when the pool is created with fewer than one worker.
	ErrInvalidWorkerCount = errors.New("balancer: worker count must be > 0")

	// ErrInvalidJob is returned for nil jobs, non-positive sizes or negative arrival times.
	ErrInvalidJob = errors.New("balancer: invalid job")

	// ErrOutOfOrderArrival is returned when a job arrives before the previously assigned one.
	ErrOutOfOrderArrival = errors.New("balancer: out of order arrival")
)
