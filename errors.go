package jobsim

import "errors"

var (
	// ErrDuplicateJob is returned when a job id is already registered.
	ErrDuplicateJob = errors.New("jobsim: duplicate job")

	// ErrSealed is returned by Assign once completions have been computed.
	ErrSealed = errors.New("jobsim: completions already computed")
)
