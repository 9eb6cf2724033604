// Package balancer assigns jobs to a fixed pool of workers.  Every job goes to
// the worker with the smallest load estimate at the time of the call; the
// estimate is a closed-form approximation and never reflects simulated
// completion times.
package balancer
