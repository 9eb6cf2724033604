// Package progress defines counters reporting how far a simulation run got.
// The tracker travels in the context so that the balancer phase and every
// worker replay can update it without a global registry.
package progress
