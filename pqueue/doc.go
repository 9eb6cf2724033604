// Package pqueue provides a generic binary heap ordered by a caller supplied
// predicate.  It is the single ordering primitive shared by the balancer and
// the simulator: there is no decrease-key, callers pop, modify and push back.
package pqueue
