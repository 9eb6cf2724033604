package pqueue

import "errors"

// ErrEmpty is returned when Pop or Peek is called on an empty queue. Callers
// are expected to guard with IsEmpty; seeing this error means the caller lost
// track of the queue state and the computation must be aborted.
var ErrEmpty = errors.New("pqueue: empty queue")
