package pqueue

// Less reports whether a ranks strictly better than b. The element for which
// no other element is Less sits at the root.
type Less[T any] func(a, b T) bool

// Queue is a binary heap over T. The zero value is not usable, use New.
// Queue is not safe for concurrent use.
type Queue[T any] struct {
	items []T
	less  Less[T]
}

// New builds a queue from the supplied items in linear time. The items slice
// is copied so the caller keeps ownership of its backing array.
func New[T any](less Less[T], items ...T) *Queue[T] {
	ret := &Queue[T]{
		items: append(make([]T, 0, len(items)), items...),
		less:  less,
	}
	ret.heapify()
	return ret
}

// Push inserts value and restores the heap invariant bottom-up.
func (q *Queue[T]) Push(value T) {
	q.items = append(q.items, value)
	q.up(len(q.items) - 1)
}

// Pop removes and returns the root element.
func (q *Queue[T]) Pop() (T, error) {
	var zero T
	if len(q.items) == 0 {
		return zero, ErrEmpty
	}
	last := len(q.items) - 1
	q.swap(0, last)
	ret := q.items[last]
	q.items[last] = zero
	q.items = q.items[:last]
	q.down(0)
	return ret, nil
}

// Peek returns the root element without removing it.
func (q *Queue[T]) Peek() (T, error) {
	if len(q.items) == 0 {
		var zero T
		return zero, ErrEmpty
	}
	return q.items[0], nil
}

// IsEmpty returns true when the queue holds no elements.
func (q *Queue[T]) IsEmpty() bool {
	return len(q.items) == 0
}

// Len returns number of queued elements.
func (q *Queue[T]) Len() int {
	return len(q.items)
}

func (q *Queue[T]) heapify() {
	for i := parent(len(q.items) - 1); i >= 0; i-- {
		q.down(i)
	}
}

func (q *Queue[T]) up(index int) {
	for index > 0 {
		p := parent(index)
		if !q.less(q.items[index], q.items[p]) {
			return
		}
		q.swap(index, p)
		index = p
	}
}

func (q *Queue[T]) down(index int) {
	size := len(q.items)
	for {
		left := 2*index + 1
		if left >= size {
			return
		}
		best := left
		// right child wins only when left is not strictly better
		if right := left + 1; right < size && !q.less(q.items[left], q.items[right]) {
			best = right
		}
		if !q.less(q.items[best], q.items[index]) {
			return
		}
		q.swap(best, index)
		index = best
	}
}

func (q *Queue[T]) swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
}

func parent(i int) int {
	return (i - 1) / 2
}
