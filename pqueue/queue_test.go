package pqueue

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intLess(a, b int) bool { return a < b }

type entry struct {
	key int
	id  int
}

func entryLess(a, b entry) bool {
	if a.key != b.key {
		return a.key < b.key
	}
	return a.id < b.id
}

// assertHeap checks that no child ranks strictly better than its parent.
func assertHeap[T any](t *testing.T, q *Queue[T]) {
	t.Helper()
	for i := 1; i < len(q.items); i++ {
		assert.Falsef(t, q.less(q.items[i], q.items[parent(i)]), "child %d ranks better than parent %d", i, parent(i))
	}
}

func drain[T any](t *testing.T, q *Queue[T]) []T {
	t.Helper()
	var ret []T
	for !q.IsEmpty() {
		v, err := q.Pop()
		require.NoError(t, err)
		assertHeap(t, q)
		ret = append(ret, v)
	}
	return ret
}

func TestNew(t *testing.T) {
	testCases := []struct {
		description string
		input       []int
		expect      []int
	}{
		{description: "empty", input: nil, expect: nil},
		{description: "single", input: []int{7}, expect: []int{7}},
		{description: "reversed", input: []int{5, 4, 3, 2, 1}, expect: []int{1, 2, 3, 4, 5}},
		{description: "duplicates", input: []int{3, 1, 3, 2, 1, 2}, expect: []int{1, 1, 2, 2, 3, 3}},
		{description: "sorted", input: []int{1, 2, 3, 4}, expect: []int{1, 2, 3, 4}},
	}
	for _, testCase := range testCases {
		q := New(intLess, testCase.input...)
		assert.Equal(t, len(testCase.input), q.Len(), testCase.description)
		assertHeap(t, q)
		assert.Equal(t, testCase.expect, drain(t, q), testCase.description)
	}
}

func TestNew_CopiesInput(t *testing.T) {
	input := []int{3, 2, 1}
	q := New(intLess, input...)
	_, err := q.Pop()
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2, 1}, input)
}

func TestQueue_Empty(t *testing.T) {
	q := New[int](intLess)
	assert.True(t, q.IsEmpty())
	assert.Equal(t, 0, q.Len())

	_, err := q.Pop()
	assert.ErrorIs(t, err, ErrEmpty)
	_, err = q.Peek()
	assert.ErrorIs(t, err, ErrEmpty)

	q.Push(1)
	_, err = q.Pop()
	assert.NoError(t, err)
	_, err = q.Pop()
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestQueue_Peek(t *testing.T) {
	q := New(intLess, 4, 9, 2)
	v, err := q.Peek()
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	assert.Equal(t, 3, q.Len())
	q.Push(1)
	v, err = q.Peek()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestQueue_RandomOperations(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	q := New[int](intLess)
	var shadow []int
	for i := 0; i < 2000; i++ {
		if rnd.Intn(3) == 0 && !q.IsEmpty() {
			v, err := q.Pop()
			require.NoError(t, err)
			sort.Ints(shadow)
			assert.Equal(t, shadow[0], v)
			shadow = shadow[1:]
		} else {
			v := rnd.Intn(100)
			q.Push(v)
			shadow = append(shadow, v)
		}
		assertHeap(t, q)
		assert.Equal(t, len(shadow), q.Len())
	}
}

func TestQueue_DrainIsSorted(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for round := 0; round < 20; round++ {
		input := make([]int, rnd.Intn(64))
		for i := range input {
			input[i] = rnd.Intn(20) - 10
		}
		actual := drain(t, New(intLess, input...))
		assert.True(t, sort.IntsAreSorted(actual))
		assert.Len(t, actual, len(input))
	}
}

func TestQueue_PermutationIndependence(t *testing.T) {
	base := []entry{{5, 1}, {3, 2}, {5, 0}, {1, 9}, {3, 1}, {8, 4}, {1, 3}}
	expect := drain(t, New(entryLess, base...))

	rnd := rand.New(rand.NewSource(11))
	for round := 0; round < 50; round++ {
		perm := rnd.Perm(len(base))
		q := New[entry](entryLess)
		for _, i := range perm {
			q.Push(base[i])
		}
		assert.Equal(t, expect, drain(t, q))
	}
}
