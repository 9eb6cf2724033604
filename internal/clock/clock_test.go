package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSince(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	prev := NowFunc
	defer func() { NowFunc = prev }()
	NowFunc = func() time.Time { return start.Add(3 * time.Second) }
	assert.Equal(t, 3*time.Second, Since(start))
	assert.Equal(t, start.Add(3*time.Second), Now())
}
