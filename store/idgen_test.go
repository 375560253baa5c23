package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSameMillisecondIDsDoNotCollide(t *testing.T) {
	fixed := time.UnixMilli(1_700_000_000_000)
	g := NewIDGenerator(func() time.Time { return fixed })

	a := g.Next()
	b := g.Next()
	assert.NotEqual(t, a, b)
	assert.Equal(t, a+1, b)
}

func TestIDsAreMonotonicWhenClockMovesBack(t *testing.T) {
	now := time.UnixMilli(2_000)
	g := NewIDGenerator(func() time.Time { return now })
	first := g.Next()
	now = time.UnixMilli(1_000)
	assert.Greater(t, g.Next(), first)
}

func TestObserveBumpsFloor(t *testing.T) {
	g := NewIDGenerator(func() time.Time { return time.UnixMilli(10) })
	g.Observe(500)
	assert.Equal(t, int64(501), g.Next())
}
