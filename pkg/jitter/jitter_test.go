package jitter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDurationStaysInRange(t *testing.T) {
	base := 10 * time.Second
	for i := 0; i < 100; i++ {
		got := Duration(base, DefaultJitter)
		assert.GreaterOrEqual(t, got, base)
		assert.LessOrEqual(t, got, base+base/2)
	}
}

func TestDurationZeroFactor(t *testing.T) {
	assert.Equal(t, time.Second, Duration(time.Second, 0))
}

func TestBackoffCappedByMax(t *testing.T) {
	max := 5 * time.Second
	got := Backoff(time.Second, max, 10, 0)
	assert.Equal(t, max, got)
}

func TestBackoffGrowth(t *testing.T) {
	assert.Equal(t, time.Second, Backoff(time.Second, time.Minute, 0, 0))
	assert.Equal(t, 2*time.Second, Backoff(time.Second, time.Minute, 1, 0))
	assert.Equal(t, 4*time.Second, Backoff(time.Second, time.Minute, 2, 0))
}
