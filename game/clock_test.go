package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonotonicClockStartsOnce(t *testing.T) {
	c := NewClock()
	assert.Zero(t, c.Elapsed(), "elapsed before start")

	c.Start()
	first := c.start
	c.Start()
	assert.Equal(t, first, c.start, "second Start must not reset the origin")
}

func TestMonotonicClockPause(t *testing.T) {
	c := NewClock()

	// Pausing before Start is ignored
	c.SetPaused(true)
	assert.False(t, c.Paused())

	c.Start()
	c.start = c.start.Add(-2 * time.Second)
	c.SetPaused(true)
	require.True(t, c.Paused())

	frozen := c.Elapsed()
	assert.InDelta(t, 2.0, frozen, 0.1)
	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, frozen, c.Elapsed(), "elapsed must not advance while paused")

	c.SetPaused(false)
	assert.GreaterOrEqual(t, c.Elapsed(), frozen)
	assert.Less(t, c.Elapsed(), frozen+0.1, "paused interval must be excluded")
}

func TestTogglePause(t *testing.T) {
	f := newFixture(t, Options{})
	assert.False(t, f.sched.TogglePause(), "fake clock cannot pause")

	clock := NewClock()
	f.sched.clock = clock
	require.NoError(t, f.sched.Tick())
	assert.True(t, f.sched.TogglePause())
	assert.True(t, clock.Paused())
	assert.False(t, f.sched.TogglePause())
}

func TestWallClockAdvances(t *testing.T) {
	w := NewWallClock()
	w.origin = w.origin.Add(-time.Second)
	assert.InDelta(t, 1000, w.NowMillis(), 100)
}
