package game

import "time"

// Clock is the logical animation clock. It starts on the first tick.
type Clock interface {
	Start()
	// Elapsed returns seconds since Start, or 0 before it.
	Elapsed() float64
}

// WallClock samples wall time in milliseconds. Rotation driven by it keeps
// advancing even if the logical clock is paused.
type WallClock interface {
	NowMillis() float64
}

// MonotonicClock is a Clock backed by time.Now.
type MonotonicClock struct {
	start  time.Time
	paused bool
	offset time.Duration // elapsed time accumulated before the last pause
}

// NewClock creates a stopped clock.
func NewClock() *MonotonicClock {
	return &MonotonicClock{}
}

// Start starts the clock. Later calls have no effect.
func (c *MonotonicClock) Start() {
	if c.start.IsZero() {
		c.start = time.Now()
	}
}

// Elapsed returns seconds since Start, excluding paused intervals.
func (c *MonotonicClock) Elapsed() float64 {
	if c.start.IsZero() {
		return 0
	}
	if c.paused {
		return c.offset.Seconds()
	}
	return (c.offset + time.Since(c.start)).Seconds()
}

// SetPaused freezes or resumes logical time.
func (c *MonotonicClock) SetPaused(paused bool) {
	if c.start.IsZero() || paused == c.paused {
		return
	}
	now := time.Now()
	if paused {
		c.offset += now.Sub(c.start)
	} else {
		c.start = now
	}
	c.paused = paused
}

// Paused reports whether logical time is frozen.
func (c *MonotonicClock) Paused() bool {
	return c.paused
}

// SystemWallClock reports milliseconds since it was created.
type SystemWallClock struct {
	origin time.Time
}

// NewWallClock creates a wall clock anchored at the current time.
func NewWallClock() *SystemWallClock {
	return &SystemWallClock{origin: time.Now()}
}

// NowMillis returns milliseconds since the clock was created.
func (w *SystemWallClock) NowMillis() float64 {
	return float64(time.Since(w.origin).Microseconds()) / 1000
}
