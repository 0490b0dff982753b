package session

import (
	"time"
)

// Clock converts host time into session elapsed time. Host time passed to
// it must be monotonic; readings that go backwards are clamped.
type Clock struct {
	start  time.Duration
	offset time.Duration
	last   time.Duration

	paused   bool
	pausedAt time.Duration // elapsed time captured by Pause
}

func NewClock(offset time.Duration) Clock {
	return Clock{offset: offset}
}

func (c *Clock) observe(now time.Duration) time.Duration {
	if now < c.last {
		return c.last
	}
	c.last = now
	return now
}

// Start sets the session epoch to now
func (c *Clock) Start(now time.Duration) {
	c.last = now
	c.start = now
	c.paused = false
	c.pausedAt = 0
}

// Elapsed is the session time at now, frozen while paused
func (c *Clock) Elapsed(now time.Duration) time.Duration {
	if c.paused {
		return c.pausedAt
	}
	return c.observe(now) - c.start + c.offset
}

func (c *Clock) Pause(now time.Duration) {
	if c.paused {
		return
	}
	c.pausedAt = c.Elapsed(now)
	c.paused = true
}

// Resume rebases the epoch so no time passes across the pause
func (c *Clock) Resume(now time.Duration) {
	if !c.paused {
		return
	}
	now = c.observe(now)
	c.start = now - c.pausedAt + c.offset
	c.paused = false
}

func (c *Clock) Paused() bool {
	return c.paused
}
