package core

import "time"

// maxFrameDelta caps the per-tick delta so a stall (window drag, debugger,
// laptop sleep) cannot inject one huge morph step when frames resume.
const maxFrameDelta = 100 * time.Millisecond

// FrameClock turns wall-clock time into the per-tick delta/elapsed pair the
// engine consumes. Elapsed advances only by the capped deltas handed out, so
// engine-visible time stays continuous across stalls.
type FrameClock struct {
	last    time.Time
	elapsed time.Duration
	cap     time.Duration
}

// NewFrameClock constructs a clock with the default delta cap.
func NewFrameClock() *FrameClock {
	return &FrameClock{cap: maxFrameDelta}
}

// Tick reports the seconds since the previous call (capped) and the total
// engine-visible elapsed seconds. The first call reports a zero delta.
func (c *FrameClock) Tick() (delta, elapsed float64) {
	now := time.Now()
	return c.tickAt(now)
}

func (c *FrameClock) tickAt(now time.Time) (delta, elapsed float64) {
	if c.last.IsZero() {
		c.last = now
		return 0, c.elapsed.Seconds()
	}
	d := now.Sub(c.last)
	c.last = now
	if d < 0 {
		d = 0
	}
	if d > c.cap {
		d = c.cap
	}
	c.elapsed += d
	return d.Seconds(), c.elapsed.Seconds()
}
