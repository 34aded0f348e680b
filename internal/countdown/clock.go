// internal/countdown/clock.go
//
// Clock is the thinking-time countdown used by the timer workflow. It is
// plain state; time only moves when Tick is called with the clock's current
// epoch. See ticker.go for how ticks are scheduled.

package countdown

import (
	"fmt"
	"sync/atomic"
)

// DefaultDuration is five minutes of one-second ticks.
const DefaultDuration = 5 * 60

var epochs atomic.Uint64

// nextEpoch hands out process-unique epochs so a tick from one clock can
// never be mistaken for a tick of another.
func nextEpoch() uint64 {
	return epochs.Add(1)
}

// Clock counts down from its duration to zero.
type Clock struct {
	duration  int
	remaining int
	running   bool
	expired   bool
	epoch     uint64 // zero while no tick source is live
}

// New returns a stopped clock. Non-positive durations use DefaultDuration.
func New(duration int) *Clock {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Clock{duration: duration, remaining: duration}
}

// Start begins counting. It is a no-op while running or after expiry.
func (c *Clock) Start() bool {
	if c.running || c.expired || c.remaining <= 0 {
		return false
	}
	c.running = true
	c.epoch = nextEpoch()
	return true
}

// Resume is Start under the name the pause button uses.
func (c *Clock) Resume() bool {
	return c.Start()
}

// Pause halts counting and keeps the remaining time.
func (c *Clock) Pause() {
	c.halt()
}

// Stop halts counting when the owner leaves the thinking phase.
func (c *Clock) Stop() {
	c.halt()
}

// Toggle pauses a running clock or resumes a paused one.
func (c *Clock) Toggle() bool {
	if c.running {
		c.Pause()
		return false
	}
	return c.Resume()
}

// Reset restores the full duration and clears expiry.
func (c *Clock) Reset() {
	c.halt()
	c.remaining = c.duration
	c.expired = false
}

func (c *Clock) halt() {
	c.running = false
	c.epoch = 0
}

// Tick advances the clock by one unit if epoch matches the live tick source.
// It returns true exactly once, on the tick that reaches zero.
func (c *Clock) Tick(epoch uint64) bool {
	if !c.running || epoch == 0 || epoch != c.epoch {
		return false
	}
	if c.remaining > 0 {
		c.remaining--
	}
	if c.remaining > 0 || c.expired {
		return false
	}
	c.expired = true
	c.halt()
	return true
}

// Epoch identifies the live tick source, or zero when none is live.
func (c *Clock) Epoch() uint64 { return c.epoch }

// Duration returns the configured countdown length.
func (c *Clock) Duration() int { return c.duration }

// Remaining returns the ticks left.
func (c *Clock) Remaining() int { return c.remaining }

// Running reports whether ticks are being accepted.
func (c *Clock) Running() bool { return c.running }

// Expired reports whether the countdown reached zero.
func (c *Clock) Expired() bool { return c.expired }

// Progress returns the elapsed share of the duration as a percentage.
func (c *Clock) Progress() float64 {
	return float64(c.duration-c.remaining) / float64(c.duration) * 100
}

// Format renders seconds as m:ss.
func Format(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
