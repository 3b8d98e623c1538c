//go:build !tinygo && !baremetal

package host

import (
	"sync"
	"time"
)

// DefaultTick is one period of the 10 kHz beacon timer.
const DefaultTick = 100 * time.Microsecond

// Clock emulates the 16-bit hardware tick counter on a hosted system.
//
// The counter follows the monotonic clock but advances by at most one per
// read, so it never skips a value even when the process is descheduled; it
// catches up while the scheduler polls. Wraps run the overflow handler, or
// are held pending while the gate is suppressed.
type Clock struct {
	mu         sync.Mutex
	period     time.Duration
	origin     time.Time
	now        func() time.Time
	ticks      uint64
	overflow   func()
	suppressed bool
	pending    int
}

// NewClock returns a clock counting from zero now. A non-positive period
// selects DefaultTick.
func NewClock(period time.Duration) *Clock {
	return newClock(period, time.Now)
}

func newClock(period time.Duration, now func() time.Time) *Clock {
	if period <= 0 {
		period = DefaultTick
	}
	return &Clock{period: period, origin: now(), now: now}
}

// Period returns the tick period.
func (c *Clock) Period() time.Duration { return c.period }

func (c *Clock) ReadCounter() uint16 {
	c.mu.Lock()
	var fire func()
	target := uint64(c.now().Sub(c.origin) / c.period)
	if target > c.ticks {
		c.ticks++
		if uint16(c.ticks) == 0 {
			if c.suppressed {
				c.pending++
			} else {
				fire = c.overflow
			}
		}
	}
	v := uint16(c.ticks)
	c.mu.Unlock()

	if fire != nil {
		fire()
	}
	return v
}

func (c *Clock) OnOverflow(handler func()) {
	c.mu.Lock()
	c.overflow = handler
	c.mu.Unlock()
}

func (c *Clock) Suppress() {
	c.mu.Lock()
	c.suppressed = true
	c.mu.Unlock()
}

func (c *Clock) Release() {
	c.mu.Lock()
	c.suppressed = false
	n := c.pending
	c.pending = 0
	fire := c.overflow
	c.mu.Unlock()

	for ; n > 0 && fire != nil; n-- {
		fire()
	}
}
