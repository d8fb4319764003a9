package lifecycle

import (
	"sync"
	"time"
)

// Countdown is the driver-side accept window: a seconds counter that
// expires once unless stopped first. Built on the same clock primitive as
// the trip screens so teardown semantics match.
type Countdown struct {
	mu        sync.Mutex
	remaining int
	clock     *Clock
}

// NewCountdown starts a countdown of the given length. onExpire fires
// once when the counter hits zero.
func NewCountdown(seconds int, interval time.Duration, onExpire func()) *Countdown {
	c := &Countdown{remaining: seconds}
	c.clock = NewClock(interval, 0,
		func() bool {
			c.mu.Lock()
			defer c.mu.Unlock()
			if c.remaining > 0 {
				c.remaining--
			}
			return c.remaining == 0
		},
		onExpire,
	)
	c.clock.Start()
	return c
}

// Remaining returns the seconds left.
func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Stop cancels the countdown; the accept action was taken.
func (c *Countdown) Stop() {
	c.clock.Stop()
}
