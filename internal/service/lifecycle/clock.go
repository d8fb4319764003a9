package lifecycle

import (
	"sync"
	"time"
)

// TickFunc advances one step of a timed sequence. It returns true once
// the sequence has reached its last state.
type TickFunc func() bool

// Clock drives a finite sequence on a fixed cadence. The first tick fires
// after one full interval. When the sequence reports done the clock stops
// itself and, after the dwell delay, invokes onDone exactly once.
//
// Stop is mandatory on teardown and is safe to call at any time, from any
// goroutine, and more than once. A tick or a pending onDone after Stop is
// a no-op.
type Clock struct {
	interval time.Duration
	dwell    time.Duration
	tick     TickFunc
	onDone   func()

	mu      sync.Mutex
	stopped bool
	done    chan struct{}
	dwellT  *time.Timer
}

// NewClock creates a clock. onDone may be nil.
func NewClock(interval, dwell time.Duration, tick TickFunc, onDone func()) *Clock {
	return &Clock{
		interval: interval,
		dwell:    dwell,
		tick:     tick,
		onDone:   onDone,
		done:     make(chan struct{}),
	}
}

// Start begins ticking. Calling Start on a stopped clock does nothing.
func (c *Clock) Start() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	go c.run()
}

func (c *Clock) run() {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			if c.fireTick() {
				c.scheduleDone()
				return
			}
		}
	}
}

// fireTick runs the tick unless the clock was stopped concurrently.
func (c *Clock) fireTick() bool {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return true
	}
	c.mu.Unlock()
	return c.tick()
}

func (c *Clock) scheduleDone() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped || c.onDone == nil {
		return
	}
	c.dwellT = time.AfterFunc(c.dwell, func() {
		c.mu.Lock()
		if c.stopped {
			c.mu.Unlock()
			return
		}
		c.mu.Unlock()
		c.onDone()
	})
}

// Stop cancels the ticker and any pending completion callback.
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}
	c.stopped = true
	close(c.done)
	if c.dwellT != nil {
		c.dwellT.Stop()
	}
}
