package lifecycle

import (
	"sync"
	"time"

	"github.com/saferide/saferide/internal/domain/trip"
	"github.com/saferide/saferide/pkg/logger"
)

// PresenterConfig parameterizes one trip-facing screen.
type PresenterConfig struct {
	TickInterval  time.Duration
	TerminalDwell time.Duration
	DriverName    string
	// ProgressStep is the percent added per tick once the trip has
	// started.
	ProgressStep int
	Machine      MachineConfig
}

// Callbacks are the parent flow controller's hooks. All are optional.
type Callbacks struct {
	// OnArrived fires once when the driver reaches the pickup point.
	OnArrived func()
	// OnTerminal fires exactly once, TerminalDwell after the trip
	// reaches completed, cancelled or payment_failed.
	OnTerminal func(trip.Status)
}

// Presenter binds the lifecycle machine to a status clock and owns every
// timer it spawns. It is the single reusable replacement for the
// tracking, driver-assigned, live-tracking and trip-request screens.
type Presenter struct {
	cfg     PresenterConfig
	cb      Callbacks
	machine *Machine
	log     *logger.Logger

	mu       sync.Mutex
	closed   bool
	fired    bool
	clocks   []*Clock
	terminal *time.Timer
}

// NewPresenter creates a presenter around a fresh machine.
func NewPresenter(cfg PresenterConfig, cb Callbacks, log *logger.Logger) *Presenter {
	if cfg.ProgressStep <= 0 {
		cfg.ProgressStep = 10
	}
	return &Presenter{
		cfg:     cfg,
		cb:      cb,
		machine: NewMachine(cfg.Machine),
		log:     log,
	}
}

// Machine exposes the underlying state machine for queries.
func (p *Presenter) Machine() *Machine { return p.machine }

// Status returns the current trip status.
func (p *Presenter) Status() trip.Status { return p.machine.Status() }

// Message returns the headline copy for the current status.
func (p *Presenter) Message() string {
	return StatusMessage(p.machine.Status(), p.cfg.DriverName)
}

// Track starts the approach clock: each tick advances the machine until
// the driver has arrived, then OnArrived fires after the dwell delay.
func (p *Presenter) Track() {
	clock := NewClock(p.cfg.TickInterval, p.cfg.TerminalDwell,
		func() bool {
			st := p.machine.Advance()
			p.log.Debug("trip status advanced",
				logger.String("status", string(st)),
				logger.Int("eta_minutes", p.machine.ETA()),
			)
			return st == trip.StatusArrived || st.IsTerminal()
		},
		func() {
			st := p.machine.Status()
			if st == trip.StatusArrived {
				if p.cb.OnArrived != nil {
					p.cb.OnArrived()
				}
				return
			}
			p.fireTerminal(st)
		},
	)
	p.addClock(clock)
	clock.Start()
}

// StartTrip fires the driver's start action and begins the in-trip
// progress clock. Returns false if the trip is not at the pickup point.
func (p *Presenter) StartTrip() bool {
	if _, ok := p.machine.Start(); !ok {
		return false
	}

	clock := NewClock(p.cfg.TickInterval, p.cfg.TerminalDwell,
		func() bool {
			pct := p.machine.AdvanceProgress(p.cfg.ProgressStep)
			p.log.Debug("trip progress", logger.Int("percent", pct))
			return p.machine.Status().IsTerminal()
		},
		func() {
			p.fireTerminal(p.machine.Status())
		},
	)
	p.addClock(clock)
	clock.Start()
	return true
}

// CompleteTrip ends the trip by user action.
func (p *Presenter) CompleteTrip() bool {
	st, ok := p.machine.Complete()
	if !ok {
		return false
	}
	p.stopClocks()
	p.scheduleTerminal(st)
	return true
}

// Cancel side-exits the trip. A no-op once the driver has arrived.
func (p *Presenter) Cancel() bool {
	st, ok := p.machine.Cancel()
	if !ok {
		return false
	}
	p.stopClocks()
	p.scheduleTerminal(st)
	return true
}

// FailPayment routes a terminal payment failure into the lifecycle.
func (p *Presenter) FailPayment() {
	st, ok := p.machine.FailPayment()
	if !ok {
		return
	}
	p.stopClocks()
	p.scheduleTerminal(st)
}

// Close tears the presenter down, cancelling every timer. Safe to call
// more than once and from any goroutine.
func (p *Presenter) Close() {
	p.mu.Lock()
	p.closed = true
	clocks := p.clocks
	p.clocks = nil
	if p.terminal != nil {
		p.terminal.Stop()
		p.terminal = nil
	}
	p.mu.Unlock()

	for _, c := range clocks {
		c.Stop()
	}
}

func (p *Presenter) addClock(c *Clock) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		c.Stop()
		return
	}
	p.clocks = append(p.clocks, c)
}

func (p *Presenter) stopClocks() {
	p.mu.Lock()
	clocks := p.clocks
	p.clocks = nil
	p.mu.Unlock()

	for _, c := range clocks {
		c.Stop()
	}
}

// scheduleTerminal arms the dwell timer for a user-action terminal state.
func (p *Presenter) scheduleTerminal(st trip.Status) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || p.fired {
		return
	}
	p.terminal = time.AfterFunc(p.cfg.TerminalDwell, func() {
		p.fireTerminal(st)
	})
}

// fireTerminal delivers OnTerminal at most once, never after Close.
func (p *Presenter) fireTerminal(st trip.Status) {
	p.mu.Lock()
	if p.closed || p.fired {
		p.mu.Unlock()
		return
	}
	p.fired = true
	p.mu.Unlock()

	if p.cb.OnTerminal != nil {
		p.cb.OnTerminal(st)
	}
}
