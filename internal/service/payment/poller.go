package payment

import (
	"context"
	"sync"
	"time"

	"github.com/saferide/saferide/internal/domain/payment"
	"github.com/saferide/saferide/pkg/logger"
)

// StatusChecker queries the backend for a payment's current status.
type StatusChecker interface {
	PaymentStatus(ctx context.Context, paymentID string) (payment.Status, error)
}

// Config holds polling cadence and the overall deadline.
type Config struct {
	Interval time.Duration
	Timeout  time.Duration
}

// DefaultConfig matches the STK-push flow: check every 5 seconds, give up
// after 3 minutes.
func DefaultConfig() Config {
	return Config{
		Interval: 5 * time.Second,
		Timeout:  3 * time.Minute,
	}
}

// Poller drives payment status polling. Each Start call returns a Poll
// that owns its interval ticker and deadline timer as one unit: whichever
// fires a terminal outcome cancels both, so a stale timeout can never
// follow a success.
type Poller struct {
	checker StatusChecker
	cfg     Config
	log     *logger.Logger
}

// NewPoller creates a new poller.
func NewPoller(checker StatusChecker, cfg Config, log *logger.Logger) *Poller {
	return &Poller{checker: checker, cfg: cfg, log: log}
}

// Poll is one in-flight polling loop.
type Poll struct {
	done chan struct{}
	once sync.Once
}

// Start polls the payment until paid, failed or the deadline. onOutcome
// receives exactly one terminal status. Stop the returned Poll on
// teardown; after Stop no outcome is delivered.
func (p *Poller) Start(paymentID string, onOutcome func(payment.Status)) *Poll {
	pl := &Poll{done: make(chan struct{})}
	go p.run(pl, paymentID, onOutcome)
	return pl
}

func (p *Poller) run(pl *Poll, paymentID string, onOutcome func(payment.Status)) {
	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()
	deadline := time.NewTimer(p.cfg.Timeout)
	defer deadline.Stop()

	for {
		select {
		case <-pl.done:
			return

		case <-deadline.C:
			p.log.Warn("payment polling timed out",
				logger.String("payment_id", paymentID),
				logger.Duration("timeout", p.cfg.Timeout),
			)
			pl.emit(payment.StatusTimeout, onOutcome)
			return

		case <-ticker.C:
			status, err := p.check(paymentID)
			if err != nil {
				// Transient check failures are skipped; the next
				// tick or the deadline settles the payment.
				p.log.Warn("payment status check failed",
					logger.String("payment_id", paymentID),
					logger.Err(err),
				)
				continue
			}
			if status.IsTerminal() {
				pl.emit(status, onOutcome)
				return
			}
		}
	}
}

func (p *Poller) check(paymentID string) (payment.Status, error) {
	ctx, cancel := context.WithTimeout(context.Background(), p.cfg.Interval)
	defer cancel()
	return p.checker.PaymentStatus(ctx, paymentID)
}

// emit delivers the outcome unless the poll was stopped first.
func (pl *Poll) emit(status payment.Status, onOutcome func(payment.Status)) {
	pl.once.Do(func() {
		if onOutcome != nil {
			onOutcome(status)
		}
	})
}

// Stop cancels the poll. Safe to call more than once.
func (pl *Poll) Stop() {
	pl.once.Do(func() {
		close(pl.done)
	})
}
