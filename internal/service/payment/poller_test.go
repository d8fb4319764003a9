package payment

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/saferide/saferide/internal/domain/payment"
	"github.com/saferide/saferide/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedChecker replays a fixed status sequence, then repeats the last
// entry forever.
type scriptedChecker struct {
	mu     sync.Mutex
	script []payment.Status
	errs   []error
	calls  int
}

func (c *scriptedChecker) PaymentStatus(_ context.Context, _ string) (payment.Status, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.calls
	c.calls++
	if i < len(c.errs) && c.errs[i] != nil {
		return "", c.errs[i]
	}
	if i >= len(c.script) {
		i = len(c.script) - 1
	}
	return c.script[i], nil
}

func (c *scriptedChecker) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func testConfig() Config {
	return Config{
		Interval: 10 * time.Millisecond,
		Timeout:  time.Second,
	}
}

func waitOutcome(t *testing.T, outcomes chan payment.Status) payment.Status {
	t.Helper()
	select {
	case st := <-outcomes:
		return st
	case <-time.After(5 * time.Second):
		require.Fail(t, "no payment outcome")
		return ""
	}
}

// TestPoller_PendingThenPaid tests the happy path
func TestPoller_PendingThenPaid(t *testing.T) {
	checker := &scriptedChecker{script: []payment.Status{
		payment.StatusPending,
		payment.StatusPending,
		payment.StatusPaid,
	}}
	poller := NewPoller(checker, testConfig(), logger.Nop())

	var count int32
	outcomes := make(chan payment.Status, 4)
	poll := poller.Start("pay_1", func(st payment.Status) {
		atomic.AddInt32(&count, 1)
		outcomes <- st
	})
	defer poll.Stop()

	assert.Equal(t, payment.StatusPaid, waitOutcome(t, outcomes))

	// Polling must stop with the outcome.
	settled := checker.callCount()
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, settled, checker.callCount(), "No polls after a terminal status")
	assert.Equal(t, int32(1), atomic.LoadInt32(&count), "Outcome delivered exactly once")
}

// TestPoller_Failed tests the declined path
func TestPoller_Failed(t *testing.T) {
	checker := &scriptedChecker{script: []payment.Status{
		payment.StatusPending,
		payment.StatusFailed,
	}}
	poller := NewPoller(checker, testConfig(), logger.Nop())

	outcomes := make(chan payment.Status, 1)
	poll := poller.Start("pay_2", func(st payment.Status) { outcomes <- st })
	defer poll.Stop()

	assert.Equal(t, payment.StatusFailed, waitOutcome(t, outcomes))
}

// TestPoller_Timeout tests the overall deadline
func TestPoller_Timeout(t *testing.T) {
	checker := &scriptedChecker{script: []payment.Status{payment.StatusPending}}
	poller := NewPoller(checker, Config{
		Interval: 10 * time.Millisecond,
		Timeout:  80 * time.Millisecond,
	}, logger.Nop())

	var count int32
	outcomes := make(chan payment.Status, 4)
	poll := poller.Start("pay_3", func(st payment.Status) {
		atomic.AddInt32(&count, 1)
		outcomes <- st
	})
	defer poll.Stop()

	assert.Equal(t, payment.StatusTimeout, waitOutcome(t, outcomes))

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&count), "Timeout delivered exactly once")
}

// TestPoller_CheckErrorsAreSkipped tests transient failures
func TestPoller_CheckErrorsAreSkipped(t *testing.T) {
	checker := &scriptedChecker{
		script: []payment.Status{"", "", payment.StatusPaid},
		errs:   []error{errors.New("boom"), errors.New("boom")},
	}
	poller := NewPoller(checker, testConfig(), logger.Nop())

	outcomes := make(chan payment.Status, 1)
	poll := poller.Start("pay_4", func(st payment.Status) { outcomes <- st })
	defer poll.Stop()

	assert.Equal(t, payment.StatusPaid, waitOutcome(t, outcomes), "Errors do not end the poll")
}

// TestPoller_StopSuppressesOutcome tests teardown
func TestPoller_StopSuppressesOutcome(t *testing.T) {
	checker := &scriptedChecker{script: []payment.Status{payment.StatusPending}}
	poller := NewPoller(checker, testConfig(), logger.Nop())

	var count int32
	poll := poller.Start("pay_5", func(payment.Status) { atomic.AddInt32(&count, 1) })
	poll.Stop()

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&count), "No outcome after Stop")

	// Stop is idempotent
	poll.Stop()
}
