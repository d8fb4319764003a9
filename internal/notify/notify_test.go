package notify

import (
	"testing"

	"github.com/saferide/saferide/pkg/logger"
	"github.com/stretchr/testify/assert"
)

// TestSpy_RecordsByKind tests the test double itself
func TestSpy_RecordsByKind(t *testing.T) {
	spy := &Spy{}

	spy.Success("payment completed")
	spy.Error("payment failed")
	spy.Error("timeout")
	spy.Info("stk push sent")

	assert.Equal(t, []string{"payment completed"}, spy.Successes)
	assert.Equal(t, []string{"payment failed", "timeout"}, spy.Errors)
	assert.Equal(t, []string{"stk push sent"}, spy.Infos)
}

// TestLogNotifier_DoesNotPanic tests the logger-backed sink
func TestLogNotifier_DoesNotPanic(t *testing.T) {
	n := NewLogNotifier(logger.Nop())

	assert.NotPanics(t, func() {
		n.Success("ok")
		n.Error("bad")
		n.Info("fyi")
	})
}
