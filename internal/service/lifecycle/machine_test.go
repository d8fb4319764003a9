package lifecycle

import (
	"testing"

	"github.com/saferide/saferide/internal/domain/trip"
	"github.com/stretchr/testify/assert"
)

// TestMachine_AdvancesCanonicalOrder tests tick-driven progression
func TestMachine_AdvancesCanonicalOrder(t *testing.T) {
	m := NewMachine(MachineConfig{})

	expected := []trip.Status{
		trip.StatusAccepted,
		trip.StatusEnroute,
		trip.StatusArrived,
	}

	assert.Equal(t, trip.StatusRequested, m.Status())
	for _, want := range expected {
		assert.Equal(t, want, m.Advance(), "Advance should follow the canonical order")
	}
}

// TestMachine_AdvanceStopsAtArrived tests that ticks never start a trip
func TestMachine_AdvanceStopsAtArrived(t *testing.T) {
	m := NewMachine(MachineConfig{})
	for i := 0; i < 10; i++ {
		m.Advance()
	}

	assert.Equal(t, trip.StatusArrived, m.Status(), "Ticks must not move past arrived")
}

// TestMachine_ETAFollowsStatus tests per-state ETA installation
func TestMachine_ETAFollowsStatus(t *testing.T) {
	m := NewMachine(MachineConfig{InitialETA: 8})

	m.Advance() // accepted
	assert.Equal(t, 8, m.ETA())
	m.Advance() // enroute
	assert.Equal(t, 6, m.ETA())
	m.Advance() // arrived
	assert.Equal(t, 0, m.ETA())
}

// TestMachine_UserActionTransitions tests start and complete
func TestMachine_UserActionTransitions(t *testing.T) {
	m := NewMachine(MachineConfig{})

	_, ok := m.Start()
	assert.False(t, ok, "Cannot start before arrival")

	for i := 0; i < 3; i++ {
		m.Advance()
	}

	st, ok := m.Start()
	assert.True(t, ok)
	assert.Equal(t, trip.StatusStarted, st)

	st, ok = m.Complete()
	assert.True(t, ok)
	assert.Equal(t, trip.StatusCompleted, st)
	assert.Equal(t, 100, m.Progress())
}

// TestMachine_CancelWindow tests which states allow cancellation
func TestMachine_CancelWindow(t *testing.T) {
	tests := []struct {
		name      string
		advances  int
		canCancel bool
	}{
		{"requested", 0, true},
		{"accepted", 1, true},
		{"enroute", 2, true},
		{"arrived", 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine(MachineConfig{})
			for i := 0; i < tt.advances; i++ {
				m.Advance()
			}

			_, ok := m.Cancel()
			assert.Equal(t, tt.canCancel, ok)
		})
	}
}

// TestMachine_TerminalStatesAbsorb tests that completed and cancelled
// ignore every further transition
func TestMachine_TerminalStatesAbsorb(t *testing.T) {
	t.Run("completed", func(t *testing.T) {
		m := NewMachine(MachineConfig{})
		for i := 0; i < 3; i++ {
			m.Advance()
		}
		m.Start()
		m.Complete()

		eta, progress := m.ETA(), m.Progress()

		assert.Equal(t, trip.StatusCompleted, m.Advance())
		_, ok := m.Start()
		assert.False(t, ok)
		_, ok = m.Cancel()
		assert.False(t, ok)
		assert.Equal(t, eta, m.ETA(), "ETA unchanged after terminal state")
		assert.Equal(t, progress, m.Progress(), "Progress unchanged after terminal state")
	})

	t.Run("cancelled", func(t *testing.T) {
		m := NewMachine(MachineConfig{})
		m.Cancel()

		assert.Equal(t, trip.StatusCancelled, m.Advance())
		_, ok := m.Start()
		assert.False(t, ok)
		_, ok = m.Complete()
		assert.False(t, ok)
	})
}

// TestMachine_CountdownETA tests the minute countdown variant
func TestMachine_CountdownETA(t *testing.T) {
	m := NewMachine(MachineConfig{InitialETA: 3})
	m.Advance() // accepted, ETA preset 8
	m.Advance() // enroute, ETA preset 6

	for i := 5; i >= 0; i-- {
		assert.Equal(t, i, m.CountdownETA())
	}
	assert.Equal(t, trip.StatusArrived, m.Status(), "Hitting zero enroute means arrival")

	// Floors at zero, never negative
	assert.Equal(t, 0, m.CountdownETA())
}

// TestMachine_ProgressClampsAt100 tests the in-trip progress counter
func TestMachine_ProgressClampsAt100(t *testing.T) {
	m := NewMachine(MachineConfig{})
	assert.Equal(t, 0, m.AdvanceProgress(10), "No progress before the trip starts")

	for i := 0; i < 3; i++ {
		m.Advance()
	}
	m.Start()

	for i := 0; i < 20; i++ {
		m.AdvanceProgress(15)
	}
	assert.Equal(t, 100, m.Progress(), "Progress must ceiling at 100")
	assert.Equal(t, trip.StatusCompleted, m.Status(), "Full progress completes the trip")
}

// TestMachine_FailPayment tests routing of payment failure signals
func TestMachine_FailPayment(t *testing.T) {
	m := NewMachine(MachineConfig{})
	for i := 0; i < 3; i++ {
		m.Advance()
	}
	m.Start()
	m.Complete()

	st, ok := m.FailPayment()
	assert.True(t, ok, "A completed trip accepts the payment failure signal")
	assert.Equal(t, trip.StatusPaymentFailed, st)

	_, ok = m.FailPayment()
	assert.False(t, ok, "payment_failed absorbs repeats")

	cancelled := NewMachine(MachineConfig{})
	cancelled.Cancel()
	_, ok = cancelled.FailPayment()
	assert.False(t, ok, "A cancelled trip ignores payment signals")
}
