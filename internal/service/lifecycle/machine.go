package lifecycle

import (
	"sync"

	"github.com/saferide/saferide/internal/domain/trip"
)

// MachineConfig holds the counters the machine starts from. ETAByStatus
// carries the displayed ETA installed when a status is entered; statuses
// absent from the map leave the counter untouched.
type MachineConfig struct {
	InitialETA  int
	ETAByStatus map[trip.Status]int
}

// DefaultETAByStatus mirrors the approach sequence shown to passengers.
func DefaultETAByStatus() map[trip.Status]int {
	return map[trip.Status]int{
		trip.StatusAccepted: 8,
		trip.StatusEnroute:  6,
		trip.StatusArrived:  0,
	}
}

// Machine is the consolidated trip lifecycle state machine. One instance
// backs every trip-facing screen; it replaces the per-screen copies that
// each kept their own status vocabulary.
//
// Terminal states absorb: every transition on a terminal machine is a
// no-op that reports the unchanged status. Callers never get an error for
// a late tick.
type Machine struct {
	mu       sync.Mutex
	status   trip.Status
	eta      int
	progress int
	etaBy    map[trip.Status]int
}

// NewMachine creates a machine in the requested state.
func NewMachine(cfg MachineConfig) *Machine {
	etaBy := cfg.ETAByStatus
	if etaBy == nil {
		etaBy = DefaultETAByStatus()
	}
	return &Machine{
		status: trip.StatusRequested,
		eta:    cfg.InitialETA,
		etaBy:  etaBy,
	}
}

// Status returns the current status.
func (m *Machine) Status() trip.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// ETA returns the displayed ETA in minutes.
func (m *Machine) ETA() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eta
}

// Progress returns the trip progress percent.
func (m *Machine) Progress() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.progress
}

// Advance steps one state forward along the clock-driven segment
// (requested through arrived). arrived and later states are untouched:
// started and completed are user-action transitions, not tick ones.
func (m *Machine) Advance() trip.Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.status {
	case trip.StatusRequested, trip.StatusAccepted, trip.StatusEnroute:
		m.enter(m.status.Next())
	}
	return m.status
}

// Start fires the driver's "start trip" action (arrived -> started).
func (m *Machine) Start() (trip.Status, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.status.CanStart() {
		return m.status, false
	}
	m.enter(trip.StatusStarted)
	return m.status, true
}

// Complete ends the trip (started -> completed).
func (m *Machine) Complete() (trip.Status, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.status.CanComplete() {
		return m.status, false
	}
	m.enter(trip.StatusCompleted)
	m.progress = 100
	return m.status, true
}

// Cancel side-exits the trip. Allowed from requested, accepted and
// enroute only; anything later is a no-op.
func (m *Machine) Cancel() (trip.Status, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.status.CanCancel() {
		return m.status, false
	}
	m.enter(trip.StatusCancelled)
	return m.status, true
}

// FailPayment routes a failed or timed-out payment signal to the distinct
// payment_failed end state. The signal arrives from the payment
// collaborator during or after completion; a cancelled trip ignores it.
func (m *Machine) FailPayment() (trip.Status, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.status == trip.StatusCancelled || m.status == trip.StatusPaymentFailed {
		return m.status, false
	}
	m.status = trip.StatusPaymentFailed
	return m.status, true
}

// CountdownETA decrements the displayed ETA by one minute, flooring at
// zero. Hitting zero while enroute means the driver arrived.
func (m *Machine) CountdownETA() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.status.IsTerminal() {
		return m.eta
	}
	if m.eta > 0 {
		m.eta--
	}
	if m.eta == 0 && m.status == trip.StatusEnroute {
		m.enter(trip.StatusArrived)
	}
	return m.eta
}

// AdvanceProgress adds step percent to the in-trip progress counter,
// ceilinged at 100. Reaching 100 completes the trip. Only a started trip
// makes progress.
func (m *Machine) AdvanceProgress(step int) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.status != trip.StatusStarted || step <= 0 {
		return m.progress
	}
	m.progress += step
	if m.progress >= 100 {
		m.progress = 100
		m.enter(trip.StatusCompleted)
	}
	return m.progress
}

// enter applies a status change and its per-state ETA. Callers hold the lock.
func (m *Machine) enter(next trip.Status) {
	if m.status.IsTerminal() {
		return
	}
	m.status = next
	if eta, ok := m.etaBy[next]; ok {
		m.eta = eta
	}
}
