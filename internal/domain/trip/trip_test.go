package trip

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestStatus_Next tests canonical order traversal
func TestStatus_Next(t *testing.T) {
	tests := []struct {
		from Status
		want Status
	}{
		{StatusRequested, StatusAccepted},
		{StatusAccepted, StatusEnroute},
		{StatusEnroute, StatusArrived},
		{StatusArrived, StatusStarted},
		{StatusStarted, StatusCompleted},
		{StatusCompleted, StatusCompleted},
		{StatusCancelled, StatusCancelled},
	}

	for _, tt := range tests {
		t.Run(string(tt.from), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.Next())
		})
	}
}

// TestStatus_Guards tests the transition guards
func TestStatus_Guards(t *testing.T) {
	assert.True(t, StatusRequested.CanCancel())
	assert.True(t, StatusEnroute.CanCancel())
	assert.False(t, StatusArrived.CanCancel())
	assert.False(t, StatusStarted.CanCancel())

	assert.True(t, StatusArrived.CanStart())
	assert.False(t, StatusEnroute.CanStart())

	assert.True(t, StatusStarted.CanComplete())
	assert.False(t, StatusArrived.CanComplete())
}

// TestStatus_IsTerminal tests terminal detection
func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusPaymentFailed.IsTerminal())
	assert.False(t, StatusRequested.IsTerminal())
	assert.False(t, StatusStarted.IsTerminal())
}

// TestNormalize tests legacy vocabulary mapping
func TestNormalize(t *testing.T) {
	assert.Equal(t, StatusStarted, Normalize("driving"))
	assert.Equal(t, StatusStarted, Normalize("ongoing"))
	assert.Equal(t, StatusEnroute, Normalize("arriving"))
	assert.Equal(t, StatusCompleted, Normalize("completed"))
	assert.Equal(t, Status("weird"), Normalize("weird"))
}

// TestValidRating tests rating bounds
func TestValidRating(t *testing.T) {
	assert.False(t, ValidRating(0))
	assert.False(t, ValidRating(-1))
	assert.False(t, ValidRating(6))
	for r := 1; r <= 5; r++ {
		assert.True(t, ValidRating(r))
	}
}
