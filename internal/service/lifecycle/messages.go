package lifecycle

import (
	"fmt"

	"github.com/saferide/saferide/internal/domain/trip"
)

// StatusMessage is the headline copy for a status, as shown on the
// tracking screen.
func StatusMessage(s trip.Status, driverName string) string {
	switch s {
	case trip.StatusRequested:
		return "Looking for nearby drivers..."
	case trip.StatusAccepted:
		return fmt.Sprintf("%s is coming to pick you up", driverName)
	case trip.StatusEnroute:
		return fmt.Sprintf("%s is on the way", driverName)
	case trip.StatusArrived:
		return fmt.Sprintf("%s has arrived at pickup location", driverName)
	case trip.StatusStarted:
		return "Trip in progress"
	case trip.StatusCompleted:
		return "Trip completed successfully"
	case trip.StatusCancelled:
		return "Trip cancelled"
	case trip.StatusPaymentFailed:
		return "Payment failed. Please try again."
	default:
		return "Processing..."
	}
}

// Badge is the short step label for a status.
func Badge(s trip.Status) string {
	switch s {
	case trip.StatusRequested:
		return "Trip Requested"
	case trip.StatusAccepted:
		return "Driver Assigned"
	case trip.StatusEnroute:
		return "Driver En Route"
	case trip.StatusArrived:
		return "Driver Arrived"
	case trip.StatusStarted:
		return "Trip Started"
	case trip.StatusCompleted:
		return "Trip Completed"
	case trip.StatusCancelled:
		return "Cancelled"
	case trip.StatusPaymentFailed:
		return "Payment Failed"
	default:
		return string(s)
	}
}
