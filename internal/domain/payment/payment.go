package payment

// Status represents payment status
type Status string

const (
	StatusInitiating Status = "initiating"
	StatusPending    Status = "pending"
	StatusPaid       Status = "paid"
	StatusFailed     Status = "failed"

	// StatusTimeout is applied client-side when polling exceeds the
	// overall deadline. The backend never reports it.
	StatusTimeout Status = "timeout"
)

// IsTerminal reports whether polling must stop.
func (s Status) IsTerminal() bool {
	return s == StatusPaid || s == StatusFailed || s == StatusTimeout
}

// Payment represents one M-Pesa charge attempt for a trip. Created by the
// initiate call; mutated only by polling the status endpoint, plus the
// client-side timeout.
type Payment struct {
	ID     string  `json:"paymentId"`
	TripID string  `json:"tripId"`
	Phone  string  `json:"phone"`
	Amount float64 `json:"amount"`
	Status Status  `json:"status"`
}
