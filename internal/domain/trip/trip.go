package trip

import (
	"errors"
	"time"
)

// Status represents trip status
type Status string

const (
	StatusRequested Status = "requested"
	StatusAccepted  Status = "accepted"
	StatusEnroute   Status = "enroute"
	StatusArrived   Status = "arrived"
	StatusStarted   Status = "started"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"

	// StatusPaymentFailed is a client-local end state reached when the
	// payment collaborator reports failed or timeout. It must never be
	// folded into completed.
	StatusPaymentFailed Status = "payment_failed"
)

// CanonicalOrder is the forward progression of a trip. cancelled and
// payment_failed are side exits, not part of the order.
var CanonicalOrder = []Status{
	StatusRequested,
	StatusAccepted,
	StatusEnroute,
	StatusArrived,
	StatusStarted,
	StatusCompleted,
}

// statusAliases maps the divergent vocabularies seen across screens onto
// the canonical set.
var statusAliases = map[string]Status{
	"driving":  StatusStarted,
	"ongoing":  StatusStarted,
	"arriving": StatusEnroute,
}

// Normalize maps a raw status string onto the canonical vocabulary.
func Normalize(raw string) Status {
	if s, ok := statusAliases[raw]; ok {
		return s
	}
	return Status(raw)
}

// Location is a point with a display address
type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

// Trip represents one ride request/fulfillment cycle. The client copy is
// transient and non-authoritative; the backend owns the record.
type Trip struct {
	ID          string    `json:"id"`
	Pickup      Location  `json:"pickup"`
	Dropoff     Location  `json:"dropoff"`
	Status      Status    `json:"status"`
	Fare        float64   `json:"fare"`
	DistanceKM  float64   `json:"distance"`
	DurationMin int       `json:"duration"`
	DriverID    string    `json:"driverId,omitempty"`
	Rating      *int      `json:"rating,omitempty"`
	Feedback    string    `json:"feedback,omitempty"`
	RequestedAt time.Time `json:"requestedAt,omitempty"`
}

// Errors
var (
	ErrTripNotFound  = errors.New("trip not found")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

// IsTerminal reports whether no further status change is accepted.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusPaymentFailed
}

// Next returns the following status in the canonical order. Terminal and
// side-exit states return themselves.
func (s Status) Next() Status {
	for i, st := range CanonicalOrder {
		if st == s && i+1 < len(CanonicalOrder) {
			return CanonicalOrder[i+1]
		}
	}
	return s
}

// CanCancel checks if the trip can still be cancelled by the passenger
func (s Status) CanCancel() bool {
	return s == StatusRequested || s == StatusAccepted || s == StatusEnroute
}

// CanStart checks if the trip can be started by the driver
func (s Status) CanStart() bool {
	return s == StatusArrived
}

// CanComplete checks if the trip can be completed
func (s Status) CanComplete() bool {
	return s == StatusStarted
}

// ValidRating reports whether r is an acceptable trip rating.
func ValidRating(r int) bool {
	return r >= 1 && r <= 5
}
