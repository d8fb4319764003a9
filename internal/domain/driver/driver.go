package driver

// ApprovalStatus is the admin-controlled account state
type ApprovalStatus string

const (
	ApprovalPending   ApprovalStatus = "pending"
	ApprovalApproved  ApprovalStatus = "approved"
	ApprovalRejected  ApprovalStatus = "rejected"
	ApprovalSuspended ApprovalStatus = "suspended"
)

// Availability is the driver-controlled duty state
type Availability string

const (
	AvailabilityOnline  Availability = "online"
	AvailabilityOffline Availability = "offline"
)

// Vehicle describes the car shown to the passenger
type Vehicle struct {
	Make  string `json:"make"`
	Model string `json:"model"`
	Color string `json:"color"`
	Plate string `json:"plate"`
}

// Driver is a read-only projection supplied by the backend. The client
// never mutates it except through admin approve/reject/suspend actions
// forwarded verbatim.
type Driver struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Phone        string         `json:"phone"`
	Rating       float64        `json:"rating"`
	TotalTrips   int            `json:"totalTrips"`
	Vehicle      Vehicle        `json:"vehicle"`
	Approval     ApprovalStatus `json:"approval,omitempty"`
	Availability Availability   `json:"availability,omitempty"`
}

// Earnings is the driver earnings summary
type Earnings struct {
	TotalKES   float64 `json:"total"`
	TripsCount int     `json:"trips"`
	PendingKES float64 `json:"pending"`
}
