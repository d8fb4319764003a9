package stub

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/saferide/saferide/internal/domain/driver"
)

// driverShareRate is the fraction of each fare the driver keeps.
const driverShareRate = 0.8

// profileFor returns the driver profile for a user, creating a blank
// pending one on first access. Callers hold the lock.
func (s *Server) profileFor(userID string) *driver.Driver {
	if d, found := s.drivers[userID]; found {
		return d
	}
	d := &driver.Driver{
		ID:           userID,
		Approval:     driver.ApprovalPending,
		Availability: driver.AvailabilityOffline,
	}
	for _, acct := range s.users {
		if acct.ID == userID {
			d.Name = acct.Name
			d.Phone = acct.Phone
		}
	}
	s.drivers[userID] = d
	return d
}

func (s *Server) handleDriverProfile(c *gin.Context) {
	s.mu.Lock()
	d := *s.profileFor(c.GetString("userID"))
	s.mu.Unlock()

	ok(c, d)
}

func (s *Server) handleUpdateDriverProfile(c *gin.Context) {
	var req driver.Driver
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	s.mu.Lock()
	d := s.profileFor(c.GetString("userID"))
	d.Name = req.Name
	d.Phone = req.Phone
	d.Vehicle = req.Vehicle
	s.mu.Unlock()

	ok(c, d)
}

type uploadDocumentRequest struct {
	DocType  string `json:"docType"`
	FileName string `json:"fileName"`
}

func (s *Server) handleUploadDocument(c *gin.Context) {
	var req uploadDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.DocType == "" || req.FileName == "" {
		fail(c, http.StatusBadRequest, "docType and fileName are required")
		return
	}

	userID := c.GetString("userID")
	s.mu.Lock()
	s.docs[userID] = append(s.docs[userID], req.DocType+":"+req.FileName)
	count := len(s.docs[userID])
	s.mu.Unlock()

	ok(c, gin.H{"documents": count})
}

type availabilityRequest struct {
	Status driver.Availability `json:"status"`
}

func (s *Server) handleDriverStatus(c *gin.Context) {
	var req availabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.Status != driver.AvailabilityOnline && req.Status != driver.AvailabilityOffline {
		fail(c, http.StatusBadRequest, "status must be online or offline")
		return
	}

	s.mu.Lock()
	d := s.profileFor(c.GetString("userID"))
	d.Availability = req.Status
	s.mu.Unlock()

	ok(c, gin.H{"status": req.Status})
}

func (s *Server) handleEarnings(c *gin.Context) {
	userID := c.GetString("userID")

	s.mu.Lock()
	var total float64
	var count int
	for _, t := range s.trips {
		if t.DriverID == userID {
			total += t.Fare * driverShareRate
			count++
		}
	}
	pending := total - s.paidOut[userID]
	s.mu.Unlock()

	if pending < 0 {
		pending = 0
	}
	ok(c, driver.Earnings{TotalKES: total, TripsCount: count, PendingKES: pending})
}

type payoutRequest struct {
	Amount float64 `json:"amount"`
}

func (s *Server) handlePayout(c *gin.Context) {
	var req payoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.Amount <= 0 {
		fail(c, http.StatusBadRequest, "amount must be positive")
		return
	}

	userID := c.GetString("userID")
	s.mu.Lock()
	s.paidOut[userID] += req.Amount
	s.mu.Unlock()

	ok(c, gin.H{"amount": req.Amount, "status": "processing"})
}
