package stub

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/saferide/saferide/internal/domain/driver"
	"github.com/saferide/saferide/internal/domain/trip"
)

func (s *Server) handleAdminStats(c *gin.Context) {
	s.mu.Lock()
	var active int
	var revenue float64
	for _, t := range s.trips {
		if !t.Status.IsTerminal() {
			active++
		}
		if t.Status == trip.StatusCompleted {
			revenue += t.Fare
		}
	}
	stats := gin.H{
		"totalTrips":   len(s.trips),
		"activeTrips":  active,
		"totalDrivers": len(s.drivers),
		"revenue":      revenue,
	}
	s.mu.Unlock()

	ok(c, stats)
}

func (s *Server) handleAdminDrivers(c *gin.Context) {
	s.mu.Lock()
	drivers := make([]driver.Driver, 0, len(s.drivers))
	for _, d := range s.drivers {
		drivers = append(drivers, *d)
	}
	s.mu.Unlock()

	sort.Slice(drivers, func(i, j int) bool { return drivers[i].ID < drivers[j].ID })
	ok(c, drivers)
}

func (s *Server) handleAdminTrips(c *gin.Context) {
	s.mu.Lock()
	trips := make([]trip.Trip, 0, len(s.trips))
	for _, t := range s.trips {
		trips = append(trips, *t)
	}
	s.mu.Unlock()

	sort.Slice(trips, func(i, j int) bool {
		return trips[i].RequestedAt.After(trips[j].RequestedAt)
	})
	ok(c, trips)
}

// handleDriverAction covers approve, reject and suspend. Reject and
// suspend stay separate verbs with separate resulting states.
func (s *Server) handleDriverAction(action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()

		d, found := s.drivers[c.Param("id")]
		if !found {
			fail(c, http.StatusNotFound, "driver not found")
			return
		}

		switch action {
		case "approve":
			if d.Approval != driver.ApprovalPending {
				fail(c, http.StatusConflict, "driver is not pending approval")
				return
			}
			d.Approval = driver.ApprovalApproved
		case "reject":
			if d.Approval != driver.ApprovalPending {
				fail(c, http.StatusConflict, "driver is not pending approval")
				return
			}
			d.Approval = driver.ApprovalRejected
		case "suspend":
			if d.Approval != driver.ApprovalApproved {
				fail(c, http.StatusConflict, "driver is not approved")
				return
			}
			d.Approval = driver.ApprovalSuspended
		}

		ok(c, d)
	}
}
