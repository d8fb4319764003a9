package stub

import (
	"math"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/saferide/saferide/internal/domain/driver"
	"github.com/saferide/saferide/internal/domain/trip"
	"github.com/saferide/saferide/pkg/logger"
)

type createTripRequest struct {
	Pickup        trip.Location `json:"pickup"`
	Dropoff       trip.Location `json:"dropoff"`
	NotifyDrivers bool          `json:"notifyDrivers"`
}

type rateTripRequest struct {
	Rating   int    `json:"rating"`
	Feedback string `json:"feedback"`
}

func (s *Server) handleCreateTrip(c *gin.Context) {
	var req createTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.Pickup.Address == "" || req.Dropoff.Address == "" {
		fail(c, http.StatusBadRequest, "pickup and dropoff are required")
		return
	}

	distance := haversineKM(req.Pickup.Lat, req.Pickup.Lng, req.Dropoff.Lat, req.Dropoff.Lng)
	if distance < 0.1 {
		// Addresses without coordinates still get a plausible quote.
		distance = 5.0
	}
	estimate := s.pricing.EstimateTrip(distance)

	t := &trip.Trip{
		ID:          uuid.NewString(),
		Pickup:      req.Pickup,
		Dropoff:     req.Dropoff,
		Status:      trip.StatusRequested,
		Fare:        estimate.FareKES,
		DistanceKM:  estimate.DistanceKM,
		DurationMin: estimate.DurationMin,
		RequestedAt: time.Now(),
	}

	s.mu.Lock()
	if d := s.firstAvailableDriver(); d != nil {
		t.DriverID = d.ID
	}
	s.trips[t.ID] = t
	s.mu.Unlock()

	s.log.Info("stub: trip created",
		logger.String("trip_id", t.ID),
		logger.Float64("fare", t.Fare),
		logger.Bool("notify_drivers", req.NotifyDrivers),
	)
	ok(c, t)
}

func (s *Server) handleListTrips(c *gin.Context) {
	status := trip.Normalize(c.Query("status"))
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	s.mu.Lock()
	trips := make([]trip.Trip, 0, len(s.trips))
	for _, t := range s.trips {
		if c.Query("status") != "" && t.Status != status {
			continue
		}
		trips = append(trips, *t)
	}
	s.mu.Unlock()

	sort.Slice(trips, func(i, j int) bool {
		return trips[i].RequestedAt.After(trips[j].RequestedAt)
	})
	if limit > 0 && len(trips) > limit {
		trips = trips[:limit]
	}
	ok(c, trips)
}

func (s *Server) handleAvailableTrips(c *gin.Context) {
	s.mu.Lock()
	trips := make([]trip.Trip, 0)
	for _, t := range s.trips {
		if t.Status == trip.StatusRequested {
			trips = append(trips, *t)
		}
	}
	s.mu.Unlock()

	ok(c, trips)
}

func (s *Server) handleRateTrip(c *gin.Context) {
	var req rateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	if !trip.ValidRating(req.Rating) {
		fail(c, http.StatusBadRequest, "rating must be between 1 and 5")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, found := s.trips[c.Param("id")]
	if !found {
		fail(c, http.StatusNotFound, "trip not found")
		return
	}

	rating := req.Rating
	t.Rating = &rating
	t.Feedback = req.Feedback
	ok(c, t)
}

// firstAvailableDriver picks a deterministic assignment; callers hold the lock.
func (s *Server) firstAvailableDriver() *driver.Driver {
	ids := make([]string, 0, len(s.drivers))
	for id := range s.drivers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		d := s.drivers[id]
		if d.Approval == driver.ApprovalApproved && d.Availability == driver.AvailabilityOnline {
			return d
		}
	}
	return nil
}

// haversineKM is the great-circle distance between two points.
func haversineKM(lat1, lng1, lat2, lng2 float64) float64 {
	const earthRadiusKM = 6371.0

	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	return earthRadiusKM * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
