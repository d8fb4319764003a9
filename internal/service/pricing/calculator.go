package pricing

import (
	"math"
)

// Service handles fare estimation. Fares are display estimates only; the
// backend owns the authoritative amount.
type Service struct {
	config Config
}

// Config holds pricing configuration, in whole KES.
type Config struct {
	BaseFare      float64
	PerKMRate     float64
	PerMinuteRate float64
}

// DefaultConfig returns the published SafeRide rate card.
func DefaultConfig() Config {
	return Config{
		BaseFare:      200,
		PerKMRate:     50,
		PerMinuteRate: 0,
	}
}

// minutesPerKM approximates Nairobi traffic for duration estimates.
const minutesPerKM = 2.5

// Estimate is what the trip-request screen shows before booking.
type Estimate struct {
	DistanceKM  float64 `json:"distance"`
	DurationMin int     `json:"duration"`
	FareKES     float64 `json:"fare"`
}

// NewService creates a new pricing service
func NewService(config Config) *Service {
	return &Service{config: config}
}

// Fare calculates the fare for a known distance and duration.
func (s *Service) Fare(distanceKM float64, durationMin int) float64 {
	if distanceKM < 0 {
		distanceKM = 0
	}
	if durationMin < 0 {
		durationMin = 0
	}
	fare := s.config.BaseFare +
		distanceKM*s.config.PerKMRate +
		float64(durationMin)*s.config.PerMinuteRate
	return math.Round(fare)
}

// EstimateTrip derives duration from distance and prices the trip, as the
// request screen does before any route is known.
func (s *Service) EstimateTrip(distanceKM float64) Estimate {
	if distanceKM < 0 {
		distanceKM = 0
	}
	duration := int(math.Round(distanceKM * minutesPerKM))
	return Estimate{
		DistanceKM:  math.Round(distanceKM*10) / 10,
		DurationMin: duration,
		FareKES:     s.Fare(distanceKM, duration),
	}
}
