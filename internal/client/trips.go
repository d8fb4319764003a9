package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/saferide/saferide/internal/domain/trip"
	"github.com/saferide/saferide/pkg/errors"
	"github.com/saferide/saferide/pkg/logger"
)

type createTripRequest struct {
	Pickup        trip.Location `json:"pickup"`
	Dropoff       trip.Location `json:"dropoff"`
	NotifyDrivers bool          `json:"notifyDrivers,omitempty"`
}

type rateTripRequest struct {
	Rating   int    `json:"rating"`
	Feedback string `json:"feedback,omitempty"`
}

// RequestTrip submits a new trip for the given pickup and dropoff.
func (c *Client) RequestTrip(ctx context.Context, pickup, dropoff trip.Location, notifyDrivers bool) (*trip.Trip, error) {
	if pickup.Address == "" {
		return nil, errors.Validation("pickup", "pickup location is required")
	}
	if dropoff.Address == "" {
		return nil, errors.Validation("dropoff", "dropoff location is required")
	}

	var t trip.Trip
	err := c.post(ctx, "/trips", createTripRequest{
		Pickup:        pickup,
		Dropoff:       dropoff,
		NotifyDrivers: notifyDrivers,
	}, &t)
	if err != nil {
		return nil, err
	}
	t.Status = trip.Normalize(string(t.Status))

	c.log.Info("trip requested",
		logger.String("trip_id", t.ID),
		logger.Float64("fare", t.Fare),
	)
	return &t, nil
}

// Trips lists the caller's trips.
func (c *Client) Trips(ctx context.Context) ([]trip.Trip, error) {
	return c.listTrips(ctx, "/trips")
}

// TripsByStatus lists up to limit trips with the given status.
func (c *Client) TripsByStatus(ctx context.Context, status trip.Status, limit int) ([]trip.Trip, error) {
	q := url.Values{}
	q.Set("status", string(status))
	if limit > 0 {
		q.Set("limit", fmt.Sprintf("%d", limit))
	}
	return c.listTrips(ctx, "/trips?"+q.Encode())
}

// AvailableTrips lists candidate trips for a driver.
func (c *Client) AvailableTrips(ctx context.Context) ([]trip.Trip, error) {
	return c.listTrips(ctx, "/trips/available")
}

func (c *Client) listTrips(ctx context.Context, path string) ([]trip.Trip, error) {
	var trips []trip.Trip
	if err := c.get(ctx, path, &trips); err != nil {
		return nil, err
	}
	for i := range trips {
		trips[i].Status = trip.Normalize(string(trips[i].Status))
	}
	return trips, nil
}

// RateTrip submits a post-trip rating. An out-of-range rating is rejected
// locally; no request is made.
func (c *Client) RateTrip(ctx context.Context, tripID string, rating int, feedback string) error {
	if !trip.ValidRating(rating) {
		return errors.Validation("rating", "rating must be between 1 and 5")
	}
	if tripID == "" {
		return errors.Validation("tripId", "trip id is required")
	}

	if err := c.post(ctx, "/trips/"+tripID+"/rate", rateTripRequest{Rating: rating, Feedback: feedback}, nil); err != nil {
		return err
	}
	c.log.Info("rating submitted", logger.String("trip_id", tripID), logger.Int("rating", rating))
	return nil
}
