package client

import (
	"context"

	"github.com/saferide/saferide/internal/domain/driver"
	"github.com/saferide/saferide/internal/domain/trip"
	"github.com/saferide/saferide/pkg/errors"
)

// AdminStats is the dashboard summary.
type AdminStats struct {
	TotalTrips   int     `json:"totalTrips"`
	ActiveTrips  int     `json:"activeTrips"`
	TotalDrivers int     `json:"totalDrivers"`
	RevenueKES   float64 `json:"revenue"`
}

// AdminStats fetches the dashboard summary.
func (c *Client) AdminStats(ctx context.Context) (*AdminStats, error) {
	var s AdminStats
	if err := c.get(ctx, "/admin/stats", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// AdminDrivers lists all drivers for management.
func (c *Client) AdminDrivers(ctx context.Context) ([]driver.Driver, error) {
	var drivers []driver.Driver
	if err := c.get(ctx, "/admin/drivers", &drivers); err != nil {
		return nil, err
	}
	return drivers, nil
}

// AdminTrips lists all trips for management.
func (c *Client) AdminTrips(ctx context.Context) ([]trip.Trip, error) {
	var trips []trip.Trip
	if err := c.get(ctx, "/admin/trips", &trips); err != nil {
		return nil, err
	}
	for i := range trips {
		trips[i].Status = trip.Normalize(string(trips[i].Status))
	}
	return trips, nil
}

// ApproveDriver approves a pending driver.
func (c *Client) ApproveDriver(ctx context.Context, driverID string) error {
	return c.driverAction(ctx, driverID, "approve")
}

// RejectDriver rejects a pending driver. Distinct from suspension: the
// backend exposes both verbs and they are not interchangeable.
func (c *Client) RejectDriver(ctx context.Context, driverID string) error {
	return c.driverAction(ctx, driverID, "reject")
}

// SuspendDriver suspends an approved driver.
func (c *Client) SuspendDriver(ctx context.Context, driverID string) error {
	return c.driverAction(ctx, driverID, "suspend")
}

func (c *Client) driverAction(ctx context.Context, driverID, action string) error {
	if driverID == "" {
		return errors.Validation("driverId", "driver id is required")
	}
	return c.put(ctx, "/admin/drivers/"+driverID+"/"+action, nil, nil)
}
