package client

import (
	"context"

	"github.com/saferide/saferide/internal/domain/driver"
	"github.com/saferide/saferide/pkg/errors"
	"github.com/saferide/saferide/pkg/logger"
)

// DriverProfile fetches the signed-in driver's profile.
func (c *Client) DriverProfile(ctx context.Context) (*driver.Driver, error) {
	var d driver.Driver
	if err := c.get(ctx, "/drivers/profile", &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// UpdateDriverProfile replaces the signed-in driver's profile.
func (c *Client) UpdateDriverProfile(ctx context.Context, d driver.Driver) error {
	if d.Name == "" {
		return errors.Validation("name", "name is required")
	}
	return c.put(ctx, "/drivers/profile", d, nil)
}

type uploadDocumentRequest struct {
	DocType  string `json:"docType"`
	FileName string `json:"fileName"`
}

// UploadDocument registers a verification document by reference.
func (c *Client) UploadDocument(ctx context.Context, docType, fileName string) error {
	if docType == "" {
		return errors.Validation("docType", "document type is required")
	}
	if fileName == "" {
		return errors.Validation("fileName", "file name is required")
	}
	return c.post(ctx, "/drivers/upload-document", uploadDocumentRequest{DocType: docType, FileName: fileName}, nil)
}

type availabilityRequest struct {
	Status driver.Availability `json:"status"`
}

// SetAvailability flips the driver online or offline.
func (c *Client) SetAvailability(ctx context.Context, status driver.Availability) error {
	if status != driver.AvailabilityOnline && status != driver.AvailabilityOffline {
		return errors.Validation("status", "status must be online or offline")
	}
	if err := c.put(ctx, "/drivers/status", availabilityRequest{Status: status}, nil); err != nil {
		return err
	}
	c.log.Info("availability updated", logger.String("status", string(status)))
	return nil
}

// Earnings fetches the driver earnings summary.
func (c *Client) Earnings(ctx context.Context) (*driver.Earnings, error) {
	var e driver.Earnings
	if err := c.get(ctx, "/drivers/earnings", &e); err != nil {
		return nil, err
	}
	return &e, nil
}

type payoutRequest struct {
	Amount float64 `json:"amount"`
}

// RequestPayout asks for a payout of accumulated earnings.
func (c *Client) RequestPayout(ctx context.Context, amount float64) error {
	if amount <= 0 {
		return errors.Validation("amount", "amount must be positive")
	}
	return c.post(ctx, "/drivers/payout", payoutRequest{Amount: amount}, nil)
}
