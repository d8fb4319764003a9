package client

import (
	"context"

	"github.com/saferide/saferide/internal/domain/payment"
	"github.com/saferide/saferide/pkg/errors"
	"github.com/saferide/saferide/pkg/logger"
)

type initiatePaymentRequest struct {
	TripID string  `json:"tripId"`
	Amount float64 `json:"amount"`
	Phone  string  `json:"phone"`
}

// InitiatePayment triggers the STK push for a completed trip.
func (c *Client) InitiatePayment(ctx context.Context, tripID string, amount float64, phone string) (*payment.Payment, error) {
	if phone == "" {
		return nil, errors.Validation("phone", "phone number is required")
	}
	if tripID == "" {
		return nil, errors.Validation("tripId", "trip id is required")
	}
	if amount <= 0 {
		return nil, errors.Validation("amount", "amount must be positive")
	}

	var p payment.Payment
	err := c.post(ctx, "/payments/initiate", initiatePaymentRequest{
		TripID: tripID,
		Amount: amount,
		Phone:  phone,
	}, &p)
	if err != nil {
		return nil, err
	}
	if p.Status == "" {
		p.Status = payment.StatusPending
	}
	p.TripID = tripID
	p.Amount = amount
	p.Phone = phone

	c.log.Info("payment initiated",
		logger.String("payment_id", p.ID),
		logger.String("trip_id", tripID),
		logger.Float64("amount", amount),
	)
	return &p, nil
}

type paymentStatusResponse struct {
	Status payment.Status `json:"status"`
}

// PaymentStatus reports the backend's view of a payment. It satisfies the
// poller's StatusChecker.
func (c *Client) PaymentStatus(ctx context.Context, paymentID string) (payment.Status, error) {
	var resp paymentStatusResponse
	if err := c.get(ctx, "/payments/status/"+paymentID, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}
