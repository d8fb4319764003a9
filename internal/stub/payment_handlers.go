package stub

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/saferide/saferide/internal/domain/payment"
	"github.com/saferide/saferide/pkg/logger"
)

type initiatePaymentRequest struct {
	TripID string  `json:"tripId"`
	Amount float64 `json:"amount"`
	Phone  string  `json:"phone"`
}

func (s *Server) handleInitiatePayment(c *gin.Context) {
	var req initiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.TripID == "" || req.Phone == "" {
		fail(c, http.StatusBadRequest, "tripId and phone are required")
		return
	}
	if req.Amount <= 0 {
		fail(c, http.StatusBadRequest, "amount must be positive")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.trips[req.TripID]; !found {
		fail(c, http.StatusNotFound, "trip not found")
		return
	}

	p := &stubPayment{
		Payment: payment.Payment{
			ID:     uuid.NewString(),
			TripID: req.TripID,
			Phone:  req.Phone,
			Amount: req.Amount,
			Status: payment.StatusPending,
		},
		// Phones ending in 0000 decline, so failure paths are testable.
		forceFail: strings.HasSuffix(req.Phone, "0000"),
	}
	s.payments[p.ID] = p

	s.log.Info("stub: stk push sent",
		logger.String("payment_id", p.ID),
		logger.String("trip_id", req.TripID),
	)
	ok(c, gin.H{"paymentId": p.ID})
}

func (s *Server) handlePaymentStatus(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, found := s.payments[c.Param("paymentId")]
	if !found {
		fail(c, http.StatusNotFound, "payment not found")
		return
	}

	if p.Status == payment.StatusPending {
		p.polls++
		if p.polls > s.cfg.PaymentPendingPolls {
			if p.forceFail {
				p.Status = payment.StatusFailed
			} else {
				p.Status = payment.StatusPaid
			}
		}
	}

	ok(c, gin.H{"status": p.Status})
}
