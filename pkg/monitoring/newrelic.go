package monitoring

import (
	"fmt"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
)

// Config holds New Relic configuration
type Config struct {
	LicenseKey string
	AppName    string
	Enabled    bool
}

// NewRelicApp wraps the New Relic application
type NewRelicApp struct {
	*newrelic.Application
	enabled bool
}

// New creates a new New Relic application. With Enabled false or no license
// key it returns a no-op app so callers never nil-check.
func New(cfg Config) (*NewRelicApp, error) {
	if !cfg.Enabled || cfg.LicenseKey == "" {
		return &NewRelicApp{nil, false}, nil
	}

	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName(cfg.AppName),
		newrelic.ConfigLicense(cfg.LicenseKey),
		newrelic.ConfigDistributedTracerEnabled(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create New Relic application: %w", err)
	}

	return &NewRelicApp{app, true}, nil
}

// IsEnabled returns whether New Relic is enabled
func (nr *NewRelicApp) IsEnabled() bool {
	return nr.enabled
}

// App exposes the underlying application for middleware wiring, nil when disabled.
func (nr *NewRelicApp) App() *newrelic.Application {
	if !nr.enabled {
		return nil
	}
	return nr.Application
}

// RecordCustomEvent records a custom event
func (nr *NewRelicApp) RecordCustomEvent(eventType string, params map[string]interface{}) {
	if !nr.enabled || nr.Application == nil {
		return
	}
	nr.Application.RecordCustomEvent(eventType, params)
}

// Shutdown gracefully shuts down the New Relic application
func (nr *NewRelicApp) Shutdown(timeout time.Duration) {
	if !nr.enabled || nr.Application == nil {
		return
	}
	nr.Application.Shutdown(timeout)
}

// Event helpers for the trip and payment flows

// RecordTripRequested records a trip request
func (nr *NewRelicApp) RecordTripRequested(tripID string, fare float64) {
	nr.RecordCustomEvent("TripRequested", map[string]interface{}{
		"trip_id":   tripID,
		"fare":      fare,
		"timestamp": time.Now().Unix(),
	})
}

// RecordTripEnded records a trip reaching a terminal status
func (nr *NewRelicApp) RecordTripEnded(tripID string, status string) {
	nr.RecordCustomEvent("TripEnded", map[string]interface{}{
		"trip_id": tripID,
		"status":  status,
	})
}

// RecordPaymentOutcome records a terminal payment status
func (nr *NewRelicApp) RecordPaymentOutcome(paymentID string, status string, amount float64) {
	nr.RecordCustomEvent("PaymentOutcome", map[string]interface{}{
		"payment_id": paymentID,
		"status":     status,
		"amount":     amount,
	})
}
