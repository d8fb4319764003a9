package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/saferide/saferide/internal/domain/payment"
	"github.com/saferide/saferide/internal/domain/trip"
	"github.com/saferide/saferide/internal/session"
	"github.com/saferide/saferide/pkg/errors"
	"github.com/saferide/saferide/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envelopeOK(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": data})
}

func envelopeFail(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   map[string]string{"message": message},
	})
}

// newTestClient wires a client against an httptest server and counts
// every request that reaches it.
func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *atomic.Int32) {
	t.Helper()
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	c := New(Config{BaseURL: srv.URL}, session.New(), logger.Nop())
	return c, &requests
}

// TestClient_LoginInitializesSession tests the auth flow
func TestClient_LoginInitializesSession(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		envelopeOK(w, map[string]interface{}{
			"token": "tok_123",
			"user":  map[string]string{"id": "u1", "name": "Amina", "role": "passenger"},
		})
	})

	require.NoError(t, c.Login(context.Background(), "amina@example.com", "secret"))

	assert.True(t, c.Session().Active())
	token, err := c.Session().Token()
	require.NoError(t, err)
	assert.Equal(t, "tok_123", token)
	assert.Equal(t, "Amina", c.Session().User().Name)
}

// TestClient_Login_LocalValidation tests that empty credentials never
// reach the network
func TestClient_Login_LocalValidation(t *testing.T) {
	c, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		envelopeOK(w, nil)
	})

	err := c.Login(context.Background(), "", "secret")
	assert.True(t, errors.IsValidation(err))
	err = c.Login(context.Background(), "amina@example.com", "")
	assert.True(t, errors.IsValidation(err))
	assert.Equal(t, int32(0), requests.Load(), "Validation failures make no network call")
}

// TestClient_BearerToken tests that authed calls carry the session token
func TestClient_BearerToken(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok_abc", r.Header.Get("Authorization"))
		envelopeOK(w, []trip.Trip{})
	})
	c.Session().Init("tok_abc", session.User{ID: "u1"})

	_, err := c.Trips(context.Background())
	require.NoError(t, err)
}

// TestClient_NoSessionShortCircuits tests authed calls while signed out
func TestClient_NoSessionShortCircuits(t *testing.T) {
	c, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		envelopeOK(w, nil)
	})

	_, err := c.Trips(context.Background())
	assert.ErrorIs(t, err, errors.ErrNoSession)
	assert.Equal(t, int32(0), requests.Load())
}

// TestClient_APIErrorMapping tests envelope error decoding
func TestClient_APIErrorMapping(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		envelopeFail(w, http.StatusConflict, "account already exists")
	})

	err := c.Register(context.Background(), RegisterRequest{
		Name: "Amina", Email: "amina@example.com", Password: "secret",
	})
	apiErr, ok := errors.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "account already exists", apiErr.Message)
}

// TestClient_RequestTrip tests creation and status normalization
func TestClient_RequestTrip(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/trips", r.URL.Path)
		require.NotEmpty(t, r.Header.Get("Idempotency-Key"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Contains(t, body, "pickup")
		require.Contains(t, body, "dropoff")

		envelopeOK(w, map[string]interface{}{
			"id":     "trip_1",
			"status": "driving", // legacy vocabulary from one screen
			"fare":   825,
		})
	})
	c.Session().Init("tok", session.User{})

	tr, err := c.RequestTrip(context.Background(),
		trip.Location{Lat: -1.2676, Lng: 36.8108, Address: "Westlands"},
		trip.Location{Lat: -1.3194, Lng: 36.7096, Address: "Karen"},
		true,
	)
	require.NoError(t, err)
	assert.Equal(t, "trip_1", tr.ID)
	assert.Equal(t, trip.StatusStarted, tr.Status, "Legacy statuses normalize to canonical ones")
	assert.Equal(t, 825.0, tr.Fare)
}

// TestClient_RequestTrip_LocalValidation tests required locations
func TestClient_RequestTrip_LocalValidation(t *testing.T) {
	c, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		envelopeOK(w, nil)
	})
	c.Session().Init("tok", session.User{})

	_, err := c.RequestTrip(context.Background(), trip.Location{}, trip.Location{Address: "Karen"}, false)
	assert.True(t, errors.IsValidation(err))
	assert.Equal(t, int32(0), requests.Load())
}

// TestClient_RateTrip tests local rating validation and the happy path
func TestClient_RateTrip(t *testing.T) {
	c, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/trips/trip_1/rate", r.URL.Path)
		envelopeOK(w, nil)
	})
	c.Session().Init("tok", session.User{})

	tests := []struct {
		name      string
		rating    int
		wantLocal bool
	}{
		{"zero rating rejected locally", 0, true},
		{"negative rating rejected locally", -1, true},
		{"six rejected locally", 6, true},
		{"valid rating sent", 4, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := requests.Load()
			err := c.RateTrip(context.Background(), "trip_1", tt.rating, "asante")
			if tt.wantLocal {
				assert.True(t, errors.IsValidation(err))
				assert.Equal(t, before, requests.Load(), "No network call for invalid rating")
			} else {
				assert.NoError(t, err)
				assert.Equal(t, before+1, requests.Load(), "Exactly one call for a valid rating")
			}
		})
	}
}

// TestClient_PaymentStatus tests the poller-facing status check
func TestClient_PaymentStatus(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/payments/status/pay_1", r.URL.Path)
		envelopeOK(w, map[string]string{"status": "paid"})
	})
	c.Session().Init("tok", session.User{})

	st, err := c.PaymentStatus(context.Background(), "pay_1")
	require.NoError(t, err)
	assert.Equal(t, payment.StatusPaid, st)
}

// TestClient_InitiatePayment_LocalValidation tests required fields
func TestClient_InitiatePayment_LocalValidation(t *testing.T) {
	c, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		envelopeOK(w, nil)
	})
	c.Session().Init("tok", session.User{})

	_, err := c.InitiatePayment(context.Background(), "trip_1", 825, "")
	assert.True(t, errors.IsValidation(err))
	_, err = c.InitiatePayment(context.Background(), "trip_1", 0, "0712345678")
	assert.True(t, errors.IsValidation(err))
	assert.Equal(t, int32(0), requests.Load())
}
