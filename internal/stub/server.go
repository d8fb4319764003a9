package stub

import (
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/saferide/saferide/internal/domain/driver"
	"github.com/saferide/saferide/internal/domain/payment"
	"github.com/saferide/saferide/internal/domain/trip"
	"github.com/saferide/saferide/internal/service/pricing"
	"github.com/saferide/saferide/pkg/logger"
)

// Config holds stub behavior knobs.
type Config struct {
	Env string
	// PaymentPendingPolls is how many status checks a payment stays
	// pending before it settles as paid.
	PaymentPendingPolls int
}

// Server is an in-memory implementation of the SafeRide REST surface.
// It exists so the simulator and the integration tests run without a
// backend; nothing survives a restart.
type Server struct {
	cfg     Config
	log     *logger.Logger
	pricing *pricing.Service

	mu       sync.Mutex
	users    map[string]*account // by email
	tokens   map[string]string   // token -> user id
	trips    map[string]*trip.Trip
	payments map[string]*stubPayment
	drivers  map[string]*driver.Driver // by driver id
	docs     map[string][]string       // driver id -> uploaded doc names
	paidOut  map[string]float64        // driver id -> paid out KES
}

type account struct {
	ID       string
	Name     string
	Email    string
	Phone    string
	Role     string
	Password string
}

type stubPayment struct {
	payment.Payment
	polls     int
	forceFail bool
}

// New creates a stub server with a few seeded drivers.
func New(cfg Config, log *logger.Logger) *Server {
	if cfg.PaymentPendingPolls <= 0 {
		cfg.PaymentPendingPolls = 2
	}
	s := &Server{
		cfg:      cfg,
		log:      log,
		pricing:  pricing.NewService(pricing.DefaultConfig()),
		users:    make(map[string]*account),
		tokens:   make(map[string]string),
		trips:    make(map[string]*trip.Trip),
		payments: make(map[string]*stubPayment),
		drivers:  make(map[string]*driver.Driver),
		docs:     make(map[string][]string),
		paidOut:  make(map[string]float64),
	}
	s.seedDrivers()
	return s
}

func (s *Server) seedDrivers() {
	seeds := []*driver.Driver{
		{
			ID: "driver_123", Name: "John Kamau", Phone: "+254712345678",
			Rating: 4.8, TotalTrips: 1247,
			Vehicle:  driver.Vehicle{Make: "Toyota", Model: "Corolla", Color: "White", Plate: "KCA 123A"},
			Approval: driver.ApprovalApproved, Availability: driver.AvailabilityOnline,
		},
		{
			ID: "driver_456", Name: "Mary Wanjiku", Phone: "+254723456789",
			Rating: 4.9, TotalTrips: 892,
			Vehicle:  driver.Vehicle{Make: "Nissan", Model: "Note", Color: "Silver", Plate: "KBZ 456B"},
			Approval: driver.ApprovalApproved, Availability: driver.AvailabilityOffline,
		},
		{
			ID: "driver_789", Name: "Peter Otieno", Phone: "+254734567890",
			Rating: 4.6, TotalTrips: 310,
			Vehicle:  driver.Vehicle{Make: "Honda", Model: "Fit", Color: "Blue", Plate: "KDA 789C"},
			Approval: driver.ApprovalPending, Availability: driver.AvailabilityOffline,
		},
	}
	for _, d := range seeds {
		s.drivers[d.ID] = d
	}
}

// Router builds the gin engine. nrApp may be nil.
func (s *Server) Router(nrApp *newrelic.Application) *gin.Engine {
	if s.cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if nrApp != nil {
		router.Use(nrgin.Middleware(nrApp))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", s.handleLogin)
			auth.POST("/register", s.handleRegister)
		}

		authed := v1.Group("")
		authed.Use(s.authMiddleware)
		{
			trips := authed.Group("/trips")
			{
				trips.POST("", s.handleCreateTrip)
				trips.GET("", s.handleListTrips)
				trips.GET("/available", s.handleAvailableTrips)
				trips.POST("/:id/rate", s.handleRateTrip)
			}

			payments := authed.Group("/payments")
			{
				payments.POST("/initiate", s.handleInitiatePayment)
				payments.GET("/status/:paymentId", s.handlePaymentStatus)
			}

			drivers := authed.Group("/drivers")
			{
				drivers.GET("/profile", s.handleDriverProfile)
				drivers.PUT("/profile", s.handleUpdateDriverProfile)
				drivers.POST("/upload-document", s.handleUploadDocument)
				drivers.PUT("/status", s.handleDriverStatus)
				drivers.GET("/earnings", s.handleEarnings)
				drivers.POST("/payout", s.handlePayout)
			}

			admin := authed.Group("/admin")
			{
				admin.GET("/stats", s.handleAdminStats)
				admin.GET("/drivers", s.handleAdminDrivers)
				admin.GET("/trips", s.handleAdminTrips)
				admin.PUT("/drivers/:id/approve", s.handleDriverAction("approve"))
				admin.PUT("/drivers/:id/reject", s.handleDriverAction("reject"))
				admin.PUT("/drivers/:id/suspend", s.handleDriverAction("suspend"))
			}
		}
	}

	return router
}

// Envelope helpers; every response goes through one of these.

func ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": gin.H{"message": message}})
}

// authMiddleware resolves the bearer token to a user id.
func (s *Server) authMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" || token == header {
		fail(c, http.StatusUnauthorized, "missing bearer token")
		c.Abort()
		return
	}

	s.mu.Lock()
	userID, found := s.tokens[token]
	s.mu.Unlock()
	if !found {
		fail(c, http.StatusUnauthorized, "invalid token")
		c.Abort()
		return
	}

	c.Set("userID", userID)
	c.Next()
}
