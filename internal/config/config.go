package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	API       APIConfig
	Lifecycle LifecycleConfig
	Payment   PaymentConfig
	Pricing   PricingConfig
	Stub      StubConfig
	NewRelic  NewRelicConfig
	Log       LogConfig
}

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type LifecycleConfig struct {
	TickInterval  time.Duration
	TerminalDwell time.Duration
	InitialETA    int
	AcceptWindow  time.Duration
}

type PaymentConfig struct {
	PollInterval time.Duration
	PollTimeout  time.Duration
}

type PricingConfig struct {
	BaseFare      float64
	PerKMRate     float64
	PerMinuteRate float64
}

type StubConfig struct {
	Port string
	Env  string
	// Number of status polls a payment stays pending before it is
	// reported paid.
	PaymentPendingPolls int
}

type NewRelicConfig struct {
	LicenseKey string
	AppName    string
	Enabled    bool
}

type LogConfig struct {
	Level  string
	Format string
	Output string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	_ = godotenv.Load()

	cfg := &Config{
		API: APIConfig{
			BaseURL: getEnv("API_BASE_URL", "http://localhost:5002/api/v1"),
			Timeout: getEnvAsDuration("API_TIMEOUT", 15*time.Second),
		},
		Lifecycle: LifecycleConfig{
			TickInterval:  getEnvAsDuration("TRIP_TICK_INTERVAL", 5*time.Second),
			TerminalDwell: getEnvAsDuration("TRIP_TERMINAL_DWELL", time.Second),
			InitialETA:    getEnvAsInt("TRIP_INITIAL_ETA_MINUTES", 8),
			AcceptWindow:  getEnvAsDuration("TRIP_ACCEPT_WINDOW", 30*time.Second),
		},
		Payment: PaymentConfig{
			PollInterval: getEnvAsDuration("PAYMENT_POLL_INTERVAL", 5*time.Second),
			PollTimeout:  getEnvAsDuration("PAYMENT_POLL_TIMEOUT", 3*time.Minute),
		},
		Pricing: PricingConfig{
			BaseFare:      getEnvAsFloat64("PRICING_BASE_FARE", 200),
			PerKMRate:     getEnvAsFloat64("PRICING_PER_KM_RATE", 50),
			PerMinuteRate: getEnvAsFloat64("PRICING_PER_MINUTE_RATE", 0),
		},
		Stub: StubConfig{
			Port:                getEnv("STUB_PORT", "5002"),
			Env:                 getEnv("STUB_ENV", "development"),
			PaymentPendingPolls: getEnvAsInt("STUB_PAYMENT_PENDING_POLLS", 2),
		},
		NewRelic: NewRelicConfig{
			LicenseKey: getEnv("NEW_RELIC_LICENSE_KEY", ""),
			AppName:    getEnv("NEW_RELIC_APP_NAME", "SafeRide-Client"),
			Enabled:    getEnvAsBool("NEW_RELIC_ENABLED", false),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
			Output: getEnv("LOG_OUTPUT", "stdout"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}
	if c.Lifecycle.TickInterval <= 0 {
		return fmt.Errorf("TRIP_TICK_INTERVAL must be positive")
	}
	if c.Payment.PollInterval <= 0 {
		return fmt.Errorf("PAYMENT_POLL_INTERVAL must be positive")
	}
	if c.Payment.PollTimeout <= c.Payment.PollInterval {
		return fmt.Errorf("PAYMENT_POLL_TIMEOUT must exceed PAYMENT_POLL_INTERVAL")
	}
	if c.Pricing.BaseFare < 0 || c.Pricing.PerKMRate < 0 {
		return fmt.Errorf("pricing rates must be non-negative")
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}
