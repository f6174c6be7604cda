package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Integration modes. They are two configurations of one gateway: callback
// mode routes the wallet back through this service's fulfillment callback
// and joins order ids with "-"; static mode uses a fixed fulfillment URL
// and joins with "_".
const (
	ModeCallback = "callback"
	ModeStatic   = "static"
)

// Config holds all configuration for the gateway service
type Config struct {
	// Server
	Port        string
	Environment string

	// Taler merchant backend
	BackendURL    string
	BackendAPIKey string

	// Integration mode: "callback" or "static"
	FulfillmentMode string
	// FulfillmentURL is required in static mode.
	FulfillmentURL string
	// PublicBaseURL is this service's externally reachable base URL,
	// required in callback mode.
	PublicBaseURL string

	// Storefront platform
	StorefrontAPIURL  string // internal API for order/cart operations
	StorefrontSiteURL string // customer-facing site for browser redirects

	// Merchant information
	MerchantName        string
	MerchantInfoEnabled bool
	StoreCountry        string // "CC" or "CC:ST"
	StoreCity           string
	StorePostcode       string
	StoreAddress        string

	// Redis for the per-order checkout lock (optional)
	RedisURL string

	// Audit trail
	AuditLogDir string
}

// Load loads configuration from environment variables
func Load() *Config {
	// Best effort for local development; in deployment the environment
	// is injected.
	_ = godotenv.Load()

	config := &Config{
		Port:        getEnv("PORT", "8093"),
		Environment: getEnv("ENVIRONMENT", "development"),

		BackendURL:    getEnv("TALER_BACKEND_URL", "https://backend.demo.taler.net"),
		BackendAPIKey: getEnv("TALER_BACKEND_API_KEY", "ApiKey sandbox"),

		FulfillmentMode: getEnv("FULFILLMENT_MODE", ModeCallback),
		FulfillmentURL:  getEnv("FULFILLMENT_URL", ""),
		PublicBaseURL:   getEnv("PUBLIC_BASE_URL", "http://localhost:8093"),

		StorefrontAPIURL:  getEnv("STOREFRONT_API_URL", "http://storefront:8080"),
		StorefrontSiteURL: getEnv("STOREFRONT_SITE_URL", "http://localhost:3000"),

		MerchantName:        getEnv("MERCHANT_NAME", ""),
		MerchantInfoEnabled: getEnv("MERCHANT_INFORMATION", "yes") == "yes",
		StoreCountry:        getEnv("STORE_COUNTRY", ""),
		StoreCity:           getEnv("STORE_CITY", ""),
		StorePostcode:       getEnv("STORE_POSTCODE", ""),
		StoreAddress:        getEnv("STORE_ADDRESS", ""),

		RedisURL: getEnv("REDIS_URL", ""),

		AuditLogDir: getEnv("AUDIT_LOG_DIR", "./log"),
	}

	// Validate required fields
	if config.BackendURL == "" {
		log.Fatal("TALER_BACKEND_URL is required")
	}
	if config.FulfillmentMode != ModeCallback && config.FulfillmentMode != ModeStatic {
		log.Fatalf("FULFILLMENT_MODE must be %q or %q", ModeCallback, ModeStatic)
	}
	if config.FulfillmentMode == ModeStatic && config.FulfillmentURL == "" {
		log.Fatal("FULFILLMENT_URL is required in static fulfillment mode")
	}

	return config
}

// OrderIDDelimiter returns the delimiter joining order key and order
// number in backend order ids for the active mode.
func (c *Config) OrderIDDelimiter() string {
	if c.FulfillmentMode == ModeStatic {
		return "_"
	}
	return "-"
}

// ResolveFulfillmentURL returns where the wallet sends the customer after
// payment: the callback route in callback mode, the configured URL
// otherwise.
func (c *Config) ResolveFulfillmentURL() string {
	if c.FulfillmentMode == ModeCallback {
		return c.PublicBaseURL + "/taler/callback"
	}
	return c.FulfillmentURL
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
