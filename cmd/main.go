package main

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"taler-gateway-service/internal/auditlog"
	"taler-gateway-service/internal/clients"
	"taler-gateway-service/internal/config"
	"taler-gateway-service/internal/handlers"
	"taler-gateway-service/internal/middleware"
	"taler-gateway-service/internal/payload"
	"taler-gateway-service/internal/services"
	"taler-gateway-service/internal/taler"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Structured service logging; the transaction/error audit trail is a
	// separate fixed-format sink.
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(logrus.InfoLevel)

	// Audit trail streams
	audit := auditlog.New(cfg.AuditLogDir)

	// Redis for the per-order checkout lock (optional)
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Printf("WARNING: invalid REDIS_URL: %v (checkout lock disabled)", err)
		} else {
			rdb = redis.NewClient(opts)
			log.Println("✓ Redis order lock enabled")
		}
	}

	// Backend and storefront clients
	backend := taler.NewClient(cfg.BackendURL, cfg.BackendAPIKey)
	storefront := clients.NewStorefrontClient(cfg.StorefrontAPIURL)

	// Initialize services
	locks := services.NewOrderLocker(rdb, 2*time.Minute)
	checkoutService := services.NewCheckoutService(backend, storefront, audit, locks, services.CheckoutConfig{
		OrderIDDelimiter: cfg.OrderIDDelimiter(),
		FulfillmentURL:   cfg.ResolveFulfillmentURL(),
		SiteURL:          cfg.StorefrontSiteURL,
		Merchant: payload.MerchantSettings{
			Name:          cfg.MerchantName,
			ShareInfo:     cfg.MerchantInfoEnabled,
			StoreCountry:  cfg.StoreCountry,
			StoreCity:     cfg.StoreCity,
			StorePostcode: cfg.StorePostcode,
			StoreAddress:  cfg.StoreAddress,
		},
	})
	refundService := services.NewRefundService(backend, storefront, audit, cfg.OrderIDDelimiter())

	// Initialize handlers
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	refundHandler := handlers.NewRefundHandler(refundService)

	// Setup router
	router := setupRouter(checkoutHandler, refundHandler)

	// Start server
	log.Printf("Taler Gateway Service starting on port %s (env: %s, mode: %s)", cfg.Port, cfg.Environment, cfg.FulfillmentMode)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter configures the HTTP router
func setupRouter(checkoutHandler *handlers.CheckoutHandler, refundHandler *handlers.RefundHandler) *gin.Engine {
	router := gin.Default()

	// Initialize rate limiters
	rateLimits := middleware.NewGatewayRateLimits()

	// Security headers middleware
	router.Use(middleware.SecurityHeaders())

	// CORS middleware
	allowedOrigins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ALLOWED_ORIGINS"); env != "" {
		allowedOrigins = strings.Split(env, ",")
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-User-ID", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Request validation middleware
	router.Use(middleware.ValidateRequest())

	// Request correlation and actor context
	router.Use(middleware.RequestID())
	router.Use(middleware.Actor())

	// Audit logging middleware
	router.Use(middleware.AuditMiddleware(nil))

	// Health check (no rate limiting)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "taler-gateway-service",
		})
	})

	// API routes
	v1 := router.Group("/api/v1")
	v1.Use(middleware.RateLimitMiddleware(rateLimits.APIGeneral, "user"))
	{
		v1.POST("/checkout/:orderId/pay",
			middleware.RateLimitMiddleware(rateLimits.Checkout, "user"),
			checkoutHandler.PayOrder)
		v1.POST("/orders/:orderId/refund",
			middleware.RateLimitMiddleware(rateLimits.Refund, "user"),
			refundHandler.RefundOrder)
	}

	// Fulfillment callback - hit by the customer's browser, rate limited
	// by IP
	router.GET("/taler/callback",
		middleware.RateLimitMiddleware(rateLimits.Callback, "ip"),
		checkoutHandler.FulfillmentCallback)

	return router
}
