package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taler-gateway-service/internal/models"
)

// RequestID attaches a request id to every request for audit correlation.
// An inbound X-Request-ID is honored, otherwise one is generated.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("requestID", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// Actor extracts the acting user from the X-User-ID header. Anonymous
// customers are recorded as Guest, matching the audit trail convention.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			userID = models.GuestUserID
		}
		c.Set("userID", userID)
		c.Next()
	}
}
