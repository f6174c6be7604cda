package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// AuditLog represents an audit log entry
type AuditLog struct {
	Timestamp  time.Time         `json:"timestamp"`
	RequestID  string            `json:"requestId"`
	UserID     string            `json:"userId"`
	Method     string            `json:"method"`
	Path       string            `json:"path"`
	StatusCode int               `json:"statusCode"`
	Duration   time.Duration     `json:"duration"`
	ClientIP   string            `json:"clientIp"`
	UserAgent  string            `json:"userAgent"`
	Action     string            `json:"action,omitempty"`
	Resource   string            `json:"resource,omitempty"`
	ResourceID string            `json:"resourceId,omitempty"`
	Success    bool              `json:"success"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// AuditLogger defines the interface for audit logging
type AuditLogger interface {
	Log(entry *AuditLog)
}

// DefaultAuditLogger logs to stdout in JSON format
type DefaultAuditLogger struct{}

func (l *DefaultAuditLogger) Log(entry *AuditLog) {
	data, _ := json.Marshal(entry)
	log.Printf("[AUDIT] %s", string(data))
}

// AuditMiddleware logs all gateway requests
func AuditMiddleware(logger AuditLogger) gin.HandlerFunc {
	if logger == nil {
		logger = &DefaultAuditLogger{}
	}

	return func(c *gin.Context) {
		start := time.Now()

		// Read request body for audit (only for POST/PUT)
		var requestBody []byte
		if c.Request.Method == "POST" || c.Request.Method == "PUT" {
			requestBody, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
		}

		// Process request
		c.Next()

		// Build audit entry
		entry := &AuditLog{
			Timestamp:  start,
			RequestID:  c.GetString("requestID"),
			UserID:     c.GetString("userID"),
			Method:     c.Request.Method,
			Path:       c.Request.URL.Path,
			StatusCode: c.Writer.Status(),
			Duration:   time.Since(start),
			ClientIP:   c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
			Success:    c.Writer.Status() < 400,
		}

		entry.Action, entry.Resource, entry.ResourceID = parseGatewayAction(c)
		entry.Metadata = extractGatewayMetadata(c, requestBody)

		logger.Log(entry)
	}
}

// parseGatewayAction extracts action and resource from the request
func parseGatewayAction(c *gin.Context) (action, resource, resourceID string) {
	path := c.Request.URL.Path

	switch {
	case strings.HasPrefix(path, "/api/v1/checkout/") && strings.HasSuffix(path, "/pay"):
		return "pay_order", "order", c.Param("orderId")
	case strings.HasPrefix(path, "/api/v1/orders/") && strings.HasSuffix(path, "/refund"):
		return "refund_order", "order", c.Param("orderId")
	case path == "/taler/callback":
		return "fulfillment_callback", "order", c.Query("order_id")
	default:
		return c.Request.Method, path, ""
	}
}

// extractGatewayMetadata extracts relevant metadata from request
func extractGatewayMetadata(c *gin.Context, body []byte) map[string]string {
	metadata := make(map[string]string)

	if strings.HasSuffix(c.Request.URL.Path, "/refund") && len(body) > 0 {
		var req struct {
			Amount string `json:"amount"`
			Reason string `json:"reason"`
		}
		if json.Unmarshal(body, &req) == nil {
			metadata["refund_amount"] = req.Amount
			metadata["reason"] = req.Reason
		}
	}

	if len(metadata) == 0 {
		return nil
	}
	return metadata
}
