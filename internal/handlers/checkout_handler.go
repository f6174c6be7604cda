package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"taler-gateway-service/internal/models"
	"taler-gateway-service/internal/services"
)

// CheckoutHandler handles checkout-related HTTP requests
type CheckoutHandler struct {
	service *services.CheckoutService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(service *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

// PayOrder handles POST /api/v1/checkout/:orderId/pay
//
// Flow failures are a normal response, not a 5xx from this service's own
// logic: the body carries the customer notice plus the backend status and
// classified message for the storefront to display.
func (h *CheckoutHandler) PayOrder(c *gin.Context) {
	orderID := c.Param("orderId")

	var req models.PayOrderRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "Invalid request",
				Message: err.Error(),
			})
			return
		}
	}
	userID := req.UserID
	if userID == "" {
		userID = c.GetHeader("X-User-ID")
	}

	result := h.service.ProcessPayment(c.Request.Context(), orderID, userID)
	if !result.Success {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:      result.Notice,
			Message:    result.ErrorMessage,
			HTTPStatus: result.HTTPStatus,
		})
		return
	}

	c.JSON(http.StatusOK, models.PayOrderResponse{
		Result:   "success",
		Redirect: result.RedirectURL,
	})
}

// FulfillmentCallback handles GET /taler/callback
//
// The wallet (or the customer's browser) returns here after a completed
// payment with order_id={orderKey}-{orderNumber}. The browser is always
// redirected somewhere sensible, even when the parameter is missing.
func (h *CheckoutHandler) FulfillmentCallback(c *gin.Context) {
	target := h.service.CompleteFulfillment(
		c.Request.Context(),
		c.Query("order_id"),
		c.GetHeader("X-User-ID"),
	)
	c.Redirect(http.StatusFound, target)
}
