package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"taler-gateway-service/internal/models"
	"taler-gateway-service/internal/services"
	"taler-gateway-service/internal/taler"
)

// RefundHandler handles refund-related HTTP requests
type RefundHandler struct {
	service *services.RefundService
}

// NewRefundHandler creates a new refund handler
func NewRefundHandler(service *services.RefundService) *RefundHandler {
	return &RefundHandler{service: service}
}

// RefundOrder handles POST /api/v1/orders/:orderId/refund
func (h *RefundHandler) RefundOrder(c *gin.Context) {
	orderID := c.Param("orderId")

	var req models.RefundOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request",
			Message: err.Error(),
		})
		return
	}
	userID := req.UserID
	if userID == "" {
		userID = c.GetHeader("X-User-ID")
	}

	refundURL, err := h.service.ProcessRefund(c.Request.Context(), orderID, req.Amount, req.Reason, userID)
	if err != nil {
		var notAllowed *services.RefundNotAllowedError
		var backendErr *services.BackendError
		var parseErr *taler.ParseError

		switch {
		case errors.As(err, &notAllowed):
			c.JSON(http.StatusConflict, models.ErrorResponse{
				Error:   "Refund not allowed",
				Message: notAllowed.Error(),
			})
		case errors.As(err, &backendErr):
			c.JSON(http.StatusBadGateway, models.ErrorResponse{
				Error:      "An error occurred during the refund process, please try again or send the following message to your system administrator: " + backendErr.Error(),
				Message:    backendErr.Message,
				HTTPStatus: backendErr.HTTPStatus,
			})
		case errors.As(err, &parseErr):
			c.JSON(http.StatusBadGateway, models.ErrorResponse{
				Error:   "Refund response unusable",
				Message: parseErr.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "Failed to process refund",
				Message: err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, models.RefundOrderResponse{
		Result:      "success",
		RefundURL:   refundURL,
		OrderStatus: "refunded",
	})
}
