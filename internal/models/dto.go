package models

// PayOrderRequest is the body of POST /api/v1/checkout/:orderId/pay.
type PayOrderRequest struct {
	UserID string `json:"userId"`
}

// PayOrderResponse is returned when a checkout flow reaches the redirect.
type PayOrderResponse struct {
	Result   string `json:"result"`
	Redirect string `json:"redirect"`
}

// RefundOrderRequest is the body of POST /api/v1/orders/:orderId/refund.
type RefundOrderRequest struct {
	Amount string `json:"amount" binding:"required"`
	Reason string `json:"reason"`
	UserID string `json:"userId"`
}

// RefundOrderResponse is returned when a refund flow succeeds. The redirect
// URL is meant to be forwarded to the customer to complete the refund in
// their wallet.
type RefundOrderResponse struct {
	Result      string `json:"result"`
	RefundURL   string `json:"refundUrl"`
	OrderStatus string `json:"orderStatus"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message,omitempty"`
	HTTPStatus int    `json:"httpStatus,omitempty"`
}
