package services

import "fmt"

// RefundNotAllowedError reports a refund request against an order whose
// status is not refundable. No backend call is made in that case.
type RefundNotAllowedError struct {
	OrderID string
	Status  string
}

func (e *RefundNotAllowedError) Error() string {
	return "The status of the order does not allow for a refund."
}

// BackendError reports a failed backend call: the classified label (or
// transport diagnostic) together with the HTTP status obtained.
type BackendError struct {
	HTTPStatus int
	Message    string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%d - %s", e.HTTPStatus, e.Message)
}

// OrderLockedError is returned when another flow already holds the
// per-order lock.
type OrderLockedError struct {
	OrderID string
}

func (e *OrderLockedError) Error() string {
	return fmt.Sprintf("a payment flow for order %s is already in progress", e.OrderID)
}
