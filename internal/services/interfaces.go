package services

import (
	"context"

	"taler-gateway-service/internal/models"
)

// Storefront is the narrow contract this service needs from the storefront
// platform. The flows never touch the platform's own object model, only
// these calls.
type Storefront interface {
	GetOrder(ctx context.Context, orderID string) (*models.StorefrontOrder, error)
	GetCart(ctx context.Context) ([]models.CartLine, error)
	MarkOrderPaid(ctx context.Context, orderID string) error
	ClearCart(ctx context.Context) error
	SetOrderStatus(ctx context.Context, orderID, status string) error
	AddOrderNote(ctx context.Context, orderID, note string) error
}

// Backend performs one classified HTTP attempt against the Taler merchant
// backend. Implemented by taler.Client.
type Backend interface {
	Call(ctx context.Context, method, body, purpose string) models.Outcome
}

// AuditTrail is the append-only transaction/error log sink.
type AuditTrail interface {
	Transaction(message string)
	Error(message string)
}
