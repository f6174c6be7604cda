package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	"taler-gateway-service/internal/models"
	"taler-gateway-service/internal/payload"
	"taler-gateway-service/internal/taler"
)

// refundableStatuses are the storefront order states a refund may start
// from. Anything else is rejected before the backend is contacted.
var refundableStatuses = map[string]bool{
	"processing": true,
	"on hold":    true,
	"completed":  true,
}

// RefundService validates refund eligibility, submits the refund to the
// backend and records the resulting refund URL on the order.
type RefundService struct {
	backend    Backend
	storefront Storefront
	audit      AuditTrail
	delimiter  string
	logger     *logrus.Entry
}

// NewRefundService creates a refund service. delimiter is the order id
// delimiter of the active integration mode.
func NewRefundService(backend Backend, storefront Storefront, audit AuditTrail, delimiter string) *RefundService {
	return &RefundService{
		backend:    backend,
		storefront: storefront,
		audit:      audit,
		delimiter:  delimiter,
		logger:     logrus.WithField("component", "refund"),
	}
}

// ProcessRefund runs the refund flow for one order and returns the refund
// redirect URL the admin forwards to the customer. Failures come back as
// typed errors: *RefundNotAllowedError when the order status is not
// refundable (no backend call made), *BackendError when the backend call
// failed, *taler.ParseError when a success response was unusable. On any
// failure the order status is left unchanged.
func (s *RefundService) ProcessRefund(ctx context.Context, orderID, amount, reason, userID string) (string, error) {
	if userID == "" {
		userID = models.GuestUserID
	}
	actor := actorPrefix(userID, orderID)

	order, err := s.storefront.GetOrder(ctx, orderID)
	if err != nil {
		s.audit.Error(actor + "Refund process failed - " + err.Error())
		return "", fmt.Errorf("get order %s: %w", orderID, err)
	}

	s.audit.Transaction(fmt.Sprintf("%sRefund process of order: %s started with the refunded amount: %s %s and the reason: %s",
		actor, orderID, amount, order.Currency, reason))

	if !refundableStatuses[order.Status] {
		s.audit.Error(actor + "The status of the order does not allow a refund")
		return "", &RefundNotAllowedError{OrderID: orderID, Status: order.Status}
	}

	refund := payload.BuildRefund(order, amount, reason, s.delimiter)
	body, err := json.Marshal(refund)
	if err != nil {
		s.audit.Error(actor + "Refund process failed - " + err.Error())
		return "", fmt.Errorf("marshal refund payload: %w", err)
	}

	s.audit.Transaction(actor + "Refund request sent to the GNU Taler Backend")

	outcome := s.backend.Call(ctx, http.MethodPost, string(body), taler.PurposeCreateRefund)
	if !outcome.Success {
		s.audit.Error(fmt.Sprintf("%sAn error occurred during the refund process - %d - %s",
			actor, outcome.HTTPStatus, outcome.ErrorMessage))
		return "", &BackendError{HTTPStatus: outcome.HTTPStatus, Message: outcome.ErrorMessage}
	}

	refundURL, err := taler.ExtractRefundRedirectURL(outcome.Body)
	if err != nil {
		s.audit.Error(actor + "An error occurred during the refund process - " + err.Error())
		return "", err
	}

	if err := s.storefront.SetOrderStatus(ctx, orderID, "refunded"); err != nil {
		s.logger.WithError(err).WithField("order_id", orderID).Error("failed to set order status refunded")
		s.audit.Error(actor + "Order status could not be set to refunded - " + err.Error())
	}
	if err := s.storefront.AddOrderNote(ctx, orderID,
		"The refund process finished successfully, please send the following url to the customer via an email to confirm the refund transaction."); err != nil {
		s.logger.WithError(err).WithField("order_id", orderID).Warn("failed to add refund note")
	}
	if err := s.storefront.AddOrderNote(ctx, orderID, refundURL); err != nil {
		s.logger.WithError(err).WithField("order_id", orderID).Warn("failed to add refund url note")
	}

	s.audit.Transaction(actor + "Successfully received refund redirect url from GNU Taler backend, customer can now refund the given amount.")

	return refundURL, nil
}
