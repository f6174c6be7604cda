package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"taler-gateway-service/internal/models"
	"taler-gateway-service/internal/payload"
	"taler-gateway-service/internal/taler"
)

// CheckoutConfig carries the per-deployment choices of the order flow.
type CheckoutConfig struct {
	// OrderIDDelimiter joins order key and order number into the backend
	// order id: "-" in callback mode, "_" in static-fulfillment mode.
	OrderIDDelimiter string
	// FulfillmentURL is where the wallet sends the customer after paying:
	// either the configured static URL or this service's callback route.
	FulfillmentURL string
	// SiteURL is the customer-facing storefront base URL, used for the
	// post-payment browser redirects.
	SiteURL  string
	Merchant payload.MerchantSettings
}

// CheckoutService drives the two-phase create-order/confirm-payment
// sequence against the Taler backend and relays the wallet redirect URL
// (or a classified failure) back to the storefront checkout.
type CheckoutService struct {
	backend    Backend
	storefront Storefront
	audit      AuditTrail
	locks      *OrderLocker
	cfg        CheckoutConfig
	logger     *logrus.Entry
}

// NewCheckoutService creates a checkout service.
func NewCheckoutService(backend Backend, storefront Storefront, audit AuditTrail, locks *OrderLocker, cfg CheckoutConfig) *CheckoutService {
	return &CheckoutService{
		backend:    backend,
		storefront: storefront,
		audit:      audit,
		locks:      locks,
		cfg:        cfg,
		logger:     logrus.WithField("component", "checkout"),
	}
}

// ProcessPayment runs the full order flow for one storefront order:
// verify backend, build payload, create order, confirm payment. Every
// attempt is made exactly once; any failure is terminal for this flow,
// logged, and returned as a value. On failure after order creation has
// started, the storefront order is cancelled.
func (s *CheckoutService) ProcessPayment(ctx context.Context, orderID, userID string) models.FlowResult {
	if userID == "" {
		userID = models.GuestUserID
		s.audit.Transaction("The customer started a transaction without login, therefore the userid is unknown.")
	}
	actor := actorPrefix(userID, orderID)

	s.audit.Transaction(actor + "User started the payment process.")

	locked, err := s.locks.TryLock(ctx, orderID)
	if err != nil {
		s.logger.WithError(err).Warn("order lock unavailable, proceeding without it")
	} else if !locked {
		lockErr := &OrderLockedError{OrderID: orderID}
		s.audit.Error(actor + "Checkout rejected - " + lockErr.Error())
		return models.FlowResult{
			ErrorMessage: lockErr.Error(),
			Notice:       "A payment for this order is already in progress, please wait for it to finish.",
		}
	} else {
		defer s.locks.Unlock(ctx, orderID)
	}

	probe := s.backend.Call(ctx, http.MethodGet, "", taler.PurposeProbe)
	if !probe.Success {
		s.audit.Error(actor + "Checkout process failed - Invalid backend url.")
		s.logger.WithFields(logrus.Fields{
			"order_id":    orderID,
			"http_status": probe.HTTPStatus,
		}).Error("backend verification failed")
		return models.FlowResult{
			HTTPStatus:   probe.HTTPStatus,
			ErrorMessage: probe.ErrorMessage,
			Notice:       "Something went wrong please contact the system administrator of the webshop and send the following error: GNU Taler backend url invalid",
		}
	}

	order, err := s.storefront.GetOrder(ctx, orderID)
	if err != nil {
		s.audit.Error(actor + "Checkout process failed - " + err.Error())
		return models.FlowResult{
			ErrorMessage: err.Error(),
			Notice:       "There seems to be a problem with the payment process, please try again.",
		}
	}

	cart, err := s.storefront.GetCart(ctx)
	if err != nil {
		s.audit.Error(actor + "Checkout process failed - " + err.Error())
		return models.FlowResult{
			ErrorMessage: err.Error(),
			Notice:       "There seems to be a problem with the payment process, please try again.",
		}
	}

	orderReq := payload.BuildOrder(order, cart, s.cfg.Merchant, s.cfg.OrderIDDelimiter, s.cfg.FulfillmentURL)
	body, err := json.Marshal(orderReq)
	if err != nil {
		s.audit.Error(actor + "Checkout process failed - " + err.Error())
		return models.FlowResult{
			ErrorMessage: err.Error(),
			Notice:       "There seems to be a problem with the payment process, please try again.",
		}
	}

	s.audit.Transaction(actor + "Transaction request send to GNU Taler backend")

	created := s.backend.Call(ctx, http.MethodPost, string(body), taler.PurposeCreateOrder)
	if !created.Success {
		s.audit.Error(fmt.Sprintf("%sAn error occurred during the first request to the GNU Taler backend - %d - %s",
			actor, created.HTTPStatus, created.ErrorMessage))
		s.cancelOrder(ctx, orderID)
		return s.failResult(created.HTTPStatus, created.ErrorMessage)
	}

	confirmationID, err := taler.ExtractOrderID(created.Body)
	if err != nil {
		s.audit.Error(actor + "An error occurred during the first request to the GNU Taler backend - " + err.Error())
		s.cancelOrder(ctx, orderID)
		return s.failResult(created.HTTPStatus, err.Error())
	}

	confirmed := s.backend.Call(ctx, http.MethodGet, confirmationID, taler.PurposeConfirmPayment)
	if !confirmed.Success {
		s.audit.Error(fmt.Sprintf("%sAn error occurred during the second request to the GNU Taler backend - %d - %s",
			actor, confirmed.HTTPStatus, confirmed.ErrorMessage))
		s.cancelOrder(ctx, orderID)
		return s.failResult(confirmed.HTTPStatus, confirmed.ErrorMessage)
	}

	redirectURL, err := taler.ExtractPaymentRedirectURL(confirmed.Body)
	if err != nil {
		s.audit.Error(actor + "An error occurred during the second request to the GNU Taler backend - " + err.Error())
		s.cancelOrder(ctx, orderID)
		return s.failResult(confirmed.HTTPStatus, err.Error())
	}

	s.audit.Transaction(actor + "Successfully received redirect url to wallet from GNU Taler Backend")

	if err := s.storefront.MarkOrderPaid(ctx, orderID); err != nil {
		s.logger.WithError(err).WithField("order_id", orderID).Error("failed to mark order paid")
		s.audit.Error(actor + "Order could not be marked as paid - " + err.Error())
	}
	if err := s.storefront.ClearCart(ctx); err != nil {
		s.logger.WithError(err).WithField("order_id", orderID).Error("failed to clear cart")
	}

	s.audit.Transaction(actor + "Customer is being redirected to the payment confirmation site")

	return models.FlowResult{
		Success:     true,
		RedirectURL: redirectURL,
		HTTPStatus:  confirmed.HTTPStatus,
	}
}

// CompleteFulfillment handles the wallet's return to the fulfillment
// callback. rawOrderID is "{orderKey}-{orderNumber}" from the query
// string; an empty value sends the browser to the generic account page.
// The returned URL is where the browser gets redirected.
func (s *CheckoutService) CompleteFulfillment(ctx context.Context, rawOrderID, userID string) string {
	if userID == "" {
		userID = models.GuestUserID
	}

	if rawOrderID == "" {
		return s.cfg.SiteURL + "/my-account/orders/"
	}

	parts := strings.SplitN(rawOrderID, "-", 2)
	if len(parts) != 2 {
		s.audit.Error(actorPrefix(userID, rawOrderID) + "Fulfillment callback carried a malformed order_id")
		return s.cfg.SiteURL + "/my-account/orders/"
	}
	orderKey, orderNumber := parts[0], parts[1]
	actor := actorPrefix(userID, orderNumber)

	if err := s.storefront.MarkOrderPaid(ctx, orderNumber); err != nil {
		s.logger.WithError(err).WithField("order_id", orderNumber).Error("failed to mark order paid")
		s.audit.Error(actor + "Order could not be marked as paid - " + err.Error())
	}
	if err := s.storefront.ClearCart(ctx); err != nil {
		s.logger.WithError(err).WithField("order_id", orderNumber).Error("failed to clear cart")
	}

	s.audit.Transaction(actor + "Payment succeeded and the user was forwarded to the order confirmed page")

	return s.cfg.SiteURL + "/checkout/order-received/" + orderNumber + "/?key=" + orderKey
}

func (s *CheckoutService) cancelOrder(ctx context.Context, orderID string) {
	if err := s.storefront.SetOrderStatus(ctx, orderID, "cancelled"); err != nil {
		s.logger.WithError(err).WithField("order_id", orderID).Warn("failed to cancel order")
	}
}

func (s *CheckoutService) failResult(status int, message string) models.FlowResult {
	return models.FlowResult{
		HTTPStatus:   status,
		ErrorMessage: message,
		Notice: fmt.Sprintf("There seems to be a problem with the payment process, please try again or send the following message to a system administrator: %d - %s",
			status, message),
	}
}

func actorPrefix(userID, orderID string) string {
	return fmt.Sprintf("Userid: %s - Orderid: %s - ", userID, orderID)
}
