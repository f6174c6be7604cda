package clients

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"taler-gateway-service/internal/models"
)

// StorefrontClient talks to the storefront platform's internal API. It is
// the only place this service touches storefront state: order lookups,
// cart contents, status transitions, order notes.
type StorefrontClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewStorefrontClient creates a client for the storefront internal API.
func NewStorefrontClient(baseURL string) *StorefrontClient {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
		ForceAttemptHTTP2:     true,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}

	return &StorefrontClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   10 * time.Second,
			Transport: transport,
		},
	}
}

// GetOrder fetches one order record.
func (c *StorefrontClient) GetOrder(ctx context.Context, orderID string) (*models.StorefrontOrder, error) {
	var order models.StorefrontOrder
	if err := c.get(ctx, fmt.Sprintf("/internal/orders/%s", orderID), &order); err != nil {
		return nil, fmt.Errorf("get order %s: %w", orderID, err)
	}
	return &order, nil
}

// GetCart fetches the current cart contents for the checkout in progress.
func (c *StorefrontClient) GetCart(ctx context.Context) ([]models.CartLine, error) {
	var cart []models.CartLine
	if err := c.get(ctx, "/internal/cart", &cart); err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return cart, nil
}

// MarkOrderPaid records a completed payment on the order.
func (c *StorefrontClient) MarkOrderPaid(ctx context.Context, orderID string) error {
	if err := c.post(ctx, fmt.Sprintf("/internal/orders/%s/payment-complete", orderID), nil); err != nil {
		return fmt.Errorf("mark order %s paid: %w", orderID, err)
	}
	return nil
}

// ClearCart empties the customer's cart after a completed payment.
func (c *StorefrontClient) ClearCart(ctx context.Context) error {
	if err := c.post(ctx, "/internal/cart/clear", nil); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// SetOrderStatus moves the order to the given storefront status.
func (c *StorefrontClient) SetOrderStatus(ctx context.Context, orderID, status string) error {
	body := map[string]string{"status": status}
	if err := c.post(ctx, fmt.Sprintf("/internal/orders/%s/status", orderID), body); err != nil {
		return fmt.Errorf("set order %s status %q: %w", orderID, status, err)
	}
	return nil
}

// AddOrderNote attaches an admin-visible note to the order.
func (c *StorefrontClient) AddOrderNote(ctx context.Context, orderID, note string) error {
	body := map[string]string{"note": note}
	if err := c.post(ctx, fmt.Sprintf("/internal/orders/%s/notes", orderID), body); err != nil {
		return fmt.Errorf("add note to order %s: %w", orderID, err)
	}
	return nil
}

func (c *StorefrontClient) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-Internal-Service", "taler-gateway-service")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("storefront returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *StorefrontClient) post(ctx context.Context, path string, body interface{}) error {
	var payload bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&payload).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, &payload)
	if err != nil {
		return err
	}
	req.Header.Set("X-Internal-Service", "taler-gateway-service")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("storefront returned status %d", resp.StatusCode)
	}

	return nil
}
