package taler

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"taler-gateway-service/internal/models"
)

// Purpose tags select which backend endpoint a request targets. They are
// case-sensitive; any unknown purpose (including the empty probe) hits the
// base URL unchanged.
const (
	PurposeCreateOrder    = "create_order"
	PurposeConfirmPayment = "confirm_payment"
	PurposeCreateRefund   = "create_refund"
	PurposeProbe          = ""
)

// Client issues requests against one Taler merchant backend. It is safe
// for concurrent use; all state is read-only after construction.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a backend client for the given base URL and API key.
// The API key goes out verbatim in the Authorization header on every call
// (e.g. "ApiKey sandbox").
func NewClient(baseURL, apiKey string) *Client {
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
		ResponseHeaderTimeout: 15 * time.Second,
		ForceAttemptHTTP2:     true,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

// BuildURL constructs the endpoint URL for a purpose. For the payment
// confirmation the body is the backend-assigned order identifier, not a
// JSON payload, and rides in the query string.
func BuildURL(base, purpose, body string) string {
	switch purpose {
	case PurposeCreateOrder:
		return base + "/order"
	case PurposeConfirmPayment:
		return base + "/check-payment?order_id=" + body
	case PurposeCreateRefund:
		return base + "/refund"
	}
	return base
}

// Call performs one HTTP attempt against the backend and classifies the
// result. Exactly one attempt: no retries, no backoff. POST and PUT attach
// body as the request payload when non-empty; GET goes without a body; any
// other method string is sent through as a custom verb and left for the
// backend to reject.
func (c *Client) Call(ctx context.Context, method, body, purpose string) models.Outcome {
	url := BuildURL(c.baseURL, purpose, body)

	var payload io.Reader
	switch method {
	case http.MethodPost, http.MethodPut:
		if body != "" {
			payload = strings.NewReader(body)
		}
	case http.MethodGet:
		// no body
	default:
		// custom verb, sent as-is
	}

	req, err := http.NewRequestWithContext(ctx, method, url, payload)
	if err != nil {
		return Classify(err, 0, "")
	}

	// The explicit Authorization header is what the backend keys on; the
	// redundant basic-auth credential is tolerated and kept for parity
	// with deployments that front the backend with basic auth.
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Add("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(c.apiKey+":")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Classify(err, 0, "")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Classify(err, resp.StatusCode, "")
	}

	return Classify(nil, resp.StatusCode, string(raw))
}
