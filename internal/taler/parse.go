package taler

import (
	"encoding/json"
	"fmt"
)

// ParseError reports a backend success response that does not carry an
// expected field. The backend said 200 but the body is unusable, which is
// distinct from every transport or status failure and must stay
// distinguishable for the orchestrators.
type ParseError struct {
	Field string
	Cause error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("backend response missing %q: %v", e.Field, e.Cause)
	}
	return fmt.Sprintf("backend response missing %q", e.Field)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// ExtractOrderID pulls the backend-assigned order identifier out of a
// create-order success body.
func ExtractOrderID(body string) (string, error) {
	return stringField(body, "order_id")
}

// ExtractPaymentRedirectURL pulls the wallet redirect URL out of a
// check-payment success body.
func ExtractPaymentRedirectURL(body string) (string, error) {
	return stringField(body, "payment_redirect_url")
}

// ExtractRefundRedirectURL pulls the refund confirmation URL out of a
// refund success body.
func ExtractRefundRedirectURL(body string) (string, error) {
	return stringField(body, "refund_redirect_url")
}

func stringField(body, field string) (string, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return "", &ParseError{Field: field, Cause: err}
	}

	raw, ok := doc[field]
	if !ok {
		return "", &ParseError{Field: field}
	}

	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", &ParseError{Field: field, Cause: err}
	}
	if value == "" {
		return "", &ParseError{Field: field}
	}
	return value, nil
}
