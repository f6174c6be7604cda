package taler

import (
	"taler-gateway-service/internal/models"
)

// Classify maps a completed HTTP attempt to a normalized outcome. It is a
// pure function of its inputs: no logging, no side effects. Callers decide
// what to do with the result.
//
// A transport-level error always wins, carrying the transport diagnostic
// verbatim; status holds whatever partial code was obtained (usually zero).
// A 200 passes the raw body through untouched for the caller to parse.
// Everything else collapses onto a fixed label set so that raw backend
// error bodies never reach an operator or customer.
func Classify(transportErr error, status int, body string) models.Outcome {
	if transportErr != nil {
		return models.Outcome{
			Success:      false,
			HTTPStatus:   status,
			ErrorMessage: transportErr.Error(),
		}
	}

	if status == 200 {
		return models.Outcome{
			Success:    true,
			HTTPStatus: status,
			Body:       body,
		}
	}

	if status >= 400 && status <= 499 {
		return models.Outcome{
			Success:      false,
			HTTPStatus:   status,
			ErrorMessage: clientErrorLabel(status),
		}
	}

	if status >= 500 && status <= 599 {
		return models.Outcome{
			Success:      false,
			HTTPStatus:   status,
			ErrorMessage: serverErrorLabel(status),
		}
	}

	return models.Outcome{
		Success:      false,
		HTTPStatus:   status,
		ErrorMessage: "http status error",
	}
}

func clientErrorLabel(status int) string {
	switch status {
	case 400:
		return "Bad request"
	case 401:
		return "Unauthorized"
	case 403:
		return "Forbidden"
	case 404:
		return "Page Not Found"
	default:
		return "4xx Client Error"
	}
}

func serverErrorLabel(status int) string {
	switch status {
	case 500:
		return "Internal Server Error"
	case 502:
		return "Bad Gateway"
	case 503:
		return "Service Unavailable"
	case 504:
		return "Gateway Timeout"
	default:
		return "5xx Client Error"
	}
}
