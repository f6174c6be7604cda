package taler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifySuccess(t *testing.T) {
	body := `{"order_id":"wc_test_1"}`
	outcome := Classify(nil, 200, body)

	assert.True(t, outcome.Success)
	assert.Equal(t, 200, outcome.HTTPStatus)
	assert.Equal(t, body, outcome.Body, "success body must pass through unchanged")
	assert.Empty(t, outcome.ErrorMessage)
}

func TestClassifyTransportError(t *testing.T) {
	outcome := Classify(errors.New("dial tcp: connection refused"), 0, "")

	assert.False(t, outcome.Success)
	assert.Equal(t, 0, outcome.HTTPStatus)
	assert.Equal(t, "dial tcp: connection refused", outcome.ErrorMessage)
}

func TestClassifyTransportErrorWinsOverStatus(t *testing.T) {
	outcome := Classify(errors.New("unexpected EOF"), 200, "partial")

	assert.False(t, outcome.Success)
	assert.Equal(t, 200, outcome.HTTPStatus)
	assert.Equal(t, "unexpected EOF", outcome.ErrorMessage)
	assert.Empty(t, outcome.Body)
}

func TestClassifyClientErrors(t *testing.T) {
	tests := []struct {
		status int
		label  string
	}{
		{400, "Bad request"},
		{401, "Unauthorized"},
		{403, "Forbidden"},
		{404, "Page Not Found"},
		{402, "4xx Client Error"},
		{409, "4xx Client Error"},
		{418, "4xx Client Error"},
		{429, "4xx Client Error"},
		{499, "4xx Client Error"},
	}

	for _, tt := range tests {
		outcome := Classify(nil, tt.status, "ignored error body")
		assert.False(t, outcome.Success, "status %d", tt.status)
		assert.Equal(t, tt.status, outcome.HTTPStatus)
		assert.Equal(t, tt.label, outcome.ErrorMessage, "status %d", tt.status)
		assert.Empty(t, outcome.Body, "error bodies never pass through")
	}
}

func TestClassifyServerErrors(t *testing.T) {
	tests := []struct {
		status int
		label  string
	}{
		{500, "Internal Server Error"},
		{502, "Bad Gateway"},
		{503, "Service Unavailable"},
		{504, "Gateway Timeout"},
		{501, "5xx Client Error"},
		{511, "5xx Client Error"},
		{599, "5xx Client Error"},
	}

	for _, tt := range tests {
		outcome := Classify(nil, tt.status, "")
		assert.False(t, outcome.Success, "status %d", tt.status)
		assert.Equal(t, tt.status, outcome.HTTPStatus)
		assert.Equal(t, tt.label, outcome.ErrorMessage, "status %d", tt.status)
	}
}

func TestClassifyOutOfRangeStatus(t *testing.T) {
	for _, status := range []int{0, 100, 201, 204, 301, 302, 600} {
		outcome := Classify(nil, status, "")
		assert.False(t, outcome.Success, "status %d", status)
		assert.Equal(t, "http status error", outcome.ErrorMessage, "status %d", status)
	}
}

func TestClassifyIsPure(t *testing.T) {
	first := Classify(nil, 503, "body")
	second := Classify(nil, 503, "body")
	assert.Equal(t, first, second)
}
