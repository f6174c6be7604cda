package taler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractOrderID(t *testing.T) {
	id, err := ExtractOrderID(`{"order_id":"wc_test_1"}`)
	require.NoError(t, err)
	assert.Equal(t, "wc_test_1", id)
}

func TestExtractOrderIDIgnoresOtherFields(t *testing.T) {
	id, err := ExtractOrderID(`{"token":"abc","order_id":"wc_test_2","ttl":30}`)
	require.NoError(t, err)
	assert.Equal(t, "wc_test_2", id)
}

func TestExtractPaymentRedirectURL(t *testing.T) {
	url, err := ExtractPaymentRedirectURL(`{"paid":true,"payment_redirect_url":"https://wallet/x"}`)
	require.NoError(t, err)
	assert.Equal(t, "https://wallet/x", url)
}

func TestExtractRefundRedirectURL(t *testing.T) {
	url, err := ExtractRefundRedirectURL(`{"refund_granted":true,"refund_redirect_url":"https://refund/y"}`)
	require.NoError(t, err)
	assert.Equal(t, "https://refund/y", url)
}

func TestExtractMissingFieldIsParseError(t *testing.T) {
	_, err := ExtractOrderID(`{"something_else":"x"}`)
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "order_id", parseErr.Field)
}

func TestExtractMalformedBodyIsParseError(t *testing.T) {
	for _, body := range []string{"", "not json", `["array"]`, `{"order_id":42}`} {
		_, err := ExtractOrderID(body)

		var parseErr *ParseError
		require.True(t, errors.As(err, &parseErr), "body %q", body)
	}
}

func TestExtractEmptyValueIsParseError(t *testing.T) {
	_, err := ExtractPaymentRedirectURL(`{"payment_redirect_url":""}`)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "payment_redirect_url", parseErr.Field)
}
