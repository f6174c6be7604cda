package payload

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"taler-gateway-service/internal/models"
)

func TestSplitStreet(t *testing.T) {
	tests := []struct {
		in     string
		street string
		number string
	}{
		{"Main Street 42", "Main Street", "42"},
		{"Hauptstrasse 17a", "Hauptstrasse", "17a"},
		{"NoSpaceAddress", "", "NoSpaceAddress"},
		{"", "", ""},
		{"42", "", "42"},
		// Only the separating whitespace is consumed; everything before
		// it stays verbatim.
		{"Rue  de  la  Paix  5", "Rue  de  la  Paix ", "5"},
	}

	for _, tt := range tests {
		street, number := SplitStreet(tt.in)
		assert.Equal(t, tt.street, street, "street of %q", tt.in)
		assert.Equal(t, tt.number, number, "number of %q", tt.in)
	}
}

func TestSplitStreetIsPure(t *testing.T) {
	s1, n1 := SplitStreet("Main Street 42")
	s2, n2 := SplitStreet("Main Street 42")
	assert.Equal(t, s1, s2)
	assert.Equal(t, n1, n2)
}

func testOrder() *models.StorefrontOrder {
	return &models.StorefrontOrder{
		ID:          "57",
		Total:       "10.50",
		Currency:    "KUDOS",
		OrderKey:    "wc_order_abc123",
		OrderNumber: "57",
		Status:      "pending",
		Shipping: models.ShippingAddress{
			Country:  "DE",
			State:    "BE",
			City:     "Berlin",
			Postcode: "10115",
			Line1:    "Main Street 42",
		},
	}
}

func testCart() []models.CartLine {
	return []models.CartLine{
		{Title: "Coffee Beans", Quantity: 2, Price: "4.00", ProductID: 11},
		{Title: "Mug", Quantity: 1, Price: "2.50", ProductID: 12},
	}
}

func testSettings() MerchantSettings {
	return MerchantSettings{
		Name:          "Demo Shop",
		ShareInfo:     true,
		StoreCountry:  "DE:BE",
		StoreCity:     "Berlin",
		StorePostcode: "10115",
		StoreAddress:  "Shop Alley 7",
	}
}

func TestBuildOrder(t *testing.T) {
	req := BuildOrder(testOrder(), testCart(), testSettings(), "-", "https://gw.example.com/taler/callback")

	order := req.Order
	assert.Equal(t, "KUDOS:10.50", order.Amount)
	assert.Equal(t, "Order from the merchant Demo Shop: ", order.Summary)
	assert.Equal(t, "https://gw.example.com/taler/callback", order.FulfillmentURL)
	assert.Equal(t, "wc_order_abc123-57", order.OrderID)

	require.Len(t, order.Products, 2)
	first := order.Products[0]
	assert.Equal(t, "Order of product: Coffee Beans", first.Description)
	assert.Equal(t, 2, first.Quantity)
	assert.Equal(t, "KUDOS:4.00", first.Price)
	assert.Equal(t, int64(11), first.ProductID)
	assert.Equal(t, "Main Street", first.DeliveryLocation.Street)
	assert.Equal(t, "42", first.DeliveryLocation.StreetNumber)
	assert.Equal(t, "DE", first.DeliveryLocation.Country)

	// Delivery location is recomputed identically per line.
	assert.Equal(t, first.DeliveryLocation, order.Products[1].DeliveryLocation)
}

func TestBuildOrderStaticModeDelimiter(t *testing.T) {
	req := BuildOrder(testOrder(), nil, testSettings(), "_", "https://shop.example.com/thanks")
	assert.Equal(t, "wc_order_abc123_57", req.Order.OrderID)
	assert.Equal(t, "https://shop.example.com/thanks", req.Order.FulfillmentURL)
}

func TestBuildOrderMerchantInfo(t *testing.T) {
	req := BuildOrder(testOrder(), nil, testSettings(), "-", "u")

	merchant := req.Order.Merchant
	assert.Equal(t, "Demo Shop", merchant.Name)
	require.NotNil(t, merchant.Address)
	assert.Equal(t, "DE", merchant.Address.Country)
	assert.Equal(t, "BE", merchant.Address.State)
	assert.Equal(t, "Berlin", merchant.Address.City)
	assert.Equal(t, "10115", merchant.Address.PostalCode)
	assert.Equal(t, "Shop Alley", merchant.Address.Street)
	assert.Equal(t, "7", merchant.Address.StreetNumber)
}

func TestBuildOrderMerchantInfoDisabled(t *testing.T) {
	settings := testSettings()
	settings.ShareInfo = false

	req := BuildOrder(testOrder(), nil, settings, "-", "u")

	// The field is present on the wire but empty.
	raw, err := json.Marshal(req)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"merchant":{}`)
}

func TestBuildOrderWireKeys(t *testing.T) {
	raw, err := json.Marshal(BuildOrder(testOrder(), testCart(), testSettings(), "-", "u"))
	require.NoError(t, err)

	body := string(raw)
	// Exact key spelling is part of the backend contract.
	assert.Contains(t, body, `"fulfillment_url"`)
	assert.Contains(t, body, `"order_id"`)
	assert.Contains(t, body, `"product_id"`)
	assert.Contains(t, body, `"delivery_location"`)
	assert.Contains(t, body, `"ZIP code"`)
	assert.Contains(t, body, `"street number"`)

	var envelope map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &envelope))
	assert.Contains(t, envelope, "order")
}

func TestBuildRefund(t *testing.T) {
	refund := BuildRefund(testOrder(), "3.25", "damaged goods", "-")

	assert.Equal(t, "wc_order_abc123-57", refund.OrderID)
	assert.Equal(t, "KUDOS:3.25", refund.Refund)
	assert.Equal(t, "default", refund.Instance)
	assert.Equal(t, "damaged goods", refund.Reason)
}

func TestBuildRefundNoRounding(t *testing.T) {
	// The amount string goes out untouched; the backend decides what it
	// accepts.
	refund := BuildRefund(testOrder(), "3.257", "", "_")
	assert.Equal(t, "KUDOS:3.257", refund.Refund)
	assert.Equal(t, "wc_order_abc123_57", refund.OrderID)
}
