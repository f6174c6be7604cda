// Package payload turns storefront orders into the Taler backend's JSON
// order and refund schemas. Everything here is a pure data transform; the
// orchestrators own logging and the HTTP calls.
package payload

import (
	"strings"
	"unicode"

	"taler-gateway-service/internal/models"
)

// MerchantSettings is the slice of merchant configuration the builders
// need: the webshop identity and the store location used when merchant
// information sharing is enabled.
type MerchantSettings struct {
	Name      string
	ShareInfo bool
	// StoreCountry is "CC" or "CC:ST" (country with optional state),
	// split on the colon.
	StoreCountry  string
	StoreCity     string
	StorePostcode string
	// StoreAddress is a single free-text line, split into street and
	// house number by SplitStreet.
	StoreAddress string
}

// BuildOrder assembles the create-order payload for one storefront order.
// The order identifier is orderKey + delimiter + orderNumber; the
// delimiter differs between the two integration modes and is passed in by
// the caller. The summary wording and the per-product description prefix
// are part of the wire contract.
func BuildOrder(order *models.StorefrontOrder, cart []models.CartLine, settings MerchantSettings, delimiter, fulfillmentURL string) models.CreateOrderRequest {
	products := make([]models.ProductLine, 0, len(cart))
	for _, line := range cart {
		products = append(products, models.ProductLine{
			Description:      "Order of product: " + line.Title,
			Quantity:         line.Quantity,
			Price:            order.Currency + ":" + line.Price,
			ProductID:        line.ProductID,
			DeliveryLocation: deliveryLocation(order.Shipping),
		})
	}

	return models.CreateOrderRequest{
		Order: models.OrderPayload{
			Amount:         order.Currency + ":" + order.Total,
			Summary:        "Order from the merchant " + settings.Name + ": ",
			FulfillmentURL: fulfillmentURL,
			OrderID:        order.OrderKey + delimiter + order.OrderNumber,
			Merchant:       merchantInfo(settings),
			Products:       products,
		},
	}
}

// BuildRefund assembles the refund payload. The amount is formatted as
// "{currency}:{decimal}" with no rounding or currency validation; the
// backend is the authority on what it accepts.
func BuildRefund(order *models.StorefrontOrder, amount, reason, delimiter string) models.RefundPayload {
	return models.RefundPayload{
		OrderID:  order.OrderKey + delimiter + order.OrderNumber,
		Refund:   order.Currency + ":" + amount,
		Instance: models.RefundInstance,
		Reason:   reason,
	}
}

func deliveryLocation(shipping models.ShippingAddress) models.Address {
	street, number := SplitStreet(shipping.Line1)
	return models.Address{
		Country:      shipping.Country,
		State:        shipping.State,
		City:         shipping.City,
		PostalCode:   shipping.Postcode,
		Street:       street,
		StreetNumber: number,
	}
}

// merchantInfo returns the merchant block, or an empty structure when the
// merchant has not opted into sharing. The field itself is always present
// on the wire.
func merchantInfo(settings MerchantSettings) models.MerchantInfo {
	if !settings.ShareInfo {
		return models.MerchantInfo{}
	}

	country, state := splitCountryState(settings.StoreCountry)
	street, number := SplitStreet(settings.StoreAddress)

	return models.MerchantInfo{
		Name: settings.Name,
		Address: &models.Address{
			Country:      country,
			State:        state,
			City:         settings.StoreCity,
			PostalCode:   settings.StorePostcode,
			Street:       street,
			StreetNumber: number,
		},
	}
}

// SplitStreet separates a free-text address line into street name and
// house number by splitting on the last whitespace character: everything
// after it is the house number, everything before it the street name, and
// the separator itself is dropped. An address with no whitespace at all is
// treated as a bare house number.
func SplitStreet(address string) (street, number string) {
	runes := []rune(address)
	for i := len(runes) - 1; i >= 0; i-- {
		if unicode.IsSpace(runes[i]) {
			return string(runes[:i]), string(runes[i+1:])
		}
	}
	return "", address
}

func splitCountryState(raw string) (country, state string) {
	parts := strings.SplitN(raw, ":", 2)
	country = parts[0]
	if len(parts) == 2 {
		state = parts[1]
	}
	return country, state
}
