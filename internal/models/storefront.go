package models

// StorefrontOrder is the slice of an order record this service needs from
// the storefront platform. Totals and prices arrive as already-formatted
// decimal strings; this service performs no rounding.
type StorefrontOrder struct {
	ID          string          `json:"id"`
	Total       string          `json:"total"`
	Currency    string          `json:"currency"`
	OrderKey    string          `json:"orderKey"`
	OrderNumber string          `json:"orderNumber"`
	Status      string          `json:"status"`
	Shipping    ShippingAddress `json:"shippingAddress"`
}

// ShippingAddress is the raw shipping address as the storefront stores it.
// Line1 is a single free-text line; street and house number are only
// separated when the order payload is built.
type ShippingAddress struct {
	Country  string `json:"country"`
	State    string `json:"state"`
	City     string `json:"city"`
	Postcode string `json:"postcode"`
	Line1    string `json:"line1"`
}

// CartLine is one item of the customer's cart as reported by the storefront.
type CartLine struct {
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
	ProductID int64  `json:"productId"`
}

// GuestUserID is the actor recorded when no customer identity accompanies
// a request.
const GuestUserID = "Guest"
