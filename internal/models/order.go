package models

// CreateOrderRequest is the body of POST {backend}/order. The Taler merchant
// backend expects the order wrapped in an "order" envelope.
type CreateOrderRequest struct {
	Order OrderPayload `json:"order"`
}

// OrderPayload describes one storefront order in the backend's order schema.
type OrderPayload struct {
	// Amount is "{currency}:{decimal}", e.g. "KUDOS:10.50". The backend is
	// the authority on currency acceptance; no validation happens here.
	Amount         string        `json:"amount"`
	Summary        string        `json:"summary"`
	FulfillmentURL string        `json:"fulfillment_url"`
	OrderID        string        `json:"order_id"`
	Merchant       MerchantInfo  `json:"merchant"`
	Products       []ProductLine `json:"products"`
}

// ProductLine is one cart line in the backend's product schema.
type ProductLine struct {
	Description      string  `json:"description"`
	Quantity         int     `json:"quantity"`
	Price            string  `json:"price"`
	ProductID        int64   `json:"product_id"`
	DeliveryLocation Address `json:"delivery_location"`
}

// MerchantInfo carries the webshop's identity. It is sent empty when the
// merchant has not opted into sharing this information.
type MerchantInfo struct {
	Name    string   `json:"name,omitempty"`
	Address *Address `json:"address,omitempty"`
}

// Address is a backend delivery or merchant location. The key spelling
// ("ZIP code", "street number") is part of the wire contract.
type Address struct {
	Country      string `json:"country"`
	State        string `json:"state"`
	City         string `json:"city"`
	PostalCode   string `json:"ZIP code"`
	Street       string `json:"street"`
	StreetNumber string `json:"street number"`
}

// RefundPayload is the body of POST {backend}/refund.
type RefundPayload struct {
	OrderID string `json:"order_id"`
	// Refund is the amount in "{currency}:{decimal}" form.
	Refund   string `json:"refund"`
	Instance string `json:"instance"`
	Reason   string `json:"reason"`
}

// RefundInstance is the only merchant instance this integration targets.
const RefundInstance = "default"
