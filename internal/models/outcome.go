package models

// Outcome is the normalized result of one HTTP attempt against the Taler
// backend. Exactly one of Body or ErrorMessage is meaningful: Body carries
// the raw success payload, ErrorMessage the classified failure label or
// transport diagnostic.
type Outcome struct {
	Success      bool
	HTTPStatus   int
	Body         string
	ErrorMessage string
}

// FlowResult is the terminal value a checkout flow hands back to the
// storefront. Failure is a normal return value here, never a panic or a
// raised error: the storefront decides how to present it.
type FlowResult struct {
	Success      bool
	RedirectURL  string
	HTTPStatus   int
	ErrorMessage string
	// Notice is the customer-facing text shown by the storefront on
	// failure. It never contains raw backend bodies.
	Notice string
}
