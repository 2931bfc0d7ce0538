// Package payments holds the concrete Stripe SDK adapter.
package payments

import (
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
)

// StripeClient creates hosted checkout sessions through the Stripe API.
type StripeClient struct{}

// NewStripeClient sets the package-level API key the SDK expects and
// returns the adapter.
func NewStripeClient(apiKey string) *StripeClient {
	stripe.Key = apiKey
	return &StripeClient{}
}

func (c *StripeClient) NewSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return session.New(params)
}
