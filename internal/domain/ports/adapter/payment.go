package adapter

import (
	"context"

	"paper-checkout/internal/domain/model"
)

// CheckoutProvider is the hex port for the hosted checkout provider.
type CheckoutProvider interface {
	Name() string

	// SendCheckoutIntentRequest posts body to the provider's checkout-link-intent endpoint.
	// An error means the call could not complete or its body could not be read;
	// a provider rejection is a response whose OK() is false.
	SendCheckoutIntentRequest(ctx context.Context, body model.ProviderCheckoutRequest) (*model.ProviderResponse, error)
}
