package client

import (
	"context"
	"errors"
	"fmt"

	"paper-checkout/internal/domain/model"

	"github.com/rs/zerolog"
)

// ErrNotTrigger is returned when activating a plain link.
var ErrNotTrigger = errors.New("affordance is a link, not a trigger")

type AffordanceKind int

const (
	// InlineTrigger opens the hosted checkout in place.
	InlineTrigger AffordanceKind = iota
	// ExternalLink navigates to the checkout in a new browsing context.
	ExternalLink
)

func (k AffordanceKind) String() string {
	if k == ExternalLink {
		return "external_link"
	}
	return "inline_trigger"
}

const (
	checkoutLabel = "Checkout"
	linkTarget    = "_blank"
	linkRel       = "noopener noreferrer"
)

// CheckoutOpener shows the hosted checkout for a link intent url.
type CheckoutOpener interface {
	OpenCheckout(ctx context.Context, url string) error
}

// LogOpener stands in for the checkout widget where none exists (CLI, headless).
type LogOpener struct {
	Log *zerolog.Logger
}

func (o LogOpener) OpenCheckout(_ context.Context, url string) error {
	if o.Log != nil {
		o.Log.Info().Str("url", url).Msg("checkout.open")
	}
	return nil
}

// Affordance is what the consumer renders once a link intent is held.
type Affordance struct {
	Kind       AffordanceKind
	Label      string
	PriceLabel string
	Href       string
	Target     string
	Rel        string

	url    string
	opener CheckoutOpener
}

func newAffordance(intent model.CheckoutLinkIntent, external bool, opener CheckoutOpener) *Affordance {
	a := &Affordance{
		Kind:       InlineTrigger,
		Label:      checkoutLabel,
		PriceLabel: fmt.Sprintf("$%s %s", intent.Price.Value, intent.Price.Currency),
		url:        intent.URL,
		opener:     opener,
	}
	if external {
		a.Kind = ExternalLink
		a.Href = intent.URL
		a.Target = linkTarget
		a.Rel = linkRel
	}
	return a
}

// Activate opens the hosted checkout. Links are followed by the host, not here.
func (a *Affordance) Activate(ctx context.Context) error {
	if a.Kind != InlineTrigger {
		return ErrNotTrigger
	}
	return a.opener.OpenCheckout(ctx, a.url)
}

func (a *Affordance) String() string {
	if a.Kind == ExternalLink {
		return fmt.Sprintf("[%s  %s] <a href=%q target=%q rel=%q>", a.Label, a.PriceLabel, a.Href, a.Target, a.Rel)
	}
	return fmt.Sprintf("[%s  %s]", a.Label, a.PriceLabel)
}
