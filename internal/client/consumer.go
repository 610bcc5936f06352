package client

import (
	"context"
	"errors"
	"sync"

	"paper-checkout/internal/domain/model"
	"paper-checkout/internal/infra/logging"

	"github.com/rs/zerolog"
)

// Messages surfaced to the user when a fetch does not produce a link intent.
const (
	MsgSomethingWrong  = "Something went wrong"
	MsgRequestFailed   = "Failed to make request to the api."
	MsgGenerateFailure = "Something went wrong when generating the checkout link. "
)

// IntentFetcher is the gateway call the consumer depends on.
type IntentFetcher interface {
	CreateLinkIntent(ctx context.Context, title, tokenID, price string) (model.Envelope[model.CheckoutLinkIntent], error)
}

// Notifier surfaces a failure message to whoever is driving the consumer.
type Notifier interface {
	Notify(msg string)
}

// LogNotifier reports failures through zerolog.
type LogNotifier struct {
	Log *zerolog.Logger
}

func (n LogNotifier) Notify(msg string) {
	if n.Log != nil {
		n.Log.Error().Str("alert", msg).Msg("checkout.notify")
	}
}

// Inputs is the tuple a link intent is requested for.
type Inputs struct {
	Title   string
	TokenID string
	Price   string
}

// Consumer requests a checkout link intent for its current inputs and holds
// the result for rendering. Fetches are never cancelled: when inputs change
// mid-flight, whichever response resolves last overwrites the held intent.
type Consumer struct {
	fetcher  IntentFetcher
	notifier Notifier
	opener   CheckoutOpener
	log      *zerolog.Logger

	mu        sync.Mutex
	ready     bool
	inputs    Inputs
	hasInputs bool
	issued    *Inputs
	intent    *model.CheckoutLinkIntent

	inflight sync.WaitGroup
}

// NewConsumer wires a consumer. Nil notifier and opener fall back to logging.
func NewConsumer(fetcher IntentFetcher, notifier Notifier, opener CheckoutOpener, logger *zerolog.Logger) *Consumer {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	if notifier == nil {
		notifier = LogNotifier{Log: logger}
	}
	if opener == nil {
		opener = LogOpener{Log: logger}
	}
	return &Consumer{fetcher: fetcher, notifier: notifier, opener: opener, log: logger}
}

// SetReady marks the host route as resolved and fetches for the current inputs.
func (c *Consumer) SetReady(ctx context.Context) {
	c.mu.Lock()
	c.ready = true
	in, ok := c.nextLocked()
	c.mu.Unlock()
	if ok {
		c.fetch(ctx, in)
	}
}

// SetInputs records new inputs and fetches if the tuple differs from the last one issued.
func (c *Consumer) SetInputs(ctx context.Context, title, tokenID, price string) {
	c.mu.Lock()
	c.inputs = Inputs{Title: title, TokenID: tokenID, Price: price}
	c.hasInputs = true
	in, ok := c.nextLocked()
	c.mu.Unlock()
	if ok {
		c.fetch(ctx, in)
	}
}

func (c *Consumer) nextLocked() (Inputs, bool) {
	if !c.ready || !c.hasInputs {
		return Inputs{}, false
	}
	if c.issued != nil && *c.issued == c.inputs {
		return Inputs{}, false
	}
	in := c.inputs
	c.issued = &in
	c.inflight.Add(1)
	return in, true
}

func (c *Consumer) fetch(ctx context.Context, in Inputs) {
	ctx = context.WithoutCancel(ctx)
	go func() {
		defer c.inflight.Done()
		l := logging.With(ctx, c.log).With().
			Str("title", in.Title).Str("token_id", in.TokenID).Str("price", in.Price).Logger()

		env, err := c.fetcher.CreateLinkIntent(ctx, in.Title, in.TokenID, in.Price)
		if err != nil {
			msg := MsgSomethingWrong
			if errors.Is(err, ErrBadStatus) {
				msg = MsgRequestFailed
			}
			l.Warn().Err(err).Msg("checkout.fetch.failed")
			c.store(nil)
			c.notifier.Notify(msg)
			return
		}

		env.Match(
			func(intent model.CheckoutLinkIntent) {
				l.Debug().Str("url", intent.URL).Msg("checkout.fetch.ok")
				c.store(&intent)
			},
			func(f model.Failure) {
				l.Warn().Str("error", f.Error).Msg("checkout.fetch.rejected")
				c.store(nil)
				c.notifier.Notify(MsgGenerateFailure + f.Error)
			},
		)
	}()
}

func (c *Consumer) store(intent *model.CheckoutLinkIntent) {
	c.mu.Lock()
	c.intent = intent
	c.mu.Unlock()
}

// Intent returns a copy of the held intent, or nil.
func (c *Consumer) Intent() *model.CheckoutLinkIntent {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.intent == nil {
		return nil
	}
	cp := *c.intent
	return &cp
}

// Wait blocks until every issued fetch has settled. It must not race with
// SetReady or SetInputs.
func (c *Consumer) Wait() {
	c.inflight.Wait()
}

// Render returns nil until the route is ready and an intent is held.
func (c *Consumer) Render(external bool) *Affordance {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.ready || c.intent == nil {
		return nil
	}
	return newAffordance(*c.intent, external, c.opener)
}
