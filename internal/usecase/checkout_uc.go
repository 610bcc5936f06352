// File: internal/usecase/checkout_uc.go
package usecase

import (
	"context"

	"paper-checkout/internal/config"
	"paper-checkout/internal/domain/model"
	"paper-checkout/internal/domain/ports/adapter"
	"paper-checkout/internal/infra/logging"
	"paper-checkout/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ CheckoutUseCase = (*checkoutUC)(nil)

type CheckoutUseCase interface {
	// CreateLinkIntent validates req, asks the provider for a one-time checkout link
	// and maps every outcome into an Envelope. It never returns a Go error: each
	// terminal state is a Success or a Failure.
	CreateLinkIntent(ctx context.Context, req model.CheckoutIntentRequest) model.Envelope[model.CheckoutLinkIntent]
}

type checkoutUC struct {
	provider adapter.CheckoutProvider
	cfg      config.PaperConfig
	log      *zerolog.Logger
}

// NewCheckoutUseCase wires the provider port with the read-only Paper settings.
// logger may be nil.
func NewCheckoutUseCase(provider adapter.CheckoutProvider, cfg config.PaperConfig, logger *zerolog.Logger) CheckoutUseCase {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &checkoutUC{provider: provider, cfg: cfg, log: logger}
}

func (u *checkoutUC) CreateLinkIntent(ctx context.Context, req model.CheckoutIntentRequest) model.Envelope[model.CheckoutLinkIntent] {
	l := logging.With(ctx, u.log)
	defer logging.TraceDuration(l, "CheckoutUC.CreateLinkIntent")()

	if !req.Valid() {
		l.Warn().
			Interface("info", req.Echo()).
			Msg("checkout.intent.bad_args")
		return u.fail(model.KindValidation, model.MsgBadArgs, req.Echo())
	}

	body := BuildProviderRequest(u.cfg, req)
	resp, err := u.provider.SendCheckoutIntentRequest(ctx, body)
	if err != nil {
		l.Error().
			Err(err).
			Str("provider", u.provider.Name()).
			Msg("checkout.intent.transport_failed")
		return u.fail(model.KindTransport, model.MsgTransportFailure, nil)
	}

	if !resp.OK() {
		msg := resp.Body.ErrorMessage()
		if msg == "" {
			msg = model.MsgProviderFallback
		}
		l.Warn().
			Int("status", resp.StatusCode).
			Str("provider_error", msg).
			Msg("checkout.intent.provider_rejected")
		return u.fail(model.KindProviderRejected, msg, resp.Body.InfoValue())
	}

	intent := model.CheckoutLinkIntent{URL: resp.Body.CheckoutLinkIntentURL}
	if p := resp.Body.EstimatedPrice; p != nil {
		intent.Price = model.Price{Value: p.Value, Currency: p.Currency}
	}

	metrics.IncCheckoutIntent(string(model.KindNone))
	l.Info().
		Str("title", req.Title.String()).
		Str("token_id", req.TokenID.String()).
		Str("estimated_value", intent.Price.Value).
		Str("estimated_currency", intent.Price.Currency).
		Msg("checkout.intent.created")
	return model.Ok(intent)
}

func (u *checkoutUC) fail(kind model.FailureKind, msg string, info any) model.Envelope[model.CheckoutLinkIntent] {
	metrics.IncCheckoutIntent(string(kind))
	return model.Fail[model.CheckoutLinkIntent](msg, info)
}

// BuildProviderRequest renders Paper's fixed-shape body. Wallet and quantity stay
// as provider-side placeholders; the unit price is multiplied by $QUANTITY on Paper's side.
func BuildProviderRequest(cfg config.PaperConfig, req model.CheckoutIntentRequest) model.ProviderCheckoutRequest {
	return model.ProviderCheckoutRequest{
		Title:      req.Title.String(),
		ContractID: cfg.ContractID,
		MintMethod: model.MintMethod{
			Name: cfg.MintFunction,
			Args: model.MintArgs{
				To:       model.PlaceholderWallet,
				Quantity: model.PlaceholderQuantity,
				TokenID:  req.TokenID.String(),
			},
			Payment: model.ProviderAmount{
				Value:    req.Price.String() + " * " + model.PlaceholderQuantity,
				Currency: cfg.Currency,
			},
		},
	}
}
