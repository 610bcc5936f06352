// File: cmd/gateway/main.go
package main

import (
	"context"
	"flag"
	"strings"
	"time"

	"paper-checkout/internal/config"
	"paper-checkout/internal/domain/ports/adapter"
	"paper-checkout/internal/infra/api"
	httpapi "paper-checkout/internal/infra/http"
	"paper-checkout/internal/infra/logging"
	"paper-checkout/internal/infra/metrics"
	"paper-checkout/internal/infra/payment"
	"paper-checkout/internal/infra/telemetry"
	"paper-checkout/internal/usecase"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// Set with -ldflags "-X main.version=... -X main.commit=...".
var (
	version = "dev"
	commit  = "none"
)

type flags struct {
	configPath string
	dev        bool
}

func main() {
	var f flags
	flag.StringVar(&f.configPath, "config", "config.yaml", "path to YAML config file (optional)")
	flag.BoolVar(&f.dev, "dev", false, "enable developer mode (console logs, unredacted secrets)")
	flag.Parse()

	app := fx.New(
		fx.NopLogger,
		fx.Supply(f),
		fx.Provide(
			loadConfig,
			newLogger,
			newCheckoutProvider,
			newCheckoutUseCase,
			newAPIServer,
		),
		fx.Invoke(
			registerMetrics,
			warnMissingSecrets,
			setupTelemetry,
			registerHTTPServer,
		),
	)
	app.Run()
}

func loadConfig(f flags) (*config.Config, error) {
	return config.LoadConfig(f.configPath, f.dev)
}

func newLogger(cfg *config.Config) *zerolog.Logger {
	return logging.New(cfg.Log, cfg.Runtime.Dev)
}

func newCheckoutProvider(cfg *config.Config) adapter.CheckoutProvider {
	return payment.NewPaperGateway(cfg.Paper, nil)
}

func newCheckoutUseCase(p adapter.CheckoutProvider, cfg *config.Config, logger *zerolog.Logger) usecase.CheckoutUseCase {
	return usecase.NewCheckoutUseCase(p, cfg.Paper, logger)
}

func newAPIServer(uc usecase.CheckoutUseCase, cfg *config.Config, logger *zerolog.Logger) *api.Server {
	return api.NewServer(uc, cfg.CORS.AllowedOrigins, logger)
}

func registerMetrics() {
	metrics.MustRegister()
	metrics.SetBuildInfo(version, commit)
}

// warnMissingSecrets only warns; the provider reports a bad credential itself.
func warnMissingSecrets(cfg *config.Config, logger *zerolog.Logger) {
	if missing := cfg.MissingSecrets(); len(missing) > 0 {
		logger.Warn().Strs("missing", missing).Msg("paper credentials incomplete; checkout requests will be rejected upstream")
	}
	logger.Info().
		Str("paper_base_url", cfg.Paper.BaseURL).
		Str("contract_id", cfg.Paper.ContractID).
		Str("secret", logging.Redact(cfg.Paper.SecretKey, cfg.Runtime.Dev)).
		Dur("paper_timeout", cfg.Paper.Timeout).
		Msg("paper provider configured")
}

func setupTelemetry(lc fx.Lifecycle, cfg *config.Config, logger *zerolog.Logger) {
	var shutdown telemetry.Shutdown
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			var err error
			shutdown, err = telemetry.InitTracer(ctx, cfg.Telemetry, version, logger)
			return err
		},
		OnStop: func(ctx context.Context) error {
			if shutdown == nil {
				return nil
			}
			return shutdown(ctx)
		},
	})
}

func registerHTTPServer(lc fx.Lifecycle, cfg *config.Config, srv *api.Server, logger *zerolog.Logger, shutdowner fx.Shutdowner) {
	server := httpapi.NewServer(cfg.HTTP, srv.Handler(), logger)
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				logger.Info().Str("url", displayAddr(cfg.HTTP.Addr)+api.CheckoutLinkIntentPath).Msg("gateway starting")
				if err := server.Start(); err != nil {
					logger.Error().Err(err).Msg("gateway server error")
					_ = shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func displayAddr(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}
