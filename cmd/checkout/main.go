// File: cmd/checkout/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"paper-checkout/internal/client"
	"paper-checkout/internal/config"
	"paper-checkout/internal/infra/logging"
)

func main() {
	title := flag.String("title", "Checkout Demo", "checkout title shown by the provider")
	tokenID := flag.String("token-id", "0", "token id to mint")
	price := flag.String("price", "0.001", "per-unit price in the settlement currency")
	gateway := flag.String("gateway", "http://localhost:3000", "gateway base URL")
	external := flag.Bool("external", false, "render a new-tab link instead of the inline trigger")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Parse()

	logger := logging.New(config.LogConfig{Level: *logLevel, Format: "console"}, false)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer := client.NewConsumer(
		client.NewGatewayClient(*gateway, nil),
		client.LogNotifier{Log: logger},
		client.LogOpener{Log: logger},
		logger,
	)
	consumer.SetInputs(ctx, *title, *tokenID, *price)
	consumer.SetReady(ctx)

	done := make(chan struct{})
	go func() {
		consumer.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		logger.Warn().Msg("interrupted before the gateway answered")
		os.Exit(130)
	}

	aff := consumer.Render(*external)
	if aff == nil {
		os.Exit(1)
	}
	fmt.Println(aff.String())
	if aff.Kind == client.InlineTrigger {
		if err := aff.Activate(ctx); err != nil {
			logger.Error().Err(err).Msg("open checkout")
			os.Exit(1)
		}
	}
}
