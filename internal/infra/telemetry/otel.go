package telemetry

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"paper-checkout/internal/config"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

// Shutdown flushes and stops the tracer provider.
type Shutdown func(context.Context) error

func noop(context.Context) error { return nil }

// InitTracer installs a global OTLP/HTTP tracer provider and the W3C propagators.
// When telemetry is disabled the global no-op provider stays in place.
func InitTracer(ctx context.Context, cfg config.TelemetryConfig, version string, logger *zerolog.Logger) (Shutdown, error) {
	if !cfg.Enabled {
		logger.Debug().Msg("telemetry.disabled")
		return noop, nil
	}

	exporter, err := otlptrace.New(ctx, otlptracehttp.NewClient(exporterOptions(cfg.Endpoint)...))
	if err != nil {
		return noop, fmt.Errorf("otlp exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.ServiceName),
			semconv.ServiceVersionKey.String(version),
		),
	)
	if err != nil {
		return noop, fmt.Errorf("otel resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.Info().Str("service", cfg.ServiceName).Str("endpoint", cfg.Endpoint).Msg("telemetry.initialized")
	return tp.Shutdown, nil
}

func exporterOptions(raw string) []otlptracehttp.Option {
	endpoint, path, insecure := parseEndpoint(raw)
	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithURLPath(path),
	}
	if insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	return opts
}

// parseEndpoint accepts a full URL or a bare host:port.
func parseEndpoint(raw string) (endpoint, path string, insecure bool) {
	endpoint, path, insecure = "localhost:4318", "/v1/traces", true
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		if u, err := url.Parse(raw); err == nil {
			if u.Host != "" {
				endpoint = u.Host
			}
			if u.Path != "" {
				path = u.Path
			}
			insecure = u.Scheme == "http"
		}
	} else if raw != "" {
		endpoint = raw
	}
	return endpoint, path, insecure
}
