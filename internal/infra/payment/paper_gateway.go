package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"paper-checkout/internal/config"
	"paper-checkout/internal/domain/model"
	"paper-checkout/internal/domain/ports/adapter"
	"paper-checkout/internal/infra/metrics"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// ErrTransport marks failures where Paper could not be reached or answered unreadably.
var ErrTransport = errors.New("paper: transport failure")

// PaperGateway implements adapter.CheckoutProvider using direct HTTP calls.
type PaperGateway struct {
	endpoint  string
	secretKey string
	client    *http.Client
}

var _ adapter.CheckoutProvider = (*PaperGateway)(nil)

// NewPaperGateway creates a Paper client from config. A nil httpClient gets a
// traced client whose timeout is cfg.Timeout (zero means none).
func NewPaperGateway(cfg config.PaperConfig, httpClient *http.Client) *PaperGateway {
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   cfg.Timeout,
		}
	}
	return &PaperGateway{
		endpoint:  Endpoint(cfg.BaseURL, cfg.APIVersion),
		secretKey: cfg.SecretKey,
		client:    httpClient,
	}
}

// Endpoint builds the versioned checkout-link-intent URL.
func Endpoint(baseURL, apiVersion string) string {
	return fmt.Sprintf("%s/api/%s/checkout-link-intent", strings.TrimRight(baseURL, "/"), apiVersion)
}

func (g *PaperGateway) Name() string { return "paper" }

// SendCheckoutIntentRequest implements adapter.CheckoutProvider.
func (g *PaperGateway) SendCheckoutIntentRequest(ctx context.Context, body model.ProviderCheckoutRequest) (*model.ProviderResponse, error) {
	start := time.Now()
	resp, err := g.send(ctx, body)
	status := "error"
	if resp != nil {
		status = strconv.Itoa(resp.StatusCode)
	}
	metrics.ObservePaperRequest(status, time.Since(start))
	return resp, err
}

func (g *PaperGateway) send(ctx context.Context, body model.ProviderCheckoutRequest) (*model.ProviderResponse, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request data: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.secretKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", ErrTransport, err)
	}

	var decoded model.ProviderBody
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("%w: status %d, unmarshal response: %v", ErrTransport, resp.StatusCode, err)
	}

	return &model.ProviderResponse{StatusCode: resp.StatusCode, Body: decoded}, nil
}
