package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"paper-checkout/internal/domain/model"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// ErrBadStatus marks a gateway reply outside the 2xx range.
var ErrBadStatus = errors.New("gateway returned a non-2xx status")

// StatusError carries the status and the decoded envelope of a non-2xx reply.
type StatusError struct {
	StatusCode int
	Envelope   model.Envelope[model.CheckoutLinkIntent]
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("gateway status %d", e.StatusCode)
}

func (e *StatusError) Unwrap() error { return ErrBadStatus }

// GatewayClient calls the checkout gateway over HTTP.
type GatewayClient struct {
	endpoint   string
	httpClient *http.Client
}

// NewGatewayClient targets baseURL (scheme and host, e.g. http://localhost:3000).
// A nil httpClient gets a traced client with no timeout.
func NewGatewayClient(baseURL string, httpClient *http.Client) *GatewayClient {
	if httpClient == nil {
		httpClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	return &GatewayClient{
		endpoint:   strings.TrimRight(baseURL, "/") + model.CheckoutLinkIntentPath,
		httpClient: httpClient,
	}
}

// CreateLinkIntent performs exactly one POST. The body is decoded before the
// status is checked, so an undecodable reply is an error even when it is a 2xx.
func (c *GatewayClient) CreateLinkIntent(ctx context.Context, title, tokenID, price string) (model.Envelope[model.CheckoutLinkIntent], error) {
	var env model.Envelope[model.CheckoutLinkIntent]

	payload, err := json.Marshal(model.NewCheckoutIntentRequest(title, tokenID, price))
	if err != nil {
		return env, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return env, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return env, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return env, fmt.Errorf("read response: %w", err)
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return env, fmt.Errorf("decode envelope: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return env, &StatusError{StatusCode: resp.StatusCode, Envelope: env}
	}
	return env, nil
}
