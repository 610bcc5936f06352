//go:build !integration

package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatewayClient_Success(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/checkout-link-intent", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"title": "Checkout Demo", "tokenId": "0", "price": "0.001"}, body)

		_, _ = w.Write([]byte(`{"success":true,"data":{"url":"https://withpaper.com/checkout/1","price":{"value":"0.001","currency":"MATIC"}}}`))
	}))
	defer srv.Close()

	env, err := NewGatewayClient(srv.URL+"/", srv.Client()).CreateLinkIntent(context.Background(), "Checkout Demo", "0", "0.001")
	require.NoError(t, err)
	data, ok := env.Data()
	require.True(t, ok)
	require.Equal(t, "https://withpaper.com/checkout/1", data.URL)
	require.Equal(t, 1, calls)
}

func TestGatewayClient_FailureEnvelopeOn2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"data":{"error":"nope"}}`))
	}))
	defer srv.Close()

	env, err := NewGatewayClient(srv.URL, srv.Client()).CreateLinkIntent(context.Background(), "t", "0", "1")
	require.NoError(t, err)
	f, ok := env.Failure()
	require.True(t, ok)
	require.Equal(t, "nope", f.Error)
}

func TestGatewayClient_BadStatusKeepsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"data":{"error":"Bad args in request body"}}`))
	}))
	defer srv.Close()

	_, err := NewGatewayClient(srv.URL, srv.Client()).CreateLinkIntent(context.Background(), "", "", "")
	require.ErrorIs(t, err, ErrBadStatus)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	require.Equal(t, http.StatusBadRequest, se.StatusCode)
	f, ok := se.Envelope.Failure()
	require.True(t, ok)
	require.Equal(t, "Bad args in request body", f.Error)
}

func TestGatewayClient_UndecodableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>upstream down</html>`))
	}))
	defer srv.Close()

	_, err := NewGatewayClient(srv.URL, srv.Client()).CreateLinkIntent(context.Background(), "t", "0", "1")
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrBadStatus))
}

func TestGatewayClient_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewGatewayClient(url, nil).CreateLinkIntent(context.Background(), "t", "0", "1")
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrBadStatus))
}
