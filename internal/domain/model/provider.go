package model

import (
	"encoding/json"
	"net/http"
)

// Template placeholders Paper substitutes at checkout time.
const (
	PlaceholderWallet   = "$WALLET"
	PlaceholderQuantity = "$QUANTITY"
)

// ProviderCheckoutRequest is the body of Paper's checkout-link-intent call.
// The shape is a wire contract; do not rename fields.
type ProviderCheckoutRequest struct {
	Title      string     `json:"title"`
	ContractID string     `json:"contractId"`
	MintMethod MintMethod `json:"mintMethod"`
}

type MintMethod struct {
	Name    string         `json:"name"`
	Args    MintArgs       `json:"args"`
	Payment ProviderAmount `json:"payment"`
}

type MintArgs struct {
	To       string `json:"_to"`
	Quantity string `json:"_quantity"`
	TokenID  string `json:"_tokenId"`
}

type ProviderAmount struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

// ProviderBody is the decoded JSON Paper answers with, success or not.
type ProviderBody struct {
	CheckoutLinkIntentURL string          `json:"checkoutLinkIntentUrl"`
	EstimatedPrice        *Price          `json:"estimatedPrice"`
	Error                 json.RawMessage `json:"error"`
	Info                  json.RawMessage `json:"info"`
}

// ProviderResponse pairs Paper's status code with its body.
type ProviderResponse struct {
	StatusCode int
	Body       ProviderBody
}

// OK mirrors fetch's response.ok: any 2xx status.
func (r *ProviderResponse) OK() bool {
	return r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

// ErrorMessage returns Paper's reported error as text, or "" when none was sent.
func (b ProviderBody) ErrorMessage() string {
	if len(b.Error) == 0 || string(b.Error) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(b.Error, &s); err == nil {
		return s
	}
	return string(b.Error)
}

// InfoValue returns Paper's reported info, or nil when none was sent.
func (b ProviderBody) InfoValue() any {
	if len(b.Info) == 0 || string(b.Info) == "null" {
		return nil
	}
	return b.Info
}
