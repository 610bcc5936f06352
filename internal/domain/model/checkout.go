package model

import (
	"encoding/json"
	"math"
	"strconv"
)

// Input is a loosely typed request field. Browsers may send a number where a
// string is expected, so the raw JSON value is kept and judged by truthiness.
type Input struct {
	raw any
}

// StringInput wraps a plain string.
func StringInput(s string) Input { return Input{raw: s} }

func (in *Input) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	in.raw = v
	return nil
}

func (in Input) MarshalJSON() ([]byte, error) {
	return json.Marshal(in.raw)
}

// Present reports whether the value is truthy: missing, null, "", 0, NaN and false are absent.
func (in Input) Present() bool {
	switch v := in.raw.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	case float64:
		return v != 0 && !math.IsNaN(v)
	default:
		return true
	}
}

// String renders the value the way it is embedded into provider templates.
func (in Input) String() string {
	switch v := in.raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// Echo returns the raw value, or "" when it was never sent.
func (in Input) Echo() any {
	if in.raw == nil {
		return ""
	}
	return in.raw
}

// CheckoutLinkIntentPath is where the gateway serves checkout link intents.
const CheckoutLinkIntentPath = "/api/checkout-link-intent"

// CheckoutIntentRequest is the inbound body of POST /api/checkout-link-intent.
type CheckoutIntentRequest struct {
	Title   Input `json:"title"`
	TokenID Input `json:"tokenId"`
	Price   Input `json:"price"`
}

// NewCheckoutIntentRequest builds a request from plain strings.
func NewCheckoutIntentRequest(title, tokenID, price string) CheckoutIntentRequest {
	return CheckoutIntentRequest{
		Title:   StringInput(title),
		TokenID: StringInput(tokenID),
		Price:   StringInput(price),
	}
}

// Valid reports whether all three inputs are present.
func (r CheckoutIntentRequest) Valid() bool {
	return r.Title.Present() && r.TokenID.Present() && r.Price.Present()
}

// BadArgsInfo echoes the inputs of a rejected request.
type BadArgsInfo struct {
	Title   any `json:"title"`
	TokenID any `json:"tokenId"`
	Price   any `json:"price"`
}

func (r CheckoutIntentRequest) Echo() BadArgsInfo {
	return BadArgsInfo{Title: r.Title.Echo(), TokenID: r.TokenID.Echo(), Price: r.Price.Echo()}
}

// Price is a currency-tagged amount as reported by the provider.
type Price struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

// CheckoutLinkIntent is the success payload of the checkout endpoint.
type CheckoutLinkIntent struct {
	URL   string `json:"url"`
	Price Price  `json:"price"`
}
