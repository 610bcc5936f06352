//go:build !integration

package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"paper-checkout/internal/config"
)

func TestNew_JSONCarriesTraceID(t *testing.T) {
	var buf bytes.Buffer
	base := NewWithWriter(&buf, config.LogConfig{Level: "debug", Format: "json"}, false)

	ctx := WithTraceID(context.Background(), "abc-123")
	With(ctx, base).Info().Msg("hello")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("not json: %v (%s)", err, buf.String())
	}
	if line["trace_id"] != "abc-123" || line["message"] != "hello" {
		t.Fatalf("unexpected line: %v", line)
	}
	if TraceID(ctx) != "abc-123" {
		t.Fatalf("TraceID mismatch")
	}
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, config.LogConfig{Level: "warn", Format: "json"}, false)
	l.Info().Msg("dropped")
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered at warn: %s", buf.String())
	}
	l.Warn().Msg("kept")
	if buf.Len() == 0 {
		t.Fatal("warn should pass")
	}
}

func TestRedact(t *testing.T) {
	cases := []struct {
		in   string
		dev  bool
		want string
	}{
		{"short", false, "***"},
		{"sk_live_1234567890", false, "sk_l...90"},
		{"sk_live_1234567890", true, "sk_live_1234567890"},
	}
	for _, c := range cases {
		if got := Redact(c.in, c.dev); got != c.want {
			t.Errorf("Redact(%q,%v)=%q want %q", c.in, c.dev, got, c.want)
		}
	}
}
