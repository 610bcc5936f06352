//go:build !integration

package model

import (
	"encoding/json"
	"errors"
	"testing"
	"unicode/utf8"
)

func TestEnvelope_MarshalShapes(t *testing.T) {
	ok := Ok(CheckoutLinkIntent{URL: "https://x", Price: Price{Value: "1", Currency: "MATIC"}})
	b, err := json.Marshal(ok)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"success":true,"data":{"url":"https://x","price":{"value":"1","currency":"MATIC"}}}`
	if string(b) != want {
		t.Fatalf("got %s\nwant %s", b, want)
	}

	fail := Fail[CheckoutLinkIntent]("boom", nil)
	b, err = json.Marshal(fail)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"success":false,"data":{"error":"boom"}}` {
		t.Fatalf("got %s", b)
	}
}

func TestEnvelope_FailureNeverEmpty(t *testing.T) {
	var zero Envelope[string]
	if zero.IsSuccess() {
		t.Fatal("zero value must be a failure")
	}
	f, ok := zero.Failure()
	if !ok || f.Error == "" {
		t.Fatalf("zero failure must carry a message, got %+v", f)
	}
	if f, _ := Fail[int]("", nil).Failure(); f.Error != unknownError {
		t.Fatalf("empty message not normalised: %q", f.Error)
	}
}

func TestEnvelope_MatchAndFold(t *testing.T) {
	calls := ""
	Ok(7).Match(func(v int) { calls += "s" }, func(Failure) { calls += "f" })
	Fail[int]("x", nil).Match(func(v int) { calls += "s" }, func(Failure) { calls += "f" })
	if calls != "sf" {
		t.Fatalf("match dispatch wrong: %q", calls)
	}

	describe := func(e Envelope[int]) string {
		return Fold(e,
			func(v int) string { return "ok" },
			func(f Failure) string { return "fail:" + f.Error },
		)
	}
	if describe(Ok(1)) != "ok" || describe(Fail[int]("nope", nil)) != "fail:nope" {
		t.Fatal("fold mismatch")
	}

	if _, ok := Fail[int]("x", nil).Data(); ok {
		t.Fatal("Data must not be readable on a failure")
	}
	if _, ok := Ok(1).Failure(); ok {
		t.Fatal("Failure must not be readable on a success")
	}
}

func TestEnvelope_UnmarshalRejectsMissingDiscriminant(t *testing.T) {
	var e Envelope[CheckoutLinkIntent]
	err := json.Unmarshal([]byte(`{"data":{"url":"x"}}`), &e)
	if !errors.Is(err, ErrMissingDiscriminant) {
		t.Fatalf("want ErrMissingDiscriminant, got %v", err)
	}
	if err := json.Unmarshal([]byte(`{"success":"yes","data":{}}`), &e); err == nil {
		t.Fatal("non-boolean discriminant must fail")
	}
	if err := json.Unmarshal([]byte(`{"success":true}`), &e); err == nil {
		t.Fatal("success without data must fail")
	}
}

func TestEnvelope_UnmarshalFailureWithInfo(t *testing.T) {
	var e Envelope[CheckoutLinkIntent]
	if err := json.Unmarshal([]byte(`{"success":false,"data":{"error":"X","info":{"k":[1,2]}}}`), &e); err != nil {
		t.Fatal(err)
	}
	f, ok := e.Failure()
	if !ok || f.Error != "X" {
		t.Fatalf("unexpected: %+v", f)
	}
	info, _ := json.Marshal(f.Info)
	if string(info) != `{"k":[1,2]}` {
		t.Fatalf("info lost: %s", info)
	}
}

// FuzzEnvelopeRoundTrip checks that encoding then decoding keeps the
// discriminant and its paired shape.
func FuzzEnvelopeRoundTrip(f *testing.F) {
	f.Add(true, "https://paper.xyz/c/1", "0.001", "MATIC", "")
	f.Add(false, "", "", "", "Bad args in request body")
	f.Add(false, "", "", "", "")
	f.Add(true, "", "", "", "ignored")

	f.Fuzz(func(t *testing.T, success bool, url, value, currency, msg string) {
		for _, s := range []string{url, value, currency, msg} {
			if !utf8.ValidString(s) {
				t.Skip("json replaces invalid utf-8")
			}
		}
		var in Envelope[CheckoutLinkIntent]
		if success {
			in = Ok(CheckoutLinkIntent{URL: url, Price: Price{Value: value, Currency: currency}})
		} else {
			in = Fail[CheckoutLinkIntent](msg, map[string]any{"value": value})
		}

		b, err := json.Marshal(in)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}

		var shape map[string]json.RawMessage
		if err := json.Unmarshal(b, &shape); err != nil {
			t.Fatalf("not an object: %v", err)
		}
		if len(shape) != 2 {
			t.Fatalf("envelope must have exactly success and data: %s", b)
		}

		var out Envelope[CheckoutLinkIntent]
		if err := json.Unmarshal(b, &out); err != nil {
			t.Fatalf("unmarshal: %v (%s)", err, b)
		}
		if out.IsSuccess() != success {
			t.Fatalf("discriminant flipped: %s", b)
		}

		if success {
			got, ok := out.Data()
			want, _ := in.Data()
			if !ok || got != want {
				t.Fatalf("data mismatch: %+v vs %+v", got, want)
			}
			return
		}
		gotF, ok := out.Failure()
		wantF, _ := in.Failure()
		if !ok || gotF.Error != wantF.Error || gotF.Error == "" {
			t.Fatalf("failure mismatch: %+v vs %+v", gotF, wantF)
		}
		again, err := json.Marshal(out)
		if err != nil || string(again) != string(b) {
			t.Fatalf("second encoding differs: %s vs %s", again, b)
		}
	})
}
