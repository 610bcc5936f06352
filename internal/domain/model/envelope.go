package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMissingDiscriminant is returned when decoding a payload without a boolean "success".
var ErrMissingDiscriminant = errors.New("envelope: missing success discriminant")

const unknownError = "unknown error"

// Failure is the fixed data shape of an unsuccessful Envelope.
type Failure struct {
	Error string `json:"error,omitempty"`
	Info  any    `json:"info,omitempty"`
}

// Envelope is the result of every endpoint: either Success carrying T or a Failure.
// Fields are unexported so the payload can only be reached through the discriminant
// (Match, Fold, Data, Failure). The zero value is a Failure.
type Envelope[T any] struct {
	ok      bool
	data    T
	failure Failure
}

// Ok wraps a fully populated result.
func Ok[T any](data T) Envelope[T] {
	return Envelope[T]{ok: true, data: data}
}

// Fail builds a Failure. An empty message is replaced so a Failure always has an error.
func Fail[T any](msg string, info any) Envelope[T] {
	return FailWith[T](Failure{Error: msg, Info: info})
}

func FailWith[T any](f Failure) Envelope[T] {
	if f.Error == "" {
		f.Error = unknownError
	}
	return Envelope[T]{failure: f}
}

func (e Envelope[T]) IsSuccess() bool { return e.ok }

// Data returns the success payload and true, or the zero T and false.
func (e Envelope[T]) Data() (T, bool) {
	if !e.ok {
		var zero T
		return zero, false
	}
	return e.data, true
}

// Failure returns the failure payload and true, or an empty Failure and false.
func (e Envelope[T]) Failure() (Failure, bool) {
	if e.ok {
		return Failure{}, false
	}
	return e.normalizedFailure(), true
}

// Match calls exactly one of the two branches.
func (e Envelope[T]) Match(onSuccess func(T), onFailure func(Failure)) {
	if e.ok {
		onSuccess(e.data)
		return
	}
	onFailure(e.normalizedFailure())
}

// Fold reduces the envelope to R by handling both variants.
func Fold[T, R any](e Envelope[T], onSuccess func(T) R, onFailure func(Failure) R) R {
	if e.ok {
		return onSuccess(e.data)
	}
	return onFailure(e.normalizedFailure())
}

func (e Envelope[T]) normalizedFailure() Failure {
	f := e.failure
	if f.Error == "" {
		f.Error = unknownError
	}
	return f
}

type successWire[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
}

type failureWire struct {
	Success bool    `json:"success"`
	Data    Failure `json:"data"`
}

func (e Envelope[T]) MarshalJSON() ([]byte, error) {
	if e.ok {
		return json.Marshal(successWire[T]{Success: true, Data: e.data})
	}
	return json.Marshal(failureWire{Success: false, Data: e.normalizedFailure()})
}

func (e *Envelope[T]) UnmarshalJSON(b []byte) error {
	var raw struct {
		Success *bool           `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("envelope: %w", err)
	}
	if raw.Success == nil {
		return ErrMissingDiscriminant
	}

	if *raw.Success {
		var data T
		if len(raw.Data) == 0 || bytes.Equal(raw.Data, []byte("null")) {
			return errors.New("envelope: success without data")
		}
		if err := json.Unmarshal(raw.Data, &data); err != nil {
			return fmt.Errorf("envelope data: %w", err)
		}
		*e = Ok(data)
		return nil
	}

	var f Failure
	if len(raw.Data) > 0 && !bytes.Equal(raw.Data, []byte("null")) {
		if err := json.Unmarshal(raw.Data, &f); err != nil {
			return fmt.Errorf("envelope failure: %w", err)
		}
	}
	*e = FailWith[T](f)
	return nil
}
