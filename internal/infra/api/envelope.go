package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"paper-checkout/internal/domain/model"
	"paper-checkout/internal/infra/logging"
	"paper-checkout/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// writeEnvelope serialises env before touching w, so an encoding failure can
// still be reported as a 500 Failure.
func writeEnvelope[T any](w http.ResponseWriter, status int, env model.Envelope[T], logger *zerolog.Logger) {
	b, err := json.Marshal(env)
	if err != nil {
		logger.Error().Err(err).Msg("envelope.encode_failed")
		writeUnhandled(w, err.Error())
		return
	}
	writeJSON(w, status, b)
}

func writeUnhandled(w http.ResponseWriter, msg string) {
	metrics.IncCheckoutIntent(string(model.KindUnhandled))
	b, err := json.Marshal(model.Fail[struct{}](msg, nil))
	if err != nil {
		b = []byte(`{"success":false,"data":{"error":"internal error"}}`)
	}
	writeJSON(w, http.StatusInternalServerError, b)
}

func writeJSON(w http.ResponseWriter, status int, b []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}

// recoverEnvelope turns a panic into a 500 Failure carrying the panic message.
// It must be deferred at the outermost point of a handler.
func recoverEnvelope(w http.ResponseWriter, r *http.Request, logger *zerolog.Logger) {
	rec := recover()
	if rec == nil {
		return
	}
	if rec == http.ErrAbortHandler {
		panic(rec)
	}
	msg := panicMessage(rec)
	logging.With(r.Context(), logger).Error().
		Str("panic", msg).
		Str("path", r.URL.Path).
		Msg("panic recovered")
	writeUnhandled(w, msg)
}

func panicMessage(rec any) string {
	switch v := rec.(type) {
	case error:
		return v.Error()
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
