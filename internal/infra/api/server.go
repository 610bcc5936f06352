package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"paper-checkout/internal/domain/model"
	"paper-checkout/internal/infra/logging"
	"paper-checkout/internal/infra/metrics"
	"paper-checkout/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// CheckoutLinkIntentPath is the single gateway entry point.
const CheckoutLinkIntentPath = model.CheckoutLinkIntentPath

const maxBodyBytes = 1 << 20

// Server is the HTTP gateway in front of the checkout use case.
// It dispatches on method and maps envelopes to status codes; it holds no
// auth or business logic.
type Server struct {
	checkoutUC  usecase.CheckoutUseCase
	corsOrigins []string
	log         *zerolog.Logger
}

// NewServer constructs the gateway. Empty corsOrigins allows any origin.
func NewServer(checkoutUC usecase.CheckoutUseCase, corsOrigins []string, logger *zerolog.Logger) *Server {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Server{checkoutUC: checkoutUC, corsOrigins: corsOrigins, log: logger}
}

// Handler returns the fully wrapped router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(TraceID(), RequestLog(s.log), Metrics())

	s.Register(r)

	return Chain(r, Recover(s.log), CORS(s.corsOrigins))
}

// Register attaches handlers to the provided router.
func (s *Server) Register(r chi.Router) {
	r.Handle(CheckoutLinkIntentPath, otelhttp.NewHandler(s.checkoutLinkIntent(), "checkout-link-intent"))
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", metrics.Handler())

	// chi only routes the standard verbs; anything else lands here.
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path == CheckoutLinkIntentPath {
			s.checkoutLinkIntent().ServeHTTP(w, req)
			return
		}
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
}

func (s *Server) checkoutLinkIntent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer recoverEnvelope(w, r, s.log)

		switch strings.ToUpper(r.Method) {
		case http.MethodPost:
			env := s.checkoutUC.CreateLinkIntent(r.Context(), decodeIntent(w, r, s.log))
			status := http.StatusBadRequest
			if env.IsSuccess() {
				status = http.StatusOK
			}
			writeEnvelope(w, status, env, s.log)
		default:
			metrics.IncCheckoutIntent(string(model.KindMethodNotAllowed))
			env := model.Fail[model.CheckoutLinkIntent]("Disallowed method. Received '"+r.Method+"'", nil)
			writeEnvelope(w, http.StatusMethodNotAllowed, env, s.log)
		}
	}
}

// decodeIntent reads the JSON body. A missing or malformed body yields an empty
// request so validation reports it like any other absent input.
func decodeIntent(w http.ResponseWriter, r *http.Request, logger *zerolog.Logger) model.CheckoutIntentRequest {
	var req model.CheckoutIntentRequest
	if r.Body == nil {
		return req
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		logging.With(r.Context(), logger).Debug().Err(err).Msg("checkout.intent.body_unreadable")
		return model.CheckoutIntentRequest{}
	}
	return req
}
