package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"issuer-verifier/pkg/platform/middleware/request"
)

// MaxBodyBytes caps inbound JSON bodies.
const MaxBodyBytes = 64 << 10

// Registrar mounts a handler's routes on a router.
type Registrar interface {
	Register(r chi.Router)
}

// Deps collects everything the router mounts. Demo and ValidatorAlias are
// optional.
type Deps struct {
	Logger         *slog.Logger
	Latency        request.LatencyObserver
	MetricsHandler http.Handler

	Health   Registrar
	Schema   Registrar
	Issuer   Registrar
	Verifier Registrar
	Demo     Registrar

	ValidatorAlias http.HandlerFunc
}

// NewRouter wires all public endpoints with middleware. Handlers stay thin and
// delegate to services. There is no inbound deadline: the upstream client's
// timeout bounds each outbound call.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(request.Recovery(deps.Logger))
	r.Use(request.RequestID)
	r.Use(request.ClientMetadata)
	r.Use(request.Logger(deps.Logger))
	r.Use(request.Latency(deps.Latency))
	r.Use(request.BodyLimit(MaxBodyBytes))
	r.Use(request.ContentTypeJSON)

	if deps.Health != nil {
		deps.Health.Register(r)
	}
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Route("/api/v1/issuer", func(r chi.Router) {
		mount(r, deps.Schema)
		mount(r, deps.Issuer)
	})
	r.Route("/api/v1/verifier", func(r chi.Router) {
		mount(r, deps.Verifier)
	})
	if deps.ValidatorAlias != nil {
		r.Post("/api/validator/create", deps.ValidatorAlias)
	}
	if deps.Demo != nil {
		r.Route("/api/v1/demo", func(r chi.Router) {
			deps.Demo.Register(r)
		})
	}

	return r
}

func mount(r chi.Router, reg Registrar) {
	if reg != nil {
		reg.Register(r)
	}
}
