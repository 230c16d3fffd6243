// Package httpapi serves the calculator over HTTP: REST routes, the MCP
// streamable-HTTP endpoint, health and Prometheus metrics.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"abacus/internal/metrics"
	"abacus/internal/session"
)

// Options configures NewRouter. MCP is mounted at /mcp when set.
type Options struct {
	Sessions *session.Store
	Metrics  *metrics.Metrics
	MCP      http.Handler
	Log      *zap.Logger
}

type api struct {
	sessions *session.Store
	metrics  *metrics.Metrics
	log      *zap.Logger
}

func NewRouter(opts Options) http.Handler {
	a := &api{sessions: opts.Sessions, metrics: opts.Metrics, log: opts.Log}
	if a.log == nil {
		a.log = zap.NewNop()
	}
	if a.sessions == nil {
		a.sessions = session.NewStore(0, opts.Metrics)
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(tracing)
	r.Use(logging(a.log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if opts.Metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Metrics.Registry, promhttp.HandlerOpts{}))
	}
	if opts.MCP != nil {
		r.Handle("/mcp", opts.MCP)
	}
	a.routes(r)
	return r
}
