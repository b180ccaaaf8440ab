// Package api exposes the packet registry over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bft-labs/i2p/internal/command"
	"github.com/bft-labs/i2p/internal/domain"
	"github.com/bft-labs/i2p/pkg/log"
)

// PacketService is the lookup surface served by the API.
type PacketService interface {
	LookupPacket(token, rawID string) (domain.Result, error)
	ListAll() domain.Listing
	Ready() bool
}

// ServerOption configures the API server
type ServerOption func(*serverConfig)

type serverConfig struct {
	middlewares []func(http.Handler) http.Handler
	dispatcher  *command.Dispatcher
	metrics     http.Handler
	logger      log.Logger
}

// WithMiddlewares adds middleware to the router
func WithMiddlewares(mw ...func(http.Handler) http.Handler) ServerOption {
	return func(cfg *serverConfig) {
		cfg.middlewares = append(cfg.middlewares, mw...)
	}
}

// WithDispatcher enables POST /v1/commands.
func WithDispatcher(d *command.Dispatcher) ServerOption {
	return func(cfg *serverConfig) {
		cfg.dispatcher = d
	}
}

// WithMetricsHandler mounts h at /metrics.
func WithMetricsHandler(h http.Handler) ServerOption {
	return func(cfg *serverConfig) {
		cfg.metrics = h
	}
}

// WithLogger sets the logger used by handlers.
func WithLogger(l log.Logger) ServerOption {
	return func(cfg *serverConfig) {
		cfg.logger = l
	}
}

// NewServer creates the HTTP router.
func NewServer(svc PacketService, opts ...ServerOption) *chi.Mux {
	cfg := &serverConfig{logger: log.NewNoopLogger()}
	for _, opt := range opts {
		opt(cfg)
	}

	r := chi.NewRouter()
	for _, mw := range cfg.middlewares {
		r.Use(mw)
	}

	r.Mount("/", HealthRouter(svc))
	if cfg.metrics != nil {
		r.Handle("/metrics", cfg.metrics)
	}
	r.Mount("/v1", Router(svc, cfg.dispatcher, cfg.logger))

	return r
}

// LoggingMiddleware logs each request at debug level.
func LoggingMiddleware(logger log.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Debug("http request",
				log.String("method", r.Method),
				log.String("path", r.URL.Path),
				log.Int("status", ww.Status()),
				log.Duration("took", time.Since(start)),
				log.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
