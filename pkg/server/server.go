package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// Server serves the metrics registry over HTTP along with health and
// readiness endpoints. It is a concurrent reader of the registry; the
// polling loop is the sole writer.
type Server struct {
	config      *Config
	httpServer  *http.Server
	rateLimiter *rate.Limiter
	metrics     *httpMetrics
	mu          sync.RWMutex
	ready       bool
}

// New creates a new server instance exposing the given registry.
// The registry doubles as the registerer for the server's own scrape
// instrumentation, so self-metrics appear on the same endpoint.
func New(config *Config, registry *prometheus.Registry) *Server {
	if config == nil {
		config = NewConfig()
	}

	s := &Server{
		config:      config,
		rateLimiter: rate.NewLimiter(config.RateLimit, config.RateLimitBurst),
		metrics:     newHTTPMetrics(registry),
	}

	mux := http.NewServeMux()

	// System endpoints (no rate limiting)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)

	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		Registry: registry,
	})
	mux.Handle("/metrics", s.withMiddleware(metricsHandler.ServeHTTP))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Address, config.Port),
		Handler:      mux,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	return s
}

// SetReady marks the server as ready to serve traffic
func (s *Server) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

// Start binds the listener, then serves until the context is canceled or
// the server fails. Readiness is signaled only after the bind succeeds, so
// a taken port never reports ready.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpServer.Addr, err)
	}

	s.SetReady(true)
	if s.config.OnReady != nil {
		s.config.OnReady()
	}

	slog.Info("metrics server running",
		"address", listener.Addr().String(),
		"endpoint", "/metrics")

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	}
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.SetReady(false)

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	slog.Info("shutting down metrics server")
	return s.httpServer.Shutdown(shutdownCtx)
}
