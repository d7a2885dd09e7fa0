package main

import (
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/tzgroups/internal/config"
	"github.com/mmynk/tzgroups/internal/grouping"
	"github.com/mmynk/tzgroups/internal/metrics"
	"github.com/mmynk/tzgroups/internal/middleware"
	"github.com/mmynk/tzgroups/internal/service"
)

const metricsNamespace = "tzgroups"

// newHandler wires the grouping service, health check and, when reg is
// non-nil, the /metrics endpoint.
func newHandler(cfg *config.Config, reg *prometheus.Registry) http.Handler {
	var collector metrics.Collector = metrics.NewNop()
	if reg != nil {
		collector = metrics.NewPrometheus(reg, metricsNamespace)
	}

	engine := grouping.NewEngine(
		grouping.WithParams(cfg.Params()),
		grouping.WithMetrics(collector),
	)

	mux := http.NewServeMux()

	path, h := service.NewGroupingServiceHandler(
		service.NewGroupingService(engine, cfg.Strategy),
		connect.WithInterceptors(middleware.RequestID(), middleware.LoggingInterceptor(nil)),
	)
	mux.Handle(path, h)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})

	if reg != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	}

	// Add logging and CORS middleware
	return loggingMiddleware(corsMiddleware(mux))
}

// loggingMiddleware logs all incoming requests at debug level; RPCs are
// logged again by the Connect interceptor.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush keeps streaming responses working through the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms, "+middleware.RequestIDHeader)
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms, "+middleware.RequestIDHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
