package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kbdviz/kbdviz/compose"
	"github.com/kbdviz/kbdviz/internal/server/api"
)

// Config holds the metrics endpoint settings.
type Config struct {
	Addr string `help:"Serve Prometheus metrics on this address (empty: disabled)" env:"KBDVIZ_METRICS_ADDR"`
	Path string `help:"HTTP path of the metrics endpoint" default:"/metrics" env:"KBDVIZ_METRICS_PATH"`
}

// Metrics bundles the registry with the query service counters.
type Metrics struct {
	Registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New creates a registry with the index collector, query service metrics
// and the Go runtime collectors.
func New(h *compose.Holder) *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Query service requests by route and outcome",
		}, []string{"route", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Time spent in query handlers",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
		}, []string{"route"}),
	}
	m.Registry.MustRegister(
		NewIndexCollector(h),
		m.requests,
		m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Instrument wraps a query handler so its calls are counted under route.
func (m *Metrics) Instrument(route string, next api.HandlerFunc) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		start := time.Now()
		err := next(req, res, logger)
		m.duration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		result := "ok"
		if err != nil {
			result = "error"
		}
		m.requests.WithLabelValues(route, result).Inc()
		return err
	}
}

// Handler returns the HTTP handler exposing the registry.
func (m *Metrics) Handler(logger *slog.Logger) http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{
		ErrorLog: slog.NewLogLogger(logger.Handler(), slog.LevelError),
	})
}

// Serve exposes the registry over HTTP until ctx is done. It returns once
// the listener is bound; serving errors are logged.
func (m *Metrics) Serve(ctx context.Context, cfg Config, logger *slog.Logger) (net.Addr, error) {
	path := cfg.Path
	if path == "" {
		path = "/metrics"
	}
	mux := http.NewServeMux()
	mux.Handle(path, m.Handler(logger))

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return nil, err
	}
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()
	logger.Info("metrics listening", "addr", ln.Addr().String(), "path", path)
	return ln.Addr(), nil
}
