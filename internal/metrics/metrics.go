package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	Connections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "huddle_ws_connections",
		Help: "Current number of registered signaling connections",
	})
	SignalsRelayed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "huddle_signals_relayed_total",
		Help: "Total signaling messages accepted for relay",
	})
	SignalsDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "huddle_signals_dropped_total",
		Help: "Total per-member deliveries dropped due to broken channels",
	})
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)

func init() {
	prometheus.MustRegister(Connections, SignalsRelayed, SignalsDropped, HTTPRequestsTotal, HTTPRequestDuration)
}

// Middleware records basic request metrics for Prometheus to scrape.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		// Label with the route pattern, not the raw path: room ids and
		// invitation tokens would otherwise mint a new series per request.
		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}

		labels := prometheus.Labels{
			"method": r.Method,
			"path":   path,
			"status": strconv.Itoa(ww.Status()),
		}
		HTTPRequestsTotal.With(labels).Inc()
		HTTPRequestDuration.With(labels).Observe(time.Since(start).Seconds())
	})
}
