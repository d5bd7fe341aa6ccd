package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const namespace = "booking_web"

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace, Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	BackendRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "backend_requests_total", Help: "Requests to the booking backend."},
		[]string{"endpoint", "status"},
	)
	BackendLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace, Name: "backend_request_duration_seconds",
			Help:    "Booking backend request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del
	)
	GateDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "gate_decisions_total", Help: "Route gate outcomes."},
		[]string{"outcome"},
	)
	CheckinResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "checkin_results_total", Help: "Host check-in attempts by result."},
		[]string{"result"}, // success|failure|duplicate|not_confirmable|expired
	)
)

// Serve starts a dedicated metrics listener on addr. An empty addr leaves
// metrics on the main router only.
func Serve(reg *prometheus.Registry, addr string) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", MetricsHandler(reg))

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, BackendRequests, BackendLatency, CacheEvents, GateDecisions, CheckinResults)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

// ObserveBackend records one outbound call; status 0 means no response arrived.
func ObserveBackend(endpoint string, status int, dur time.Duration) {
	BackendRequests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	BackendLatency.WithLabelValues(endpoint).Observe(dur.Seconds())
}

func ObserveCache(cache, event string) {
	CacheEvents.WithLabelValues(cache, event).Inc()
}

func ObserveGate(outcome string) {
	GateDecisions.WithLabelValues(outcome).Inc()
}

func ObserveCheckin(result string) {
	CheckinResults.WithLabelValues(result).Inc()
}
