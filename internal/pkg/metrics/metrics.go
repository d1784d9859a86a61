package metrics

import (
	"bufio"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	requests  *prometheus.CounterVec
	durations *prometheus.HistogramVec

	pointsAwarded  *prometheus.CounterVec
	pointsSpent    prometheus.Counter
	claimsRejected *prometheus.CounterVec

	wsConnections prometheus.Gauge
	wsEvents      *prometheus.CounterVec
}

// New creates and registers all collectors under namespace.
func New(namespace string) *Metrics {
	if namespace == "" {
		namespace = "rewards"
	}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests processed.",
		}, []string{"route", "method", "status"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		pointsAwarded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "points_awarded_total",
			Help:      "Points credited to users, by transaction kind.",
		}, []string{"kind"}),
		pointsSpent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "points_redeemed_total",
			Help:      "Points debited by reward redemptions.",
		}),
		claimsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "claims_rejected_total",
			Help:      "Ledger operations rejected by a domain rule.",
		}, []string{"operation", "reason"}),
		wsConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "websocket_connections",
			Help:      "WebSocket connections open on this instance.",
		}),
		wsEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "websocket_events_total",
			Help:      "WebSocket events by delivery outcome.",
		}, []string{"outcome"}),
	}

	m.registry.MustRegister(
		m.requests, m.durations,
		m.pointsAwarded, m.pointsSpent, m.claimsRejected,
		m.wsConnections, m.wsEvents,
	)
	return m
}

// Awarded records points credited for kind.
func (m *Metrics) Awarded(kind string, points int) {
	if m == nil || points <= 0 {
		return
	}
	m.pointsAwarded.WithLabelValues(kind).Add(float64(points))
}

// Redeemed records points debited by a redemption.
func (m *Metrics) Redeemed(points int) {
	if m == nil || points <= 0 {
		return
	}
	m.pointsSpent.Add(float64(points))
}

// Rejected records a rule violation such as an already-claimed streak.
func (m *Metrics) Rejected(operation, reason string) {
	if m == nil {
		return
	}
	m.claimsRejected.WithLabelValues(operation, reason).Inc()
}

// Connections adjusts the open WebSocket connection gauge by delta.
func (m *Metrics) Connections(delta int) {
	if m == nil {
		return
	}
	m.wsConnections.Add(float64(delta))
}

// EventDelivered counts a WebSocket event by outcome ("sent" or "dropped").
func (m *Metrics) EventDelivered(outcome string) {
	if m == nil {
		return
	}
	m.wsEvents.WithLabelValues(outcome).Inc()
}

// Handler exposes the registry for scraping.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency labelled by the chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		m.requests.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
		m.durations.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
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

func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	return http.NewResponseController(r.ResponseWriter).Hijack()
}
