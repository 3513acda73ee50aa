package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/creator-campaign-api/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation for the HTTP
// surface, the wizard state machine and the enrichment pipeline.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	stepTransitions *prometheus.CounterVec
	enrichmentTotal *prometheus.CounterVec
	cacheLatency    *prometheus.HistogramVec
	dbQueryDuration *prometheus.HistogramVec
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	stepTransitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wizard_step_transitions_total",
		Help: "Wizard step transitions by origin and destination",
	}, []string{"from", "to"})

	enrichmentTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "enrichment_fetches_total",
		Help: "Follower-count fetch outcomes by platform",
	}, []string{"platform", "outcome"})

	cacheLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "session_store_latency_seconds",
		Help:    "Latency for wizard session store operations",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})

	dbQueryDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Duration of database queries",
		Buckets: prometheus.DefBuckets,
	}, []string{"query"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, stepTransitions, enrichmentTotal, cacheLatency, dbQueryDuration, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		stepTransitions: stepTransitions,
		enrichmentTotal: enrichmentTotal,
		cacheLatency:    cacheLatency,
		dbQueryDuration: dbQueryDuration,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveStepTransition counts a wizard step change.
func (m *MetricsService) ObserveStepTransition(from, to models.WizardStep) {
	if m == nil {
		return
	}
	origin := string(from)
	if origin == "" {
		origin = "start"
	}
	m.stepTransitions.WithLabelValues(origin, string(to)).Inc()
}

// ObserveEnrichment counts a follower-count fetch outcome.
func (m *MetricsService) ObserveEnrichment(platform models.Platform, outcome string) {
	if m == nil {
		return
	}
	m.enrichmentTotal.WithLabelValues(string(platform), outcome).Inc()
}

// ObserveSessionStore records session store operation timing.
func (m *MetricsService) ObserveSessionStore(op string, duration time.Duration) {
	if m == nil || m.cacheLatency == nil {
		return
	}
	m.cacheLatency.WithLabelValues(op).Observe(duration.Seconds())
}

// ObserveDBQuery records database query timing.
func (m *MetricsService) ObserveDBQuery(label string, duration time.Duration) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(label).Observe(duration.Seconds())
}
