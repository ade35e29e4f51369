// Package metrics provides the centralized Prometheus metrics registry.
package metrics

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "rainline"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	AnalysisRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analysis_runs_total",
		Help:      "Total number of season analysis runs by status",
	}, []string{"status"})
	SessionsAnalyzedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_analyzed_total",
		Help:      "Total number of wet sessions that produced session details",
	}, []string{"session_type"})
	SessionsSkippedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_skipped_total",
		Help:      "Total number of sessions or events skipped by reason",
	}, []string{"reason"})
	SessionLoadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "telemetry_session_loads_total",
		Help:      "Total number of telemetry session loads by session type and outcome",
	}, []string{"session_type", "success"})
	CacheLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Total number of cache lookups by cache and result",
	}, []string{"cache", "result"})
	CircuitBreakerTripsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "circuit_breaker_trips_total",
		Help:      "Total number of telemetry circuit breaker trips",
	}, []string{"breaker"})
	APIRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_requests_total",
		Help:      "Total number of API requests by route and status code",
	}, []string{"route", "code"})
)

// Gauge metrics
var (
	DriversRanked = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "drivers_ranked",
		Help:      "Number of drivers ranked in the latest analysis of a season",
	}, []string{"season"})
)

// Histogram metrics
var (
	AnalysisDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "analysis_duration_seconds",
		Help:      "Duration of season analysis runs in seconds",
		Buckets:   []float64{1, 5, 10, 30, 60, 300, 600, 1800},
	})
	SessionLoadLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "telemetry_session_load_seconds",
		Help:      "Latency of telemetry session loads in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"session_type"})
	APIRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "api_request_duration_seconds",
		Help:      "Duration of API requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(AnalysisRunsTotal)
		registry.MustRegister(SessionsAnalyzedTotal)
		registry.MustRegister(SessionsSkippedTotal)
		registry.MustRegister(SessionLoadsTotal)
		registry.MustRegister(CacheLookupsTotal)
		registry.MustRegister(CircuitBreakerTripsTotal)
		registry.MustRegister(APIRequestsTotal)

		registry.MustRegister(DriversRanked)

		registry.MustRegister(AnalysisDuration)
		registry.MustRegister(SessionLoadLatency)
		registry.MustRegister(APIRequestDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return InitRegistry()
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordAnalysisRun records a finished season analysis.
// status should be one of: "success", "empty", "failure"
func RecordAnalysisRun(status string, durationSeconds float64) {
	AnalysisRunsTotal.WithLabelValues(status).Inc()
	AnalysisDuration.Observe(durationSeconds)
}

// RecordSessionAnalyzed records a wet session that produced results
func RecordSessionAnalyzed(sessionType string) {
	SessionsAnalyzedTotal.WithLabelValues(sessionType).Inc()
}

// RecordSkipped records a skipped event or session
func RecordSkipped(reason string) {
	SessionsSkippedTotal.WithLabelValues(reason).Inc()
}

// RecordSessionLoad records a telemetry session load
func RecordSessionLoad(sessionType string, success bool, durationSeconds float64) {
	SessionLoadsTotal.WithLabelValues(sessionType, strconv.FormatBool(success)).Inc()
	SessionLoadLatency.WithLabelValues(sessionType).Observe(durationSeconds)
}

// RecordProviderCacheLookup records a telemetry cache hit or miss
func RecordProviderCacheLookup(hit bool) {
	recordCacheLookup("telemetry", hit)
}

// RecordServingCacheLookup records a serving cache hit or miss
func RecordServingCacheLookup(hit bool) {
	recordCacheLookup("serving", hit)
}

func recordCacheLookup(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookupsTotal.WithLabelValues(cache, result).Inc()
}

// RecordCircuitBreakerTrip records a circuit breaker trip event.
func RecordCircuitBreakerTrip(breaker string) {
	CircuitBreakerTripsTotal.WithLabelValues(breaker).Inc()
}

// UpdateDriversRanked sets the number of ranked drivers for a season
func UpdateDriversRanked(season int, count int) {
	DriversRanked.WithLabelValues(strconv.Itoa(season)).Set(float64(count))
}

// RecordAPIRequest records a served API request
func RecordAPIRequest(route string, code int, durationSeconds float64) {
	APIRequestsTotal.WithLabelValues(route, strconv.Itoa(code)).Inc()
	APIRequestDuration.WithLabelValues(route).Observe(durationSeconds)
}
