// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Market data metrics
	ProviderCallsTotal *prometheus.CounterVec
	ProviderLatency    *prometheus.HistogramVec
	ProviderRetries    prometheus.Counter

	// Simulation metrics
	SimulationsTotal   *prometheus.CounterVec
	SimulationDuration prometheus.Histogram
	TradeSignals       *prometheus.CounterVec

	// Lookup metrics
	LookupResolutions *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "stock_strategy_lab"
	}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by route and status",
		}, []string{"route", "status"}),
		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),

		ProviderCallsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "marketdata",
			Name:      "provider_calls_total",
			Help:      "Total number of market data provider calls by endpoint and status",
		}, []string{"endpoint", "status"}),
		ProviderLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "marketdata",
			Name:      "provider_latency_seconds",
			Help:      "Market data provider call latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		ProviderRetries: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "marketdata",
			Name:      "provider_retries_total",
			Help:      "Total number of retried provider calls",
		}),

		SimulationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "runs_total",
			Help:      "Total number of simulation runs by status",
		}, []string{"status"}),
		SimulationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "duration_seconds",
			Help:      "Simulation run duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		TradeSignals: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "trade_signals_total",
			Help:      "Total number of valuation-band trade signals by direction",
		}, []string{"direction"}),

		LookupResolutions: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "lookup",
			Name:      "resolutions_total",
			Help:      "Total number of stock lookups by method and outcome",
		}, []string{"method", "outcome"}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordHTTPRequest records one served HTTP request.
func RecordHTTPRequest(route, status string, seconds float64) {
	DefaultMetrics.HTTPRequestsTotal.WithLabelValues(route, status).Inc()
	DefaultMetrics.HTTPRequestDuration.WithLabelValues(route).Observe(seconds)
}

// RecordProviderCall records a market data provider call.
func RecordProviderCall(endpoint, status string, seconds float64) {
	DefaultMetrics.ProviderCallsTotal.WithLabelValues(endpoint, status).Inc()
	DefaultMetrics.ProviderLatency.WithLabelValues(endpoint).Observe(seconds)
}

// RecordProviderRetry increments the retry counter.
func RecordProviderRetry() {
	DefaultMetrics.ProviderRetries.Inc()
}

// RecordSimulation records a simulation run.
func RecordSimulation(status string, seconds float64) {
	DefaultMetrics.SimulationsTotal.WithLabelValues(status).Inc()
	DefaultMetrics.SimulationDuration.Observe(seconds)
}

// RecordTradeSignal records one valuation-band trade signal.
func RecordTradeSignal(direction string) {
	DefaultMetrics.TradeSignals.WithLabelValues(direction).Inc()
}

// RecordLookup records a stock lookup resolution.
func RecordLookup(method, outcome string) {
	DefaultMetrics.LookupResolutions.WithLabelValues(method, outcome).Inc()
}
