package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// ProviderMetricsCollector handles upstream data service request metrics
type ProviderMetricsCollector struct {
	// Request metrics
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	retries         *prometheus.CounterVec
	rateLimitWait   *prometheus.HistogramVec

	// Circuit breaker metrics
	breakerState       *prometheus.GaugeVec
	breakerTransitions *prometheus.CounterVec
}

// NewProviderMetricsCollector creates a new provider metrics collector
func NewProviderMetricsCollector() *ProviderMetricsCollector {
	return &ProviderMetricsCollector{
		// Total upstream requests by provider, endpoint, and status code
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "provider_requests_total",
				Help:      "Total number of upstream requests by provider, endpoint, and status code",
			},
			[]string{"provider", "endpoint", "status_code"},
		),

		// Upstream request duration histogram
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "provider_request_duration_seconds",
				Help:      "Upstream request duration distribution",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
			},
			[]string{"provider", "endpoint"},
		),

		// Retry attempts counter
		retries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "provider_retries_total",
				Help:      "Total number of upstream retry attempts",
			},
			[]string{"provider", "endpoint", "reason"},
		),

		// Rate limit wait time histogram
		rateLimitWait: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "provider_rate_limit_wait_seconds",
				Help:      "Time spent waiting for rate limiter",
				Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1.0, 2.0, 5.0},
			},
			[]string{"provider", "endpoint"},
		),

		// 0 closed, 1 open, 2 half open
		breakerState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "provider_circuit_state",
				Help:      "Circuit breaker position per provider (0 closed, 1 open, 2 half open)",
			},
			[]string{"provider"},
		),

		breakerTransitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "provider_circuit_transitions_total",
				Help:      "Circuit breaker transitions by provider and target state",
			},
			[]string{"provider", "state"},
		),
	}
}

// Register registers all provider metrics with the Prometheus registry
func (c *ProviderMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.requestsTotal,
		c.requestDuration,
		c.retries,
		c.rateLimitWait,
		c.breakerState,
		c.breakerTransitions,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordProviderRequest records an upstream request completion
func (c *ProviderMetricsCollector) RecordProviderRequest(
	provider string,
	endpoint string,
	statusCode int,
	duration float64,
) {
	statusCodeStr := strconv.Itoa(statusCode)

	c.requestsTotal.WithLabelValues(provider, endpoint, statusCodeStr).Inc()
	c.requestDuration.WithLabelValues(provider, endpoint).Observe(duration)
}

// RecordProviderRetry records an upstream retry attempt
func (c *ProviderMetricsCollector) RecordProviderRetry(
	provider string,
	endpoint string,
	reason string,
) {
	c.retries.WithLabelValues(provider, endpoint, reason).Inc()
}

// RecordRateLimitWait records time spent waiting for rate limiter
func (c *ProviderMetricsCollector) RecordRateLimitWait(
	provider string,
	endpoint string,
	duration float64,
) {
	c.rateLimitWait.WithLabelValues(provider, endpoint).Observe(duration)
}

// RecordBreakerState records a circuit breaker moving to state
func (c *ProviderMetricsCollector) RecordBreakerState(provider string, state string, value int) {
	c.breakerState.WithLabelValues(provider).Set(float64(value))
	c.breakerTransitions.WithLabelValues(provider, state).Inc()
}
