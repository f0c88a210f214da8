package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all metrics
	namespace = "vfrplanner"
	// Subsystem for planner metrics
	subsystem = "planner"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalPlanningCollector is the singleton planning metrics collector
	// Set by SetGlobalPlanningCollector() when metrics are enabled
	globalPlanningCollector PlanningMetricsRecorder

	// globalProviderCollector is the singleton upstream provider metrics collector
	globalProviderCollector ProviderMetricsRecorder
)

// PlanningMetricsRecorder defines the interface for recording planning events
// This interface is used by application code to record metrics
type PlanningMetricsRecorder interface {
	RecordPlan(kind string, status string, duration float64, legs int, distanceNM float64)
	RecordAdvisory(kind string)
}

// ProviderMetricsRecorder defines the interface for recording upstream data
// service requests
type ProviderMetricsRecorder interface {
	RecordProviderRequest(provider string, endpoint string, statusCode int, duration float64)
	RecordProviderRetry(provider string, endpoint string, reason string)
	RecordRateLimitWait(provider string, endpoint string, duration float64)
	RecordBreakerState(provider string, state string, value int)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalPlanningCollector sets the global planning metrics collector
func SetGlobalPlanningCollector(collector PlanningMetricsRecorder) {
	globalPlanningCollector = collector
}

// SetGlobalProviderCollector sets the global provider metrics collector
func SetGlobalProviderCollector(collector ProviderMetricsRecorder) {
	globalProviderCollector = collector
}

// RecordPlan records a plan or replan outcome globally
func RecordPlan(kind string, status string, duration float64, legs int, distanceNM float64) {
	if globalPlanningCollector != nil {
		globalPlanningCollector.RecordPlan(kind, status, duration, legs, distanceNM)
	}
}

// RecordAdvisory records an advisory attached to a plan globally
func RecordAdvisory(kind string) {
	if globalPlanningCollector != nil {
		globalPlanningCollector.RecordAdvisory(kind)
	}
}

// RecordProviderRequest records an upstream request completion globally
func RecordProviderRequest(provider string, endpoint string, statusCode int, duration float64) {
	if globalProviderCollector != nil {
		globalProviderCollector.RecordProviderRequest(provider, endpoint, statusCode, duration)
	}
}

// RecordProviderRetry records an upstream retry attempt globally
func RecordProviderRetry(provider string, endpoint string, reason string) {
	if globalProviderCollector != nil {
		globalProviderCollector.RecordProviderRetry(provider, endpoint, reason)
	}
}

// RecordRateLimitWait records time spent waiting for a provider rate limiter globally
func RecordRateLimitWait(provider string, endpoint string, duration float64) {
	if globalProviderCollector != nil {
		globalProviderCollector.RecordRateLimitWait(provider, endpoint, duration)
	}
}

// RecordBreakerState records a circuit breaker transition globally
func RecordBreakerState(provider string, state string, value int) {
	if globalProviderCollector != nil {
		globalProviderCollector.RecordBreakerState(provider, state, value)
	}
}

// Setup initializes the registry and installs all collectors. It returns
// the command collector for the mediator middleware.
func Setup() (*CommandMetricsCollector, error) {
	InitRegistry()

	planning := NewPlanningMetricsCollector()
	if err := planning.Register(); err != nil {
		return nil, err
	}
	SetGlobalPlanningCollector(planning)

	provider := NewProviderMetricsCollector()
	if err := provider.Register(); err != nil {
		return nil, err
	}
	SetGlobalProviderCollector(provider)

	commands := NewCommandMetricsCollector()
	if err := commands.Register(); err != nil {
		return nil, err
	}
	return commands, nil
}

// Reset clears the registry and global collectors
func Reset() {
	Registry = nil
	globalPlanningCollector = nil
	globalProviderCollector = nil
}
