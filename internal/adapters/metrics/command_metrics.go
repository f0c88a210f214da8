package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/vfrplanner-go/internal/domain/shared"
)

// CommandMetricsCollector observes requests dispatched through the planning
// mediator, labelled by request name and outcome class
type CommandMetricsCollector struct {
	inFlight *prometheus.GaugeVec
	handled  *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewCommandMetricsCollector creates an unregistered collector
func NewCommandMetricsCollector() *CommandMetricsCollector {
	return &CommandMetricsCollector{
		inFlight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "commands_in_flight",
				Help:      "Planner requests currently being handled",
			},
			[]string{"command"},
		),
		handled: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "commands_total",
				Help:      "Planner requests handled, by outcome (ok, invalid, not_found, unplannable, internal)",
			},
			[]string{"command", "outcome"},
		),
		// corridor searches with live weather run into seconds
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "command_duration_seconds",
				Help:      "Planner request handling time",
				Buckets:   []float64{0.005, 0.025, 0.1, 0.25, 0.5, 1, 2.5, 5, 15, 45},
			},
			[]string{"command"},
		),
	}
}

// Register adds the collector to Registry; a nil Registry is a no-op
func (c *CommandMetricsCollector) Register() error {
	if Registry == nil {
		return nil
	}
	for _, m := range []prometheus.Collector{c.inFlight, c.handled, c.latency} {
		if err := Registry.Register(m); err != nil {
			return err
		}
	}
	return nil
}

// Begin marks a request as started and returns the function that records
// its outcome
func (c *CommandMetricsCollector) Begin(command string) func(seconds float64, err error) {
	gauge := c.inFlight.WithLabelValues(command)
	gauge.Inc()
	return func(seconds float64, err error) {
		gauge.Dec()
		c.handled.WithLabelValues(command, string(shared.Classify(err))).Inc()
		c.latency.WithLabelValues(command).Observe(seconds)
	}
}
