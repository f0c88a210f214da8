package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PlanningMetricsCollector handles route planning metrics
type PlanningMetricsCollector struct {
	plansTotal      *prometheus.CounterVec
	planDuration    *prometheus.HistogramVec
	routeLegs       *prometheus.HistogramVec
	routeDistance   *prometheus.HistogramVec
	advisoriesTotal *prometheus.CounterVec
}

// NewPlanningMetricsCollector creates a new planning metrics collector
func NewPlanningMetricsCollector() *PlanningMetricsCollector {
	return &PlanningMetricsCollector{
		// Plan and replan outcomes
		plansTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "plans_total",
				Help:      "Total number of planning requests by kind and status",
			},
			[]string{"kind", "status"},
		),

		planDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "plan_duration_seconds",
				Help:      "Planning duration distribution, including provider calls",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
			},
			[]string{"kind", "status"},
		),

		routeLegs: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "route_legs",
				Help:      "Number of legs in planned routes",
				Buckets:   []float64{1, 2, 3, 4, 6, 8, 12, 16, 24},
			},
			[]string{"kind"},
		),

		routeDistance: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "route_distance_nm",
				Help:      "Total distance of planned routes in nautical miles",
				Buckets:   []float64{10, 25, 50, 100, 150, 200, 300, 400},
			},
			[]string{"kind"},
		),

		advisoriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "advisories_total",
				Help:      "Total number of advisories attached to plans by kind",
			},
			[]string{"kind"},
		),
	}
}

// Register registers all planning metrics with the Prometheus registry
func (c *PlanningMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.plansTotal,
		c.planDuration,
		c.routeLegs,
		c.routeDistance,
		c.advisoriesTotal,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordPlan records a planning outcome. Route shape is only observed for
// successful plans.
func (c *PlanningMetricsCollector) RecordPlan(kind string, status string, duration float64, legs int, distanceNM float64) {
	c.plansTotal.WithLabelValues(kind, status).Inc()
	c.planDuration.WithLabelValues(kind, status).Observe(duration)

	if status != "success" {
		return
	}
	c.routeLegs.WithLabelValues(kind).Observe(float64(legs))
	c.routeDistance.WithLabelValues(kind).Observe(distanceNM)
}

// RecordAdvisory records an advisory by kind
func (c *PlanningMetricsCollector) RecordAdvisory(kind string) {
	c.advisoriesTotal.WithLabelValues(kind).Inc()
}
