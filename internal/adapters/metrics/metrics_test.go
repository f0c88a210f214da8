package metrics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/vfrplanner-go/internal/adapters/metrics"
	"github.com/andrescamacho/vfrplanner-go/internal/application/common"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/shared"
)

func TestSetup_RecordsPlanningMetrics(t *testing.T) {
	// Arrange
	_, err := metrics.Setup()
	require.NoError(t, err)
	t.Cleanup(metrics.Reset)

	// Act
	metrics.RecordPlan("plan", "success", 0.2, 5, 77.4)
	metrics.RecordPlan("replan", "error", 0.1, 0, 0)
	metrics.RecordAdvisory("no_wind")
	metrics.RecordProviderRequest("weather", "metar", 200, 0.05)

	// Assert
	families, err := metrics.GetRegistry().Gather()
	require.NoError(t, err)
	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["vfrplanner_planner_plans_total"])
	assert.True(t, names["vfrplanner_planner_route_distance_nm"])
	assert.True(t, names["vfrplanner_planner_advisories_total"])
	assert.True(t, names["vfrplanner_planner_provider_requests_total"])
}

func TestPlanningMetricsCollector_ShapeOnlyOnSuccess(t *testing.T) {
	metrics.InitRegistry()
	t.Cleanup(metrics.Reset)
	c := metrics.NewPlanningMetricsCollector()
	require.NoError(t, c.Register())

	c.RecordPlan("plan", "error", 0.1, 3, 50)
	c.RecordPlan("plan", "success", 0.1, 3, 50)

	count, err := testutil.GatherAndCount(metrics.GetRegistry(), "vfrplanner_planner_route_legs")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRecordFunctions_NoopWhenDisabled(t *testing.T) {
	metrics.Reset()

	assert.False(t, metrics.IsEnabled())
	assert.NotPanics(t, func() {
		metrics.RecordPlan("plan", "success", 1, 1, 1)
		metrics.RecordAdvisory("x")
		metrics.RecordProviderRetry("weather", "metar", "timeout")
	})
}

func TestProviderMetricsCollector_BreakerState(t *testing.T) {
	// Arrange
	metrics.InitRegistry()
	t.Cleanup(metrics.Reset)
	c := metrics.NewProviderMetricsCollector()
	require.NoError(t, c.Register())
	metrics.SetGlobalProviderCollector(c)

	// Act
	metrics.RecordBreakerState("openelevation", "open", 1)
	metrics.RecordBreakerState("openelevation", "half_open", 2)

	// Assert
	count, err := testutil.GatherAndCount(metrics.GetRegistry(), "vfrplanner_planner_provider_circuit_transitions_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	count, err = testutil.GatherAndCount(metrics.GetRegistry(), "vfrplanner_planner_provider_circuit_state")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

type planRouteCommand struct{}

func TestPrometheusMiddleware_CountsOutcomes(t *testing.T) {
	// Arrange
	metrics.InitRegistry()
	t.Cleanup(metrics.Reset)
	collector := metrics.NewCommandMetricsCollector()
	require.NoError(t, collector.Register())
	mw := metrics.PrometheusMiddleware(collector)

	ok := func(ctx context.Context, r common.Request) (common.Response, error) { return "ok", nil }
	fail := func(ctx context.Context, r common.Request) (common.Response, error) { return nil, errors.New("boom") }
	invalid := func(ctx context.Context, r common.Request) (common.Response, error) {
		return nil, shared.NewValidationError("origin", "required")
	}

	// Act
	_, _ = mw(context.Background(), &planRouteCommand{}, ok)
	_, _ = mw(context.Background(), &planRouteCommand{}, fail)
	_, _ = mw(context.Background(), &planRouteCommand{}, fail)
	_, _ = mw(context.Background(), &planRouteCommand{}, invalid)

	// Assert
	series, err := testutil.GatherAndCount(metrics.GetRegistry(), "vfrplanner_planner_commands_total")
	require.NoError(t, err)
	assert.Equal(t, 3, series, "ok, internal and invalid outcomes")

	inFlight, err := testutil.GatherAndCount(metrics.GetRegistry(), "vfrplanner_planner_commands_in_flight")
	require.NoError(t, err)
	assert.Equal(t, 1, inFlight)
}
