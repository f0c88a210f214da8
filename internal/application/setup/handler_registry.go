package setup

import (
	"log/slog"

	"github.com/andrescamacho/vfrplanner-go/internal/adapters/metrics"
	"github.com/andrescamacho/vfrplanner-go/internal/application/common"
	"github.com/andrescamacho/vfrplanner-go/internal/application/planning"
	"github.com/andrescamacho/vfrplanner-go/internal/application/planning/commands"
	"github.com/andrescamacho/vfrplanner-go/internal/application/planning/queries"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/navigation"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/shared"
	"github.com/andrescamacho/vfrplanner-go/internal/infrastructure/logging"
)

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	providers navigation.Providers
	policy    navigation.CorridorPolicy
	samples   int
	store     planning.PlanStore
	settings  planning.Settings
	clock     shared.Clock
}

// NewHandlerRegistry creates a new handler registry with required dependencies
func NewHandlerRegistry(
	providers navigation.Providers,
	policy navigation.CorridorPolicy,
	elevationSamples int,
	store planning.PlanStore,
	settings planning.Settings,
	clock shared.Clock,
) *HandlerRegistry {
	// Default to real clock if not provided
	if clock == nil {
		clock = shared.NewRealClock()
	}

	return &HandlerRegistry{
		providers: providers,
		policy:    policy,
		samples:   elevationSamples,
		store:     store,
		settings:  settings,
		clock:     clock,
	}
}

// RegisterPlanningHandlers registers the planning commands and queries:
//   - PlanRouteCommand → PlanRouteHandler
//   - ReplanRouteCommand → ReplanRouteHandler
//   - GetPlanQuery → GetPlanHandler
func (r *HandlerRegistry) RegisterPlanningHandlers(m common.Mediator) error {
	builder := navigation.NewRouteBuilder(r.providers, r.policy)
	altitude := navigation.NewAltitudeSelector(r.providers.Geodesy, r.providers.Elevation, r.providers.Variation, r.samples)

	if err := common.RegisterHandler[*commands.PlanRouteCommand](m,
		commands.NewPlanRouteHandler(builder, altitude, r.providers, r.store, r.settings, r.clock)); err != nil {
		return err
	}
	if err := common.RegisterHandler[*commands.ReplanRouteCommand](m,
		commands.NewReplanRouteHandler(builder, r.store, r.clock)); err != nil {
		return err
	}
	return common.RegisterHandler[*queries.GetPlanQuery](m, queries.NewGetPlanHandler(r.store))
}

// NewPlanningMediator builds a mediator with logging and metrics middleware
// and the planning handlers registered. A nil collector disables command
// metrics.
func (r *HandlerRegistry) NewPlanningMediator(logger *slog.Logger, collector *metrics.CommandMetricsCollector) (common.Mediator, error) {
	m := common.NewMediator()
	if logger != nil {
		m.Use(logging.Middleware(logger))
	}
	m.Use(metrics.PrometheusMiddleware(collector))

	if err := r.RegisterPlanningHandlers(m); err != nil {
		return nil, err
	}
	return m, nil
}
