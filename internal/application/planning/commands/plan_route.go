package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/andrescamacho/vfrplanner-go/internal/adapters/metrics"
	"github.com/andrescamacho/vfrplanner-go/internal/application/common"
	"github.com/andrescamacho/vfrplanner-go/internal/application/planning"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/navigation"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/shared"
	"github.com/andrescamacho/vfrplanner-go/pkg/utils"
)

// PlanRouteCommand plans a VFR route between two airports. Zero performance
// fields take the configured defaults; a nil ClimbDistNM uses the default
// climb distance and zero skips the climb.
type PlanRouteCommand struct {
	Origin       string   `validate:"required,min=3,max=5"`
	Destination  string   `validate:"required,min=3,max=5"`
	AltitudeFt   int      `validate:"min=0,max=17500"`
	SpeedKt      float64  `validate:"min=0,max=300"`
	ClimbDistNM  *float64 `validate:"omitempty,min=0,max=100"`
	ClimbSpeedKt float64  `validate:"min=0,max=300"`
	Night        bool
	SessionID    string
}

// PlanRouteResponse carries the saved plan
type PlanRouteResponse struct {
	Plan *planning.Plan
}

// PlanRouteHandler handles the PlanRoute command
type PlanRouteHandler struct {
	builder   *navigation.RouteBuilder
	altitude  *navigation.AltitudeSelector
	providers navigation.Providers
	store     planning.PlanStore
	settings  planning.Settings
	clock     shared.Clock
}

// NewPlanRouteHandler creates a new PlanRouteHandler
func NewPlanRouteHandler(
	builder *navigation.RouteBuilder,
	altitude *navigation.AltitudeSelector,
	providers navigation.Providers,
	store planning.PlanStore,
	settings planning.Settings,
	clock shared.Clock,
) *PlanRouteHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &PlanRouteHandler{
		builder:   builder,
		altitude:  altitude,
		providers: providers,
		store:     store,
		settings:  settings,
		clock:     clock,
	}
}

// Handle executes the PlanRoute command
func (h *PlanRouteHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*PlanRouteCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *PlanRouteCommand")
	}

	start := time.Now()
	plan, err := h.plan(ctx, cmd)
	if err != nil {
		metrics.RecordPlan("plan", "error", time.Since(start).Seconds(), 0, 0)
		return nil, err
	}

	route := plan.Route
	metrics.RecordPlan("plan", "success", time.Since(start).Seconds(), len(route.Segments()), route.TotalDistance())
	for _, advisory := range route.Advisories() {
		metrics.RecordAdvisory(planning.AdvisoryKind(advisory))
	}

	common.LoggerFromContext(ctx).Log("INFO", "route planned", map[string]interface{}{
		"plan_id":     plan.ID,
		"origin":      plan.Origin.Name,
		"destination": plan.Destination.Name,
		"legs":        len(route.Segments()),
		"distance_nm": route.TotalDistance(),
		"altitude_ft": plan.Altitude.AltitudeFt,
	})

	return &PlanRouteResponse{Plan: plan}, nil
}

func (h *PlanRouteHandler) plan(ctx context.Context, cmd *PlanRouteCommand) (*planning.Plan, error) {
	if err := planning.ValidateRequest(cmd); err != nil {
		return nil, err
	}

	origin, err := h.providers.Gazetteer.FindByCode(ctx, cmd.Origin)
	if err != nil {
		return nil, fmt.Errorf("origin: %w", err)
	}
	destination, err := h.providers.Gazetteer.FindByCode(ctx, cmd.Destination)
	if err != nil {
		return nil, fmt.Errorf("destination: %w", err)
	}
	if strings.EqualFold(origin.Name, destination.Name) {
		return nil, shared.NewValidationError("destination", "must differ from the origin")
	}

	direct, err := h.providers.Geodesy.Course(origin.Position, destination.Position)
	if err != nil {
		return nil, shared.NewGeodesyResolutionError(origin.Name, destination.Name, err)
	}
	if h.settings.MaxDistanceNM > 0 && direct.DistanceNM > h.settings.MaxDistanceNM {
		return nil, shared.NewRouteTooLongError(direct.DistanceNM, h.settings.MaxDistanceNM)
	}

	perf := h.performance(cmd)

	var notes []string
	decision, err := h.altitude.ChooseAltitude(ctx, *origin, *destination, direct)
	switch {
	case err != nil:
		common.LoggerFromContext(ctx).Log("WARNING", "terrain sampling failed", map[string]interface{}{
			"error": err.Error(),
		})
		decision = navigation.AltitudeDecision{AltitudeFt: int(perf.CruiseAltitudeFt)}
		notes = append(notes, planning.TerrainUnavailableAdvisory(decision.AltitudeFt))
	case cmd.AltitudeFt > 0 && cmd.AltitudeFt != decision.AltitudeFt:
		notes = append(notes, planning.AltitudeChangedAdvisory(cmd.AltitudeFt, decision.AltitudeFt))
	}
	perf.CruiseAltitudeFt = float64(decision.AltitudeFt)

	originEnv := planning.ObserveEnvironment(ctx, h.providers.Weather, origin.Name)
	destinationEnv := planning.ObserveEnvironment(ctx, h.providers.Weather, destination.Name)
	notes = append(notes, planning.EnvironmentNotes(originEnv, destinationEnv)...)

	base, err := h.builder.BuildRoute(ctx, navigation.RouteRequest{
		Origin:           *origin,
		Destination:      *destination,
		Course:           direct,
		Performance:      perf,
		Night:            cmd.Night,
		FetchWeather:     false,
		ElevationProfile: decision.Profile,
	})
	if err != nil {
		return nil, err
	}

	climbed, err := h.builder.InsertClimb(ctx, base)
	if err != nil {
		return nil, err
	}
	if climbed.ClimbInserted() {
		notes = append(notes, planning.TopOfClimbAdvisory)
	}

	sessionID := cmd.SessionID
	if sessionID == "" {
		sessionID = utils.GenerateSessionID()
	}
	now := h.clock.Now()
	plan := &planning.Plan{
		ID:                  utils.GeneratePlanID(origin.Name, destination.Name),
		SessionID:           sessionID,
		Origin:              *origin,
		Destination:         *destination,
		Direct:              direct,
		Altitude:            decision,
		RequestedAltitudeFt: cmd.AltitudeFt,
		Route:               planning.Decorate(climbed, notes),
		Base:                base,
		OriginEnv:           originEnv,
		DestinationEnv:      destinationEnv,
		Notes:               notes,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := h.store.Save(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to save plan: %w", err)
	}
	return plan, nil
}

// performance overlays the command's non-zero values on the defaults
func (h *PlanRouteHandler) performance(cmd *PlanRouteCommand) navigation.Performance {
	perf := h.settings.Performance
	if cmd.SpeedKt > 0 {
		perf.CruiseSpeedKt = cmd.SpeedKt
	}
	if cmd.ClimbSpeedKt > 0 {
		perf.ClimbSpeedKt = cmd.ClimbSpeedKt
	}
	if cmd.ClimbDistNM != nil {
		perf.ClimbDistanceNM = *cmd.ClimbDistNM
	}
	if cmd.AltitudeFt > 0 {
		perf.CruiseAltitudeFt = float64(cmd.AltitudeFt)
	}
	return perf
}
