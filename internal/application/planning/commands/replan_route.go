package commands

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/andrescamacho/vfrplanner-go/internal/adapters/metrics"
	"github.com/andrescamacho/vfrplanner-go/internal/application/common"
	"github.com/andrescamacho/vfrplanner-go/internal/application/planning"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/navigation"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/shared"
)

// ReplanRouteCommand substitutes the "to" waypoint of one leg of the
// session's displayed route. LegIndex is zero-based.
type ReplanRouteCommand struct {
	SessionID string `validate:"required"`
	LegIndex  int    `validate:"min=0"`
	Place     string `validate:"required"`
}

// ReplanRouteResponse carries the updated plan
type ReplanRouteResponse struct {
	Plan *planning.Plan
}

// ReplanRouteHandler handles the ReplanRoute command. The stored plan is
// only replaced after a complete rebuild.
type ReplanRouteHandler struct {
	builder *navigation.RouteBuilder
	store   planning.PlanStore
	clock   shared.Clock
}

// NewReplanRouteHandler creates a new ReplanRouteHandler
func NewReplanRouteHandler(builder *navigation.RouteBuilder, store planning.PlanStore, clock shared.Clock) *ReplanRouteHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &ReplanRouteHandler{
		builder: builder,
		store:   store,
		clock:   clock,
	}
}

// Handle executes the ReplanRoute command
func (h *ReplanRouteHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*ReplanRouteCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ReplanRouteCommand")
	}

	start := time.Now()
	plan, err := h.replan(ctx, cmd)
	if err != nil {
		metrics.RecordPlan("replan", "error", time.Since(start).Seconds(), 0, 0)
		return nil, err
	}

	route := plan.Route
	metrics.RecordPlan("replan", "success", time.Since(start).Seconds(), len(route.Segments()), route.TotalDistance())

	common.LoggerFromContext(ctx).Log("INFO", "route replanned", map[string]interface{}{
		"plan_id": plan.ID,
		"leg":     cmd.LegIndex,
		"place":   cmd.Place,
		"legs":    len(route.Segments()),
	})

	return &ReplanRouteResponse{Plan: plan}, nil
}

func (h *ReplanRouteHandler) replan(ctx context.Context, cmd *ReplanRouteCommand) (*planning.Plan, error) {
	if err := planning.ValidateRequest(cmd); err != nil {
		return nil, err
	}

	current, err := h.store.Find(ctx, cmd.SessionID)
	if err != nil {
		return nil, err
	}

	rebuilt, err := h.builder.ChangeRoute(ctx, current.Route, cmd.LegIndex, cmd.Place)
	if err != nil {
		return nil, err
	}
	climbed, err := h.builder.InsertClimb(ctx, rebuilt)
	if err != nil {
		return nil, err
	}

	notes := slices.DeleteFunc(slices.Clone(current.Notes), func(n string) bool {
		return n == planning.TopOfClimbAdvisory
	})
	if climbed.ClimbInserted() {
		notes = append(notes, planning.TopOfClimbAdvisory)
	}

	next := *current
	next.Route = planning.Decorate(climbed, notes)
	next.Base = rebuilt
	next.Notes = notes
	next.UpdatedAt = h.clock.Now()

	if err := h.store.Save(ctx, &next); err != nil {
		return nil, fmt.Errorf("failed to save plan: %w", err)
	}
	return &next, nil
}
