package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/vfrplanner-go/internal/application/planning"
	"github.com/andrescamacho/vfrplanner-go/internal/application/planning/commands"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/navigation"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/shared"
)

// offChain returns the first candidate name not already on the chain
func offChain(chain []string, candidates ...string) string {
	for _, c := range candidates {
		found := false
		for _, n := range chain {
			if n == c {
				found = true
				break
			}
		}
		if !found {
			return c
		}
	}
	return ""
}

func TestReplanRoute_SubstitutesLandmark(t *testing.T) {
	// Arrange
	h := newHarness()
	original := h.planShore(t, &commands.PlanRouteCommand{
		Origin: "KHPN", Destination: "KGON", AltitudeFt: 4500, SessionID: "s1",
	})
	place := offChain(names(original.Route.Chain()), "Milford", "Guilford", "Norwalk", "Stamford")
	require.NotEmpty(t, place)
	h.clock.Advance(time.Minute)

	// Act: leg 1 runs from the top of climb to the first landmark
	resp, err := h.replan.Handle(context.Background(), &commands.ReplanRouteCommand{
		SessionID: "s1", LegIndex: 1, Place: place,
	})

	// Assert
	require.NoError(t, err)
	plan := resp.(*commands.ReplanRouteResponse).Plan
	chain := names(plan.Route.Chain())
	assert.Equal(t, "KHPN", chain[0])
	assert.Equal(t, shared.TopOfClimbName, chain[1])
	assert.Equal(t, place, chain[2])
	assert.Equal(t, "KGON", chain[len(chain)-1])

	assert.Equal(t, original.ID, plan.ID)
	assert.Equal(t, original.CreatedAt, plan.CreatedAt)
	assert.Equal(t, fixedNow.Add(time.Minute), plan.UpdatedAt)

	// Plan-level notes survive the rebuild exactly once
	count := 0
	for _, a := range plan.Route.Advisories() {
		if a == planning.AltitudeChangedAdvisory(4500, 1500) {
			count++
		}
	}
	assert.Equal(t, 1, count)

	stored, err := h.store.Find(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, chain, names(stored.Route.Chain()))
}

func TestReplanRoute_WithoutClimbStillFliesLiveWinds(t *testing.T) {
	// Arrange
	h := newHarness()
	zero := 0.0
	original := h.planShore(t, &commands.PlanRouteCommand{
		Origin: "KHPN", Destination: "KGON", ClimbDistNM: &zero, SessionID: "s1",
	})
	require.False(t, original.Route.ClimbInserted())
	require.True(t, original.Route.LiveWeather())
	place := offChain(names(original.Route.Chain()), "Milford", "Guilford", "Norwalk", "Stamford")
	require.NotEmpty(t, place)

	// Act
	resp, err := h.replan.Handle(context.Background(), &commands.ReplanRouteCommand{
		SessionID: "s1", LegIndex: 0, Place: place,
	})

	// Assert
	require.NoError(t, err)
	plan := resp.(*commands.ReplanRouteResponse).Plan
	assert.Equal(t, place, plan.Route.Chain()[1].Name)
	assert.False(t, plan.Route.ClimbInserted())
	assert.True(t, plan.Route.LiveWeather())
	assert.Equal(t, navigation.WindSourceSurfaceFrom, plan.Route.Segments()[0].WindSource())
	assert.NotContains(t, plan.Route.Advisories(), planning.TopOfClimbAdvisory)
}

func TestReplanRoute_UnknownPlaceLeavesPlanUntouched(t *testing.T) {
	// Arrange
	h := newHarness()
	original := h.planShore(t, nil)

	// Act
	_, err := h.replan.Handle(context.Background(), &commands.ReplanRouteCommand{
		SessionID: "s1", LegIndex: 1, Place: "Atlantis",
	})

	// Assert
	var notFound *shared.SubstitutionNotFoundError
	require.True(t, errors.As(err, &notFound))

	stored, err := h.store.Find(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, names(original.Route.Chain()), names(stored.Route.Chain()))
	assert.Equal(t, original.UpdatedAt, stored.UpdatedAt)
}

func TestReplanRoute_DestinationLegRejected(t *testing.T) {
	h := newHarness()
	original := h.planShore(t, nil)
	last := len(original.Route.Segments()) - 1

	_, err := h.replan.Handle(context.Background(), &commands.ReplanRouteCommand{
		SessionID: "s1", LegIndex: last, Place: "Milford",
	})

	var validation *shared.ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, "leg", validation.Field)
}

func TestReplanRoute_SessionNotFound(t *testing.T) {
	h := newHarness()

	_, err := h.replan.Handle(context.Background(), &commands.ReplanRouteCommand{
		SessionID: "missing", LegIndex: 0, Place: "Milford",
	})

	var notFound *shared.SessionNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "missing", notFound.SessionID)
}

func TestReplanRoute_Validation(t *testing.T) {
	h := newHarness()
	h.planShore(t, nil)

	tests := []struct {
		name  string
		cmd   *commands.ReplanRouteCommand
		field string
	}{
		{"missing session", &commands.ReplanRouteCommand{LegIndex: 0, Place: "Milford"}, "session_id"},
		{"negative leg", &commands.ReplanRouteCommand{SessionID: "s1", LegIndex: -1, Place: "Milford"}, "leg_index"},
		{"missing place", &commands.ReplanRouteCommand{SessionID: "s1", LegIndex: 0}, "place"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.replan.Handle(context.Background(), tt.cmd)

			var validation *shared.ValidationError
			require.True(t, errors.As(err, &validation))
			assert.Equal(t, tt.field, validation.Field)
		})
	}
}
