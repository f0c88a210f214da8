package navigation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/andrescamacho/vfrplanner-go/internal/domain/navigation"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/shared"
	"github.com/andrescamacho/vfrplanner-go/test/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func climbedShoreRoute(t *testing.T, fx *helpers.PlannerFixture, builder *navigation.RouteBuilder) *navigation.Route {
	t.Helper()
	direct, err := builder.BuildRoute(context.Background(), newRequest(t, fx, "KHPN", "Bridgeport", "KHVN", "Old Saybrook", "KGON"))
	require.NoError(t, err)
	climbed, err := builder.InsertClimb(context.Background(), direct)
	require.NoError(t, err)
	return climbed
}

func TestChangeRoute_SubstitutesNearestMatchAndRebuilds(t *testing.T) {
	// Arrange
	fx := helpers.NewPlannerFixture()
	builder := navigation.NewRouteBuilder(fx.Providers(), navigation.DefaultCorridorPolicy())
	route := climbedShoreRoute(t, fx, builder)

	// Act: leg 2 is Bridgeport -> KHVN
	replanned, err := builder.ChangeRoute(context.Background(), route, 2, "  mil FORD ")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"KHPN", "Bridgeport", "Milford", "Old Saybrook", "KGON"}, chainNames(replanned))
	assert.False(t, replanned.ClimbInserted())

	sum := 0.0
	for _, seg := range replanned.Segments() {
		sum += seg.LengthNM()
	}
	assert.InDelta(t, sum, replanned.TotalDistance(), 1e-9)

	// The input route is not modified
	assert.Equal(t, []string{"KHPN", "TOC", "Bridgeport", "KHVN", "Old Saybrook", "KGON"}, chainNames(route))
}

func TestChangeRoute_PicksNearestOfSeveralMatches(t *testing.T) {
	fx := helpers.NewPlannerFixture()
	builder := navigation.NewRouteBuilder(fx.Providers(), navigation.DefaultCorridorPolicy())
	route := climbedShoreRoute(t, fx, builder)

	// "Old" matches Old Lyme and Old Saybrook; Old Saybrook is on the chain
	replanned, err := builder.ChangeRoute(context.Background(), route, 2, "old")

	require.NoError(t, err)
	assert.Equal(t, "Old Lyme", replanned.Chain()[2].Name)
}

func TestChangeRoute_UnknownPlace(t *testing.T) {
	fx := helpers.NewPlannerFixture()
	builder := navigation.NewRouteBuilder(fx.Providers(), navigation.DefaultCorridorPolicy())
	route := climbedShoreRoute(t, fx, builder)

	replanned, err := builder.ChangeRoute(context.Background(), route, 1, "Atlantis")

	assert.Nil(t, replanned)
	var notFound *shared.SubstitutionNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "Atlantis", notFound.Place)
}

func TestChangeRoute_InvalidLeg(t *testing.T) {
	fx := helpers.NewPlannerFixture()
	builder := navigation.NewRouteBuilder(fx.Providers(), navigation.DefaultCorridorPolicy())
	route := climbedShoreRoute(t, fx, builder)
	last := len(route.Segments()) - 1

	for _, leg := range []int{-1, last + 1, last} {
		_, err := builder.ChangeRoute(context.Background(), route, leg, "Milford")
		var validation *shared.ValidationError
		assert.True(t, errors.As(err, &validation), "leg %d", leg)
	}
}

func TestChangeRoute_GazetteerFailurePropagates(t *testing.T) {
	fx := helpers.NewPlannerFixture()
	builder := navigation.NewRouteBuilder(fx.Providers(), navigation.DefaultCorridorPolicy())
	route := climbedShoreRoute(t, fx, builder)
	fx.Gazetteer.SetSearchError(errors.New("database is locked"))

	_, err := builder.ChangeRoute(context.Background(), route, 1, "Milford")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is locked")
}
