package navigation_test

import (
	"context"
	"testing"

	"github.com/andrescamacho/vfrplanner-go/internal/domain/navigation"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/shared"
	"github.com/andrescamacho/vfrplanner-go/test/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertClimb_PlacesTopOfClimbAlongFirstLeg(t *testing.T) {
	// Arrange
	fx := helpers.NewPlannerFixture()
	builder := navigation.NewRouteBuilder(fx.Providers(), navigation.DefaultCorridorPolicy())
	direct, err := builder.BuildRoute(context.Background(), newRequest(t, fx, "KHPN", "Bridgeport", "KHVN", "Old Saybrook", "KGON"))
	require.NoError(t, err)

	// Act
	climbed, err := builder.InsertClimb(context.Background(), direct)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"KHPN", "TOC", "Bridgeport", "KHVN", "Old Saybrook", "KGON"}, chainNames(climbed))
	assert.True(t, climbed.ClimbInserted())

	toc := climbed.Chain()[1]
	assert.Equal(t, shared.WaypointKindSynthetic, toc.Kind)
	fromOrigin, err := fx.Geodesy.Course(direct.Origin().Position, toc.Position)
	require.NoError(t, err)
	assert.InDelta(t, 7, fromOrigin.DistanceNM, 0.05)
	assert.InDelta(t, direct.Segments()[0].TrueCourse(), fromOrigin.BearingDeg, 0.5)

	// The climb-aware rebuild fetches weather; the direct route is untouched
	assert.Equal(t, 1, fx.Aloft.Calls())
	assert.Equal(t, []string{"KHPN", "Bridgeport", "KHVN", "Old Saybrook", "KGON"}, chainNames(direct))
	assert.False(t, direct.ClimbInserted())
}

func TestInsertClimb_DropsLegsInsideClimbDistance(t *testing.T) {
	fx := helpers.NewPlannerFixture()
	builder := navigation.NewRouteBuilder(fx.Providers(), navigation.DefaultCorridorPolicy())
	req := newRequest(t, fx, "KHPN", "Stamford", "Bridgeport", "KHVN", "Old Saybrook", "KGON")
	req.Performance.ClimbDistanceNM = 12
	direct, err := builder.BuildRoute(context.Background(), req)
	require.NoError(t, err)
	require.Less(t, direct.Segments()[0].LengthNM(), 12.0)

	climbed, err := builder.InsertClimb(context.Background(), direct)

	require.NoError(t, err)
	assert.Equal(t, []string{"KHPN", "TOC", "Bridgeport", "KHVN", "Old Saybrook", "KGON"}, chainNames(climbed))
}

func TestInsertClimb_ShortRouteKeepsChainWithAdvisory(t *testing.T) {
	fx := helpers.NewPlannerFixture()
	builder := navigation.NewRouteBuilder(fx.Providers(), navigation.DefaultCorridorPolicy())
	req := newRequest(t, fx, "KHPN", "Greenwich")
	req.Destination = helpers.Waypoint("Greenwich")
	direct, err := builder.BuildRoute(context.Background(), req)
	require.NoError(t, err)
	require.Less(t, direct.TotalDistance(), 7.0)

	climbed, err := builder.InsertClimb(context.Background(), direct)

	require.NoError(t, err)
	assert.Equal(t, chainNames(direct), chainNames(climbed))
	assert.Contains(t, climbed.Advisories(), shared.ClimbDistanceExceedsRouteMessage)
	assert.NotContains(t, direct.Advisories(), shared.ClimbDistanceExceedsRouteMessage)
	assert.False(t, climbed.ClimbInserted())
}

func TestInsertClimb_ZeroClimbDistanceStillFetchesWeather(t *testing.T) {
	// Arrange
	fx := helpers.NewPlannerFixture()
	builder := navigation.NewRouteBuilder(fx.Providers(), navigation.DefaultCorridorPolicy())
	req := newRequest(t, fx, "KHPN", "Bridgeport", "KHVN", "Old Saybrook", "KGON")
	req.Performance.ClimbDistanceNM = 0
	direct, err := builder.BuildRoute(context.Background(), req)
	require.NoError(t, err)
	require.False(t, direct.LiveWeather())

	// Act
	climbed, err := builder.InsertClimb(context.Background(), direct)

	// Assert
	require.NoError(t, err)
	assert.False(t, climbed.ClimbInserted())
	assert.True(t, climbed.LiveWeather())
	assert.Equal(t, chainNames(direct), chainNames(climbed))
	segs := climbed.Segments()
	assert.Equal(t, navigation.WindSourceSurfaceFrom, segs[0].WindSource())
	assert.Equal(t, navigation.WindSourceAloft, segs[1].WindSource())
	assert.Equal(t, navigation.WindSourceSurfaceTo, segs[3].WindSource())
	assert.Equal(t, 1, fx.Aloft.Calls())
}

func TestInsertClimb_ShortRouteIsRebuiltWithWeather(t *testing.T) {
	fx := helpers.NewPlannerFixture()
	builder := navigation.NewRouteBuilder(fx.Providers(), navigation.DefaultCorridorPolicy())
	req := newRequest(t, fx, "KHPN", "Greenwich")
	req.Destination = helpers.Waypoint("Greenwich")
	direct, err := builder.BuildRoute(context.Background(), req)
	require.NoError(t, err)

	climbed, err := builder.InsertClimb(context.Background(), direct)

	require.NoError(t, err)
	assert.True(t, climbed.LiveWeather())
	assert.Equal(t, 1, fx.Aloft.Calls())
	assert.Contains(t, climbed.Advisories(), shared.ClimbDistanceExceedsRouteMessage)
}

func TestInsertClimb_WindedRouteIsNotRebuiltTwice(t *testing.T) {
	fx := helpers.NewPlannerFixture()
	builder := navigation.NewRouteBuilder(fx.Providers(), navigation.DefaultCorridorPolicy())
	direct, err := builder.BuildRoute(context.Background(), newRequest(t, fx, "KHPN", "Bridgeport", "KHVN", "Old Saybrook", "KGON"))
	require.NoError(t, err)
	climbed, err := builder.InsertClimb(context.Background(), direct)
	require.NoError(t, err)

	again, err := builder.InsertClimb(context.Background(), climbed)

	require.NoError(t, err)
	assert.Same(t, climbed, again)
	assert.Equal(t, 1, fx.Aloft.Calls())
}
