package navigation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/andrescamacho/vfrplanner-go/internal/adapters/geodesy"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/navigation"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/shared"
	"github.com/andrescamacho/vfrplanner-go/test/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectLandmarks_KHPNToKGON(t *testing.T) {
	// Arrange
	geo := geodesy.NewGeodesy()
	gaz := helpers.NewConnecticutShoreGazetteer(geo)
	search := navigation.NewCorridorSearch(geo, gaz, navigation.DefaultCorridorPolicy())

	origin := helpers.Waypoint("KHPN")
	destination := helpers.Waypoint("KGON")
	course, err := geo.Course(origin.Position, destination.Position)
	require.NoError(t, err)

	// Act
	chain, err := search.SelectLandmarks(context.Background(), origin, destination, course)

	// Assert
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(chain), 3, "a 77 nm trip needs enroute landmarks")
	assert.Equal(t, "KHPN", chain[0].Name)
	assert.Equal(t, "KGON", chain[len(chain)-1].Name)

	seen := make(map[string]bool)
	for _, w := range chain {
		assert.False(t, seen[w.Name], "duplicate landmark %s", w.Name)
		seen[w.Name] = true
	}

	// Every hop but the last must respect the widest allowed band
	for i := 1; i < len(chain)-1; i++ {
		c, err := geo.Course(chain[i-1].Position, chain[i].Position)
		require.NoError(t, err)
		assert.LessOrEqual(t, c.DistanceNM, 25*5.0)
	}
}

func TestSelectLandmarks_ShortTripReturnsEndpoints(t *testing.T) {
	geo := geodesy.NewGeodesy()
	gaz := helpers.NewConnecticutShoreGazetteer(geo)
	search := navigation.NewCorridorSearch(geo, gaz, navigation.DefaultCorridorPolicy())

	origin := helpers.Waypoint("KBDR")
	destination := helpers.Waypoint("KHVN")
	course, err := geo.Course(origin.Position, destination.Position)
	require.NoError(t, err)
	require.Less(t, course.DistanceNM, 28.0)

	chain, err := search.SelectLandmarks(context.Background(), origin, destination, course)

	require.NoError(t, err)
	require.Len(t, chain, 2)
	assert.Equal(t, "KBDR", chain[0].Name)
	assert.Equal(t, "KHVN", chain[1].Name)
}

func TestSelectLandmarks_EmptyCorridorIsExhausted(t *testing.T) {
	geo := geodesy.NewGeodesy()
	gaz := helpers.NewMockGazetteer(geo)
	search := navigation.NewCorridorSearch(geo, gaz, navigation.DefaultCorridorPolicy())

	origin := helpers.Waypoint("KHPN")
	destination := helpers.Waypoint("KGON")
	course, err := geo.Course(origin.Position, destination.Position)
	require.NoError(t, err)

	chain, err := search.SelectLandmarks(context.Background(), origin, destination, course)

	assert.Nil(t, chain)
	var exhausted *shared.CorridorSearchExhaustedError
	require.True(t, errors.As(err, &exhausted))
	assert.Equal(t, "KHPN", exhausted.From)
}

func TestSelectLandmarks_LegBoundIsEnforced(t *testing.T) {
	geo := geodesy.NewGeodesy()
	gaz := helpers.NewConnecticutShoreGazetteer(geo)
	policy := navigation.DefaultCorridorPolicy()
	policy.MaxLegs = 1
	search := navigation.NewCorridorSearch(geo, gaz, policy)

	origin := helpers.Waypoint("KHPN")
	destination := helpers.Waypoint("KGON")
	course, err := geo.Course(origin.Position, destination.Position)
	require.NoError(t, err)

	_, err = search.SelectLandmarks(context.Background(), origin, destination, course)

	var exhausted *shared.CorridorSearchExhaustedError
	assert.True(t, errors.As(err, &exhausted))
}

func TestFilterCandidates(t *testing.T) {
	candidates := []navigation.Candidate{
		{Waypoint: shared.Waypoint{Name: "too-close"}, Course: navigation.Course{DistanceNM: 5, BearingDeg: 0}},
		{Waypoint: shared.Waypoint{Name: "too-far"}, Course: navigation.Course{DistanceNM: 30, BearingDeg: 0}},
		{Waypoint: shared.Waypoint{Name: "off-course"}, Course: navigation.Course{DistanceNM: 20, BearingDeg: 40}},
		{Waypoint: shared.Waypoint{Name: "across-north"}, Course: navigation.Course{DistanceNM: 20, BearingDeg: 5}},
	}

	t.Run("tolerance 1 wraps through north", func(t *testing.T) {
		passing := navigation.FilterCandidates(candidates, 355, 1.0)
		require.Len(t, passing, 1)
		assert.Equal(t, "across-north", passing[0].Waypoint.Name)
	})

	t.Run("relaxed tolerance widens band and cone", func(t *testing.T) {
		passing := navigation.FilterCandidates(candidates, 0, 2.5)
		names := make([]string, len(passing))
		for i, c := range passing {
			names[i] = c.Waypoint.Name
		}
		assert.ElementsMatch(t, []string{"too-close", "too-far", "off-course", "across-north"}, names)
	})
}
