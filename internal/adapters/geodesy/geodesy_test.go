package geodesy_test

import (
	"testing"

	"github.com/andrescamacho/vfrplanner-go/internal/adapters/geodesy"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	khpn = shared.LatLong{Lat: 41.0670, Lon: -73.7076}
	kgon = shared.LatLong{Lat: 41.3301, Lon: -72.0451}
)

func TestCourse_KHPNToKGON(t *testing.T) {
	g := geodesy.NewGeodesy()

	c, err := g.Course(khpn, kgon)
	require.NoError(t, err)

	// Roughly 77 nm, a little north of east
	assert.InDelta(t, 77, c.DistanceNM, 3)
	assert.InDelta(t, 78, c.BearingDeg, 4)
}

func TestCourse_BearingIsNormalized(t *testing.T) {
	g := geodesy.NewGeodesy()

	c, err := g.Course(kgon, khpn)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, c.BearingDeg, 0.0)
	assert.Less(t, c.BearingDeg, 360.0)
	assert.InDelta(t, 259, c.BearingDeg, 4)
}

func TestCourse_CoincidentPoints(t *testing.T) {
	g := geodesy.NewGeodesy()

	c, err := g.Course(khpn, khpn)
	require.NoError(t, err)
	assert.Zero(t, c.DistanceNM)
}

func TestCourse_RejectsInvalidPositions(t *testing.T) {
	g := geodesy.NewGeodesy()

	_, err := g.Course(shared.LatLong{Lat: 95, Lon: 0}, khpn)
	assert.Error(t, err)
}

func TestOffset_RoundTrip(t *testing.T) {
	g := geodesy.NewGeodesy()

	c, err := g.Course(khpn, kgon)
	require.NoError(t, err)

	p, err := g.Offset(khpn, c.BearingDeg, 7)
	require.NoError(t, err)

	back, err := g.Course(khpn, p)
	require.NoError(t, err)
	assert.InDelta(t, 7, back.DistanceNM, 0.1)
	assert.InDelta(t, c.BearingDeg, back.BearingDeg, 0.5)
}

func TestOffset_ZeroDistance(t *testing.T) {
	g := geodesy.NewGeodesy()

	p, err := g.Offset(khpn, 90, 0)
	require.NoError(t, err)
	assert.Equal(t, khpn, p)

	_, err = g.Offset(khpn, 90, -1)
	assert.Error(t, err)
}
