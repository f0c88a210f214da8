package geodesy

import (
	"fmt"
	"math"

	gogeo "github.com/paulmach/go.geo"
	"github.com/skypies/geo"

	"github.com/andrescamacho/vfrplanner-go/internal/domain/navigation"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/shared"
	"github.com/andrescamacho/vfrplanner-go/pkg/utils"
)

// coincidentNM is the distance below which two points are treated as the same
const coincidentNM = 1e-6

// SphericalGeodesy resolves great-circle courses with skypies/geo and
// destination points with paulmach/go.geo
type SphericalGeodesy struct{}

// NewGeodesy creates a geodesy adapter
func NewGeodesy() *SphericalGeodesy {
	return &SphericalGeodesy{}
}

var _ navigation.Geodesy = (*SphericalGeodesy)(nil)

// Course returns the distance in nautical miles and the initial bearing in
// degrees true from one point to another
func (g *SphericalGeodesy) Course(from, to shared.LatLong) (navigation.Course, error) {
	if err := checkPosition(from); err != nil {
		return navigation.Course{}, err
	}
	if err := checkPosition(to); err != nil {
		return navigation.Course{}, err
	}

	a := toLatlong(from)
	b := toLatlong(to)

	dist := a.DistNM(b)
	if math.IsNaN(dist) || math.IsInf(dist, 0) {
		return navigation.Course{}, fmt.Errorf("distance from %s to %s is not finite", from, to)
	}
	if dist < coincidentNM {
		return navigation.Course{DistanceNM: 0, BearingDeg: 0}, nil
	}

	bearing := a.BearingTowards(b)
	if math.IsNaN(bearing) {
		return navigation.Course{}, fmt.Errorf("bearing from %s to %s is undefined", from, to)
	}

	return navigation.Course{
		DistanceNM: dist,
		BearingDeg: utils.NormalizeDegrees(bearing),
	}, nil
}

// Offset returns the point reached from "from" after distNM along bearingDeg
func (g *SphericalGeodesy) Offset(from shared.LatLong, bearingDeg, distNM float64) (shared.LatLong, error) {
	if err := checkPosition(from); err != nil {
		return shared.LatLong{}, err
	}
	if math.IsNaN(bearingDeg) || math.IsNaN(distNM) || distNM < 0 {
		return shared.LatLong{}, fmt.Errorf("invalid offset %.1f nm @ %.1f°", distNM, bearingDeg)
	}
	if distNM == 0 {
		return from, nil
	}

	meters := geo.NM2KM(distNM) * 1000
	p := gogeo.NewPoint(from.Lon, from.Lat).PointAtBearingAndDistance(bearingDeg, meters)

	lon := p.Lng()
	if lon > 180 {
		lon -= 360
	} else if lon < -180 {
		lon += 360
	}
	return shared.NewLatLong(p.Lat(), lon)
}

func toLatlong(ll shared.LatLong) geo.Latlong {
	return geo.Latlong{Lat: ll.Lat, Long: ll.Lon}
}

func checkPosition(ll shared.LatLong) error {
	_, err := shared.NewLatLong(ll.Lat, ll.Lon)
	return err
}
