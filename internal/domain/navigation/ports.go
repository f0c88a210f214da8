package navigation

import (
	"context"
	"fmt"

	"github.com/andrescamacho/vfrplanner-go/internal/domain/shared"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/weather"
)

// Course is a great-circle distance and initial bearing (degrees true).
type Course struct {
	DistanceNM float64 `json:"distance_nm"`
	BearingDeg float64 `json:"bearing_deg"`
}

func (c Course) String() string {
	return fmt.Sprintf("%.1f nm @ %03.0f°", c.DistanceNM, c.BearingDeg)
}

// Geodesy resolves distances and bearings on the earth's surface
type Geodesy interface {
	// Course returns distance and initial bearing from one point to another
	Course(from, to shared.LatLong) (Course, error)

	// Offset returns the point reached by travelling distNM along bearingDeg
	Offset(from shared.LatLong, bearingDeg, distNM float64) (shared.LatLong, error)
}

// Gazetteer looks up named places (airports and cities)
type Gazetteer interface {
	// FindByCode returns the airport with the exact identifier, or
	// shared.UnknownAirportError
	FindByCode(ctx context.Context, code string) (*shared.Waypoint, error)

	// WithinRadius returns airports and cities within radiusNM of center with
	// DistanceNM populated, ordered by name
	WithinRadius(ctx context.Context, center shared.LatLong, radiusNM float64) ([]shared.Waypoint, error)

	// SearchByName returns places whose normalized name contains the
	// normalized fragment
	SearchByName(ctx context.Context, fragment string) ([]shared.Waypoint, error)

	// FieldElevation returns the airport's elevation in feet
	FieldElevation(ctx context.Context, code string) (float64, error)
}

// MagneticVariation reports local variation in degrees, east positive
type MagneticVariation interface {
	VariationAt(ctx context.Context, position shared.LatLong) (float64, error)
}

// WeatherProvider fetches the latest surface observation for a station
type WeatherProvider interface {
	Observation(ctx context.Context, station string) (*weather.Observation, error)
}

// WindsAloftProvider returns the forecast wind nearest a position for the
// band serving altitudeFt
type WindsAloftProvider interface {
	WindsAloft(ctx context.Context, position shared.LatLong, altitudeFt float64) (weather.Wind, error)
}

// ElevationProvider returns terrain elevation in meters for each point
type ElevationProvider interface {
	Profile(ctx context.Context, path []shared.LatLong) ([]float64, error)
}
