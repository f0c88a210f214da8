package navigation

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/andrescamacho/vfrplanner-go/internal/domain/shared"
	"github.com/andrescamacho/vfrplanner-go/pkg/utils"
)

const (
	metersToFeet       = 3.28084
	vfrOffsetFt        = 500
	minimumCruiseFt    = 1500
	lowAltitudeRaiseFt = 2000
	defaultSampleCount = 32
	minimumSampleCount = 2
)

// AltitudeDecision is the selected cruising altitude and the terrain sample
// it was derived from
type AltitudeDecision struct {
	AltitudeFt        int       `json:"altitude_ft"`
	MaxElevationFt    float64   `json:"max_elevation_ft"`
	MagneticCourseDeg float64   `json:"magnetic_course_deg"`
	Profile           []float64 `json:"profile"`
}

// AltitudeSelector picks a hemispheric-rule cruising altitude above terrain
type AltitudeSelector struct {
	geodesy   Geodesy
	elevation ElevationProvider
	variation MagneticVariation
	samples   int
}

// NewAltitudeSelector creates a selector sampling the given number of points
func NewAltitudeSelector(geodesy Geodesy, elevation ElevationProvider, variation MagneticVariation, samples int) *AltitudeSelector {
	if samples <= 0 {
		samples = defaultSampleCount
	}
	if samples < minimumSampleCount {
		samples = minimumSampleCount
	}
	return &AltitudeSelector{
		geodesy:   geodesy,
		elevation: elevation,
		variation: variation,
		samples:   samples,
	}
}

// ChooseAltitude samples terrain along the direct path and applies the VFR
// cruising altitude rule to the highest sample.
func (s *AltitudeSelector) ChooseAltitude(
	ctx context.Context,
	origin, destination shared.Waypoint,
	course Course,
) (AltitudeDecision, error) {
	path, err := SamplePath(s.geodesy, origin.Position, destination.Position, course, s.samples)
	if err != nil {
		return AltitudeDecision{}, shared.NewGeodesyResolutionError(origin.Name, destination.Name, err)
	}

	profile, err := s.elevation.Profile(ctx, path)
	if err != nil {
		return AltitudeDecision{}, fmt.Errorf("failed to fetch elevation profile: %w", err)
	}
	if len(profile) == 0 {
		return AltitudeDecision{}, fmt.Errorf("elevation provider returned no samples")
	}

	variation, err := s.variation.VariationAt(ctx, origin.Position)
	if err != nil {
		return AltitudeDecision{}, fmt.Errorf("failed to resolve magnetic variation at %s: %w", origin.Name, err)
	}
	magnetic := utils.NormalizeDegrees(course.BearingDeg - variation)

	maxFt := slices.Max(profile) * metersToFeet

	return AltitudeDecision{
		AltitudeFt:        CruisingAltitude(maxFt, magnetic),
		MaxElevationFt:    maxFt,
		MagneticCourseDeg: magnetic,
		Profile:           slices.Clone(profile),
	}, nil
}

// CruisingAltitude applies the hemispheric rule: round the terrain up to the
// next thousand, make the thousands odd for magnetic courses 0-179 and even
// for 180-359, add 500 ft, and raise anything below 1500 ft by 2000 ft.
func CruisingAltitude(maxElevationFt, magneticCourseDeg float64) int {
	alt := utils.RoundUpToThousand(math.Max(maxElevationFt, 0))
	thousands := alt / 1000

	if utils.NormalizeDegrees(magneticCourseDeg) < 180 {
		if thousands%2 == 0 {
			alt += 1000
		}
	} else if thousands%2 != 0 {
		alt += 1000
	}

	alt += vfrOffsetFt
	if alt < minimumCruiseFt {
		alt += lowAltitudeRaiseFt
	}
	return alt
}

// SamplePath returns n evenly spaced points along the course from origin,
// ending exactly at destination.
func SamplePath(geodesy Geodesy, origin, destination shared.LatLong, course Course, n int) ([]shared.LatLong, error) {
	if n < minimumSampleCount {
		n = minimumSampleCount
	}

	path := make([]shared.LatLong, 0, n)
	path = append(path, origin)
	for i := 1; i < n-1; i++ {
		dist := course.DistanceNM * float64(i) / float64(n-1)
		p, err := geodesy.Offset(origin, course.BearingDeg, dist)
		if err != nil {
			return nil, err
		}
		path = append(path, p)
	}
	return append(path, destination), nil
}
