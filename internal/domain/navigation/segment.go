package navigation

import (
	"context"
	"fmt"

	"github.com/andrescamacho/vfrplanner-go/internal/domain/shared"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/weather"
	"github.com/andrescamacho/vfrplanner-go/pkg/utils"
)

// WindSource records where a leg's wind came from
type WindSource string

const (
	WindSourceSurfaceFrom WindSource = "surface_from"
	WindSourceSurfaceTo   WindSource = "surface_to"
	WindSourceAloft       WindSource = "aloft"
	WindSourceCalm        WindSource = "calm"
)

// SegmentSpec carries everything needed to derive one leg
type SegmentSpec struct {
	From             shared.Waypoint
	To               shared.Waypoint
	DesiredCourseDeg float64
	AltitudeFt       float64
	TrueAirspeedKt   float64
	IsOrigin         bool
	IsDestination    bool
	Index            int
	Wind             weather.Wind
	WindSource       WindSource
}

// SelectWindSource decides which observation a leg uses: the origin leg and
// legs at altitude 0 use the surface wind at "from", the destination leg the
// surface wind at "to", everything else the route's aloft sample.
func SelectWindSource(spec SegmentSpec) WindSource {
	switch {
	case spec.IsOrigin || spec.AltitudeFt == 0:
		return WindSourceSurfaceFrom
	case spec.IsDestination:
		return WindSourceSurfaceTo
	default:
		return WindSourceAloft
	}
}

// Segment is an immutable leg between two consecutive landmarks. All derived
// values are computed at construction.
type Segment struct {
	from          shared.Waypoint
	to            shared.Waypoint
	index         int
	isOrigin      bool
	isDestination bool

	desiredCourse float64
	trueCourse    float64
	lengthNM      float64
	altitudeFt    float64
	tas           float64

	wind       weather.Wind
	windSource WindSource

	variation        float64
	magneticHeading  float64
	windCorrection   float64
	correctedHeading float64
	groundSpeed      float64
	legTime          float64
}

// NewSegment resolves the leg geometry and solves the wind triangle
func NewSegment(
	ctx context.Context,
	spec SegmentSpec,
	geodesy Geodesy,
	variation MagneticVariation,
) (*Segment, error) {
	if spec.TrueAirspeedKt <= 0 {
		return nil, shared.NewValidationError("true_airspeed", fmt.Sprintf("must be positive, got %.1f", spec.TrueAirspeedKt))
	}

	course, err := geodesy.Course(spec.From.Position, spec.To.Position)
	if err != nil {
		return nil, shared.NewGeodesyResolutionError(spec.From.Name, spec.To.Name, err)
	}

	magVar, err := variation.VariationAt(ctx, spec.From.Position)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve magnetic variation at %s: %w", spec.From.Name, err)
	}

	source := spec.WindSource
	if source == "" {
		source = WindSourceCalm
	}

	wca, gs, err := WindTriangle(course.BearingDeg, spec.TrueAirspeedKt, spec.Wind)
	if err != nil {
		return nil, fmt.Errorf("leg %s -> %s: %w", spec.From.Name, spec.To.Name, err)
	}

	magnetic := utils.NormalizeDegrees(course.BearingDeg - magVar)

	return &Segment{
		from:             spec.From,
		to:               spec.To,
		index:            spec.Index,
		isOrigin:         spec.IsOrigin,
		isDestination:    spec.IsDestination,
		desiredCourse:    spec.DesiredCourseDeg,
		trueCourse:       course.BearingDeg,
		lengthNM:         course.DistanceNM,
		altitudeFt:       spec.AltitudeFt,
		tas:              spec.TrueAirspeedKt,
		wind:             spec.Wind,
		windSource:       source,
		variation:        magVar,
		magneticHeading:  magnetic,
		windCorrection:   wca,
		correctedHeading: utils.NormalizeDegrees(magnetic + wca),
		groundSpeed:      gs,
		legTime:          course.DistanceNM / gs,
	}, nil
}

// Getters

func (s *Segment) From() shared.Waypoint {
	return s.from
}

func (s *Segment) To() shared.Waypoint {
	return s.to
}

func (s *Segment) Index() int {
	return s.index
}

func (s *Segment) IsOrigin() bool {
	return s.isOrigin
}

func (s *Segment) IsDestination() bool {
	return s.isDestination
}

// DesiredCourse is the overall route bearing the leg was planned against
func (s *Segment) DesiredCourse() float64 {
	return s.desiredCourse
}

// TrueCourse is the leg's own initial bearing
func (s *Segment) TrueCourse() float64 {
	return s.trueCourse
}

func (s *Segment) LengthNM() float64 {
	return s.lengthNM
}

func (s *Segment) AltitudeFt() float64 {
	return s.altitudeFt
}

func (s *Segment) TrueAirspeed() float64 {
	return s.tas
}

func (s *Segment) Wind() weather.Wind {
	return s.wind
}

func (s *Segment) WindSource() WindSource {
	return s.windSource
}

func (s *Segment) MagneticVariation() float64 {
	return s.variation
}

func (s *Segment) MagneticHeading() float64 {
	return s.magneticHeading
}

func (s *Segment) WindCorrectionAngle() float64 {
	return s.windCorrection
}

func (s *Segment) CorrectedHeading() float64 {
	return s.correctedHeading
}

func (s *Segment) GroundSpeed() float64 {
	return s.groundSpeed
}

// LegTime is the leg duration in hours
func (s *Segment) LegTime() float64 {
	return s.legTime
}

func (s *Segment) String() string {
	return fmt.Sprintf("%s -> %s (%.2f nm, %.2f hrs); %.0f @ %.0f kt. GS=%.1f; CH=%03.0f",
		s.from.Name, s.to.Name, s.lengthNM, s.legTime, s.altitudeFt, s.tas, s.groundSpeed, s.correctedHeading)
}
