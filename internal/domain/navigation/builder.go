package navigation

import (
	"context"
	"errors"
	"fmt"

	"github.com/andrescamacho/vfrplanner-go/internal/domain/shared"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/weather"
)

// Providers bundles the external collaborators route assembly depends on
type Providers struct {
	Geodesy   Geodesy
	Gazetteer Gazetteer
	Variation MagneticVariation
	Weather   WeatherProvider
	Aloft     WindsAloftProvider
	Elevation ElevationProvider
}

// RouteRequest describes one route build
type RouteRequest struct {
	Origin      shared.Waypoint
	Destination shared.Waypoint
	Course      Course
	Performance Performance
	Night       bool

	// Custom replaces the corridor search with a fixed landmark chain
	Custom []shared.Waypoint

	// FetchWeather enables live surface and aloft winds; otherwise every
	// leg is flown calm
	FetchWeather bool

	ElevationProfile []float64
	Advisories       []string
	ClimbInserted    bool
}

// RouteBuilder assembles, climbs and replans routes
type RouteBuilder struct {
	providers Providers
	corridor  *CorridorSearch
}

// NewRouteBuilder creates a route builder
func NewRouteBuilder(providers Providers, policy CorridorPolicy) *RouteBuilder {
	return &RouteBuilder{
		providers: providers,
		corridor:  NewCorridorSearch(providers.Geodesy, providers.Gazetteer, policy),
	}
}

// BuildRoute builds a route from scratch. The first leg starts at the
// origin's field elevation at climb speed; the rest cruise.
func (b *RouteBuilder) BuildRoute(ctx context.Context, req RouteRequest) (*Route, error) {
	if err := req.Performance.Validate(); err != nil {
		return nil, err
	}

	chain := req.Custom
	if len(chain) == 0 {
		var err error
		chain, err = b.corridor.SelectLandmarks(ctx, req.Origin, req.Destination, req.Course)
		if err != nil {
			return nil, err
		}
	}
	if len(chain) < 2 {
		return nil, shared.NewValidationError("chain", "needs at least an origin and a destination")
	}

	advisories := append([]string(nil), req.Advisories...)

	aloft := weather.Calm()
	if req.FetchWeather {
		mid := chain[len(chain)/2]
		w, err := b.providers.Aloft.WindsAloft(ctx, mid.Position, req.Performance.CruiseAltitudeFt)
		if err != nil {
			advisories = appendAdvisory(advisories, fmt.Sprintf("No winds aloft near %s; assuming calm", mid.Name))
		} else {
			aloft = w
		}
	}

	fieldElevation, err := b.providers.Gazetteer.FieldElevation(ctx, req.Origin.Name)
	if err != nil {
		fieldElevation = 0
		advisories = appendAdvisory(advisories, fmt.Sprintf("Field elevation of %s unknown; using sea level", req.Origin.Name))
	}

	surface := make(map[string]*weather.Observation)
	segments := make([]*Segment, 0, len(chain)-1)
	for i := 0; i < len(chain)-1; i++ {
		spec := SegmentSpec{
			From:             chain[i],
			To:               chain[i+1],
			DesiredCourseDeg: req.Course.BearingDeg,
			AltitudeFt:       req.Performance.CruiseAltitudeFt,
			TrueAirspeedKt:   req.Performance.CruiseSpeedKt,
			IsOrigin:         i == 0,
			IsDestination:    i == len(chain)-2,
			Index:            i,
		}
		if spec.IsOrigin {
			spec.AltitudeFt = fieldElevation
			spec.TrueAirspeedKt = req.Performance.ClimbSpeedKt
		}

		if req.FetchWeather {
			var advisory string
			spec.Wind, spec.WindSource, advisory = b.resolveWind(ctx, spec, aloft, surface)
			if advisory != "" {
				advisories = appendAdvisory(advisories, advisory)
			}
		} else {
			spec.Wind, spec.WindSource = weather.Calm(), WindSourceCalm
		}

		seg, err := NewSegment(ctx, spec, b.providers.Geodesy, b.providers.Variation)
		if err != nil {
			return nil, err
		}
		segments = append(segments, seg)
	}

	return newRoute(
		chain[0],
		chain[len(chain)-1],
		req.Course,
		req.Performance,
		req.Night,
		segments,
		advisories,
		req.ElevationProfile,
		req.ClimbInserted,
		req.FetchWeather,
	)
}

// resolveWind picks the leg's wind. Missing surface data degrades to calm
// with an advisory.
func (b *RouteBuilder) resolveWind(
	ctx context.Context,
	spec SegmentSpec,
	aloft weather.Wind,
	cache map[string]*weather.Observation,
) (weather.Wind, WindSource, string) {
	source := SelectWindSource(spec)

	station := spec.From
	switch source {
	case WindSourceAloft:
		return aloft, WindSourceAloft, ""
	case WindSourceSurfaceTo:
		station = spec.To
	}

	obs, err := b.observation(ctx, station, cache)
	if err != nil {
		var noWind *shared.NoWindDataError
		if errors.As(err, &noWind) {
			return weather.Calm(), WindSourceCalm, NoWindAdvisory(noWind.Station)
		}
		return weather.Calm(), WindSourceCalm, NoWindAdvisory(station.Name)
	}
	return obs.Wind(), source, ""
}

func (b *RouteBuilder) observation(
	ctx context.Context,
	station shared.Waypoint,
	cache map[string]*weather.Observation,
) (*weather.Observation, error) {
	if obs, ok := cache[station.Name]; ok {
		if obs == nil {
			return nil, shared.NewNoWindDataError(station.Name, nil)
		}
		return obs, nil
	}
	if station.IsSynthetic() {
		cache[station.Name] = nil
		return nil, shared.NewNoWindDataError(station.Name, nil)
	}

	obs, err := b.providers.Weather.Observation(ctx, station.Name)
	if err != nil || obs == nil {
		cache[station.Name] = nil
		return nil, shared.NewNoWindDataError(station.Name, err)
	}
	cache[station.Name] = obs
	return obs, nil
}

// NoWindAdvisory is recorded when a leg falls back to calm wind
func NoWindAdvisory(station string) string {
	return fmt.Sprintf("No wind data for %s; assuming calm", station)
}
