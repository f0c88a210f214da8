package navigation

import (
	"context"

	"github.com/andrescamacho/vfrplanner-go/internal/domain/shared"
)

// InsertClimb returns a new route with a top-of-climb waypoint placed the
// climb distance out along the first leg. Whole legs that end inside the
// climb distance are dropped. The result always carries live weather, even
// when no top of climb is placed.
//
// When the climb distance exceeds the route, the same chain is returned with
// an advisory.
func (b *RouteBuilder) InsertClimb(ctx context.Context, route *Route) (*Route, error) {
	perf := route.Performance()
	climbDist := perf.ClimbDistanceNM

	if route.TotalDistance() < climbDist {
		advisory := shared.NewClimbDistanceExceedsRouteError(climbDist, route.TotalDistance())
		return b.withLiveWeather(ctx, route.WithAdvisory(advisory.Error()))
	}
	if climbDist <= 0 || route.ClimbInserted() {
		return b.withLiveWeather(ctx, route)
	}

	segments := route.Segments()
	origin := route.Origin()

	// Never drop the last leg: the destination must survive.
	removed := 0
	accumulated := 0.0
	for i, seg := range segments[:len(segments)-1] {
		accumulated += seg.LengthNM()
		if accumulated > climbDist {
			break
		}
		removed = i + 1
	}

	position, err := b.providers.Geodesy.Offset(origin.Position, segments[0].TrueCourse(), climbDist)
	if err != nil {
		return nil, shared.NewGeodesyResolutionError(origin.Name, shared.TopOfClimbName, err)
	}
	toc := shared.Waypoint{
		Name:     shared.TopOfClimbName,
		Kind:     shared.WaypointKindSynthetic,
		Position: position,
	}

	chain := []shared.Waypoint{origin, toc}
	for _, seg := range segments[removed:] {
		chain = append(chain, seg.To())
	}

	return b.BuildRoute(ctx, RouteRequest{
		Origin:           origin,
		Destination:      route.Destination(),
		Course:           route.Course(),
		Performance:      perf,
		Night:            route.Night(),
		Custom:           chain,
		FetchWeather:     true,
		ElevationProfile: route.ElevationProfile(),
		Advisories:       route.Advisories(),
		ClimbInserted:    true,
	})
}

// withLiveWeather rebuilds a calm route over the same chain with fetched winds
func (b *RouteBuilder) withLiveWeather(ctx context.Context, route *Route) (*Route, error) {
	if route.LiveWeather() {
		return route, nil
	}
	return b.BuildRoute(ctx, RouteRequest{
		Origin:           route.Origin(),
		Destination:      route.Destination(),
		Course:           route.Course(),
		Performance:      route.Performance(),
		Night:            route.Night(),
		Custom:           route.Chain(),
		FetchWeather:     true,
		ElevationProfile: route.ElevationProfile(),
		Advisories:       route.Advisories(),
		ClimbInserted:    route.ClimbInserted(),
	})
}
