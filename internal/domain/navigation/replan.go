package navigation

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/andrescamacho/vfrplanner-go/internal/domain/shared"
)

// ChangeRoute substitutes the "to" waypoint of one leg with the nearest
// gazetteer place matching placeName and rebuilds the route from scratch.
// Matches must lie within twice the route's course distance of the leg's
// "from" waypoint. Synthetic waypoints are dropped; callers re-run
// InsertClimb on the result.
func (b *RouteBuilder) ChangeRoute(ctx context.Context, route *Route, legIndex int, placeName string) (*Route, error) {
	segments := route.Segments()
	if legIndex < 0 || legIndex >= len(segments) {
		return nil, shared.NewValidationError("leg", fmt.Sprintf("index %d out of range [0, %d)", legIndex, len(segments)))
	}
	if segments[legIndex].IsDestination() {
		return nil, shared.NewValidationError("leg", "the destination cannot be substituted")
	}
	if strings.TrimSpace(placeName) == "" {
		return nil, shared.NewValidationError("place", "cannot be empty")
	}

	from := segments[legIndex].From()
	chain := route.Chain()
	radius := 2 * math.Ceil(route.Course().DistanceNM)

	replacement, err := b.nearestMatch(ctx, from, placeName, radius, chain, legIndex+1)
	if err != nil {
		return nil, err
	}
	chain[legIndex+1] = replacement

	custom := make([]shared.Waypoint, 0, len(chain))
	for _, w := range chain {
		if w.IsSynthetic() {
			continue
		}
		custom = append(custom, w)
	}

	return b.BuildRoute(ctx, RouteRequest{
		Origin:           route.Origin(),
		Destination:      route.Destination(),
		Course:           route.Course(),
		Performance:      route.Performance(),
		Night:            route.Night(),
		Custom:           custom,
		FetchWeather:     false,
		ElevationProfile: route.ElevationProfile(),
	})
}

// nearestMatch resolves a place name near "from". Places already on the
// chain (other than the one being replaced) are not eligible.
func (b *RouteBuilder) nearestMatch(
	ctx context.Context,
	from shared.Waypoint,
	placeName string,
	radiusNM float64,
	chain []shared.Waypoint,
	replaceAt int,
) (shared.Waypoint, error) {
	matches, err := b.providers.Gazetteer.SearchByName(ctx, placeName)
	if err != nil {
		return shared.Waypoint{}, fmt.Errorf("failed to search gazetteer for %q: %w", placeName, err)
	}

	onChain := make(map[string]bool, len(chain))
	for i, w := range chain {
		if i != replaceAt {
			onChain[w.Name] = true
		}
	}

	var best *shared.Waypoint
	bestDist := math.Inf(1)
	for _, m := range matches {
		if onChain[m.Name] {
			continue
		}
		c, err := b.providers.Geodesy.Course(from.Position, m.Position)
		if err != nil || c.DistanceNM >= radiusNM {
			continue
		}
		if c.DistanceNM < bestDist {
			picked := m.WithPriority(0, c.DistanceNM)
			best = &picked
			bestDist = c.DistanceNM
		}
	}

	if best == nil {
		return shared.Waypoint{}, shared.NewSubstitutionNotFoundError(placeName, radiusNM)
	}
	return *best, nil
}
