package planning

import (
	"context"

	"github.com/andrescamacho/vfrplanner-go/internal/domain/navigation"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/weather"
)

// ObserveEnvironment fetches the station's METAR. Failures and synthetic
// places give an environment with unknown conditions and calm wind.
func ObserveEnvironment(ctx context.Context, provider navigation.WeatherProvider, station string) Environment {
	env := Environment{
		Station:      station,
		SkyCondition: weather.SkyConditionUnknown,
		Wind:         weather.Calm(),
	}
	if provider == nil {
		return env
	}

	obs, err := provider.Observation(ctx, station)
	if err != nil || obs == nil {
		return env
	}

	env.Observation = obs
	env.RawMETAR = obs.Raw
	env.SkyCondition = obs.SkyCondition()
	env.Wind = obs.Wind()
	return env
}

// EnvironmentNotes returns the conditions advisories for both ends
func EnvironmentNotes(origin, destination Environment) []string {
	var notes []string
	if n := ConditionsAdvisory("Origin", origin.SkyCondition); n != "" {
		notes = append(notes, n)
	}
	if n := ConditionsAdvisory("Destination", destination.SkyCondition); n != "" {
		notes = append(notes, n)
	}
	return notes
}

// Decorate attaches plan-level notes to route
func Decorate(route *navigation.Route, notes []string) *navigation.Route {
	for _, n := range notes {
		route = route.WithAdvisory(n)
	}
	return route
}
