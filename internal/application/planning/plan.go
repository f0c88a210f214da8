package planning

import (
	"context"
	"time"

	"github.com/andrescamacho/vfrplanner-go/internal/domain/navigation"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/shared"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/weather"
)

// Environment is the surface weather at one end of a plan. Observation is
// nil when no METAR could be had.
type Environment struct {
	Station      string               `json:"station"`
	Observation  *weather.Observation `json:"-"`
	RawMETAR     string               `json:"metar,omitempty"`
	SkyCondition weather.SkyCondition `json:"sky_condition"`
	Wind         weather.Wind         `json:"wind"`
}

// Plan is one planning session's current result. Plans are replaced, never
// modified, once saved.
type Plan struct {
	ID        string
	SessionID string

	Origin      shared.Waypoint
	Destination shared.Waypoint
	Direct      navigation.Course

	Altitude            navigation.AltitudeDecision
	RequestedAltitudeFt int

	// Route is the displayed route, top of climb included; Base is the
	// route it was climbed from
	Route *navigation.Route
	Base  *navigation.Route

	OriginEnv      Environment
	DestinationEnv Environment

	// Notes are plan-level advisories re-applied after every rebuild
	Notes []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PlanStore holds the latest plan per session
type PlanStore interface {
	// Save replaces the session's plan
	Save(ctx context.Context, plan *Plan) error

	// Find returns the session's plan or shared.SessionNotFoundError
	Find(ctx context.Context, sessionID string) (*Plan, error)

	// Delete drops the session's plan, if any
	Delete(ctx context.Context, sessionID string) error
}

// Settings holds the planner policy shared by the handlers
type Settings struct {
	MaxDistanceNM float64
	Performance   navigation.Performance
}

// DefaultSettings returns the stock policy
func DefaultSettings() Settings {
	return Settings{
		MaxDistanceNM: 400,
		Performance:   navigation.DefaultPerformance(),
	}
}
