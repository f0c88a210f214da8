package navigation

import (
	"context"
	"fmt"
	"math"

	"github.com/andrescamacho/vfrplanner-go/internal/domain/shared"
)

// CorridorPolicy bounds the landmark search.
type CorridorPolicy struct {
	TerminalDistanceNM float64
	IdealLegNM         float64
	ToleranceStep      float64
	MaxTolerance       float64
	MaxLegs            int
}

// DefaultCorridorPolicy returns the standard search bounds
func DefaultCorridorPolicy() CorridorPolicy {
	return CorridorPolicy{
		TerminalDistanceNM: 28,
		IdealLegNM:         20,
		ToleranceStep:      0.1,
		MaxTolerance:       5.0,
		MaxLegs:            100,
	}
}

func (p CorridorPolicy) withDefaults() CorridorPolicy {
	d := DefaultCorridorPolicy()
	if p.TerminalDistanceNM <= 0 {
		p.TerminalDistanceNM = d.TerminalDistanceNM
	}
	if p.IdealLegNM <= 0 {
		p.IdealLegNM = d.IdealLegNM
	}
	if p.ToleranceStep <= 0 {
		p.ToleranceStep = d.ToleranceStep
	}
	if p.MaxTolerance < 1 {
		p.MaxTolerance = d.MaxTolerance
	}
	if p.MaxLegs <= 0 {
		p.MaxLegs = d.MaxLegs
	}
	return p
}

// CorridorSearch picks visual landmarks between two airports
type CorridorSearch struct {
	geodesy   Geodesy
	gazetteer Gazetteer
	policy    CorridorPolicy
}

// NewCorridorSearch creates a corridor search; zero policy fields take defaults
func NewCorridorSearch(geodesy Geodesy, gazetteer Gazetteer, policy CorridorPolicy) *CorridorSearch {
	return &CorridorSearch{
		geodesy:   geodesy,
		gazetteer: gazetteer,
		policy:    policy.withDefaults(),
	}
}

// Policy returns the effective search bounds
func (s *CorridorSearch) Policy() CorridorPolicy {
	return s.policy
}

// SelectLandmarks returns the landmark chain from origin to destination.
// The result always starts with origin, ends with destination and never
// repeats a name.
func (s *CorridorSearch) SelectLandmarks(
	ctx context.Context,
	origin, destination shared.Waypoint,
	course Course,
) ([]shared.Waypoint, error) {
	chain := []shared.Waypoint{origin}
	if course.DistanceNM < s.policy.TerminalDistanceNM {
		return append(chain, destination), nil
	}

	pool, err := s.gazetteer.WithinRadius(ctx, origin.Position, math.Ceil(course.DistanceNM))
	if err != nil {
		return nil, fmt.Errorf("failed to gather corridor candidates: %w", err)
	}

	used := map[string]bool{origin.Name: true, destination.Name: true}
	current := origin
	remaining := course

	for legs := 0; remaining.DistanceNM >= s.policy.TerminalDistanceNM; legs++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if legs >= s.policy.MaxLegs {
			return nil, shared.NewCorridorSearchExhaustedError(current.Name, s.policy.MaxTolerance, legs)
		}

		measured := s.measure(current, pool, used)
		next, err := s.pick(current, measured, remaining.BearingDeg, legs)
		if err != nil {
			return nil, err
		}

		chain = append(chain, next)
		used[next.Name] = true
		current = next

		remaining, err = s.geodesy.Course(current.Position, destination.Position)
		if err != nil {
			return nil, shared.NewGeodesyResolutionError(current.Name, destination.Name, err)
		}
	}

	return append(chain, destination), nil
}

// measure resolves the course from the current position to every unused
// candidate. Candidates geodesy cannot resolve are out of range.
func (s *CorridorSearch) measure(current shared.Waypoint, pool []shared.Waypoint, used map[string]bool) []Candidate {
	measured := make([]Candidate, 0, len(pool))
	for _, w := range pool {
		if used[w.Name] {
			continue
		}
		c, err := s.geodesy.Course(current.Position, w.Position)
		if err != nil {
			continue
		}
		measured = append(measured, Candidate{Waypoint: w, Course: c})
	}
	return measured
}

// pick relaxes the distance band and bearing cone until a candidate passes.
// Tolerance only grows within a step.
func (s *CorridorSearch) pick(current shared.Waypoint, measured []Candidate, targetBearing float64, legs int) (shared.Waypoint, error) {
	for tolerance := 1.0; tolerance <= s.policy.MaxTolerance+1e-9; tolerance += s.policy.ToleranceStep {
		passing := FilterCandidates(measured, targetBearing, tolerance)
		if len(passing) == 0 {
			continue
		}
		ranked := RankCandidates(passing, targetBearing, s.policy.IdealLegNM)
		return ranked[0], nil
	}
	return shared.Waypoint{}, shared.NewCorridorSearchExhaustedError(current.Name, s.policy.MaxTolerance, legs)
}

// FilterCandidates keeps candidates whose distance lies in
// [10/tolerance, 25*tolerance] nm and whose bearing deviates from
// targetBearing by less than 20*tolerance degrees.
func FilterCandidates(candidates []Candidate, targetBearing, tolerance float64) []Candidate {
	minNM := 10 / tolerance
	maxNM := 25 * tolerance
	cone := 20 * tolerance

	var passing []Candidate
	for _, c := range candidates {
		if c.Course.DistanceNM < minNM || c.Course.DistanceNM > maxNM {
			continue
		}
		if c.Deviation(targetBearing) >= cone {
			continue
		}
		passing = append(passing, c)
	}
	return passing
}
