package shared

import (
	"fmt"
	"strings"
	"unicode"
)

// WaypointKind distinguishes where a waypoint came from.
type WaypointKind string

const (
	WaypointKindAirport   WaypointKind = "airport"
	WaypointKindCity      WaypointKind = "city"
	WaypointKindSynthetic WaypointKind = "synthetic"
)

// TopOfClimbName is the name given to the synthesized top-of-climb waypoint.
const TopOfClimbName = "TOC"

// Waypoint represents an immutable named location used as a route landmark
type Waypoint struct {
	Name     string       `json:"name"`
	Kind     WaypointKind `json:"kind"`
	Position LatLong      `json:"position"`

	// Set only on ranked candidate copies.
	Priority   int     `json:"priority,omitempty"`
	DistanceNM float64 `json:"distance_nm,omitempty"`
}

// NewWaypoint creates a new waypoint with validation
func NewWaypoint(name string, kind WaypointKind, position LatLong) (*Waypoint, error) {
	if strings.TrimSpace(name) == "" {
		return nil, NewValidationError("name", "cannot be empty")
	}
	switch kind {
	case WaypointKindAirport, WaypointKindCity, WaypointKindSynthetic:
	default:
		return nil, NewValidationError("kind", fmt.Sprintf("unknown waypoint kind %q", kind))
	}

	return &Waypoint{
		Name:     name,
		Kind:     kind,
		Position: position,
	}, nil
}

// IsSynthetic reports whether the waypoint was computed rather than looked up.
func (w Waypoint) IsSynthetic() bool {
	return w.Kind == WaypointKindSynthetic
}

// WithPriority returns a ranked copy of the waypoint.
func (w Waypoint) WithPriority(priority int, distanceNM float64) Waypoint {
	w.Priority = priority
	w.DistanceNM = distanceNM
	return w
}

func (w Waypoint) String() string {
	return fmt.Sprintf("Waypoint(%s)", w.Name)
}

// IsAirportIdentifier reports whether name is written like an airport code:
// at least one letter and no lowercase letters.
func IsAirportIdentifier(name string) bool {
	hasLetter := false
	for _, r := range name {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

// NormalizeName lowercases a name and strips whitespace for fuzzy matching.
func NormalizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
