package navigation

import (
	"fmt"
	"slices"

	"github.com/andrescamacho/vfrplanner-go/internal/domain/shared"
)

// Route aggregate root - an immutable, fully derived VFR flight plan
//
// Invariants:
// - Segments form connected path (segment[i].to == segment[i+1].from)
// - TotalDistance equals the sum of segment lengths
// - FuelRequired equals taxi + reserve + Σ(leg time × burn rate)
//
// A route is never patched: climb insertion and substitution build a new one.
type Route struct {
	origin           shared.Waypoint
	destination      shared.Waypoint
	course           Course
	performance      Performance
	night            bool
	segments         []*Segment
	advisories       []string
	elevationProfile []float64
	climbInserted    bool
	liveWeather      bool

	fuelRequired  float64
	totalTime     float64
	totalDistance float64
}

func newRoute(
	origin, destination shared.Waypoint,
	course Course,
	performance Performance,
	night bool,
	segments []*Segment,
	advisories []string,
	elevationProfile []float64,
	climbInserted bool,
	liveWeather bool,
) (*Route, error) {
	r := &Route{
		origin:           origin,
		destination:      destination,
		course:           course,
		performance:      performance,
		night:            night,
		segments:         segments,
		advisories:       slices.Clone(advisories),
		elevationProfile: slices.Clone(elevationProfile),
		climbInserted:    climbInserted,
		liveWeather:      liveWeather,
	}

	if err := r.validate(); err != nil {
		return nil, err
	}
	r.calculateTotals()
	return r, nil
}

func (r *Route) validate() error {
	if len(r.segments) == 0 {
		return fmt.Errorf("route %s -> %s has no segments", r.origin.Name, r.destination.Name)
	}
	if r.segments[0].From().Name != r.origin.Name {
		return fmt.Errorf("route starts at %s, expected %s", r.segments[0].From().Name, r.origin.Name)
	}
	if last := r.segments[len(r.segments)-1]; last.To().Name != r.destination.Name {
		return fmt.Errorf("route ends at %s, expected %s", last.To().Name, r.destination.Name)
	}

	// Check segments form connected path
	for i := 0; i < len(r.segments)-1; i++ {
		current := r.segments[i]
		next := r.segments[i+1]
		if current.To().Name != next.From().Name {
			return fmt.Errorf("segments not connected: %s → %s",
				current.To().Name, next.From().Name)
		}
	}
	return nil
}

// calculateTotals derives fuel, time and distance. Fuel includes taxi and
// reserve; time does not.
func (r *Route) calculateTotals() {
	r.fuelRequired = r.performance.ReserveFuel(r.night)
	for _, seg := range r.segments {
		r.totalTime += seg.LegTime()
		r.fuelRequired += seg.LegTime() * r.performance.FuelBurnGPH
		r.totalDistance += seg.LengthNM()
	}
	r.fuelRequired += r.performance.TaxiFuelGal
}

// Getters

func (r *Route) Origin() shared.Waypoint {
	return r.origin
}

func (r *Route) Destination() shared.Waypoint {
	return r.destination
}

func (r *Route) Course() Course {
	return r.course
}

func (r *Route) Performance() Performance {
	return r.performance
}

func (r *Route) Night() bool {
	return r.night
}

func (r *Route) ClimbInserted() bool {
	return r.climbInserted
}

// LiveWeather reports whether the legs were flown with fetched winds
func (r *Route) LiveWeather() bool {
	return r.liveWeather
}

func (r *Route) Segments() []*Segment {
	// Return a copy to prevent mutation
	segments := make([]*Segment, len(r.segments))
	copy(segments, r.segments)
	return segments
}

func (r *Route) Advisories() []string {
	return slices.Clone(r.advisories)
}

// ElevationProfile is the terrain sample (meters) used to pick the altitude
func (r *Route) ElevationProfile() []float64 {
	return slices.Clone(r.elevationProfile)
}

// Chain returns the ordered landmarks the route flies over
func (r *Route) Chain() []shared.Waypoint {
	chain := make([]shared.Waypoint, 0, len(r.segments)+1)
	for _, seg := range r.segments {
		chain = append(chain, seg.From())
	}
	return append(chain, r.segments[len(r.segments)-1].To())
}

// Route queries

// TotalDistance is the sum of leg lengths in nautical miles
func (r *Route) TotalDistance() float64 {
	return r.totalDistance
}

// TotalTime is the sum of leg times in hours
func (r *Route) TotalTime() float64 {
	return r.totalTime
}

// FuelRequired is the fuel in gallons including taxi and reserve
func (r *Route) FuelRequired() float64 {
	return r.fuelRequired
}

// WithAdvisory returns a copy of the route carrying one more advisory
func (r *Route) WithAdvisory(message string) *Route {
	clone := *r
	clone.advisories = appendAdvisory(slices.Clone(r.advisories), message)
	return &clone
}

func (r *Route) String() string {
	return fmt.Sprintf("Route(%s -> %s, legs=%d, %.1f nm, %.2f hrs, %.1f gal)",
		r.origin.Name, r.destination.Name, len(r.segments), r.totalDistance, r.totalTime, r.fuelRequired)
}

// appendAdvisory adds a message unless it is already present
func appendAdvisory(advisories []string, message string) []string {
	if slices.Contains(advisories, message) {
		return advisories
	}
	return append(advisories, message)
}
