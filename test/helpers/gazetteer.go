package helpers

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/andrescamacho/vfrplanner-go/internal/domain/navigation"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/shared"
)

// MockGazetteer is an in-memory test double for navigation.Gazetteer
type MockGazetteer struct {
	mu         sync.RWMutex
	geodesy    navigation.Geodesy
	places     []shared.Waypoint
	elevations map[string]float64
	searchErr  error
}

// NewMockGazetteer creates an empty gazetteer measuring with the given geodesy
func NewMockGazetteer(geodesy navigation.Geodesy) *MockGazetteer {
	return &MockGazetteer{
		geodesy:    geodesy,
		elevations: make(map[string]float64),
	}
}

// AddPlace adds a place with an optional field elevation (airports)
func (m *MockGazetteer) AddPlace(name string, kind shared.WaypointKind, lat, lon, elevationFt float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.places = append(m.places, shared.Waypoint{
		Name:     name,
		Kind:     kind,
		Position: shared.LatLong{Lat: lat, Lon: lon},
	})
	if kind == shared.WaypointKindAirport {
		m.elevations[name] = elevationFt
	}
}

// SetSearchError makes SearchByName fail
func (m *MockGazetteer) SetSearchError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchErr = err
}

// FindByCode returns the airport with the exact name
func (m *MockGazetteer) FindByCode(ctx context.Context, code string) (*shared.Waypoint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, p := range m.places {
		if p.Kind == shared.WaypointKindAirport && p.Name == code {
			found := p
			return &found, nil
		}
	}
	return nil, shared.NewUnknownAirportError(code)
}

// WithinRadius returns places within radiusNM of center, airports first and
// then by name
func (m *MockGazetteer) WithinRadius(ctx context.Context, center shared.LatLong, radiusNM float64) ([]shared.Waypoint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []shared.Waypoint
	for _, p := range m.places {
		c, err := m.geodesy.Course(center, p.Position)
		if err != nil || c.DistanceNM >= radiusNM {
			continue
		}
		out = append(out, p.WithPriority(0, c.DistanceNM))
	}
	sort.SliceStable(out, func(i, j int) bool {
		ai, aj := out[i].Kind == shared.WaypointKindAirport, out[j].Kind == shared.WaypointKindAirport
		if ai != aj {
			return ai
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// SearchByName matches on normalized substrings
func (m *MockGazetteer) SearchByName(ctx context.Context, fragment string) ([]shared.Waypoint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.searchErr != nil {
		return nil, m.searchErr
	}

	key := shared.NormalizeName(fragment)
	var out []shared.Waypoint
	for _, p := range m.places {
		if strings.Contains(shared.NormalizeName(p.Name), key) {
			out = append(out, p)
		}
	}
	return out, nil
}

// FieldElevation returns the airport's elevation in feet
func (m *MockGazetteer) FieldElevation(ctx context.Context, code string) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	elev, ok := m.elevations[code]
	if !ok {
		return 0, shared.NewUnknownAirportError(code)
	}
	return elev, nil
}
