package helpers

import (
	"context"
	"fmt"
	"sync"

	"github.com/andrescamacho/vfrplanner-go/internal/domain/shared"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/weather"
)

// MockWeatherProvider serves canned METARs keyed by station
type MockWeatherProvider struct {
	mu    sync.Mutex
	raw   map[string]string
	calls map[string]int
}

// NewMockWeatherProvider creates a provider with no reports
func NewMockWeatherProvider() *MockWeatherProvider {
	return &MockWeatherProvider{
		raw:   make(map[string]string),
		calls: make(map[string]int),
	}
}

// SetMETAR registers a raw report for a station
func (m *MockWeatherProvider) SetMETAR(station, raw string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.raw[station] = raw
}

// Calls returns how many times a station was requested
func (m *MockWeatherProvider) Calls(station string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[station]
}

func (m *MockWeatherProvider) Observation(ctx context.Context, station string) (*weather.Observation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls[station]++
	raw, ok := m.raw[station]
	if !ok {
		return nil, fmt.Errorf("no METAR for %s", station)
	}
	return weather.ParseMETAR(raw)
}

// MockWindsAloftProvider returns one wind for every query
type MockWindsAloftProvider struct {
	Wind weather.Wind
	Err  error

	mu    sync.Mutex
	calls int
}

func (m *MockWindsAloftProvider) WindsAloft(ctx context.Context, position shared.LatLong, altitudeFt float64) (weather.Wind, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.Err != nil {
		return weather.Wind{}, m.Err
	}
	return m.Wind, nil
}

// Calls returns the number of aloft lookups made
func (m *MockWindsAloftProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// MockElevationProvider returns a terrain profile. When Samples is set the
// profile is Samples[i % len(Samples)] for each requested point.
type MockElevationProvider struct {
	Samples []float64
	Err     error

	mu       sync.Mutex
	lastPath []shared.LatLong
}

func (m *MockElevationProvider) Profile(ctx context.Context, path []shared.LatLong) ([]float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastPath = append([]shared.LatLong(nil), path...)

	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]float64, len(path))
	if len(m.Samples) == 0 {
		return out, nil
	}
	for i := range path {
		out[i] = m.Samples[i%len(m.Samples)]
	}
	return out, nil
}

// LastPath returns the most recently sampled path
func (m *MockElevationProvider) LastPath() []shared.LatLong {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]shared.LatLong(nil), m.lastPath...)
}

// FixedVariation reports the same magnetic variation everywhere
type FixedVariation struct {
	Degrees float64
}

func (f FixedVariation) VariationAt(ctx context.Context, position shared.LatLong) (float64, error) {
	return f.Degrees, nil
}
