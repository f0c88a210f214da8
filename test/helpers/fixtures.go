package helpers

import (
	"github.com/andrescamacho/vfrplanner-go/internal/adapters/geodesy"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/navigation"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/shared"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/weather"
)

// FixturePlace is one gazetteer row used by tests
type FixturePlace struct {
	Name        string
	Kind        shared.WaypointKind
	Lat         float64
	Lon         float64
	ElevationFt float64
}

// ConnecticutShorePlaces lists airports and towns between Westchester and
// Groton
func ConnecticutShorePlaces() []FixturePlace {
	return []FixturePlace{
		{"KHPN", shared.WaypointKindAirport, 41.0670, -73.7076, 439},
		{"KGON", shared.WaypointKindAirport, 41.3301, -72.0451, 10},
		{"KBDR", shared.WaypointKindAirport, 41.1635, -73.1262, 9},
		{"KHVN", shared.WaypointKindAirport, 41.2637, -72.8868, 14},
		{"KDXR", shared.WaypointKindAirport, 41.3715, -73.4822, 458},
		{"KSNC", shared.WaypointKindAirport, 41.3840, -72.5059, 416},
		{"KMMK", shared.WaypointKindAirport, 41.5087, -72.8295, 103},
		{"KOXC", shared.WaypointKindAirport, 41.4786, -73.1352, 726},
		{"KLGA", shared.WaypointKindAirport, 40.7772, -73.8726, 21},
		{"KISP", shared.WaypointKindAirport, 40.7952, -73.1002, 99},
		{"Greenwich", shared.WaypointKindCity, 41.0262, -73.6282, 0},
		{"Stamford", shared.WaypointKindCity, 41.0534, -73.5387, 0},
		{"Norwalk", shared.WaypointKindCity, 41.1177, -73.4082, 0},
		{"Bridgeport", shared.WaypointKindCity, 41.1792, -73.1894, 0},
		{"Milford", shared.WaypointKindCity, 41.2307, -73.0640, 0},
		{"New Haven", shared.WaypointKindCity, 41.3083, -72.9279, 0},
		{"Guilford", shared.WaypointKindCity, 41.2890, -72.6818, 0},
		{"Old Saybrook", shared.WaypointKindCity, 41.2918, -72.3762, 0},
		{"Old Lyme", shared.WaypointKindCity, 41.3159, -72.3290, 0},
		{"New London", shared.WaypointKindCity, 41.3557, -72.0995, 0},
		{"Groton", shared.WaypointKindCity, 41.3501, -72.0784, 0},
		{"Port Jefferson", shared.WaypointKindCity, 40.9465, -73.0690, 0},
	}
}

// NewConnecticutShoreGazetteer loads ConnecticutShorePlaces into a mock
func NewConnecticutShoreGazetteer(geo navigation.Geodesy) *MockGazetteer {
	g := NewMockGazetteer(geo)
	for _, p := range ConnecticutShorePlaces() {
		g.AddPlace(p.Name, p.Kind, p.Lat, p.Lon, p.ElevationFt)
	}
	return g
}

// PlannerFixture bundles providers wired to the Connecticut shore fixture
type PlannerFixture struct {
	Geodesy   *geodesy.SphericalGeodesy
	Gazetteer *MockGazetteer
	Weather   *MockWeatherProvider
	Aloft     *MockWindsAloftProvider
	Elevation *MockElevationProvider
	Variation FixedVariation
}

// NewPlannerFixture returns providers with VFR weather at KHPN and KGON, a
// light westerly aloft, low terrain and 14° west variation
func NewPlannerFixture() *PlannerFixture {
	geo := geodesy.NewGeodesy()
	wx := NewMockWeatherProvider()
	wx.SetMETAR("KHPN", "KHPN 091756Z 27008KT 10SM FEW050 18/06 A3012")
	wx.SetMETAR("KGON", "KGON 091756Z 24010KT 10SM SCT040 17/08 A3010")

	return &PlannerFixture{
		Geodesy:   geo,
		Gazetteer: NewConnecticutShoreGazetteer(geo),
		Weather:   wx,
		Aloft:     &MockWindsAloftProvider{Wind: weather.Wind{DirectionDeg: 270, SpeedKt: 15}},
		Elevation: &MockElevationProvider{Samples: []float64{20, 120, 60, 5}},
		Variation: FixedVariation{Degrees: -14},
	}
}

// Providers returns the fixture as navigation.Providers
func (f *PlannerFixture) Providers() navigation.Providers {
	return navigation.Providers{
		Geodesy:   f.Geodesy,
		Gazetteer: f.Gazetteer,
		Variation: f.Variation,
		Weather:   f.Weather,
		Aloft:     f.Aloft,
		Elevation: f.Elevation,
	}
}

// Waypoint returns a fixture place as a waypoint; it panics on unknown names
func Waypoint(name string) shared.Waypoint {
	for _, p := range ConnecticutShorePlaces() {
		if p.Name == name {
			return shared.Waypoint{Name: p.Name, Kind: p.Kind, Position: shared.LatLong{Lat: p.Lat, Lon: p.Lon}}
		}
	}
	panic("unknown fixture place " + name)
}
