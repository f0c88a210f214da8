package aviationweather

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/andrescamacho/vfrplanner-go/internal/adapters/api"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/navigation"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/shared"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/weather"
)

const (
	observationTTL  = 5 * time.Minute
	observationSize = 256
	bulletinSize    = 4
)

// Fetcher performs GET requests against the weather data service
type Fetcher interface {
	Get(ctx context.Context, path string, query url.Values) ([]byte, error)
}

// aloftSite is an FD station resolved to a position
type aloftSite struct {
	station  weather.AloftStation
	position shared.LatLong
}

// Provider serves METAR observations and FD winds aloft. It implements
// navigation.WeatherProvider and navigation.WindsAloftProvider.
type Provider struct {
	fetcher   Fetcher
	gazetteer navigation.Gazetteer
	geodesy   navigation.Geodesy
	forecast  string

	observations *expirable.LRU[string, *weather.Observation]
	bulletins    *expirable.LRU[string, []aloftSite]

	// serializes bulletin downloads so concurrent plans share one fetch
	bulletinMu sync.Mutex
}

var (
	_ navigation.WeatherProvider    = (*Provider)(nil)
	_ navigation.WindsAloftProvider = (*Provider)(nil)
)

// NewProvider creates a weather provider. FD station identifiers are placed
// through gazetteer; bulletins are reused for bulletinTTL.
func NewProvider(
	fetcher Fetcher,
	gazetteer navigation.Gazetteer,
	geodesy navigation.Geodesy,
	forecast string,
	bulletinTTL time.Duration,
) *Provider {
	if forecast == "" {
		forecast = "06"
	}
	return &Provider{
		fetcher:      fetcher,
		gazetteer:    gazetteer,
		geodesy:      geodesy,
		forecast:     forecast,
		observations: expirable.NewLRU[string, *weather.Observation](observationSize, nil, observationTTL),
		bulletins:    expirable.NewLRU[string, []aloftSite](bulletinSize, nil, bulletinTTL),
	}
}

// Observation returns the latest METAR for station
func (p *Provider) Observation(ctx context.Context, station string) (*weather.Observation, error) {
	station = strings.ToUpper(strings.TrimSpace(station))
	if station == "" {
		return nil, fmt.Errorf("station is required")
	}
	if obs, ok := p.observations.Get(station); ok {
		return obs, nil
	}

	body, err := p.fetcher.Get(ctx, "metar", url.Values{
		"ids":    {station},
		"format": {"raw"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch METAR for %s: %w", station, err)
	}

	raw := firstLine(string(body))
	if raw == "" {
		return nil, fmt.Errorf("no METAR reported for %s", station)
	}
	obs, err := weather.ParseMETAR(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse METAR for %s: %w", station, err)
	}

	p.observations.Add(station, obs)
	return obs, nil
}

// WindsAloft returns the forecast wind at the FD station nearest position
// for the band serving altitudeFt
func (p *Provider) WindsAloft(ctx context.Context, position shared.LatLong, altitudeFt float64) (weather.Wind, error) {
	if weather.BandIndex(altitudeFt) < 0 {
		return weather.Wind{}, fmt.Errorf("no winds-aloft band for %.0f ft", altitudeFt)
	}

	sites, err := p.sites(ctx)
	if err != nil {
		return weather.Wind{}, err
	}

	nearest, ok := p.nearest(sites, position)
	if !ok {
		return weather.Wind{}, errors.New("no winds-aloft stations could be located")
	}
	return nearest.station.WindAt(altitudeFt)
}

func (p *Provider) nearest(sites []aloftSite, position shared.LatLong) (aloftSite, bool) {
	best := math.Inf(1)
	var found aloftSite
	for _, site := range sites {
		c, err := p.geodesy.Course(position, site.position)
		if err != nil {
			continue
		}
		if c.DistanceNM < best {
			best = c.DistanceNM
			found = site
		}
	}
	return found, !math.IsInf(best, 1)
}

// sites returns the located stations of the current bulletin, downloading
// it when the cached copy has expired
func (p *Provider) sites(ctx context.Context) ([]aloftSite, error) {
	if sites, ok := p.bulletins.Get(p.forecast); ok {
		return sites, nil
	}

	p.bulletinMu.Lock()
	defer p.bulletinMu.Unlock()
	if sites, ok := p.bulletins.Get(p.forecast); ok {
		return sites, nil
	}

	body, err := p.fetcher.Get(ctx, "windtemp", url.Values{
		"region": {"all"},
		"level":  {"low"},
		"fcst":   {p.forecast},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch winds aloft: %w", err)
	}

	stations := weather.ParseFDBulletin(string(body))
	if len(stations) == 0 {
		return nil, errors.New("winds-aloft bulletin has no complete station lines")
	}

	sites := make([]aloftSite, 0, len(stations))
	for _, station := range stations {
		position, ok := p.locate(ctx, station.Station)
		if !ok {
			continue
		}
		sites = append(sites, aloftSite{station: station, position: position})
	}
	if len(sites) == 0 {
		return nil, errors.New("no winds-aloft stations could be located")
	}

	p.bulletins.Add(p.forecast, sites)
	return sites, nil
}

// locate places an FD identifier; three-letter US identifiers are stored
// with a K prefix in the gazetteer
func (p *Provider) locate(ctx context.Context, id string) (shared.LatLong, bool) {
	for _, code := range []string{"K" + id, id} {
		if len(code) > 4 {
			continue
		}
		waypoint, err := p.gazetteer.FindByCode(ctx, code)
		if err == nil {
			return waypoint.Position, true
		}
	}
	return shared.LatLong{}, false
}

func firstLine(body string) string {
	for _, line := range strings.Split(body, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
