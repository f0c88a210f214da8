package openelevation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/andrescamacho/vfrplanner-go/internal/domain/navigation"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/shared"
)

// maxBatch bounds the number of points sent in one lookup request
const maxBatch = 100

// Fetcher performs GET requests against the elevation service
type Fetcher interface {
	Get(ctx context.Context, path string, query url.Values) ([]byte, error)
}

// Provider implements navigation.ElevationProvider against an
// Open-Elevation compatible lookup API
type Provider struct {
	fetcher Fetcher
}

var _ navigation.ElevationProvider = (*Provider)(nil)

// NewProvider creates an elevation provider
func NewProvider(fetcher Fetcher) *Provider {
	return &Provider{fetcher: fetcher}
}

type lookupResponse struct {
	Results []struct {
		Latitude  float64  `json:"latitude"`
		Longitude float64  `json:"longitude"`
		Elevation *float64 `json:"elevation"`
	} `json:"results"`
}

// Profile returns terrain elevation in meters for each point of path, in
// order
func (p *Provider) Profile(ctx context.Context, path []shared.LatLong) ([]float64, error) {
	if len(path) == 0 {
		return nil, nil
	}

	profile := make([]float64, 0, len(path))
	for start := 0; start < len(path); start += maxBatch {
		end := min(start+maxBatch, len(path))
		batch, err := p.lookup(ctx, path[start:end])
		if err != nil {
			return nil, err
		}
		profile = append(profile, batch...)
	}
	return profile, nil
}

func (p *Provider) lookup(ctx context.Context, points []shared.LatLong) ([]float64, error) {
	locations := make([]string, len(points))
	for i, pt := range points {
		locations[i] = formatCoord(pt.Lat) + "," + formatCoord(pt.Lon)
	}

	body, err := p.fetcher.Get(ctx, "api/v1/lookup", url.Values{
		"locations": {strings.Join(locations, "|")},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch elevation profile: %w", err)
	}

	var resp lookupResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode elevation response: %w", err)
	}
	if len(resp.Results) != len(points) {
		return nil, fmt.Errorf("elevation service returned %d results for %d points", len(resp.Results), len(points))
	}

	elevations := make([]float64, len(points))
	for i, r := range resp.Results {
		if r.Elevation == nil {
			return nil, fmt.Errorf("no elevation for %s", points[i])
		}
		elevations[i] = *r.Elevation
	}
	return elevations, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
