package persistence

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/andrescamacho/vfrplanner-go/internal/domain/shared"
)

// ImportResult summarizes a gazetteer import
type ImportResult struct {
	Imported int
	Skipped  int
}

// ParsePlaces reads "NAME, lat, lon[, elevation_ft[, magvar]]" lines. Rows
// with fewer than three fields or unparseable coordinates are skipped, like
// blank lines and "#" comments.
func ParsePlaces(r io.Reader, kind shared.WaypointKind) ([]PlaceRecord, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'
	reader.ReuseRecord = true

	var (
		places  []PlaceRecord
		skipped int
	)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				skipped++
				continue
			}
			return nil, skipped, fmt.Errorf("failed to read places: %w", err)
		}

		place, ok := parsePlaceRow(row, kind)
		if !ok {
			skipped++
			continue
		}
		places = append(places, place)
	}

	return places, skipped, nil
}

func parsePlaceRow(row []string, kind shared.WaypointKind) (PlaceRecord, bool) {
	if len(row) < 3 {
		return PlaceRecord{}, false
	}
	name := strings.TrimSpace(row[0])
	if name == "" {
		return PlaceRecord{}, false
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
	if err != nil {
		return PlaceRecord{}, false
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
	if err != nil {
		return PlaceRecord{}, false
	}
	if _, err := shared.NewLatLong(lat, lon); err != nil {
		return PlaceRecord{}, false
	}

	place := PlaceRecord{Name: name, Kind: kind, Lat: lat, Lon: lon}
	if len(row) > 3 {
		if v, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64); err == nil {
			place.ElevationFt = &v
		}
	}
	if len(row) > 4 {
		if v, err := strconv.ParseFloat(strings.TrimSpace(row[4]), 64); err == nil {
			place.MagVar = &v
		}
	}
	return place, true
}

// Import parses places from r and upserts them
func (r *GormGazetteer) Import(ctx context.Context, in io.Reader, kind shared.WaypointKind) (*ImportResult, error) {
	places, skipped, err := ParsePlaces(in, kind)
	if err != nil {
		return nil, err
	}
	if err := r.SaveAll(ctx, places); err != nil {
		return nil, err
	}
	return &ImportResult{Imported: len(places), Skipped: skipped}, nil
}
