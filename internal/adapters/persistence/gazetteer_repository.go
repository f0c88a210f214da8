package persistence

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/vfrplanner-go/internal/domain/navigation"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/shared"
)

// nmPerDegreeLat is the length of one degree of latitude
const nmPerDegreeLat = 60.0

// airportsFirst orders candidate pools airports first, then cities
const airportsFirst = "CASE kind WHEN 'airport' THEN 0 ELSE 1 END"

// variationOverrideNM bounds how far a recorded variation applies
const variationOverrideNM = 30.0

// PlaceRecord is one gazetteer row as imported
type PlaceRecord struct {
	Name        string
	Kind        shared.WaypointKind
	Lat         float64
	Lon         float64
	ElevationFt *float64
	MagVar      *float64
}

// GormGazetteer implements navigation.Gazetteer using GORM. It also serves
// per-place magnetic variation overrides to the magvar model.
type GormGazetteer struct {
	db      *gorm.DB
	geodesy navigation.Geodesy
}

// NewGormGazetteer creates a new GORM gazetteer
func NewGormGazetteer(db *gorm.DB, geodesy navigation.Geodesy) *GormGazetteer {
	return &GormGazetteer{db: db, geodesy: geodesy}
}

var _ navigation.Gazetteer = (*GormGazetteer)(nil)

// FindByCode retrieves an airport by identifier
func (r *GormGazetteer) FindByCode(ctx context.Context, code string) (*shared.Waypoint, error) {
	var model PlaceModel
	result := r.db.WithContext(ctx).
		Where("name = ? AND kind = ?", strings.ToUpper(strings.TrimSpace(code)), string(shared.WaypointKindAirport)).
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewUnknownAirportError(code)
		}
		return nil, fmt.Errorf("failed to find airport: %w", result.Error)
	}

	return r.modelToWaypoint(&model)
}

// WithinRadius retrieves places strictly within radiusNM of center, airports
// first and then by name. A bounding box narrows the query; geodesy decides
// membership.
func (r *GormGazetteer) WithinRadius(ctx context.Context, center shared.LatLong, radiusNM float64) ([]shared.Waypoint, error) {
	if radiusNM <= 0 {
		return nil, nil
	}

	dLat := radiusNM / nmPerDegreeLat
	cosLat := math.Cos(center.Lat * math.Pi / 180)
	dLon := 180.0
	if cosLat > 0.01 {
		dLon = math.Min(radiusNM/(nmPerDegreeLat*cosLat), 180)
	}

	var models []PlaceModel
	result := r.db.WithContext(ctx).
		Where("lat BETWEEN ? AND ? AND lon BETWEEN ? AND ?",
			center.Lat-dLat, center.Lat+dLat, center.Lon-dLon, center.Lon+dLon).
		Order(airportsFirst).
		Order("name").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list places in radius: %w", result.Error)
	}

	places := make([]shared.Waypoint, 0, len(models))
	for _, model := range models {
		waypoint, err := r.modelToWaypoint(&model)
		if err != nil {
			return nil, fmt.Errorf("failed to convert place %s: %w", model.Name, err)
		}
		c, err := r.geodesy.Course(center, waypoint.Position)
		if err != nil || c.DistanceNM >= radiusNM {
			continue
		}
		places = append(places, waypoint.WithPriority(0, c.DistanceNM))
	}

	return places, nil
}

// SearchByName retrieves places whose normalized name contains the
// normalized fragment
func (r *GormGazetteer) SearchByName(ctx context.Context, fragment string) ([]shared.Waypoint, error) {
	key := shared.NormalizeName(fragment)
	if key == "" {
		return nil, nil
	}

	var models []PlaceModel
	result := r.db.WithContext(ctx).
		Where("search_key LIKE ? ESCAPE '\\'", "%"+escapeLike(key)+"%").
		Order("name").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to search places: %w", result.Error)
	}

	places := make([]shared.Waypoint, 0, len(models))
	for _, model := range models {
		waypoint, err := r.modelToWaypoint(&model)
		if err != nil {
			return nil, fmt.Errorf("failed to convert place %s: %w", model.Name, err)
		}
		places = append(places, *waypoint)
	}

	return places, nil
}

// FieldElevation returns an airport's elevation in feet
func (r *GormGazetteer) FieldElevation(ctx context.Context, code string) (float64, error) {
	var model PlaceModel
	result := r.db.WithContext(ctx).
		Where("name = ? AND kind = ?", code, string(shared.WaypointKindAirport)).
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return 0, shared.NewUnknownAirportError(code)
		}
		return 0, fmt.Errorf("failed to find airport: %w", result.Error)
	}
	if model.ElevationFt == nil {
		return 0, fmt.Errorf("no field elevation recorded for %s", code)
	}

	return *model.ElevationFt, nil
}

// RecordedVariation returns the variation recorded at the nearest place
// within variationOverrideNM of position. ok is false when none is recorded.
func (r *GormGazetteer) RecordedVariation(ctx context.Context, position shared.LatLong) (variation float64, ok bool, err error) {
	dLat := variationOverrideNM / nmPerDegreeLat
	dLon := dLat
	if cosLat := math.Cos(position.Lat * math.Pi / 180); cosLat > 0.01 {
		dLon = math.Min(dLat/cosLat, 180)
	}

	var models []PlaceModel
	result := r.db.WithContext(ctx).
		Where("mag_var IS NOT NULL AND lat BETWEEN ? AND ? AND lon BETWEEN ? AND ?",
			position.Lat-dLat, position.Lat+dLat, position.Lon-dLon, position.Lon+dLon).
		Find(&models)
	if result.Error != nil {
		return 0, false, fmt.Errorf("failed to look up magnetic variation: %w", result.Error)
	}

	best := variationOverrideNM
	for _, model := range models {
		c, err := r.geodesy.Course(position, shared.LatLong{Lat: model.Lat, Lon: model.Lon})
		if err != nil {
			continue
		}
		if c.DistanceNM <= best {
			best = c.DistanceNM
			variation, ok = *model.MagVar, true
		}
	}

	return variation, ok, nil
}

// Save persists a place, replacing any row with the same name
func (r *GormGazetteer) Save(ctx context.Context, place PlaceRecord) error {
	return r.SaveAll(ctx, []PlaceRecord{place})
}

// SaveAll upserts places in batches inside one transaction
func (r *GormGazetteer) SaveAll(ctx context.Context, places []PlaceRecord) error {
	if len(places) == 0 {
		return nil
	}

	// Later rows win when a name repeats
	models := make([]PlaceModel, 0, len(places))
	index := make(map[string]int, len(places))
	for _, p := range places {
		model, err := r.recordToModel(p)
		if err != nil {
			return err
		}
		if i, ok := index[model.Name]; ok {
			models[i] = *model
			continue
		}
		index[model.Name] = len(models)
		models = append(models, *model)
	}

	// Upsert: create or update
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).CreateInBatches(models, 500).Error
	})
	if err != nil {
		return fmt.Errorf("failed to save places: %w", err)
	}

	return nil
}

// Count returns the number of stored places
func (r *GormGazetteer) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&PlaceModel{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count places: %w", err)
	}
	return n, nil
}

// modelToWaypoint converts database model to domain entity
func (r *GormGazetteer) modelToWaypoint(model *PlaceModel) (*shared.Waypoint, error) {
	position, err := shared.NewLatLong(model.Lat, model.Lon)
	if err != nil {
		return nil, err
	}
	return shared.NewWaypoint(model.Name, shared.WaypointKind(model.Kind), position)
}

// recordToModel converts an imported record to database model
func (r *GormGazetteer) recordToModel(p PlaceRecord) (*PlaceModel, error) {
	waypoint, err := shared.NewWaypoint(strings.TrimSpace(p.Name), p.Kind, shared.LatLong{Lat: p.Lat, Lon: p.Lon})
	if err != nil {
		return nil, err
	}
	if _, err := shared.NewLatLong(p.Lat, p.Lon); err != nil {
		return nil, fmt.Errorf("place %s: %w", waypoint.Name, err)
	}

	return &PlaceModel{
		Name:        waypoint.Name,
		SearchKey:   shared.NormalizeName(waypoint.Name),
		Kind:        string(waypoint.Kind),
		Lat:         p.Lat,
		Lon:         p.Lon,
		ElevationFt: p.ElevationFt,
		MagVar:      p.MagVar,
		SyncedAt:    time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// escapeLike escapes LIKE wildcards in user input
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
