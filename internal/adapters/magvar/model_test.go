package magvar_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/vfrplanner-go/internal/adapters/geodesy"
	"github.com/andrescamacho/vfrplanner-go/internal/adapters/magvar"
	"github.com/andrescamacho/vfrplanner-go/internal/adapters/persistence"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/shared"
	"github.com/andrescamacho/vfrplanner-go/test/helpers"
)

var (
	whitePlains = shared.LatLong{Lat: 41.0670, Lon: -73.7076}
	losAngeles  = shared.LatLong{Lat: 33.9425, Lon: -118.4081}
	jan2026     = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
)

func TestDeclination_KnownStations(t *testing.T) {
	// Act
	east, err := magvar.Declination(whitePlains, jan2026)
	require.NoError(t, err)
	west, err := magvar.Declination(losAngeles, jan2026)
	require.NoError(t, err)

	// Assert: sectional charts show about 13W near KHPN and 11.5E near KLAX
	assert.InDelta(t, -13.0, east, 1.0)
	assert.InDelta(t, 11.5, west, 1.0)
}

func TestModel_PlainGazetteerRowsUseTheMagneticModel(t *testing.T) {
	// Arrange: gazetteer files carry no variation column
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormGazetteer(db, geodesy.NewGeodesy())
	_, err := repo.Import(context.Background(), strings.NewReader("KHPN, 41.067, -73.7076\n"), shared.WaypointKindAirport)
	require.NoError(t, err)
	model := magvar.NewModel(repo, shared.NewMockClock(jan2026), 0)

	// Act
	variation, err := model.VariationAt(context.Background(), whitePlains)

	// Assert
	require.NoError(t, err)
	assert.InDelta(t, -13.0, variation, 1.0)
}

func TestModel_RecordedVariationOverridesTheModel(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormGazetteer(db, geodesy.NewGeodesy())
	_, err := repo.Import(context.Background(), strings.NewReader("KHPN, 41.067, -73.7076, 439, -15.5\n"), shared.WaypointKindAirport)
	require.NoError(t, err)
	model := magvar.NewModel(repo, shared.NewMockClock(jan2026), 0)

	variation, err := model.VariationAt(context.Background(), whitePlains)

	require.NoError(t, err)
	assert.Equal(t, -15.5, variation)
}

type failingOverrides struct{}

func (failingOverrides) RecordedVariation(ctx context.Context, position shared.LatLong) (float64, bool, error) {
	return 0, false, errors.New("database closed")
}

func TestModel_OverrideLookupErrorsPropagate(t *testing.T) {
	model := magvar.NewModel(failingOverrides{}, nil, 0)

	_, err := model.VariationAt(context.Background(), whitePlains)

	assert.ErrorContains(t, err, "database closed")
}

func TestModel_WithoutOverrides(t *testing.T) {
	model := magvar.NewModel(nil, shared.NewMockClock(jan2026), 0)

	variation, err := model.VariationAt(context.Background(), losAngeles)

	require.NoError(t, err)
	assert.Greater(t, variation, 10.0)
}
