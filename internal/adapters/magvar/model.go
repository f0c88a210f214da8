package magvar

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/westphae/geomag/pkg/egm96"
	"github.com/westphae/geomag/pkg/wmm"

	"github.com/andrescamacho/vfrplanner-go/internal/domain/navigation"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/shared"
)

// Overrides supplies variations recorded against gazetteer places
type Overrides interface {
	RecordedVariation(ctx context.Context, position shared.LatLong) (float64, bool, error)
}

// wmmMu serializes access to the package-level coefficient and field cache
// inside the wmm package
var wmmMu sync.Mutex

// Declination evaluates the World Magnetic Model at sea level and returns
// the variation in degrees, east positive. Dates past the bundled model's
// validity window are extrapolated along its secular variation.
func Declination(position shared.LatLong, at time.Time) (float64, error) {
	wmmMu.Lock()
	// the error only reports the validity window; the field is still computed
	field, _ := wmm.CalculateWMMMagneticField(egm96.NewLocationGeodetic(position.Lat, position.Lon, 0), at)
	d := field.D()
	wmmMu.Unlock()

	if math.IsNaN(d) || math.IsInf(d, 0) {
		return 0, fmt.Errorf("no declination at %.4f,%.4f", position.Lat, position.Lon)
	}
	return d, nil
}

// Model implements navigation.MagneticVariation: a variation recorded at a
// nearby gazetteer place wins, otherwise the World Magnetic Model is used.
// fallback covers positions where the model is undefined, such as the poles.
type Model struct {
	overrides Overrides
	clock     shared.Clock
	fallback  float64
}

var _ navigation.MagneticVariation = (*Model)(nil)

// NewModel creates a variation model. overrides may be nil.
func NewModel(overrides Overrides, clock shared.Clock, fallback float64) *Model {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &Model{overrides: overrides, clock: clock, fallback: fallback}
}

// VariationAt returns the local variation at position
func (m *Model) VariationAt(ctx context.Context, position shared.LatLong) (float64, error) {
	if m.overrides != nil {
		v, ok, err := m.overrides.RecordedVariation(ctx, position)
		if err != nil {
			return 0, err
		}
		if ok {
			return v, nil
		}
	}

	d, err := Declination(position, m.clock.Now())
	if err != nil {
		return m.fallback, nil
	}
	return d, nil
}
