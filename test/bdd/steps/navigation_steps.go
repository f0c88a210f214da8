package steps

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"

	"github.com/andrescamacho/vfrplanner-go/internal/domain/navigation"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/shared"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/weather"
)

const tolerance = 0.01

// navigationContext holds state for pure navigation computations
type navigationContext struct {
	terrainFt   float64
	altitudeFt  int
	airspeedKt  float64
	wind        weather.Wind
	wcaDeg      float64
	groundSpeed float64
	err         error
}

func (nc *navigationContext) reset() {
	*nc = navigationContext{wind: weather.Calm()}
}

// ============================================================================
// Cruising altitude
// ============================================================================

func (nc *navigationContext) theHighestTerrainAlongTheCourseIs(ft float64) error {
	nc.terrainFt = ft
	return nil
}

func (nc *navigationContext) theCruisingAltitudeIsChosenForMagneticCourse(course float64) error {
	nc.altitudeFt = navigation.CruisingAltitude(nc.terrainFt, course)
	return nil
}

func (nc *navigationContext) theCruisingAltitudeShouldBe(expected int) error {
	if nc.altitudeFt != expected {
		return fmt.Errorf("expected cruising altitude %d ft, got %d ft", expected, nc.altitudeFt)
	}
	return nil
}

func (nc *navigationContext) theCruisingAltitudesAboveTerrainShouldBe(terrain float64, table *messages.PickleTable) error {
	for i, row := range table.Rows {
		if i == 0 {
			continue
		}
		course, err := strconv.ParseFloat(row.Cells[0].Value, 64)
		if err != nil {
			return fmt.Errorf("row %d: invalid course %q", i, row.Cells[0].Value)
		}
		expected, err := strconv.Atoi(row.Cells[1].Value)
		if err != nil {
			return fmt.Errorf("row %d: invalid altitude %q", i, row.Cells[1].Value)
		}
		if got := navigation.CruisingAltitude(terrain, course); got != expected {
			return fmt.Errorf("course %.1f: expected %d ft, got %d ft", course, expected, got)
		}
	}
	return nil
}

// ============================================================================
// Wind triangle
// ============================================================================

func (nc *navigationContext) aTrueAirspeedOf(kt float64) error {
	nc.airspeedKt = kt
	return nil
}

func (nc *navigationContext) aWindFromAt(direction, speed float64) error {
	nc.wind = weather.Wind{DirectionDeg: direction, SpeedKt: speed}
	return nil
}

func (nc *navigationContext) theWindTriangleIsSolvedForTrueCourse(course float64) error {
	nc.wcaDeg, nc.groundSpeed, nc.err = navigation.WindTriangle(course, nc.airspeedKt, nc.wind)
	return nil
}

func (nc *navigationContext) theWindCorrectionAngleShouldBe(expected float64) error {
	if nc.err != nil {
		return fmt.Errorf("wind triangle failed: %w", nc.err)
	}
	if math.Abs(nc.wcaDeg-expected) > tolerance {
		return fmt.Errorf("expected wind correction angle %.2f, got %.2f", expected, nc.wcaDeg)
	}
	return nil
}

func (nc *navigationContext) theGroundSpeedShouldBe(expected float64) error {
	if nc.err != nil {
		return fmt.Errorf("wind triangle failed: %w", nc.err)
	}
	if math.Abs(nc.groundSpeed-expected) > tolerance {
		return fmt.Errorf("expected ground speed %.2f kt, got %.2f kt", expected, nc.groundSpeed)
	}
	return nil
}

func (nc *navigationContext) theWindTriangleShouldBeDegenerate() error {
	var degenerate *shared.DegenerateWindError
	if !errors.As(nc.err, &degenerate) {
		return fmt.Errorf("expected a degenerate wind error, got %v", nc.err)
	}
	return nil
}

// InitializeNavigationScenario registers altitude and wind triangle steps
func InitializeNavigationScenario(sc *godog.ScenarioContext) {
	nc := &navigationContext{}

	sc.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		nc.reset()
		return ctx, nil
	})

	// Given steps
	sc.Step(`^the highest terrain along the course is (-?\d+(?:\.\d+)?) ft$`, nc.theHighestTerrainAlongTheCourseIs)
	sc.Step(`^a true airspeed of (\d+(?:\.\d+)?) kt$`, nc.aTrueAirspeedOf)
	sc.Step(`^a wind from (\d+(?:\.\d+)?) at (\d+(?:\.\d+)?) kt$`, nc.aWindFromAt)

	// When steps
	sc.Step(`^the cruising altitude is chosen for magnetic course (\d+(?:\.\d+)?)$`, nc.theCruisingAltitudeIsChosenForMagneticCourse)
	sc.Step(`^the wind triangle is solved for true course (\d+(?:\.\d+)?)$`, nc.theWindTriangleIsSolvedForTrueCourse)

	// Then steps
	sc.Step(`^the cruising altitude should be (\d+) ft$`, nc.theCruisingAltitudeShouldBe)
	sc.Step(`^the cruising altitudes above (\d+) ft terrain should be:$`, nc.theCruisingAltitudesAboveTerrainShouldBe)
	sc.Step(`^the wind correction angle should be (-?\d+(?:\.\d+)?) degrees$`, nc.theWindCorrectionAngleShouldBe)
	sc.Step(`^the ground speed should be (\d+(?:\.\d+)?) kt$`, nc.theGroundSpeedShouldBe)
	sc.Step(`^the wind triangle should be degenerate$`, nc.theWindTriangleShouldBeDegenerate)
}
