package navigation

import (
	"math"

	"github.com/andrescamacho/vfrplanner-go/internal/domain/shared"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/weather"
	"github.com/andrescamacho/vfrplanner-go/pkg/utils"
)

// WindTriangle solves the E6B wind problem for a course and true airspeed.
// It returns the wind correction angle in degrees (positive = right) and the
// ground speed in knots.
func WindTriangle(courseDeg, trueAirspeedKt float64, wind weather.Wind) (wcaDeg, groundSpeedKt float64, err error) {
	if trueAirspeedKt <= 0 || math.IsNaN(trueAirspeedKt) {
		return 0, 0, shared.NewValidationError("true_airspeed", "must be positive")
	}
	if wind.IsCalm() {
		return 0, trueAirspeedKt, nil
	}

	tas := trueAirspeedKt
	ws := wind.SpeedKt

	ratio := ws / tas * math.Sin(utils.DegreesToRadians(wind.DirectionDeg-courseDeg))
	if math.Abs(ratio) > 1 {
		return 0, 0, shared.NewDegenerateWindError(ws, tas, math.NaN())
	}
	wcaDeg = utils.RadiansToDegrees(math.Asin(ratio))

	gsSquared := tas*tas + ws*ws - 2*tas*ws*math.Cos(utils.DegreesToRadians(courseDeg-wind.DirectionDeg+wcaDeg))
	groundSpeedKt = math.Sqrt(math.Max(gsSquared, 0))
	if math.IsNaN(groundSpeedKt) || groundSpeedKt <= 0 {
		return 0, 0, shared.NewDegenerateWindError(ws, tas, groundSpeedKt)
	}
	return wcaDeg, groundSpeedKt, nil
}
