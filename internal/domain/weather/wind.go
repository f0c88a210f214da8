package weather

import (
	"fmt"
	"math"
)

// Wind is a direction (degrees true the wind blows from) and a speed in knots.
type Wind struct {
	DirectionDeg float64 `json:"direction_deg"`
	SpeedKt      float64 `json:"speed_kt"`
}

// Calm is zero wind.
func Calm() Wind {
	return Wind{}
}

// NewWind validates a wind vector.
func NewWind(directionDeg, speedKt float64) (Wind, error) {
	if math.IsNaN(directionDeg) || directionDeg < 0 || directionDeg > 360 {
		return Wind{}, fmt.Errorf("wind direction out of range: %v", directionDeg)
	}
	if math.IsNaN(speedKt) || speedKt < 0 {
		return Wind{}, fmt.Errorf("wind speed out of range: %v", speedKt)
	}
	return Wind{DirectionDeg: directionDeg, SpeedKt: speedKt}, nil
}

func (w Wind) IsCalm() bool {
	return w.SpeedKt == 0
}

func (w Wind) String() string {
	if w.IsCalm() {
		return "calm"
	}
	return fmt.Sprintf("%03.0f@%.0fkt", w.DirectionDeg, w.SpeedKt)
}
