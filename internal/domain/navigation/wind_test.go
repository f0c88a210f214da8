package navigation_test

import (
	"errors"
	"testing"

	"github.com/andrescamacho/vfrplanner-go/internal/domain/navigation"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/shared"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/weather"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindTriangle(t *testing.T) {
	tests := []struct {
		name    string
		course  float64
		wind    weather.Wind
		wantWCA float64
		wantGS  float64
	}{
		{"calm", 90, weather.Calm(), 0, 110},
		{"direct headwind", 90, weather.Wind{DirectionDeg: 90, SpeedKt: 20}, 0, 90},
		{"direct tailwind", 90, weather.Wind{DirectionDeg: 270, SpeedKt: 20}, 0, 130},
		{"crosswind from the left", 90, weather.Wind{DirectionDeg: 0, SpeedKt: 20}, -10.47, 108.17},
		{"crosswind from the right", 90, weather.Wind{DirectionDeg: 180, SpeedKt: 20}, 10.47, 108.17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wca, gs, err := navigation.WindTriangle(tt.course, 110, tt.wind)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantWCA, wca, 0.01)
			assert.InDelta(t, tt.wantGS, gs, 0.01)
		})
	}
}

func TestWindTriangle_Degenerate(t *testing.T) {
	_, _, err := navigation.WindTriangle(90, 50, weather.Wind{DirectionDeg: 90, SpeedKt: 50})
	var degenerate *shared.DegenerateWindError
	assert.True(t, errors.As(err, &degenerate), "headwind equal to TAS")

	_, _, err = navigation.WindTriangle(90, 50, weather.Wind{DirectionDeg: 0, SpeedKt: 80})
	assert.True(t, errors.As(err, &degenerate), "crosswind stronger than TAS")

	_, _, err = navigation.WindTriangle(90, 0, weather.Calm())
	var validation *shared.ValidationError
	assert.True(t, errors.As(err, &validation))
}
