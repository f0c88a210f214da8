package weather_test

import (
	"testing"

	"github.com/andrescamacho/vfrplanner-go/internal/domain/weather"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMETAR_Wind(t *testing.T) {
	obs, err := weather.ParseMETAR("KHPN 091756Z 27012G20KT 10SM FEW050 BKN250 18/06 A3012 RMK AO2 SLP199")
	require.NoError(t, err)

	assert.Equal(t, "KHPN", obs.Station)
	require.NotNil(t, obs.WindDir)
	assert.Equal(t, 270, *obs.WindDir)
	assert.Equal(t, 12, obs.WindSpeed)
	require.NotNil(t, obs.WindGust)
	assert.Equal(t, 20, *obs.WindGust)
	require.NotNil(t, obs.Temperature)
	assert.Equal(t, 18, *obs.Temperature)
	assert.InDelta(t, 30.12, obs.Altimeter, 1e-9)
	assert.Equal(t, weather.Wind{DirectionDeg: 270, SpeedKt: 12}, obs.Wind())
}

func TestParseMETAR_VariableWindReportsDirectionZero(t *testing.T) {
	obs, err := weather.ParseMETAR("METAR KGON 091756Z VRB03KT 10SM CLR M02/M08 A2990")
	require.NoError(t, err)

	assert.Nil(t, obs.WindDir)
	assert.Equal(t, weather.Wind{DirectionDeg: 0, SpeedKt: 3}, obs.Wind())
	require.NotNil(t, obs.Temperature)
	assert.Equal(t, -2, *obs.Temperature)
	require.NotNil(t, obs.Dewpoint)
	assert.Equal(t, -8, *obs.Dewpoint)
}

func TestParseMETAR_Errors(t *testing.T) {
	_, err := weather.ParseMETAR("")
	assert.Error(t, err)

	_, err = weather.ParseMETAR("KHPN 091756Z 10SM CLR")
	assert.Error(t, err)
}

func TestObservation_SkyCondition(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want weather.SkyCondition
	}{
		{"clear", "KHPN 091756Z 27012KT 10SM CLR 18/06 A3012", weather.SkyConditionVFR},
		{"low ceiling", "KHPN 091756Z 27012KT 5SM OVC008 18/06 A3012", weather.SkyConditionSVFR},
		{"fractional visibility", "KHPN 091756Z 27012KT 1 1/2SM BR BKN020 18/16 A3012", weather.SkyConditionSVFR},
		{"fog", "KHPN 091756Z 00000KT 1/4SM FG VV002 12/12 A3012", weather.SkyConditionIFR},
		{"no visibility group", "KHPN 091756Z 27012KT CLR 18/06 A3012", weather.SkyConditionUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs, err := weather.ParseMETAR(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, obs.SkyCondition())
		})
	}
}

func TestObservation_CeilingUnlimitedWithoutLayer(t *testing.T) {
	obs, err := weather.ParseMETAR("KHPN 091756Z 27012KT 10SM FEW050 SCT100 18/06 A3012")
	require.NoError(t, err)

	ceil, err := obs.Ceiling()
	require.NoError(t, err)
	assert.Equal(t, weather.UnlimitedCeilingFt, ceil)
	assert.True(t, obs.IsVMC())
}
