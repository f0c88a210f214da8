package navigation

import (
	"github.com/andrescamacho/vfrplanner-go/internal/domain/shared"
)

// Performance holds the aircraft and policy parameters a route is built with
type Performance struct {
	ClimbSpeedKt     float64 `json:"climb_speed_kt"`
	CruiseSpeedKt    float64 `json:"cruise_speed_kt"`
	DescentSpeedKt   float64 `json:"descent_speed_kt"`
	CruiseAltitudeFt float64 `json:"cruise_altitude_ft"`
	ClimbDistanceNM  float64 `json:"climb_distance_nm"`
	FuelBurnGPH      float64 `json:"fuel_burn_gph"`
	TaxiFuelGal      float64 `json:"taxi_fuel_gal"`
}

// DefaultPerformance returns a typical light single's numbers
func DefaultPerformance() Performance {
	return Performance{
		ClimbSpeedKt:     75,
		CruiseSpeedKt:    110,
		DescentSpeedKt:   90,
		CruiseAltitudeFt: 3500,
		ClimbDistanceNM:  7,
		FuelBurnGPH:      10,
		TaxiFuelGal:      1.4,
	}
}

// Validate checks that the parameters can produce a route
func (p Performance) Validate() error {
	if p.ClimbSpeedKt <= 0 {
		return shared.NewValidationError("climb_speed", "must be positive")
	}
	if p.CruiseSpeedKt <= 0 {
		return shared.NewValidationError("cruise_speed", "must be positive")
	}
	if p.CruiseAltitudeFt < 0 {
		return shared.NewValidationError("cruise_altitude", "cannot be negative")
	}
	if p.ClimbDistanceNM < 0 {
		return shared.NewValidationError("climb_distance", "cannot be negative")
	}
	if p.FuelBurnGPH < 0 {
		return shared.NewValidationError("fuel_burn", "cannot be negative")
	}
	if p.TaxiFuelGal < 0 {
		return shared.NewValidationError("taxi_fuel", "cannot be negative")
	}
	return nil
}

// ReserveFuel is the 30 minute day or 45 minute night reserve in gallons
func (p Performance) ReserveFuel(night bool) float64 {
	if night {
		return 0.75 * p.FuelBurnGPH
	}
	return 0.5 * p.FuelBurnGPH
}
