package config

// PlannerConfig holds route planning policy
type PlannerConfig struct {
	// Longest origin to destination distance accepted for planning
	MaxDistanceNM float64 `mapstructure:"max_distance_nm" validate:"gt=0"`

	// Landmark search stops once the destination is this close
	TerminalDistanceNM float64 `mapstructure:"terminal_distance_nm" validate:"gt=0"`

	// Preferred leg length for landmark ranking
	IdealLegNM float64 `mapstructure:"ideal_leg_nm" validate:"gt=0"`

	// Tolerance relaxation per search step, and its upper bound
	ToleranceStep float64 `mapstructure:"tolerance_step" validate:"gt=0"`
	MaxTolerance  float64 `mapstructure:"max_tolerance" validate:"gtefield=ToleranceStep"`

	// Upper bound on intermediate landmarks
	MaxLegs int `mapstructure:"max_legs" validate:"min=1"`

	// Terrain samples taken along the direct course
	ElevationSamples int `mapstructure:"elevation_samples" validate:"min=2"`

	// Variation (east positive) used only where the magnetic model is undefined
	DefaultVariationDeg float64 `mapstructure:"default_variation_deg" validate:"min=-180,max=180"`

	Aircraft AircraftConfig `mapstructure:"aircraft"`
}

// AircraftConfig holds default aircraft performance
type AircraftConfig struct {
	ClimbSpeedKt     float64 `mapstructure:"climb_speed_kt" validate:"gt=0"`
	CruiseSpeedKt    float64 `mapstructure:"cruise_speed_kt" validate:"gt=0"`
	DescentSpeedKt   float64 `mapstructure:"descent_speed_kt" validate:"gt=0"`
	CruiseAltitudeFt int     `mapstructure:"cruise_altitude_ft" validate:"min=0"`
	ClimbDistanceNM  float64 `mapstructure:"climb_distance_nm" validate:"min=0"`
	FuelBurnGPH      float64 `mapstructure:"fuel_burn_gph" validate:"gt=0"`
	TaxiFuelGal      float64 `mapstructure:"taxi_fuel_gal" validate:"min=0"`
}
