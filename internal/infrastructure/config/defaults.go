package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Type == "sqlite" && cfg.Database.Path == "" {
		cfg.Database.Path = "vfrplanner.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "vfrplanner"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "vfrplanner"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 25
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 5
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Planner defaults
	if cfg.Planner.MaxDistanceNM == 0 {
		cfg.Planner.MaxDistanceNM = 400
	}
	if cfg.Planner.TerminalDistanceNM == 0 {
		cfg.Planner.TerminalDistanceNM = 28
	}
	if cfg.Planner.IdealLegNM == 0 {
		cfg.Planner.IdealLegNM = 20
	}
	if cfg.Planner.ToleranceStep == 0 {
		cfg.Planner.ToleranceStep = 0.1
	}
	if cfg.Planner.MaxTolerance == 0 {
		cfg.Planner.MaxTolerance = 5.0
	}
	if cfg.Planner.MaxLegs == 0 {
		cfg.Planner.MaxLegs = 100
	}
	if cfg.Planner.ElevationSamples == 0 {
		cfg.Planner.ElevationSamples = 32
	}
	if cfg.Planner.Aircraft.ClimbSpeedKt == 0 {
		cfg.Planner.Aircraft.ClimbSpeedKt = 75
	}
	if cfg.Planner.Aircraft.CruiseSpeedKt == 0 {
		cfg.Planner.Aircraft.CruiseSpeedKt = 110
	}
	if cfg.Planner.Aircraft.DescentSpeedKt == 0 {
		cfg.Planner.Aircraft.DescentSpeedKt = 90
	}
	if cfg.Planner.Aircraft.CruiseAltitudeFt == 0 {
		cfg.Planner.Aircraft.CruiseAltitudeFt = 3500
	}
	if cfg.Planner.Aircraft.ClimbDistanceNM == 0 {
		cfg.Planner.Aircraft.ClimbDistanceNM = 7
	}
	if cfg.Planner.Aircraft.FuelBurnGPH == 0 {
		cfg.Planner.Aircraft.FuelBurnGPH = 10
	}
	if cfg.Planner.Aircraft.TaxiFuelGal == 0 {
		cfg.Planner.Aircraft.TaxiFuelGal = 1.4
	}

	// Provider defaults
	weather := &cfg.Providers.Weather
	if weather.BaseURL == "" {
		weather.BaseURL = "https://aviationweather.gov/api/data"
	}
	if weather.Timeout == 0 {
		weather.Timeout = 10 * time.Second
	}
	if weather.RateLimit.Requests == 0 {
		weather.RateLimit.Requests = 2
	}
	if weather.RateLimit.Burst == 0 {
		weather.RateLimit.Burst = 4
	}
	if weather.Retry.MaxAttempts == 0 {
		weather.Retry.MaxAttempts = 2
	}
	if weather.Retry.BackoffBase == 0 {
		weather.Retry.BackoffBase = 500 * time.Millisecond
	}
	if weather.CircuitBreaker.MaxFailures == 0 {
		weather.CircuitBreaker.MaxFailures = 5
	}
	if weather.CircuitBreaker.Timeout == 0 {
		weather.CircuitBreaker.Timeout = 60 * time.Second
	}
	if weather.AloftCacheTTL == 0 {
		weather.AloftCacheTTL = 30 * time.Minute
	}
	if weather.AloftForecast == "" {
		weather.AloftForecast = "06"
	}

	elevation := &cfg.Providers.Elevation
	if elevation.BaseURL == "" {
		elevation.BaseURL = "https://api.open-elevation.com"
	}
	if elevation.Timeout == 0 {
		elevation.Timeout = 15 * time.Second
	}
	if elevation.RateLimit.Requests == 0 {
		elevation.RateLimit.Requests = 1
	}
	if elevation.RateLimit.Burst == 0 {
		elevation.RateLimit.Burst = 2
	}
	if elevation.Retry.MaxAttempts == 0 {
		elevation.Retry.MaxAttempts = 2
	}
	if elevation.Retry.BackoffBase == 0 {
		elevation.Retry.BackoffBase = time.Second
	}

	if cfg.Providers.StaticMap.BaseURL == "" {
		cfg.Providers.StaticMap.BaseURL = "https://maps.googleapis.com/maps/api/staticmap"
	}
	if cfg.Providers.StaticMap.Size == "" {
		cfg.Providers.StaticMap.Size = "640x400"
	}

	// Session defaults
	if cfg.Session.TTL == 0 {
		cfg.Session.TTL = 300 * time.Second
	}
	if cfg.Session.Size == 0 {
		cfg.Session.Size = 1024
	}

	// Server defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 30 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 60 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Server.CookieName == "" {
		cfg.Server.CookieName = "vfr_session"
	}

	// Metrics defaults
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
	if cfg.Logging.Rotation.MaxSize == 0 {
		cfg.Logging.Rotation.MaxSize = 100 // MB
	}
	if cfg.Logging.Rotation.MaxBackups == 0 {
		cfg.Logging.Rotation.MaxBackups = 3
	}
	if cfg.Logging.Rotation.MaxAge == 0 {
		cfg.Logging.Rotation.MaxAge = 28 // days
	}
}
