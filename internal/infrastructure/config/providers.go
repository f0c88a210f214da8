package config

import "time"

// ProvidersConfig holds settings for the external data services
type ProvidersConfig struct {
	Weather   WeatherConfig   `mapstructure:"weather"`
	Elevation ElevationConfig `mapstructure:"elevation"`
	StaticMap StaticMapConfig `mapstructure:"static_map"`
}

// WeatherConfig holds the METAR and winds-aloft client configuration
type WeatherConfig struct {
	// Base URL of the aviation weather data API
	BaseURL string `mapstructure:"base_url" validate:"required,url"`

	// Request timeout
	Timeout time.Duration `mapstructure:"timeout" validate:"required"`

	RateLimit      RateLimitConfig      `mapstructure:"rate_limit"`
	Retry          RetryConfig          `mapstructure:"retry"`
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`

	// How long a downloaded winds-aloft bulletin is reused
	AloftCacheTTL time.Duration `mapstructure:"aloft_cache_ttl" validate:"required"`

	// Forecast period of the winds-aloft bulletin: 06, 12 or 24
	AloftForecast string `mapstructure:"aloft_forecast" validate:"oneof=06 12 24"`
}

// ElevationConfig holds the terrain elevation client configuration
type ElevationConfig struct {
	BaseURL   string          `mapstructure:"base_url" validate:"required,url"`
	Timeout   time.Duration   `mapstructure:"timeout" validate:"required"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Retry     RetryConfig     `mapstructure:"retry"`
}

// StaticMapConfig holds the static route map settings
type StaticMapConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	APIKey  string `mapstructure:"api_key"`
	Size    string `mapstructure:"size" validate:"required,mapsize"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	// Maximum requests per second
	Requests int `mapstructure:"requests" validate:"min=1"`

	// Burst size for token bucket
	Burst int `mapstructure:"burst" validate:"min=1"`
}

// RetryConfig holds retry configuration for failed requests
type RetryConfig struct {
	// Maximum number of retry attempts
	MaxAttempts int `mapstructure:"max_attempts" validate:"min=0"`

	// Base duration for exponential backoff
	BackoffBase time.Duration `mapstructure:"backoff_base"`
}

// CircuitBreakerConfig holds circuit breaker thresholds
type CircuitBreakerConfig struct {
	// Consecutive failures before the circuit opens
	MaxFailures int `mapstructure:"max_failures" validate:"min=1"`

	// How long the circuit stays open before a trial request
	Timeout time.Duration `mapstructure:"timeout" validate:"required"`
}
