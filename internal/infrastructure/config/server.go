package config

import "time"

// ServerConfig holds the HTTP planning API configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port" validate:"min=1,max=65535"`

	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"required"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"required"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required"`

	// Name of the cookie carrying the planning session ID
	CookieName string `mapstructure:"cookie_name" validate:"required"`
}

// SessionConfig holds the planning session store configuration
type SessionConfig struct {
	// How long a plan stays available for replanning and export
	TTL time.Duration `mapstructure:"ttl" validate:"required"`

	// Maximum number of cached plans
	Size int `mapstructure:"size" validate:"min=1"`
}
