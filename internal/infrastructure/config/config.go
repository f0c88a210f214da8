package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the planner's full configuration
type Config struct {
	Database  DatabaseConfig  `mapstructure:"database"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Planner   PlannerConfig   `mapstructure:"planner"`
	Providers ProvidersConfig `mapstructure:"providers"`
	Session   SessionConfig   `mapstructure:"session"`
	Server    ServerConfig    `mapstructure:"server"`
}

// searchPaths are tried in order when no config file is named
var searchPaths = []string{".", "./configs", "/etc/vfrplanner"}

// envKeys may be set from VFR_* variables without a config file; viper
// only unmarshals keys it already knows
var envKeys = []string{
	"database.type", "database.url", "database.path",
	"logging.level", "logging.format", "logging.output", "logging.file_path",
	"metrics.enabled",
	"planner.max_distance_nm", "planner.default_variation_deg",
	"providers.weather.base_url", "providers.elevation.base_url",
	"providers.static_map.api_key",
	"session.ttl",
	"server.host", "server.port",
}

// LoadConfig resolves configuration from VFR_* environment variables (and a
// .env file), then the YAML file at configPath or on the search path, then
// defaults. A missing file is not an error.
func LoadConfig(configPath string) (*Config, error) {
	_ = godotenv.Load()

	v, err := newViper(configPath)
	if err != nil {
		return nil, err
	}

	// DATABASE_URL is honoured without the prefix and implies postgres
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		v.Set("database.url", dbURL)
		if !v.IsSet("database.type") {
			v.Set("database.type", "postgres")
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	SetDefaults(cfg)

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newViper(configPath string) (*viper.Viper, error) {
	v := viper.New()
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		for _, p := range searchPaths {
			v.AddConfigPath(p)
		}
	}

	v.SetEnvPrefix("VFR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envKeys {
		_ = v.BindEnv(key)
	}

	var notFound viper.ConfigFileNotFoundError
	if err := v.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return v, nil
}

// Default returns a configuration made only of defaults
func Default() *Config {
	cfg := &Config{}
	SetDefaults(cfg)
	return cfg
}
