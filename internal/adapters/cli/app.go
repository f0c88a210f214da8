package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"gorm.io/gorm"

	"github.com/andrescamacho/vfrplanner-go/internal/adapters/api"
	"github.com/andrescamacho/vfrplanner-go/internal/adapters/aviationweather"
	"github.com/andrescamacho/vfrplanner-go/internal/adapters/geodesy"
	"github.com/andrescamacho/vfrplanner-go/internal/adapters/magvar"
	"github.com/andrescamacho/vfrplanner-go/internal/adapters/metrics"
	"github.com/andrescamacho/vfrplanner-go/internal/adapters/openelevation"
	"github.com/andrescamacho/vfrplanner-go/internal/adapters/persistence"
	"github.com/andrescamacho/vfrplanner-go/internal/adapters/session"
	"github.com/andrescamacho/vfrplanner-go/internal/application/common"
	"github.com/andrescamacho/vfrplanner-go/internal/application/planning"
	"github.com/andrescamacho/vfrplanner-go/internal/application/setup"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/navigation"
	"github.com/andrescamacho/vfrplanner-go/internal/infrastructure/config"
	"github.com/andrescamacho/vfrplanner-go/internal/infrastructure/database"
	"github.com/andrescamacho/vfrplanner-go/internal/infrastructure/logging"
)

// app holds the wired planner for one CLI invocation
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	logCloser io.Closer
	db        *gorm.DB
	mediator  common.Mediator
}

// newApp loads configuration and wires the planner:
// config -> logging -> database -> gazetteer -> upstream clients ->
// providers -> handlers -> mediator
func newApp() (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, logCloser, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := database.Open(context.Background(), &cfg.Database, logger)
	if err != nil {
		logCloser.Close()
		return nil, err
	}

	geo := geodesy.NewGeodesy()
	gazetteer := persistence.NewGormGazetteer(db, geo)

	var collector *metrics.CommandMetricsCollector
	if cfg.Metrics.Enabled {
		collector, err = metrics.Setup()
		if err != nil {
			database.Close(db)
			logCloser.Close()
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
	}

	wx := cfg.Providers.Weather
	weatherClient := api.NewClient(api.ClientConfig{
		Name:              "aviationweather",
		BaseURL:           wx.BaseURL,
		Timeout:           wx.Timeout,
		RequestsPerSecond: float64(wx.RateLimit.Requests),
		Burst:             wx.RateLimit.Burst,
		MaxRetries:        wx.Retry.MaxAttempts,
		BackoffBase:       wx.Retry.BackoffBase,
		MaxFailures:       wx.CircuitBreaker.MaxFailures,
		OpenTimeout:       wx.CircuitBreaker.Timeout,
	})
	weatherProvider := aviationweather.NewProvider(weatherClient, gazetteer, geo, wx.AloftForecast, wx.AloftCacheTTL)

	elev := cfg.Providers.Elevation
	elevationClient := api.NewClient(api.ClientConfig{
		Name:              "openelevation",
		BaseURL:           elev.BaseURL,
		Timeout:           elev.Timeout,
		RequestsPerSecond: float64(elev.RateLimit.Requests),
		Burst:             elev.RateLimit.Burst,
		MaxRetries:        elev.Retry.MaxAttempts,
		BackoffBase:       elev.Retry.BackoffBase,
	})

	providers := navigation.Providers{
		Geodesy:   geo,
		Gazetteer: gazetteer,
		Variation: magvar.NewModel(gazetteer, nil, cfg.Planner.DefaultVariationDeg),
		Weather:   weatherProvider,
		Aloft:     weatherProvider,
		Elevation: openelevation.NewProvider(elevationClient),
	}

	store := session.NewMemoryStore(cfg.Session.Size, cfg.Session.TTL)
	registry := setup.NewHandlerRegistry(
		providers,
		corridorPolicy(cfg.Planner),
		cfg.Planner.ElevationSamples,
		store,
		plannerSettings(cfg.Planner),
		nil,
	)
	mediator, err := registry.NewPlanningMediator(logger, collector)
	if err != nil {
		database.Close(db)
		logCloser.Close()
		return nil, fmt.Errorf("failed to register handlers: %w", err)
	}

	return &app{
		cfg:       cfg,
		logger:    logger,
		logCloser: logCloser,
		db:        db,
		mediator:  mediator,
	}, nil
}

// Close releases the database and log file
func (a *app) Close() {
	if err := database.Close(a.db); err != nil {
		a.logger.Warn("failed to close database", slog.String("error", err.Error()))
	}
	a.logCloser.Close()
}

func corridorPolicy(cfg config.PlannerConfig) navigation.CorridorPolicy {
	return navigation.CorridorPolicy{
		TerminalDistanceNM: cfg.TerminalDistanceNM,
		IdealLegNM:         cfg.IdealLegNM,
		ToleranceStep:      cfg.ToleranceStep,
		MaxTolerance:       cfg.MaxTolerance,
		MaxLegs:            cfg.MaxLegs,
	}
}

func plannerSettings(cfg config.PlannerConfig) planning.Settings {
	a := cfg.Aircraft
	return planning.Settings{
		MaxDistanceNM: cfg.MaxDistanceNM,
		Performance: navigation.Performance{
			ClimbSpeedKt:     a.ClimbSpeedKt,
			CruiseSpeedKt:    a.CruiseSpeedKt,
			DescentSpeedKt:   a.DescentSpeedKt,
			CruiseAltitudeFt: float64(a.CruiseAltitudeFt),
			ClimbDistanceNM:  a.ClimbDistanceNM,
			FuelBurnGPH:      a.FuelBurnGPH,
			TaxiFuelGal:      a.TaxiFuelGal,
		},
	}
}
