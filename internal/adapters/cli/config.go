package cli

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/vfrplanner-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration settings",
		Long: `Inspect vfrplanner configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (VFR_* prefix, plus DATABASE_URL)
2. Config file (config.yaml)
3. Default values

Examples:
  vfrplanner config show
  vfrplanner config show --json`,
	}

	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Printf("Warning: Failed to load config: %v\n", err)
				fmt.Println("Using default configuration.")
				cfg = config.Default()
			}

			if asJSON {
				shown := *cfg
				shown.Database.URL = maskPassword(shown.Database.URL)
				if shown.Database.Password != "" {
					shown.Database.Password = "****"
				}
				if shown.Providers.StaticMap.APIKey != "" {
					shown.Providers.StaticMap.APIKey = "****"
				}
				fmt.Println(prettyPrint(shown))
				return nil
			}

			fmt.Println("vfrplanner Configuration")
			fmt.Println("========================")

			fmt.Println("\nDatabase:")
			fmt.Printf("  Type:             %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.URL != "":
				fmt.Printf("  URL:              %s\n", maskPassword(cfg.Database.URL))
			case cfg.Database.Type == "sqlite":
				fmt.Printf("  Path:             %s\n", cfg.Database.Path)
			default:
				fmt.Printf("  Host:             %s\n", cfg.Database.Host)
				fmt.Printf("  Port:             %d\n", cfg.Database.Port)
				fmt.Printf("  Database:         %s\n", cfg.Database.Name)
				fmt.Printf("  User:             %s\n", cfg.Database.User)
			}

			p := cfg.Planner
			fmt.Println("\nPlanner:")
			fmt.Printf("  Max Distance:     %.0f nm\n", p.MaxDistanceNM)
			fmt.Printf("  Terminal Radius:  %.0f nm\n", p.TerminalDistanceNM)
			fmt.Printf("  Ideal Leg:        %.0f nm\n", p.IdealLegNM)
			fmt.Printf("  Tolerance:        %.1f step, %.1f max\n", p.ToleranceStep, p.MaxTolerance)
			fmt.Printf("  Max Legs:         %d\n", p.MaxLegs)
			fmt.Printf("  Terrain Samples:  %d\n", p.ElevationSamples)

			ac := p.Aircraft
			fmt.Println("\nAircraft:")
			fmt.Printf("  Cruise:           %.0f kt at %d ft\n", ac.CruiseSpeedKt, ac.CruiseAltitudeFt)
			fmt.Printf("  Climb:            %.0f kt over %.1f nm\n", ac.ClimbSpeedKt, ac.ClimbDistanceNM)
			fmt.Printf("  Fuel Burn:        %.1f gph (taxi %.1f gal)\n", ac.FuelBurnGPH, ac.TaxiFuelGal)

			wx := cfg.Providers.Weather
			fmt.Println("\nWeather Service:")
			fmt.Printf("  Base URL:         %s\n", wx.BaseURL)
			fmt.Printf("  Timeout:          %s\n", wx.Timeout)
			fmt.Printf("  Rate Limit:       %d req/s (burst: %d)\n", wx.RateLimit.Requests, wx.RateLimit.Burst)
			fmt.Printf("  Max Retries:      %d\n", wx.Retry.MaxAttempts)
			fmt.Printf("  Winds Aloft:      %sh forecast, cached %s\n", wx.AloftForecast, wx.AloftCacheTTL)

			elev := cfg.Providers.Elevation
			fmt.Println("\nElevation Service:")
			fmt.Printf("  Base URL:         %s\n", elev.BaseURL)
			fmt.Printf("  Rate Limit:       %d req/s (burst: %d)\n", elev.RateLimit.Requests, elev.RateLimit.Burst)

			fmt.Println("\nServer:")
			fmt.Printf("  Address:          %s:%d\n", cfg.Server.Host, cfg.Server.Port)
			fmt.Printf("  Session TTL:      %s (max %d)\n", cfg.Session.TTL, cfg.Session.Size)
			fmt.Printf("  Metrics:          %t (%s)\n", cfg.Metrics.Enabled, cfg.Metrics.Path)

			fmt.Println("\nLogging:")
			fmt.Printf("  Level:            %s\n", cfg.Logging.Level)
			fmt.Printf("  Format:           %s\n", cfg.Logging.Format)
			fmt.Printf("  Output:           %s\n", cfg.Logging.Output)

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	return cmd
}

// maskPassword masks passwords in connection strings for display
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "****")
	}
	return u.String()
}

// prettyPrint formats JSON for display
func prettyPrint(v interface{}) string {
	bytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(bytes)
}
