package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/vfrplanner-go/internal/adapters/geodesy"
	"github.com/andrescamacho/vfrplanner-go/internal/adapters/persistence"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/shared"
	"github.com/andrescamacho/vfrplanner-go/internal/infrastructure/config"
	"github.com/andrescamacho/vfrplanner-go/internal/infrastructure/database"
)

// NewGazetteerCommand creates the gazetteer command with subcommands
func NewGazetteerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gazetteer",
		Short: "Manage the airport and city gazetteer",
		Long: `Manage the gazetteer of airports and cities used as route landmarks.

Data files hold one place per line: NAME, lat, lon[, elevation_ft[, magvar]]

Examples:
  vfrplanner gazetteer import --airports data/airports.txt --cities data/cities.txt
  vfrplanner gazetteer search "old say"`,
	}

	cmd.AddCommand(newGazetteerImportCommand())
	cmd.AddCommand(newGazetteerSearchCommand())

	return cmd
}

func newGazetteerImportCommand() *cobra.Command {
	var airportsPath, citiesPath string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import airports and cities from data files",
		RunE: func(cmd *cobra.Command, args []string) error {
			if airportsPath == "" && citiesPath == "" {
				return fmt.Errorf("at least one of --airports or --cities is required")
			}

			repo, closeDB, err := openGazetteer()
			if err != nil {
				return err
			}
			defer closeDB()

			ctx := context.Background()
			for _, src := range []struct {
				path string
				kind shared.WaypointKind
			}{
				{airportsPath, shared.WaypointKindAirport},
				{citiesPath, shared.WaypointKindCity},
			} {
				if src.path == "" {
					continue
				}
				f, err := os.Open(src.path)
				if err != nil {
					return fmt.Errorf("failed to open %s: %w", src.path, err)
				}
				result, err := repo.Import(ctx, f, src.kind)
				f.Close()
				if err != nil {
					return fmt.Errorf("failed to import %s: %w", src.path, err)
				}
				fmt.Printf("✓ %s: imported %d %s places, skipped %d malformed rows\n",
					src.path, result.Imported, src.kind, result.Skipped)
			}

			total, err := repo.Count(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("  Gazetteer now holds %d places\n", total)
			return nil
		},
	}

	cmd.Flags().StringVar(&airportsPath, "airports", "", "Airport data file")
	cmd.Flags().StringVar(&citiesPath, "cities", "", "City data file")
	return cmd
}

func newGazetteerSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <name>",
		Short: "Find places whose name contains a fragment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeDB, err := openGazetteer()
			if err != nil {
				return err
			}
			defer closeDB()

			places, err := repo.SearchByName(context.Background(), args[0])
			if err != nil {
				return err
			}
			if len(places) == 0 {
				fmt.Printf("No places match %q\n", args[0])
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tKIND\tLAT\tLON")
			fmt.Fprintln(w, "----\t----\t---\t---")
			for _, p := range places {
				fmt.Fprintf(w, "%s\t%s\t%.4f\t%.4f\n", p.Name, p.Kind, p.Position.Lat, p.Position.Lon)
			}
			return w.Flush()
		},
	}
}

// openGazetteer opens the gazetteer without wiring the planner
func openGazetteer() (*persistence.GormGazetteer, func(), error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	db, err := database.Open(context.Background(), &cfg.Database, nil)
	if err != nil {
		return nil, nil, err
	}
	repo := persistence.NewGormGazetteer(db, geodesy.NewGeodesy())
	return repo, func() { database.Close(db) }, nil
}
