package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vfrplanner",
		Short: "VFR route planner - landmark routes with wind-corrected headings",
		Long: `vfrplanner builds VFR cross-country routes between two airports.

Routes follow visual landmarks (towns and airports) near the direct course,
include a top of climb waypoint, wind corrected headings, leg times and fuel.
The cruising altitude follows the hemispheric rule above sampled terrain.

Examples:
  vfrplanner gazetteer import --airports data/airports.txt --cities data/cities.txt
  vfrplanner plan KHPN KGON
  vfrplanner plan KHPN KGON --alt 4500 --speed 105 --pdf plan.pdf
  vfrplanner replan KHPN KGON --leg 2 --place Milford
  vfrplanner serve`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	// Add command groups
	rootCmd.AddCommand(NewPlanCommand())
	rootCmd.AddCommand(NewReplanCommand())
	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewGazetteerCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
