package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/vfrplanner-go/internal/adapters/export"
	"github.com/andrescamacho/vfrplanner-go/internal/application/common"
	"github.com/andrescamacho/vfrplanner-go/internal/application/planning"
	"github.com/andrescamacho/vfrplanner-go/internal/application/planning/commands"
	"github.com/andrescamacho/vfrplanner-go/pkg/utils"
)

// planFlags are the aircraft and output options shared by plan and replan
type planFlags struct {
	altitude    int
	speed       float64
	climbDist   float64
	climbSpeed  float64
	night       bool
	pdfPath     string
	showMapLink bool
}

func (f *planFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.altitude, "alt", 0, "Requested cruising altitude in feet (default: computed)")
	cmd.Flags().Float64Var(&f.speed, "speed", 0, "Cruise true airspeed in knots (default: config)")
	cmd.Flags().Float64Var(&f.climbDist, "climb", -1, "Climb distance in nm; 0 skips the top of climb (default: config)")
	cmd.Flags().Float64Var(&f.climbSpeed, "climb-speed", 0, "Climb airspeed in knots (default: config)")
	cmd.Flags().BoolVar(&f.night, "night", false, "Plan a night flight (45 minute reserve)")
	cmd.Flags().StringVar(&f.pdfPath, "pdf", "", "Write the navigation log to this PDF file")
	cmd.Flags().BoolVar(&f.showMapLink, "map", false, "Print a static route map URL")
}

func (f *planFlags) command(origin, destination, sessionID string) *commands.PlanRouteCommand {
	cmd := &commands.PlanRouteCommand{
		Origin:       strings.ToUpper(origin),
		Destination:  strings.ToUpper(destination),
		AltitudeFt:   f.altitude,
		SpeedKt:      f.speed,
		ClimbSpeedKt: f.climbSpeed,
		Night:        f.night,
		SessionID:    sessionID,
	}
	if f.climbDist >= 0 {
		climb := f.climbDist
		cmd.ClimbDistNM = &climb
	}
	return cmd
}

// NewPlanCommand creates the plan command
func NewPlanCommand() *cobra.Command {
	var flags planFlags

	cmd := &cobra.Command{
		Use:   "plan <origin> <destination>",
		Short: "Plan a VFR route between two airports",
		Long: `Plan a VFR route between two airports.

The planner:
- Picks landmarks near the direct course
- Chooses a hemispheric-rule cruising altitude above sampled terrain
- Inserts a top of climb waypoint
- Corrects headings for surface and winds aloft

Examples:
  vfrplanner plan KHPN KGON
  vfrplanner plan KHPN KGON --alt 4500 --speed 105 --climb 8 --climb-speed 70
  vfrplanner plan KHPN KGON --night --pdf khpn-kgon.pdf`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			resp, err := common.Dispatch[*commands.PlanRouteResponse](ctx, a.mediator, flags.command(args[0], args[1], utils.GenerateSessionID()))
			if err != nil {
				return fmt.Errorf("planning failed: %w", err)
			}
			return a.present(resp.Plan, &flags)
		},
	}

	flags.register(cmd)
	return cmd
}

// NewReplanCommand creates the replan command. It plans the route and then
// substitutes one landmark in the same session.
func NewReplanCommand() *cobra.Command {
	var (
		flags planFlags
		leg   int
		place string
	)

	cmd := &cobra.Command{
		Use:   "replan <origin> <destination>",
		Short: "Plan a route and replace one leg's destination landmark",
		Long: `Plan a route, then substitute the landmark a leg flies to.

Legs are numbered from 1 as printed by "plan". The replacement is the place
matching --place that is nearest the leg's starting point.

Examples:
  vfrplanner replan KHPN KGON --leg 2 --place Milford
  vfrplanner replan KHPN KGON --leg 3 --place "old lyme" --pdf plan.pdf`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if leg < 1 {
				return fmt.Errorf("--leg must be 1 or greater")
			}
			if strings.TrimSpace(place) == "" {
				return fmt.Errorf("--place flag is required")
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			sessionID := utils.GenerateSessionID()
			if _, err := a.mediator.Send(ctx, flags.command(args[0], args[1], sessionID)); err != nil {
				return fmt.Errorf("planning failed: %w", err)
			}

			resp, err := common.Dispatch[*commands.ReplanRouteResponse](ctx, a.mediator, &commands.ReplanRouteCommand{
				SessionID: sessionID,
				LegIndex:  leg - 1,
				Place:     place,
			})
			if err != nil {
				return fmt.Errorf("replanning failed: %w", err)
			}
			return a.present(resp.Plan, &flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&leg, "leg", 0, "Leg number to change (required)")
	cmd.Flags().StringVar(&place, "place", "", "Name of the replacement landmark (required)")
	return cmd
}

// present prints the plan and writes the optional PDF
func (a *app) present(plan *planning.Plan, flags *planFlags) error {
	printPlan(os.Stdout, plan)

	var mapURL string
	if flags.showMapLink || flags.pdfPath != "" {
		u, err := export.StaticMapURL(a.cfg.Providers.StaticMap, plan.Route)
		if err != nil {
			return fmt.Errorf("failed to build map url: %w", err)
		}
		mapURL = u
	}
	if flags.showMapLink {
		fmt.Printf("\nMap: %s\n", mapURL)
	}

	if flags.pdfPath == "" {
		return nil
	}
	f, err := os.Create(flags.pdfPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", flags.pdfPath, err)
	}
	defer f.Close()
	if err := export.WritePDF(f, plan, mapURL); err != nil {
		return err
	}
	fmt.Printf("\nNavigation log written to %s\n", flags.pdfPath)
	return nil
}
