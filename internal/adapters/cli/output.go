package cli

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/andrescamacho/vfrplanner-go/internal/application/planning"
)

// printPlan renders the navigation log as a table
func printPlan(out io.Writer, plan *planning.Plan) {
	route := plan.Route

	fmt.Fprintf(out, "%s -> %s  (%s)\n", plan.Origin.Name, plan.Destination.Name, plan.ID)
	fmt.Fprintf(out, "  Direct:    %.1f nm, true course %03.0f\n", plan.Direct.DistanceNM, plan.Direct.BearingDeg)
	fmt.Fprintf(out, "  Altitude:  %d ft\n", plan.Altitude.AltitudeFt)
	for _, env := range []planning.Environment{plan.OriginEnv, plan.DestinationEnv} {
		metar := env.RawMETAR
		if metar == "" {
			metar = "no report"
		}
		fmt.Fprintf(out, "  %-9s  %s  %s\n", env.Station+":", env.SkyCondition, metar)
	}
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tFROM\tTO\tTC\tMH\tCH\tALT\tWIND\tDIST\tGS\tETE")
	fmt.Fprintln(w, "-\t----\t--\t--\t--\t--\t---\t----\t----\t--\t---")
	for i, seg := range route.Segments() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%03.0f\t%03.0f\t%03.0f\t%.0f\t%s\t%.1f\t%.0f\t%s\n",
			i+1,
			seg.From().Name,
			seg.To().Name,
			seg.TrueCourse(),
			seg.MagneticHeading(),
			seg.CorrectedHeading(),
			seg.AltitudeFt(),
			seg.Wind(),
			seg.LengthNM(),
			seg.GroundSpeed(),
			hoursMinutes(seg.LegTime()),
		)
	}
	w.Flush()

	fmt.Fprintf(out, "\nTotal: %.1f nm, %s, fuel required %.1f gal\n",
		route.TotalDistance(), hoursMinutes(route.TotalTime()), route.FuelRequired())

	if advisories := route.Advisories(); len(advisories) > 0 {
		fmt.Fprintln(out, "\nAdvisories:")
		for _, a := range advisories {
			fmt.Fprintf(out, "  - %s\n", a)
		}
	}
}

func hoursMinutes(hours float64) string {
	minutes := int(math.Round(hours * 60))
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}
