package export

import (
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/jung-kurt/gofpdf"

	"github.com/andrescamacho/vfrplanner-go/internal/application/planning"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/shared"
)

const metersToFeet = 3.28084

// Page layout in millimetres, letter portrait
const (
	marginMM      = 12.0
	rowHeightMM   = 6.0
	sketchHeight  = 40.0
	sketchWidthMM = 190.0
)

var legColumns = []struct {
	title string
	width float64
}{
	{"#", 8}, {"From", 32}, {"To", 32}, {"TC", 14}, {"MH", 14}, {"CH", 14},
	{"Alt", 16}, {"Wind", 20}, {"Dist", 14}, {"GS", 12}, {"ETE", 14},
}

// WritePDF renders the plan as a printable navigation log: header, surface
// weather, a table of legs with totals, advisories, a terrain sketch and a
// link to the route map. mapURL may be empty.
func WritePDF(w io.Writer, plan *planning.Plan, mapURL string) error {
	if plan == nil || plan.Route == nil {
		return shared.NewValidationError("plan", "cannot be empty")
	}

	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(marginMM, marginMM, marginMM)
	pdf.SetTitle(fmt.Sprintf("VFR plan %s to %s", plan.Origin.Name, plan.Destination.Name), false)
	pdf.SetCreator("vfrplanner", false)
	pdf.AddPage()

	drawHeader(pdf, plan)
	drawEnvironment(pdf, plan)
	drawLegs(pdf, plan)
	drawAdvisories(pdf, plan)
	drawTerrain(pdf, plan)

	if mapURL != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "U", 10)
		pdf.SetTextColor(0, 0, 0xcc)
		pdf.CellFormat(0, rowHeightMM, "Route map", "", 1, "L", false, 0, mapURL)
		pdf.SetTextColor(0, 0, 0)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to render plan: %w", err)
	}
	return pdf.Output(w)
}

func drawHeader(pdf *gofpdf.Fpdf, plan *planning.Plan) {
	route := plan.Route
	perf := route.Performance()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("%s to %s", plan.Origin.Name, plan.Destination.Name), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	flight := "Day"
	if route.Night() {
		flight = "Night"
	}
	lines := []string{
		fmt.Sprintf("Plan %s, created %s", plan.ID, plan.CreatedAt.UTC().Format("2006-01-02 15:04 MST")),
		fmt.Sprintf("Direct %.1f nm, true course %03.0f", plan.Direct.DistanceNM, plan.Direct.BearingDeg),
		fmt.Sprintf("Cruise %d ft at %.0f kt TAS, climb %.0f kt over %.1f nm, %s",
			plan.Altitude.AltitudeFt, perf.CruiseSpeedKt, perf.ClimbSpeedKt, perf.ClimbDistanceNM, flight),
	}
	for _, l := range lines {
		pdf.CellFormat(0, 5, l, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)
}

func drawEnvironment(pdf *gofpdf.Fpdf, plan *planning.Plan) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, rowHeightMM, "Surface weather", "", 1, "L", false, 0, "")
	pdf.SetFont("Courier", "", 9)
	for _, env := range []planning.Environment{plan.OriginEnv, plan.DestinationEnv} {
		raw := env.RawMETAR
		if raw == "" {
			raw = "no report"
		}
		pdf.MultiCell(0, 5, fmt.Sprintf("%-5s %-7s %s", env.Station, env.SkyCondition, raw), "", "L", false)
	}
	pdf.Ln(2)
}

func drawLegs(pdf *gofpdf.Fpdf, plan *planning.Plan) {
	route := plan.Route

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(0xdd, 0xdd, 0xdd)
	for _, c := range legColumns {
		pdf.CellFormat(c.width, rowHeightMM, c.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for i, seg := range route.Segments() {
		cells := []string{
			fmt.Sprintf("%d", i+1),
			seg.From().Name,
			seg.To().Name,
			fmt.Sprintf("%03.0f", seg.TrueCourse()),
			fmt.Sprintf("%03.0f", seg.MagneticHeading()),
			fmt.Sprintf("%03.0f", seg.CorrectedHeading()),
			fmt.Sprintf("%.0f", seg.AltitudeFt()),
			seg.Wind().String(),
			fmt.Sprintf("%.1f", seg.LengthNM()),
			fmt.Sprintf("%.0f", seg.GroundSpeed()),
			formatMinutes(seg.LegTime()),
		}
		for j, c := range legColumns {
			align := "R"
			if j == 1 || j == 2 {
				align = "L"
			}
			pdf.CellFormat(c.width, rowHeightMM, cells[j], "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(0, rowHeightMM, fmt.Sprintf("Total %.1f nm, %s, fuel required %.1f gal (incl. taxi and reserve)",
		route.TotalDistance(), formatMinutes(route.TotalTime()), route.FuelRequired()), "", 1, "R", false, 0, "")
	pdf.Ln(2)
}

func drawAdvisories(pdf *gofpdf.Fpdf, plan *planning.Plan) {
	advisories := plan.Route.Advisories()
	if len(advisories) == 0 {
		return
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, rowHeightMM, "Advisories", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, a := range advisories {
		pdf.MultiCell(0, 5, "- "+a, "", "L", false)
	}
	pdf.Ln(2)
}

// drawTerrain sketches the sampled terrain profile under the cruise altitude
func drawTerrain(pdf *gofpdf.Fpdf, plan *planning.Plan) {
	profile := plan.Route.ElevationProfile()
	if len(profile) < 2 {
		return
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, rowHeightMM, "Terrain", "", 1, "L", false, 0, "")

	x0, y0 := pdf.GetX(), pdf.GetY()
	cruise := float64(plan.Altitude.AltitudeFt)
	top := math.Max(cruise, slices.Max(profile)*metersToFeet) * 1.2
	if top <= 0 {
		top = 1000
	}
	toY := func(ft float64) float64 {
		return y0 + sketchHeight - sketchHeight*math.Max(ft, 0)/top
	}
	step := sketchWidthMM / float64(len(profile)-1)

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	pdf.Rect(x0, y0, sketchWidthMM, sketchHeight, "D")

	points := []gofpdf.PointType{{X: x0, Y: y0 + sketchHeight}}
	for i, m := range profile {
		points = append(points, gofpdf.PointType{X: x0 + float64(i)*step, Y: toY(m * metersToFeet)})
	}
	points = append(points, gofpdf.PointType{X: x0 + sketchWidthMM, Y: y0 + sketchHeight})
	pdf.SetFillColor(0x9c, 0x7a, 0x4b)
	pdf.Polygon(points, "F")

	pdf.SetDrawColor(0xff, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(x0, toY(cruise), x0+sketchWidthMM, toY(cruise))

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetXY(x0+1, toY(cruise)-4)
	pdf.CellFormat(30, 4, fmt.Sprintf("%d ft", plan.Altitude.AltitudeFt), "", 0, "L", false, 0, "")
	pdf.SetXY(x0, y0+sketchHeight+1)
	pdf.SetDrawColor(0, 0, 0)
}

func formatMinutes(hours float64) string {
	minutes := int(math.Round(hours * 60))
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}
