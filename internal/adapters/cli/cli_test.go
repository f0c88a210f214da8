package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/vfrplanner-go/internal/application/planning"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/navigation"
	"github.com/andrescamacho/vfrplanner-go/internal/infrastructure/config"
	"github.com/andrescamacho/vfrplanner-go/test/helpers"
)

func TestMaskPassword(t *testing.T) {
	assert.Equal(t, "postgresql://pilot:%2A%2A%2A%2A@db:5432/gazetteer",
		maskPassword("postgresql://pilot:secret@db:5432/gazetteer"))
	assert.Equal(t, "postgresql://db:5432/gazetteer", maskPassword("postgresql://db:5432/gazetteer"))
	assert.Equal(t, "vfrplanner.db", maskPassword("vfrplanner.db"))
}

func TestPlanFlags_Command(t *testing.T) {
	flags := planFlags{altitude: 4500, speed: 105, climbDist: -1}

	cmd := flags.command("khpn", "kgon", "s1")

	assert.Equal(t, "KHPN", cmd.Origin)
	assert.Equal(t, "KGON", cmd.Destination)
	assert.Equal(t, 4500, cmd.AltitudeFt)
	assert.Nil(t, cmd.ClimbDistNM, "negative --climb means use the default")

	flags.climbDist = 0
	cmd = flags.command("KHPN", "KGON", "s1")
	require.NotNil(t, cmd.ClimbDistNM)
	assert.Zero(t, *cmd.ClimbDistNM)
}

func TestPlannerSettings_FromConfig(t *testing.T) {
	cfg := &config.Config{}
	config.SetDefaults(cfg)

	settings := plannerSettings(cfg.Planner)
	policy := corridorPolicy(cfg.Planner)

	assert.Equal(t, planning.DefaultSettings(), settings)
	assert.Equal(t, navigation.DefaultCorridorPolicy(), policy)
}

func TestPrintPlan(t *testing.T) {
	// Arrange
	fx := helpers.NewPlannerFixture()
	builder := navigation.NewRouteBuilder(fx.Providers(), navigation.DefaultCorridorPolicy())
	origin, destination := helpers.Waypoint("KHPN"), helpers.Waypoint("KGON")
	course, err := fx.Geodesy.Course(origin.Position, destination.Position)
	require.NoError(t, err)
	route, err := builder.BuildRoute(context.Background(), navigation.RouteRequest{
		Origin:      origin,
		Destination: destination,
		Course:      course,
		Performance: navigation.DefaultPerformance(),
	})
	require.NoError(t, err)
	plan := &planning.Plan{
		ID:          "KHPN-KGON-0a1b2c3d",
		Origin:      origin,
		Destination: destination,
		Direct:      course,
		Altitude:    navigation.AltitudeDecision{AltitudeFt: 3500},
		Route:       route.WithAdvisory("Destination is in IFR conditions"),
	}
	var out bytes.Buffer

	// Act
	printPlan(&out, plan)

	// Assert
	text := out.String()
	assert.Contains(t, text, "KHPN -> KGON  (KHPN-KGON-0a1b2c3d)")
	assert.Contains(t, text, "Altitude:  3500 ft")
	assert.Contains(t, text, "FROM")
	assert.Contains(t, text, "- Destination is in IFR conditions")
	assert.Equal(t, len(route.Segments()), countRows(text))
}

// countRows counts the numbered table rows after the header separator
func countRows(text string) int {
	lines := strings.Split(text, "\n")
	rows := 0
	inTable := false
	for _, l := range lines {
		switch {
		case strings.HasPrefix(l, "-  "):
			inTable = true
		case inTable && l == "":
			return rows
		case inTable:
			rows++
		}
	}
	return rows
}
