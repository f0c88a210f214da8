package steps

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/vfrplanner-go/internal/adapters/session"
	"github.com/andrescamacho/vfrplanner-go/internal/application/common"
	"github.com/andrescamacho/vfrplanner-go/internal/application/planning"
	"github.com/andrescamacho/vfrplanner-go/internal/application/planning/commands"
	"github.com/andrescamacho/vfrplanner-go/internal/application/setup"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/navigation"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/shared"
	"github.com/andrescamacho/vfrplanner-go/test/helpers"
)

const sessionID = "bdd-session"

// substituteCandidates are shore towns tried in order when a scenario needs
// a landmark that is not already on the route
var substituteCandidates = []string{"Milford", "Guilford", "Norwalk", "Stamford", "Bridgeport"}

// planningContext drives the planner through the mediator
type planningContext struct {
	fx       *helpers.PlannerFixture
	store    *session.MemoryStore
	mediator common.Mediator

	plan       *planning.Plan
	previous   *planning.Plan
	substitute string
	err        error
}

func (pc *planningContext) reset() {
	pc.fx = nil
	pc.store = nil
	pc.mediator = nil
	pc.plan = nil
	pc.previous = nil
	pc.substitute = ""
	pc.err = nil
}

// ensureMediator wires the handlers on first use so Given steps can
// adjust the fixture first
func (pc *planningContext) ensureMediator() error {
	if pc.mediator != nil {
		return nil
	}
	pc.store = session.NewMemoryStore(8, time.Minute)
	registry := setup.NewHandlerRegistry(
		pc.fx.Providers(),
		navigation.DefaultCorridorPolicy(),
		32,
		pc.store,
		planning.DefaultSettings(),
		nil,
	)
	m, err := registry.NewPlanningMediator(nil, nil)
	if err != nil {
		return fmt.Errorf("failed to wire mediator: %w", err)
	}
	pc.mediator = m
	return nil
}

func (pc *planningContext) chain() []string {
	var out []string
	for _, w := range pc.plan.Route.Chain() {
		out = append(out, w.Name)
	}
	return out
}

func (pc *planningContext) requirePlan() error {
	if pc.err != nil {
		return fmt.Errorf("expected a plan, got error: %w", pc.err)
	}
	if pc.plan == nil {
		return fmt.Errorf("no plan was produced")
	}
	return nil
}

// ============================================================================
// Given steps
// ============================================================================

func (pc *planningContext) theConnecticutShoreGazetteer() error {
	pc.fx = helpers.NewPlannerFixture()
	return nil
}

func (pc *planningContext) theMETARAtIs(station, raw string) error {
	pc.fx.Weather.SetMETAR(station, raw)
	return nil
}

func (pc *planningContext) theElevationServiceIsUnavailable() error {
	pc.fx.Elevation.Err = errors.New("elevation service unavailable")
	return nil
}

func (pc *planningContext) anAirportAt(name string, lat, lon float64) error {
	pc.fx.Gazetteer.AddPlace(name, shared.WaypointKindAirport, lat, lon, 0)
	return nil
}

func (pc *planningContext) iHavePlannedARouteFromTo(origin, destination string) error {
	if err := pc.iPlanARouteFromTo(origin, destination); err != nil {
		return err
	}
	if err := pc.requirePlan(); err != nil {
		return err
	}
	pc.previous = pc.plan
	return nil
}

// ============================================================================
// When steps
// ============================================================================

func (pc *planningContext) send(cmd *commands.PlanRouteCommand) error {
	if err := pc.ensureMediator(); err != nil {
		return err
	}
	cmd.SessionID = sessionID
	resp, err := common.Dispatch[*commands.PlanRouteResponse](context.Background(), pc.mediator, cmd)
	pc.plan, pc.err = nil, err
	if err == nil {
		pc.plan = resp.Plan
	}
	return nil
}

func (pc *planningContext) iPlanARouteFromTo(origin, destination string) error {
	return pc.send(&commands.PlanRouteCommand{Origin: origin, Destination: destination})
}

func (pc *planningContext) iPlanARouteFromToAt(origin, destination string, altitude int) error {
	return pc.send(&commands.PlanRouteCommand{Origin: origin, Destination: destination, AltitudeFt: altitude})
}

func (pc *planningContext) iPlanARouteFromToWithAClimbDistanceOf(origin, destination string, climb float64) error {
	return pc.send(&commands.PlanRouteCommand{Origin: origin, Destination: destination, ClimbDistNM: &climb})
}

func (pc *planningContext) replan(legIndex int, place string) error {
	resp, err := common.Dispatch[*commands.ReplanRouteResponse](context.Background(), pc.mediator, &commands.ReplanRouteCommand{
		SessionID: sessionID,
		LegIndex:  legIndex,
		Place:     place,
	})
	pc.plan, pc.err = nil, err
	if err == nil {
		pc.plan = resp.Plan
	}
	return nil
}

func (pc *planningContext) iReplaceTheDestinationOfLegWithALandmarkNotOnTheRoute(leg int) error {
	pc.plan = pc.previous
	onRoute := pc.chain()
	for _, c := range substituteCandidates {
		if !slices.Contains(onRoute, c) {
			pc.substitute = c
			return pc.replan(leg-1, c)
		}
	}
	return fmt.Errorf("every candidate landmark is already on the route %v", onRoute)
}

func (pc *planningContext) iReplaceTheDestinationOfLegWith(leg int, place string) error {
	return pc.replan(leg-1, place)
}

func (pc *planningContext) iReplaceTheDestinationOfTheLastLegWith(place string) error {
	return pc.replan(len(pc.previous.Route.Segments())-1, place)
}

// ============================================================================
// Then steps
// ============================================================================

func (pc *planningContext) thePlanShouldSucceed() error {
	return pc.requirePlan()
}

func (pc *planningContext) theRouteShouldStartAtAndEndAt(origin, destination string) error {
	if err := pc.requirePlan(); err != nil {
		return err
	}
	chain := pc.chain()
	if chain[0] != origin || chain[len(chain)-1] != destination {
		return fmt.Errorf("expected route %s..%s, got %v", origin, destination, chain)
	}
	return nil
}

func (pc *planningContext) theSecondWaypointShouldBeTheTopOfClimb() error {
	if err := pc.requirePlan(); err != nil {
		return err
	}
	if chain := pc.chain(); len(chain) < 2 || chain[1] != shared.TopOfClimbName {
		return fmt.Errorf("expected %s as the second waypoint, got %v", shared.TopOfClimbName, chain)
	}
	return nil
}

func (pc *planningContext) theRouteShouldNotContainATopOfClimb() error {
	if err := pc.requirePlan(); err != nil {
		return err
	}
	if slices.Contains(pc.chain(), shared.TopOfClimbName) || pc.plan.Route.ClimbInserted() {
		return fmt.Errorf("unexpected top of climb in %v", pc.chain())
	}
	return nil
}

func (pc *planningContext) theCruisingAltitudeShouldBeOnEveryLegAfterTheOrigin(expected float64) error {
	if err := pc.requirePlan(); err != nil {
		return err
	}
	for _, seg := range pc.plan.Route.Segments() {
		if seg.IsOrigin() {
			continue
		}
		if seg.AltitudeFt() != expected {
			return fmt.Errorf("leg %s expected at %.0f ft, got %.0f ft", seg, expected, seg.AltitudeFt())
		}
	}
	return nil
}

func (pc *planningContext) theRouteTotalsShouldEqualTheSumOfItsLegs() error {
	if err := pc.requirePlan(); err != nil {
		return err
	}
	var dist, hours float64
	for _, seg := range pc.plan.Route.Segments() {
		dist += seg.LengthNM()
		hours += seg.LegTime()
	}
	if math.Abs(dist-pc.plan.Route.TotalDistance()) > 1e-9 {
		return fmt.Errorf("total distance %.3f differs from leg sum %.3f", pc.plan.Route.TotalDistance(), dist)
	}
	if math.Abs(hours-pc.plan.Route.TotalTime()) > 1e-9 {
		return fmt.Errorf("total time %.3f differs from leg sum %.3f", pc.plan.Route.TotalTime(), hours)
	}
	return nil
}

func (pc *planningContext) theAdvisoriesShouldInclude(advisory string) error {
	if err := pc.requirePlan(); err != nil {
		return err
	}
	if !slices.Contains(pc.plan.Route.Advisories(), advisory) {
		return fmt.Errorf("advisory %q not found in %v", advisory, pc.plan.Route.Advisories())
	}
	return nil
}

func (pc *planningContext) theThirdWaypointShouldBeTheChosenLandmark() error {
	if err := pc.requirePlan(); err != nil {
		return err
	}
	if chain := pc.chain(); len(chain) < 3 || chain[2] != pc.substitute {
		return fmt.Errorf("expected %s as the third waypoint, got %v", pc.substitute, chain)
	}
	return nil
}

func (pc *planningContext) theSessionPlanShouldMatchTheReplannedRoute() error {
	stored, err := pc.store.Find(context.Background(), sessionID)
	if err != nil {
		return err
	}
	got := stored.Route.Chain()
	want := pc.plan.Route.Chain()
	if len(got) != len(want) {
		return fmt.Errorf("stored route has %d waypoints, expected %d", len(got), len(want))
	}
	for i := range got {
		if got[i].Name != want[i].Name {
			return fmt.Errorf("stored waypoint %d is %s, expected %s", i, got[i].Name, want[i].Name)
		}
	}
	return nil
}

func (pc *planningContext) theSessionPlanShouldBeUnchanged() error {
	stored, err := pc.store.Find(context.Background(), sessionID)
	if err != nil {
		return err
	}
	if stored.UpdatedAt != pc.previous.UpdatedAt || len(stored.Route.Segments()) != len(pc.previous.Route.Segments()) {
		return fmt.Errorf("stored plan changed after a failed replan")
	}
	return nil
}

func (pc *planningContext) expectError(target interface{}, kind string) error {
	if pc.err == nil {
		return fmt.Errorf("expected %s error, got success", kind)
	}
	if !errors.As(pc.err, target) {
		return fmt.Errorf("expected %s error, got %v", kind, pc.err)
	}
	return nil
}

func (pc *planningContext) thePlanShouldFailWithAnUnknownAirportError() error {
	return pc.expectError(new(*shared.UnknownAirportError), "unknown airport")
}

func (pc *planningContext) thePlanShouldFailWithARouteTooLongError() error {
	return pc.expectError(new(*shared.RouteTooLongError), "route too long")
}

func (pc *planningContext) thePlanShouldFailWithASubstitutionNotFoundError() error {
	return pc.expectError(new(*shared.SubstitutionNotFoundError), "substitution not found")
}

func (pc *planningContext) thePlanShouldFailWithAValidationError() error {
	return pc.expectError(new(*shared.ValidationError), "validation")
}

// InitializePlanningScenario registers plan and replan steps
func InitializePlanningScenario(sc *godog.ScenarioContext) {
	pc := &planningContext{}

	sc.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		pc.reset()
		return ctx, nil
	})

	// Given steps
	sc.Step(`^the Connecticut shore gazetteer$`, pc.theConnecticutShoreGazetteer)
	sc.Step(`^the METAR at "([^"]*)" is "([^"]*)"$`, pc.theMETARAtIs)
	sc.Step(`^the elevation service is unavailable$`, pc.theElevationServiceIsUnavailable)
	sc.Step(`^an airport "([^"]*)" at (-?\d+(?:\.\d+)?), (-?\d+(?:\.\d+)?)$`, pc.anAirportAt)
	sc.Step(`^I have planned a route from "([^"]*)" to "([^"]*)"$`, pc.iHavePlannedARouteFromTo)

	// When steps
	sc.Step(`^I plan a route from "([^"]*)" to "([^"]*)"$`, pc.iPlanARouteFromTo)
	sc.Step(`^I plan a route from "([^"]*)" to "([^"]*)" at (\d+) ft$`, pc.iPlanARouteFromToAt)
	sc.Step(`^I plan a route from "([^"]*)" to "([^"]*)" with a climb distance of (\d+(?:\.\d+)?) nm$`, pc.iPlanARouteFromToWithAClimbDistanceOf)
	sc.Step(`^I replace the destination of leg (\d+) with a landmark not on the route$`, pc.iReplaceTheDestinationOfLegWithALandmarkNotOnTheRoute)
	sc.Step(`^I replace the destination of leg (\d+) with "([^"]*)"$`, pc.iReplaceTheDestinationOfLegWith)
	sc.Step(`^I replace the destination of the last leg with "([^"]*)"$`, pc.iReplaceTheDestinationOfTheLastLegWith)

	// Then steps
	sc.Step(`^the plan should succeed$`, pc.thePlanShouldSucceed)
	sc.Step(`^the route should start at "([^"]*)" and end at "([^"]*)"$`, pc.theRouteShouldStartAtAndEndAt)
	sc.Step(`^the second waypoint should be the top of climb$`, pc.theSecondWaypointShouldBeTheTopOfClimb)
	sc.Step(`^the third waypoint should be the chosen landmark$`, pc.theThirdWaypointShouldBeTheChosenLandmark)
	sc.Step(`^the route should not contain a top of climb$`, pc.theRouteShouldNotContainATopOfClimb)
	sc.Step(`^the cruising altitude should be (\d+) ft on every leg after the origin$`, pc.theCruisingAltitudeShouldBeOnEveryLegAfterTheOrigin)
	sc.Step(`^the route totals should equal the sum of its legs$`, pc.theRouteTotalsShouldEqualTheSumOfItsLegs)
	sc.Step(`^the advisories should include "([^"]*)"$`, pc.theAdvisoriesShouldInclude)
	sc.Step(`^the session plan should match the replanned route$`, pc.theSessionPlanShouldMatchTheReplannedRoute)
	sc.Step(`^the session plan should be unchanged$`, pc.theSessionPlanShouldBeUnchanged)
	sc.Step(`^the plan should fail with an unknown airport error$`, pc.thePlanShouldFailWithAnUnknownAirportError)
	sc.Step(`^the plan should fail with a route too long error$`, pc.thePlanShouldFailWithARouteTooLongError)
	sc.Step(`^the plan should fail with a substitution not found error$`, pc.thePlanShouldFailWithASubstitutionNotFoundError)
	sc.Step(`^the plan should fail with a validation error$`, pc.thePlanShouldFailWithAValidationError)
}
