package navigation

import (
	"math"

	"github.com/andrescamacho/vfrplanner-go/internal/domain/shared"
	"github.com/andrescamacho/vfrplanner-go/pkg/utils"
)

// Landmark priority weights
const (
	airportBonus      = 8
	deviationBonus5   = 5
	deviationBonus8   = 3
	deviationBonus10  = 2
	idealLegBonus     = 2
	idealLegWindowNM  = 5.0
	defaultIdealLegNM = 20.0
)

// Candidate is a gazetteer place measured from the current corridor position.
type Candidate struct {
	Waypoint shared.Waypoint
	Course   Course
}

// Deviation is the unsigned angle between the candidate's bearing and the
// target bearing.
func (c Candidate) Deviation(targetBearing float64) float64 {
	return utils.AbsAngleDiff(c.Course.BearingDeg, targetBearing)
}

// Priority scores a candidate. The deviation bonuses are cumulative: a
// candidate 3° off course earns all three.
func Priority(c Candidate, targetBearing, idealLegNM float64) int {
	priority := 0
	if shared.IsAirportIdentifier(c.Waypoint.Name) {
		priority += airportBonus
	}

	dev := c.Deviation(targetBearing)
	if dev < 5 {
		priority += deviationBonus5
	}
	if dev < 8 {
		priority += deviationBonus8
	}
	if dev < 10 {
		priority += deviationBonus10
	}

	if math.Abs(c.Course.DistanceNM-idealLegNM) < idealLegWindowNM {
		priority += idealLegBonus
	}
	return priority
}

// RankCandidates returns ranked copies of the candidates' waypoints, highest
// priority first. Ties keep discovery order.
func RankCandidates(candidates []Candidate, targetBearing, idealLegNM float64) []shared.Waypoint {
	if idealLegNM <= 0 {
		idealLegNM = defaultIdealLegNM
	}

	scored := make([]shared.Waypoint, len(candidates))
	for i, c := range candidates {
		scored[i] = c.Waypoint.WithPriority(Priority(c, targetBearing, idealLegNM), c.Course.DistanceNM)
	}

	return utils.RankBy(scored, func(w shared.Waypoint) int { return w.Priority })
}
