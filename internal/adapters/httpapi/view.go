package httpapi

import (
	"time"

	"github.com/andrescamacho/vfrplanner-go/internal/application/planning"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/weather"
)

// PlanView is the JSON rendering of a plan
type PlanView struct {
	ID          string    `json:"id"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	DirectNM    float64   `json:"direct_nm"`
	AltitudeFt  int       `json:"altitude_ft"`
	Night       bool      `json:"night"`
	Legs        []LegView `json:"legs"`

	TotalDistanceNM float64 `json:"total_distance_nm"`
	TotalTimeHours  float64 `json:"total_time_hours"`
	FuelRequiredGal float64 `json:"fuel_required_gal"`

	Advisories       []string             `json:"advisories"`
	ElevationProfile []float64            `json:"elevation_profile_m,omitempty"`
	OriginEnv        planning.Environment `json:"origin_weather"`
	DestinationEnv   planning.Environment `json:"destination_weather"`
	MapURL           string               `json:"map_url,omitempty"`
	UpdatedAt        time.Time            `json:"updated_at"`
}

// LegView is one row of the navigation log. Num is 1-based and is what
// /update expects.
type LegView struct {
	Num              int          `json:"num"`
	From             string       `json:"from"`
	To               string       `json:"to"`
	TrueCourse       float64      `json:"true_course"`
	MagneticHeading  float64      `json:"magnetic_heading"`
	CorrectedHeading float64      `json:"corrected_heading"`
	AltitudeFt       float64      `json:"altitude_ft"`
	Wind             weather.Wind `json:"wind"`
	WindSource       string       `json:"wind_source"`
	DistanceNM       float64      `json:"distance_nm"`
	GroundSpeedKt    float64      `json:"ground_speed_kt"`
	LegTimeHours     float64      `json:"leg_time_hours"`
}

// NewPlanView renders plan; mapURL may be empty
func NewPlanView(plan *planning.Plan, mapURL string) PlanView {
	route := plan.Route
	view := PlanView{
		ID:               plan.ID,
		Origin:           plan.Origin.Name,
		Destination:      plan.Destination.Name,
		DirectNM:         plan.Direct.DistanceNM,
		AltitudeFt:       plan.Altitude.AltitudeFt,
		Night:            route.Night(),
		TotalDistanceNM:  route.TotalDistance(),
		TotalTimeHours:   route.TotalTime(),
		FuelRequiredGal:  route.FuelRequired(),
		Advisories:       route.Advisories(),
		ElevationProfile: route.ElevationProfile(),
		OriginEnv:        plan.OriginEnv,
		DestinationEnv:   plan.DestinationEnv,
		MapURL:           mapURL,
		UpdatedAt:        plan.UpdatedAt,
	}
	if view.Advisories == nil {
		view.Advisories = []string{}
	}

	for i, seg := range route.Segments() {
		view.Legs = append(view.Legs, LegView{
			Num:              i + 1,
			From:             seg.From().Name,
			To:               seg.To().Name,
			TrueCourse:       seg.TrueCourse(),
			MagneticHeading:  seg.MagneticHeading(),
			CorrectedHeading: seg.CorrectedHeading(),
			AltitudeFt:       seg.AltitudeFt(),
			Wind:             seg.Wind(),
			WindSource:       string(seg.WindSource()),
			DistanceNM:       seg.LengthNM(),
			GroundSpeedKt:    seg.GroundSpeed(),
			LegTimeHours:     seg.LegTime(),
		})
	}
	return view
}
