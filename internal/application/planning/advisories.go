package planning

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/vfrplanner-go/internal/domain/weather"
)

// TopOfClimbAdvisory is attached when a TOC waypoint was added
const TopOfClimbAdvisory = "Added Top of Climb (TOC) waypoint"

// AltitudeChangedAdvisory reports an override of the requested altitude
func AltitudeChangedAdvisory(requestedFt, chosenFt int) string {
	return fmt.Sprintf("Changed cruising altitude from %d ft to %d ft", requestedFt, chosenFt)
}

// TerrainUnavailableAdvisory reports that the requested altitude was kept
// because terrain could not be sampled
func TerrainUnavailableAdvisory(altitudeFt int) string {
	return fmt.Sprintf("Terrain elevation unavailable; using %d ft", altitudeFt)
}

// ConditionsAdvisory warns about non-VFR conditions at the origin or
// destination; it is empty for VFR and unknown conditions
func ConditionsAdvisory(role string, sky weather.SkyCondition) string {
	switch sky {
	case weather.SkyConditionIFR, weather.SkyConditionSVFR:
		return fmt.Sprintf("%s is in %s conditions", role, sky)
	default:
		return ""
	}
}

// AdvisoryKind classifies an advisory for metrics labels
func AdvisoryKind(advisory string) string {
	switch {
	case strings.HasPrefix(advisory, "No wind data"):
		return "no_wind"
	case strings.HasPrefix(advisory, "No winds aloft"):
		return "no_winds_aloft"
	case strings.HasPrefix(advisory, "Field elevation"):
		return "field_elevation"
	case strings.HasPrefix(advisory, "Climb distance"):
		return "climb_exceeds_route"
	case advisory == TopOfClimbAdvisory:
		return "top_of_climb"
	case strings.HasPrefix(advisory, "Changed cruising altitude"):
		return "altitude_changed"
	case strings.HasPrefix(advisory, "Terrain elevation"):
		return "terrain_unavailable"
	case strings.Contains(advisory, "conditions"):
		return "conditions"
	default:
		return "other"
	}
}
