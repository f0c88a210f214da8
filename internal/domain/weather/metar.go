package weather

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SkyCondition is the flight category derived from ceiling and visibility.
type SkyCondition string

const (
	SkyConditionVFR     SkyCondition = "VFR"
	SkyConditionSVFR    SkyCondition = "SVFR"
	SkyConditionIFR     SkyCondition = "IFR"
	SkyConditionUnknown SkyCondition = "UNKNOWN"
)

// UnlimitedCeilingFt is reported when no BKN/OVC layer is present.
const UnlimitedCeilingFt = 12000

// Observation is as much of a METAR as planning needs.
type Observation struct {
	Station     string
	Raw         string
	Time        time.Time
	WindDir     *int // nil for variable winds
	WindSpeed   int
	WindGust    *int
	Temperature *int
	Dewpoint    *int
	Altimeter   float64 // inHg, 0 when absent
}

// ParseMETAR decodes the fields of a raw METAR report that planning uses.
// Only the wind group is mandatory.
func ParseMETAR(raw string) (*Observation, error) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty METAR")
	}

	obs := &Observation{Raw: strings.TrimSpace(raw)}
	idx := 0
	if fields[0] == "METAR" || fields[0] == "SPECI" {
		idx++
	}
	if idx < len(fields) {
		obs.Station = fields[idx]
	}

	foundWind := false
	for _, f := range fields[idx:] {
		if f == "RMK" {
			break
		}
		switch {
		case !foundWind && strings.HasSuffix(f, "KT"):
			if err := obs.parseWind(f); err != nil {
				return nil, err
			}
			foundWind = true
		case len(f) == 7 && strings.HasSuffix(f, "Z"):
			if t, err := parseDayTime(f); err == nil {
				obs.Time = t
			}
		case len(f) == 5 && f[0] == 'A':
			if v, err := strconv.Atoi(f[1:]); err == nil {
				obs.Altimeter = float64(v) / 100
			}
		case strings.Contains(f, "/") && !strings.HasSuffix(f, "SM"):
			obs.parseTemperature(f)
		}
	}

	if !foundWind {
		return nil, fmt.Errorf("%s: no wind group found", obs.Raw)
	}
	return obs, nil
}

// parseWind handles dddssKT, dddssGggKT and VRBssKT.
func (o *Observation) parseWind(f string) error {
	body := strings.TrimSuffix(f, "KT")
	if len(body) < 5 {
		return fmt.Errorf("%s: wind group too short", f)
	}

	if body[:3] != "VRB" {
		dir, err := strconv.Atoi(body[:3])
		if err != nil {
			return fmt.Errorf("%s: bad wind direction: %w", f, err)
		}
		if dir < 0 || dir > 360 {
			return fmt.Errorf("%s: wind direction out of range", f)
		}
		o.WindDir = &dir
	}

	speedPart, gustPart, hasGust := strings.Cut(body[3:], "G")
	spd, err := strconv.Atoi(speedPart)
	if err != nil {
		return fmt.Errorf("%s: bad wind speed: %w", f, err)
	}
	o.WindSpeed = spd

	if hasGust {
		if gst, err := strconv.Atoi(gustPart); err == nil {
			o.WindGust = &gst
		}
	}
	return nil
}

// parseTemperature handles TT/DD with M for negative values.
func (o *Observation) parseTemperature(f string) {
	st, sd, ok := strings.Cut(f, "/")
	if !ok {
		return
	}
	parse := func(s string) *int {
		neg := strings.HasPrefix(s, "M")
		s = strings.TrimPrefix(s, "M")
		if len(s) != 2 {
			return nil
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return nil
		}
		if neg {
			v = -v
		}
		return &v
	}
	if t := parse(st); t != nil {
		o.Temperature = t
		o.Dewpoint = parse(sd)
	}
}

func parseDayTime(f string) (time.Time, error) {
	day, err := strconv.Atoi(f[0:2])
	if err != nil {
		return time.Time{}, err
	}
	hour, err := strconv.Atoi(f[2:4])
	if err != nil {
		return time.Time{}, err
	}
	minute, err := strconv.Atoi(f[4:6])
	if err != nil {
		return time.Time{}, err
	}
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), day, hour, minute, 0, 0, time.UTC), nil
}

// Wind converts the observed wind for navigation. Variable winds report
// direction 0.
func (o Observation) Wind() Wind {
	dir := 0.0
	if o.WindDir != nil {
		dir = float64(*o.WindDir)
	}
	return Wind{DirectionDeg: dir, SpeedKt: float64(o.WindSpeed)}
}

// Visibility extracts visibility in statute miles from the raw METAR
func (o Observation) Visibility() (float64, error) {
	fields := strings.Fields(o.Raw)
	for i, f := range fields {
		if !strings.HasSuffix(f, "SM") {
			continue
		}
		f = strings.TrimSuffix(f, "SM")
		f = strings.TrimPrefix(f, "P") // P6SM
		f = strings.TrimPrefix(f, "M") // there if 1/4 or less

		if snum, sdenom, ok := strings.Cut(f, "/"); ok {
			num, err := strconv.Atoi(snum)
			if err != nil {
				return -1, err
			}
			denom, err := strconv.Atoi(sdenom)
			if err != nil || denom == 0 {
				return -1, fmt.Errorf("%s: bad visibility fraction", f)
			}
			vis := float64(num) / float64(denom)
			// 1 1/2SM
			if i > 0 {
				if whole, err := strconv.Atoi(fields[i-1]); err == nil {
					vis += float64(whole)
				}
			}
			return vis, nil
		}
		vis, err := strconv.Atoi(f)
		if err != nil {
			return -1, err
		}
		return float64(vis), nil
	}
	return -1, fmt.Errorf("%s: no visibility found", o.Raw)
}

// Ceiling returns ceiling in feet AGL (above ground level)
func (o Observation) Ceiling() (int, error) {
	for _, f := range strings.Fields(o.Raw) {
		// BKN (broken), OVC (overcast) and VV (vertical visibility) constitute a ceiling
		prefix := ""
		switch {
		case strings.HasPrefix(f, "BKN"), strings.HasPrefix(f, "OVC"):
			prefix = f[:3]
		case strings.HasPrefix(f, "VV"):
			prefix = "VV"
		default:
			continue
		}
		height := strings.TrimPrefix(f, prefix)
		if len(height) < 3 {
			return 0, fmt.Errorf("%s: too short", f)
		}
		alt, err := strconv.Atoi(height[:3])
		if err != nil {
			return -1, err
		}
		// Cloud height is in hundreds of feet
		return alt * 100, nil
	}
	return UnlimitedCeilingFt, nil
}

// SkyCondition classifies the observation: VFR needs >= 3 SM and a ceiling
// of at least 1000 ft, special VFR needs >= 1 SM, anything else is IFR.
func (o Observation) SkyCondition() SkyCondition {
	vis, err := o.Visibility()
	if err != nil {
		return SkyConditionUnknown
	}
	ceil, err := o.Ceiling()
	if err != nil {
		return SkyConditionUnknown
	}

	switch {
	case vis >= 3 && ceil >= 1000:
		return SkyConditionVFR
	case vis >= 1:
		return SkyConditionSVFR
	default:
		return SkyConditionIFR
	}
}

// IsVMC returns true if Visual Meteorological Conditions apply
func (o Observation) IsVMC() bool {
	return o.SkyCondition() == SkyConditionVFR
}
