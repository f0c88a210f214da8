package weather

import (
	"fmt"
	"strconv"
	"strings"
)

// AloftBand is one forecast column of an FD winds-aloft bulletin.
type AloftBand struct {
	AltitudeFt int
	// Lower bound (inclusive) of cruising altitudes served by this column.
	FromFt int
}

// AloftBands lists the FD columns in bulletin order with the altitude
// ranges each one covers.
var AloftBands = []AloftBand{
	{AltitudeFt: 3000, FromFt: 0},
	{AltitudeFt: 6000, FromFt: 4500},
	{AltitudeFt: 9000, FromFt: 7500},
	{AltitudeFt: 12000, FromFt: 10500},
	{AltitudeFt: 18000, FromFt: 15000},
	{AltitudeFt: 24000, FromFt: 21000},
	{AltitudeFt: 30000, FromFt: 27000},
	{AltitudeFt: 34000, FromFt: 32000},
	{AltitudeFt: 39000, FromFt: 36500},
}

// BandIndex returns the FD column serving a cruising altitude, or -1 when the
// altitude is negative or above the highest band.
func BandIndex(altitudeFt float64) int {
	if altitudeFt < 0 || altitudeFt >= 40000 {
		return -1
	}
	idx := 0
	for i, b := range AloftBands {
		if altitudeFt >= float64(b.FromFt) {
			idx = i
		}
	}
	return idx
}

// AloftStation is one station line of an FD bulletin. Groups is indexed like
// AloftBands; an empty group means no forecast at that level.
type AloftStation struct {
	Station string
	Groups  []string
}

// ParseFDBulletin extracts station lines from FD winds-aloft text. Header
// lines and stations that do not carry a full set of columns are skipped.
func ParseFDBulletin(text string) []AloftStation {
	var stations []AloftStation
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) != len(AloftBands)+1 {
			continue
		}
		if fields[0] == "FT" || strings.Contains(line, "VALID") {
			continue
		}
		if !isStationID(fields[0]) {
			continue
		}
		stations = append(stations, AloftStation{
			Station: fields[0],
			Groups:  fields[1:],
		})
	}
	return stations
}

func isStationID(s string) bool {
	if len(s) < 3 || len(s) > 4 {
		return false
	}
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

// WindAt decodes the group for the band serving altitudeFt.
func (s AloftStation) WindAt(altitudeFt float64) (Wind, error) {
	idx := BandIndex(altitudeFt)
	if idx < 0 || idx >= len(s.Groups) {
		return Wind{}, fmt.Errorf("%s: no winds-aloft band for %.0f ft", s.Station, altitudeFt)
	}
	return DecodeAloftGroup(s.Groups[idx])
}

// DecodeAloftGroup decodes a DDSS[+TT] group. 9900 is light and variable
// (calm); directions of 51-86 encode speeds of 100 kt or more.
func DecodeAloftGroup(group string) (Wind, error) {
	if len(group) < 4 {
		return Wind{}, fmt.Errorf("winds-aloft group %q too short", group)
	}

	dd, err := strconv.Atoi(group[0:2])
	if err != nil {
		return Wind{}, fmt.Errorf("winds-aloft group %q: bad direction: %w", group, err)
	}
	ss, err := strconv.Atoi(group[2:4])
	if err != nil {
		return Wind{}, fmt.Errorf("winds-aloft group %q: bad speed: %w", group, err)
	}

	if dd == 99 && ss == 0 {
		return Calm(), nil
	}
	if dd > 36 {
		dd -= 50
		ss += 100
	}
	wind, err := NewWind(float64(dd*10), float64(ss))
	if err != nil {
		return Wind{}, fmt.Errorf("winds-aloft group %q: %w", group, err)
	}
	return wind, nil
}
