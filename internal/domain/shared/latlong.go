package shared

import (
	"fmt"
	"math"
)

// LatLong is a geographic position in decimal degrees.
type LatLong struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// NewLatLong validates coordinate ranges.
func NewLatLong(lat, lon float64) (LatLong, error) {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return LatLong{}, NewValidationError("lat", fmt.Sprintf("out of range: %f", lat))
	}
	if math.IsNaN(lon) || lon < -180 || lon > 180 {
		return LatLong{}, NewValidationError("lon", fmt.Sprintf("out of range: %f", lon))
	}
	return LatLong{Lat: lat, Lon: lon}, nil
}

// IsZero reports whether the position was never set.
func (ll LatLong) IsZero() bool {
	return ll.Lat == 0 && ll.Lon == 0
}

func (ll LatLong) String() string {
	return fmt.Sprintf("(%.4f,%.4f)", ll.Lat, ll.Lon)
}
