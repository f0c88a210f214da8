package utils

import "math"

// NormalizeDegrees maps any angle onto [0, 360).
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// SignedAngleDiff returns to-from wrapped onto (-180, 180].
func SignedAngleDiff(from, to float64) float64 {
	diff := math.Mod(to-from, 360)
	if diff > 180 {
		diff -= 360
	} else if diff <= -180 {
		diff += 360
	}
	return diff
}

// AbsAngleDiff returns the unsigned angular distance between two bearings.
func AbsAngleDiff(a, b float64) float64 {
	return math.Abs(SignedAngleDiff(a, b))
}

// DegreesToRadians converts degrees to radians.
func DegreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadiansToDegrees converts radians to degrees.
func RadiansToDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// RoundUpToThousand rounds n up to the next multiple of 1000.
func RoundUpToThousand(n float64) int {
	return int(math.Ceil(n/1000.0)) * 1000
}
