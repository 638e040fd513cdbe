package services

import "math"

const secondsPerDurationPoint = 120

// ComputePoints scores an activity: one point per 100 m, one per km/h of
// average speed and one per two minutes. Every term truncates toward zero
// and the sum never goes below zero. Terms and the sum saturate at the int
// range instead of wrapping.
func ComputePoints(distanceKm, avgKmh float64, durationSec int) int {
	base := truncToInt(distanceKm * 10)
	speedBonus := truncToInt(avgKmh)
	durationBonus := durationSec / secondsPerDurationPoint

	return max(0, addSaturating(addSaturating(base, speedBonus), durationBonus))
}

// truncToInt truncates x toward zero, clamping to [MinInt, MaxInt]. NaN is 0.
func truncToInt(x float64) int {
	switch {
	case math.IsNaN(x):
		return 0
	case x >= math.MaxInt: // 2^63 after conversion
		return math.MaxInt
	case x <= math.MinInt:
		return math.MinInt
	}
	return int(x)
}

func addSaturating(a, b int) int {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return math.MaxInt
	case b < 0 && a < math.MinInt-b:
		return math.MinInt
	}
	return a + b
}
