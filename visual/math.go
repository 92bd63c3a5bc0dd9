package visual

import "math"

// Clamp01 clamps v into [0,1], mapping NaN to 0
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Clamp clamps v into [lo,hi], mapping NaN to lo
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates linearly between a and b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// SmoothStep is the cubic Hermite ease-in-out on [0,1]
func SmoothStep(t float64) float64 {
	x := Clamp01(t)
	return x * x * (3 - 2*x)
}
