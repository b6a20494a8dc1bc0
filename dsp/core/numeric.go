package core

import "math"

const defaultEpsilon = 1e-12

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// WrapPhase maps an angle in radians to the principal interval (-pi, pi].
func WrapPhase(phase float64) float64 {
	if phase > -math.Pi && phase <= math.Pi {
		return phase
	}

	wrapped := math.Mod(phase+math.Pi, 2*math.Pi)
	if wrapped <= 0 {
		wrapped += 2 * math.Pi
	}

	return wrapped - math.Pi
}

// PhaseDistance returns the absolute angular distance between a and b
// modulo 2*pi, in [0, pi].
func PhaseDistance(a, b float64) float64 {
	return math.Abs(WrapPhase(a - b))
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}
