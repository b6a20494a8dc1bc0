package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a sine at freq cycles per sample.
func DeterministicSine(freq, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freq
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// Geometric returns [1, r, r^2, ...], the impulse response of a single real
// pole at r.
func Geometric(r float64, length int) []float64 {
	out := make([]float64, length)
	v := 1.0
	for i := range out {
		out[i] = v
		v *= r
	}
	return out
}

// RandomRoots returns n points drawn uniformly from the disc of the given
// radius.
func RandomRoots(seed int64, radius float64, n int) []complex128 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]complex128, n)
	for i := range out {
		r := radius * math.Sqrt(rng.Float64())
		theta := 2 * math.Pi * rng.Float64()
		out[i] = complex(r*math.Cos(theta), r*math.Sin(theta))
	}
	return out
}

// Ones returns a slice of length n filled with 1.0.
func Ones(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}
	return out
}
