// Package freqz evaluates rational transfer functions on the unit circle.
//
// All evaluators use the same grid of n points over [0, pi] (both endpoints
// included) and return a [Response] with aligned frequency, complex response,
// magnitude and phase slices. Coefficients are ordered highest degree first,
// as produced by root expansion, and are evaluated as polynomials in z:
//
//	H(e^jw) = B(e^jw) / A(e^jw)
package freqz

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-vecmath"
	"github.com/cwbudde/algo-zplane/dsp/core"
	"github.com/cwbudde/algo-zplane/internal/polyroot"
)

var (
	// ErrGridSize is returned for grid sizes the evaluator cannot use.
	ErrGridSize = errors.New("freqz: invalid grid size")
	// ErrInvalidCoefficients is returned when a coefficient slice is empty or
	// the denominator is identically zero.
	ErrInvalidCoefficients = errors.New("freqz: invalid coefficients")
)

// Response is a frequency response sampled on [Grid].
type Response struct {
	// Frequencies in radians per sample, ascending over [0, pi].
	Frequencies []float64
	H           []complex128
	Magnitude   []float64
	// Phase is the principal value of arg H in (-pi, pi].
	Phase []float64
}

// Len returns the number of grid points.
func (r Response) Len() int { return len(r.Frequencies) }

// Normalized returns the frequency axis in cycles per sample, [0, 0.5].
func (r Response) Normalized() []float64 {
	out := make([]float64, len(r.Frequencies))
	for i, w := range r.Frequencies {
		out[i] = 0.5 * w / math.Pi
	}

	return out
}

// Hz returns the frequency axis in Hz for the given sample rate.
func (r Response) Hz(sampleRate float64) []float64 {
	out := r.Normalized()
	for i := range out {
		out[i] *= sampleRate
	}

	return out
}

// MagnitudeDB returns 20*log10(|H|) per grid point.
func (r Response) MagnitudeDB() []float64 {
	out := make([]float64, len(r.Magnitude))
	for i, m := range r.Magnitude {
		out[i] = core.LinearToDB(m)
	}

	return out
}

// Grid returns n frequencies uniformly spaced over [0, pi], w_k = pi*k/(n-1).
// A single-point grid is [0]; n < 1 yields nil.
func Grid(n int) []float64 {
	if n < 1 {
		return nil
	}

	w := make([]float64, n)
	if n == 1 {
		return w
	}

	step := math.Pi / float64(n-1)
	for k := range w {
		w[k] = step * float64(k)
	}

	w[n-1] = math.Pi

	return w
}

// Evaluate computes H = B/A on an n-point grid with Horner's method per point.
func Evaluate(b, a []complex128, n int) (Response, error) {
	if n < 1 {
		return Response{}, ErrGridSize
	}

	if len(b) == 0 || len(a) == 0 || len(polyroot.TrimLeadingZeros(a)) == 0 {
		return Response{}, ErrInvalidCoefficients
	}

	w := Grid(n)
	h := make([]complex128, n)

	for k, wk := range w {
		z := unit(wk)
		h[k] = polyroot.PolyEval(b, z) / polyroot.PolyEval(a, z)
	}

	return newResponse(w, h), nil
}

// EvaluateZPK computes gain * prod(z - zeros) / prod(z - poles) on an n-point
// grid without expanding the polynomials.
func EvaluateZPK(zeros, poles []complex128, gain complex128, n int) (Response, error) {
	if n < 1 {
		return Response{}, ErrGridSize
	}

	w := Grid(n)
	h := make([]complex128, n)

	for k, wk := range w {
		z := unit(wk)
		v := gain

		for _, q := range zeros {
			v *= z - q
		}

		for _, p := range poles {
			v /= z - p
		}

		h[k] = v
	}

	return newResponse(w, h), nil
}

// FromH builds a Response from complex values already sampled on Grid(len(h)).
func FromH(h []complex128) Response {
	return newResponse(Grid(len(h)), h)
}

func unit(w float64) complex128 {
	return complex(math.Cos(w), math.Sin(w))
}

func newResponse(w []float64, h []complex128) Response {
	n := len(h)
	re := make([]float64, n)
	im := make([]float64, n)

	for i, v := range h {
		re[i] = real(v)
		im[i] = imag(v)
	}

	mag := make([]float64, n)
	vecmath.Magnitude(mag, re, im)

	phase := make([]float64, n)
	for i, v := range h {
		phase[i] = core.WrapPhase(cmplx.Phase(v))
	}

	return Response{
		Frequencies: w,
		H:           h,
		Magnitude:   mag,
		Phase:       phase,
	}
}
