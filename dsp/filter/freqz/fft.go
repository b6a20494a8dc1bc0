package freqz

import (
	"fmt"
	"math/bits"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// EvaluateFast uses [EvaluateFFT] when n-1 is a power of two and [Evaluate]
// otherwise.
func EvaluateFast(b, a []complex128, n int) (Response, error) {
	if n >= 2 && bits.OnesCount(uint(n-1)) == 1 {
		return EvaluateFFT(b, a, n)
	}

	return Evaluate(b, a, n)
}

// EvaluateFFT computes the same response as [Evaluate] from two forward FFTs
// of the zero-padded coefficient vectors. It requires n-1 to be a power of
// two so that the FFT bins of size 2(n-1) land exactly on [Grid](n).
//
// Coefficient vectors longer than the FFT are folded modulo its size, which
// is exact at the bin frequencies.
func EvaluateFFT(b, a []complex128, n int) (Response, error) {
	if n < 2 || bits.OnesCount(uint(n-1)) != 1 {
		return Response{}, fmt.Errorf("%w: fft evaluation needs n-1 to be a power of two, got n=%d", ErrGridSize, n)
	}

	if len(b) == 0 || len(a) == 0 {
		return Response{}, ErrInvalidCoefficients
	}

	size := 2 * (n - 1)

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return Response{}, fmt.Errorf("freqz: fft plan: %w", err)
	}

	num, err := foldedSpectrum(plan, b, size)
	if err != nil {
		return Response{}, err
	}

	den, err := foldedSpectrum(plan, a, size)
	if err != nil {
		return Response{}, err
	}

	w := Grid(n)
	h := make([]complex128, n)
	allZero := true

	// The FFT evaluates sum c_k e^{-jwk}; the polynomial in z differs from it
	// by e^{jw*degree}, so the ratio picks up e^{jw(len(b)-len(a))}.
	shift := float64(len(b) - len(a))
	for k := range h {
		if den[k] != 0 {
			allZero = false
		}

		h[k] = num[k] / den[k] * unit(shift*w[k])
	}

	if allZero {
		return Response{}, ErrInvalidCoefficients
	}

	return newResponse(w, h), nil
}

func foldedSpectrum(plan *algofft.Plan[complex128], coeff []complex128, size int) ([]complex128, error) {
	in := make([]complex128, size)
	for i, c := range coeff {
		in[i%size] += c
	}

	out := make([]complex128, size)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("freqz: forward fft: %w", err)
	}

	return out, nil
}
