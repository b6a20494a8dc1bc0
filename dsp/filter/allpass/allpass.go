// Package allpass provides first-order all-pass sections used to reshape the
// phase of a filter without touching its magnitude.
//
// A section with coefficient a has the transfer function
//
//	H(z) = (-conj(a) + z^-1) / (1 - a*z^-1)
//
// i.e. one pole at a and one zero at 1/conj(a), mirrored across the unit
// circle. |H(e^jw)| is 1 at every frequency whenever |a| != 1. The section is
// causal and stable for |a| < 1; this is documented, not enforced.
package allpass

import (
	"errors"
	"math/cmplx"

	"github.com/cwbudde/algo-zplane/dsp/filter/freqz"
)

// ErrZeroCoefficient is returned for a == 0, whose zero lies at infinity.
var ErrZeroCoefficient = errors.New("allpass: coefficient must be non-zero")

// Section is an immutable first-order all-pass filter. Edit a cascade by
// replacing sections, not by mutating them.
type Section struct {
	a complex128
}

// New returns the section for coefficient a.
func New(a complex128) (Section, error) {
	if a == 0 {
		return Section{}, ErrZeroCoefficient
	}

	return Section{a: a}, nil
}

// NewSections builds one section per coefficient, in order.
func NewSections(coeffs []complex128) ([]Section, error) {
	out := make([]Section, len(coeffs))
	for i, a := range coeffs {
		s, err := New(a)
		if err != nil {
			return nil, err
		}

		out[i] = s
	}

	return out, nil
}

// Coefficient returns a.
func (s Section) Coefficient() complex128 { return s.a }

// Pole returns a.
func (s Section) Pole() complex128 { return s.a }

// Zero returns 1/conj(a).
func (s Section) Zero() complex128 { return 1 / cmplx.Conj(s.a) }

// Zeros returns the single zero as a slice.
func (s Section) Zeros() []complex128 { return []complex128{s.Zero()} }

// Poles returns the single pole as a slice.
func (s Section) Poles() []complex128 { return []complex128{s.Pole()} }

// Gain returns -conj(a), the factor between H and the monic root form
// (z - Zero()) / (z - Pole()).
func (s Section) Gain() complex128 { return -cmplx.Conj(s.a) }

// Numerator returns [-conj(a), 1].
func (s Section) Numerator() []complex128 { return []complex128{-cmplx.Conj(s.a), 1} }

// Denominator returns [1, -a].
func (s Section) Denominator() []complex128 { return []complex128{1, -s.a} }

// IsStable reports whether the pole lies strictly inside the unit circle.
func (s Section) IsStable() bool { return cmplx.Abs(s.a) < 1 }

// Response evaluates the section transfer function on an n-point grid over
// [0, pi].
func (s Section) Response(n int) (freqz.Response, error) {
	return freqz.Evaluate(s.Numerator(), s.Denominator(), n)
}

// Magnitude returns |H| on an n-point grid. It is 1 up to rounding.
func (s Section) Magnitude(n int) ([]float64, error) {
	r, err := s.Response(n)
	if err != nil {
		return nil, err
	}

	return r.Magnitude, nil
}

// Phase returns arg H on an n-point grid.
func (s Section) Phase(n int) ([]float64, error) {
	r, err := s.Response(n)
	if err != nil {
		return nil, err
	}

	return r.Phase, nil
}
