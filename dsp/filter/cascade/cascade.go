package cascade

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-vecmath"
	"github.com/cwbudde/algo-zplane/dsp/core"
	"github.com/cwbudde/algo-zplane/dsp/filter/allpass"
	"github.com/cwbudde/algo-zplane/dsp/filter/freqz"
	"github.com/cwbudde/algo-zplane/dsp/filter/zplane"
	"github.com/cwbudde/algo-zplane/internal/polyroot"
)

// Coefficients is an expanded transfer function, highest degree first.
type Coefficients struct {
	B []complex128 // numerator, len = number of zeros + 1
	A []complex128 // denominator, len = number of poles + 1
}

// NumeratorDegree returns len(B)-1.
func (c Coefficients) NumeratorDegree() int { return len(c.B) - 1 }

// DenominatorDegree returns len(A)-1.
func (c Coefficients) DenominatorDegree() int { return len(c.A) - 1 }

// Cascade is a primary filter followed by zero or more all-pass sections.
// It is not safe for concurrent use; stream.Engine serializes access.
type Cascade struct {
	primary  *Primary
	sections []allpass.Section
}

// New returns a cascade around primary with no sections. A nil primary
// starts with an empty root set.
func New(primary *Primary) *Cascade {
	if primary == nil {
		primary = NewPrimary(nil)
	}

	return &Cascade{primary: primary}
}

// Primary returns the primary filter.
func (c *Cascade) Primary() *Primary { return c.primary }

// SetSections replaces the whole section list with one section per
// coefficient. On error the previous sections are kept.
func (c *Cascade) SetSections(coeffs []complex128) error {
	sections, err := allpass.NewSections(coeffs)
	if err != nil {
		return err
	}

	c.sections = sections

	return nil
}

// ClearSections detaches all sections.
func (c *Cascade) ClearSections() { c.sections = nil }

// Sections returns a copy of the section list.
func (c *Cascade) Sections() []allpass.Section {
	return append([]allpass.Section(nil), c.sections...)
}

// Filters returns the primary filter followed by every section.
func (c *Cascade) Filters() []Filter {
	out := make([]Filter, 0, len(c.sections)+1)
	out = append(out, c.primary)

	for _, s := range c.sections {
		out = append(out, s)
	}

	return out
}

// CombinedZeros returns the primary zeros followed by one zero per section.
func (c *Cascade) CombinedZeros() []complex128 {
	out := c.primary.Zeros()
	for _, s := range c.sections {
		out = append(out, s.Zero())
	}

	return out
}

// CombinedPoles returns the primary poles followed by one pole per section.
func (c *Cascade) CombinedPoles() []complex128 {
	out := c.primary.Poles()
	for _, s := range c.sections {
		out = append(out, s.Pole())
	}

	return out
}

// Gain returns the product of all filter gains.
func (c *Cascade) Gain() complex128 {
	g := c.primary.Gain()
	for _, s := range c.sections {
		g *= s.Gain()
	}

	return g
}

// Order returns the larger of the numerator and denominator degrees.
func (c *Cascade) Order() int {
	nz := c.primary.set.Len(zplane.Zero) + len(c.sections)
	np := c.primary.set.Len(zplane.Pole) + len(c.sections)

	return max(nz, np)
}

// RecomputeCoefficients expands the current combined roots into transfer
// function coefficients. Every call derives them afresh from the current
// state; nothing is cached. B carries the product of the section gains, so
// a stream filtered with these coefficients is scaled by prod(-conj(a_i))
// relative to a monic numerator.
func (c *Cascade) RecomputeCoefficients() Coefficients {
	return Coefficients{
		B: polyroot.Scale(polyroot.FromRoots(c.CombinedZeros()), c.Gain()),
		A: polyroot.FromRoots(c.CombinedPoles()),
	}
}

// Response evaluates the combined polynomials on an n-point grid.
func (c *Cascade) Response(n int) (freqz.Response, error) {
	coeffs := c.RecomputeCoefficients()
	return freqz.EvaluateFast(coeffs.B, coeffs.A, n)
}

// ComposedResponse evaluates every filter separately and composes the
// results: magnitudes multiply and phases add, wrapped to (-pi, pi].
func (c *Cascade) ComposedResponse(n int) (freqz.Response, error) {
	filters := c.Filters()

	first, err := filters[0].Response(n)
	if err != nil {
		return freqz.Response{}, err
	}

	mag := append([]float64(nil), first.Magnitude...)
	phase := append([]float64(nil), first.Phase...)

	for _, f := range filters[1:] {
		r, err := f.Response(n)
		if err != nil {
			return freqz.Response{}, err
		}

		vecmath.MulBlockInPlace(mag, r.Magnitude)
		vecmath.AddBlockInPlace(phase, r.Phase)
	}

	h := make([]complex128, n)
	for i := range phase {
		phase[i] = core.WrapPhase(phase[i])
		h[i] = cmplx.Rect(mag[i], phase[i])
	}

	return freqz.Response{
		Frequencies: first.Frequencies,
		H:           h,
		Magnitude:   mag,
		Phase:       phase,
	}, nil
}

// SectionPhase returns the summed phase of the all-pass sections alone on
// an n-point grid, unwrapped across sections. This is the correction added
// on top of the primary filter's phase. With no sections it is all zeros.
func (c *Cascade) SectionPhase(n int) ([]float64, error) {
	if n < 1 {
		return nil, freqz.ErrGridSize
	}

	sum := make([]float64, n)

	for _, s := range c.sections {
		p, err := s.Phase(n)
		if err != nil {
			return nil, err
		}

		vecmath.AddBlockInPlace(sum, p)
	}

	return sum, nil
}

// IsStable reports whether every combined pole lies strictly inside the unit
// circle. It is informational; unstable cascades are evaluated as given.
func (c *Cascade) IsStable() bool {
	for _, p := range c.CombinedPoles() {
		if cmplx.Abs(p) >= 1 || math.IsNaN(real(p)) {
			return false
		}
	}

	return true
}
