package zplane

import (
	"fmt"

	"github.com/cwbudde/algo-zplane/internal/polyroot"
)

// FromCoefficients recovers an editable root set from transfer function
// coefficients, highest degree first. Zeros are the roots of b and poles the
// roots of a; the returned gain is b[0]/a[0] after leading zeros are dropped.
//
// Complex roots that form conjugate pairs within [polyroot.ConjugateTol] are
// added as linked pairs, snapped to exact conjugates. Everything else is added
// unlinked.
func FromCoefficients(b, a []complex128) (*RootSet, complex128, error) {
	b = polyroot.TrimLeadingZeros(b)
	a = polyroot.TrimLeadingZeros(a)

	if len(b) == 0 || len(a) == 0 {
		return nil, 0, fmt.Errorf("zplane: import coefficients: %w", polyroot.ErrDegeneratePolynomial)
	}

	zeros, err := polyroot.Roots(b)
	if err != nil {
		return nil, 0, fmt.Errorf("zplane: numerator roots: %w", err)
	}

	poles, err := polyroot.Roots(a)
	if err != nil {
		return nil, 0, fmt.Errorf("zplane: denominator roots: %w", err)
	}

	s := NewRootSet()
	s.addMatched(Zero, zeros)
	s.addMatched(Pole, poles)

	return s, b[0] / a[0], nil
}

func (s *RootSet) addMatched(kind Kind, roots []complex128) {
	pairs, singles := polyroot.MatchConjugates(roots, polyroot.ConjugateTol)
	for _, p := range pairs {
		s.Add(kind, p[0], true)
	}

	for _, r := range singles {
		s.Add(kind, r, false)
	}
}
