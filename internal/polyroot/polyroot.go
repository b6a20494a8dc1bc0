// Package polyroot converts between polynomial roots and coefficients.
//
// Coefficients are always ordered highest degree first:
// coeff[0]*x^n + coeff[1]*x^(n-1) + ... + coeff[n].
package polyroot

import (
	"errors"
	"math"
	"math/cmplx"
)

// ErrDegeneratePolynomial is returned when a polynomial has degenerate
// coefficients (leading coefficient zero, convergence failure, etc.).
var ErrDegeneratePolynomial = errors.New("polyroot: degenerate polynomial")

// ConjugateTol is the relative tolerance for conjugate pair matching.
const ConjugateTol = 1e-7

// FromRoots expands prod(x - roots[i]) into monic polynomial coefficients.
//
// Each root convolves the running coefficient vector with [1, -root], so the
// result has len(roots)+1 entries. An empty root list yields [1]. Imaginary
// parts are kept as computed even when the roots come in conjugate pairs;
// callers that need real coefficients use [RealParts].
func FromRoots(roots []complex128) []complex128 {
	coeff := make([]complex128, 1, len(roots)+1)
	coeff[0] = 1

	for _, r := range roots {
		coeff = append(coeff, 0)
		for i := len(coeff) - 1; i > 0; i-- {
			coeff[i] -= r * coeff[i-1]
		}
	}

	return coeff
}

// PolyEval evaluates a polynomial at x using Horner's method. Coefficients
// are in descending power order: coeff[0]*x^n + ... + coeff[n].
// An empty coefficient slice evaluates to 0.
func PolyEval(coeff []complex128, x complex128) complex128 {
	if len(coeff) == 0 {
		return 0
	}

	v := coeff[0]
	for i := 1; i < len(coeff); i++ {
		v = v*x + coeff[i]
	}

	return v
}

// Scale multiplies every coefficient by g in place and returns coeff.
func Scale(coeff []complex128, g complex128) []complex128 {
	if g == 1 {
		return coeff
	}

	for i := range coeff {
		coeff[i] *= g
	}

	return coeff
}

// RealParts returns the real parts of coeff and the largest absolute
// imaginary part that was dropped.
func RealParts(coeff []complex128) ([]float64, float64) {
	out := make([]float64, len(coeff))
	maxImag := 0.0

	for i, c := range coeff {
		out[i] = real(c)
		if v := math.Abs(imag(c)); v > maxImag {
			maxImag = v
		}
	}

	return out, maxImag
}

// TrimLeadingZeros drops leading zero coefficients. A polynomial that is
// identically zero returns an empty slice.
func TrimLeadingZeros(coeff []complex128) []complex128 {
	for i, c := range coeff {
		if c != 0 {
			return coeff[i:]
		}
	}

	return coeff[:0]
}

// Roots returns all roots of a polynomial in descending power order.
// Constant polynomials have no roots. Leading zeros are ignored.
func Roots(coeff []complex128) ([]complex128, error) {
	coeff = TrimLeadingZeros(coeff)
	switch len(coeff) {
	case 0:
		return nil, ErrDegeneratePolynomial
	case 1:
		return nil, nil
	case 2:
		return []complex128{-coeff[1] / coeff[0]}, nil
	}

	return DurandKerner(coeff)
}

// DurandKerner finds all roots of a polynomial using the Durand-Kerner
// (Weierstrass) simultaneous iteration method. Coefficients are in descending
// power order: coeff[0]*z^n + coeff[1]*z^(n-1) + ... + coeff[n].
//
//nolint:cyclop
func DurandKerner(coeff []complex128) ([]complex128, error) {
	if len(coeff) < 2 {
		return nil, ErrDegeneratePolynomial
	}

	lead := coeff[0]
	if lead == 0 {
		return nil, ErrDegeneratePolynomial
	}

	n := len(coeff) - 1

	norm := make([]complex128, len(coeff))
	for i := range coeff {
		norm[i] = coeff[i] / lead
	}

	radius := 0.0
	for i := 1; i <= n; i++ {
		if r := cmplx.Abs(norm[i]); r > radius {
			radius = r
		}
	}

	if radius < 1 {
		radius = 1
	}

	roots := make([]complex128, n)
	for i := range n {
		angle := 2*math.Pi*float64(i)/float64(n) + 0.3
		r := radius * (1 + 0.1*float64(i)/float64(n))
		roots[i] = complex(r*math.Cos(angle), r*math.Sin(angle))
	}

	const (
		maxIter = 500
		tol     = 1e-12
	)

	for range maxIter {
		maxDelta := 0.0

		for i := range n {
			den := complex(1, 0)

			for j := range n {
				if i == j {
					continue
				}

				den *= roots[i] - roots[j]
			}

			if cmplx.Abs(den) == 0 {
				roots[i] += complex(1e-10, 1e-10)
				continue
			}

			delta := PolyEval(norm, roots[i]) / den

			roots[i] -= delta
			if d := cmplx.Abs(delta); d > maxDelta {
				maxDelta = d
			}
		}

		if maxDelta < tol {
			return roots, nil
		}
	}

	maxResidual := 0.0

	for _, r := range roots {
		res := cmplx.Abs(PolyEval(norm, r))
		if res > maxResidual {
			maxResidual = res
		}
	}

	if maxResidual < 1e-6 {
		return roots, nil
	}

	return nil, ErrDegeneratePolynomial
}

// IsConjugate checks whether a and b are complex conjugates within tolerance.
func IsConjugate(a, b complex128, tol float64) bool {
	if math.Abs(real(a)-real(b)) > tol*math.Max(1, math.Abs(real(a))) {
		return false
	}

	if math.Abs(imag(a)+imag(b)) > tol*math.Max(1, math.Abs(imag(a))) {
		return false
	}

	return true
}

// MatchConjugates groups roots into conjugate pairs where possible. Roots on
// the real axis (within tol) and roots without a conjugate partner are
// returned as singles, in input order. Each pair is ordered with the
// non-negative imaginary part first.
func MatchConjugates(roots []complex128, tol float64) (pairs [][2]complex128, singles []complex128) {
	used := make([]bool, len(roots))

	for i, root := range roots {
		if used[i] {
			continue
		}

		used[i] = true

		if math.Abs(imag(root)) <= tol*math.Max(1, math.Abs(real(root))) {
			singles = append(singles, complex(real(root), 0))
			continue
		}

		conj := cmplx.Conj(root)
		best := -1
		bestDist := math.MaxFloat64

		for j := i + 1; j < len(roots); j++ {
			if used[j] {
				continue
			}

			if d := cmplx.Abs(roots[j] - conj); d < bestDist {
				bestDist = d
				best = j
			}
		}

		if best == -1 || !IsConjugate(root, roots[best], tol) {
			singles = append(singles, root)
			continue
		}

		used[best] = true

		if imag(root) < 0 {
			root = cmplx.Conj(root)
		}

		pairs = append(pairs, [2]complex128{root, cmplx.Conj(root)})
	}

	return pairs, singles
}
