package stream

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-zplane/dsp/filter/zplane"
)

// AddRoot adds a zero or pole, with a linked conjugate mirror when reflect is
// set, and returns its handle.
func (e *Engine) AddRoot(kind zplane.Kind, pos complex128, reflect bool) zplane.Handle {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.cascade.Primary().Set().Add(kind, pos, reflect)
}

// MoveRoot moves the root behind h and its mirror, if any.
func (e *Engine) MoveRoot(h zplane.Handle, pos complex128) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.cascade.Primary().Set().Move(h, pos)
}

// RemoveRoot removes the root behind h and its mirror, if any.
func (e *Engine) RemoveRoot(h zplane.Handle) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.cascade.Primary().Set().Remove(h)
}

// NearestRoot returns the root of kind closest to target within threshold.
func (e *Engine) NearestRoot(kind zplane.Kind, target complex128, threshold float64) (zplane.Handle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.cascade.Primary().Set().Nearest(kind, target, threshold)
}

// RemoveNearest removes the root of kind closest to target, together with its
// mirror. A miss is not an error; it is logged and reported as false.
func (e *Engine) RemoveNearest(kind zplane.Kind, target complex128, threshold float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	set := e.cascade.Primary().Set()

	h, err := set.Nearest(kind, target, threshold)
	if errors.Is(err, zplane.ErrNotFound) {
		e.logger.WithFields(logrus.Fields{
			"kind":   kind.String(),
			"target": target,
		}).Debug("no root to remove")

		return false
	}

	return set.Remove(h) == nil
}

// ClearRoots removes every root of kind.
func (e *Engine) ClearRoots(kind zplane.Kind) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cascade.Primary().Set().Clear(kind)
}

// Root returns a snapshot of the primary root behind h.
func (e *Engine) Root(h zplane.Handle) (zplane.Root, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.cascade.Primary().Set().Root(h)
}

// Roots returns snapshots of the primary roots of kind in insertion order.
func (e *Engine) Roots(kind zplane.Kind) []zplane.Root {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.cascade.Primary().Set().Roots(kind)
}

// SetGain sets the primary filter's numerator scale factor.
func (e *Engine) SetGain(g complex128) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cascade.Primary().SetGain(g)
}

// SetSections replaces all all-pass sections, one per coefficient. On error
// the previous sections stay attached.
func (e *Engine) SetSections(coeffs []complex128) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.cascade.SetSections(coeffs); err != nil {
		return fmt.Errorf("stream: set sections: %w", err)
	}

	e.logger.WithFields(logrus.Fields{
		"session":  e.session,
		"sections": len(coeffs),
	}).Debug("all-pass sections replaced")

	return nil
}

// Sections returns the coefficients of the attached all-pass sections.
func (e *Engine) Sections() []complex128 {
	e.mu.Lock()
	defer e.mu.Unlock()

	sections := e.cascade.Sections()

	out := make([]complex128, len(sections))
	for i, s := range sections {
		out[i] = s.Coefficient()
	}

	return out
}

// ImportCoefficients replaces the primary roots and gain with the
// factorization of b/a. Conjugate root pairs come back linked. Handles from
// the previous root set are invalidated.
func (e *Engine) ImportCoefficients(b, a []complex128) error {
	set, gain, err := zplane.FromCoefficients(b, a)
	if err != nil {
		return fmt.Errorf("stream: import coefficients: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.cascade.Primary().Replace(set, gain)

	return nil
}
