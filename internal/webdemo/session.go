// Package webdemo adapts the streaming engine to the browser demo. Every
// method takes and returns plain numbers, strings and slices so that the wasm
// bridge can pass them through syscall/js without further conversion.
package webdemo

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-zplane/dsp/core"
	"github.com/cwbudde/algo-zplane/dsp/filter/stream"
	"github.com/cwbudde/algo-zplane/dsp/filter/zplane"
)

const (
	modeZero   = "zero"
	modePole   = "pole"
	modeDelete = "delete"

	// defaultPickRadius is the click distance, in z-plane units, within which
	// a root is picked for deletion.
	defaultPickRadius = 0.1

	padAmplitude = 10
)

// Session is one browser tab's filter designer: a z-plane editor, the
// all-pass correction panel and the streaming signal view.
type Session struct {
	engine     *stream.Engine
	sampleRate float64
	mode       string
	reflect    bool
	pickRadius float64
	samples    []float64
	// padLive is set while the attached signal was drawn on the pad.
	padLive bool
}

// NewSession creates a session with an empty filter.
func NewSession(sampleRate float64, logger logrus.FieldLogger) (*Session, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be > 0: %f", sampleRate)
	}

	return &Session{
		engine:     stream.New(nil, core.WithSampleRate(sampleRate), core.WithLogger(logger)),
		sampleRate: sampleRate,
		mode:       modeZero,
		pickRadius: defaultPickRadius,
	}, nil
}

// SetMode selects what a click on the z-plane does: "zero", "pole" or
// "delete".
func (s *Session) SetMode(mode string) error {
	switch mode {
	case modeZero, modePole, modeDelete:
		s.mode = mode
		return nil
	default:
		return fmt.Errorf("unknown edit mode %q", mode)
	}
}

// Mode returns the current edit mode.
func (s *Session) Mode() string { return s.mode }

// SetReflect toggles conjugate mirroring for roots added from now on.
func (s *Session) SetReflect(reflect bool) { s.reflect = reflect }

// SetPickRadius sets the deletion click radius.
func (s *Session) SetPickRadius(r float64) {
	if r > 0 {
		s.pickRadius = r
	}
}

// Click applies the current mode at (re, im). It returns the handle of an
// added root, or -1 when the click deleted a root or hit nothing.
func (s *Session) Click(re, im float64) int {
	pos := complex(re, im)

	switch s.mode {
	case modeZero:
		return int(s.engine.AddRoot(zplane.Zero, pos, s.reflect))
	case modePole:
		return int(s.engine.AddRoot(zplane.Pole, pos, s.reflect))
	default:
		s.deleteNearest(pos)
		return int(zplane.NoHandle)
	}
}

// deleteNearest removes whichever zero or pole lies closest to pos.
func (s *Session) deleteNearest(pos complex128) bool {
	best := zplane.NoHandle
	bestDist := math.Inf(1)

	for _, kind := range []zplane.Kind{zplane.Zero, zplane.Pole} {
		h, err := s.engine.NearestRoot(kind, pos, s.pickRadius)
		if err != nil {
			continue
		}

		r, err := s.engine.Root(h)
		if err != nil {
			continue
		}

		if d := cmplx.Abs(r.Position - pos); d < bestDist {
			best, bestDist = h, d
		}
	}

	if best == zplane.NoHandle {
		return false
	}

	return s.engine.RemoveRoot(best) == nil
}

// Drag moves root h, and its mirror, to (re, im).
func (s *Session) Drag(h int, re, im float64) error {
	return s.engine.MoveRoot(zplane.Handle(h), complex(re, im))
}

// Clear removes zeros, poles or both, selected by "zero", "pole" or "all".
func (s *Session) Clear(what string) error {
	switch what {
	case modeZero:
		s.engine.ClearRoots(zplane.Zero)
	case modePole:
		s.engine.ClearRoots(zplane.Pole)
	case "all":
		s.engine.ClearRoots(zplane.Zero)
		s.engine.ClearRoots(zplane.Pole)
	default:
		return fmt.Errorf("unknown root group %q", what)
	}

	return nil
}

// Zeros returns the zero positions interleaved as re0, im0, re1, im1, ...
func (s *Session) Zeros() []float64 { return s.interleaved(zplane.Zero) }

// Poles returns the pole positions interleaved like Zeros.
func (s *Session) Poles() []float64 { return s.interleaved(zplane.Pole) }

func (s *Session) interleaved(kind zplane.Kind) []float64 {
	roots := s.engine.Roots(kind)

	out := make([]float64, 0, 2*len(roots))
	for _, r := range roots {
		out = append(out, real(r.Position), imag(r.Position))
	}

	return out
}

// SetAllPass replaces the all-pass correction sections. re and im hold the
// section coefficients; a shorter im is padded with zeros.
func (s *Session) SetAllPass(re, im []float64) error {
	coeffs := make([]complex128, len(re))
	for i, r := range re {
		var v float64
		if i < len(im) {
			v = im[i]
		}

		coeffs[i] = complex(r, v)
	}

	return s.engine.SetSections(coeffs)
}

// LoadSignal attaches samples and rewinds the signal view.
func (s *Session) LoadSignal(samples []float64) {
	s.samples = append(s.samples[:0], samples...)
	s.padLive = false
	s.engine.AttachSignal(samples)
}

// Tick filters the next sample, as driven by the page timer. ok is false when
// there is nothing left to filter.
func (s *Session) Tick() (in, out float64, ok bool) {
	y, err := s.engine.ApplyFilter()
	if err != nil {
		return 0, 0, false
	}

	return s.samples[s.engine.SampleIndex()], y, true
}

// PadMove turns a horizontal pointer movement on the drawing pad into one
// live input sample and filters it. dx is the pointer delta in pixels, dt the
// time since the previous movement and elapsed the time since the pointer
// went down, both in seconds. A loaded file signal, or a pad signal with
// unfiltered samples left after a reset, is dropped first so that in and out
// always belong to the same sample.
func (s *Session) PadMove(dx, dt, elapsed float64) (in, out float64, err error) {
	if !s.padLive || s.engine.SampleIndex() != len(s.samples)-1 {
		s.engine.DetachSignal()
		s.samples = s.samples[:0]
		s.padLive = true
	}

	s.samples = append(s.samples, padSample(dx, dt, elapsed))
	s.engine.AppendSignal(s.samples[len(s.samples)-1])

	out, err = s.engine.ApplyFilter()
	if err != nil {
		return 0, 0, err
	}

	return s.samples[s.engine.SampleIndex()], out, nil
}

// padSample maps pointer speed to the frequency of a cosine of fixed
// amplitude: faster movement draws a higher pitch.
func padSample(dx, dt, elapsed float64) float64 {
	v := 1.0
	if dt != 0 {
		v = dx / dt
	}

	omega := math.Abs(v/padAmplitude) * 0.01

	return padAmplitude * math.Cos(omega*elapsed)
}

// Reset rewinds the signal view and detaches the all-pass sections.
func (s *Session) Reset() { s.engine.Reset() }

// Input returns the samples fed so far.
func (s *Session) Input() []float64 {
	n := s.engine.SampleIndex() + 1
	return append([]float64(nil), s.samples[:n]...)
}

// Output returns the filtered samples so far.
func (s *Session) Output() []float64 { return s.engine.Output() }

// State returns the engine state name.
func (s *Session) State() string { return s.engine.State().String() }

// Coefficients returns the real parts of the current transfer function.
func (s *Session) Coefficients() (b, a []float64) {
	c := s.engine.Coefficients()

	b = make([]float64, len(c.B))
	for i, v := range c.B {
		b[i] = real(v)
	}

	a = make([]float64, len(c.A))
	for i, v := range c.A {
		a[i] = real(v)
	}

	return b, a
}

// Response returns the frequency axis in Hz, the magnitude in dB and the
// phase in radians of the whole cascade on n points.
func (s *Session) Response(n int) (freqHz, magDB, phase []float64, err error) {
	r, err := s.engine.Response(n)
	if err != nil {
		return nil, nil, nil, err
	}

	return r.Hz(s.sampleRate), r.MagnitudeDB(), r.Phase, nil
}

// CorrectedPhase returns the phase of the primary filter with the all-pass
// sections applied, composed filter by filter.
func (s *Session) CorrectedPhase(n int) ([]float64, error) {
	r, err := s.engine.ComposedResponse(n)
	if err != nil {
		return nil, err
	}

	return r.Phase, nil
}

// AllPassPhase returns the phase contributed by the all-pass sections alone.
func (s *Session) AllPassPhase(n int) ([]float64, error) {
	return s.engine.SectionPhase(n)
}
