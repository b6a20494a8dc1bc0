package stream

import (
	"errors"
	"math"
	"sync"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-zplane/dsp/core"
	"github.com/cwbudde/algo-zplane/dsp/filter/cascade"
	"github.com/cwbudde/algo-zplane/dsp/filter/freqz"
	"github.com/cwbudde/algo-zplane/dsp/filter/zplane"
	"github.com/cwbudde/algo-zplane/internal/log"
)

var (
	// ErrNoSignal is returned when a step is requested without a signal.
	ErrNoSignal = errors.New("stream: no signal attached")
	// ErrSignalConsumed is returned when every sample has been filtered.
	ErrSignalConsumed = errors.New("stream: signal consumed")
	// ErrDegenerateCascade is returned when the leading denominator
	// coefficient is zero, so the recurrence has no solution.
	ErrDegenerateCascade = errors.New("stream: degenerate cascade")
)

// Engine filters an attached signal sample by sample through a cascade whose
// roots and sections may change between steps.
type Engine struct {
	mu sync.Mutex

	cfg     core.ProcessorConfig
	logger  logrus.FieldLogger
	cascade *cascade.Cascade

	signal   []float64
	index    int // last consumed sample, -1 before the first step
	inputs   []float64
	outputs  []float64
	last     float64
	filtered []float64
	session  string
}

// New returns an idle engine whose primary filter edits primary. A nil
// primary starts empty.
func New(primary *zplane.RootSet, opts ...core.ProcessorOption) *Engine {
	cfg := core.ApplyProcessorOptions(opts...)

	logger := cfg.Logger
	if logger == nil {
		logger = log.GetLogger()
	}

	return &Engine{
		cfg:     cfg,
		logger:  logger,
		cascade: cascade.New(cascade.NewPrimary(primary)),
		index:   -1,
	}
}

// Config returns the engine configuration.
func (e *Engine) Config() core.ProcessorConfig {
	return e.cfg
}

// AttachSignal replaces the signal with a copy of samples and starts a new
// session. All-pass sections stay attached.
func (e *Engine) AttachSignal(samples []float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.signal = append([]float64(nil), samples...)
	e.resetStream()
	e.session = xid.New().String()
	sessionsStarted.Inc()

	e.logger.WithFields(logrus.Fields{
		"session": e.session,
		"samples": len(e.signal),
	}).Info("signal attached")
}

// AppendSignal extends the signal with live samples without touching the
// filter state. Appending to an idle engine starts a new session.
func (e *Engine) AppendSignal(samples ...float64) {
	if len(samples) == 0 {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.signal) == 0 {
		e.resetStream()
		e.session = xid.New().String()
		sessionsStarted.Inc()
		e.logger.WithField("session", e.session).Info("live signal started")
	}

	e.signal = append(e.signal, samples...)
}

// DetachSignal drops the signal and any output; the engine becomes Idle.
func (e *Engine) DetachSignal() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.signal = nil
	e.session = ""
	e.resetStream()
}

// Signal returns a copy of the attached signal.
func (e *Engine) Signal() []float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return append([]float64(nil), e.signal...)
}

// ApplyFilter filters the next sample and returns it. Coefficients are
// derived from the cascade as it is at the time of the call, and both
// histories are resized to match them before the recurrence is evaluated.
//
// A complex cascade without conjugate symmetry yields a complex output; only
// the real part is kept and a warning is logged when the imaginary part
// exceeds the configured tolerance.
func (e *Engine) ApplyFilter() (float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.applyLocked()
}

// ApplyAll filters every remaining sample and returns the samples produced
// by this call.
func (e *Engine) ApplyAll() ([]float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkStep(); err != nil {
		return nil, err
	}

	out := make([]float64, 0, len(e.signal)-e.index-1)
	for e.stateLocked() == Streaming {
		y, err := e.applyLocked()
		if err != nil {
			return out, err
		}

		out = append(out, y)
	}

	return out, nil
}

func (e *Engine) checkStep() error {
	switch e.stateLocked() {
	case Idle:
		return ErrNoSignal
	case Consumed:
		return ErrSignalConsumed
	default:
		return nil
	}
}

func (e *Engine) applyLocked() (float64, error) {
	if err := e.checkStep(); err != nil {
		return 0, err
	}

	coeffs := e.cascade.RecomputeCoefficients()
	x := e.signal[e.index+1]

	y, err := step(coeffs, x, e.last, &e.inputs, &e.outputs)
	if err != nil {
		stepsRejected.Inc()
		e.logger.WithField("session", e.session).WithError(err).Error("filter step rejected")
		return 0, err
	}

	e.index++

	if im := imag(y); math.Abs(im) > e.cfg.ImagTolerance*math.Max(1, math.Abs(real(y))) {
		precisionWarnings.Inc()
		e.logger.WithFields(logrus.Fields{
			"session": e.session,
			"sample":  e.index,
			"imag":    im,
		}).Warn("output has a non-negligible imaginary part, keeping the real part")
	}

	e.last = real(y)
	e.filtered = append(e.filtered, e.last)
	samplesFiltered.Inc()

	return e.last, nil
}

// step evaluates one sample of the direct-form recurrence. The histories are
// newest first and are only updated when the step succeeds.
func step(c cascade.Coefficients, x, prev float64, inputs, outputs *[]float64) (complex128, error) {
	if len(c.A) == 0 || c.A[0] == 0 {
		return 0, ErrDegenerateCascade
	}

	*inputs = core.ShiftIn(*inputs, x, len(c.B))
	*outputs = core.ShiftIn(*outputs, prev, len(c.A)-1)

	return (dot(*inputs, c.B) - dot(*outputs, c.A[1:])) / c.A[0], nil
}

func dot(h []float64, c []complex128) complex128 {
	var sum complex128
	for i, v := range h {
		sum += complex(v, 0) * c[i]
	}

	return sum
}

// Reset clears the sample index, both histories and the output, and detaches
// all all-pass sections. The signal and the primary roots are kept. Calling
// Reset twice is the same as calling it once.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.resetStream()
	e.cascade.ClearSections()
	e.logger.WithField("session", e.session).Debug("engine reset")
}

func (e *Engine) resetStream() {
	e.index = -1
	e.inputs = e.inputs[:0]
	e.outputs = e.outputs[:0]
	e.last = 0
	e.filtered = nil
}

// State reports where the engine is in the current session.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.stateLocked()
}

func (e *Engine) stateLocked() State {
	switch {
	case len(e.signal) == 0:
		return Idle
	case e.index >= len(e.signal)-1:
		return Consumed
	default:
		return Streaming
	}
}

// SampleIndex returns the index of the last filtered sample, -1 before the
// first step.
func (e *Engine) SampleIndex() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.index
}

// Output returns a copy of the samples filtered so far.
func (e *Engine) Output() []float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return append([]float64(nil), e.filtered...)
}

// Session returns the ID of the current signal session, empty when no signal
// has been attached.
func (e *Engine) Session() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.session
}

// HistoryLen returns the current lengths of the input and output histories.
func (e *Engine) HistoryLen() (inputs, outputs int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return len(e.inputs), len(e.outputs)
}

// Coefficients returns the transfer function of the current cascade.
func (e *Engine) Coefficients() cascade.Coefficients {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.cascade.RecomputeCoefficients()
}

// Response evaluates the current cascade on an n-point grid. n <= 0 uses the
// configured grid size.
func (e *Engine) Response(n int) (freqz.Response, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.cascade.Response(e.gridSize(n))
}

// ComposedResponse is like Response but composes the per-filter responses.
func (e *Engine) ComposedResponse(n int) (freqz.Response, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.cascade.ComposedResponse(e.gridSize(n))
}

// SectionPhase returns the summed phase of the all-pass sections alone.
func (e *Engine) SectionPhase(n int) ([]float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.cascade.SectionPhase(e.gridSize(n))
}

func (e *Engine) gridSize(n int) int {
	if n <= 0 {
		return e.cfg.GridSize
	}

	return n
}

// IsStable reports whether every pole of the cascade lies inside the unit
// circle.
func (e *Engine) IsStable() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.cascade.IsStable()
}
