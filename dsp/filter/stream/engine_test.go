package stream

import (
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-zplane/dsp/core"
	"github.com/cwbudde/algo-zplane/dsp/filter/cascade"
	"github.com/cwbudde/algo-zplane/dsp/filter/zplane"
	"github.com/cwbudde/algo-zplane/internal/log"
	"github.com/cwbudde/algo-zplane/internal/polyroot"
	"github.com/cwbudde/algo-zplane/internal/testutil"
)

func newTestEngine(set *zplane.RootSet) *Engine {
	return New(set, core.WithLogger(log.Discard()))
}

func drain(t *testing.T, e *Engine, n int) []float64 {
	t.Helper()

	out := make([]float64, n)
	for i := range out {
		y, err := e.ApplyFilter()
		require.NoError(t, err, "sample %d", i)
		out[i] = y
	}

	return out
}

func TestIdentityCascade(t *testing.T) {
	e := newTestEngine(nil)
	x := testutil.DeterministicNoise(11, 1, 32)
	e.AttachSignal(x)

	got := drain(t, e, len(x))
	testutil.RequireSliceNearlyEqual(t, got, x, 0)
	assert.Equal(t, Consumed, e.State())
}

func TestSingleRealPole(t *testing.T) {
	tests := []struct {
		name string
		pole complex128
		want []float64
	}{
		{name: "negative", pole: -0.5, want: []float64{1, -0.5, 0.25, -0.125}},
		{name: "positive", pole: 0.5, want: []float64{1, 0.5, 0.25, 0.125}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(nil)
			e.AddRoot(zplane.Pole, tt.pole, false)
			e.AttachSignal(testutil.Impulse(4, 0))

			got := drain(t, e, 4)
			testutil.RequireSliceNearlyEqual(t, got, tt.want, 1e-15)
		})
	}
}

func TestStateTransitions(t *testing.T) {
	e := newTestEngine(nil)
	assert.Equal(t, Idle, e.State())
	assert.Equal(t, -1, e.SampleIndex())

	_, err := e.ApplyFilter()
	require.ErrorIs(t, err, ErrNoSignal)

	e.AttachSignal(nil)
	assert.Equal(t, Idle, e.State())

	e.AttachSignal([]float64{1, 2})
	assert.Equal(t, Streaming, e.State())

	drain(t, e, 2)
	assert.Equal(t, Consumed, e.State())
	assert.Equal(t, 1, e.SampleIndex())

	_, err = e.ApplyFilter()
	require.ErrorIs(t, err, ErrSignalConsumed)
	assert.Equal(t, []float64{1, 2}, e.Output(), "failed step must not append output")

	e.Reset()
	assert.Equal(t, Streaming, e.State())

	e.DetachSignal()
	assert.Equal(t, Idle, e.State())
	assert.Empty(t, e.Session())
}

func TestApplyAll(t *testing.T) {
	e := newTestEngine(nil)
	e.AddRoot(zplane.Pole, 0.5, false)
	e.AttachSignal(testutil.Impulse(6, 0))

	first := drain(t, e, 2)

	rest, err := e.ApplyAll()
	require.NoError(t, err)
	testutil.RequireSliceNearlyEqual(t, append(first, rest...), testutil.Geometric(0.5, 6), 1e-15)

	_, err = e.ApplyAll()
	require.ErrorIs(t, err, ErrSignalConsumed)
}

func TestResetIdempotent(t *testing.T) {
	e := newTestEngine(nil)
	e.AddRoot(zplane.Zero, complex(0.2, 0.6), true)
	e.AddRoot(zplane.Pole, 0.7, false)
	require.NoError(t, e.SetSections([]complex128{0.3, -0.2}))

	x := testutil.DeterministicNoise(5, 1, 16)
	e.AttachSignal(x)
	drain(t, e, 5)

	e.Reset()
	once := snapshot(e)

	e.Reset()
	twice := snapshot(e)

	assert.Equal(t, once, twice)
	assert.Equal(t, -1, once.index)
	assert.Empty(t, once.output)
	assert.Empty(t, once.sections)
	assert.Equal(t, 0, once.inputs)
	assert.Equal(t, 0, once.outputs)
	assert.Equal(t, Streaming, once.state)
	assert.Len(t, e.Roots(zplane.Zero), 2, "reset keeps primary roots")
}

func TestResetIdempotentWithoutSignal(t *testing.T) {
	e := newTestEngine(nil)

	e.Reset()
	once := snapshot(e)

	e.Reset()
	twice := snapshot(e)

	assert.Equal(t, once, twice)
	assert.Equal(t, Idle, twice.state)
	assert.Equal(t, -1, twice.index)
	assert.Empty(t, twice.output)
	assert.Empty(t, e.Signal())
}

type engineSnapshot struct {
	state           State
	index           int
	output          []float64
	sections        []complex128
	inputs, outputs int
	session         string
}

func snapshot(e *Engine) engineSnapshot {
	in, out := e.HistoryLen()

	return engineSnapshot{
		state:    e.State(),
		index:    e.SampleIndex(),
		output:   e.Output(),
		sections: e.Sections(),
		inputs:   in,
		outputs:  out,
		session:  e.Session(),
	}
}

func TestResetReproducesOutput(t *testing.T) {
	e := newTestEngine(nil)
	e.AddRoot(zplane.Pole, complex(0.4, 0.5), true)
	e.AddRoot(zplane.Zero, -1, false)

	x := testutil.DeterministicNoise(9, 1, 24)
	e.AttachSignal(x)

	first, err := e.ApplyAll()
	require.NoError(t, err)

	e.Reset()

	second, err := e.ApplyAll()
	require.NoError(t, err)
	testutil.RequireSliceNearlyEqual(t, second, first, 0)
}

func TestHistoryTracksCascadeOrder(t *testing.T) {
	e := newTestEngine(nil)
	e.AttachSignal(testutil.DeterministicNoise(1, 1, 8))

	drain(t, e, 1)
	in, out := e.HistoryLen()
	assert.Equal(t, 1, in)
	assert.Equal(t, 0, out)

	p := e.AddRoot(zplane.Pole, 0.5, false)
	drain(t, e, 1)
	in, out = e.HistoryLen()
	assert.Equal(t, 1, in)
	assert.Equal(t, 1, out)

	e.AddRoot(zplane.Zero, complex(0.1, 0.9), true)
	drain(t, e, 1)
	in, out = e.HistoryLen()
	assert.Equal(t, 3, in)
	assert.Equal(t, 1, out)

	require.NoError(t, e.SetSections([]complex128{0.25}))
	drain(t, e, 1)
	in, out = e.HistoryLen()
	assert.Equal(t, 4, in)
	assert.Equal(t, 2, out)

	require.NoError(t, e.RemoveRoot(p))
	e.Reset()
	drain(t, e, 1)
	in, out = e.HistoryLen()
	assert.Equal(t, 3, in)
	assert.Equal(t, 0, out)
}

func TestEditTakesEffectAtNextStep(t *testing.T) {
	e := newTestEngine(nil)
	e.AttachSignal([]float64{1, 1, 1})

	drain(t, e, 1)
	e.AddRoot(zplane.Pole, 0.5, false)

	// The previous output becomes the first output history entry.
	got := drain(t, e, 2)
	testutil.RequireSliceNearlyEqual(t, got, []float64{1.5, 1.75}, 1e-15)
}

func TestMatchesBatchFilter(t *testing.T) {
	set := zplane.NewRootSet()
	for _, r := range testutil.RandomRoots(21, 0.95, 3) {
		set.Add(zplane.Pole, r, true)
	}

	for _, r := range testutil.RandomRoots(22, 1.2, 2) {
		set.Add(zplane.Zero, r, true)
	}

	set.Add(zplane.Zero, -0.3, false)

	e := newTestEngine(set)
	e.SetGain(0.5)
	require.NoError(t, e.SetSections([]complex128{0.6, -0.45}))

	coeffs := e.Coefficients()
	b, imB := polyroot.RealParts(coeffs.B)
	a, imA := polyroot.RealParts(coeffs.A)
	require.Less(t, imB, 1e-12)
	require.Less(t, imA, 1e-12)

	x := testutil.DeterministicNoise(23, 1, 256)
	e.AttachSignal(x)

	got, err := e.ApplyAll()
	require.NoError(t, err)

	testutil.RequireFinite(t, got)
	testutil.RequireSliceNearlyEqual(t, got, testutil.DirectForm(b, a, x), 1e-9)
}

func TestDegenerateStep(t *testing.T) {
	inputs := []float64{0.5}
	outputs := []float64{0.25}

	for _, a := range [][]complex128{nil, {0, 1}} {
		_, err := step(cascade.Coefficients{B: []complex128{1}, A: a}, 1, 0.75, &inputs, &outputs)
		require.ErrorIs(t, err, ErrDegenerateCascade)
		assert.Equal(t, []float64{0.5}, inputs)
		assert.Equal(t, []float64{0.25}, outputs)
	}
}

func TestStepScalesByLeadingCoefficient(t *testing.T) {
	var inputs, outputs []float64

	y, err := step(cascade.Coefficients{B: []complex128{2, 2}, A: []complex128{2}}, 3, 0, &inputs, &outputs)
	require.NoError(t, err)
	assert.InDelta(t, 3, real(y), 1e-15)
	assert.Equal(t, []float64{3, 0}, inputs)
	assert.Empty(t, outputs)
}

func TestPrecisionLossWarning(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	e := New(nil, core.WithLogger(logger))

	// A lone complex zero has no conjugate partner, so B is complex.
	e.AddRoot(zplane.Zero, complex(0, 0.5), false)
	e.AttachSignal([]float64{1, 1})
	hook.Reset()

	y, err := e.ApplyFilter()
	require.NoError(t, err)
	assert.InDelta(t, 1, y, 1e-15)
	assert.Empty(t, hook.AllEntries())

	y, err = e.ApplyFilter()
	require.NoError(t, err)
	assert.InDelta(t, 1, y, 1e-15, "real part is kept")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, 1, entry.Data["sample"])
	assert.InDelta(t, -0.5, entry.Data["imag"], 1e-15)
	assert.Equal(t, e.Session(), entry.Data["session"])
}

func TestSessions(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	e := New(nil, core.WithLogger(logger))

	e.AttachSignal([]float64{1})
	first := e.Session()
	require.NotEmpty(t, first)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, first, entry.Data["session"])
	assert.Equal(t, 1, entry.Data["samples"])

	require.NoError(t, e.SetSections([]complex128{0.5}))
	e.AttachSignal([]float64{1, 2})
	assert.NotEqual(t, first, e.Session())
	assert.Equal(t, []complex128{0.5}, e.Sections(), "attaching a signal keeps sections")
}

func TestAttachSignalCopies(t *testing.T) {
	e := newTestEngine(nil)
	x := []float64{1, 2, 3}
	e.AttachSignal(x)
	x[0] = 99

	assert.Equal(t, []float64{1, 2, 3}, e.Signal())
}

func TestRemoveNearest(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	e := New(nil, core.WithLogger(logger))
	e.AddRoot(zplane.Pole, complex(0.5, 0.5), true)

	assert.False(t, e.RemoveNearest(zplane.Pole, -0.5, 0.1))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.DebugLevel, hook.LastEntry().Level)
	assert.Len(t, e.Roots(zplane.Pole), 2)

	// Clicking the mirror removes the pair.
	assert.True(t, e.RemoveNearest(zplane.Pole, complex(0.5, -0.49), 0.1))
	assert.Empty(t, e.Roots(zplane.Pole))
}

func TestMoveAndClearRoots(t *testing.T) {
	e := newTestEngine(nil)
	h := e.AddRoot(zplane.Zero, complex(0.3, 0.3), true)
	e.AddRoot(zplane.Pole, 0.2, false)

	require.NoError(t, e.MoveRoot(h, complex(-0.1, 0.8)))

	got, err := e.NearestRoot(zplane.Zero, complex(-0.1, -0.8), 0.01)
	require.NoError(t, err)
	assert.NotEqual(t, h, got, "nearest should be the mirror")

	require.ErrorIs(t, e.MoveRoot(zplane.Handle(99), 0), zplane.ErrInvalidHandle)

	e.ClearRoots(zplane.Zero)
	assert.Empty(t, e.Roots(zplane.Zero))
	assert.Len(t, e.Roots(zplane.Pole), 1)
}

func TestSetSectionsRejectsZero(t *testing.T) {
	e := newTestEngine(nil)
	require.NoError(t, e.SetSections([]complex128{0.4}))

	err := e.SetSections([]complex128{0.2, 0})
	require.Error(t, err)
	assert.Equal(t, []complex128{0.4}, e.Sections())
}

func TestImportCoefficients(t *testing.T) {
	e := newTestEngine(nil)
	require.NoError(t, e.ImportCoefficients([]complex128{2, -1}, []complex128{1, -0.5}))

	c := e.Coefficients()
	testutil.RequireComplexNearlyEqual(t, c.B, []complex128{2, -1}, 1e-12)
	testutil.RequireComplexNearlyEqual(t, c.A, []complex128{1, -0.5}, 1e-12)

	require.Error(t, e.ImportCoefficients(nil, []complex128{1}))
}

func TestResponseUsesConfiguredGrid(t *testing.T) {
	e := New(nil, core.WithLogger(log.Discard()), core.WithGridSize(17))

	r, err := e.Response(0)
	require.NoError(t, err)
	assert.Equal(t, 17, r.Len())

	e.AddRoot(zplane.Pole, 0.5, false)
	require.NoError(t, e.SetSections([]complex128{0.3}))

	direct, err := e.Response(33)
	require.NoError(t, err)

	composed, err := e.ComposedResponse(33)
	require.NoError(t, err)
	testutil.RequireSliceNearlyEqual(t, composed.Magnitude, direct.Magnitude, 1e-9)

	phase, err := e.SectionPhase(0)
	require.NoError(t, err)
	assert.Len(t, phase, 17)
	assert.True(t, e.IsStable())
}

func TestConcurrentEditsAndSteps(t *testing.T) {
	e := newTestEngine(nil)
	e.AttachSignal(testutil.DeterministicNoise(4, 1, 512))

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()

		for range 512 {
			if _, err := e.ApplyFilter(); err != nil {
				return
			}
		}
	}()

	go func() {
		defer wg.Done()

		h := e.AddRoot(zplane.Pole, complex(0.2, 0.3), true)
		for i := range 100 {
			_ = e.MoveRoot(h, complex(0.2, 0.3+float64(i)*0.005))
		}
	}()

	wg.Wait()
	testutil.RequireFinite(t, e.Output())
}

func TestAppendSignal(t *testing.T) {
	e := newTestEngine(nil)
	e.AddRoot(zplane.Pole, 0.5, false)

	e.AppendSignal()
	assert.Equal(t, Idle, e.State())

	e.AppendSignal(1)
	session := e.Session()
	require.NotEmpty(t, session)

	drain(t, e, 1)
	assert.Equal(t, Consumed, e.State())

	e.AppendSignal(0, 0)
	assert.Equal(t, Streaming, e.State())
	assert.Equal(t, session, e.Session(), "appending keeps the session")

	got := drain(t, e, 2)
	testutil.RequireSliceNearlyEqual(t, got, []float64{0.5, 0.25}, 1e-15)
}

func TestSectionGainScalesStream(t *testing.T) {
	e := newTestEngine(nil)
	require.NoError(t, e.SetSections([]complex128{0.5}))
	e.AttachSignal(testutil.Impulse(3, 0))

	// b = [-0.5, 1], a = [1, -0.5]; a monic numerator would start at 1.
	y := drain(t, e, 3)
	testutil.RequireSliceNearlyEqual(t, y, []float64{-0.5, 0.75, 0.375}, 1e-15)
}
