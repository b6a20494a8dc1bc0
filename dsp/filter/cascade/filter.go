package cascade

import (
	"github.com/cwbudde/algo-zplane/dsp/filter/allpass"
	"github.com/cwbudde/algo-zplane/dsp/filter/freqz"
	"github.com/cwbudde/algo-zplane/dsp/filter/zplane"
)

// Filter is one stage of a cascade. The only implementations are *Primary
// and allpass.Section.
type Filter interface {
	Zeros() []complex128
	Poles() []complex128
	Gain() complex128
	Response(n int) (freqz.Response, error)
}

var (
	_ Filter = (*Primary)(nil)
	_ Filter = allpass.Section{}
)

// Primary is the user-edited filter backed by a root set.
type Primary struct {
	set  *zplane.RootSet
	gain complex128
}

// NewPrimary wraps set with unity gain. A nil set starts empty.
func NewPrimary(set *zplane.RootSet) *Primary {
	if set == nil {
		set = zplane.NewRootSet()
	}

	return &Primary{set: set, gain: 1}
}

// Set returns the underlying root set for editing.
func (p *Primary) Set() *zplane.RootSet { return p.set }

// Zeros returns the current zeros, mirrors included.
func (p *Primary) Zeros() []complex128 { return p.set.List(zplane.Zero) }

// Poles returns the current poles, mirrors included.
func (p *Primary) Poles() []complex128 { return p.set.List(zplane.Pole) }

// Gain returns the numerator scale factor, 1 unless changed with SetGain.
func (p *Primary) Gain() complex128 { return p.gain }

// SetGain sets the numerator scale factor.
func (p *Primary) SetGain(g complex128) { p.gain = g }

// Response evaluates the primary filter alone on an n-point grid, in product
// form straight from the roots.
func (p *Primary) Response(n int) (freqz.Response, error) {
	return freqz.EvaluateZPK(p.Zeros(), p.Poles(), p.gain, n)
}

// Replace swaps in a new root set and gain, e.g. after importing a filter
// from coefficients. Handles issued by the old set no longer apply.
func (p *Primary) Replace(set *zplane.RootSet, gain complex128) {
	if set == nil {
		set = zplane.NewRootSet()
	}

	p.set = set
	p.gain = gain
}
