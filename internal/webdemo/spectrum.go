package webdemo

import (
	"fmt"
	"math"
	"math/bits"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-zplane/dsp/core"
)

const spectrumFloorDB = -130

// OutputSpectrum returns the magnitude spectrum in dB of the most recent
// fftSize filtered samples, Hann windowed and normalized by the window gain.
// Fewer samples than fftSize are zero-padded at the front. The result has
// fftSize/2+1 bins from DC to Nyquist.
func (s *Session) OutputSpectrum(fftSize int) ([]float64, error) {
	if fftSize < 2 || bits.OnesCount(uint(fftSize)) != 1 {
		return nil, fmt.Errorf("fft size must be a power of two >= 2: %d", fftSize)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("spectrum init fft plan: %w", err)
	}

	y := s.engine.Output()
	if len(y) > fftSize {
		y = y[len(y)-fftSize:]
	}

	in := make([]complex128, fftSize)
	offset := fftSize - len(y)
	gain := 0.0

	for i := range in {
		w := 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(fftSize))
		gain += w

		if i >= offset {
			in[i] = complex(w*y[i-offset], 0)
		}
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("spectrum forward fft: %w", err)
	}

	db := make([]float64, fftSize/2+1)
	for k := range db {
		db[k] = math.Max(spectrumFloorDB, core.LinearToDB(cmplx.Abs(out[k])/gain))
	}

	return db, nil
}
