package webdemo

import "fmt"

// presetSections is the all-pass library offered in the correction panel:
// eleven real coefficients followed by eleven complex ones. Some complex
// entries lie outside the unit circle and give unstable sections.
var presetSections = []complex128{
	0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 0.1, 0.6,
	complex(0.1, 0.5), complex(0.2, 0.2), complex(0.3, 0.7), complex(0.4, 1.3),
	complex(0.5, 1.5), complex(0.6, 0.4), complex(0.7, 0.5), complex(0.8, 0.9),
	complex(0.9, 1.1), complex(0.3, 1.7), complex(0.5, 1.3),
}

// PresetSections returns the preset all-pass coefficients split into real
// and imaginary parts, in the order SelectPresets indexes them.
func PresetSections() (re, im []float64) {
	re = make([]float64, len(presetSections))
	im = make([]float64, len(presetSections))

	for i, a := range presetSections {
		re[i], im[i] = real(a), imag(a)
	}

	return re, im
}

// SelectPresets attaches the ticked presets as the all-pass sections,
// replacing any previous selection. An empty selection detaches them all.
func (s *Session) SelectPresets(indices []int) error {
	re := make([]float64, len(indices))
	im := make([]float64, len(indices))

	for i, idx := range indices {
		if idx < 0 || idx >= len(presetSections) {
			return fmt.Errorf("preset index out of range: %d", idx)
		}

		re[i], im[i] = real(presetSections[idx]), imag(presetSections[idx])
	}

	return s.SetAllPass(re, im)
}
