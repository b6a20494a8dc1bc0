package core

import "github.com/sirupsen/logrus"

// DefaultGridSize is the default number of frequency response points over
// [0, pi], i.e. a spacing of pi/512.
const DefaultGridSize = 513

// DefaultImagTolerance is the default relative threshold above which the
// imaginary part of a computed output sample is reported as precision loss.
const DefaultImagTolerance = 1e-9

// ProcessorConfig defines common processing settings shared by the streaming
// engine and the tools built on it.
type ProcessorConfig struct {
	SampleRate    float64
	GridSize      int
	ImagTolerance float64
	Logger        logrus.FieldLogger
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns sensible defaults for interactive use.
// A nil Logger means the caller picks its own default.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate:    48000,
		GridSize:      DefaultGridSize,
		ImagTolerance: DefaultImagTolerance,
	}
}

// WithSampleRate sets the sample rate used for Hz frequency axes.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithGridSize sets the default frequency response resolution.
func WithGridSize(n int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if n > 0 {
			cfg.GridSize = n
		}
	}
}

// WithImagTolerance sets the precision loss threshold.
func WithImagTolerance(tol float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if tol > 0 {
			cfg.ImagTolerance = tol
		}
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l logrus.FieldLogger) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if l != nil {
			cfg.Logger = l
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
