package core

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestApplyProcessorOptions(t *testing.T) {
	logger := logrus.New()
	cfg := ApplyProcessorOptions(
		WithSampleRate(96000),
		WithGridSize(1025),
		WithImagTolerance(1e-6),
		WithLogger(logger),
	)
	if cfg.SampleRate != 96000 {
		t.Fatalf("sample rate = %v, want 96000", cfg.SampleRate)
	}
	if cfg.GridSize != 1025 {
		t.Fatalf("grid size = %d, want 1025", cfg.GridSize)
	}
	if cfg.ImagTolerance != 1e-6 {
		t.Fatalf("imag tolerance = %v, want 1e-6", cfg.ImagTolerance)
	}
	if cfg.Logger != logger {
		t.Fatal("logger not applied")
	}
}

func TestInvalidOptionsIgnored(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(0), WithGridSize(-1), WithImagTolerance(0), WithLogger(nil), nil)
	def := DefaultProcessorConfig()
	if cfg != def {
		t.Fatalf("cfg = %#v, want %#v", cfg, def)
	}
}
