// Package signalio loads and saves mono test signals as CSV or WAV files.
// MP3 files can be loaded but not saved.
package signalio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrEmptySignal is returned when a file holds no samples.
	ErrEmptySignal = errors.New("signalio: empty signal")
	// ErrUnsupportedFormat is returned for unknown extensions and WAV
	// encodings that cannot be read.
	ErrUnsupportedFormat = errors.New("signalio: unsupported format")
)

// DefaultBitDepth is used when saving WAV files.
const DefaultBitDepth = 16

// Signal is a mono sample sequence. SampleRate is zero when the source
// format does not carry one.
type Signal struct {
	Samples    []float64
	SampleRate int
}

// LoadOption configures Load.
type LoadOption func(*loadConfig)

type loadConfig struct {
	column int
}

// WithColumn makes Load read CSV files column-wise: a header row followed by
// one sample per row taken from column col. By default the first row is the
// signal.
func WithColumn(col int) LoadOption {
	return func(cfg *loadConfig) {
		cfg.column = col
	}
}

// Load reads a signal from a .csv, .wav or .mp3 file.
func Load(path string, opts ...LoadOption) (Signal, error) {
	cfg := loadConfig{column: -1}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return Signal{}, fmt.Errorf("signalio: %w", err)
	}
	defer f.Close()

	switch ext(path) {
	case ".csv", ".txt":
		var x []float64
		if cfg.column >= 0 {
			x, err = ReadCSVColumn(f, cfg.column)
		} else {
			x, err = ReadCSV(f)
		}

		if err != nil {
			return Signal{}, fmt.Errorf("signalio: %s: %w", path, err)
		}

		return Signal{Samples: x}, nil
	case ".wav":
		s, err := ReadWAV(f)
		if err != nil {
			return Signal{}, fmt.Errorf("signalio: %s: %w", path, err)
		}

		return s, nil
	case ".mp3":
		s, err := ReadMP3(f)
		if err != nil {
			return Signal{}, fmt.Errorf("signalio: %s: %w", path, err)
		}

		return s, nil
	default:
		return Signal{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Save writes s to a .csv or .wav file. WAV files use DefaultBitDepth and
// fall back to 48 kHz when s has no sample rate.
func Save(path string, s Signal) (err error) {
	e := ext(path)
	if e != ".csv" && e != ".txt" && e != ".wav" {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("signalio: %w", err)
	}

	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("signalio: %w", cerr)
		}
	}()

	if e == ".wav" {
		sr := s.SampleRate
		if sr <= 0 {
			sr = 48000
		}

		return WriteWAV(f, s.Samples, sr, DefaultBitDepth)
	}

	return WriteCSV(f, s.Samples)
}

func ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
