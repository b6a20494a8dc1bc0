package signalio

import (
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// ReadWAV decodes a PCM WAV stream and returns its first channel scaled to
// [-1, 1].
func ReadWAV(r io.ReadSeeker) (Signal, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return Signal{}, fmt.Errorf("%w: not a valid wav file", ErrUnsupportedFormat)
	}

	bitDepth := int(dec.BitDepth)
	if bitDepth != 16 && bitDepth != 24 && bitDepth != 32 {
		return Signal{}, fmt.Errorf("%w: %d bit wav", ErrUnsupportedFormat, bitDepth)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return Signal{}, fmt.Errorf("wav: %w", err)
	}

	chans := buf.Format.NumChannels
	if chans < 1 || len(buf.Data) < chans {
		return Signal{}, ErrEmptySignal
	}

	scale := 1 / math.Exp2(float64(bitDepth-1))

	out := make([]float64, len(buf.Data)/chans)
	for i := range out {
		out[i] = float64(buf.Data[i*chans]) * scale
	}

	return Signal{Samples: out, SampleRate: int(dec.SampleRate)}, nil
}

// WriteWAV encodes x as a mono PCM WAV stream. Samples outside [-1, 1] are
// clipped.
func WriteWAV(w io.WriteSeeker, x []float64, sampleRate, bitDepth int) error {
	if bitDepth != 16 && bitDepth != 24 && bitDepth != 32 {
		return fmt.Errorf("%w: %d bit wav", ErrUnsupportedFormat, bitDepth)
	}

	full := math.Exp2(float64(bitDepth-1)) - 1

	data := make([]int, len(x))
	for i, v := range x {
		data[i] = int(math.Round(math.Max(-1, math.Min(1, v)) * full))
	}

	enc := wav.NewEncoder(w, sampleRate, bitDepth, 1, 1)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  sampleRate,
		},
		Data:           data,
		SourceBitDepth: bitDepth,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wav: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("wav: %w", err)
	}

	return nil
}
