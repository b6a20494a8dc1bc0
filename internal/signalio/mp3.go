package signalio

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"
)

// ReadMP3 decodes an MP3 stream and returns its left channel scaled to
// [-1, 1]. The decoder always produces 16 bit little-endian stereo.
func ReadMP3(r io.Reader) (Signal, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return Signal{}, fmt.Errorf("mp3: %w", err)
	}

	pcm, err := io.ReadAll(dec)
	if err != nil {
		return Signal{}, fmt.Errorf("mp3: %w", err)
	}

	x := leftChannel16(pcm)
	if len(x) == 0 {
		return Signal{}, ErrEmptySignal
	}

	return Signal{Samples: x, SampleRate: dec.SampleRate()}, nil
}

// leftChannel16 extracts the left channel of interleaved 16 bit stereo PCM.
// A trailing partial frame is dropped.
func leftChannel16(pcm []byte) []float64 {
	const frame = 4

	out := make([]float64, len(pcm)/frame)
	for i := range out {
		v := int16(binary.LittleEndian.Uint16(pcm[i*frame:]))
		out[i] = float64(v) / 32768
	}

	return out
}
