package signalio

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-zplane/internal/testutil"
)

func TestReadCSVFirstRow(t *testing.T) {
	x, err := ReadCSV(strings.NewReader("1, -0.5,0.25,,\n9,9,9\n"))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, -0.5, 0.25}, x)
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		empty bool
	}{
		{name: "no rows", input: "", empty: true},
		{name: "blank fields", input: ", ,\n", empty: true},
		{name: "not a number", input: "1,abc\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Equal(t, tt.empty, errors.Is(err, ErrEmptySignal))
		})
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	x := testutil.DeterministicNoise(2, 1, 50)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, x))
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))

	got, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, x, got)
}

func TestWAVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signal.wav")
	x := testutil.DeterministicSine(0.01, 0.8, 400)

	require.NoError(t, Save(path, Signal{Samples: x, SampleRate: 44100}))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 44100, s.SampleRate)
	testutil.RequireSliceNearlyEqual(t, s.Samples, x, 1e-4)
}

func TestWAVClips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.wav")
	require.NoError(t, Save(path, Signal{Samples: []float64{2, -2, 0}}))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 48000, s.SampleRate)
	testutil.RequireSliceNearlyEqual(t, s.Samples, []float64{1, -1, 0}, 1e-4)
}

func TestCSVFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signal.CSV")
	require.NoError(t, Save(path, Signal{Samples: []float64{1, 0, 0}}))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 0}, s.Samples)
	assert.Zero(t, s.SampleRate)
}

func TestUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()

	require.ErrorIs(t, Save(filepath.Join(dir, "x.mp3"), Signal{Samples: []float64{1}}), ErrUnsupportedFormat)

	bogus := filepath.Join(dir, "bogus.wav")
	require.NoError(t, os.WriteFile(bogus, []byte("not riff data at all"), 0o600))

	_, err := Load(bogus)
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	other := filepath.Join(dir, "x.flac")
	require.NoError(t, os.WriteFile(other, nil, 0o600))

	_, err = Load(other)
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestReadCSVColumn(t *testing.T) {
	x, err := ReadCSVColumn(strings.NewReader("time,value\n0,1\n0.1, -0.5\n0.2,0.25\n"), 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, -0.5, 0.25}, x)

	_, err = ReadCSVColumn(strings.NewReader("time,value\n"), 1)
	require.ErrorIs(t, err, ErrEmptySignal)

	_, err = ReadCSVColumn(strings.NewReader("t,v\n0,1\n1\n"), 1)
	require.Error(t, err)

	_, err = ReadCSVColumn(strings.NewReader("t,v\n"), -1)
	require.Error(t, err)
}

func TestLoadWithColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.csv")
	require.NoError(t, os.WriteFile(path, []byte("t,v\n0,3\n1,4\n"), 0o600))

	s, err := Load(path, WithColumn(1))
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4}, s.Samples)

	s, err = Load(path, WithColumn(0))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1}, s.Samples)
}

func TestLeftChannel16(t *testing.T) {
	pcm := []byte{
		0x00, 0x40, 0xff, 0x7f, // left 16384, right 32767
		0x00, 0x80, 0x00, 0x00, // left -32768
		0x01, // partial frame
	}

	assert.Equal(t, []float64{0.5, -1}, leftChannel16(pcm))
}

func TestReadMP3RejectsEmptyInput(t *testing.T) {
	_, err := ReadMP3(bytes.NewReader(nil))
	require.Error(t, err)
}
