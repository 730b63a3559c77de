package audiofile

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/downshift-audio/downshift"
)

func sineBuffer(channels, frames, rate int) *downshift.Buffer {
	buf := downshift.NewBuffer(channels, frames, rate)
	for ch := range channels {
		freq := 440.0 * float64(ch+1)
		for i := range frames {
			buf.Data[ch][i] = 0.5 * math.Sin(2*math.Pi*freq*float64(i)/float64(rate))
		}
	}
	return buf
}

func TestWAV_WriteReadRoundTrip(t *testing.T) {
	for _, tt := range []struct {
		name     string
		channels int
		bitDepth int
		tol      float64
	}{
		{"mono_16bit", 1, 16, 1.0 / maxInt16},
		{"stereo_16bit", 2, 16, 1.0 / maxInt16},
		{"stereo_24bit", 2, 24, 1.0 / maxInt24},
	} {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tone.wav")
			src := sineBuffer(tt.channels, 2048, 44100)

			require.NoError(t, WriteWAV(path, src, tt.bitDepth))

			got, bitDepth, err := ReadWAV(path)
			require.NoError(t, err)
			assert.Equal(t, tt.bitDepth, bitDepth)
			require.Equal(t, tt.channels, got.NumChannels())
			require.Equal(t, 2048, got.Frames())
			assert.Equal(t, 44100, got.SampleRate)

			for ch := range tt.channels {
				for i := range 2048 {
					require.InDelta(t, src.Data[ch][i], got.Data[ch][i], tt.tol,
						"channel %d frame %d", ch, i)
				}
			}
		})
	}
}

func TestWAV_ClipsOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hot.wav")
	src := downshift.NewBuffer(1, 16, 44100)
	for i := range src.Data[0] {
		src.Data[0][i] = 1.5
	}

	require.NoError(t, WriteWAV(path, src, 16))

	got, _, err := ReadWAV(path)
	require.NoError(t, err)
	for _, s := range got.Data[0] {
		assert.InDelta(t, 1.0, s, 1.0/maxInt16)
	}
}

func TestWAV_RejectsUnsupportedBitDepth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "odd.wav")
	err := WriteWAV(path, sineBuffer(1, 64, 44100), 12)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestRead_DispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tone.WAV")
	require.NoError(t, WriteWAV(path, sineBuffer(1, 256, 22050), 16))

	got, bitDepth, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, 16, bitDepth)
	assert.Equal(t, 22050, got.SampleRate)

	_, _, err = Read(filepath.Join(dir, "tone.ogg"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("a.wav"))
	assert.True(t, IsSupported("a.MP3"))
	assert.False(t, IsSupported("a.flac"))
	assert.False(t, IsSupported("a"))
}
