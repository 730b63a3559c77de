package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/downshift-audio/downshift/internal/testutil"
)

const (
	testRate       = 44100
	testFrames1k   = 1000
	testFrames4k   = 4096
	nullTestAbsTol = 1e-9
)

// TestFFTResampler_FrameCount verifies output length is round(n * ratio).
func TestFFTResampler_FrameCount(t *testing.T) {
	tests := []struct {
		name   string
		frames int
		ratio  float64
		want   int
	}{
		{"upsample_1.3x", 1000, 1.3, 1300},
		{"downsample_0.5x", 1000, 0.5, 500},
		{"fractional_up", 44100, 22050.0 / 17000.0, 57200},
		{"fractional_down", 1000, 0.7709750566893424, 771},
		{"near_unity", 1000, 1.0004, 1000},
	}

	r := NewAccurate()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := testutil.Sine(440, testRate, tt.frames, 0.5)
			out, err := r.Resample(input, tt.ratio)
			require.NoError(t, err)
			assert.Len(t, out, tt.want)
			testutil.AssertNoNaNOrInf(t, out)
		})
	}
}

// TestFFTResampler_NullTest verifies the exact-inversion guarantee:
// stretching and compressing back reproduces the input at the sample
// level, limited only by floating-point rounding.
func TestFFTResampler_NullTest(t *testing.T) {
	tests := []struct {
		name   string
		frames int
		ratio  float64
	}{
		{"ratio_1.3", testFrames1k, 1.3},
		{"ratio_2.0", testFrames1k, 2.0},
		{"odd_length", 999, 1.5},
		{"spectral_downshift_ratio", testFrames4k, 22050.0 / 17000.0},
	}

	r := NewAccurate()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := testutil.MultiTone(
				[]float64{220, 997, 3571, 12800}, testRate, tt.frames, 0.8)

			stretched, err := r.Resample(input, tt.ratio)
			require.NoError(t, err)

			restored, err := r.Resample(stretched, 1.0/tt.ratio)
			require.NoError(t, err)

			require.Len(t, restored, tt.frames)
			diff := testutil.MaxAbsDiff(input, restored)
			assert.Less(t, diff, nullTestAbsTol,
				"round-trip error %e not at machine-epsilon scale", diff)
		})
	}
}

// TestFFTResampler_BinExactSine verifies that a sine landing exactly on
// an FFT bin survives a down-then-up round trip when it stays below the
// reduced Nyquist.
func TestFFTResampler_BinExactSine(t *testing.T) {
	const (
		frames = 1024
		bin    = 32
	)

	// Exactly bin cycles over the buffer: all energy in one coefficient.
	input := make([]float64, frames)
	for i := range input {
		input[i] = math.Sin(2.0 * math.Pi * float64(bin) * float64(i) / frames)
	}

	r := NewAccurate()
	down, err := r.Resample(input, 0.5)
	require.NoError(t, err)
	require.Len(t, down, frames/2)

	up, err := r.Resample(down, 2.0)
	require.NoError(t, err)
	require.Len(t, up, frames)

	assert.Less(t, testutil.MaxAbsDiff(input, up), nullTestAbsTol)
}

// TestFFTResampler_DCPreserved verifies a constant signal stays constant.
func TestFFTResampler_DCPreserved(t *testing.T) {
	const level = 0.25

	input := make([]float64, testFrames1k)
	for i := range input {
		input[i] = level
	}

	r := NewAccurate()
	out, err := r.Resample(input, 1.3)
	require.NoError(t, err)

	for i, v := range out {
		require.InDelta(t, level, v, 1e-9, "sample %d", i)
	}
}

// TestFFTResampler_IdentityRatio verifies ratio 1 returns a fresh copy.
func TestFFTResampler_IdentityRatio(t *testing.T) {
	input := testutil.Sine(440, testRate, testFrames1k, 0.5)

	r := NewAccurate()
	out, err := r.Resample(input, 1.0)
	require.NoError(t, err)

	assert.Equal(t, input, out)
	out[0] = 42 // must not alias the input
	assert.NotEqual(t, input[0], out[0])
}

// TestFFTResampler_Errors covers the failure modes.
func TestFFTResampler_Errors(t *testing.T) {
	r := NewAccurate()
	valid := testutil.Sine(440, testRate, testFrames1k, 0.5)

	t.Run("zero_ratio", func(t *testing.T) {
		_, err := r.Resample(valid, 0)
		assert.ErrorIs(t, err, ErrUnsupportedRatio)
	})

	t.Run("negative_ratio", func(t *testing.T) {
		_, err := r.Resample(valid, -0.5)
		assert.ErrorIs(t, err, ErrUnsupportedRatio)
	})

	t.Run("short_buffer", func(t *testing.T) {
		_, err := r.Resample(make([]float64, MinAccurateInput-1), 1.3)
		assert.ErrorIs(t, err, ErrBufferTooShort)
	})

	t.Run("vanishing_output", func(t *testing.T) {
		_, err := r.Resample(valid, 1e-5)
		assert.ErrorIs(t, err, ErrUnsupportedRatio)
	})
}
