package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/downshift-audio/downshift/internal/testutil"
)

const (
	// SNR measured away from the buffer edges, where FIR transients live.
	snrEdgeMargin = 1500
	minRoundTrip  = 60.0 // dB

	testToneHz    = 1000.0
	testSNRFrames = 8192
)

// TestSincResampler_FrameCount verifies output length is round(n * ratio).
func TestSincResampler_FrameCount(t *testing.T) {
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
	}

	r := NewFast()
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

// TestSincResampler_RoundTripSNR verifies the bounded-error guarantee:
// a stretch-then-compress round trip of a passband tone reconstructs
// the original above 60 dB SNR. The error is allowed to be nonzero;
// this is explicitly not a null test.
func TestSincResampler_RoundTripSNR(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
	}{
		{"cutoff_17000", 22050.0 / 17000.0},
		{"cutoff_11025", 2.0},
		{"cutoff_8000", 22050.0 / 8000.0},
	}

	r := NewFast()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := testutil.Sine(testToneHz, testRate, testSNRFrames, 0.8)

			stretched, err := r.Resample(input, tt.ratio)
			require.NoError(t, err)

			restored, err := r.Resample(stretched, 1.0/tt.ratio)
			require.NoError(t, err)
			require.InDelta(t, testSNRFrames, len(restored), 1)

			snr := testutil.SNR(input, restored, snrEdgeMargin)
			assert.Greater(t, snr, minRoundTrip,
				"round-trip SNR %.1f dB below %.0f dB floor", snr, minRoundTrip)
		})
	}
}

// TestSincResampler_DCPreserved verifies unity DC gain away from edges.
func TestSincResampler_DCPreserved(t *testing.T) {
	const level = 0.5

	input := make([]float64, 4096)
	for i := range input {
		input[i] = level
	}

	r := NewFast()
	out, err := r.Resample(input, 0.7709750566893424)
	require.NoError(t, err)

	// Edge samples see zero padding; check the interior only.
	for i := 300; i < len(out)-300; i++ {
		require.InDelta(t, level, out[i], 1e-3, "sample %d", i)
	}
}

// TestSincResampler_Antialiasing verifies that content above the output
// Nyquist is strongly attenuated when downsampling.
func TestSincResampler_Antialiasing(t *testing.T) {
	const (
		ratio       = 0.25   // output Nyquist at 0.125 of input rate
		aliasToneHz = 16000  // far above 44100*0.125 = 5512 Hz
		maxResidual = 5e-3   // ~-45 dB against the 0.8 input peak
	)

	input := testutil.Sine(aliasToneHz, testRate, 8192, 0.8)

	r := NewFast()
	out, err := r.Resample(input, ratio)
	require.NoError(t, err)

	// The 0.25 ratio designs a long kernel; skip its edge reach.
	for i := 700; i < len(out)-700; i++ {
		assert.LessOrEqual(t, out[i], maxResidual, "sample %d leaked", i)
		assert.GreaterOrEqual(t, out[i], -maxResidual, "sample %d leaked", i)
	}
}

// TestSincResampler_IdentityRatio verifies ratio 1 returns a fresh copy.
func TestSincResampler_IdentityRatio(t *testing.T) {
	input := testutil.Sine(440, testRate, 1000, 0.5)

	r := NewFast()
	out, err := r.Resample(input, 1.0)
	require.NoError(t, err)

	assert.Equal(t, input, out)
	out[0] = 42
	assert.NotEqual(t, input[0], out[0])
}

// TestSincResampler_Errors covers the failure modes.
func TestSincResampler_Errors(t *testing.T) {
	r := NewFast()
	valid := testutil.Sine(440, testRate, 1000, 0.5)

	t.Run("zero_ratio", func(t *testing.T) {
		_, err := r.Resample(valid, 0)
		assert.ErrorIs(t, err, ErrUnsupportedRatio)
	})

	t.Run("negative_ratio", func(t *testing.T) {
		_, err := r.Resample(valid, -2)
		assert.ErrorIs(t, err, ErrUnsupportedRatio)
	})

	t.Run("short_buffer", func(t *testing.T) {
		_, err := r.Resample(make([]float64, MinFastInput-1), 1.3)
		assert.ErrorIs(t, err, ErrBufferTooShort)
	})

	t.Run("vanishing_output", func(t *testing.T) {
		_, err := r.Resample(make([]float64, MinFastInput), 0.01)
		assert.ErrorIs(t, err, ErrUnsupportedRatio)
	})
}

// BenchmarkResamplers compares the two engines at the default downshift
// ratio on a one-second mono buffer.
func BenchmarkResamplers(b *testing.B) {
	input := testutil.Sine(testToneHz, testRate, testRate, 0.8)
	ratio := 22050.0 / 17000.0

	b.Run("accurate", func(b *testing.B) {
		r := NewAccurate()
		b.ReportAllocs()
		for b.Loop() {
			if _, err := r.Resample(input, ratio); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("fast", func(b *testing.B) {
		r := NewFast()
		b.ReportAllocs()
		for b.Loop() {
			if _, err := r.Resample(input, ratio); err != nil {
				b.Fatal(err)
			}
		}
	})
}
