package engine

import (
	"fmt"

	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/dsp/fourier"
)

// fftResampler resamples in the frequency domain: forward real FFT,
// spectrum truncation or zero-padding to the output length, inverse
// FFT. This is the band-limited ideal: resampling up and back down
// reproduces the input bit-for-bit up to floating-point rounding,
// because every spectral bin operation has an exact inverse.
//
// The Nyquist-bin handling follows the usual real-FFT convention: when
// the shorter of the two lengths is even, its Nyquist bin is halved on
// expansion and doubled on truncation, so the energy carried by the
// implicit conjugate bin is preserved in both directions.
//
// Cost is O(n log n) per call; the FFT plans are built per invocation
// since the transform holds no state across calls.
type fftResampler struct{}

// NewAccurate returns the FFT-domain resampling engine.
func NewAccurate() Resampler {
	return fftResampler{}
}

func (fftResampler) Resample(input []float64, ratio float64) ([]float64, error) {
	if ratio <= 0 {
		return nil, fmt.Errorf("%w: ratio %v must be positive", ErrUnsupportedRatio, ratio)
	}

	n := len(input)
	if n < MinAccurateInput {
		return nil, fmt.Errorf("%w: %d frames (FFT engine needs at least %d)",
			ErrBufferTooShort, n, MinAccurateInput)
	}

	m := outputLength(n, ratio)
	if m < 1 {
		return nil, fmt.Errorf("%w: ratio %v yields no output for %d frames",
			ErrUnsupportedRatio, ratio, n)
	}
	if m == n {
		return identityCopy(input), nil
	}

	fwd := fourier.NewFFT(n)
	inv := fourier.NewFFT(m)

	spectrum := fwd.Coefficients(nil, input)

	// Resize the half spectrum to the output length. Bins beyond the
	// shorter length are discarded (truncation) or left zero (padding).
	resized := make([]complex128, m/2+1)
	shared := min(n, m)
	copy(resized, spectrum[:shared/2+1])

	if shared%2 == 0 {
		nyq := shared / 2
		if m < n {
			// Truncation: fold the conjugate pair into the new Nyquist bin.
			resized[nyq] *= 2
		} else {
			// Padding: the old Nyquist bin now has an explicit mirror.
			resized[nyq] *= 0.5
		}
	}

	out := inv.Sequence(nil, resized)

	// Both gonum transforms are unnormalized; a single 1/n scale maps
	// the m-point inverse back to the input's amplitude.
	f64.Scale(out, out, 1.0/float64(n))

	return out, nil
}
