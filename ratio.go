package downshift

import "fmt"

// nyquistDivisor relates a sample rate to its Nyquist frequency.
const nyquistDivisor = 2.0

// Ratio computes the frequency-axis compression ratio for a source
// sample rate and target cutoff:
//
//	r = cutoffHz / (sampleRate / 2)
//
// A component at frequency f in the source maps to f*r in the prepared
// signal, landing below cutoffHz for all f up to the source Nyquist.
// r is meaningful for Prepare when it falls in (0, 1); r >= 1 means the
// cutoff already covers the full band and the transform degenerates to
// an identity.
func Ratio(sampleRate int, cutoffHz float64) (float64, error) {
	if sampleRate <= 0 {
		return 0, fmt.Errorf("%w: sample rate must be positive, got %d",
			ErrInvalidConfiguration, sampleRate)
	}
	if cutoffHz <= 0 {
		return 0, fmt.Errorf("%w: cutoff must be positive, got %v",
			ErrInvalidConfiguration, cutoffHz)
	}
	return cutoffHz / (float64(sampleRate) / nyquistDivisor), nil
}
