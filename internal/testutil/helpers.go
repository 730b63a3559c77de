// Package testutil provides shared helpers for resampling and transform tests.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Default tolerances for common checks.
const (
	DefaultTolerance = 1e-10
	NullTestAbsTol   = 1e-6
)

// Sine generates a sine wave of the given frequency and amplitude.
func Sine(freqHz float64, sampleRate, frames int, amplitude float64) []float64 {
	out := make([]float64, frames)
	w := 2.0 * math.Pi * freqHz / float64(sampleRate)
	for i := range out {
		out[i] = amplitude * math.Sin(w*float64(i))
	}
	return out
}

// MultiTone generates a sum of equal-amplitude sines, normalized to the
// given peak amplitude.
func MultiTone(freqsHz []float64, sampleRate, frames int, amplitude float64) []float64 {
	out := make([]float64, frames)
	for _, f := range freqsHz {
		w := 2.0 * math.Pi * f / float64(sampleRate)
		for i := range out {
			out[i] += math.Sin(w * float64(i))
		}
	}
	scale := amplitude / float64(len(freqsHz))
	for i := range out {
		out[i] *= scale
	}
	return out
}

// MaxAbsDiff returns the largest absolute sample difference between two
// equal-length signals.
func MaxAbsDiff(a, b []float64) float64 {
	var maxDiff float64
	for i := range a {
		d := math.Abs(a[i] - b[i])
		if d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff
}

// SNR computes the signal-to-noise ratio in dB between a reference and a
// reconstruction, skipping margin samples at each end so FIR edge
// transients do not dominate the measurement. Returns +Inf for an exact
// match.
func SNR(ref, test []float64, margin int) float64 {
	n := len(ref)
	if len(test) < n {
		n = len(test)
	}
	if 2*margin >= n {
		margin = 0
	}

	var sigPow, errPow float64
	for i := margin; i < n-margin; i++ {
		d := ref[i] - test[i]
		sigPow += ref[i] * ref[i]
		errPow += d * d
	}
	if errPow == 0 {
		return math.Inf(1)
	}
	return 10.0 * math.Log10(sigPow/errPow)
}

// AssertSymmetric verifies that a slice is symmetric (s[i] == s[n-1-i]).
func AssertSymmetric(t *testing.T, s []float64, tolerance float64) bool {
	t.Helper()
	n := len(s)
	for i := 0; i < n/2; i++ {
		j := n - 1 - i
		if !assert.InDelta(t, s[i], s[j], tolerance,
			"slice not symmetric: s[%d]=%f != s[%d]=%f", i, s[i], j, s[j]) {
			return false
		}
	}
	return true
}

// AssertNoNaNOrInf verifies that no element is NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}
