// Package engine implements the two resampling engines behind the
// spectral downshift transform: an FFT-domain engine that is exactly
// invertible, and a polyphase windowed-sinc engine that trades a small
// reconstruction error near the band edge for near-linear runtime.
package engine

import (
	"errors"
	"math"
)

// Common errors returned by the engines.
var (
	// ErrUnsupportedRatio indicates a non-positive or degenerate
	// resampling ratio.
	ErrUnsupportedRatio = errors.New("unsupported resampling ratio")

	// ErrBufferTooShort indicates the input has fewer frames than the
	// engine's minimum processable length.
	ErrBufferTooShort = errors.New("input buffer too short")
)

// Minimum input lengths per engine. The FFT engine needs a few frames
// for its transform to be meaningful; the sinc engine only needs
// neighboring samples to interpolate against.
const (
	MinAccurateInput = 16
	MinFastInput     = 4
)

// Resampler converts a mono sample slice by an arbitrary positive
// ratio. An output of round(len(input) * ratio) frames represents the
// same waveform stretched in time by 1/ratio, equivalently with its
// spectrum scaled by ratio.
//
// Implementations are stateless per call and safe for concurrent use on
// independent inputs.
type Resampler interface {
	Resample(input []float64, ratio float64) ([]float64, error)
}

// outputLength derives the output frame count from the input length and
// ratio, using round-half-away-from-zero.
func outputLength(inputLen int, ratio float64) int {
	return int(math.Round(float64(inputLen) * ratio))
}

// identityCopy returns a fresh copy of the input, used for the ratio==1
// fast path so callers always own their output.
func identityCopy(input []float64) []float64 {
	out := make([]float64, len(input))
	copy(out, input)
	return out
}
