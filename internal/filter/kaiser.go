// Package filter provides Kaiser windowed-sinc filter design for the
// fast resampling engine.
package filter

import (
	"fmt"
	"math"

	"github.com/tphakala/simd/f64"

	"github.com/downshift-audio/downshift/internal/mathutil"
)

const (
	// Nyquist in normalized frequency (1.0 = sample rate).
	nyquistFraction = 0.5

	// Threshold under which sinc(x) switches to its limit value.
	sincZeroThreshold = 1e-10

	// Each phase is normalized to unity DC gain.
	phaseGainTarget = 1.0
)

// Kaiser evaluates the continuous Kaiser window at normalized position
// x in [-1, 1]. Outside that interval the window is zero.
//
//	w(x) = I₀(β·√(1-x²)) / I₀(β)
func Kaiser(x, beta float64) float64 {
	if x < -1.0 || x > 1.0 {
		return 0.0
	}
	return mathutil.BesselI0(beta*math.Sqrt(1.0-x*x)) / mathutil.BesselI0(beta)
}

// KaiserWindow generates a discrete Kaiser window of the given length.
// The window is symmetric: w[i] == w[length-1-i].
func KaiserWindow(length int, beta float64) []float64 {
	if length < 1 {
		return []float64{}
	}
	if length == 1 {
		return []float64{1.0}
	}

	window := make([]float64, length)
	alpha := float64(length-1) / 2.0
	for n := range length {
		window[n] = Kaiser((float64(n)-alpha)/alpha, beta)
	}
	return window
}

// BankParams holds the design parameters for a polyphase sinc bank.
type BankParams struct {
	// Taps is the kernel length per phase. Must be odd so the kernel
	// is symmetric around its center tap.
	Taps int

	// Phases is the number of fractional-delay subdivisions per input
	// sample. Bank row p holds the kernel for fractional delay
	// p/Phases; Phases+1 rows are produced so callers can interpolate
	// between adjacent rows without wrapping.
	Phases int

	// Cutoff is the normalized lowpass cutoff in (0, 0.5).
	Cutoff float64

	// Beta is the Kaiser window β parameter.
	Beta float64
}

// Validate checks the bank parameters.
func (p *BankParams) Validate() error {
	if p.Taps < mathutil.MinFilterTaps || p.Taps > mathutil.MaxFilterTaps {
		return fmt.Errorf("invalid tap count %d (must be %d-%d)",
			p.Taps, mathutil.MinFilterTaps, mathutil.MaxFilterTaps)
	}
	if p.Taps%2 == 0 {
		return fmt.Errorf("invalid tap count %d (must be odd)", p.Taps)
	}
	if p.Phases < 1 {
		return fmt.Errorf("invalid phase count %d", p.Phases)
	}
	if p.Cutoff <= 0 || p.Cutoff >= nyquistFraction {
		return fmt.Errorf("invalid cutoff %f (must be in (0, 0.5))", p.Cutoff)
	}
	if p.Beta < 0 {
		return fmt.Errorf("invalid beta %f", p.Beta)
	}
	return nil
}

// DesignSincBank builds a polyphase bank of Kaiser windowed-sinc
// kernels. Row p covers fractional delay p/Phases; rows 0..Phases
// inclusive are returned (Phases+1 rows) so a caller interpolating
// between rows p and p+1 never indexes past the bank.
//
// Each row has unity DC gain, so a constant input maps to the same
// constant regardless of the sampling phase.
func DesignSincBank(params BankParams) ([][]float64, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	center := params.Taps / 2
	halfSpan := float64(center) + 1.0

	bank := make([][]float64, params.Phases+1)
	for p := range bank {
		frac := float64(p) / float64(params.Phases)
		row := make([]float64, params.Taps)

		for j := range params.Taps {
			// Kernel position relative to the fractional target.
			t := float64(j-center) - frac
			row[j] = sinc(2.0*params.Cutoff*t) * 2.0 * params.Cutoff *
				Kaiser(t/halfSpan, params.Beta)
		}

		// Normalize to unity DC gain using SIMD sum/scale.
		sum := f64.Sum(row)
		if math.Abs(sum) > sincZeroThreshold {
			f64.Scale(row, row, phaseGainTarget/sum)
		}

		bank[p] = row
	}

	return bank, nil
}

// sinc computes the normalized sinc function sin(πx)/(πx).
func sinc(x float64) float64 {
	if math.Abs(x) < sincZeroThreshold {
		return 1.0
	}
	return math.Sin(math.Pi*x) / (math.Pi * x)
}
