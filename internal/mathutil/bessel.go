// Package mathutil provides the math used by the filter designer.
package mathutil

import "math"

// Threshold for switching between the polynomial and asymptotic
// approximations of I₀.
const besselSmallArgThreshold = 3.75

// Chebyshev coefficients for I₀(x), small arguments.
// From Abramowitz & Stegun, "Handbook of Mathematical Functions".
var besselI0Small = [6]float64{
	3.5156229,
	3.0899424,
	1.2067492,
	0.2659732,
	0.360768e-1,
	0.45813e-2,
}

// Chebyshev coefficients for I₀(x), large arguments.
var besselI0Large = [9]float64{
	0.39894228,
	0.1328592e-1,
	0.225319e-2,
	-0.157565e-2,
	0.916281e-2,
	-0.2057706e-1,
	0.2635537e-1,
	-0.1647633e-1,
	0.392377e-2,
}

// BesselI0 computes the modified Bessel function of the first kind,
// order zero: I₀(x). It is the building block of the Kaiser window.
//
// Accuracy is ~15 digits, which is well beyond audio requirements.
func BesselI0(x float64) float64 {
	ax := math.Abs(x)

	if ax < besselSmallArgThreshold {
		// I₀(x) ≈ 1 + (x/3.75)² * P((x/3.75)²)
		t := x / besselSmallArgThreshold
		t *= t

		sum := besselI0Small[len(besselI0Small)-1]
		for i := len(besselI0Small) - 2; i >= 0; i-- {
			sum = sum*t + besselI0Small[i]
		}
		return 1.0 + t*sum
	}

	// I₀(x) ≈ (eˣ / √x) * P(3.75/x)
	t := besselSmallArgThreshold / ax

	sum := besselI0Large[len(besselI0Large)-1]
	for i := len(besselI0Large) - 2; i >= 0; i-- {
		sum = sum*t + besselI0Large[i]
	}
	return math.Exp(ax) * sum / math.Sqrt(ax)
}

// Kaiser β formula constants from Kaiser & Schafer.
const (
	kaiserAttHigh   = 50.0 // above this the linear formula applies
	kaiserAttMedium = 21.0 // below this β is zero

	kaiserBetaHighCoeff  = 0.1102
	kaiserBetaHighOffset = 8.7

	kaiserBetaMediumCoeff1 = 0.5842
	kaiserBetaMediumPower  = 0.4
	kaiserBetaMediumCoeff2 = 0.07886
)

// KaiserBeta computes the Kaiser window β parameter for the desired
// stopband attenuation in dB.
//
//   - att > 50 dB:       β = 0.1102 * (att - 8.7)
//   - 21 dB < att ≤ 50:  β = 0.5842 * (att - 21)^0.4 + 0.07886 * (att - 21)
//   - att ≤ 21 dB:       β = 0
func KaiserBeta(attenuation float64) float64 {
	switch {
	case attenuation > kaiserAttHigh:
		return kaiserBetaHighCoeff * (attenuation - kaiserBetaHighOffset)
	case attenuation >= kaiserAttMedium:
		delta := attenuation - kaiserAttMedium
		return kaiserBetaMediumCoeff1*math.Pow(delta, kaiserBetaMediumPower) +
			kaiserBetaMediumCoeff2*delta
	default:
		return 0.0
	}
}

// Filter length estimation constants, Kaiser's formula:
// N ≈ (att - 8) / (2.285 * 2π * Δf)
const (
	filterLengthAttOffset = 8.0
	filterLengthFactor    = 2.285
	filterLengthPiFactor  = 2.0

	// MinFilterTaps and MaxFilterTaps bound the designed filter length.
	MinFilterTaps = 3
	MaxFilterTaps = 8191

	// fallback when the caller passes a degenerate transition band
	defaultTransitionBW = 0.01
)

// EstimateFilterTaps estimates the FIR length needed to reach the given
// stopband attenuation (dB) across the given transition bandwidth
// (fraction of the sample rate). The result is an odd tap count so the
// filter stays symmetric, clamped to [MinFilterTaps, MaxFilterTaps].
func EstimateFilterTaps(attenuation, transitionBW float64) int {
	if transitionBW <= 0 {
		transitionBW = defaultTransitionBW
	}

	n := (attenuation - filterLengthAttOffset) /
		(filterLengthFactor * filterLengthPiFactor * math.Pi * transitionBW)

	taps := int(math.Ceil(n))
	if taps%2 == 0 {
		taps++
	}

	if taps < MinFilterTaps {
		taps = MinFilterTaps
	}
	if taps > MaxFilterTaps {
		taps = MaxFilterTaps
	}
	return taps
}
