// Package mathutil provides the numerical building blocks for filter design:
// the modified Bessel function I₀ and the Kaiser window β formula.
package mathutil

import "math"

// besselArgSplit is the argument where the I₀ approximation switches from the
// power series to the asymptotic expansion.
const besselArgSplit = 3.75

// Abramowitz & Stegun 9.8.1: power series coefficients for I₀, |x| ≤ 3.75.
var besselI0Series = [...]float64{
	3.5156229,
	3.0899424,
	1.2067492,
	0.2659732,
	0.0360768,
	0.0045813,
}

// Abramowitz & Stegun 9.8.2: asymptotic coefficients for I₀, |x| > 3.75.
var besselI0Asymp = [...]float64{
	0.39894228,
	0.01328592,
	0.00225319,
	-0.00157565,
	0.00916281,
	-0.02057706,
	0.02635537,
	-0.01647633,
	0.00392377,
}

// BesselI0 computes the modified Bessel function of the first kind, order
// zero: I₀(x). It is the kernel of the Kaiser window.
//
// The Abramowitz & Stegun polynomial fits give about seven significant
// digits, comfortably below the float32 quantization of the coefficient
// tables built from it.
func BesselI0(x float64) float64 {
	ax := math.Abs(x)

	if ax <= besselArgSplit {
		// I₀(x) = 1 + Σ cₙ·tⁿ with t = (x/3.75)²
		t := x / besselArgSplit
		t *= t

		sum := 1.0
		tn := 1.0
		for _, c := range besselI0Series {
			tn *= t
			sum += c * tn
		}
		return sum
	}

	// I₀(x) = eˣ/√x · Σ cₙ·tⁿ with t = 3.75/x
	t := besselArgSplit / ax

	sum := 0.0
	tn := 1.0
	for _, c := range besselI0Asymp {
		sum += c * tn
		tn *= t
	}
	return math.Exp(ax) / math.Sqrt(ax) * sum
}
