package mathutil

import "math"

// Kaiser & Schafer empirical formula constants relating stopband attenuation
// in dB to the window shape parameter β.
const (
	kaiserAttHigh = 50.0 // above this the linear formula applies
	kaiserAttLow  = 21.0 // below this a rectangular window already suffices

	kaiserHighSlope  = 0.1102
	kaiserHighOffset = 8.7

	kaiserMidCoeff1 = 0.5842
	kaiserMidPower  = 0.4
	kaiserMidCoeff2 = 0.07886
)

// KaiserBeta computes the Kaiser window β parameter that achieves the given
// stopband attenuation in dB.
//
// Formula from Kaiser & Schafer:
//   - att > 50 dB:        β = 0.1102·(att − 8.7)
//   - 21 dB ≤ att ≤ 50:   β = 0.5842·(att − 21)^0.4 + 0.07886·(att − 21)
//   - att < 21 dB:        β = 0
func KaiserBeta(attenuation float64) float64 {
	switch {
	case attenuation > kaiserAttHigh:
		return kaiserHighSlope * (attenuation - kaiserHighOffset)
	case attenuation >= kaiserAttLow:
		d := attenuation - kaiserAttLow
		return kaiserMidCoeff1*math.Pow(d, kaiserMidPower) + kaiserMidCoeff2*d
	default:
		return 0.0
	}
}

// KaiserAttenuation estimates the stopband attenuation in dB achieved by a
// Kaiser window with the given β. Approximate inverse of KaiserBeta, used to
// sanity-check filter designs.
func KaiserAttenuation(beta float64) float64 {
	if beta <= 0 {
		return 0.0
	}
	return kaiserHighOffset + beta/kaiserHighSlope
}
