// Package filter designs the windowed-sinc coefficient tables used by the
// band-limited sinc converters.
//
// A table stores one side of a symmetric lowpass impulse response, sampled
// at Spacing points per input sample so that the converter can evaluate the
// filter at arbitrary fractional positions by linear interpolation between
// adjacent entries.
package filter

import (
	"fmt"
	"math"

	"github.com/tphakala/go-samplerate/internal/mathutil"
	"github.com/tphakala/simd/f64"
)

// Design constraints.
const (
	minSpacing = 8
	minLobes   = 2
	maxLobes   = 1024

	// minAttenuation keeps the Kaiser β formula in its accurate region.
	minAttenuation = 40.0

	// sincZeroThreshold guards the sinc center-tap limit.
	sincZeroThreshold = 1e-12
)

// TableSpec describes a one-sided windowed-sinc coefficient table.
type TableSpec struct {
	// Spacing is the number of table entries per input sample. It is also
	// the fixed-point index increment the converter uses at unit ratio.
	Spacing int

	// Lobes is the number of input samples the filter spans on each side
	// of center. Total support at unit ratio is 2*Lobes+1 samples.
	Lobes int

	// Cutoff is the normalized lowpass cutoff frequency in (0, 0.5),
	// where 0.5 is the input Nyquist frequency.
	Cutoff float64

	// Attenuation is the target stopband attenuation in dB, which sets
	// the Kaiser window β.
	Attenuation float64
}

// Validate checks the table specification.
func (s *TableSpec) Validate() error {
	if s.Spacing < minSpacing {
		return fmt.Errorf("table spacing %d too small (minimum %d)", s.Spacing, minSpacing)
	}
	if s.Lobes < minLobes || s.Lobes > maxLobes {
		return fmt.Errorf("lobe count %d out of range [%d, %d]", s.Lobes, minLobes, maxLobes)
	}
	if s.Cutoff <= 0 || s.Cutoff >= 0.5 {
		return fmt.Errorf("cutoff %f must be in (0, 0.5)", s.Cutoff)
	}
	if s.Attenuation < minAttenuation {
		return fmt.Errorf("attenuation %f dB too low (minimum %f)", s.Attenuation, minAttenuation)
	}
	return nil
}

// HalfLength returns the number of non-zero coefficients on one side of
// center, excluding the two terminal entries appended for interpolation.
func (s *TableSpec) HalfLength() int {
	return s.Spacing * s.Lobes
}

// DesignSincTable builds the coefficient table for the given spec.
//
// The returned slice has HalfLength()+2 entries: entry i holds the filter
// value at t = i/Spacing input samples from center, and the final two
// entries taper to zero so that a lookup at index HalfLength() can still
// interpolate toward its successor.
//
// The table is normalized so the filter has unit DC gain when applied at
// unit ratio, i.e. the sum of the coefficients at whole-sample positions
// equals one.
func DesignSincTable(spec TableSpec) ([]float32, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	halfLen := spec.HalfLength()
	table := make([]float64, halfLen+2)

	beta := mathutil.KaiserBeta(spec.Attenuation)
	i0Beta := mathutil.BesselI0(beta)

	for i := range table {
		// Position in input samples from the filter center.
		t := float64(i) / float64(spec.Spacing)

		// Kaiser window argument: x in [0, 1] over the filter span.
		x := t / float64(spec.Lobes)
		if x >= 1.0 {
			// The two terminal entries land here.
			table[i] = 0.0
			continue
		}
		window := mathutil.BesselI0(beta*math.Sqrt(1.0-x*x)) / i0Beta

		// Ideal lowpass: h(t) = sin(2π·fc·t)/(π·t), h(0) = 2·fc.
		var sinc float64
		if t < sincZeroThreshold {
			sinc = 2.0 * spec.Cutoff
		} else {
			sinc = math.Sin(2.0*math.Pi*spec.Cutoff*t) / (math.Pi * t)
		}

		table[i] = sinc * window
	}

	// Unit DC gain at unit ratio: center tap plus both symmetric halves
	// sampled at whole input samples must sum to one.
	taps := make([]float64, spec.Lobes)
	for k := 1; k <= spec.Lobes; k++ {
		taps[k-1] = table[k*spec.Spacing]
	}
	dcGain := table[0] + 2.0*f64.Sum(taps)
	if math.Abs(dcGain) < sincZeroThreshold {
		return nil, fmt.Errorf("degenerate filter: DC gain %e", dcGain)
	}
	f64.Scale(table, table, 1.0/dcGain)

	out := make([]float32, len(table))
	for i, v := range table {
		out[i] = float32(v)
	}
	return out, nil
}
