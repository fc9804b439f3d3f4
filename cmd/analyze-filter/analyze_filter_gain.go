// Command analyze-filter prints the coefficient table parameters and DC gain
// of each sinc converter variant. Useful when tuning table specs.
package main

import (
	"fmt"

	"github.com/tphakala/go-samplerate/internal/engine"
	"github.com/tphakala/go-samplerate/internal/filter"
	"github.com/tphakala/go-samplerate/internal/mathutil"
)

var sincVariants = []struct {
	name    string
	variant engine.Variant
}{
	{"sinc-fastest", engine.SincFastest},
	{"sinc-medium", engine.SincMediumQuality},
	{"sinc-best", engine.SincBestQuality},
}

func main() {
	fmt.Println("=== Sinc Coefficient Table Analysis ===")

	for _, sv := range sincVariants {
		spec, err := engine.SincTableSpec(sv.variant)
		if err != nil {
			fmt.Printf("%s: %v\n", sv.name, err)
			continue
		}

		table, err := filter.DesignSincTable(spec)
		if err != nil {
			fmt.Printf("%s: design failed: %v\n", sv.name, err)
			continue
		}

		fmt.Printf("\n%s:\n", sv.name)
		fmt.Printf("  Spacing:      %d entries per input sample\n", spec.Spacing)
		fmt.Printf("  Lobes:        %d\n", spec.Lobes)
		fmt.Printf("  Cutoff:       %.3f of Nyquist\n", spec.Cutoff*2)
		fmt.Printf("  Attenuation:  %.0f dB (Kaiser beta %.3f)\n",
			spec.Attenuation, mathutil.KaiserBeta(spec.Attenuation))
		fmt.Printf("  Table length: %d entries\n", len(table))
		fmt.Printf("  DC gain:      %.9f\n", dcGain(table, spec.Spacing))
	}
}

// dcGain sums the taps at whole-sample positions, mirrored for the left
// wing. A correctly normalized table sums to 1.
func dcGain(table []float32, spacing int) float64 {
	sum := float64(table[0])
	for i := spacing; i < len(table); i += spacing {
		sum += 2 * float64(table[i])
	}
	return sum
}
