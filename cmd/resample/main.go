// Command resample demonstrates the converter on a generated test tone and
// prints information about the available variants.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"

	samplerate "github.com/tphakala/go-samplerate"
)

const (
	defaultInputRate  = samplerate.RateCD
	defaultOutputRate = samplerate.RateDAT
	defaultChannels   = 1

	testSignalFrames    = 44100  // one second at CD rate
	testSignalFrequency = 1000.0 // 1 kHz test tone
)

func main() {
	var (
		inputRate   = flag.Float64("input-rate", defaultInputRate, "Input sample rate in Hz")
		outputRate  = flag.Float64("output-rate", defaultOutputRate, "Output sample rate in Hz")
		channels    = flag.Int("channels", defaultChannels, "Number of audio channels")
		variantName = flag.String("variant", samplerate.SincFastest.Name(), "Converter variant")
		list        = flag.Bool("list", false, "List available converter variants")
	)
	flag.Parse()

	if *list {
		listVariants()
		return
	}

	variant, err := samplerate.VariantByName(*variantName)
	if err != nil {
		log.Fatalf("Unknown variant: %v", err)
	}

	conv, err := samplerate.New(variant, *channels)
	if err != nil {
		log.Fatalf("Failed to create converter: %v", err)
	}
	defer conv.Close()

	ratio := samplerate.RatioFor(*inputRate, *outputRate)
	fmt.Printf("Converter created:\n")
	fmt.Printf("  Variant: %s (%s)\n", variant.Name(), variant.Description())
	fmt.Printf("  Ratio: %.6f (%g Hz to %g Hz)\n", ratio, *inputRate, *outputRate)
	fmt.Printf("  Channels: %d\n", conv.Channels())
	fmt.Printf("  Latency: %d frames\n", conv.Latency())

	fmt.Println("\nProcessing test signal...")
	input := testSignal(testSignalFrames, *inputRate, *channels)
	output, err := samplerate.Resample(variant, *channels, input, ratio)
	if err != nil {
		log.Fatalf("Conversion failed: %v", err)
	}

	fmt.Printf("Input frames:    %d\n", len(input)/(*channels))
	fmt.Printf("Output frames:   %d\n", len(output)/(*channels))
	fmt.Printf("Expected frames: %d\n", int(float64(len(input)/(*channels))*ratio))
}

func listVariants() {
	fmt.Println("Available converter variants:")
	for _, v := range []samplerate.Variant{
		samplerate.SincBestQuality,
		samplerate.SincMediumQuality,
		samplerate.SincFastest,
		samplerate.ZeroOrderHold,
		samplerate.Linear,
	} {
		fmt.Printf("  %-16s %s\n", v.Name(), v.Description())
	}
}

func testSignal(frames int, rate float64, channels int) []float32 {
	signal := make([]float32, frames*channels)
	omega := 2 * math.Pi * testSignalFrequency / rate
	for i := 0; i < frames; i++ {
		v := float32(math.Sin(omega * float64(i)))
		for ch := 0; ch < channels; ch++ {
			signal[i*channels+ch] = v
		}
	}
	return signal
}
