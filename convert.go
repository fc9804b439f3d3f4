package samplerate

import (
	"math"

	"github.com/tphakala/go-samplerate/internal/engine"
)

// IsValidRatio reports whether ratio lies in the supported range [1/256, 256].
func IsValidRatio(ratio float64) bool {
	return engine.ValidRatio(ratio)
}

// OutputCapacity returns a frame count guaranteed to hold everything a
// converter generates from inputFrames input frames at the given ratio,
// including the end-of-input flush. Use it to size one-shot output buffers:
//
//	out := make([]float32, samplerate.OutputCapacity(len(in), ratio)*channels)
func OutputCapacity(inputFrames int, ratio float64) int {
	if inputFrames <= 0 || ratio <= 0 {
		return outputSlackFrames
	}
	return int(math.Ceil(float64(inputFrames)*ratio)) + outputSlackFrames
}

// Convert resamples a complete signal in one shot. It builds a transient
// converter, feeds it the whole input with end-of-input set, drains the
// flush, and returns the number of frames written to output.
//
// Input and output are interleaved and caller-allocated; size output with
// [OutputCapacity]. If output fills before the stream drains the surplus
// frames are lost, which with a correctly sized buffer cannot happen.
func Convert(variant Variant, channels int, input, output []float32, ratio float64) (int, error) {
	c, err := New(variant, channels)
	if err != nil {
		return 0, err
	}
	defer c.Close()

	used, gen, err := c.Process(input, output, ratio, true)
	if err != nil {
		return 0, err
	}
	total := gen

	// A single call can leave input or flushed samples pending when the
	// output region it was offered fills up. Feed the remainder until the
	// stream drains or the output is truly full.
	in := input[used*channels:]
	for !c.drained && total*channels < len(output) {
		used, gen, err = c.Process(in, output[total*channels:], ratio, true)
		if err != nil {
			return 0, err
		}
		in = in[used*channels:]
		total += gen
	}
	return total, nil
}

// Resample is the allocating form of [Convert]: it sizes the output with
// [OutputCapacity], converts, and returns the exact frames generated.
func Resample(variant Variant, channels int, input []float32, ratio float64) ([]float32, error) {
	if channels < 1 {
		return nil, ErrInvalidChannelCount
	}
	out := make([]float32, OutputCapacity(len(input)/channels, ratio)*channels)
	gen, err := Convert(variant, channels, input, out, ratio)
	if err != nil {
		return nil, err
	}
	return out[:gen*channels], nil
}
