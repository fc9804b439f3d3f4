package samplerate

import (
	"fmt"

	"github.com/tphakala/go-samplerate/internal/engine"
)

// Variant selects the conversion algorithm. The numeric values follow the
// classic converter enumeration, best quality first.
type Variant int

const (
	// SincBestQuality is a band-limited sinc interpolator offering the
	// highest stopband attenuation. Use it for mastering and archival
	// conversions where CPU cost is irrelevant.
	SincBestQuality Variant = iota

	// SincMediumQuality is a band-limited sinc interpolator balancing
	// quality against CPU cost. Suitable for most music applications.
	SincMediumQuality

	// SincFastest is the fastest band-limited sinc interpolator. Still
	// far better than the interpolating variants below; a good default
	// for real-time work.
	SincFastest

	// ZeroOrderHold repeats the most recent input sample. Very fast and
	// very poor; mainly useful as a baseline or for control signals.
	ZeroOrderHold

	// Linear interpolates linearly between neighbouring input samples.
	// Fast, with audible aliasing on wideband material.
	Linear
)

// variantNames and variantDescriptions are indexed by Variant.
var variantNames = [...]string{
	"sinc-best",
	"sinc-medium",
	"sinc-fastest",
	"zero-order-hold",
	"linear",
}

var variantDescriptions = [...]string{
	"Band-limited sinc interpolation, best quality",
	"Band-limited sinc interpolation, medium quality",
	"Band-limited sinc interpolation, fastest",
	"Zero order hold interpolation, blindingly fast",
	"Linear interpolation, very fast",
}

// Valid reports whether v names a supported conversion algorithm.
func (v Variant) Valid() bool {
	return engine.Variant(v).Valid()
}

// Name returns a short stable identifier for the variant, suitable for
// command line flags and configuration files.
func (v Variant) Name() string {
	if !v.Valid() {
		return "unknown"
	}
	return variantNames[v]
}

// Description returns a one-line human-readable description of the variant.
func (v Variant) Description() string {
	if !v.Valid() {
		return "unknown converter variant"
	}
	return variantDescriptions[v]
}

// String implements fmt.Stringer.
func (v Variant) String() string {
	return v.Name()
}

// VariantByName returns the variant whose Name matches name.
func VariantByName(name string) (Variant, error) {
	for i, n := range variantNames {
		if n == name {
			return Variant(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedVariant, name)
}

// Converter is a streaming sample rate converter. It accepts interleaved
// float32 audio in arbitrarily sized chunks and carries filter state across
// calls, so a long signal converted in chunks equals the same signal
// converted in one call.
//
// A Converter is not safe for concurrent use.
type Converter struct {
	st      *engine.State
	variant Variant
	closed  bool
	drained bool
}

// New creates a streaming converter for the given variant and channel count.
func New(variant Variant, channels int) (*Converter, error) {
	if channels > maxChannels {
		return nil, fmt.Errorf("%w: %d exceeds maximum of %d",
			ErrInvalidChannelCount, channels, maxChannels)
	}
	st, err := engine.New(engine.Variant(variant), channels)
	if err != nil {
		return nil, err
	}
	return &Converter{st: st, variant: variant}, nil
}

// Variant returns the conversion algorithm chosen at construction.
func (c *Converter) Variant() Variant {
	return c.variant
}

// Channels returns the channel count fixed at construction.
func (c *Converter) Channels() int {
	return c.st.Channels()
}

// Latency returns the converter's group delay in input frames. The sinc
// variants delay the signal by half the filter length; linear by one frame;
// zero order hold not at all.
func (c *Converter) Latency() int {
	return c.st.Latency()
}

// Process converts one chunk of interleaved audio.
//
// Both buffers are caller-allocated. The input length fixes the frames
// offered, the output length the frames accepted; both must be whole
// multiples of the channel count. Process returns the frames consumed from
// input and the frames written to output. Fewer input frames than offered
// may be consumed (the output buffer filled first) and fewer output frames
// than capacity may be generated (the input ran dry); neither is an error.
//
// The ratio is the output rate divided by the input rate and may change
// between calls; the change is smoothed linearly across the call. Use
// [Converter.SetRatio] first to get a hard step instead.
//
// Set endOfInput on the final chunk to flush the delayed samples held in the
// filter history. Keep calling with an empty input until Process reports
// zero generated frames or [ErrSessionClosed]; the flushed stream stays
// closed until [Converter.Reset].
func (c *Converter) Process(input, output []float32, ratio float64, endOfInput bool) (framesUsed, framesGen int, err error) {
	if c.closed {
		return 0, 0, ErrSessionClosed
	}
	if c.drained {
		return 0, 0, fmt.Errorf("%w: stream already flushed", ErrSessionClosed)
	}

	ch := c.st.Channels()
	if len(input)%ch != 0 {
		return 0, 0, fmt.Errorf("%w: input length %d not a multiple of %d channels",
			ErrChannelMismatch, len(input), ch)
	}
	if len(output)%ch != 0 {
		return 0, 0, fmt.Errorf("%w: output length %d not a multiple of %d channels",
			ErrChannelMismatch, len(output), ch)
	}

	blk := engine.Block{
		In:         input,
		Out:        output,
		InFrames:   len(input) / ch,
		OutFrames:  len(output) / ch,
		Ratio:      ratio,
		EndOfInput: endOfInput,
	}
	if err := c.st.Process(&blk); err != nil {
		return 0, 0, err
	}

	// The flush is complete once an end-of-input call consumes all its
	// input and leaves output capacity unused.
	if endOfInput && blk.UsedFrames == blk.InFrames && blk.GenFrames < blk.OutFrames {
		c.drained = true
	}
	return blk.UsedFrames, blk.GenFrames, nil
}

// SetRatio pins the conversion ratio for the next Process call. Without it
// a ratio change is interpolated smoothly across the next call; after it the
// next call starts at the new ratio immediately.
func (c *Converter) SetRatio(ratio float64) error {
	if c.closed {
		return ErrSessionClosed
	}
	return c.st.SetRatio(ratio)
}

// Reset returns the converter to its freshly constructed state, clearing the
// filter history and reopening a flushed stream. It is cheaper than building
// a new converter and should be used between independent signals.
func (c *Converter) Reset() error {
	if c.closed {
		return ErrSessionClosed
	}
	if err := c.st.Reset(); err != nil {
		return err
	}
	c.drained = false
	return nil
}

// Close releases the converter. Further calls on a closed converter return
// [ErrSessionClosed]. Close is idempotent.
func (c *Converter) Close() error {
	c.closed = true
	return nil
}
