// Package engine implements the sample rate conversion kernels: band-limited
// sinc interpolation in three quality grades, plus zero-order-hold and linear
// interpolation for latency- or CPU-constrained callers.
//
// A State owns one kernel and the cross-call bookkeeping every kernel shares:
// the fractional input position (phase accumulator) and the ratio used by the
// previous call, which anchors the smooth ratio interpolation within a call.
package engine

import (
	"fmt"
	"math"
)

// Variant selects the conversion kernel. The numeric order matches the
// classic converter enumeration (best sinc first, linear last).
type Variant int

const (
	SincBestQuality Variant = iota
	SincMediumQuality
	SincFastest
	ZeroOrderHold
	Linear

	numVariants
)

// Valid reports whether v names a supported kernel.
func (v Variant) Valid() bool {
	return v >= 0 && v < numVariants
}

// Block carries one conversion request and receives its results.
//
// In and Out are interleaved caller-owned buffers; the engine never retains
// a reference to either beyond the call. InFrames and OutFrames are the
// request bounds, UsedFrames and GenFrames the results.
type Block struct {
	In  []float32
	Out []float32

	InFrames  int // frames available in In
	OutFrames int // capacity of Out, in frames

	UsedFrames int // frames consumed, set by Process
	GenFrames  int // frames produced, set by Process

	Ratio      float64 // target ratio (output rate / input rate)
	EndOfInput bool    // final block: flush delayed samples
}

// kernel is the per-variant conversion algorithm. process may assume the
// Block passed validation in State.Process.
type kernel interface {
	process(st *State, blk *Block) error
	reset()
	latency() int
}

// State is the streaming conversion state for one kernel instance. It is not
// safe for concurrent use; callers serialize access per State.
type State struct {
	channels int

	// lastRatio is the ratio in effect at the end of the previous call;
	// a differing Block.Ratio is interpolated from it across the call.
	// Zero means no call has happened since construction or reset.
	lastRatio float64

	// lastPosition is the fractional input position in [0, 1) carried
	// across call boundaries.
	lastPosition float64

	k       kernel
	faulted bool
}

// New creates a conversion state for the given variant and channel count.
func New(variant Variant, channels int) (*State, error) {
	if !variant.Valid() {
		return nil, fmt.Errorf("%w: variant %d", ErrUnsupportedVariant, variant)
	}
	if channels < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannelCount, channels)
	}

	st := &State{channels: channels}

	var err error
	switch variant {
	case SincBestQuality, SincMediumQuality, SincFastest:
		st.k, err = newSincKernel(variant, channels)
	case ZeroOrderHold:
		st.k = newZOHKernel(channels)
	case Linear:
		st.k = newLinearKernel(channels)
	}
	if err != nil {
		return nil, err
	}
	return st, nil
}

// Channels returns the channel count fixed at construction.
func (st *State) Channels() int {
	return st.channels
}

// Latency returns the kernel's group delay in input frames.
func (st *State) Latency() int {
	return st.k.latency()
}

// SetRatio pins the starting ratio for the next call, producing a step
// response instead of a smooth ramp when the next Block.Ratio differs.
func (st *State) SetRatio(ratio float64) error {
	if st.faulted {
		return ErrEngineFaulted
	}
	if !ValidRatio(ratio) {
		return fmt.Errorf("%w: %g", ErrInvalidRatio, ratio)
	}
	st.lastRatio = ratio
	return nil
}

// Reset clears all cross-call state: filter history, phase accumulator and
// the remembered ratio. A faulted state stays faulted.
func (st *State) Reset() error {
	if st.faulted {
		return ErrEngineFaulted
	}
	st.lastPosition = 0
	st.lastRatio = 0
	st.k.reset()
	return nil
}

// Process runs one conversion call. On success blk.UsedFrames and
// blk.GenFrames are set; on error the Block results are zero and any partial
// output is undefined.
//
// A detected non-finite output sample latches the state: the call fails with
// ErrEngineFaulted and so does every later call.
func (st *State) Process(blk *Block) error {
	if st.faulted {
		return ErrEngineFaulted
	}
	if blk == nil {
		return ErrBadState
	}

	blk.UsedFrames = 0
	blk.GenFrames = 0

	if !ValidRatio(blk.Ratio) {
		return fmt.Errorf("%w: %g not in [1/%g, %g]", ErrInvalidRatio, blk.Ratio, MaxRatio, MaxRatio)
	}
	if blk.InFrames < 0 || blk.OutFrames < 0 {
		return fmt.Errorf("%w: negative frame count", ErrBadState)
	}
	if len(blk.In) < blk.InFrames*st.channels {
		return fmt.Errorf("%w: input holds %d samples, need %d",
			ErrChannelMismatch, len(blk.In), blk.InFrames*st.channels)
	}
	if len(blk.Out) < blk.OutFrames*st.channels {
		return fmt.Errorf("%w: output holds %d samples, need %d",
			ErrChannelMismatch, len(blk.Out), blk.OutFrames*st.channels)
	}

	// First call after construction or reset: anchor the ratio ramp.
	if st.lastRatio < 1.0/MaxRatio {
		st.lastRatio = blk.Ratio
	}

	if err := st.k.process(st, blk); err != nil {
		blk.UsedFrames = 0
		blk.GenFrames = 0
		if err == ErrEngineFaulted {
			st.faulted = true
		}
		return err
	}

	if !finiteOutput(blk.Out[:blk.GenFrames*st.channels]) {
		st.faulted = true
		blk.UsedFrames = 0
		blk.GenFrames = 0
		return ErrEngineFaulted
	}
	return nil
}

// finiteOutput reports whether every generated sample is a finite number.
func finiteOutput(out []float32) bool {
	for _, v := range out {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// interpolateRatio returns the ratio for output sample outGen of outTotal,
// ramping linearly from the previous call's ratio to the requested one. The
// result is clamped into the supported range.
func interpolateRatio(lastRatio, target float64, outGen, outTotal int) float64 {
	if outTotal <= 0 || math.Abs(lastRatio-target) <= minRatioDiff {
		return target
	}
	r := lastRatio + float64(outGen)*(target-lastRatio)/float64(outTotal)
	if r < 1.0/MaxRatio {
		r = 1.0 / MaxRatio
	}
	if r > MaxRatio {
		r = MaxRatio
	}
	return r
}

// fracOne returns x mod 1 in [0, 1).
func fracOne(x float64) float64 {
	r := math.Mod(x, 1.0)
	if r < 0 {
		r += 1.0
	}
	if r >= 1.0 {
		r = 0.0
	}
	return r
}

// wholePart returns the integer sample advance in x, i.e. x - fracOne(x)
// rounded to int.
func wholePart(x float64) int {
	return int(math.Round(x - fracOne(x)))
}
