package engine

import "fmt"

// linearKernel interpolates linearly between adjacent input frames. The only
// cross-call history it needs is the last frame of the previous call, used
// while the fractional position is still inside the first input frame.
type linearKernel struct {
	channels int
	primed   bool
	last     []float32
}

func newLinearKernel(channels int) *linearKernel {
	return &linearKernel{
		channels: channels,
		last:     make([]float32, channels),
	}
}

func (k *linearKernel) latency() int { return 1 }

func (k *linearKernel) reset() {
	k.primed = false
	clear(k.last)
}

func (k *linearKernel) process(st *State, blk *Block) error {
	if blk.InFrames <= 0 {
		// Nothing buffered beyond one frame of history; end-of-input
		// with no fresh data has nothing left to drain.
		return nil
	}

	ch := k.channels
	inTotal := blk.InFrames * ch
	outTotal := blk.OutFrames * ch

	if !k.primed {
		copy(k.last, blk.In[:ch])
		k.primed = true
	}

	inputIndex := st.lastPosition
	srcRatio := st.lastRatio
	used := 0
	gen := 0

	// Positions inside the first frame interpolate from the retained
	// history toward the call's first input frame.
	for inputIndex < 1.0 && gen < outTotal {
		srcRatio = interpolateRatio(st.lastRatio, blk.Ratio, gen, outTotal)
		for j := 0; j < ch; j++ {
			y0 := float64(k.last[j])
			y1 := float64(blk.In[j])
			blk.Out[gen+j] = float32(y0 + inputIndex*(y1-y0))
		}
		gen += ch
		inputIndex += 1.0 / srcRatio
	}

	used += wholePart(inputIndex) * ch
	inputIndex = fracOne(inputIndex)

	for gen < outTotal {
		if used+ch > inTotal {
			break
		}
		srcRatio = interpolateRatio(st.lastRatio, blk.Ratio, gen, outTotal)

		base := used
		for j := 0; j < ch; j++ {
			y0 := float64(blk.In[base-ch+j])
			y1 := float64(blk.In[base+j])
			blk.Out[gen+j] = float32(y0 + inputIndex*(y1-y0))
		}
		gen += ch

		inputIndex += 1.0 / srcRatio
		used += wholePart(inputIndex) * ch
		inputIndex = fracOne(inputIndex)
	}

	// The phase may have advanced past the supplied input; carry the
	// overshoot in the fractional position instead.
	if used > inTotal {
		inputIndex += float64((used - inTotal) / ch)
		used = inTotal
	}

	st.lastPosition = inputIndex
	st.lastRatio = srcRatio

	if used >= ch {
		tail := used - ch
		if tail+ch > len(blk.In) {
			return fmt.Errorf("%w: linear history update at %d", ErrBadState, tail)
		}
		copy(k.last, blk.In[tail:tail+ch])
	}

	blk.UsedFrames = used / ch
	blk.GenFrames = gen / ch
	return nil
}
