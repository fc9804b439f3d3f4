package engine

// zohKernel repeats the most recent input frame at each output position
// (zero-order hold). Cheapest possible conversion; heavy aliasing above the
// output Nyquist is accepted by callers choosing it.
type zohKernel struct {
	channels int
	primed   bool
	last     []float32
}

func newZOHKernel(channels int) *zohKernel {
	return &zohKernel{
		channels: channels,
		last:     make([]float32, channels),
	}
}

func (k *zohKernel) latency() int { return 0 }

func (k *zohKernel) reset() {
	k.primed = false
	clear(k.last)
}

func (k *zohKernel) process(st *State, blk *Block) error {
	if blk.InFrames <= 0 {
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

	for inputIndex < 1.0 && gen < outTotal {
		srcRatio = interpolateRatio(st.lastRatio, blk.Ratio, gen, outTotal)
		copy(blk.Out[gen:gen+ch], k.last)
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

		copy(blk.Out[gen:gen+ch], blk.In[used-ch:used])
		gen += ch

		inputIndex += 1.0 / srcRatio
		used += wholePart(inputIndex) * ch
		inputIndex = fracOne(inputIndex)
	}

	if used > inTotal {
		inputIndex += float64((used - inTotal) / ch)
		used = inTotal
	}

	st.lastPosition = inputIndex
	st.lastRatio = srcRatio

	if used >= ch {
		copy(k.last, blk.In[used-ch:used])
	}

	blk.UsedFrames = used / ch
	blk.GenFrames = gen / ch
	return nil
}
