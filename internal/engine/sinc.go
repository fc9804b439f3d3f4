package engine

import (
	"fmt"
	"math"
	"sync"

	"github.com/tphakala/go-samplerate/internal/filter"
)

// sincTableSpecs fixes the coefficient table parameters per sinc variant.
// Spacing doubles as the fixed-point index increment at unit ratio; together
// with the lobe count it bounds intToFP(halfLen) well inside int32.
var sincTableSpecs = [numVariants]filter.TableSpec{
	SincFastest:       {Spacing: 128, Lobes: 20, Cutoff: 0.430, Attenuation: 100},
	SincMediumQuality: {Spacing: 512, Lobes: 46, Cutoff: 0.465, Attenuation: 125},
	SincBestQuality:   {Spacing: 2048, Lobes: 144, Cutoff: 0.480, Attenuation: 150},
}

// sincTables caches one immutable coefficient table per variant, built on
// first use and shared read-only by every kernel instance in the process.
var sincTables struct {
	once [numVariants]sync.Once
	tabs [numVariants][]float32
	errs [numVariants]error
}

// SincTableSpec returns the coefficient table parameters for a sinc variant,
// for diagnostic tooling.
func SincTableSpec(v Variant) (filter.TableSpec, error) {
	switch v {
	case SincBestQuality, SincMediumQuality, SincFastest:
		return sincTableSpecs[v], nil
	default:
		return filter.TableSpec{}, fmt.Errorf("%w: %d is not a sinc variant", ErrUnsupportedVariant, v)
	}
}

func sincTableFor(v Variant) ([]float32, error) {
	sincTables.once[v].Do(func() {
		sincTables.tabs[v], sincTables.errs[v] = filter.DesignSincTable(sincTableSpecs[v])
	})
	return sincTables.tabs[v], sincTables.errs[v]
}

// sincKernel performs band-limited interpolation against a windowed-sinc
// coefficient table. Input history lives in a sliding buffer so that every
// output sample can gather a full symmetric window even across call
// boundaries.
type sincKernel struct {
	channels int

	coeffs  []float32 // shared immutable table
	spacing int       // table entries per input sample
	halfLen int       // one-sided coefficient count, len(coeffs)-2

	buf     []float32 // filter history, interleaved
	bufLen  int       // usable length in samples, multiple of channels
	current int       // read position of the current conversion center
	end     int       // one past the last valid sample
	realEnd int       // end of real (non-padding) data once flushing, else -1

	// scratch accumulators for the generic multichannel path
	accLeft  []float64
	accRight []float64
}

func newSincKernel(variant Variant, channels int) (*sincKernel, error) {
	coeffs, err := sincTableFor(variant)
	if err != nil {
		return nil, err
	}

	k := &sincKernel{
		channels: channels,
		coeffs:   coeffs,
		spacing:  sincTableSpecs[variant].Spacing,
		halfLen:  len(coeffs) - 2,
	}

	// Size the history for the worst supported downsampling ratio: the
	// filter spans halfLen/spacing input samples per side, stretched by
	// up to MaxRatio when ratio < 1.
	perChannel := 3 * int(math.Round(float64(k.halfLen+2)/float64(k.spacing)*MaxRatio+1.0))
	if perChannel < minHistorySamples {
		perChannel = minHistorySamples
	}
	k.bufLen = perChannel * channels
	if k.bufLen/channels != perChannel {
		return nil, fmt.Errorf("%w: %d channels at table size %d", ErrAllocationFailure, channels, len(coeffs))
	}

	// Like the history itself, the scratch space never grows after this.
	k.buf = make([]float32, k.bufLen+channels)
	k.accLeft = make([]float64, channels)
	k.accRight = make([]float64, channels)
	k.realEnd = -1
	return k, nil
}

func (k *sincKernel) latency() int {
	return k.halfLen / k.spacing
}

func (k *sincKernel) reset() {
	k.current = 0
	k.end = 0
	k.realEnd = -1
	clear(k.buf)
}

func (k *sincKernel) process(st *State, blk *Block) error {
	inputIndex := st.lastPosition
	srcRatio := st.lastRatio

	outTotal := blk.OutFrames * k.channels
	used := 0
	gen := 0

	// Samples of history needed on each side of the conversion center,
	// stretched when the filter is widened for downsampling.
	count := float64(k.halfLen+2) / float64(k.spacing)
	minRatio := math.Min(st.lastRatio, blk.Ratio)
	if minRatio < 1.0/MaxRatio {
		minRatio = 1.0 / MaxRatio
	}
	if minRatio < 1.0 {
		count /= minRatio
	}
	halfChanLen := k.channels * (int(math.Round(count)) + 1)

	advance := wholePart(inputIndex)
	k.current = (k.current + k.channels*advance) % k.bufLen
	inputIndex = fracOne(inputIndex)

	for gen < outTotal {
		inHand := k.end - k.current
		if inHand < 0 {
			inHand += k.bufLen
		}
		if inHand <= halfChanLen {
			var err error
			used, err = k.refill(blk, used, halfChanLen)
			if err != nil {
				return err
			}
			inHand = k.end - k.current
			if inHand < 0 {
				inHand += k.bufLen
			}
			if inHand <= halfChanLen {
				break
			}
		}

		// While flushing, stop once the conversion center passes the end
		// of real data; the zero padding past it covers the window reads.
		if k.realEnd >= 0 {
			terminate := 1.0/srcRatio + 1e-20
			if float64(k.current)+float64(k.channels)*(inputIndex+terminate) >= float64(k.realEnd) {
				break
			}
		}

		srcRatio = interpolateRatio(st.lastRatio, blk.Ratio, gen, outTotal)

		// At downsampling ratios the filter stretches by 1/ratio, so the
		// table is stepped at spacing*ratio and the output rescaled to
		// keep unit gain.
		floatIncr := float64(k.spacing) * math.Min(srcRatio, 1.0)
		incr := doubleToFP(floatIncr)
		if incr <= 0 {
			return fmt.Errorf("%w: fixed-point increment underflow", ErrBadState)
		}
		startIdx := doubleToFP(inputIndex * floatIncr)
		scale := floatIncr / float64(k.spacing)

		out := blk.Out[gen : gen+k.channels]
		switch k.channels {
		case 1:
			k.calcMono(incr, startIdx, scale, out)
		case 2:
			k.calcStereo(incr, startIdx, scale, out)
		default:
			k.calcMulti(incr, startIdx, scale, out)
		}
		gen += k.channels

		inputIndex += 1.0 / srcRatio
		advance = wholePart(inputIndex)
		k.current = (k.current + k.channels*advance) % k.bufLen
		inputIndex = fracOne(inputIndex)
	}

	st.lastPosition = inputIndex
	st.lastRatio = srcRatio
	blk.UsedFrames = used / k.channels
	blk.GenFrames = gen / k.channels
	return nil
}

// refill tops up the history buffer from the input, sliding retained history
// back to the buffer start when the write position nears the end, and
// appends zero padding once the final input of the stream is consumed.
// It returns the updated count of consumed input samples.
func (k *sincKernel) refill(blk *Block, used, halfChanLen int) (int, error) {
	if k.realEnd >= 0 {
		// Already flushing; nothing more to load.
		return used, nil
	}

	inTotal := blk.InFrames * k.channels

	var space int
	switch {
	case k.current == 0:
		// First fill: reserve halfChanLen zeros of look-back history
		// ahead of the first real sample.
		space = k.bufLen - 2*halfChanLen
		k.current = halfChanLen
		k.end = halfChanLen
	case k.end+halfChanLen+k.channels < k.bufLen:
		space = k.bufLen - k.end
	default:
		if err := k.slideToFront(halfChanLen); err != nil {
			return used, err
		}
		space = k.bufLen - k.end
	}
	if space < 0 {
		space = 0
	}

	n := min(inTotal-used, space)
	n -= n % k.channels
	if n < 0 || k.end+n > k.bufLen {
		return used, fmt.Errorf("%w: history refill len %d", ErrBadState, n)
	}
	if n > 0 {
		copy(k.buf[k.end:k.end+n], blk.In[used:used+n])
		k.end += n
		used += n
	}

	// Once the stream's final input is fully buffered, pad with zeros so
	// the delayed samples inside the filter window can drain.
	if used >= inTotal && blk.EndOfInput && k.end-k.current < 2*halfChanLen {
		if k.bufLen-k.end < halfChanLen+flushPadMargin {
			if err := k.slideToFront(halfChanLen); err != nil {
				return used, err
			}
		}
		k.realEnd = k.end

		pad := halfChanLen + flushPadMargin
		if k.end+pad > k.bufLen {
			pad = k.bufLen - k.end
		}
		clear(k.buf[k.end : k.end+pad])
		k.end += pad
	}

	return used, nil
}

// slideToFront moves the retained look-back history plus unread data to the
// start of the buffer, freeing the tail for new input.
func (k *sincKernel) slideToFront(halfChanLen int) error {
	valid := k.end - k.current
	start := k.current - halfChanLen
	if valid < 0 || start < 0 {
		return fmt.Errorf("%w: history slide current=%d end=%d", ErrBadState, k.current, k.end)
	}
	copy(k.buf, k.buf[start:start+halfChanLen+valid])
	k.current = halfChanLen
	k.end = k.current + valid
	return nil
}

// coeffAt returns the filter coefficient at fixed-point index fi, linearly
// interpolated between adjacent table entries.
func (k *sincKernel) coeffAt(fi fixed) float64 {
	i := fpToInt(fi)
	frac := fpFraction(fi)
	return float64(k.coeffs[i]) + frac*float64(k.coeffs[i+1]-k.coeffs[i])
}

// calcMono computes one output sample for a mono stream.
func (k *sincKernel) calcMono(incr, start fixed, scale float64, out []float32) {
	maxIdx := intToFP(k.halfLen)

	// Left wing: walk from the outermost tap toward the center.
	fi := start
	n := int((maxIdx - fi) / incr)
	fi += fixed(n) * incr
	di := k.current - n
	if di < 0 {
		fi -= fixed(-di) * incr
		di = 0
	}
	var left float64
	for fi >= 0 {
		left += k.coeffAt(fi) * float64(k.buf[di])
		fi -= incr
		di++
	}

	// Right wing: from the outermost future tap back toward the center.
	fi = incr - start
	if fi > maxIdx {
		n = -1
	} else {
		n = int((maxIdx - fi) / incr)
	}
	fi += fixed(n) * incr
	di = k.current + 1 + n
	var right float64
	for {
		right += k.coeffAt(fi) * float64(k.buf[di])
		fi -= incr
		di--
		if fi <= 0 {
			break
		}
	}

	out[0] = float32(scale * (left + right))
}

// calcStereo computes one output frame for a stereo stream.
func (k *sincKernel) calcStereo(incr, start fixed, scale float64, out []float32) {
	maxIdx := intToFP(k.halfLen)

	fi := start
	n := int((maxIdx - fi) / incr)
	fi += fixed(n) * incr
	di := k.current - 2*n
	if di < 0 {
		steps := intCeilDiv(-di, 2)
		fi -= fixed(steps) * incr
		di += 2 * steps
	}
	var left0, left1 float64
	for fi >= 0 {
		c := k.coeffAt(fi)
		left0 += c * float64(k.buf[di])
		left1 += c * float64(k.buf[di+1])
		fi -= incr
		di += 2
	}

	fi = incr - start
	if fi > maxIdx {
		n = -1
	} else {
		n = int((maxIdx - fi) / incr)
	}
	fi += fixed(n) * incr
	di = k.current + 2*(1+n)
	var right0, right1 float64
	for {
		c := k.coeffAt(fi)
		right0 += c * float64(k.buf[di])
		right1 += c * float64(k.buf[di+1])
		fi -= incr
		di -= 2
		if fi <= 0 {
			break
		}
	}

	out[0] = float32(scale * (left0 + right0))
	out[1] = float32(scale * (left1 + right1))
}

// calcMulti computes one output frame for an arbitrary channel count.
func (k *sincKernel) calcMulti(incr, start fixed, scale float64, out []float32) {
	ch := k.channels
	maxIdx := intToFP(k.halfLen)

	clear(k.accLeft)
	clear(k.accRight)

	fi := start
	n := int((maxIdx - fi) / incr)
	fi += fixed(n) * incr
	di := k.current - ch*n
	if di < 0 {
		steps := intCeilDiv(-di, ch)
		fi -= fixed(steps) * incr
		di += ch * steps
	}
	for fi >= 0 {
		c := k.coeffAt(fi)
		for j := 0; j < ch; j++ {
			k.accLeft[j] += c * float64(k.buf[di+j])
		}
		fi -= incr
		di += ch
	}

	fi = incr - start
	if fi > maxIdx {
		n = -1
	} else {
		n = int((maxIdx - fi) / incr)
	}
	fi += fixed(n) * incr
	di = k.current + ch*(1+n)
	for {
		c := k.coeffAt(fi)
		for j := 0; j < ch; j++ {
			k.accRight[j] += c * float64(k.buf[di+j])
		}
		fi -= incr
		di -= ch
		if fi <= 0 {
			break
		}
	}

	for j := 0; j < ch; j++ {
		out[j] = float32(scale * (k.accLeft[j] + k.accRight[j]))
	}
}

// intCeilDiv returns ceil(a/b) for non-negative a, positive b.
func intCeilDiv(a, b int) int {
	return (a + b - 1) / b
}
