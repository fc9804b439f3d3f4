package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-samplerate/internal/testutil"
)

// convertAll pushes the whole input through st in chunkFrames pieces and
// drains the end-of-input flush, returning everything generated.
func convertAll(t *testing.T, st *State, input []float32, ratio float64, chunkFrames int) []float32 {
	t.Helper()

	ch := st.Channels()
	outBuf := make([]float32, (chunkFrames*4+64)*ch)
	var out []float32

	remaining := input
	for len(remaining) > 0 {
		in := remaining
		if len(in) > chunkFrames*ch {
			in = in[:chunkFrames*ch]
		}
		blk := Block{
			In:        in,
			Out:       outBuf,
			InFrames:  len(in) / ch,
			OutFrames: len(outBuf) / ch,
			Ratio:     ratio,
		}
		require.NoError(t, st.Process(&blk))
		require.False(t, blk.UsedFrames == 0 && blk.GenFrames == 0,
			"converter made no progress")
		out = append(out, blk.Out[:blk.GenFrames*ch]...)
		remaining = remaining[blk.UsedFrames*ch:]
	}

	for {
		blk := Block{
			Out:        outBuf,
			OutFrames:  len(outBuf) / ch,
			Ratio:      ratio,
			EndOfInput: true,
		}
		require.NoError(t, st.Process(&blk))
		if blk.GenFrames == 0 {
			break
		}
		out = append(out, blk.Out[:blk.GenFrames*ch]...)
	}
	return out
}

func TestNew_Errors(t *testing.T) {
	_, err := New(Variant(99), 1)
	assert.ErrorIs(t, err, ErrUnsupportedVariant)

	_, err = New(Variant(-1), 1)
	assert.ErrorIs(t, err, ErrUnsupportedVariant)

	_, err = New(Linear, 0)
	assert.ErrorIs(t, err, ErrInvalidChannelCount)

	_, err = New(SincFastest, -3)
	assert.ErrorIs(t, err, ErrInvalidChannelCount)
}

func TestVariant_Valid(t *testing.T) {
	for v := SincBestQuality; v <= Linear; v++ {
		assert.True(t, v.Valid(), "variant %d", v)
	}
	assert.False(t, Variant(-1).Valid())
	assert.False(t, numVariants.Valid())
}

func TestLatencyPerVariant(t *testing.T) {
	tests := []struct {
		variant Variant
		want    int
	}{
		{SincBestQuality, 144},
		{SincMediumQuality, 46},
		{SincFastest, 20},
		{ZeroOrderHold, 0},
		{Linear, 1},
	}

	for _, tt := range tests {
		st, err := New(tt.variant, 1)
		require.NoError(t, err)
		assert.Equal(t, tt.want, st.Latency(), "variant %d", tt.variant)
	}
}

func TestProcess_InvalidRatio(t *testing.T) {
	st, err := New(Linear, 1)
	require.NoError(t, err)

	in := testutil.Sine(440, 44100, 0.5, 256, 1)
	out := make([]float32, 1024)

	for _, ratio := range []float64{0, -1, 1.0 / 512.0, 1000.0, math.NaN()} {
		blk := Block{In: in, Out: out, InFrames: 256, OutFrames: 1024, Ratio: ratio}
		err := st.Process(&blk)
		assert.ErrorIs(t, err, ErrInvalidRatio, "ratio %v", ratio)
		assert.Zero(t, blk.UsedFrames)
		assert.Zero(t, blk.GenFrames)
	}

	// The rejected calls must not have disturbed the state.
	got := convertAll(t, st, in, 1.0, 256)
	fresh, err := New(Linear, 1)
	require.NoError(t, err)
	want := convertAll(t, fresh, in, 1.0, 256)
	assert.Equal(t, want, got)
}

func TestProcess_ShortBuffers(t *testing.T) {
	st, err := New(Linear, 2)
	require.NoError(t, err)

	in := make([]float32, 100)
	out := make([]float32, 400)

	blk := Block{In: in, Out: out, InFrames: 64, OutFrames: 200, Ratio: 1.0}
	assert.ErrorIs(t, st.Process(&blk), ErrChannelMismatch)

	blk = Block{In: in, Out: out, InFrames: 50, OutFrames: 300, Ratio: 1.0}
	assert.ErrorIs(t, st.Process(&blk), ErrChannelMismatch)

	blk = Block{In: in, Out: out, InFrames: -1, OutFrames: 10, Ratio: 1.0}
	assert.ErrorIs(t, st.Process(&blk), ErrBadState)
}

func TestProcess_NilBlock(t *testing.T) {
	st, err := New(ZeroOrderHold, 1)
	require.NoError(t, err)
	assert.ErrorIs(t, st.Process(nil), ErrBadState)
}

// TestSilenceInvariance verifies that silence converts to exact silence for
// every variant.
func TestSilenceInvariance(t *testing.T) {
	for v := SincBestQuality; v <= Linear; v++ {
		st, err := New(v, 1)
		require.NoError(t, err)

		out := convertAll(t, st, testutil.Silence(2000, 1), 48000.0/44100.0, 500)
		for i, s := range out {
			require.Zero(t, s, "variant %d sample %d", v, i)
		}
	}
}

// TestFrameAccounting verifies the output frame counts land near
// inputFrames*ratio for representative ratios.
func TestFrameAccounting(t *testing.T) {
	const frames = 1000

	tests := []struct {
		name    string
		variant Variant
		ratio   float64
	}{
		{"SincFastestHalf", SincFastest, 0.5},
		{"SincFastestDouble", SincFastest, 2.0},
		{"SincMediumCDtoDAT", SincMediumQuality, 48000.0 / 44100.0},
		{"LinearHalf", Linear, 0.5},
		{"LinearDouble", Linear, 2.0},
		{"ZOHDouble", ZeroOrderHold, 2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := New(tt.variant, 1)
			require.NoError(t, err)

			in := testutil.Sine(440, 44100, 0.5, frames, 1)
			out := convertAll(t, st, in, tt.ratio, frames)

			expected := float64(frames) * tt.ratio
			assert.InDelta(t, expected, float64(len(out)), 10,
				"generated %d frames, expected about %.0f", len(out), expected)
			testutil.AssertFinite(t, out)
		})
	}
}

// TestRateIdentity verifies that unit-ratio conversion reproduces the input
// modulo the variant's group delay.
func TestRateIdentity(t *testing.T) {
	const frames = 2000
	in := testutil.Sine(440, 44100, 0.5, frames, 1)

	t.Run("Sinc", func(t *testing.T) {
		st, err := New(SincFastest, 1)
		require.NoError(t, err)
		out := convertAll(t, st, in, 1.0, frames)

		// Output frame i centers input frame i; skip the edge transients
		// where the window still overlaps the zero padding.
		lat := st.Latency()
		require.GreaterOrEqual(t, len(out), frames-lat)
		for i := 2 * lat; i < len(out)-2*lat && i < frames; i++ {
			require.InDelta(t, in[i], out[i], 1e-3, "frame %d", i)
		}
	})

	t.Run("Linear", func(t *testing.T) {
		st, err := New(Linear, 1)
		require.NoError(t, err)
		out := convertAll(t, st, in, 1.0, frames)

		// One frame of delay: out[i] == in[i-1] for i >= 1.
		require.GreaterOrEqual(t, len(out), frames-1)
		for i := 1; i < len(out) && i-1 < frames; i++ {
			require.Equal(t, in[i-1], out[i], "frame %d", i)
		}
	})
}

// TestChunkedMatchesOneShot verifies that chunk size does not change the
// generated signal.
func TestChunkedMatchesOneShot(t *testing.T) {
	const frames = 3000
	ratio := 48000.0 / 44100.0

	for _, v := range []Variant{SincFastest, SincMediumQuality, Linear, ZeroOrderHold} {
		in := testutil.Sine(997, 44100, 0.7, frames, 1)

		one, err := New(v, 1)
		require.NoError(t, err)
		wantOut := convertAll(t, one, in, ratio, frames)

		chunked, err := New(v, 1)
		require.NoError(t, err)
		gotOut := convertAll(t, chunked, in, ratio, 160)

		assert.InDelta(t, len(wantOut), len(gotOut), 2, "variant %d", v)
		assert.LessOrEqual(t, testutil.MaxAbsDiff(wantOut, gotOut), testutil.StreamTolerance,
			"variant %d diverges between chunkings", v)
	}
}

// TestStereoMatchesMono verifies that a stereo stream converts each channel
// exactly as a mono converter would.
func TestStereoMatchesMono(t *testing.T) {
	const frames = 1500
	ratio := 0.75

	left := testutil.Sine(440, 44100, 0.6, frames, 1)
	right := testutil.Sine(1237, 44100, 0.4, frames, 1)

	interleaved := make([]float32, frames*2)
	for i := 0; i < frames; i++ {
		interleaved[i*2] = left[i]
		interleaved[i*2+1] = right[i]
	}

	stereo, err := New(SincFastest, 2)
	require.NoError(t, err)
	stereoOut := convertAll(t, stereo, interleaved, ratio, 512)

	monoL, err := New(SincFastest, 1)
	require.NoError(t, err)
	wantL := convertAll(t, monoL, left, ratio, 512)

	monoR, err := New(SincFastest, 1)
	require.NoError(t, err)
	wantR := convertAll(t, monoR, right, ratio, 512)

	frames2 := len(stereoOut) / 2
	require.InDelta(t, len(wantL), frames2, 2)

	gotL := make([]float32, frames2)
	gotR := make([]float32, frames2)
	for i := 0; i < frames2; i++ {
		gotL[i] = stereoOut[i*2]
		gotR[i] = stereoOut[i*2+1]
	}
	assert.LessOrEqual(t, testutil.MaxAbsDiff(wantL, gotL), testutil.StreamTolerance)
	assert.LessOrEqual(t, testutil.MaxAbsDiff(wantR, gotR), testutil.StreamTolerance)
}

// TestMultiChannel exercises the generic channel path against the stereo
// fast path.
func TestMultiChannel(t *testing.T) {
	const frames = 800
	ratio := 1.5

	src := testutil.Sine(600, 44100, 0.5, frames, 1)

	four := make([]float32, frames*4)
	for i := 0; i < frames; i++ {
		for ch := 0; ch < 4; ch++ {
			four[i*4+ch] = src[i]
		}
	}

	st, err := New(SincFastest, 4)
	require.NoError(t, err)
	out := convertAll(t, st, four, ratio, 256)

	mono, err := New(SincFastest, 1)
	require.NoError(t, err)
	want := convertAll(t, mono, src, ratio, 256)

	outFrames := len(out) / 4
	require.InDelta(t, len(want), outFrames, 2)
	for ch := 0; ch < 4; ch++ {
		got := make([]float32, outFrames)
		for i := 0; i < outFrames; i++ {
			got[i] = out[i*4+ch]
		}
		assert.LessOrEqual(t, testutil.MaxAbsDiff(want, got), testutil.StreamTolerance,
			"channel %d", ch)
	}
}

// TestReset verifies that Reset restores the freshly constructed behavior.
func TestReset(t *testing.T) {
	in := testutil.Sine(440, 44100, 0.5, 1000, 1)

	st, err := New(SincFastest, 1)
	require.NoError(t, err)

	first := convertAll(t, st, in, 1.25, 250)
	require.NoError(t, st.Reset())
	second := convertAll(t, st, in, 1.25, 250)

	assert.Equal(t, first, second)
}

// TestFaultLatching verifies that a non-finite output latches the state.
func TestFaultLatching(t *testing.T) {
	st, err := New(Linear, 1)
	require.NoError(t, err)

	in := make([]float32, 64)
	in[0] = float32(math.NaN())
	out := make([]float32, 256)

	blk := Block{In: in, Out: out, InFrames: 64, OutFrames: 256, Ratio: 1.0}
	assert.ErrorIs(t, st.Process(&blk), ErrEngineFaulted)
	assert.Zero(t, blk.GenFrames)

	// Every later call fails the same way, Reset included.
	blk = Block{In: in, Out: out, InFrames: 64, OutFrames: 256, Ratio: 1.0}
	assert.ErrorIs(t, st.Process(&blk), ErrEngineFaulted)
	assert.ErrorIs(t, st.Reset(), ErrEngineFaulted)
	assert.ErrorIs(t, st.SetRatio(1.0), ErrEngineFaulted)
}

// TestSetRatio pins the starting point of the smoothing ramp.
func TestSetRatio(t *testing.T) {
	st, err := New(Linear, 1)
	require.NoError(t, err)

	assert.ErrorIs(t, st.SetRatio(0), ErrInvalidRatio)
	assert.ErrorIs(t, st.SetRatio(300), ErrInvalidRatio)
	require.NoError(t, st.SetRatio(2.0))

	// With the ramp start pinned at the target, the call converts at a
	// constant ratio and frame counts match the target exactly.
	in := testutil.Sine(440, 44100, 0.5, 500, 1)
	out := convertAll(t, st, in, 2.0, 500)
	assert.InDelta(t, 1000, len(out), 5)
}

func TestValidRatio(t *testing.T) {
	assert.True(t, ValidRatio(1.0))
	assert.True(t, ValidRatio(1.0/MaxRatio))
	assert.True(t, ValidRatio(MaxRatio))
	assert.False(t, ValidRatio(0))
	assert.False(t, ValidRatio(-2))
	assert.False(t, ValidRatio(MaxRatio+1))
	assert.False(t, ValidRatio(1.0/(MaxRatio*2)))
}

func BenchmarkProcess(b *testing.B) {
	benches := []struct {
		name    string
		variant Variant
	}{
		{"SincFastest", SincFastest},
		{"SincMedium", SincMediumQuality},
		{"Linear", Linear},
		{"ZOH", ZeroOrderHold},
	}

	for _, bc := range benches {
		b.Run(bc.name, func(b *testing.B) {
			st, err := New(bc.variant, 2)
			if err != nil {
				b.Fatal(err)
			}
			in := testutil.Sine(440, 44100, 0.5, 4096, 2)
			out := make([]float32, 2*len(in))

			for b.Loop() {
				blk := Block{
					In:        in,
					Out:       out,
					InFrames:  4096,
					OutFrames: 8192,
					Ratio:     48000.0 / 44100.0,
				}
				if err := st.Process(&blk); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func TestInterpolateRatio(t *testing.T) {
	// No change requested: target applies immediately.
	assert.Equal(t, 2.0, interpolateRatio(2.0, 2.0, 0, 100))

	// Ramp endpoints.
	assert.InDelta(t, 1.0, interpolateRatio(1.0, 2.0, 0, 100), 1e-12)
	assert.InDelta(t, 1.99, interpolateRatio(1.0, 2.0, 99, 100), 1e-12)

	// Clamped into the supported range.
	assert.GreaterOrEqual(t, interpolateRatio(1.0/MaxRatio, MaxRatio, 0, 10), 1.0/MaxRatio)
}
