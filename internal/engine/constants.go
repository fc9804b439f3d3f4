package engine

// Ratio bounds and smoothing.
const (
	// MaxRatio bounds the conversion ratio to [1/MaxRatio, MaxRatio].
	MaxRatio = 256.0

	// minRatioDiff is the smallest ratio change worth interpolating; below
	// it the requested ratio is applied directly.
	minRatioDiff = 1e-20
)

// ValidRatio reports whether ratio lies within the supported range.
func ValidRatio(ratio float64) bool {
	return ratio >= 1.0/MaxRatio && ratio <= MaxRatio
}

// Fixed-point filter table indexing. Filter positions are tracked as int32
// with shiftBits fractional bits; table spacing and half length must keep
// intToFP within int32 range, which the variant table specs guarantee.
const (
	shiftBits = 12
	fpOne     = 1 << shiftBits
)

// fixed is the fixed-point filter index type.
type fixed = int32

func doubleToFP(x float64) fixed {
	return fixed(x*float64(fpOne) + 0.5)
}

func intToFP(x int) fixed {
	return fixed(x) << shiftBits
}

func fpToInt(x fixed) int {
	return int(x >> shiftBits)
}

// fpFraction returns the fractional part of x as a float64 in [0, 1).
func fpFraction(x fixed) float64 {
	return float64(x&(fpOne-1)) / float64(fpOne)
}

// Sinc history buffer sizing.
const (
	// minHistorySamples floors the ring buffer so small filters still get
	// a comfortable working area.
	minHistorySamples = 4096

	// flushPadMargin is the extra zero padding appended past the filter
	// half length when draining at end of input.
	flushPadMargin = 5
)
