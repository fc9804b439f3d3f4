package samplerate

// Channel constants
const (
	stereoChannels = 2   // Stereo channel count (used by interleave functions)
	maxChannels    = 128 // Maximum supported channel count
)

// Conversion ratio limits. A ratio is output rate over input rate.
const (
	// MinRatio is the smallest supported conversion ratio (1/256).
	MinRatio = 1.0 / 256.0

	// MaxRatio is the largest supported conversion ratio (256x).
	MaxRatio = 256.0
)

// Buffer sizing constants
const (
	// outputSlackFrames pads OutputCapacity against rounding at the
	// chunk boundaries and the end-of-input flush.
	outputSlackFrames = 8
)

// libraryVersion identifies this release.
const libraryVersion = "1.0.0"

// Version returns the library version string.
func Version() string {
	return libraryVersion
}
