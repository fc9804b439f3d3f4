package samplerate

// Common sample rates for convenience.
const (
	// RateCD is the CD quality sample rate (Red Book standard).
	RateCD = 44100

	// RateDAT is the DAT/DVD sample rate.
	RateDAT = 48000

	// RateHiRes88 is the high-resolution 2x CD sample rate.
	RateHiRes88 = 88200

	// RateHiRes96 is the high-resolution 2x DAT sample rate.
	RateHiRes96 = 96000

	// RateHiRes176 is the very high resolution 4x CD sample rate.
	RateHiRes176 = 176400

	// RateHiRes192 is the very high resolution 4x DAT sample rate.
	RateHiRes192 = 192000

	// RateTelephony is the telephony (PSTN narrowband) sample rate.
	RateTelephony = 8000

	// RateVoIP is the VoIP wideband sample rate.
	RateVoIP = 16000

	// RateSpeech is the speech recognition common sample rate.
	RateSpeech = 22050
)

// RatioFor returns the conversion ratio that turns audio at inputRate into
// audio at outputRate.
func RatioFor(inputRate, outputRate float64) float64 {
	return outputRate / inputRate
}

// InterleaveStereo merges separate left and right channels into an
// interleaved stereo buffer (L R L R ...). The channels must be the same
// length.
func InterleaveStereo(left, right []float32) []float32 {
	n := len(left)
	if len(right) < n {
		n = len(right)
	}
	out := make([]float32, n*stereoChannels)
	for i := 0; i < n; i++ {
		out[i*stereoChannels] = left[i]
		out[i*stereoChannels+1] = right[i]
	}
	return out
}

// DeinterleaveStereo splits an interleaved stereo buffer (L R L R ...) into
// separate left and right channels. A trailing odd sample is ignored.
func DeinterleaveStereo(interleaved []float32) (left, right []float32) {
	n := len(interleaved) / stereoChannels
	left = make([]float32, n)
	right = make([]float32, n)
	for i := 0; i < n; i++ {
		left[i] = interleaved[i*stereoChannels]
		right[i] = interleaved[i*stereoChannels+1]
	}
	return left, right
}
