package samplerate

import "math"

// int16Scale maps the int16 range onto [-1, 1). Full-scale negative
// (-32768) maps exactly to -1.0.
const int16Scale = 32768.0

// Int16ToFloat converts 16-bit PCM samples to float32 in [-1, 1), appending
// to dst. Pass nil to allocate a fresh slice.
func Int16ToFloat(dst []float32, src []int16) []float32 {
	if dst == nil {
		dst = make([]float32, 0, len(src))
	}
	for _, s := range src {
		dst = append(dst, float32(float64(s)/int16Scale))
	}
	return dst
}

// FloatToInt16 converts float32 samples to 16-bit PCM, appending to dst.
// Values outside [-1, 1) clip to the int16 range; in-range values round
// half away from zero.
func FloatToInt16(dst []int16, src []float32) []int16 {
	if dst == nil {
		dst = make([]int16, 0, len(src))
	}
	for _, s := range src {
		v := float64(s) * int16Scale
		switch {
		case v >= math.MaxInt16:
			dst = append(dst, math.MaxInt16)
		case v <= math.MinInt16:
			dst = append(dst, math.MinInt16)
		default:
			dst = append(dst, int16(math.Round(v)))
		}
	}
	return dst
}
