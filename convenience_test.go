package samplerate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatioFor(t *testing.T) {
	assert.InDelta(t, 48000.0/44100.0, RatioFor(RateCD, RateDAT), 1e-12)
	assert.InDelta(t, 2.0, RatioFor(RateDAT, RateHiRes96), 1e-12)
	assert.InDelta(t, 0.5, RatioFor(RateVoIP, RateTelephony), 1e-12)
}

func TestInterleaveStereo(t *testing.T) {
	left := []float32{1, 2, 3}
	right := []float32{-1, -2, -3}

	got := InterleaveStereo(left, right)
	assert.Equal(t, []float32{1, -1, 2, -2, 3, -3}, got)
}

func TestInterleaveStereo_UnequalLengths(t *testing.T) {
	got := InterleaveStereo([]float32{1, 2, 3}, []float32{9})
	assert.Equal(t, []float32{1, 9}, got)
}

func TestDeinterleaveStereo(t *testing.T) {
	left, right := DeinterleaveStereo([]float32{1, -1, 2, -2, 3, -3})
	assert.Equal(t, []float32{1, 2, 3}, left)
	assert.Equal(t, []float32{-1, -2, -3}, right)
}

func TestDeinterleaveStereo_OddTail(t *testing.T) {
	left, right := DeinterleaveStereo([]float32{1, -1, 7})
	assert.Equal(t, []float32{1}, left)
	assert.Equal(t, []float32{-1}, right)
}

func TestInterleaveRoundTrip(t *testing.T) {
	left := []float32{0.1, 0.2, 0.3, 0.4}
	right := []float32{0.5, 0.6, 0.7, 0.8}

	gotL, gotR := DeinterleaveStereo(InterleaveStereo(left, right))
	require.Equal(t, left, gotL)
	require.Equal(t, right, gotR)
}
