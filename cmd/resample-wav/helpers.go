package main

import (
	"fmt"
	"log"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// wavInput holds a validated input file and its format information.
type wavInput struct {
	file     *os.File
	decoder  *wav.Decoder
	rate     int
	channels int
	bitDepth int
	format   *audio.Format
}

// openWAVInput opens and validates a WAV file.
func openWAVInput(path string, verbose bool) (*wavInput, error) {
	inputFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	decoder := wav.NewDecoder(inputFile)
	if !decoder.IsValidFile() {
		_ = inputFile.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := decoder.Format()
	if verbose {
		log.Printf("Input format: %d Hz, %d channels, %d-bit",
			format.SampleRate, format.NumChannels, decoder.BitDepth)
	}

	return &wavInput{
		file:     inputFile,
		decoder:  decoder,
		rate:     format.SampleRate,
		channels: format.NumChannels,
		bitDepth: int(decoder.BitDepth),
		format:   format,
	}, nil
}

// Close closes the input file.
func (w *wavInput) Close() error {
	return w.file.Close()
}

// pcmScale returns the full-scale value for a PCM bit depth.
func pcmScale(bitDepth int) (float64, error) {
	switch bitDepth {
	case bitsPerSample16, bitsPerSample24, bitsPerSample32:
		return float64(int64(1) << (bitDepth - 1)), nil
	default:
		return 0, fmt.Errorf("unsupported bit depth: %d", bitDepth)
	}
}

// intsToFloat32 converts PCM integer samples to float32, appending to dst.
func intsToFloat32(dst []float32, src []int, scale float64) []float32 {
	inv := 1.0 / scale
	for _, s := range src {
		dst = append(dst, float32(float64(s)*inv))
	}
	return dst
}

// float32ToInts converts float32 samples back to PCM integers, appending to
// dst. Out-of-range values clip to the PCM range.
func float32ToInts(dst []int, src []float32, scale float64) []int {
	maxVal := int(scale) - 1
	minVal := -int(scale)
	for _, s := range src {
		v := int(math.Round(float64(s) * scale))
		if v > maxVal {
			v = maxVal
		} else if v < minVal {
			v = minVal
		}
		dst = append(dst, v)
	}
	return dst
}
