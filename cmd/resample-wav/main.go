// Command resample-wav converts WAV audio files to a target sample rate.
//
// Usage:
//
//	resample-wav -rate 48000 input.wav output.wav
//	resample-wav -rate 16000 -variant sinc-best input.wav output.wav
//	resample-wav -rate 96000 -variant linear -v input.wav output.wav
//
// The variant names match [samplerate.Variant.Name]: sinc-best, sinc-medium,
// sinc-fastest, zero-order-hold and linear.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	samplerate "github.com/tphakala/go-samplerate"
)

const (
	// Frames per processing chunk. Larger chunks reduce call overhead.
	chunkFrames = 16384

	// Sample format constants
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	// CLI defaults
	defaultRate     = 48000
	minRequiredArgs = 2

	// PCM audio format tag for the WAV encoder.
	wavFormatPCM = 1
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	rate := flag.Int("rate", defaultRate, "Target sample rate in Hz (e.g. 16000, 44100, 48000, 96000)")
	variantName := flag.String("variant", samplerate.SincFastest.Name(), "Converter variant: sinc-best, sinc-medium, sinc-fastest, zero-order-hold, linear")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.wav output.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -rate 48000 input.wav output.wav        # Convert to 48kHz\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -rate 16000 speech.wav speech_16k.wav   # Downsample for speech\n", os.Args[0])
		return errors.New("insufficient arguments")
	}

	variant, err := samplerate.VariantByName(*variantName)
	if err != nil {
		return err
	}

	in, err := openWAVInput(args[0], *verbose)
	if err != nil {
		return err
	}
	defer in.Close()

	scale, err := pcmScale(in.bitDepth)
	if err != nil {
		return err
	}

	ratio := samplerate.RatioFor(float64(in.rate), float64(*rate))
	if !samplerate.IsValidRatio(ratio) {
		return fmt.Errorf("conversion from %d Hz to %d Hz is out of range", in.rate, *rate)
	}

	conv, err := samplerate.New(variant, in.channels)
	if err != nil {
		return err
	}
	defer conv.Close()

	if *verbose {
		log.Printf("Converter: %s (%s)", variant.Name(), variant.Description())
		log.Printf("Ratio: %.6f, latency: %d frames", ratio, conv.Latency())
	}

	outFile, err := os.Create(args[1])
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer outFile.Close()

	enc := wav.NewEncoder(outFile, *rate, in.bitDepth, in.channels, wavFormatPCM)

	start := time.Now()
	framesIn, framesOut, err := pump(in, enc, conv, ratio, scale)
	if err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize output: %w", err)
	}

	if *verbose {
		elapsed := time.Since(start)
		log.Printf("Converted %d frames to %d frames in %v", framesIn, framesOut, elapsed)
	}
	return nil
}

// pump streams audio from the decoder through the converter into the
// encoder, then drains the end-of-input flush.
func pump(in *wavInput, enc *wav.Encoder, conv *samplerate.Converter, ratio, scale float64) (framesIn, framesOut int64, err error) {
	ch := in.channels
	outFrames := samplerate.OutputCapacity(chunkFrames, ratio)

	intBuf := &audio.IntBuffer{
		Data:   make([]int, chunkFrames*ch),
		Format: in.format,
	}
	floatIn := make([]float32, 0, chunkFrames*ch)
	floatOut := make([]float32, outFrames*ch)
	writeBuf := &audio.IntBuffer{
		Data:   make([]int, 0, outFrames*ch),
		Format: &audio.Format{NumChannels: ch, SampleRate: enc.SampleRate},
	}

	for {
		n, err := in.decoder.PCMBuffer(intBuf)
		if err != nil {
			return framesIn, framesOut, fmt.Errorf("failed to read input: %w", err)
		}
		if n == 0 {
			break
		}
		// PCMBuffer can return a partial, channel-unaligned tail.
		n -= n % ch
		framesIn += int64(n / ch)

		floatIn = intsToFloat32(floatIn[:0], intBuf.Data[:n], scale)
		for off := 0; off < len(floatIn); {
			used, gen, err := conv.Process(floatIn[off:], floatOut, ratio, false)
			if err != nil {
				return framesIn, framesOut, err
			}
			off += used * ch
			if gen > 0 {
				if err := writeChunk(enc, writeBuf, floatOut[:gen*ch], scale); err != nil {
					return framesIn, framesOut, err
				}
				framesOut += int64(gen)
			}
			if used == 0 && gen == 0 {
				return framesIn, framesOut, errors.New("converter made no progress")
			}
		}
	}

	// Drain the filter history.
	for {
		_, gen, err := conv.Process(nil, floatOut, ratio, true)
		if err != nil {
			if errors.Is(err, samplerate.ErrSessionClosed) {
				break
			}
			return framesIn, framesOut, err
		}
		if gen == 0 {
			break
		}
		if err := writeChunk(enc, writeBuf, floatOut[:gen*ch], scale); err != nil {
			return framesIn, framesOut, err
		}
		framesOut += int64(gen)
	}
	return framesIn, framesOut, nil
}

// writeChunk converts one generated chunk back to PCM and hands it to the
// encoder.
func writeChunk(enc *wav.Encoder, buf *audio.IntBuffer, samples []float32, scale float64) error {
	buf.Data = float32ToInts(buf.Data[:0], samples, scale)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
