// Package samplerate provides audio sample rate conversion in pure Go.
//
// This library follows the design of libsamplerate (Secret Rabbit Code) by
// Erik de Castro Lopo, implementing band-limited sinc interpolation with
// Kaiser window filter design for high-quality sample rate conversion, plus
// cheap zero-order-hold and linear interpolators for constrained callers.
//
// # Features
//
//   - Three band-limited sinc variants from fastest to best quality
//   - Zero-order-hold and linear interpolation for minimal CPU cost
//   - Arbitrary conversion ratios from 1/256 to 256, changeable per call
//     with smooth ratio interpolation for glitch-free pitch sweeps
//   - Streaming API carrying filter state across chunks, so chunked and
//     one-shot conversion of the same signal agree
//   - Multi-channel interleaved processing for mono, stereo and surround
//   - Pure Go implementation with no CGO dependencies
//
// # Quick Start
//
// For simple one-shot conversion of a complete signal:
//
//	output, err := samplerate.Resample(samplerate.SincFastest, 1, input, 48000.0/44100.0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For streaming conversion with a reusable converter:
//
//	c, err := samplerate.New(samplerate.SincMediumQuality, 2)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close()
//
//	out := make([]float32, 8192)
//	for _, chunk := range chunks {
//	    _, gen, err := c.Process(chunk, out, ratio, false)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    writeOutput(out[:gen*2])
//	}
//	_, gen, _ := c.Process(nil, out, ratio, true)
//	writeOutput(out[:gen*2])
//
// # Converter Variants
//
// The library provides five conversion algorithms:
//
//   - [SincBestQuality]: highest stopband attenuation, for mastering and
//     archival work.
//   - [SincMediumQuality]: good quality at moderate cost, for most music.
//   - [SincFastest]: the fastest sinc variant, a good real-time default.
//   - [ZeroOrderHold]: repeats the previous sample. A baseline, not for
//     audible material.
//   - [Linear]: linear interpolation. Fast, with audible aliasing.
//
// [Variant.Name] and [Variant.Description] map variants to human-readable
// strings; [VariantByName] goes the other way for flag parsing.
//
// # Buffers and Flushing
//
// All audio is interleaved float32 in caller-allocated buffers. Size one-shot
// output buffers with [OutputCapacity]. The sinc variants delay the signal
// by their filter half-length; set endOfInput on the final Process call and
// keep draining until no frames are generated to recover the tail.
//
// # Errors
//
// All errors wrap package-level sentinels ([ErrInvalidRatio],
// [ErrChannelMismatch], [ErrSessionClosed], ...); test with errors.Is. A
// non-finite input sample latches the converter into a faulted state that
// only building a new converter clears.
//
// # Attribution
//
// The conversion algorithms follow libsamplerate by Erik de Castro Lopo
// (BSD-2-Clause). This is an independent implementation, not a binding.
package samplerate
