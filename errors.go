package samplerate

import (
	"errors"

	"github.com/tphakala/go-samplerate/internal/engine"
)

// Conversion errors. Errors returned by this package wrap one of these
// sentinels; test with errors.Is.
var (
	// ErrInvalidRatio indicates a conversion ratio outside the supported
	// range [1/256, 256].
	ErrInvalidRatio = engine.ErrInvalidRatio

	// ErrChannelMismatch indicates a buffer whose length disagrees with
	// the converter's channel count.
	ErrChannelMismatch = engine.ErrChannelMismatch

	// ErrUnsupportedVariant indicates an unknown converter variant.
	ErrUnsupportedVariant = engine.ErrUnsupportedVariant

	// ErrInvalidChannelCount indicates a channel count outside [1, 128].
	ErrInvalidChannelCount = engine.ErrInvalidChannelCount

	// ErrBadState indicates an internally inconsistent converter state.
	ErrBadState = engine.ErrBadState

	// ErrEngineFaulted indicates the converter produced a non-finite
	// sample and has latched into an unusable state. Build a new
	// converter; Reset does not clear a fault.
	ErrEngineFaulted = engine.ErrEngineFaulted

	// ErrAllocationFailure indicates the requested configuration needs a
	// filter history buffer too large to represent.
	ErrAllocationFailure = engine.ErrAllocationFailure

	// ErrSessionClosed indicates a call on a closed converter, or on a
	// stream whose end-of-input flush already completed.
	ErrSessionClosed = errors.New("converter session closed")
)
