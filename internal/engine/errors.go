package engine

import "errors"

// Conversion errors. The public package re-exports these; internal code
// wraps them with fmt.Errorf("%w: ...") for detail.
var (
	// ErrInvalidRatio indicates a ratio outside [1/MaxRatio, MaxRatio].
	ErrInvalidRatio = errors.New("conversion ratio out of range")

	// ErrChannelMismatch indicates a buffer whose length disagrees with
	// the channel count fixed at construction.
	ErrChannelMismatch = errors.New("buffer length does not match channel count")

	// ErrUnsupportedVariant indicates an unknown converter variant.
	ErrUnsupportedVariant = errors.New("unsupported converter variant")

	// ErrInvalidChannelCount indicates a non-positive channel count.
	ErrInvalidChannelCount = errors.New("channel count must be at least 1")

	// ErrBadState indicates an internally inconsistent conversion state.
	ErrBadState = errors.New("invalid converter state")

	// ErrEngineFaulted indicates a fatal numerical error (NaN or Inf in
	// generated output); the state is unusable until recreated.
	ErrEngineFaulted = errors.New("converter faulted on non-finite output")

	// ErrAllocationFailure indicates the filter history buffer for the
	// requested configuration cannot be represented.
	ErrAllocationFailure = errors.New("filter history buffer too large")
)
