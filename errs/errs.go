// Package errs defines the sentinel errors returned by the om-encoder packages.
//
// Callers should compare against these values with errors.Is rather than parsing
// error strings; call sites wrap them with fmt.Errorf("%w: ...") to attach detail.
package errs

import "errors"

var (
	// ErrDimensionMismatch indicates the caller's array shape or read window does
	// not have the same rank as the encoder's configured dimensions, or the
	// array's length does not match the product of its stated shape.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrOutOfRange indicates an arrayRead window has a negative, out-of-bounds, or
	// empty extent on some axis, or a call offset lies outside the window's
	// chunk count.
	ErrOutOfRange = errors.New("array read window out of range")

	// ErrChunkAlignment indicates arrayRead is not aligned to the chunk grid on a
	// non-fastest axis.
	ErrChunkAlignment = errors.New("array read window is not chunk-aligned")

	// ErrChunkOverflow indicates the cumulative number of chunks emitted would
	// exceed the total chunk count implied by the configured dimensions. The
	// encoder's WriteTrailer also returns it when fewer than that total have
	// been written.
	ErrChunkOverflow = errors.New("chunk overflow")

	// ErrSinkFailure wraps a write failure from the caller-supplied backend sink.
	ErrSinkFailure = errors.New("sink write failed")

	// ErrInvalidDimensions indicates dimensions is empty or contains a non-positive
	// extent.
	ErrInvalidDimensions = errors.New("invalid dimensions")

	// ErrInvalidChunkShape indicates chunkDimensions has a different rank than
	// dimensions, or contains a non-positive extent.
	ErrInvalidChunkShape = errors.New("invalid chunk shape")

	// ErrInvalidScaleFactor indicates the configured scale factor is zero, NaN, or
	// infinite.
	ErrInvalidScaleFactor = errors.New("invalid scale factor")

	// ErrEncoderClosed indicates a write method was called after the encoder was
	// closed by a successful WriteTrailer, by Close, or by a sink failure.
	ErrEncoderClosed = errors.New("encoder already closed")
)
