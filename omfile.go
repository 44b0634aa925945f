// Package omfile provides convenient top-level wrappers around the encoder
// package for writing chunked, quantized, bit-packed OM files.
//
// # Basic Usage
//
// Creating and writing a file:
//
//	import "github.com/omfile/om-encoder"
//
//	enc, _ := omfile.NewEncoder(context.Background(),
//	    omfile.WithDimensions(4, 8),
//	    omfile.WithChunkDimensions(2, 8),
//	    omfile.WithScaleFactor(100),
//	)
//	_ = enc.WriteHeader(sink)
//	_ = enc.WriteData(sink, array, []int64{4, 8}, []int64{0, 0}, []int64{4, 8})
//	_ = enc.WriteTrailer(sink)
//
// # Package Structure
//
// This package re-exports the encoder package's constructor and options for
// the common case of writing one file end to end. For advanced usage —
// direct access to the chunk walker, codecs, or recovery dump — use the
// encoder, walk, codec, and recovery packages directly.
package omfile

import (
	"context"

	"github.com/omfile/om-encoder/encoder"
)

// Encoder writes one OM file: a 3-byte header, the concatenated packed
// chunk stream, and a trailer carrying the chunk offset table and shape
// metadata. See encoder.Encoder for the full method documentation.
type Encoder = encoder.Encoder

// Option configures an Encoder via NewEncoder.
type Option = encoder.Option

// Logger receives an Encoder's diagnostic warnings.
type Logger = encoder.Logger

// NewEncoder builds an Encoder from the given options. See encoder.NewEncoder.
func NewEncoder(ctx context.Context, opts ...Option) (*Encoder, error) {
	return encoder.NewEncoder(ctx, opts...)
}

// WithDimensions sets the array's extent on each axis (R >= 1, each >= 1).
func WithDimensions(dims ...int64) Option {
	return encoder.WithDimensions(dims...)
}

// WithChunkDimensions sets the chunk (tile) shape, one extent per axis of
// WithDimensions.
func WithChunkDimensions(chunks ...int64) Option {
	return encoder.WithChunkDimensions(chunks...)
}

// WithCompression selects the quantizer's compression mode.
func WithCompression(mode CompressionMode) Option {
	return encoder.WithCompression(mode)
}

// WithScaleFactor sets the quantizer's scale factor. Must be finite and
// non-zero.
func WithScaleFactor(scale float32) Option {
	return encoder.WithScaleFactor(scale)
}

// WithRecoveryCodec opts into retaining the most recent depth input slabs,
// compressed with codec, for replay after a sink failure.
func WithRecoveryCodec(codec CompressionType, depth int) Option {
	return encoder.WithRecoveryCodec(codec, depth)
}

// WithLogger installs a Logger for construction-time and runtime advisories.
func WithLogger(logger Logger) Option {
	return encoder.WithLogger(logger)
}
