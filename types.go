package omfile

import "github.com/omfile/om-encoder/format"

// CompressionMode selects how the quantizer maps a float32 onto the int16
// domain.
type CompressionMode = format.CompressionMode

// Quantizer compression modes.
const (
	Linear            = format.Linear
	LogarithmicLinear = format.LogarithmicLinear
)

// CompressionType identifies the codec used to compress a recovery dump's
// retained input slabs.
type CompressionType = format.CompressionType

// Recovery dump compression algorithms.
const (
	CompressionNone = format.CompressionNone
	CompressionZstd = format.CompressionZstd
	CompressionS2   = format.CompressionS2
	CompressionLZ4  = format.CompressionLZ4
)
