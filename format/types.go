// Package format defines the small value types shared by the codec, section,
// and encoder packages: how a chunk's floats are quantized, and how recovery
// dump snapshots are compressed.
package format

// CompressionMode selects how Quantize maps a float32 onto the int16 domain.
type CompressionMode uint8

const (
	// Linear scales the value directly: t = v * scalefactor.
	Linear CompressionMode = 0x1
	// LogarithmicLinear applies log10(1+v) before scaling: t = log10(1+v) * scalefactor.
	// Only meaningful for non-negative source values.
	LogarithmicLinear CompressionMode = 0x2
)

func (m CompressionMode) String() string {
	switch m {
	case Linear:
		return "Linear"
	case LogarithmicLinear:
		return "LogarithmicLinear"
	default:
		return "Unknown"
	}
}

// CompressionType identifies the codec used to compress a recovery dump's
// retained input slabs. It has no bearing on the chunk stream's wire format,
// which is bit-packed by the codec package and never passes through here.
type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1 // No compression.
	CompressionZstd CompressionType = 0x2 // Zstandard compression.
	CompressionS2   CompressionType = 0x3 // S2 compression.
	CompressionLZ4  CompressionType = 0x4 // LZ4 compression.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
