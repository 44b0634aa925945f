// Package codec implements the three pure transforms applied to one chunk's
// worth of float32 values before they reach the wire: quantization to int16,
// an in-place 2D delta, and zig-zag variable-width bit-packing.
package codec

import (
	"math"

	"github.com/omfile/om-encoder/format"
)

// sentinelNaN is the int16 code reserved for a NaN input. MaxInt16 is used
// and excluded from the non-NaN saturation range below.
const sentinelNaN = math.MaxInt16

// Quantize converts one float32 sample into an int16 code under the given
// scale factor and compression mode.
//
// NaN maps to the sentinel code math.MaxInt16. Every other value is scaled,
// rounded half-away-from-zero, and saturated into [MinInt16, MaxInt16-1] —
// MaxInt16 itself stays reserved for NaN, so a value that would otherwise
// round up to it is clamped one step short.
func Quantize(v float32, scale float32, mode format.CompressionMode) int16 {
	if math.IsNaN(float64(v)) {
		return sentinelNaN
	}

	f64 := float64(v)
	var t float64
	if mode == format.LogarithmicLinear {
		t = math.Log10(1+f64) * float64(scale)
	} else {
		t = f64 * float64(scale)
	}

	t = roundHalfAwayFromZero(t)

	switch {
	case t >= sentinelNaN:
		return sentinelNaN - 1
	case t <= math.MinInt16:
		return math.MinInt16
	default:
		return int16(t)
	}
}

// Dequantize is the exact mathematical inverse of Quantize, used only by this
// module's own tests to validate round-trip properties since no decoder ships
// here. The sentinel code decodes to NaN regardless of mode.
func Dequantize(code int16, scale float32, mode format.CompressionMode) float32 {
	if code == sentinelNaN {
		return float32(math.NaN())
	}

	t := float64(code) / float64(scale)
	if mode == format.LogarithmicLinear {
		return float32(math.Pow(10, t) - 1)
	}

	return float32(t)
}

func roundHalfAwayFromZero(v float64) float64 {
	if v >= 0 {
		return math.Floor(v + 0.5)
	}

	return math.Ceil(v - 0.5)
}
