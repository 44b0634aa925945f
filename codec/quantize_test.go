package codec

import (
	"math"
	"testing"

	"github.com/omfile/om-encoder/format"
	"github.com/stretchr/testify/require"
)

func TestQuantize_NaN(t *testing.T) {
	code := Quantize(float32(math.NaN()), 1.0, format.Linear)
	require.Equal(t, int16(math.MaxInt16), code)
}

func TestQuantize_Linear_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		v     float32
		scale float32
	}{
		{"zero", 0, 1.0},
		{"integer", 3, 1.0},
		{"fraction rounds up", 1.5, 1.0},
		{"fraction rounds down", -1.5, 1.0},
		{"scaled", 0.25, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := Quantize(tt.v, tt.scale, format.Linear)
			back := Dequantize(code, tt.scale, format.Linear)
			require.InDelta(t, tt.v, back, 0.5/float64(tt.scale)+1e-6)
		})
	}
}

func TestQuantize_SaturatesAwayFromSentinel(t *testing.T) {
	code := Quantize(1e30, 1.0, format.Linear)
	require.Equal(t, int16(math.MaxInt16-1), code)
	require.NotEqual(t, int16(math.MaxInt16), code, "non-NaN saturation must never collide with the NaN sentinel")

	low := Quantize(-1e30, 1.0, format.Linear)
	require.Equal(t, int16(math.MinInt16), low)
}

func TestQuantize_LogarithmicLinear(t *testing.T) {
	// log10(1+9.0) * 100 = log10(10) * 100 = 100
	code := Quantize(9.0, 100, format.LogarithmicLinear)
	require.Equal(t, int16(100), code)

	code0 := Quantize(0.0, 100, format.LogarithmicLinear)
	require.Equal(t, int16(0), code0)

	back := Dequantize(code, 100, format.LogarithmicLinear)
	require.InDelta(t, 9.0, back, math.Pow(10, 0.5/100)-1)
}

func TestQuantize_RoundHalfAwayFromZero(t *testing.T) {
	require.Equal(t, int16(2), Quantize(1.5, 1.0, format.Linear))
	require.Equal(t, int16(-2), Quantize(-1.5, 1.0, format.Linear))
}

func TestDequantize_Sentinel(t *testing.T) {
	back := Dequantize(math.MaxInt16, 1.0, format.Linear)
	require.True(t, math.IsNaN(float64(back)))
}
