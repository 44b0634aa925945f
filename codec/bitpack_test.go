package codec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPack16_Unpack16_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		src  []int16
	}{
		{"empty", nil},
		{"all zero", []int16{0, 0, 0, 0}},
		{"small positive", []int16{0, 1, 2, 3}},
		{"small negative", []int16{0, -1, -2, -3}},
		{"mixed sign", []int16{10, -10, 20, -20, 0}},
		{"extremes", []int16{math.MinInt16, math.MaxInt16 - 1, 0}},
		{"single value", []int16{42}},
		{"wide spread", []int16{-32768, 32766, -1, 1, 16384, -16384}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			packed := Pack16(tt.src)
			require.LessOrEqual(t, len(packed), Bound(len(tt.src)))

			got := Unpack16(packed, len(tt.src))
			if len(tt.src) == 0 {
				require.Empty(t, got)
				return
			}
			require.Equal(t, tt.src, got)
		})
	}
}

func TestPack16_BoundNeverExceeded(t *testing.T) {
	for _, n := range []int{0, 1, 16, 128, 2000, 16000} {
		src := make([]int16, n)
		for i := range src {
			// Alternate extremes to force the widest possible bit width.
			if i%2 == 0 {
				src[i] = math.MinInt16
			} else {
				src[i] = math.MaxInt16 - 1
			}
		}

		packed := Pack16(src)
		require.LessOrEqual(t, len(packed), Bound(n), "n=%d", n)
	}
}

func TestZigzagEncodeDecode16(t *testing.T) {
	values := []int16{0, 1, -1, 2, -2, math.MaxInt16, math.MinInt16, 1000, -1000}
	for _, v := range values {
		z := zigzagEncode16(v)
		got := zigzagDecode16(z)
		require.Equal(t, v, got)
	}
}
