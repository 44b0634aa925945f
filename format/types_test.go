package format

import "testing"

func TestCompressionMode_String(t *testing.T) {
	cases := map[CompressionMode]string{
		Linear:            "Linear",
		LogarithmicLinear: "LogarithmicLinear",
		CompressionMode(0xFF): "Unknown",
	}

	for mode, want := range cases {
		if got := mode.String(); got != want {
			t.Errorf("CompressionMode(%d).String() = %q, want %q", mode, got, want)
		}
	}
}

func TestCompressionType_String(t *testing.T) {
	cases := map[CompressionType]string{
		CompressionNone: "None",
		CompressionZstd: "Zstd",
		CompressionS2:   "S2",
		CompressionLZ4:  "LZ4",
		CompressionType(0xFF): "Unknown",
	}

	for typ, want := range cases {
		if got := typ.String(); got != want {
			t.Errorf("CompressionType(%d).String() = %q, want %q", typ, got, want)
		}
	}
}
