package section

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeader_BytesAndParse(t *testing.T) {
	h := NewHeader()
	b := h.Bytes()
	require.Equal(t, []byte{0x4F, 0x4D, 0x03}, b)

	parsed, err := ParseHeader(b)
	require.NoError(t, err)
	require.Equal(t, h, parsed)
}

func TestParseHeader_BadMagic(t *testing.T) {
	_, err := ParseHeader([]byte{0x00, 0x00, 0x03})
	require.Error(t, err)
}

func TestParseHeader_TooShort(t *testing.T) {
	_, err := ParseHeader([]byte{0x4F, 0x4D})
	require.Error(t, err)
}
