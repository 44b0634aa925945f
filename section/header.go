package section

import "fmt"

// Header is the fixed 3-byte prefix of every file: a 2-byte "OM" magic followed
// by a 1-byte format version.
type Header struct {
	Version uint8
}

// NewHeader returns the header for the current format version.
func NewHeader() Header {
	return Header{Version: Version}
}

// Bytes serializes the header.
func (h Header) Bytes() []byte {
	return []byte{MagicByte0, MagicByte1, h.Version}
}

// ParseHeader validates and parses a 3-byte header prefix.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("section: header requires %d bytes, got %d", HeaderSize, len(data))
	}

	if data[0] != MagicByte0 || data[1] != MagicByte1 {
		return Header{}, fmt.Errorf("section: bad magic %#x %#x", data[0], data[1])
	}

	return Header{Version: data[2]}, nil
}
