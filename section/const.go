// Package section defines the binary layout of the file's fixed-size sections:
// the 3-byte header and the trailer that carries the chunk offset LUT plus the
// dimension and chunk-shape metadata.
package section

const (
	// MagicByte0 and MagicByte1 are the two-byte "OM" magic at the start of every file.
	MagicByte0 = 0x4F
	MagicByte1 = 0x4D

	// Version is the current file format version, written as the third header byte.
	Version = 0x03

	// HeaderSize is the fixed size, in bytes, of the file header (magic + version).
	HeaderSize = 3

	// int64Size is the width of every trailer field; all trailer integers are
	// little-endian int64, matching the original source's on-disk layout.
	int64Size = 8
)
