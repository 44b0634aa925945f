package section

import (
	"encoding/binary"
	"fmt"
)

// Footer is the trailer appended after the chunk payload stream: the per-chunk
// byte-offset lookup table, the dimension and chunk-shape metadata, the
// dimension count, and a pointer back to where the LUT starts. Every field is
// little-endian int64, serialized in the order given by Bytes.
type Footer struct {
	// ChunkOffsets holds, for each chunk, the byte offset just past its last
	// byte, measured from the end of the 3-byte header: chunk i occupies
	// [ChunkOffsets[i-1], ChunkOffsets[i]), with chunk 0 starting at 0.
	ChunkOffsets []int64
	// Dims holds the array's extent on each axis.
	Dims []int64
	// Chunks holds the chunk shape's extent on each axis.
	Chunks []int64
	// LUTStart is the byte offset, measured from the end of the 3-byte header,
	// of the first LUT byte.
	LUTStart int64
}

// R returns the dimension count implied by Dims.
func (f Footer) R() int64 {
	return int64(len(f.Dims))
}

// Bytes serializes the footer in the order: chunkOffsets, dims, chunks, R, lutStart.
func (f Footer) Bytes() []byte {
	r := len(f.Dims)
	k := len(f.ChunkOffsets)
	buf := make([]byte, (k+2*r+2)*int64Size)

	pos := 0
	for _, v := range f.ChunkOffsets {
		binary.LittleEndian.PutUint64(buf[pos:], uint64(v))
		pos += int64Size
	}
	for _, v := range f.Dims {
		binary.LittleEndian.PutUint64(buf[pos:], uint64(v))
		pos += int64Size
	}
	for _, v := range f.Chunks {
		binary.LittleEndian.PutUint64(buf[pos:], uint64(v))
		pos += int64Size
	}
	binary.LittleEndian.PutUint64(buf[pos:], uint64(r))
	pos += int64Size
	binary.LittleEndian.PutUint64(buf[pos:], uint64(f.LUTStart))

	return buf
}

// ParseFooter recovers the footer from the tail of a complete file. fileBytes
// must be the entire file, header included; the LUT start and dimension count
// are read from the last two trailer fields, which in turn locate every other
// field without the caller needing to track K or R separately.
func ParseFooter(fileBytes []byte) (Footer, error) {
	n := len(fileBytes)
	if n < HeaderSize+2*int64Size {
		return Footer{}, fmt.Errorf("section: file too short for a footer: %d bytes", n)
	}

	lutStart := int64(binary.LittleEndian.Uint64(fileBytes[n-int64Size:]))
	r := int64(binary.LittleEndian.Uint64(fileBytes[n-2*int64Size : n-int64Size]))
	if r < 1 {
		return Footer{}, fmt.Errorf("section: invalid dimension count %d", r)
	}

	chunkShapeEnd := n - 2*int64Size
	dimsChunksBytes := int(2 * r * int64Size)
	chunkOffsetsStart := HeaderSize + int(lutStart)
	chunkOffsetsEnd := chunkShapeEnd - dimsChunksBytes

	if chunkOffsetsStart < HeaderSize || chunkOffsetsEnd < chunkOffsetsStart {
		return Footer{}, fmt.Errorf("section: inconsistent footer bounds (lutStart=%d, R=%d, fileLen=%d)", lutStart, r, n)
	}

	k := (chunkOffsetsEnd - chunkOffsetsStart) / int64Size

	readInt64s := func(start, count int) []int64 {
		out := make([]int64, count)
		for i := range out {
			out[i] = int64(binary.LittleEndian.Uint64(fileBytes[start+i*int64Size:]))
		}

		return out
	}

	footer := Footer{
		ChunkOffsets: readInt64s(chunkOffsetsStart, k),
		Dims:         readInt64s(chunkOffsetsEnd, int(r)),
		Chunks:       readInt64s(chunkOffsetsEnd+int(r)*int64Size, int(r)),
		LUTStart:     lutStart,
	}

	return footer, nil
}
