// Package recovery implements an opt-in, in-memory retention window over the
// input slabs passed to an encoder's write path, so a sink failure mid-file
// leaves the caller with enough to replay the lost work into a fresh encoder.
package recovery

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/omfile/om-encoder/compress"
	"github.com/omfile/om-encoder/format"
)

// Slab is one retained input: the flat float32 data passed to WriteData,
// its shape, and the read window it covered.
type Slab struct {
	ArrayDims []int64
	ReadLo    []int64
	ReadHi    []int64

	// data holds the slab's float32 values, compressed with the Dump's
	// codec (format.CompressionNone leaves it uncompressed).
	data []byte
}

// Dump retains the most recent depth input slabs seen by a caller, each
// compressed with a caller-selected codec, for replay after a sink failure.
// A zero-value Dump (or one built with depth <= 0) retains nothing.
type Dump struct {
	codec format.CompressionType
	impl  compress.Codec
	depth int

	slabs []Slab
}

// NewDump builds a Dump that compresses retained slabs with codec and keeps
// at most depth of them (oldest evicted first). depth <= 0 is valid and
// disables retention entirely.
func NewDump(codec format.CompressionType, depth int) (*Dump, error) {
	if depth <= 0 {
		return &Dump{depth: 0}, nil
	}

	impl, err := compress.CreateCodec(codec, "recovery")
	if err != nil {
		return nil, err
	}

	return &Dump{codec: codec, impl: impl, depth: depth}, nil
}

// Retain compresses and stores one input slab, evicting the oldest retained
// slab if the dump is already at capacity. A no-op on a disabled Dump.
func (d *Dump) Retain(array []float32, arrayDims, readLo, readHi []int64) error {
	if d == nil || d.depth <= 0 {
		return nil
	}

	raw := floatsToBytes(array)
	compressed, err := d.impl.Compress(raw)
	if err != nil {
		return fmt.Errorf("recovery: compress retained slab: %w", err)
	}

	slab := Slab{
		ArrayDims: append([]int64{}, arrayDims...),
		ReadLo:    append([]int64{}, readLo...),
		ReadHi:    append([]int64{}, readHi...),
		data:      compressed,
	}

	d.slabs = append(d.slabs, slab)
	if len(d.slabs) > d.depth {
		d.slabs = d.slabs[len(d.slabs)-d.depth:]
	}

	return nil
}

// Slabs returns the currently retained slabs, oldest first, decompressing
// each one's data back into float32 values.
func (d *Dump) Slabs() ([]RestoredSlab, error) {
	if d == nil {
		return nil, nil
	}

	out := make([]RestoredSlab, 0, len(d.slabs))
	for _, s := range d.slabs {
		raw, err := d.impl.Decompress(s.data)
		if err != nil {
			return nil, fmt.Errorf("recovery: decompress retained slab: %w", err)
		}

		out = append(out, RestoredSlab{
			Array:     bytesToFloats(raw),
			ArrayDims: s.ArrayDims,
			ReadLo:    s.ReadLo,
			ReadHi:    s.ReadHi,
		})
	}

	return out, nil
}

// Len returns the number of slabs currently retained.
func (d *Dump) Len() int {
	if d == nil {
		return 0
	}

	return len(d.slabs)
}

// RestoredSlab is a retained slab after decompression, ready to replay
// through WriteData.
type RestoredSlab struct {
	Array     []float32
	ArrayDims []int64
	ReadLo    []int64
	ReadHi    []int64
}

func floatsToBytes(src []float32) []byte {
	out := make([]byte, 4*len(src))
	for i, v := range src {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}

	return out
}

func bytesToFloats(src []byte) []float32 {
	out := make([]float32, len(src)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(src[i*4:]))
	}

	return out
}
