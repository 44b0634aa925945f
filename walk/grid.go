// Package walk implements the chunk-grid arithmetic and the streaming state
// machine that gathers, quantizes, delta-transforms, and bit-packs one chunk
// at a time from a caller-supplied source array.
package walk

import (
	"fmt"

	"github.com/omfile/om-encoder/errs"
)

// Grid describes a chunked partition of a rank-R array: its extent on each
// axis and the chunk (tile) shape used to partition it. The same type models
// both the file's chunk grid (dims = array dimensions) and, transiently, the
// "call grid" the walker derives from one WriteNextChunks invocation's read
// window (dims = that window's extent).
type Grid struct {
	Dims   []int64
	Chunks []int64
}

// NewGrid validates and builds a Grid. Every extent must be positive and
// dims/chunks must share the same rank.
func NewGrid(dims, chunks []int64) (Grid, error) {
	if len(dims) == 0 {
		return Grid{}, fmt.Errorf("%w: dimensions must have at least one axis", errs.ErrInvalidDimensions)
	}
	for _, d := range dims {
		if d < 1 {
			return Grid{}, fmt.Errorf("%w: extent %d is not positive", errs.ErrInvalidDimensions, d)
		}
	}
	if len(chunks) != len(dims) {
		return Grid{}, fmt.Errorf("%w: chunk shape rank %d does not match dimension rank %d", errs.ErrInvalidChunkShape, len(chunks), len(dims))
	}
	for _, c := range chunks {
		if c < 1 {
			return Grid{}, fmt.Errorf("%w: extent %d is not positive", errs.ErrInvalidChunkShape, c)
		}
	}

	return Grid{Dims: dims, Chunks: chunks}, nil
}

// R returns the rank.
func (g Grid) R() int {
	return len(g.Dims)
}

// ChunksPerAxis returns Kᵢ = ceil(dᵢ/cᵢ) for every axis.
func (g Grid) ChunksPerAxis() []int64 {
	k := make([]int64, g.R())
	for i := range k {
		k[i] = ceilDiv(g.Dims[i], g.Chunks[i])
	}

	return k
}

// Total returns K, the total number of chunks in the grid.
func (g Grid) Total() int64 {
	total := int64(1)
	for _, k := range g.ChunksPerAxis() {
		total *= k
	}

	return total
}

// Coord decomposes a row-major chunk index into per-axis chunk coordinates.
func (g Grid) Coord(idx int64) []int64 {
	k := g.ChunksPerAxis()
	coord := make([]int64, g.R())
	for i := g.R() - 1; i >= 0; i-- {
		coord[i] = idx % k[i]
		idx /= k[i]
	}

	return coord
}

// Index computes the row-major chunk index for the given per-axis chunk
// coordinates: the inverse of Coord.
func (g Grid) Index(coord []int64) int64 {
	k := g.ChunksPerAxis()
	var idx int64
	for i := 0; i < g.R(); i++ {
		idx = idx*k[i] + coord[i]
	}

	return idx
}

// Extent returns the actual per-axis element count of the chunk at coord,
// shortened on any axis where coord names the final, partial chunk.
func (g Grid) Extent(coord []int64) []int64 {
	extent := make([]int64, g.R())
	for i := range extent {
		hi := min((coord[i]+1)*g.Chunks[i], g.Dims[i])
		extent[i] = hi - coord[i]*g.Chunks[i]
	}

	return extent
}

func ceilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}

// strides returns the row-major stride of each axis of a dense array shaped
// by extent: strides[i] is the number of elements between consecutive
// indices on axis i.
func strides(extent []int64) []int64 {
	s := make([]int64, len(extent))
	acc := int64(1)
	for i := len(extent) - 1; i >= 0; i-- {
		s[i] = acc
		acc *= extent[i]
	}

	return s
}

// product returns the product of every element, or 1 for an empty slice.
func product(extent []int64) int64 {
	total := int64(1)
	for _, e := range extent {
		total *= e
	}

	return total
}
