package walk

import (
	"fmt"

	"github.com/omfile/om-encoder/codec"
	"github.com/omfile/om-encoder/errs"
	"github.com/omfile/om-encoder/format"
	"github.com/omfile/om-encoder/internal/pool"
)

// Walker is the streaming state machine that turns successive slabs of a
// caller's source array into packed chunk payloads. It tracks exactly one
// piece of state across calls: the index of the next chunk to emit in the
// file's row-major chunk order.
type Walker struct {
	grid  Grid
	scale float32
	mode  format.CompressionMode

	chunkIndex int64
	chunkBuf   []int16
}

// NewWalker builds a Walker over a file shaped by dims and partitioned into
// chunks of shape chunkDims, quantizing with the given scale factor and mode.
func NewWalker(dims, chunkDims []int64, scale float32, mode format.CompressionMode) (*Walker, error) {
	grid, err := NewGrid(dims, chunkDims)
	if err != nil {
		return nil, err
	}

	maxElems := int(product(chunkDims))

	return &Walker{
		grid:     grid,
		scale:    scale,
		mode:     mode,
		chunkBuf: make([]int16, maxElems),
	}, nil
}

// Done reports whether every chunk in the file's grid has been emitted.
func (w *Walker) Done() bool {
	return w.chunkIndex >= w.grid.Total()
}

// ChunkIndex returns the index of the next chunk WriteNextChunks will emit.
func (w *Walker) ChunkIndex() int64 {
	return w.chunkIndex
}

// WriteNextChunks packs exactly one chunk — the one covered by cOffset within
// the read window [readLo, readHi) of array — appending its bit-packed bytes
// to dst and returning their length.
//
// array is a dense, row-major slab shaped by arrayDims. readLo and readHi
// name, in slab-local coordinates, the hyper-rectangular window of that slab
// available for this call; cOffset selects which chunk of that
// window's own chunk grid to emit, starting at 0 and advancing by one on
// every call until done is true, at which point the caller must supply the
// next slab (if any) with cOffset reset to 0.
//
// readLo/readHi must be chunk-aligned on every axis but the last (the
// fastest-varying axis may be partial, so row-by-row streaming on that axis
// does not require chunk-sized writes).
func (w *Walker) WriteNextChunks(array []float32, arrayDims, readLo, readHi []int64, cOffset int64, dst *pool.ByteBuffer) (n int, nextCOffset int64, done bool, err error) {
	r := w.grid.R()
	if len(arrayDims) != r || len(readLo) != r || len(readHi) != r {
		return 0, cOffset, false, fmt.Errorf("%w: expected rank %d", errs.ErrDimensionMismatch, r)
	}
	if int64(len(array)) != product(arrayDims) {
		return 0, cOffset, false, fmt.Errorf("%w: array length %d does not match dimensions", errs.ErrDimensionMismatch, len(array))
	}

	callExtent, putCallExtent := pool.GetInt64Slice(r)
	defer putCallExtent()
	for i := 0; i < r; i++ {
		if readLo[i] < 0 || readHi[i] > arrayDims[i] || readHi[i] <= readLo[i] {
			return 0, cOffset, false, fmt.Errorf("%w: axis %d range [%d,%d) invalid for extent %d", errs.ErrOutOfRange, i, readLo[i], readHi[i], arrayDims[i])
		}
		callExtent[i] = readHi[i] - readLo[i]
	}
	for i := 0; i < r-1; i++ {
		if readLo[i]%w.grid.Chunks[i] != 0 {
			return 0, cOffset, false, fmt.Errorf("%w: axis %d start %d is not chunk-aligned", errs.ErrChunkAlignment, i, readLo[i])
		}
		if readHi[i]%w.grid.Chunks[i] != 0 && readHi[i] != arrayDims[i] {
			return 0, cOffset, false, fmt.Errorf("%w: axis %d end %d is not chunk-aligned", errs.ErrChunkAlignment, i, readHi[i])
		}
	}

	callGrid, err := NewGrid(callExtent, w.grid.Chunks)
	if err != nil {
		return 0, cOffset, false, err
	}
	m := callGrid.Total()
	if cOffset < 0 || cOffset >= m {
		return 0, cOffset, false, fmt.Errorf("%w: call offset %d out of [0,%d)", errs.ErrOutOfRange, cOffset, m)
	}
	if w.chunkIndex+(m-cOffset) > w.grid.Total() {
		return 0, cOffset, false, fmt.Errorf("%w: would emit more than the configured %d chunks", errs.ErrChunkOverflow, w.grid.Total())
	}

	fileCoord := w.grid.Coord(w.chunkIndex)
	callCoord := callGrid.Coord(cOffset)
	extent := w.grid.Extent(fileCoord)

	base, putBase := pool.GetInt64Slice(r)
	defer putBase()
	for i := 0; i < r; i++ {
		base[i] = readLo[i] + callCoord[i]*w.grid.Chunks[i]
	}

	elems := int(product(extent))
	gatherChunk(array, arrayDims, readLo, readHi, base, extent, w.scale, w.mode, w.chunkBuf[:elems])

	rows := 1
	if r > 1 {
		rows = int(product(extent[:r-1]))
	}
	cols := int(extent[r-1])
	codec.DeltaEncode2D(w.chunkBuf[:elems], rows, cols)

	packed := codec.Pack16(w.chunkBuf[:elems])
	dst.MustWrite(packed)

	w.chunkIndex++
	done = cOffset+1 >= m

	return len(packed), cOffset + 1, done, nil
}

// gatherChunk copies one chunk's elements out of array into dst, quantizing
// each one, using the longest contiguous run available at every position.
//
// A run starting at the fastest axis extends to the next slower axis only
// when every axis faster than it (including the fastest) spans its read
// range, the chunk's extent, and the source array's own extent in full —
// i.e. the chunk spans that whole axis with nothing to skip around. The
// first axis (from fast to slow) where that fails caps the run length;
// axes slower than that are walked one index at a time.
func gatherChunk(array []float32, arrayDims, readLo, readHi, base, extent []int64, scale float32, mode format.CompressionMode, dst []int16) {
	r := len(arrayDims)
	arrayStrides := strides(arrayDims)
	chunkStrides := strides(extent)

	runAxis := r - 1
	runLen := extent[r-1]
	linearRead := readHi[r-1]-readLo[r-1] == extent[r-1] && extent[r-1] == arrayDims[r-1]
	for axis := r - 2; axis >= 0 && linearRead; axis-- {
		if readHi[axis]-readLo[axis] == extent[axis] && extent[axis] == arrayDims[axis] {
			runAxis = axis
			runLen *= extent[axis]
			continue
		}

		linearRead = false
	}

	// Walk the outer axes (0..runAxis-1) with an odometer; each outer
	// position yields one contiguous run of runLen elements.
	outer := append([]int64{}, extent[:runAxis]...)
	idx := make([]int64, runAxis)
	for {
		var srcOffset, dstOffset int64
		for i := 0; i < runAxis; i++ {
			srcOffset += (base[i] + idx[i]) * arrayStrides[i]
			dstOffset += idx[i] * chunkStrides[i]
		}
		for i := runAxis; i < r; i++ {
			srcOffset += base[i] * arrayStrides[i]
		}

		for t := int64(0); t < runLen; t++ {
			dst[dstOffset+t] = codec.Quantize(array[srcOffset+t], scale, mode)
		}

		if !advanceOdometer(idx, outer) {
			return
		}
	}
}

// advanceOdometer increments idx as a mixed-radix counter bounded by limit,
// reporting whether it wrapped back to all zeros (i.e. is exhausted).
func advanceOdometer(idx, limit []int64) bool {
	for i := len(idx) - 1; i >= 0; i-- {
		idx[i]++
		if idx[i] < limit[i] {
			return true
		}
		idx[i] = 0
	}

	return false
}
