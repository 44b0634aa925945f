// Package pool provides reusable byte buffers for the encoder's two heap-owned
// staging areas: the chunk transform buffer and the output write buffer.
//
package pool

import (
	"io"
	"sync"
)

// Default and threshold sizes for the two buffer pools the encoder draws from.
const (
	// ChunkBufferDefaultSize is the default chunk transform buffer size: large
	// enough for the documented chunk-size sweet spot (up to 16000 elements) at
	// worst-case 2 bytes/element plus packer headroom, without reallocating.
	ChunkBufferDefaultSize = 1024 * 32 // 32KiB
	// ChunkBufferMaxThreshold caps how large a returned chunk buffer may be before
	// the pool discards it instead of retaining it, bounding memory bloat from one
	// unusually large chunk shape.
	ChunkBufferMaxThreshold = 1024 * 1024 // 1MiB

	// WriteBufferDefaultSize is the default output staging buffer size, kept
	// above a 1 MiB floor so a typical chunk stream rarely forces a regrow.
	WriteBufferDefaultSize = 1024 * 1024 // 1MiB
	// WriteBufferMaxThreshold caps retained write buffers.
	WriteBufferMaxThreshold = 1024 * 1024 * 16 // 16MiB
)

// ByteBuffer is a growable byte slice with amortized growth, sized either by
// direct construction (NewByteBuffer) or drawn from a ByteBufferPool.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// MustWrite writes data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// Slice returns a slice of the buffer from start to end.
// Panics if the indices are out of bounds.
func (bb *ByteBuffer) Slice(start, end int) []byte {
	if start < 0 || end < start || end > cap(bb.B) {
		panic("Slice: invalid indices")
	}

	return bb.B[start:end]
}

// SetLength sets the length of the buffer to n.
// Panics if n is negative or greater than the capacity.
func (bb *ByteBuffer) SetLength(n int) {
	if n < 0 || n > cap(bb.B) {
		panic("SetLength: invalid length")
	}
	bb.B = bb.B[:n]
}

// Extend extends the buffer by n bytes if there is sufficient capacity.
func (bb *ByteBuffer) Extend(n int) bool {
	curLen := len(bb.B)
	if cap(bb.B)-curLen < n {
		return false
	}

	bb.B = bb.B[:curLen+n]

	return true
}

// ExtendOrGrow extends the buffer by n bytes, growing it if necessary.
func (bb *ByteBuffer) ExtendOrGrow(n int) {
	if bb.Extend(n) {
		return
	}

	start := len(bb.B)
	bb.Grow(n)
	bb.B = bb.B[:start+n]
}

// Grow grows the buffer to ensure it can hold requiredBytes more bytes without
// reallocating. If the buffer has sufficient capacity, Grow does nothing.
//
// The growth strategy is as follows:
//   - For small buffers (<128KB), grow by a fixed 32KiB step to minimize reallocations.
//   - For larger buffers, grow by 25% of current capacity to balance memory usage and
//     reallocation cost.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return // Sufficient capacity
	}

	growBy := ChunkBufferDefaultSize
	if cap(bb.B) > 4*ChunkBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}

	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends the contents of data to the buffer, growing it as needed.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteTo writes the contents of the buffer to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool is a pool of ByteBuffers to minimize allocations.
//
// It uses sync.Pool internally to manage the buffers. The pool can be configured
// with a maximum size threshold to avoid retaining overly large buffers that
// could lead to memory bloat.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified
// default size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		// Discard overly large buffers to prevent memory bloat
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	chunkBufferPool = NewByteBufferPool(ChunkBufferDefaultSize, ChunkBufferMaxThreshold)
	writeBufferPool = NewByteBufferPool(WriteBufferDefaultSize, WriteBufferMaxThreshold)
)

// GetChunkBuffer retrieves a ByteBuffer from the default chunk transform pool.
func GetChunkBuffer() *ByteBuffer {
	return chunkBufferPool.Get()
}

// PutChunkBuffer returns a ByteBuffer to the default chunk transform pool.
func PutChunkBuffer(bb *ByteBuffer) {
	chunkBufferPool.Put(bb)
}

// GetWriteBuffer retrieves a ByteBuffer from the default output staging pool.
func GetWriteBuffer() *ByteBuffer {
	return writeBufferPool.Get()
}

// PutWriteBuffer returns a ByteBuffer to the default output staging pool.
func PutWriteBuffer(bb *ByteBuffer) {
	writeBufferPool.Put(bb)
}
