package encoder

import (
	"context"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
	"github.com/omfile/om-encoder/errs"
	"github.com/omfile/om-encoder/internal/pool"
	"github.com/omfile/om-encoder/recovery"
	"github.com/omfile/om-encoder/section"
	"github.com/omfile/om-encoder/walk"
)

// Encoder drives the chunk walker over a caller's array data and frames the
// result into a complete file: a 3-byte header, the concatenated packed
// chunk stream, and a trailer carrying the chunk offset table plus shape
// metadata.
//
// One Encoder writes exactly one file. It is not safe for concurrent use;
// WriteHeader, WriteData, and WriteTrailer must be called in that order by a
// single goroutine. After a sink write fails, or after WriteTrailer
// succeeds, the Encoder is closed and WriteHeader, WriteData, and
// WriteTrailer return errs.ErrEncoderClosed.
type Encoder struct {
	ctx context.Context //nolint:containedctx // accepted only at construction, never threaded into transforms

	cfg    *Config
	grid   walk.Grid
	walker *walk.Walker
	dump   *recovery.Dump

	writeBuf          *pool.ByteBuffer
	chunkOffsets      []int64
	totalBytesWritten int64
	hasher            *xxhash.Digest

	closed bool
}

// NewEncoder validates opts into a Config and allocates the walker and
// staging buffers needed to write one file. It accepts a context only so a
// caller-supplied sink can be wired to its own cancellation; the context is
// never consulted inside the pure transform code in walk/codec.
func NewEncoder(ctx context.Context, opts ...Option) (*Encoder, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	grid, err := walk.NewGrid(cfg.dimensions, cfg.chunkDimensions)
	if err != nil {
		return nil, err
	}

	elems := int64(1)
	for _, c := range cfg.chunkDimensions {
		elems *= c
	}
	if bytes := elems * 4; bytes > chunkShapeWarnBytes {
		cfg.logger.Warnf("chunk shape %v is %d bytes, above the recommended %d byte ceiling", cfg.chunkDimensions, bytes, chunkShapeWarnBytes)
	}
	if elems < chunkElemsSweetSpotMin || elems > chunkElemsSweetSpotMax {
		cfg.logger.Warnf("chunk shape %v has %d elements, outside the recommended [%d,%d] sweet spot", cfg.chunkDimensions, elems, chunkElemsSweetSpotMin, chunkElemsSweetSpotMax)
	}

	walker, err := walk.NewWalker(cfg.dimensions, cfg.chunkDimensions, cfg.scaleFactor, cfg.mode)
	if err != nil {
		return nil, err
	}

	dump, err := recovery.NewDump(cfg.recoveryCodec, cfg.recoveryDepth)
	if err != nil {
		return nil, err
	}

	return &Encoder{
		ctx:          ctx,
		cfg:          cfg,
		grid:         grid,
		walker:       walker,
		dump:         dump,
		writeBuf:     pool.GetWriteBuffer(),
		chunkOffsets: make([]int64, 0, int(grid.Total())),
		hasher:       xxhash.New(),
	}, nil
}

// WriteHeader emits the 3-byte magic-and-version prefix to sink.
func (e *Encoder) WriteHeader(sink io.Writer) error {
	if e.closed {
		return errs.ErrEncoderClosed
	}

	header := []byte{section.MagicByte0, section.MagicByte1, section.Version}

	return e.flush(sink, header)
}

// WriteData drives the walker over one input slab, flushing each packed
// chunk to sink as soon as it is produced. array is a dense, row-major slab
// shaped by arrayDims; readLo/readHi name the hyper-rectangular window of
// that slab this call contributes, in array-local coordinates.
//
// If a recovery codec was configured, the raw slab is retained (compressed)
// before any chunk is emitted, so a failure partway through this call still
// leaves the slab recoverable.
func (e *Encoder) WriteData(sink io.Writer, array []float32, arrayDims, readLo, readHi []int64) error {
	if e.closed {
		return errs.ErrEncoderClosed
	}

	if err := e.dump.Retain(array, arrayDims, readLo, readHi); err != nil {
		e.cfg.logger.Warnf("recovery retention failed: %v", err)
	}

	cOffset := int64(0)
	for {
		e.writeBuf.Reset()

		_, next, done, err := e.walker.WriteNextChunks(array, arrayDims, readLo, readHi, cOffset, e.writeBuf)
		if err != nil {
			return err
		}

		if err := e.flush(sink, e.writeBuf.Bytes()); err != nil {
			return err
		}
		e.chunkOffsets = append(e.chunkOffsets, e.totalBytesWritten-section.HeaderSize)

		cOffset = next
		if done {
			return nil
		}
	}
}

// WriteTrailer appends the chunk offset table and shape metadata and
// flushes it to sink. It requires every chunk named by the configured
// dimensions to have been written first. After it returns successfully the
// Encoder is closed.
func (e *Encoder) WriteTrailer(sink io.Writer) error {
	if e.closed {
		return errs.ErrEncoderClosed
	}
	if !e.walker.Done() {
		return fmt.Errorf("%w: %d of %d chunks written", errs.ErrChunkOverflow, e.walker.ChunkIndex(), e.grid.Total())
	}

	footer := section.Footer{
		ChunkOffsets: e.chunkOffsets,
		Dims:         e.cfg.dimensions,
		Chunks:       e.cfg.chunkDimensions,
		LUTStart:     e.totalBytesWritten - section.HeaderSize,
	}

	if err := e.flush(sink, footer.Bytes()); err != nil {
		return err
	}

	e.closed = true

	return nil
}

// Checksum returns the xxHash64 digest of every byte written to the sink so
// far, and whether anything has been written yet. It is an observability aid
// only: the digest is not part of the file's byte layout.
func (e *Encoder) Checksum() (uint64, bool) {
	if e.totalBytesWritten == 0 {
		return 0, false
	}

	return e.hasher.Sum64(), true
}

// RecoveredSlabs returns the input slabs currently retained by the
// configured recovery dump, decompressed and ready to replay into a fresh
// Encoder. Empty if no recovery codec was configured.
func (e *Encoder) RecoveredSlabs() ([]recovery.RestoredSlab, error) {
	return e.dump.Slabs()
}

// Close releases the Encoder's pooled buffers without writing a trailer.
// Safe to call after WriteTrailer or on an already-closed Encoder.
func (e *Encoder) Close() error {
	if e.writeBuf != nil {
		pool.PutWriteBuffer(e.writeBuf)
		e.writeBuf = nil
	}
	e.closed = true

	return nil
}

func (e *Encoder) flush(sink io.Writer, data []byte) error {
	if e.ctx != nil {
		if err := e.ctx.Err(); err != nil {
			e.closed = true
			return fmt.Errorf("%w: %v", errs.ErrSinkFailure, err)
		}
	}

	if _, err := sink.Write(data); err != nil {
		e.closed = true
		return fmt.Errorf("%w: %v", errs.ErrSinkFailure, err)
	}

	e.hasher.Write(data) //nolint:errcheck // xxhash.Digest.Write never returns an error
	e.totalBytesWritten += int64(len(data))

	return nil
}
