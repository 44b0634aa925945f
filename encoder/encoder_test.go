package encoder

import (
	"bytes"
	"context"
	"errors"
	"math"
	"testing"

	"github.com/omfile/om-encoder/codec"
	"github.com/omfile/om-encoder/errs"
	"github.com/omfile/om-encoder/format"
	"github.com/omfile/om-encoder/section"
	"github.com/stretchr/testify/require"
)

// decodeChunk reverses one chunk's encode pipeline for test verification,
// since no decoder ships in this module.
func decodeChunk(packed []byte, rows, cols int, scale float32, mode format.CompressionMode) []float32 {
	n := rows * cols
	vals := codec.Unpack16(packed, n)
	codec.DeltaDecode2D(vals, rows, cols)

	out := make([]float32, n)
	for i, v := range vals {
		out[i] = codec.Dequantize(v, scale, mode)
	}

	return out
}

func encodeOneShot(t *testing.T, dims, chunks []int64, scale float32, mode format.CompressionMode, array []float32) (*bytes.Buffer, *Encoder) {
	t.Helper()

	enc, err := NewEncoder(context.Background(),
		WithDimensions(dims...),
		WithChunkDimensions(chunks...),
		WithScaleFactor(scale),
		WithCompression(mode),
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, enc.WriteHeader(&buf))
	require.NoError(t, enc.WriteData(&buf, array, dims, zeros(len(dims)), dims))
	require.NoError(t, enc.WriteTrailer(&buf))

	return &buf, enc
}

func zeros(n int) []int64 {
	out := make([]int64, n)
	return out
}

func TestEncoder_1D_OneChunkExactFit(t *testing.T) {
	buf, _ := encodeOneShot(t, []int64{4}, []int64{4}, 1.0, format.Linear, []float32{0, 1, 2, 3})

	footer, err := section.ParseFooter(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, footer.ChunkOffsets, 1)

	chunkBytes := buf.Bytes()[section.HeaderSize:section.HeaderSize+footer.ChunkOffsets[0]]
	got := decodeChunk(chunkBytes, 1, 4, 1.0, format.Linear)
	require.Equal(t, []float32{0, 1, 2, 3}, got)
}

func TestEncoder_1D_PartialLastChunk(t *testing.T) {
	buf, _ := encodeOneShot(t, []int64{5}, []int64{4}, 1.0, format.Linear, []float32{0, 1, 2, 3, 4})

	footer, err := section.ParseFooter(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, footer.ChunkOffsets, 2)

	data := buf.Bytes()
	chunk0 := data[section.HeaderSize : section.HeaderSize+footer.ChunkOffsets[0]]
	chunk1 := data[section.HeaderSize+footer.ChunkOffsets[0] : section.HeaderSize+footer.ChunkOffsets[1]]

	got0 := decodeChunk(chunk0, 1, 4, 1.0, format.Linear)
	got1 := decodeChunk(chunk1, 1, 1, 1.0, format.Linear)
	require.Equal(t, []float32{0, 1, 2, 3}, got0)
	require.Equal(t, []float32{4}, got1)
}

func TestEncoder_2D_DeltaPath(t *testing.T) {
	buf, _ := encodeOneShot(t, []int64{2, 4}, []int64{2, 4}, 1.0, format.Linear,
		[]float32{10, 11, 12, 13, 12, 13, 14, 15})

	footer, err := section.ParseFooter(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, footer.ChunkOffsets, 1)

	chunk := buf.Bytes()[section.HeaderSize : section.HeaderSize+footer.ChunkOffsets[0]]
	got := decodeChunk(chunk, 2, 4, 1.0, format.Linear)
	require.Equal(t, []float32{10, 11, 12, 13, 12, 13, 14, 15}, got)
}

func TestEncoder_NaNSentinel(t *testing.T) {
	buf, _ := encodeOneShot(t, []int64{3}, []int64{3}, 1.0, format.Linear,
		[]float32{float32(math.NaN()), 1.0, float32(math.NaN())})

	footer, err := section.ParseFooter(buf.Bytes())
	require.NoError(t, err)

	chunk := buf.Bytes()[section.HeaderSize : section.HeaderSize+footer.ChunkOffsets[0]]
	got := decodeChunk(chunk, 1, 3, 1.0, format.Linear)
	require.True(t, math.IsNaN(float64(got[0])))
	require.InDelta(t, 1.0, got[1], 1e-6)
	require.True(t, math.IsNaN(float64(got[2])))
}

func TestEncoder_LogarithmicMode(t *testing.T) {
	buf, _ := encodeOneShot(t, []int64{2}, []int64{2}, 100.0, format.LogarithmicLinear,
		[]float32{0.0, 9.0})

	footer, err := section.ParseFooter(buf.Bytes())
	require.NoError(t, err)

	chunk := buf.Bytes()[section.HeaderSize : section.HeaderSize+footer.ChunkOffsets[0]]
	raw := codec.Unpack16(chunk, 2)
	require.Equal(t, []int16{0, 100}, raw)

	got := decodeChunk(chunk, 1, 2, 100.0, format.LogarithmicLinear)
	require.InDelta(t, 0.0, got[0], math.Pow(10, 0.5/100)-1)
	require.InDelta(t, 9.0, got[1], math.Pow(10, 0.5/100)-1)
}

func TestEncoder_StreamingPush_MatchesOneShot(t *testing.T) {
	full := make([]float32, 32)
	for i := range full {
		full[i] = float32(i)
	}

	oneShot, _ := encodeOneShot(t, []int64{4, 8}, []int64{2, 8}, 1.0, format.Linear, full)

	enc, err := NewEncoder(context.Background(),
		WithDimensions(4, 8),
		WithChunkDimensions(2, 8),
		WithScaleFactor(1.0),
		WithCompression(format.Linear),
	)
	require.NoError(t, err)

	var streamed bytes.Buffer
	require.NoError(t, enc.WriteHeader(&streamed))

	slab1 := full[0:16]
	slab2 := full[16:32]
	require.NoError(t, enc.WriteData(&streamed, slab1, []int64{2, 8}, []int64{0, 0}, []int64{2, 8}))
	require.NoError(t, enc.WriteData(&streamed, slab2, []int64{2, 8}, []int64{0, 0}, []int64{2, 8}))
	require.NoError(t, enc.WriteTrailer(&streamed))

	require.Equal(t, oneShot.Bytes(), streamed.Bytes())
}

func TestEncoder_ClosedAfterTrailer(t *testing.T) {
	_, enc := encodeOneShot(t, []int64{2}, []int64{2}, 1.0, format.Linear, []float32{1, 2})

	var buf bytes.Buffer
	require.ErrorIs(t, enc.WriteHeader(&buf), errs.ErrEncoderClosed)
}

func TestEncoder_SinkFailurePoisonsEncoder(t *testing.T) {
	enc, err := NewEncoder(context.Background(),
		WithDimensions(4),
		WithChunkDimensions(4),
	)
	require.NoError(t, err)

	failing := failingWriter{}
	err = enc.WriteHeader(failing)
	require.Error(t, err)

	var buf bytes.Buffer
	err = enc.WriteData(&buf, []float32{1, 2, 3, 4}, []int64{4}, []int64{0}, []int64{4})
	require.Error(t, err)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errWriteFailed
}

var errWriteFailed = errors.New("write failed")

func TestEncoder_ChecksumAvailableAfterWrites(t *testing.T) {
	enc, err := NewEncoder(context.Background(), WithDimensions(2), WithChunkDimensions(2))
	require.NoError(t, err)

	_, ok := enc.Checksum()
	require.False(t, ok)

	var buf bytes.Buffer
	require.NoError(t, enc.WriteHeader(&buf))

	sum, ok := enc.Checksum()
	require.True(t, ok)
	require.NotZero(t, sum)
}
