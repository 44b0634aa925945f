// Package compress provides the compression codecs used by the recovery dump
// (see the recovery package) to shrink retained input slabs before holding them
// in memory.
//
// # Overview
//
// The wire format itself (see the format and section packages) never calls into
// this package: the chunk stream and trailer are a fixed byte layout. Compression
// here is strictly an auxiliary concern, applied only to the raw float32 slabs a
// recovery.Dump chooses to retain for replay after a sink failure.
//
// Four algorithms are available:
//   - None: no compression (fastest, largest)
//   - Zstd: best compression ratio, moderate speed
//   - S2: balanced compression and speed
//   - LZ4: fastest decompression, moderate compression
//
// # Architecture
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// CreateCodec and GetCodec construct a Codec from a format.CompressionType, so
// callers configuring omfile.WithRecoveryCodec never need to import this package
// directly.
//
// # Choosing an algorithm
//
// | Workload                        | Recommended |
// |----------------------------------|-------------|
// | Memory-constrained ingestion     | LZ4 or S2   |
// | Long-retention recovery windows  | Zstd        |
// | Debugging / CPU-constrained      | None        |
//
// # Thread safety
//
// All codec implementations are safe for concurrent use; Zstd and LZ4 pool their
// encoder/decoder state internally.
package compress
