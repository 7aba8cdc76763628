// Package compress provides the decompressors used to read HPKG heap chunks.
//
// A package heap is split into fixed-size chunks that are compressed
// independently. The container header names one compression id for the whole
// heap; GetCodec maps it to a Codec once, when the heap reader is built:
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err // unknown id, errs.ErrUnsupportedCompression
//	}
//	chunk, err := codec.Decompress(compressedChunk, chunkSize)
//
// # Supported Algorithms
//
//   - None (format.CompressionNone): chunks are stored as-is
//   - Zlib (format.CompressionZlib): the original HPKG heap compression
//   - Zstd (format.CompressionZstd): HPKG v2 default
//   - LZ4 (format.CompressionLZ4): block mode, fast decompression
//   - S2 (format.CompressionS2): block mode, Snappy compatible framing
//
// The uncompressed size of every chunk is known before it is read, so
// Decompress takes it as a parameter and rejects output of any other length.
// Compress exists for tests and tooling that need to produce heaps.
//
// # Thread Safety
//
// All codecs are stateless values; zstd and lz4 keep pooled internal state in
// sync.Pool instances. They are safe for concurrent use.
package compress
