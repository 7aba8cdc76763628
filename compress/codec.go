package compress

import (
	"fmt"

	"github.com/arloliu/hpkg/errs"
	"github.com/arloliu/hpkg/format"
)

// Compressor compresses one heap chunk.
//
// Package files are never written by this module; compressors exist so that
// tests and tooling can build heaps that the decompressors must read back.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller
	//   - Input slice is not modified
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses one heap chunk whose uncompressed size is known in advance.
//
// Heap chunks always record their uncompressed size, so implementations
// allocate exactly once and reject output of any other length.
//
// Example:
//
//	decompressor := NewZstdCompressor()
//	chunk, err := decompressor.Decompress(compressedChunk, 64*1024)
//	if err != nil {
//	    return fmt.Errorf("decompression failed: %w", err)
//	}
//
// Thread Safety: all decompressors in this package are safe for concurrent use.
type Decompressor interface {
	// Decompress decompresses data into a new slice of exactly size bytes.
	//
	// Error conditions:
	//   - Returns error if input data is corrupted or invalid
	//   - Returns error if the decompressed length differs from size
	Decompress(data []byte, size int) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZlib: NewZlibCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
	format.CompressionS2:   NewS2Compressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
//
// Parameters:
//   - compressionType: Compression id from the container header
//
// Returns:
//   - Codec: Shared codec instance for the specified type
//   - error: errs.ErrUnsupportedCompression for an unrecognized id
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, compressionType)
}

// checkSize verifies the decompressed length of a chunk.
func checkSize(algorithm string, got, want int) error {
	if got != want {
		return fmt.Errorf("%s decompressed size mismatch: expected %d, got %d", algorithm, want, got)
	}

	return nil
}
