package compress

// ZstdCompressor handles Zstandard compressed heap chunks.
//
// Two implementations exist: the default pure Go one based on
// klauspost/compress/zstd, and a cgo one based on valyala/gozstd that is
// selected with the "gozstd" build tag.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Example:
//
//	compressor := NewZstdCompressor()
//	chunk, err := compressor.Decompress(data, chunkSize)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
