package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// ZlibCompressor handles zlib compressed heap chunks, the original HPKG heap compression.
type ZlibCompressor struct{}

var _ Codec = (*ZlibCompressor)(nil)

// NewZlibCompressor creates a new zlib compressor.
func NewZlibCompressor() ZlibCompressor {
	return ZlibCompressor{}
}

// Compress compresses the input data as a zlib stream.
func (c ZlibCompressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decompress inflates a zlib stream of exactly size bytes.
//
// A stream that ends early or carries trailing data is rejected.
func (c ZlibCompressor) Decompress(data []byte, size int) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("zlib header: %w", err)
	}
	defer r.Close()

	buf := make([]byte, size)
	if n, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("zlib stream ended after %d of %d bytes: %w", n, size, err)
	}

	// Draining to EOF verifies the Adler-32 trailer.
	extra, err := io.Copy(io.Discard, r)
	if err != nil {
		return nil, fmt.Errorf("zlib stream: %w", err)
	}
	if extra > 0 {
		return nil, fmt.Errorf("zlib decompressed size exceeds expected %d by %d bytes", size, extra)
	}

	return buf, nil
}
