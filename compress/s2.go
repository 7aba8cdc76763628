package compress

import "github.com/klauspost/compress/s2"

type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 compressor.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress compresses the input data using S2 block compression.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	return s2.Encode(nil, data), nil
}

// Decompress decompresses an S2 block of exactly size bytes.
func (c S2Compressor) Decompress(data []byte, size int) ([]byte, error) {
	decodedLen, err := s2.DecodedLen(data)
	if err != nil {
		return nil, err
	}
	if err := checkSize("s2", decodedLen, size); err != nil {
		return nil, err
	}

	return s2.Decode(make([]byte, size), data)
}
