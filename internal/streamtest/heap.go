package streamtest

import (
	"encoding/binary"

	"github.com/arloliu/hpkg/compress"
	"github.com/arloliu/hpkg/format"
)

// HeapImage is a package file image holding one chunked heap.
type HeapImage struct {
	// File is the whole file: prefix bytes, the chunks and the chunk size table.
	File []byte
	// Offset is the file offset of the heap.
	Offset int64
	// CompressedSize is the heap size in the file, chunk size table included.
	CompressedSize int64
}

// BuildHeap lays out data as a chunked heap preceded by prefix zero bytes.
// Chunks that do not shrink are stored raw.
func BuildHeap(data []byte, compression format.CompressionType, chunkSize int, prefix int) (HeapImage, error) {
	img := HeapImage{File: make([]byte, prefix), Offset: int64(prefix)}

	if compression == format.CompressionNone {
		img.File = append(img.File, data...)
		img.CompressedSize = int64(len(data))

		return img, nil
	}

	codec, err := compress.GetCodec(compression)
	if err != nil {
		return img, err
	}

	var table []byte
	for start := 0; start < len(data); start += chunkSize {
		chunk := data[start:min(start+chunkSize, len(data))]

		compressed, err := codec.Compress(chunk)
		if err != nil {
			return img, err
		}
		if len(compressed) == 0 || len(compressed) >= len(chunk) {
			compressed = chunk
		}

		img.File = append(img.File, compressed...)
		if start+chunkSize < len(data) {
			table = binary.BigEndian.AppendUint16(table, uint16(len(compressed)-1)) //nolint:gosec
		}
	}
	img.File = append(img.File, table...)
	img.CompressedSize = int64(len(img.File) - prefix)

	return img, nil
}
