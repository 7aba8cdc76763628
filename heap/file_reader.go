package heap

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/arloliu/hpkg/compress"
	"github.com/arloliu/hpkg/errs"
	"github.com/arloliu/hpkg/format"
	"github.com/arloliu/hpkg/internal/pool"
)

// DefaultChunkSize is the uncompressed size of every heap chunk but the last.
const DefaultChunkSize = 64 * 1024

// chunkSizeEntrySize is the size of one chunk size table entry.
const chunkSizeEntrySize = 2

// Layout locates a heap inside a package file. It is provided by the container
// reader, which owns the file header.
type Layout struct {
	// Offset is the absolute file offset of the compressed heap.
	Offset int64
	// CompressedSize is the size of the heap in the file, chunk size table included.
	CompressedSize int64
	// UncompressedSize is the size of the decompressed heap.
	UncompressedSize int64
	// Compression is the compression id from the container header.
	Compression format.CompressionType
	// ChunkSize is the uncompressed chunk size. Zero selects DefaultChunkSize.
	ChunkSize int
}

// FileReader reads a chunked heap from a package file.
//
// Compressed heaps end with a table of big-endian uint16 values, one per chunk
// except the last, each holding the compressed chunk size minus one. A chunk
// whose compressed size equals its uncompressed size is stored raw.
// Uncompressed heaps have no table.
//
// FileReader is safe for concurrent use if the underlying io.ReaderAt is.
type FileReader struct {
	file    io.ReaderAt
	id      string
	layout  Layout
	codec   compress.Codec

	// offsets holds compressed chunk offsets relative to layout.Offset with
	// one extra end entry. Nil for uncompressed heaps.
	offsets    []int64
	chunkCount int64
}

var _ Reader = (*FileReader)(nil)

// NewFileReader validates the layout, selects the decompressor and loads the chunk size table.
//
// Parameters:
//   - file: Package file
//   - id: Identity of the heap, used for chunk cache keys
//   - layout: Heap location, sizes and compression
//
// Returns:
//   - *FileReader: Reader ready for ReadData calls
//   - error: errs.ErrUnsupportedCompression, errs.ErrChunkSize, errs.ErrHeapRange or errs.ErrHeapRead
func NewFileReader(file io.ReaderAt, id string, layout Layout) (*FileReader, error) {
	if layout.ChunkSize == 0 {
		layout.ChunkSize = DefaultChunkSize
	}
	if layout.ChunkSize < 0 || layout.ChunkSize > 1<<16 {
		return nil, fmt.Errorf("%w: %d", errs.ErrChunkSize, layout.ChunkSize)
	}
	if layout.Offset < 0 || layout.CompressedSize < 0 || layout.UncompressedSize < 0 {
		return nil, errs.Structuralf("negative heap layout %+v", layout)
	}

	codec, err := compress.GetCodec(layout.Compression)
	if err != nil {
		return nil, err
	}

	r := &FileReader{
		file:   file,
		id:     id,
		layout: layout,
		codec:  codec,
	}

	if err := r.initOffsets(); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *FileReader) initOffsets() error {
	chunkSize := int64(r.layout.ChunkSize)
	r.chunkCount = 0
	if r.layout.UncompressedSize > 0 {
		r.chunkCount = (r.layout.UncompressedSize-1)/chunkSize + 1
	}

	if r.layout.Compression == format.CompressionNone {
		if r.layout.CompressedSize != r.layout.UncompressedSize {
			return errs.Structuralf("uncompressed heap has compressed size %d, uncompressed size %d",
				r.layout.CompressedSize, r.layout.UncompressedSize)
		}

		return r.checkExtent()
	}

	if r.chunkCount == 0 {
		if r.layout.CompressedSize != 0 {
			return errs.Structuralf("empty heap has compressed size %d", r.layout.CompressedSize)
		}
		r.offsets = []int64{0}

		return nil
	}

	tableSize := (r.chunkCount - 1) * chunkSizeEntrySize
	dataSize := r.layout.CompressedSize - tableSize
	if dataSize <= 0 {
		return fmt.Errorf("%w: heap compressed size %d cannot hold %d chunks",
			errs.ErrChunkSize, r.layout.CompressedSize, r.chunkCount)
	}

	// The table is sized from the layout, so the file must hold it before it is allocated.
	if err := r.checkExtent(); err != nil {
		return err
	}

	table := make([]byte, tableSize)
	if err := readAt(r.file, table, r.layout.Offset+dataSize); err != nil {
		return fmt.Errorf("failed to read heap chunk size table: %w", err)
	}

	r.offsets = make([]int64, r.chunkCount+1)
	for i := int64(0); i < r.chunkCount-1; i++ {
		size := int64(binary.BigEndian.Uint16(table[i*chunkSizeEntrySize:])) + 1
		r.offsets[i+1] = r.offsets[i] + size
	}
	r.offsets[r.chunkCount] = dataSize

	for i := int64(0); i < r.chunkCount; i++ {
		compressed := r.offsets[i+1] - r.offsets[i]
		if compressed <= 0 || compressed > int64(r.uncompressedChunkSize(i)) {
			return fmt.Errorf("%w: chunk %d has compressed size %d, uncompressed size %d",
				errs.ErrChunkSize, i, compressed, r.uncompressedChunkSize(i))
		}
	}

	return nil
}

// checkExtent verifies the file reaches the last byte of the heap.
func (r *FileReader) checkExtent() error {
	if r.layout.CompressedSize == 0 {
		return nil
	}
	if r.layout.Offset > math.MaxInt64-r.layout.CompressedSize {
		return fmt.Errorf("%w: heap at offset %d with size %d overflows",
			errs.ErrHeapRange, r.layout.Offset, r.layout.CompressedSize)
	}

	var last [1]byte
	if err := readAt(r.file, last[:], r.layout.Offset+r.layout.CompressedSize-1); err != nil {
		return fmt.Errorf("heap of %d bytes at offset %d exceeds the file: %w",
			r.layout.CompressedSize, r.layout.Offset, err)
	}

	return nil
}

// ReadData fills buf with len(buf) uncompressed heap bytes at offset.
func (r *FileReader) ReadData(offset int64, buf []byte) error {
	return readData(r, offset, buf)
}

// ID returns the heap identity.
func (r *FileReader) ID() string {
	return r.id
}

// Compression returns the heap compression id.
func (r *FileReader) Compression() format.CompressionType {
	return r.layout.Compression
}

// ChunkCount returns the number of chunks in the heap.
func (r *FileReader) ChunkCount() int {
	return int(r.chunkCount)
}

func (r *FileReader) chunkSize() int {
	return r.layout.ChunkSize
}

func (r *FileReader) uncompressedSize() int64 {
	return r.layout.UncompressedSize
}

func (r *FileReader) uncompressedChunkSize(index int64) int {
	return int(min(int64(r.layout.ChunkSize), r.layout.UncompressedSize-index*int64(r.layout.ChunkSize)))
}

// readChunk returns the decompressed chunk. The result is newly allocated.
func (r *FileReader) readChunk(index int64) ([]byte, error) {
	if index < 0 || index >= int64(r.ChunkCount()) {
		return nil, fmt.Errorf("%w: chunk %d of %d", errs.ErrHeapRange, index, r.ChunkCount())
	}

	size := r.uncompressedChunkSize(index)
	offset := r.layout.Offset + index*int64(r.layout.ChunkSize)
	compressedSize := size
	if r.offsets != nil {
		offset = r.layout.Offset + r.offsets[index]
		compressedSize = int(r.offsets[index+1] - r.offsets[index])
	}

	if compressedSize == size {
		chunk := make([]byte, size)
		if err := readAt(r.file, chunk, offset); err != nil {
			return nil, fmt.Errorf("failed to read heap chunk %d: %w", index, err)
		}

		return chunk, nil
	}

	bb := pool.GetChunkBuffer()
	defer pool.PutChunkBuffer(bb)

	compressed := bb.Resize(compressedSize)
	if err := readAt(r.file, compressed, offset); err != nil {
		return nil, fmt.Errorf("failed to read heap chunk %d: %w", index, err)
	}

	chunk, err := r.codec.Decompress(compressed, size)
	if err != nil {
		return nil, fmt.Errorf("%w: chunk %d (%s): %w", errs.ErrDecompress, index, r.layout.Compression, err)
	}

	return chunk, nil
}

// readAt reads exactly len(buf) bytes. io.EOF together with a full read is
// success; a short read means the file is truncated. Other reader failures
// wrap errs.ErrHeapRead.
func readAt(file io.ReaderAt, buf []byte, offset int64) error {
	n, err := file.ReadAt(buf, offset)
	if n == len(buf) {
		return nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: read %d of %d bytes at file offset %d: %w",
			errs.ErrHeapRange, n, len(buf), offset, io.ErrUnexpectedEOF)
	}

	return fmt.Errorf("%w: read %d bytes at file offset %d: %w", errs.ErrHeapRead, len(buf), offset, err)
}
