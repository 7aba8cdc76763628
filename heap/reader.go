package heap

import (
	"fmt"

	"github.com/arloliu/hpkg/errs"
)

// Reader provides random access to the uncompressed heap.
//
// ReadData fills buf with len(buf) bytes starting at the uncompressed heap
// offset. Every reader in this package satisfies section.HeapReader.
type Reader interface {
	ReadData(offset int64, buf []byte) error
}

// chunkProvider is a heap split into fixed-size, independently readable chunks.
type chunkProvider interface {
	chunkSize() int
	uncompressedSize() int64
	readChunk(index int64) ([]byte, error)
}

// BytesReader serves an already uncompressed heap held in memory.
type BytesReader []byte

var _ Reader = BytesReader(nil)

// ReadData copies len(buf) bytes at offset.
func (r BytesReader) ReadData(offset int64, buf []byte) error {
	if err := checkRange(offset, len(buf), int64(len(r))); err != nil {
		return err
	}

	copy(buf, r[offset:])

	return nil
}

func checkRange(offset int64, length int, size int64) error {
	if offset < 0 || offset > size || int64(length) > size-offset {
		return fmt.Errorf("%w: %d bytes at offset %d, heap size %d", errs.ErrHeapRange, length, offset, size)
	}

	return nil
}

// readData assembles buf from the chunks overlapping [offset, offset+len(buf)).
func readData(p chunkProvider, offset int64, buf []byte) error {
	if err := checkRange(offset, len(buf), p.uncompressedSize()); err != nil {
		return err
	}

	chunkSize := int64(p.chunkSize())
	for len(buf) > 0 {
		index := offset / chunkSize
		inChunk := offset % chunkSize

		chunk, err := p.readChunk(index)
		if err != nil {
			return err
		}

		n := copy(buf, chunk[inChunk:])
		buf = buf[n:]
		offset += int64(n)
	}

	return nil
}
