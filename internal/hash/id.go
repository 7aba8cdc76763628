package hash

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// ChunkKey computes the cache key of one heap chunk: the xxHash64 of the heap
// identity followed by the big-endian chunk index.
func ChunkKey(heapID string, chunkIndex uint64) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(heapID)

	var index [8]byte
	binary.BigEndian.PutUint64(index[:], chunkIndex)
	_, _ = d.Write(index[:])

	return d.Sum64()
}
