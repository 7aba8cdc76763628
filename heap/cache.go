package heap

import (
	"container/list"
	"fmt"
	"sync"

	"github.com/arloliu/hpkg/errs"
	"github.com/arloliu/hpkg/internal/hash"
)

// DefaultCacheChunks is the chunk capacity of a cache created with a zero capacity.
const DefaultCacheChunks = 64

// ChunkCache is a bounded LRU of decompressed heap chunks.
//
// One cache may be shared by many readers, including readers of different
// package files parsed concurrently; entries are keyed by heap identity and
// chunk index. It is the only mutable state shared between parses and is
// guarded by a mutex.
type ChunkCache struct {
	mu       sync.Mutex
	capacity int
	lru      *list.List
	entries  map[uint64]*list.Element

	hits   uint64
	misses uint64
}

type cacheEntry struct {
	key   uint64
	chunk []byte
}

// NewChunkCache creates a cache holding at most capacity chunks.
func NewChunkCache(capacity int) *ChunkCache {
	if capacity <= 0 {
		capacity = DefaultCacheChunks
	}

	return &ChunkCache{
		capacity: capacity,
		lru:      list.New(),
		entries:  make(map[uint64]*list.Element, capacity),
	}
}

func (c *ChunkCache) get(key uint64) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false
	}

	c.hits++
	c.lru.MoveToFront(elem)

	return elem.Value.(*cacheEntry).chunk, true //nolint:forcetypeassert
}

func (c *ChunkCache) put(key uint64, chunk []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.lru.MoveToFront(elem)
		return
	}

	c.entries[key] = c.lru.PushFront(&cacheEntry{key: key, chunk: chunk})

	for c.lru.Len() > c.capacity {
		oldest := c.lru.Back()
		c.lru.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key) //nolint:forcetypeassert
	}
}

// Len returns the number of cached chunks.
func (c *ChunkCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lru.Len()
}

// Stats returns the hit and miss counters.
func (c *ChunkCache) Stats() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.hits, c.misses
}

// CachedReader serves heap reads through a ChunkCache.
//
// Cached chunks are shared between readers and never modified; ReadData copies
// out of them.
type CachedReader struct {
	inner *FileReader
	cache *ChunkCache
}

var _ Reader = (*CachedReader)(nil)

// NewCachedReader wraps inner with cache.
//
// Returns errs.ErrCacheUnavailable (unsupported) when cache is nil, so callers
// can fall back to reading through inner directly.
func NewCachedReader(inner *FileReader, cache *ChunkCache) (*CachedReader, error) {
	if cache == nil {
		return nil, fmt.Errorf("%w: heap %q", errs.ErrCacheUnavailable, inner.ID())
	}

	return &CachedReader{inner: inner, cache: cache}, nil
}

// ReadData fills buf with len(buf) uncompressed heap bytes at offset.
func (r *CachedReader) ReadData(offset int64, buf []byte) error {
	return readData(r, offset, buf)
}

func (r *CachedReader) chunkSize() int {
	return r.inner.chunkSize()
}

func (r *CachedReader) uncompressedSize() int64 {
	return r.inner.uncompressedSize()
}

func (r *CachedReader) readChunk(index int64) ([]byte, error) {
	key := hash.ChunkKey(r.inner.ID(), uint64(index)) //nolint:gosec
	if chunk, ok := r.cache.get(key); ok {
		return chunk, nil
	}

	chunk, err := r.inner.readChunk(index)
	if err != nil {
		return nil, err
	}
	r.cache.put(key, chunk)

	return chunk, nil
}
