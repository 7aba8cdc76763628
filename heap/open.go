package heap

import (
	"errors"
	"io"

	"github.com/arloliu/hpkg/errs"
	"github.com/arloliu/hpkg/internal/options"
)

type openConfig struct {
	cache *ChunkCache
}

// OpenOption configures Open.
type OpenOption = options.Option[*openConfig]

// WithCache serves reads through cache. A nil cache disables caching.
func WithCache(cache *ChunkCache) OpenOption {
	return options.NoError(func(c *openConfig) {
		c.cache = cache
	})
}

// Open builds the heap reader for a package file.
//
// The compression id is validated once here. When a cache is configured the
// reads go through a CachedReader; when the cache is unavailable they pass
// straight through the FileReader.
func Open(file io.ReaderAt, id string, layout Layout, opts ...OpenOption) (Reader, error) {
	cfg := &openConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	fileReader, err := NewFileReader(file, id, layout)
	if err != nil {
		return nil, err
	}

	cached, err := NewCachedReader(fileReader, cfg.cache)
	if errors.Is(err, errs.ErrUnsupported) {
		return fileReader, nil
	}
	if err != nil {
		return nil, err
	}

	return cached, nil
}
