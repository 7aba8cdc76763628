package hpkg

import (
	"log/slog"

	"github.com/arloliu/hpkg/errs"
	"github.com/arloliu/hpkg/internal/options"
)

// parseConfig holds the settings of one parse.
type parseConfig struct {
	ignoreUnknownAttributes bool
	streamMinor             uint16
	parserMinor             uint16
	maxSaneLength           uint64
	maxDepth                int
	logger                  *slog.Logger
}

func newParseConfig() *parseConfig {
	return &parseConfig{
		parserMinor:   CurrentMinorFormatVersion,
		maxSaneLength: DefaultMaxSaneLength,
	}
}

// Option configures ParsePackageAttributes and ParseRawAttributes.
type Option = options.Option[*parseConfig]

// WithIgnoreUnknownAttributes skips attributes the handlers do not understand
// instead of failing the parse.
func WithIgnoreUnknownAttributes(ignore bool) Option {
	return options.NoError(func(c *parseConfig) {
		c.ignoreUnknownAttributes = ignore
	})
}

// WithMinorFormatVersion sets the minor format version declared by the package
// header. Streams from a newer minor version than the parser may contain
// attribute ids the parser does not know; those are skipped.
func WithMinorFormatVersion(minor uint16) Option {
	return options.NoError(func(c *parseConfig) {
		c.streamMinor = minor
	})
}

// WithParserMinorFormatVersion overrides the minor format version the parser
// claims to understand. Defaults to CurrentMinorFormatVersion.
func WithParserMinorFormatVersion(minor uint16) Option {
	return options.NoError(func(c *parseConfig) {
		c.parserMinor = minor
	})
}

// WithMaxSaneLength sets the ceiling for the uncompressed section length.
// Zero disables the check.
func WithMaxSaneLength(length uint64) Option {
	return options.NoError(func(c *parseConfig) {
		c.maxSaneLength = length
	})
}

// WithMaxDepth caps the attribute nesting depth. Zero means unlimited.
func WithMaxDepth(depth int) Option {
	return options.New(func(c *parseConfig) error {
		if depth < 0 {
			return errs.Unsupportedf("negative max depth %d", depth)
		}
		c.maxDepth = depth

		return nil
	})
}

// WithLogger reports parse failures to logger.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(c *parseConfig) {
		c.logger = logger
	})
}
