// Package hpkg decodes the attribute sections of Haiku packages (HPKG).
//
// An attribute section is a self-describing tree of tagged values stored in
// the package heap. This package ties the pieces together: a heap.Reader
// supplies the decompressed bytes, a section.Section holds them with their
// string table, and attrtree walks the tree through a stack of handlers that
// turn it into package records.
//
// # Basic Usage
//
//	heapReader, err := heap.Open(file, "demo.hpkg", layout, heap.WithCache(heap.NewChunkCache(0)))
//	if err != nil {
//	    return err
//	}
//
//	collector := packageinfo.NewCollector()
//	err = hpkg.ParsePackageAttributes(heapReader, hpkg.SectionGeometry{
//	    Name:          "package attributes",
//	    RegionEnd:     layout.UncompressedSize,
//	    Length:        attributesLength,
//	    StringsLength: stringsLength,
//	    StringsCount:  stringsCount,
//	}, collector, hpkg.WithMinorFormatVersion(headerMinor))
//	fmt.Println(collector.Info.Name, collector.Info.Version)
//
// The raw tree is available through ParseRawAttributes with any
// handler.LowLevelHandler, for instance dump.Tree.
//
// # Errors
//
// Every error wraps one of errs.ErrStructural, errs.ErrResource or
// errs.ErrUnsupported. The sink's HandleErrorOccurred is called exactly once
// when a parse fails.
package hpkg

import (
	"github.com/arloliu/hpkg/attribute"
	"github.com/arloliu/hpkg/attrtree"
	"github.com/arloliu/hpkg/handler"
	"github.com/arloliu/hpkg/internal/options"
	"github.com/arloliu/hpkg/packageinfo"
	"github.com/arloliu/hpkg/section"
)

const (
	// CurrentMinorFormatVersion is the minor format version whose attribute
	// ids this parser knows.
	CurrentMinorFormatVersion uint16 = 0

	// DefaultMaxSaneLength is the default ceiling for an uncompressed
	// attribute section.
	DefaultMaxSaneLength uint64 = 64 * 1024 * 1024
)

// SectionGeometry locates an attribute section in the uncompressed heap.
//
// The section occupies the Length bytes that end at RegionEnd and starts with
// a string table of StringsLength bytes holding StringsCount strings.
type SectionGeometry struct {
	Name          string
	RegionEnd     uint64
	Length        uint64
	StringsLength uint64
	StringsCount  uint64
}

// ParsePackageAttributes decodes the package attributes section and delivers
// one finished record per top-level attribute to sink.
//
// Parameters:
//   - reader: Heap reader supplying the decompressed section bytes
//   - geometry: Location and string table size of the section
//   - sink: Receiver of the finished records
//   - opts: Parse options
//
// Returns:
//   - error: nil on success, otherwise an error wrapping one of the errs categories
func ParsePackageAttributes(reader section.HeapReader, geometry SectionGeometry, sink packageinfo.ContentHandler, opts ...Option) error {
	return parse(reader, geometry, opts, func(ctx *handler.Context) handler.Handler {
		ctx.ContentHandler = sink
		return handler.NewPackageHandler()
	})
}

// ParseRawAttributes decodes a section without interpreting it and reports
// every attribute to sink, see handler.LowLevelHandler.
func ParseRawAttributes(reader section.HeapReader, geometry SectionGeometry, sink handler.LowLevelHandler, opts ...Option) error {
	return parse(reader, geometry, opts, func(ctx *handler.Context) handler.Handler {
		ctx.LowLevelHandler = sink
		return handler.NewLowLevelRootHandler()
	})
}

func parse(reader section.HeapReader, geometry SectionGeometry, opts []Option, bind func(*handler.Context) handler.Handler) error {
	cfg := newParseConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return err
	}

	ctx := &handler.Context{
		SectionName:             geometry.Name,
		IgnoreUnknownAttributes: cfg.ignoreUnknownAttributes,
		Policy: attribute.VersionPolicy{
			StreamMinor: cfg.streamMinor,
			ParserMinor: cfg.parserMinor,
		},
		MaxDepth: cfg.maxDepth,
		Logger:   cfg.logger,
	}
	root := bind(ctx)

	sec, err := section.New(geometry.Name, geometry.RegionEnd, geometry.Length, cfg.maxSaneLength,
		geometry.StringsLength, geometry.StringsCount)
	if err == nil {
		err = sec.Prepare(reader)
	}
	if err != nil {
		ctx.ErrorOccurred(err)
		return err
	}

	return attrtree.Parse(ctx, sec, root)
}
