// Package streamtest builds attribute section bytes for tests.
//
// It writes just enough of the wire format to drive the decoder: a string
// table followed by a tag/value stream. Levels are closed explicitly with End;
// the caller is responsible for closing the root level.
//
//	b := streamtest.New()
//	b.String(attribute.IDPackageName, "demo")
//	b.Begin(attribute.IDPackageVersionMajor, attribute.StringValue("1"))
//	b.String(attribute.IDPackageVersionMinor, "0")
//	b.End() // version
//	b.End() // root
//	s := b.Build()
package streamtest

import (
	"encoding/binary"
	"math"

	"github.com/arloliu/hpkg/attribute"
	"github.com/arloliu/hpkg/endian"
	"github.com/arloliu/hpkg/format"
)

// Stream is an encoded attribute section.
type Stream struct {
	// Data holds the string table followed by the attribute stream.
	Data []byte
	// StringsLength is the byte length of the string table.
	StringsLength uint64
	// StringsCount is the number of strings in the table.
	StringsCount uint64
}

// Builder accumulates one section.
type Builder struct {
	engine  endian.EndianEngine
	strings []string
	index   map[string]uint64
	body    []byte
}

// New creates an empty builder.
func New() *Builder {
	return &Builder{
		engine: endian.GetWireEngine(),
		index:  make(map[string]uint64),
	}
}

// Intern adds s to the string table and returns its index.
func (b *Builder) Intern(s string) uint64 {
	if i, ok := b.index[s]; ok {
		return i
	}
	i := uint64(len(b.strings))
	b.strings = append(b.strings, s)
	b.index[s] = i

	return i
}

// Attr writes a tag and value. Table strings are interned automatically.
func (b *Builder) Attr(id attribute.ID, value attribute.Value, hasChildren bool) *Builder {
	b.body = AppendUvarint(b.body, attribute.ComposeTag(id, value.Type, value.Encoding, hasChildren))
	b.body = b.appendValue(b.body, value)

	return b
}

// Begin writes an attribute that opens a child level.
func (b *Builder) Begin(id attribute.ID, value attribute.Value) *Builder {
	return b.Attr(id, value, true)
}

// End closes the current level.
func (b *Builder) End() *Builder {
	b.body = AppendUvarint(b.body, attribute.SentinelTag)
	return b
}

// String writes an inline string attribute.
func (b *Builder) String(id attribute.ID, s string) *Builder {
	return b.Attr(id, attribute.StringValue(s), false)
}

// TableString writes a string attribute referencing the string table.
func (b *Builder) TableString(id attribute.ID, s string) *Builder {
	return b.Attr(id, TableValue(s), false)
}

// UInt writes an unsigned attribute in the narrowest encoding holding v.
func (b *Builder) UInt(id attribute.ID, v uint64) *Builder {
	return b.Attr(id, attribute.Value{Type: format.TypeUInt, Encoding: NarrowestEncoding(v), UInt: v}, false)
}

// Raw writes the raw bytes v in the stream.
func (b *Builder) Raw(id attribute.ID, v []byte) *Builder {
	return b.Attr(id, attribute.Value{Type: format.TypeRaw, Encoding: format.EncodingRawInline, Raw: v}, false)
}

// RawTag writes an arbitrary tag value without a payload.
func (b *Builder) RawTag(raw uint64) *Builder {
	b.body = AppendUvarint(b.body, raw)
	return b
}

// Bytes appends arbitrary bytes to the stream.
func (b *Builder) Bytes(p ...byte) *Builder {
	b.body = append(b.body, p...)
	return b
}

// Build returns the encoded section.
func (b *Builder) Build() Stream {
	var table []byte
	for _, s := range b.strings {
		table = append(table, s...)
		table = append(table, 0)
	}
	if len(b.strings) > 0 {
		table = append(table, 0)
	}

	data := make([]byte, 0, len(table)+len(b.body))
	data = append(data, table...)
	data = append(data, b.body...)

	return Stream{
		Data:          data,
		StringsLength: uint64(len(table)),
		StringsCount:  uint64(len(b.strings)),
	}
}

func (b *Builder) appendValue(dst []byte, v attribute.Value) []byte {
	switch v.Type {
	case format.TypeInt:
		return appendInt(b.engine, dst, uint64(v.Int), v.Encoding) //nolint:gosec
	case format.TypeUInt:
		return appendInt(b.engine, dst, v.UInt, v.Encoding)
	case format.TypeString:
		if v.Encoding == format.EncodingStringTable {
			return AppendUvarint(dst, b.Intern(v.String))
		}
		dst = append(dst, v.String...)

		return append(dst, 0)
	case format.TypeRaw:
		if v.Encoding == format.EncodingRawHeap {
			dst = AppendUvarint(dst, v.HeapSize)
			return AppendUvarint(dst, v.HeapOffset)
		}
		dst = AppendUvarint(dst, uint64(len(v.Raw)))

		return append(dst, v.Raw...)
	default:
		return dst
	}
}

// TableValue returns a string value encoded through the string table.
func TableValue(s string) attribute.Value {
	return attribute.Value{Type: format.TypeString, Encoding: format.EncodingStringTable, String: s}
}

// NarrowestEncoding returns the smallest integer encoding holding v.
func NarrowestEncoding(v uint64) format.AttributeEncoding {
	switch {
	case v <= math.MaxUint8:
		return format.EncodingInt8
	case v <= math.MaxUint16:
		return format.EncodingInt16
	case v <= math.MaxUint32:
		return format.EncodingInt32
	default:
		return format.EncodingInt64
	}
}

// AppendUvarint appends the LEB128 encoding of v.
func AppendUvarint(dst []byte, v uint64) []byte {
	return binary.AppendUvarint(dst, v)
}

func appendInt(engine endian.EndianEngine, dst []byte, v uint64, encoding format.AttributeEncoding) []byte {
	switch encoding {
	case format.EncodingInt8:
		return append(dst, byte(v))
	case format.EncodingInt16:
		return engine.AppendUint16(dst, uint16(v)) //nolint:gosec
	case format.EncodingInt32:
		return engine.AppendUint32(dst, uint32(v)) //nolint:gosec
	default:
		return engine.AppendUint64(dst, v)
	}
}
