package attribute

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/arloliu/hpkg/format"
)

// Value is a decoded attribute value.
//
// String and inline Raw payloads borrow from the section buffer they were
// decoded from. They stay valid while that section is alive; sinks that keep
// them longer must copy.
type Value struct {
	Type     format.AttributeType
	Encoding format.AttributeEncoding

	Int    int64
	UInt   uint64
	String string

	// Raw holds inline raw data. For heap-encoded raw values it is nil and
	// HeapOffset/HeapSize locate the data in the package heap.
	Raw        []byte
	HeapOffset uint64
	HeapSize   uint64
}

// IntValue returns a signed integer Value.
func IntValue(v int64) Value {
	return Value{Type: format.TypeInt, Encoding: format.EncodingInt64, Int: v}
}

// UIntValue returns an unsigned integer Value.
func UIntValue(v uint64) Value {
	return Value{Type: format.TypeUInt, Encoding: format.EncodingInt64, UInt: v}
}

// StringValue returns a string Value.
func StringValue(v string) Value {
	return Value{Type: format.TypeString, Encoding: format.EncodingStringInline, String: v}
}

// Equal compares kind and payload. Encodings are not compared: a table string
// and an inline string with the same text are equal.
func (v Value) Equal(other Value) bool {
	if v.Type != other.Type {
		return false
	}

	switch v.Type {
	case format.TypeInt:
		return v.Int == other.Int
	case format.TypeUInt:
		return v.UInt == other.UInt
	case format.TypeString:
		return v.String == other.String
	case format.TypeRaw:
		if v.Encoding != other.Encoding {
			return false
		}
		if v.Encoding == format.EncodingRawHeap {
			return v.HeapOffset == other.HeapOffset && v.HeapSize == other.HeapSize
		}

		return bytes.Equal(v.Raw, other.Raw)
	default:
		return true
	}
}

// Bool interprets an unsigned value as a flag.
func (v Value) Bool() bool {
	return v.UInt != 0
}

func (v Value) GoString() string {
	switch v.Type {
	case format.TypeInt:
		return "Int(" + strconv.FormatInt(v.Int, 10) + ")"
	case format.TypeUInt:
		return "UInt(" + strconv.FormatUint(v.UInt, 10) + ")"
	case format.TypeString:
		return "String(" + strconv.Quote(v.String) + ")"
	case format.TypeRaw:
		if v.Encoding == format.EncodingRawHeap {
			return fmt.Sprintf("Raw(heap offset=%d size=%d)", v.HeapOffset, v.HeapSize)
		}

		return fmt.Sprintf("Raw(%d bytes)", len(v.Raw))
	default:
		return "Invalid"
	}
}
