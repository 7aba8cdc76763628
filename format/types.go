package format

import "strconv"

type (
	AttributeType      uint8
	AttributeEncoding  uint8
	CompressionType    uint32
	ResolvableOperator uint64
	Architecture       uint64
	WritableFileUpdate uint64
)

const (
	TypeInvalid AttributeType = 0x0 // TypeInvalid is never valid on the wire.
	TypeInt     AttributeType = 0x1 // TypeInt represents a signed integer attribute.
	TypeUInt    AttributeType = 0x2 // TypeUInt represents an unsigned integer attribute.
	TypeString  AttributeType = 0x3 // TypeString represents a string attribute.
	TypeRaw     AttributeType = 0x4 // TypeRaw represents an opaque byte attribute.
)

// Integer encodings, valid for TypeInt and TypeUInt.
const (
	EncodingInt8  AttributeEncoding = 0x0
	EncodingInt16 AttributeEncoding = 0x1
	EncodingInt32 AttributeEncoding = 0x2
	EncodingInt64 AttributeEncoding = 0x3
)

// String encodings, valid for TypeString.
const (
	EncodingStringInline AttributeEncoding = 0x0
	EncodingStringTable  AttributeEncoding = 0x1
)

// Raw encodings, valid for TypeRaw.
const (
	EncodingRawInline AttributeEncoding = 0x0
	EncodingRawHeap   AttributeEncoding = 0x1
)

const (
	CompressionNone CompressionType = 0x0 // CompressionNone represents an uncompressed heap.
	CompressionZlib CompressionType = 0x1 // CompressionZlib represents zlib compressed heap chunks.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compressed heap chunks.
	CompressionLZ4  CompressionType = 0x3 // CompressionLZ4 represents LZ4 block compressed heap chunks.
	CompressionS2   CompressionType = 0x4 // CompressionS2 represents S2 compressed heap chunks.
)

const (
	OperatorLess ResolvableOperator = iota
	OperatorLessEqual
	OperatorEqual
	OperatorNotEqual
	OperatorGreaterEqual
	OperatorGreater
	OperatorCount
)

const (
	ArchitectureAny Architecture = iota
	ArchitectureX86
	ArchitectureX86GCC2
	ArchitectureSource
	ArchitectureX8664
	ArchitecturePPC
	ArchitectureARM
	ArchitectureM68K
	ArchitectureSPARC
	ArchitectureARM64
	ArchitectureRISCV64
	ArchitectureCount
)

const (
	WritableFileKeepOld WritableFileUpdate = iota
	WritableFileManual
	WritableFileAutoMerge
	WritableFileUpdateCount
)

func (t AttributeType) String() string {
	switch t {
	case TypeInt:
		return "Int"
	case TypeUInt:
		return "UInt"
	case TypeString:
		return "String"
	case TypeRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// IsValid reports whether t is a known attribute type.
func (t AttributeType) IsValid() bool {
	return t >= TypeInt && t <= TypeRaw
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZlib:
		return "Zlib"
	case CompressionZstd:
		return "Zstd"
	case CompressionLZ4:
		return "LZ4"
	case CompressionS2:
		return "S2"
	default:
		return "Unknown(" + strconv.FormatUint(uint64(c), 10) + ")"
	}
}

func (o ResolvableOperator) String() string {
	switch o {
	case OperatorLess:
		return "<"
	case OperatorLessEqual:
		return "<="
	case OperatorEqual:
		return "=="
	case OperatorNotEqual:
		return "!="
	case OperatorGreaterEqual:
		return ">="
	case OperatorGreater:
		return ">"
	default:
		return "?"
	}
}

// IsValid reports whether o is a known resolvable operator.
func (o ResolvableOperator) IsValid() bool {
	return o < OperatorCount
}

var architectureNames = [...]string{
	ArchitectureAny:     "any",
	ArchitectureX86:     "x86",
	ArchitectureX86GCC2: "x86_gcc2",
	ArchitectureSource:  "source",
	ArchitectureX8664:   "x86_64",
	ArchitecturePPC:     "ppc",
	ArchitectureARM:     "arm",
	ArchitectureM68K:    "m68k",
	ArchitectureSPARC:   "sparc",
	ArchitectureARM64:   "arm64",
	ArchitectureRISCV64: "riscv64",
}

func (a Architecture) String() string {
	if a < ArchitectureCount {
		return architectureNames[a]
	}

	return "unknown"
}

// IsValid reports whether a is a known architecture.
func (a Architecture) IsValid() bool {
	return a < ArchitectureCount
}

func (u WritableFileUpdate) String() string {
	switch u {
	case WritableFileKeepOld:
		return "keep-old"
	case WritableFileManual:
		return "manual"
	case WritableFileAutoMerge:
		return "auto-merge"
	default:
		return "unknown"
	}
}

// IsValid reports whether u is a known writable-file update type.
func (u WritableFileUpdate) IsValid() bool {
	return u < WritableFileUpdateCount
}
