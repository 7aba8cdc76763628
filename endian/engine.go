// Package endian provides byte order utilities for decoding attribute values.
//
// All multi-byte integers in an HPKG attribute section are stored big-endian.
// The EndianEngine returned by GetWireEngine converts them to host values:
//
//	engine := endian.GetWireEngine()
//	v, ok := endian.ReadUint(engine, data[:4])
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetWireEngine returns the engine matching the byte order of the attribute wire format.
func GetWireEngine() EndianEngine {
	return binary.BigEndian
}

// ReadUint reads an unsigned integer whose width is the length of b.
//
// Supported widths are 1, 2, 4 and 8 bytes. The second result is false for any
// other width.
func ReadUint(engine EndianEngine, b []byte) (uint64, bool) {
	switch len(b) {
	case 1:
		return uint64(b[0]), true
	case 2:
		return uint64(engine.Uint16(b)), true
	case 4:
		return uint64(engine.Uint32(b)), true
	case 8:
		return engine.Uint64(b), true
	default:
		return 0, false
	}
}

// ReadInt reads a signed integer whose width is the length of b and sign-extends it to 64 bits.
func ReadInt(engine EndianEngine, b []byte) (int64, bool) {
	switch len(b) {
	case 1:
		return int64(int8(b[0])), true
	case 2:
		return int64(int16(engine.Uint16(b))), true //nolint:gosec
	case 4:
		return int64(int32(engine.Uint32(b))), true //nolint:gosec
	case 8:
		return int64(engine.Uint64(b)), true //nolint:gosec
	default:
		return 0, false
	}
}
