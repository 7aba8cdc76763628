package endian

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetWireEngine(t *testing.T) {
	require.Equal(t, binary.BigEndian, GetWireEngine())
}

func TestReadUint(t *testing.T) {
	engine := GetWireEngine()

	tests := []struct {
		name string
		data []byte
		want uint64
	}{
		{"8-bit", []byte{0xFE}, 0xFE},
		{"16-bit", []byte{0x12, 0x34}, 0x1234},
		{"32-bit", []byte{0x12, 0x34, 0x56, 0x78}, 0x12345678},
		{"64-bit max", []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, math.MaxUint64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ReadUint(engine, tt.data)
			require.True(t, ok)
			require.Equal(t, tt.want, got)
		})
	}

	_, ok := ReadUint(engine, []byte{1, 2, 3})
	require.False(t, ok)
}

func TestReadInt_SignExtension(t *testing.T) {
	engine := GetWireEngine()

	tests := []struct {
		name string
		data []byte
		want int64
	}{
		{"8-bit negative", []byte{0xFF}, -1},
		{"8-bit min", []byte{0x80}, math.MinInt8},
		{"16-bit min", []byte{0x80, 0x00}, math.MinInt16},
		{"32-bit negative", []byte{0xFF, 0xFF, 0xFF, 0xFE}, -2},
		{"32-bit max", []byte{0x7F, 0xFF, 0xFF, 0xFF}, math.MaxInt32},
		{"64-bit min", []byte{0x80, 0, 0, 0, 0, 0, 0, 0}, math.MinInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ReadInt(engine, tt.data)
			require.True(t, ok)
			require.Equal(t, tt.want, got)
		})
	}

	_, ok := ReadInt(engine, nil)
	require.False(t, ok)
}
