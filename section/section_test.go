package section

import (
	"bytes"
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/hpkg/attribute"
	"github.com/arloliu/hpkg/errs"
	"github.com/arloliu/hpkg/format"
	"github.com/arloliu/hpkg/heap"
	"github.com/arloliu/hpkg/internal/streamtest"
)

// prepared returns a prepared section spanning all of data.
func prepared(t *testing.T, data []byte, stringsLength, stringsCount uint64) *Section {
	t.Helper()

	s, err := New("test", uint64(len(data)), uint64(len(data)), 0, stringsLength, stringsCount)
	require.NoError(t, err)
	require.NoError(t, s.Prepare(heap.BytesReader(data)))

	return s
}

func TestInit(t *testing.T) {
	tests := []struct {
		name          string
		regionEnd     uint64
		length        uint64
		maxSane       uint64
		stringsLength uint64
		stringsCount  uint64
		wantErr       error
	}{
		{name: "valid", regionEnd: 100, length: 40, stringsLength: 10, stringsCount: 2},
		{name: "empty table", regionEnd: 100, length: 40},
		{name: "single terminator", regionEnd: 100, length: 40, stringsLength: 1},
		{name: "exceeds region", regionEnd: 10, length: 11, wantErr: errs.ErrSectionTooLarge},
		{name: "unusually large", regionEnd: 100, length: 50, maxSane: 49, wantErr: errs.ErrSectionUnusuallyLarge},
		{name: "count without bytes", regionEnd: 100, length: 40, stringsLength: 1, stringsCount: 1, wantErr: errs.ErrStringsInconsistent},
		{name: "bytes without count", regionEnd: 100, length: 40, stringsLength: 5, wantErr: errs.ErrStringsInconsistent},
		{name: "strings exceed section", regionEnd: 100, length: 4, stringsLength: 5, stringsCount: 1, wantErr: errs.ErrStringsTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Section
			err := s.Init("test", tt.regionEnd, tt.length, tt.maxSane, tt.stringsLength, tt.stringsCount)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.regionEnd-tt.length, s.Offset())
			require.Equal(t, tt.length, s.Length())
		})
	}
}

func TestInit_ErrorCategories(t *testing.T) {
	var s Section
	require.ErrorIs(t, s.Init("test", 10, 11, 0, 0, 0), errs.ErrStructural)
	require.ErrorIs(t, s.Init("test", 100, 50, 10, 0, 0), errs.ErrUnsupported)
}

func TestPrepare_ReadsAtOffset(t *testing.T) {
	heapData := []byte("xxxxab\x00\x00\x05")

	s, err := New("test", uint64(len(heapData)), 5, 0, 4, 1)
	require.NoError(t, err)
	require.Equal(t, uint64(4), s.Offset())
	require.NoError(t, s.Prepare(heap.BytesReader(heapData)))

	require.Equal(t, []string{"ab"}, s.Strings())
	require.Equal(t, uint64(4), s.CurrentOffset())

	v, err := s.ReadUnsignedVarint()
	require.NoError(t, err)
	require.Equal(t, uint64(5), v)
	require.Zero(t, s.Remaining())
}

func TestPrepare_HeapTooShort(t *testing.T) {
	s, err := New("test", 10, 10, 0, 0, 0)
	require.NoError(t, err)
	require.ErrorIs(t, s.Prepare(heap.BytesReader(make([]byte, 5))), errs.ErrHeapRange)
}

type failingHeap struct {
	err error
}

func (f failingHeap) ReadData(int64, []byte) error {
	return f.err
}

func TestPrepare_ReaderErrorCategories(t *testing.T) {
	plain := errors.New("device gone")

	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{name: "uncategorized", err: plain, wantErr: errs.ErrHeapRead},
		{name: "already categorized", err: errs.ErrDecompress, wantErr: errs.ErrDecompress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New("test", 10, 10, 0, 0, 0)
			require.NoError(t, err)

			err = s.Prepare(failingHeap{err: tt.err})
			require.ErrorIs(t, err, tt.wantErr)
			require.ErrorIs(t, err, tt.err)
			require.ErrorIs(t, err, errs.ErrStructural)
		})
	}
}

func TestParseStrings_Counts(t *testing.T) {
	for count := 0; count <= 8; count++ {
		t.Run(strconv.Itoa(count), func(t *testing.T) {
			b := streamtest.New()
			want := make([]string, count)
			for i := range want {
				want[i] = "s" + strings.Repeat("x", i)
				b.Intern(want[i])
			}
			stream := b.Build()

			s := prepared(t, stream.Data, stream.StringsLength, stream.StringsCount)
			if count == 0 {
				require.Empty(t, s.Strings())
			} else {
				require.Equal(t, want, s.Strings())
			}
			require.Equal(t, stream.StringsLength, s.CurrentOffset())

			for i, str := range want {
				got, err := s.ReadStringFromTable(uint64(i))
				require.NoError(t, err)
				require.Equal(t, str, got)
			}
			_, err := s.ReadStringFromTable(uint64(count))
			require.ErrorIs(t, err, errs.ErrStringIndex)
		})
	}
}

func TestParseStrings_Errors(t *testing.T) {
	tests := []struct {
		name    string
		table   string
		count   uint64
		wantErr error
	}{
		{name: "more than declared", table: "a\x00b\x00\x00", count: 1, wantErr: errs.ErrMoreStringsThanDeclared},
		{name: "less than declared", table: "a\x00\x00", count: 2, wantErr: errs.ErrLessStringsThanDeclared},
		{name: "not terminated", table: "ab", count: 1, wantErr: errs.ErrStringNotTerminated},
		{name: "no empty terminator", table: "a\x00b\x00", count: 2, wantErr: errs.ErrStringNotTerminated},
		{name: "bytes left", table: "a\x00\x00zz", count: 1, wantErr: errs.ErrStringsBytesLeft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := []byte(tt.table)
			s, err := New("test", uint64(len(data)), uint64(len(data)), 0, uint64(len(data)), tt.count)
			require.NoError(t, err)

			err = s.Prepare(heap.BytesReader(data))
			require.ErrorIs(t, err, tt.wantErr)
			require.ErrorIs(t, err, errs.ErrStructural)
		})
	}
}

func TestParseStrings_ZeroCountSkipsReservedBytes(t *testing.T) {
	s := prepared(t, []byte{0, 7}, 1, 0)
	require.Equal(t, uint64(1), s.CurrentOffset())

	v, err := s.ReadUnsignedVarint()
	require.NoError(t, err)
	require.Equal(t, uint64(7), v)
}

func TestParseStrings_NotPrepared(t *testing.T) {
	s, err := New("test", 4, 4, 0, 0, 0)
	require.NoError(t, err)
	require.ErrorIs(t, s.ParseStrings(), errs.ErrSectionNotPrepared)
}

func TestReadUnsignedVarint_RoundTrip(t *testing.T) {
	values := []uint64{0, 1, 0x7f, 0x80, 0x3fff, 0x4000, math.MaxUint32, 1 << 56, math.MaxInt64, math.MaxUint64}
	for shift := 0; shift < 64; shift += 3 {
		values = append(values, 1<<shift, 1<<shift-1)
	}

	var data []byte
	for _, v := range values {
		data = streamtest.AppendUvarint(data, v)
	}

	s := prepared(t, data, 0, 0)
	for _, want := range values {
		got, err := s.ReadUnsignedVarint()
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	require.Zero(t, s.Remaining())
}

func TestReadUnsignedVarint_Truncated(t *testing.T) {
	for _, v := range []uint64{0x80, 0x4000, math.MaxUint32, math.MaxUint64} {
		encoded := streamtest.AppendUvarint(nil, v)
		for cut := 0; cut < len(encoded); cut++ {
			s := prepared(t, encoded[:cut], 0, 0)
			_, err := s.ReadUnsignedVarint()
			require.ErrorIs(t, err, errs.ErrVarintTruncated, "value %d cut at %d", v, cut)
		}
	}
}

func TestReadUnsignedVarint_Overflow(t *testing.T) {
	s := prepared(t, append(bytes.Repeat([]byte{0xff}, 9), 0x02), 0, 0)
	_, err := s.ReadUnsignedVarint()
	require.ErrorIs(t, err, errs.ErrVarintOverflow)

	s = prepared(t, bytes.Repeat([]byte{0x80}, 11), 0, 0)
	_, err = s.ReadUnsignedVarint()
	require.ErrorIs(t, err, errs.ErrVarintOverflow)
}

func TestReadInlineString(t *testing.T) {
	s := prepared(t, []byte("hello\x00\x00rest"), 0, 0)

	str, err := s.ReadInlineString()
	require.NoError(t, err)
	require.Equal(t, "hello", str)

	str, err = s.ReadInlineString()
	require.NoError(t, err)
	require.Empty(t, str)

	_, err = s.ReadInlineString()
	require.ErrorIs(t, err, errs.ErrStringNotTerminated)
}

func TestReadBuffer(t *testing.T) {
	s := prepared(t, []byte{1, 2, 3}, 0, 0)

	b, err := s.ReadBuffer(2)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2}, b)

	_, err = s.ReadBuffer(2)
	require.ErrorIs(t, err, errs.ErrUnexpectedEnd)
	require.Equal(t, uint64(1), s.Remaining())
}

const utf8Sample = "パッケージ-ü-😀"

// longString spans more than one default heap chunk.
var longString = strings.Repeat("haiku-ü-", 9000)

func TestDecodeAttributeValue(t *testing.T) {
	tests := []struct {
		name  string
		value attribute.Value
	}{
		{name: "int8 negative", value: attribute.Value{Type: format.TypeInt, Encoding: format.EncodingInt8, Int: -1}},
		{name: "int8 min", value: attribute.Value{Type: format.TypeInt, Encoding: format.EncodingInt8, Int: math.MinInt8}},
		{name: "int8 max", value: attribute.Value{Type: format.TypeInt, Encoding: format.EncodingInt8, Int: math.MaxInt8}},
		{name: "int16 min", value: attribute.Value{Type: format.TypeInt, Encoding: format.EncodingInt16, Int: math.MinInt16}},
		{name: "int16 max", value: attribute.Value{Type: format.TypeInt, Encoding: format.EncodingInt16, Int: math.MaxInt16}},
		{name: "int32 min", value: attribute.Value{Type: format.TypeInt, Encoding: format.EncodingInt32, Int: math.MinInt32}},
		{name: "int32 max", value: attribute.Value{Type: format.TypeInt, Encoding: format.EncodingInt32, Int: math.MaxInt32}},
		{name: "int64 min", value: attribute.Value{Type: format.TypeInt, Encoding: format.EncodingInt64, Int: math.MinInt64}},
		{name: "int64 max", value: attribute.Value{Type: format.TypeInt, Encoding: format.EncodingInt64, Int: math.MaxInt64}},
		{name: "uint8", value: attribute.Value{Type: format.TypeUInt, Encoding: format.EncodingInt8, UInt: 0xff}},
		{name: "uint16", value: attribute.Value{Type: format.TypeUInt, Encoding: format.EncodingInt16, UInt: 0xbeef}},
		{name: "uint32", value: attribute.Value{Type: format.TypeUInt, Encoding: format.EncodingInt32, UInt: 0xdeadbeef}},
		{name: "uint64", value: attribute.Value{Type: format.TypeUInt, Encoding: format.EncodingInt64, UInt: math.MaxUint64}},
		{name: "inline string", value: attribute.StringValue("inline")},
		{name: "empty inline string", value: attribute.StringValue("")},
		{name: "table string", value: streamtest.TableValue("tabled")},
		{name: "utf-8 inline string", value: attribute.StringValue(utf8Sample)},
		{name: "utf-8 table string", value: streamtest.TableValue(utf8Sample)},
		{name: "long inline string", value: attribute.StringValue(longString)},
		{name: "long table string", value: streamtest.TableValue(longString)},
		{name: "inline raw", value: attribute.Value{Type: format.TypeRaw, Encoding: format.EncodingRawInline, Raw: []byte{0, 1, 2}}},
		{name: "heap raw", value: attribute.Value{Type: format.TypeRaw, Encoding: format.EncodingRawHeap, HeapOffset: 1 << 20, HeapSize: 300}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stream := streamtest.New().Attr(attribute.IDPackageName, tt.value, false).Build()
			s := prepared(t, stream.Data, stream.StringsLength, stream.StringsCount)

			// skip the tag
			_, err := s.ReadUnsignedVarint()
			require.NoError(t, err)

			got, err := s.DecodeAttributeValue(tt.value.Type, tt.value.Encoding)
			require.NoError(t, err)
			require.True(t, tt.value.Equal(got), "want %#v, got %#v", tt.value, got)
			require.Zero(t, s.Remaining())
		})
	}
}

func TestDecodeAttributeValue_AcrossHeapChunks(t *testing.T) {
	for _, ct := range []format.CompressionType{format.CompressionNone, format.CompressionZstd} {
		t.Run(ct.String(), func(t *testing.T) {
			stream := streamtest.New().
				String(attribute.IDPackageDescription, longString).
				TableString(attribute.IDPackageSummary, longString).
				Build()
			require.Greater(t, len(stream.Data), 2*heap.DefaultChunkSize)

			img, err := streamtest.BuildHeap(stream.Data, ct, heap.DefaultChunkSize, 32)
			require.NoError(t, err)
			reader, err := heap.NewFileReader(bytes.NewReader(img.File), "long", heap.Layout{
				Offset:           img.Offset,
				CompressedSize:   img.CompressedSize,
				UncompressedSize: int64(len(stream.Data)),
				Compression:      ct,
			})
			require.NoError(t, err)
			require.Greater(t, reader.ChunkCount(), 2)

			length := uint64(len(stream.Data))
			s, err := New("long", length, length, 0, stream.StringsLength, stream.StringsCount)
			require.NoError(t, err)
			require.NoError(t, s.Prepare(reader))
			require.Equal(t, []string{longString}, s.Strings())

			for _, want := range []attribute.Value{attribute.StringValue(longString), streamtest.TableValue(longString)} {
				_, err := s.ReadUnsignedVarint()
				require.NoError(t, err)

				got, err := s.DecodeAttributeValue(want.Type, want.Encoding)
				require.NoError(t, err)
				require.Equal(t, longString, got.String)
			}
			require.Zero(t, s.Remaining())
		})
	}
}

func TestDecodeAttributeValue_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		typ      format.AttributeType
		encoding format.AttributeEncoding
		wantErr  error
	}{
		{name: "int encoding", typ: format.TypeInt, encoding: 4, wantErr: errs.ErrInvalidEncoding},
		{name: "uint encoding", typ: format.TypeUInt, encoding: 7, wantErr: errs.ErrInvalidEncoding},
		{name: "string encoding", typ: format.TypeString, encoding: 2, wantErr: errs.ErrInvalidEncoding},
		{name: "raw encoding", typ: format.TypeRaw, encoding: 2, wantErr: errs.ErrInvalidEncoding},
		{name: "invalid type", typ: format.TypeInvalid, wantErr: errs.ErrInvalidType},
		{name: "unknown type", typ: 7, wantErr: errs.ErrInvalidType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := prepared(t, []byte{0, 0, 0, 0, 0, 0, 0, 0, 0}, 0, 0)
			_, err := s.DecodeAttributeValue(tt.typ, tt.encoding)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDecodeAttributeValue_Truncated(t *testing.T) {
	s := prepared(t, []byte{0x12, 0x34}, 0, 0)
	_, err := s.DecodeAttributeValue(format.TypeUInt, format.EncodingInt32)
	require.ErrorIs(t, err, errs.ErrUnexpectedEnd)
}
