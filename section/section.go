package section

import (
	"bytes"
	"fmt"
	"math"
	"unsafe"

	"github.com/arloliu/hpkg/attribute"
	"github.com/arloliu/hpkg/endian"
	"github.com/arloliu/hpkg/errs"
	"github.com/arloliu/hpkg/format"
)

// maxVarintLen is the longest LEB128 encoding of a 64-bit value.
const maxVarintLen = 10

// HeapReader fills buf with len(buf) decompressed bytes starting at offset.
//
// It is satisfied by every reader in the heap package. Decompression and
// caching are invisible to the section.
type HeapReader interface {
	ReadData(offset int64, buf []byte) error
}

// Section is one self-contained, decompressed region of the package payload
// together with its string table and a monotonically advancing read cursor.
//
// The lifecycle is Init, Prepare, then reads. A Section is owned by a single
// parse and is NOT thread-safe. Strings and raw values returned by reads borrow
// the section buffer and stay valid as long as the Section is reachable.
type Section struct {
	name          string
	offset        uint64
	length        uint64
	stringsLength uint64
	stringsCount  uint64

	data          []byte
	currentOffset uint64
	strings       []string
	engine        endian.EndianEngine
}

// New returns an initialized section, see Init.
func New(name string, regionEnd, length, maxSaneLength, stringsLength, stringsCount uint64) (*Section, error) {
	s := &Section{}
	if err := s.Init(name, regionEnd, length, maxSaneLength, stringsLength, stringsCount); err != nil {
		return nil, err
	}

	return s, nil
}

// Init validates the declared geometry of the section.
//
// The section occupies the length bytes immediately before regionEnd. A
// maxSaneLength of zero disables the sanity ceiling.
//
// Parameters:
//   - name: Section name used in error messages
//   - regionEnd: Absolute end offset of the section within the heap
//   - length: Uncompressed section length in bytes
//   - maxSaneLength: Optional ceiling for length, 0 for none
//   - stringsLength: Byte length of the string table subsection
//   - stringsCount: Number of strings in the string table
//
// Returns:
//   - error: errs.ErrSectionTooLarge, errs.ErrStringsInconsistent or
//     errs.ErrStringsTooLarge (structural), errs.ErrSectionUnusuallyLarge (unsupported)
func (s *Section) Init(name string, regionEnd, length, maxSaneLength, stringsLength, stringsCount uint64) error {
	if length > regionEnd {
		return fmt.Errorf("%w: %s section size is %d bytes, only %d available",
			errs.ErrSectionTooLarge, name, length, regionEnd)
	}

	if maxSaneLength > 0 && length > maxSaneLength {
		return fmt.Errorf("%w: %s section size is %d bytes, limit %d",
			errs.ErrSectionUnusuallyLarge, name, length, maxSaneLength)
	}

	if (stringsLength <= 1) != (stringsCount == 0) {
		return fmt.Errorf("%w: %s section strings length %d, count %d",
			errs.ErrStringsInconsistent, name, stringsLength, stringsCount)
	}

	if stringsLength > length {
		return fmt.Errorf("%w: %s section strings length %d, section length %d",
			errs.ErrStringsTooLarge, name, stringsLength, length)
	}

	*s = Section{
		name:          name,
		offset:        regionEnd - length,
		length:        length,
		stringsLength: stringsLength,
		stringsCount:  stringsCount,
		engine:        endian.GetWireEngine(),
	}

	return nil
}

// Prepare reads the section bytes through the heap reader and parses the string table.
func (s *Section) Prepare(reader HeapReader) error {
	if s.length > math.MaxInt || s.offset > math.MaxInt64 {
		return errs.Resourcef("cannot allocate %d bytes for %s section", s.length, s.name)
	}

	data := make([]byte, s.length)
	if err := reader.ReadData(int64(s.offset), data); err != nil { //nolint:gosec
		return fmt.Errorf("failed to read %s section: %w", s.name, errs.Categorize(err, errs.ErrHeapRead))
	}

	s.data = data
	s.currentOffset = 0

	return s.ParseStrings()
}

// ParseStrings parses the string table at the current cursor and advances past it.
//
// With a declared count of zero the subsection is skipped. Otherwise it must
// hold exactly stringsCount non-empty NUL-terminated strings followed by one
// empty string that ends exactly at the declared length.
func (s *Section) ParseStrings() error {
	if s.data == nil && s.length > 0 {
		return errs.ErrSectionNotPrepared
	}

	if s.stringsLength > s.Remaining() {
		return fmt.Errorf("%w: %s section strings length %d, %d bytes remaining",
			errs.ErrStringsTooLarge, s.name, s.stringsLength, s.Remaining())
	}

	if s.stringsCount == 0 {
		s.currentOffset += s.stringsLength
		return nil
	}

	part := s.data[s.currentOffset : s.currentOffset+s.stringsLength]
	strings := make([]string, 0, min(s.stringsCount, uint64(len(part))))

	position := 0
	terminated := false
	for position < len(part) {
		length := bytes.IndexByte(part[position:], 0)
		if length < 0 {
			return fmt.Errorf("%w: %s section string %d", errs.ErrStringNotTerminated, s.name, len(strings))
		}

		if length == 0 {
			position++
			terminated = true

			break
		}

		if uint64(len(strings)) >= s.stringsCount {
			return fmt.Errorf("%w: %s section declares %d strings",
				errs.ErrMoreStringsThanDeclared, s.name, s.stringsCount)
		}

		strings = append(strings, borrowString(part[position:position+length]))
		position += length + 1
	}

	if !terminated {
		return fmt.Errorf("%w: %s section string table has no terminator",
			errs.ErrStringNotTerminated, s.name)
	}

	if position != len(part) {
		return fmt.Errorf("%w: %s section has %d bytes left in strings part",
			errs.ErrStringsBytesLeft, s.name, len(part)-position)
	}

	if uint64(len(strings)) != s.stringsCount {
		return fmt.Errorf("%w: %s section has %d strings, %d declared",
			errs.ErrLessStringsThanDeclared, s.name, len(strings), s.stringsCount)
	}

	s.strings = strings
	s.currentOffset += s.stringsLength

	return nil
}

// ReadUnsignedVarint reads an unsigned LEB128 integer.
//
// Each byte contributes its low 7 bits, least significant group first; the high
// bit marks that more bytes follow.
func (s *Section) ReadUnsignedVarint() (uint64, error) {
	var result uint64
	var shift uint

	for i := 0; i < maxVarintLen; i++ {
		if s.currentOffset >= uint64(len(s.data)) {
			return 0, fmt.Errorf("%w: %s section offset %d", errs.ErrVarintTruncated, s.name, s.currentOffset)
		}

		b := s.data[s.currentOffset]
		s.currentOffset++

		if i == maxVarintLen-1 && b > 1 {
			return 0, fmt.Errorf("%w: %s section offset %d", errs.ErrVarintOverflow, s.name, s.currentOffset-1)
		}

		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
	}

	return 0, fmt.Errorf("%w: %s section offset %d", errs.ErrVarintOverflow, s.name, s.currentOffset)
}

// ReadBuffer returns the next n bytes. The slice borrows the section buffer.
func (s *Section) ReadBuffer(n uint64) ([]byte, error) {
	if n > s.Remaining() {
		return nil, fmt.Errorf("%w: %s section needs %d bytes at offset %d, %d remaining",
			errs.ErrUnexpectedEnd, s.name, n, s.currentOffset, s.Remaining())
	}

	b := s.data[s.currentOffset : s.currentOffset+n]
	s.currentOffset += n

	return b, nil
}

// ReadInlineString reads a NUL-terminated string from the stream.
func (s *Section) ReadInlineString() (string, error) {
	rest := s.data[s.currentOffset:]
	length := bytes.IndexByte(rest, 0)
	if length < 0 {
		return "", fmt.Errorf("%w: %s section inline string at offset %d",
			errs.ErrStringNotTerminated, s.name, s.currentOffset)
	}

	str := borrowString(rest[:length])
	s.currentOffset += uint64(length) + 1

	return str, nil
}

// ReadStringFromTable returns the string table entry at index.
func (s *Section) ReadStringFromTable(index uint64) (string, error) {
	if index >= uint64(len(s.strings)) {
		return "", fmt.Errorf("%w: %s section index %d, table has %d strings",
			errs.ErrStringIndex, s.name, index, len(s.strings))
	}

	return s.strings[index], nil
}

// DecodeAttributeValue reads a value of the given type and encoding at the cursor.
//
// Integers are fixed width big-endian, sign-extended for format.TypeInt.
// Strings are either inline or a varint index into the string table. Raw
// values are either inline (varint size then bytes) or a heap reference
// (varint size then varint offset).
func (s *Section) DecodeAttributeValue(typ format.AttributeType, encoding format.AttributeEncoding) (attribute.Value, error) {
	value := attribute.Value{Type: typ, Encoding: encoding}

	switch typ {
	case format.TypeInt, format.TypeUInt:
		width, ok := intWidth(encoding)
		if !ok {
			return value, fmt.Errorf("%w: %s integer encoding %d", errs.ErrInvalidEncoding, typ, encoding)
		}

		b, err := s.ReadBuffer(width)
		if err != nil {
			return value, err
		}

		if typ == format.TypeInt {
			value.Int, ok = endian.ReadInt(s.engine, b)
		} else {
			value.UInt, ok = endian.ReadUint(s.engine, b)
		}
		if !ok {
			return value, fmt.Errorf("%w: %s integer of %d bytes", errs.ErrInvalidEncoding, typ, width)
		}

		return value, nil

	case format.TypeString:
		switch encoding {
		case format.EncodingStringInline:
			str, err := s.ReadInlineString()
			value.String = str

			return value, err
		case format.EncodingStringTable:
			index, err := s.ReadUnsignedVarint()
			if err != nil {
				return value, err
			}
			str, err := s.ReadStringFromTable(index)
			value.String = str

			return value, err
		default:
			return value, fmt.Errorf("%w: string encoding %d", errs.ErrInvalidEncoding, encoding)
		}

	case format.TypeRaw:
		size, err := s.ReadUnsignedVarint()
		if err != nil {
			return value, err
		}

		switch encoding {
		case format.EncodingRawInline:
			b, err := s.ReadBuffer(size)
			value.Raw = b

			return value, err
		case format.EncodingRawHeap:
			offset, err := s.ReadUnsignedVarint()
			value.HeapSize = size
			value.HeapOffset = offset

			return value, err
		default:
			return value, fmt.Errorf("%w: raw encoding %d", errs.ErrInvalidEncoding, encoding)
		}

	default:
		return value, fmt.Errorf("%w: %d", errs.ErrInvalidType, typ)
	}
}

// Name returns the section name.
func (s *Section) Name() string {
	return s.name
}

// Offset returns the absolute offset of the section within the heap.
func (s *Section) Offset() uint64 {
	return s.offset
}

// Length returns the uncompressed section length.
func (s *Section) Length() uint64 {
	return s.length
}

// CurrentOffset returns the cursor position relative to the section start.
func (s *Section) CurrentOffset() uint64 {
	return s.currentOffset
}

// Remaining returns the number of unread bytes.
func (s *Section) Remaining() uint64 {
	return uint64(len(s.data)) - s.currentOffset
}

// Strings returns the parsed string table. The entries borrow the section buffer.
func (s *Section) Strings() []string {
	return s.strings
}

func intWidth(encoding format.AttributeEncoding) (uint64, bool) {
	switch encoding {
	case format.EncodingInt8:
		return 1, true
	case format.EncodingInt16:
		return 2, true
	case format.EncodingInt32:
		return 4, true
	case format.EncodingInt64:
		return 8, true
	default:
		return 0, false
	}
}

// borrowString views b as a string without copying. The section buffer is never
// written after Prepare, which keeps the view immutable.
func borrowString(b []byte) string {
	if len(b) == 0 {
		return ""
	}

	return unsafe.String(&b[0], len(b))
}
