package attribute

import (
	"fmt"

	"github.com/arloliu/hpkg/errs"
	"github.com/arloliu/hpkg/format"
)

// Tag bit layout, applied to the raw wire value minus one:
//
//	bit  0     has children
//	bits 1-3   encoding
//	bits 4-6   type
//	bits 7-63  id
//
// A raw wire value of 0 is the level-closing sentinel.
const (
	tagChildrenMask  = 0x1
	tagEncodingShift = 1
	tagEncodingMask  = 0x7
	tagTypeShift     = 4
	tagTypeMask      = 0x7
	tagIDShift       = 7
)

// SentinelTag is the raw tag value closing the current nesting level.
const SentinelTag uint64 = 0

// Tag is a decoded attribute tag.
type Tag struct {
	ID          ID
	Type        format.AttributeType
	Encoding    format.AttributeEncoding
	HasChildren bool
}

// VersionPolicy decides whether ids unknown to this parser are acceptable.
//
// StreamMinor is the minor format version declared by the stream being parsed
// and ParserMinor the minor format version this parser was built against. Both
// are negotiated by the container reader; the tag codec does not infer them.
type VersionPolicy struct {
	StreamMinor uint16
	ParserMinor uint16
}

// AllowsUnknownIDs reports whether ids past the compiled table may appear.
func (p VersionPolicy) AllowsUnknownIDs() bool {
	return p.StreamMinor > p.ParserMinor
}

// ComposeTag builds the raw wire value for a tag.
func ComposeTag(id ID, typ format.AttributeType, encoding format.AttributeEncoding, hasChildren bool) uint64 {
	raw := uint64(id)<<tagIDShift |
		uint64(typ&tagTypeMask)<<tagTypeShift |
		uint64(encoding&tagEncodingMask)<<tagEncodingShift
	if hasChildren {
		raw |= tagChildrenMask
	}

	return raw + 1
}

// DecodeTag unpacks and validates a non-sentinel raw tag.
//
// The type must be a known enumerator. A known id must carry the type the id
// table declares for it. An unknown id is accepted only if the policy allows
// ids from a newer minor format version.
func DecodeTag(raw uint64, policy VersionPolicy) (Tag, error) {
	if raw == SentinelTag {
		return Tag{}, fmt.Errorf("%w: sentinel has no tag fields", errs.ErrInvalidType)
	}

	t := raw - 1
	tag := Tag{
		ID:          ID(t >> tagIDShift),
		Type:        format.AttributeType((t >> tagTypeShift) & tagTypeMask),
		Encoding:    format.AttributeEncoding((t >> tagEncodingShift) & tagEncodingMask),
		HasChildren: t&tagChildrenMask != 0,
	}

	if !tag.Type.IsValid() {
		return tag, fmt.Errorf("%w: type %d for attribute id %d", errs.ErrInvalidType, tag.Type, tag.ID)
	}

	if tag.ID.IsKnown() {
		if expected := tag.ID.Type(); tag.Type != expected {
			return tag, fmt.Errorf("%w: attribute %s has type %s, expected %s",
				errs.ErrUnexpectedType, tag.ID, tag.Type, expected)
		}

		return tag, nil
	}

	if !policy.AllowsUnknownIDs() {
		return tag, fmt.Errorf("%w: %d (stream minor version %d, parser minor version %d)",
			errs.ErrUnsupportedID, tag.ID, policy.StreamMinor, policy.ParserMinor)
	}

	return tag, nil
}
