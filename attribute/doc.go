// Package attribute defines the attribute vocabulary of an HPKG attribute section:
// the append-only id table, the packed tag codec and the decoded value union.
//
// # Tags
//
// Every attribute starts with an unsigned LEB128 tag. After subtracting one, the
// tag packs the attribute id, its value type, the type-specific encoding and a
// has-children flag:
//
//	tag := attribute.ComposeTag(attribute.IDPackageName, format.TypeString,
//	    format.EncodingStringInline, false)
//	decoded, err := attribute.DecodeTag(tag, attribute.VersionPolicy{})
//
// The raw value 0 is reserved as the sentinel closing the current level.
//
// # Forward Compatibility
//
// The id table only grows. A stream written by a newer minor format version may
// contain ids this parser does not know; DecodeTag accepts them when the
// VersionPolicy says the stream is newer, and the walker skips their subtrees.
//
// # Thread Safety
//
// The id table is immutable and may be read from any number of goroutines.
package attribute
