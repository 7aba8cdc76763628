// Package section implements the byte section of an attribute tree: a
// decompressed region of the package heap, its string table and a read cursor.
//
// # Layout
//
// A section starts with its string table, followed by the attribute stream:
//
//	+--------------------------------------------+
//	| string 0 \0 | string 1 \0 | ... | \0       |  stringsLength bytes
//	+--------------------------------------------+
//	| tag | value | tag | value | ... | 0        |  attribute stream
//	+--------------------------------------------+
//
// Tags and string table indexes are unsigned LEB128 varints. Integer values are
// fixed width big-endian.
//
// # Usage
//
//	sec, err := section.New("package attributes", heapSize, length, maxSane, stringsLength, stringsCount)
//	if err != nil {
//	    return err
//	}
//	if err := sec.Prepare(heapReader); err != nil {
//	    return err
//	}
//
// Strings returned by a section borrow its buffer, there is no copy per
// attribute. A sink keeping them past the parse must clone them.
package section
