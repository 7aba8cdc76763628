// Package errs defines the error taxonomy shared by all hpkg packages.
//
// Every error returned while decoding an attribute section wraps exactly one of
// the three category errors, so callers can branch with errors.Is:
//
//	if errors.Is(err, errs.ErrUnsupported) {
//	    // retry with relaxed limits or a fallback path
//	}
//
// The named sentinels below wrap their category, so matching either the
// specific sentinel or its category works.
package errs

import (
	"errors"
	"fmt"
)

// Category errors.
var (
	// ErrStructural reports malformed input: bad tags or values, bounds
	// violations, size mismatches, string table inconsistencies.
	ErrStructural = errors.New("bad data")
	// ErrResource reports an allocation failure.
	ErrResource = errors.New("no memory")
	// ErrUnsupported reports a configured limit being exceeded or an optional
	// subsystem being unavailable.
	ErrUnsupported = errors.New("not supported")
)

// Section errors.
var (
	ErrSectionTooLarge         = fmt.Errorf("%w: section size exceeds the available space", ErrStructural)
	ErrSectionUnusuallyLarge   = fmt.Errorf("%w: section size is unusually large", ErrUnsupported)
	ErrStringsInconsistent     = fmt.Errorf("%w: strings length and count are inconsistent", ErrStructural)
	ErrStringsTooLarge         = fmt.Errorf("%w: strings subsection is bigger than the section", ErrStructural)
	ErrStringNotTerminated     = fmt.Errorf("%w: string not terminated", ErrStructural)
	ErrMoreStringsThanDeclared = fmt.Errorf("%w: more strings than declared", ErrStructural)
	ErrLessStringsThanDeclared = fmt.Errorf("%w: less strings than declared", ErrStructural)
	ErrStringsBytesLeft        = fmt.Errorf("%w: bytes left in strings part", ErrStructural)
	ErrSectionNotPrepared      = fmt.Errorf("%w: section is not prepared", ErrStructural)
	ErrExcessBytes             = fmt.Errorf("%w: excess bytes after attribute tree", ErrStructural)
)

// Value and tag errors.
var (
	ErrVarintTruncated     = fmt.Errorf("%w: unsigned varint runs past the end of the section", ErrStructural)
	ErrVarintOverflow      = fmt.Errorf("%w: unsigned varint overflows 64 bits", ErrStructural)
	ErrUnexpectedEnd       = fmt.Errorf("%w: unexpected end of section", ErrStructural)
	ErrStringIndex         = fmt.Errorf("%w: string table index out of range", ErrStructural)
	ErrInvalidEncoding     = fmt.Errorf("%w: invalid attribute encoding", ErrStructural)
	ErrInvalidType         = fmt.Errorf("%w: invalid attribute type", ErrStructural)
	ErrUnexpectedType      = fmt.Errorf("%w: unexpected type for id", ErrStructural)
	ErrUnsupportedID       = fmt.Errorf("%w: unsupported attribute id", ErrStructural)
	ErrUnexpectedAttribute = fmt.Errorf("%w: unexpected attribute id", ErrStructural)
	ErrInvalidEnumValue    = fmt.Errorf("%w: invalid enumerator value", ErrStructural)
)

// Walker and heap errors.
var (
	ErrMaxDepthExceeded       = fmt.Errorf("%w: attribute nesting depth exceeds the configured limit", ErrUnsupported)
	ErrCacheUnavailable       = fmt.Errorf("%w: heap chunk cache unavailable", ErrUnsupported)
	ErrUnsupportedCompression = fmt.Errorf("%w: unsupported compression", ErrStructural)
	ErrHeapRange              = fmt.Errorf("%w: heap read out of range", ErrStructural)
	ErrChunkSize              = fmt.Errorf("%w: invalid heap chunk size", ErrStructural)
	ErrDecompress             = fmt.Errorf("%w: heap chunk decompression failed", ErrStructural)
	ErrHeapRead               = fmt.Errorf("%w: heap read failed", ErrStructural)
	ErrRejected               = fmt.Errorf("%w: attribute rejected by handler", ErrStructural)
)

// Structuralf returns an ErrStructural-wrapped error with a formatted detail.
func Structuralf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrStructural, fmt.Sprintf(format, args...))
}

// Resourcef returns an ErrResource-wrapped error with a formatted detail.
func Resourcef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrResource, fmt.Sprintf(format, args...))
}

// Unsupportedf returns an ErrUnsupported-wrapped error with a formatted detail.
func Unsupportedf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnsupported, fmt.Sprintf(format, args...))
}

// Categorize returns err unchanged if it already wraps one of the category
// errors, otherwise err wrapped by sentinel. A nil err stays nil.
func Categorize(err error, sentinel error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrStructural) || errors.Is(err, ErrResource) || errors.Is(err, ErrUnsupported) {
		return err
	}

	return fmt.Errorf("%w: %w", sentinel, err)
}
