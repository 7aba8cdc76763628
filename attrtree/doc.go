// Package attrtree walks the attribute tree of a prepared section and feeds it
// to a stack of handlers.
//
// The walk is iterative: nesting is tracked on an explicit, growable stack so
// that deeply nested input costs heap memory instead of goroutine stack. A
// handler.Context MaxDepth, when set, caps the nesting level and fails the
// parse with errs.ErrMaxDepthExceeded beyond it.
//
// Example:
//
//	sec, _ := section.New("package attributes", end, length, 0, stringsLength, stringsCount)
//	if err := sec.Prepare(heapReader); err != nil {
//	    return err
//	}
//	ctx := &handler.Context{SectionName: sec.Name(), ContentHandler: collector}
//	err := attrtree.Parse(ctx, sec, handler.NewPackageHandler())
package attrtree
