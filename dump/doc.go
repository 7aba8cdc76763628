// Package dump records the uninterpreted attribute tree of a section and
// exports it as CBOR or YAML.
//
// Tree implements handler.LowLevelHandler:
//
//	tree := dump.NewTree()
//	if err := hpkg.ParseRawAttributes(heapReader, geometry, tree); err != nil {
//	    return err
//	}
//	out, _ := tree.ToYAML()
package dump
