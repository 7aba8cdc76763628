package dump

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/hpkg/attribute"
	"github.com/arloliu/hpkg/format"
	"github.com/arloliu/hpkg/handler"
)

// encMode encodes with Core Deterministic Encoding (RFC 8949 §4.2), so a tree
// always serializes to the same bytes.
var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("dump: CBOR encoder initialization failed: " + err.Error())
	}
}

// Node is one attribute of the raw tree. Exactly one of the value fields is
// set, matching Type.
type Node struct {
	ID         string  `cbor:"id" yaml:"id"`
	Type       string  `cbor:"type" yaml:"type"`
	Int        *int64  `cbor:"int,omitempty" yaml:"int,omitempty"`
	UInt       *uint64 `cbor:"uint,omitempty" yaml:"uint,omitempty"`
	String     *string `cbor:"string,omitempty" yaml:"string,omitempty"`
	Raw        []byte  `cbor:"raw,omitempty" yaml:"raw,omitempty"`
	HeapOffset *uint64 `cbor:"heap_offset,omitempty" yaml:"heap_offset,omitempty"`
	HeapSize   *uint64 `cbor:"heap_size,omitempty" yaml:"heap_size,omitempty"`
	Children   []*Node `cbor:"children,omitempty" yaml:"children,omitempty"`
}

func newNode(id attribute.ID, value attribute.Value) *Node {
	n := &Node{ID: id.String(), Type: value.Type.String()}

	switch value.Type {
	case format.TypeInt:
		v := value.Int
		n.Int = &v
	case format.TypeUInt:
		v := value.UInt
		n.UInt = &v
	case format.TypeString:
		v := strings.Clone(value.String)
		n.String = &v
	case format.TypeRaw:
		if value.Encoding == format.EncodingRawHeap {
			offset, size := value.HeapOffset, value.HeapSize
			n.HeapOffset = &offset
			n.HeapSize = &size
		} else {
			n.Raw = bytes.Clone(value.Raw)
		}
	}

	return n
}

// Tree records the raw attribute tree of one parse.
//
// Values are copied on arrival, so the tree outlives the section it was parsed
// from. A Tree is NOT thread-safe.
type Tree struct {
	Roots []*Node
	// Failed is set when the parse reported an error; the tree then holds
	// whatever was read before the failure.
	Failed bool

	open int
}

var _ handler.LowLevelHandler = (*Tree)(nil)

// NewTree creates an empty tree.
func NewTree() *Tree {
	return &Tree{}
}

// HandleAttribute appends the attribute below its parent. The returned token
// is the new node.
func (t *Tree) HandleAttribute(id attribute.ID, value attribute.Value, parentToken any) (any, error) {
	n := newNode(id, value)

	if parentToken == nil {
		t.Roots = append(t.Roots, n)
	} else {
		parent, ok := parentToken.(*Node)
		if !ok {
			return nil, fmt.Errorf("unexpected parent token %T", parentToken)
		}
		parent.Children = append(parent.Children, n)
	}
	t.open++

	return n, nil
}

// HandleAttributeDone closes the attribute's subtree.
func (t *Tree) HandleAttributeDone(_ attribute.ID, _ attribute.Value, _, token any) error {
	if _, ok := token.(*Node); !ok {
		return fmt.Errorf("unexpected token %T", token)
	}
	t.open--

	return nil
}

// HandleErrorOccurred marks the tree as incomplete.
func (t *Tree) HandleErrorOccurred() {
	t.Failed = true
}

// Complete reports whether every recorded attribute was closed and the parse succeeded.
func (t *Tree) Complete() bool {
	return !t.Failed && t.open == 0
}

// Count returns the number of nodes in the tree.
func (t *Tree) Count() int {
	var count func(nodes []*Node) int
	count = func(nodes []*Node) int {
		n := len(nodes)
		for _, node := range nodes {
			n += count(node.Children)
		}

		return n
	}

	return count(t.Roots)
}

// MarshalCBOR encodes the top-level nodes as a deterministic CBOR array.
func (t *Tree) MarshalCBOR() ([]byte, error) {
	return encMode.Marshal(t.Roots)
}

// MarshalYAML implements yaml.Marshaler.
func (t *Tree) MarshalYAML() (any, error) {
	return t.Roots, nil
}

// ToYAML renders the tree as a YAML sequence.
func (t *Tree) ToYAML() ([]byte, error) {
	return yaml.Marshal(t)
}

// UnmarshalCBOR decodes nodes produced by MarshalCBOR.
func UnmarshalCBOR(data []byte) ([]*Node, error) {
	var roots []*Node
	if err := cbor.Unmarshal(data, &roots); err != nil {
		return nil, err
	}

	return roots, nil
}
