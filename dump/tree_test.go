package dump

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/hpkg/attribute"
	"github.com/arloliu/hpkg/format"
)

func buildTree(t *testing.T) *Tree {
	t.Helper()

	tree := NewTree()

	name, err := tree.HandleAttribute(attribute.IDPackageName, attribute.StringValue("demo"), nil)
	require.NoError(t, err)
	require.NoError(t, tree.HandleAttributeDone(attribute.IDPackageName, attribute.StringValue("demo"), nil, name))

	major := attribute.StringValue("1")
	version, err := tree.HandleAttribute(attribute.IDPackageVersionMajor, major, nil)
	require.NoError(t, err)

	revision := attribute.UIntValue(3)
	tok, err := tree.HandleAttribute(attribute.IDPackageVersionRevision, revision, version)
	require.NoError(t, err)
	require.NoError(t, tree.HandleAttributeDone(attribute.IDPackageVersionRevision, revision, version, tok))

	data := attribute.Value{Type: format.TypeRaw, Encoding: format.EncodingRawHeap, HeapOffset: 64, HeapSize: 8}
	tok, err = tree.HandleAttribute(attribute.IDData, data, version)
	require.NoError(t, err)
	require.NoError(t, tree.HandleAttributeDone(attribute.IDData, data, version, tok))

	require.NoError(t, tree.HandleAttributeDone(attribute.IDPackageVersionMajor, major, nil, version))

	return tree
}

func TestTree_Structure(t *testing.T) {
	tree := buildTree(t)

	require.True(t, tree.Complete())
	require.Equal(t, 4, tree.Count())
	require.Len(t, tree.Roots, 2)
	require.Equal(t, "package:name", tree.Roots[0].ID)
	require.Equal(t, "demo", *tree.Roots[0].String)

	version := tree.Roots[1]
	require.Len(t, version.Children, 2)
	require.Equal(t, uint64(3), *version.Children[0].UInt)
	require.Equal(t, uint64(64), *version.Children[1].HeapOffset)
	require.Nil(t, version.Children[1].Raw)
}

func TestTree_CopiesBorrowedValues(t *testing.T) {
	buf := []byte("borrowed")
	value := attribute.Value{Type: format.TypeRaw, Encoding: format.EncodingRawInline, Raw: buf}

	tree := NewTree()
	_, err := tree.HandleAttribute(attribute.IDData, value, nil)
	require.NoError(t, err)

	buf[0] = 'X'
	require.Equal(t, []byte("borrowed"), tree.Roots[0].Raw)
}

func TestTree_Failed(t *testing.T) {
	tree := NewTree()
	_, err := tree.HandleAttribute(attribute.IDPackageName, attribute.StringValue("x"), nil)
	require.NoError(t, err)
	require.False(t, tree.Complete())

	tree.HandleErrorOccurred()
	require.True(t, tree.Failed)
	require.False(t, tree.Complete())
}

func TestTree_BadTokens(t *testing.T) {
	tree := NewTree()
	_, err := tree.HandleAttribute(attribute.IDPackageName, attribute.StringValue("x"), "parent")
	require.Error(t, err)
	require.Error(t, tree.HandleAttributeDone(attribute.IDPackageName, attribute.StringValue("x"), nil, 42))
}

func TestTree_CBOR(t *testing.T) {
	tree := buildTree(t)

	first, err := tree.MarshalCBOR()
	require.NoError(t, err)
	second, err := buildTree(t).MarshalCBOR()
	require.NoError(t, err)
	require.Equal(t, first, second, "encoding must be deterministic")

	roots, err := UnmarshalCBOR(first)
	require.NoError(t, err)
	require.Equal(t, tree.Roots, roots)
}

func TestTree_YAML(t *testing.T) {
	out, err := buildTree(t).ToYAML()
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	require.Len(t, decoded, 2)
	require.Equal(t, "package:name", decoded[0]["id"])
	require.Equal(t, "demo", decoded[0]["string"])
	require.Equal(t, "String", decoded[1]["type"])

	children, ok := decoded[1]["children"].([]any)
	require.True(t, ok)
	require.Len(t, children, 2)
}
