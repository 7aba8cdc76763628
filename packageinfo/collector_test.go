package packageinfo

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/hpkg/format"
)

func TestCollector(t *testing.T) {
	c := NewCollector()

	v := NewAttributeValue()
	require.True(t, v.IsEmpty())

	v.SetString(AttributeName, "demo")
	require.NoError(t, c.HandlePackageAttribute(&v))
	v.Clear()

	v.ID = AttributeVersion
	v.Version = Version{Major: "1", Minor: "2", PreRelease: "beta", Revision: 3}
	require.NoError(t, c.HandlePackageAttribute(&v))
	v.Clear()

	v.ID = AttributeRequires
	v.ResolvableExpression = ResolvableExpression{
		Name:                   "lib:libfoo",
		HaveOperatorAndVersion: true,
		Operator:               format.OperatorGreaterEqual,
		Version:                Version{Major: "2"},
	}
	require.NoError(t, c.HandlePackageAttribute(&v))
	v.Clear()

	v.ID = AttributeUser
	v.User = User{Name: "svc", Groups: []string{"a", "b"}}
	require.NoError(t, c.HandlePackageAttribute(&v))

	require.Equal(t, "demo", c.Info.Name)
	require.Equal(t, "1.2~beta-3", c.Info.Version.String())
	require.Len(t, c.Info.Requires, 1)
	require.Equal(t, format.OperatorGreaterEqual, c.Info.Requires[0].Operator)
	require.Equal(t, []string{"a", "b"}, c.Info.Users[0].Groups)
	require.Len(t, c.Records, 4)
	require.False(t, c.Failed)

	c.HandleErrorOccurred()
	require.True(t, c.Failed)
}

func TestCollector_UnknownRecord(t *testing.T) {
	c := NewCollector()
	v := NewAttributeValue()
	require.Error(t, c.HandlePackageAttribute(&v))
}

func TestAttributeValue_CloneDetachesGroups(t *testing.T) {
	v := AttributeValue{ID: AttributeUser, User: User{Name: "u", Groups: []string{"g"}}}
	c := v.Clone()
	v.User.Groups[0] = "changed"
	require.Equal(t, "g", c.User.Groups[0])
}

func TestVersion_String(t *testing.T) {
	tests := []struct {
		v    Version
		want string
	}{
		{Version{Major: "1"}, "1"},
		{Version{Major: "1", Minor: "0"}, "1.0"},
		{Version{Major: "1", Minor: "0", Micro: "5"}, "1.0.5"},
		{Version{Major: "2", Micro: "5"}, "2"},
		{Version{Major: "r1", PreRelease: "beta5"}, "r1~beta5"},
		{Version{Major: "1", Revision: 12}, "1-12"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			require.Equal(t, tt.want, tt.v.String())
		})
	}
}
