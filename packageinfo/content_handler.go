package packageinfo

import (
	"strconv"
	"strings"
)

// ContentHandler is the sink receiving finished package records.
type ContentHandler interface {
	// HandlePackageAttribute accepts one finished record. The value is cleared
	// by the caller after the call returns.
	HandlePackageAttribute(value *AttributeValue) error
	// HandleErrorOccurred is called once when a parse fails. Records already
	// delivered are not rolled back.
	HandleErrorOccurred()
}

// Clone returns a deep copy of v that no longer borrows any section buffer.
func (v *AttributeValue) Clone() AttributeValue {
	c := *v
	c.String = strings.Clone(v.String)
	c.Version = v.Version.clone()
	c.Resolvable.Name = strings.Clone(v.Resolvable.Name)
	c.Resolvable.Version = v.Resolvable.Version.clone()
	c.Resolvable.CompatibleVersion = v.Resolvable.CompatibleVersion.clone()
	c.ResolvableExpression.Name = strings.Clone(v.ResolvableExpression.Name)
	c.ResolvableExpression.Version = v.ResolvableExpression.Version.clone()
	c.GlobalWritableFileInfo.Path = strings.Clone(v.GlobalWritableFileInfo.Path)
	c.UserSettingsFileInfo.Path = strings.Clone(v.UserSettingsFileInfo.Path)
	c.UserSettingsFileInfo.TemplatePath = strings.Clone(v.UserSettingsFileInfo.TemplatePath)
	c.User.Name = strings.Clone(v.User.Name)
	c.User.RealName = strings.Clone(v.User.RealName)
	c.User.Home = strings.Clone(v.User.Home)
	c.User.Shell = strings.Clone(v.User.Shell)
	if v.User.Groups != nil {
		c.User.Groups = make([]string, len(v.User.Groups))
		for i, g := range v.User.Groups {
			c.User.Groups[i] = strings.Clone(g)
		}
	}

	return c
}

func (v Version) clone() Version {
	return Version{
		Major:      strings.Clone(v.Major),
		Minor:      strings.Clone(v.Minor),
		Micro:      strings.Clone(v.Micro),
		PreRelease: strings.Clone(v.PreRelease),
		Revision:   v.Revision,
	}
}

// String formats the version the way package names spell it, e.g. "1.2.3~beta-4".
func (v Version) String() string {
	var b strings.Builder
	b.WriteString(v.Major)
	for _, part := range []string{v.Minor, v.Micro} {
		if part == "" {
			break
		}
		b.WriteByte('.')
		b.WriteString(part)
	}
	if v.PreRelease != "" {
		b.WriteByte('~')
		b.WriteString(v.PreRelease)
	}
	if v.Revision != 0 {
		b.WriteByte('-')
		b.WriteString(strconv.FormatUint(v.Revision, 10))
	}

	return b.String()
}
