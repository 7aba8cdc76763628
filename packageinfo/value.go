// Package packageinfo defines the finished records produced by the package
// attribute handlers and the sink interface that receives them.
package packageinfo

import "github.com/arloliu/hpkg/format"

// AttributeID identifies the kind of a finished package record.
type AttributeID int

const (
	AttributeName AttributeID = iota
	AttributeSummary
	AttributeDescription
	AttributeVendor
	AttributePackager
	AttributeBasePackage
	AttributeFlags
	AttributeArchitecture
	AttributeVersion
	AttributeCopyright
	AttributeLicense
	AttributeURL
	AttributeSourceURL
	AttributeProvides
	AttributeRequires
	AttributeSupplements
	AttributeConflicts
	AttributeFreshens
	AttributeReplaces
	AttributeChecksum
	AttributeInstallPath
	AttributeGlobalWritableFile
	AttributeUserSettingsFile
	AttributeUser
	AttributeGroup
	AttributePostInstallScript
	AttributePreUninstallScript

	// AttributeNone marks an empty accumulator.
	AttributeNone
)

var attributeNames = [...]string{
	AttributeName:               "name",
	AttributeSummary:            "summary",
	AttributeDescription:        "description",
	AttributeVendor:             "vendor",
	AttributePackager:           "packager",
	AttributeBasePackage:        "base-package",
	AttributeFlags:              "flags",
	AttributeArchitecture:       "architecture",
	AttributeVersion:            "version",
	AttributeCopyright:          "copyright",
	AttributeLicense:            "license",
	AttributeURL:                "url",
	AttributeSourceURL:          "source-url",
	AttributeProvides:           "provides",
	AttributeRequires:           "requires",
	AttributeSupplements:        "supplements",
	AttributeConflicts:          "conflicts",
	AttributeFreshens:           "freshens",
	AttributeReplaces:           "replaces",
	AttributeChecksum:           "checksum",
	AttributeInstallPath:        "install-path",
	AttributeGlobalWritableFile: "global-writable-file",
	AttributeUserSettingsFile:   "user-settings-file",
	AttributeUser:               "user",
	AttributeGroup:              "group",
	AttributePostInstallScript:  "post-install-script",
	AttributePreUninstallScript: "pre-uninstall-script",
	AttributeNone:               "none",
}

func (id AttributeID) String() string {
	if id >= 0 && int(id) < len(attributeNames) {
		return attributeNames[id]
	}

	return "unknown"
}

// Version is a package version. Major is always set; the other parts are optional.
type Version struct {
	Major      string
	Minor      string
	Micro      string
	PreRelease string
	Revision   uint64
}

// Resolvable is something a package provides.
type Resolvable struct {
	Name                  string
	HaveVersion           bool
	Version               Version
	HaveCompatibleVersion bool
	CompatibleVersion     Version
}

// ResolvableExpression is a requirement on a resolvable, optionally versioned.
type ResolvableExpression struct {
	Name                   string
	HaveOperatorAndVersion bool
	Operator               format.ResolvableOperator
	Version                Version
}

// GlobalWritableFileInfo describes a writable file outside the user's home.
type GlobalWritableFileInfo struct {
	Path        string
	UpdateType  format.WritableFileUpdate
	IsDirectory bool
}

// UserSettingsFileInfo describes a per-user settings file.
type UserSettingsFileInfo struct {
	Path         string
	TemplatePath string
	IsDirectory  bool
}

// User describes a user account a package declares.
type User struct {
	Name     string
	RealName string
	Home     string
	Shell    string
	Groups   []string
}

// AttributeValue is one finished package record. Only the field matching ID is meaningful.
//
// Strings borrow the buffer of the section they were decoded from. A sink that
// keeps a record after HandlePackageAttribute returns must copy it, see Clone.
type AttributeValue struct {
	ID AttributeID

	String       string
	Flags        uint64
	Architecture format.Architecture

	Version                Version
	Resolvable             Resolvable
	ResolvableExpression   ResolvableExpression
	GlobalWritableFileInfo GlobalWritableFileInfo
	UserSettingsFileInfo   UserSettingsFileInfo
	User                   User
}

// NewAttributeValue returns an empty accumulator.
func NewAttributeValue() AttributeValue {
	return AttributeValue{ID: AttributeNone}
}

// SetString sets a string record.
func (v *AttributeValue) SetString(id AttributeID, s string) {
	v.ID = id
	v.String = s
}

// IsEmpty reports whether the accumulator holds no record.
func (v *AttributeValue) IsEmpty() bool {
	return v.ID == AttributeNone
}

// Clear empties the accumulator.
func (v *AttributeValue) Clear() {
	*v = NewAttributeValue()
}
