package attribute

import (
	"strconv"

	"github.com/arloliu/hpkg/format"
)

// ID identifies an attribute. The id space is append-only: new format minor
// versions may add ids past IDCount, never renumber existing ones.
type ID uint64

const (
	IDDirectoryEntry ID = iota
	IDFileType
	IDFilePermissions
	IDFileUser
	IDFileGroup
	IDFileATime
	IDFileMTime
	IDFileCRTime
	IDFileATimeNanos
	IDFileMTimeNanos
	IDFileCRTimeNanos
	IDFileAttribute
	IDFileAttributeType
	IDData
	IDSymlinkPath
	IDPackageName
	IDPackageSummary
	IDPackageDescription
	IDPackageVendor
	IDPackagePackager
	IDPackageFlags
	IDPackageArchitecture
	IDPackageVersionMajor
	IDPackageVersionMinor
	IDPackageVersionMicro
	IDPackageVersionRevision
	IDPackageCopyright
	IDPackageLicense
	IDPackageProvides
	IDPackageRequires
	IDPackageSupplements
	IDPackageConflicts
	IDPackageFreshens
	IDPackageReplaces
	IDPackageResolvableOperator
	IDPackageChecksum
	IDPackageVersionPreRelease
	IDPackageProvidesCompatible
	IDPackageURL
	IDPackageSourceURL
	IDPackageInstallPath
	IDPackageBasePackage
	IDPackageGlobalWritableFile
	IDPackageUserSettingsFile
	IDPackageWritableFileUpdateType
	IDPackageSettingsFileTemplate
	IDPackageUser
	IDPackageUserRealName
	IDPackageUserHome
	IDPackageUserShell
	IDPackageUserGroup
	IDPackagePostInstallScript
	IDPackageIsWritableDirectory
	IDPackage
	IDPackageGroup
	IDPackagePreUninstallScript

	// IDCount is the number of ids known to this parser.
	IDCount
)

type idInfo struct {
	name string
	typ  format.AttributeType
}

// idTable is never mutated after initialization and is safe for concurrent reads.
var idTable = [IDCount]idInfo{
	IDDirectoryEntry:                {"dir:entry", format.TypeString},
	IDFileType:                      {"file:type", format.TypeUInt},
	IDFilePermissions:               {"file:permissions", format.TypeUInt},
	IDFileUser:                      {"file:user", format.TypeString},
	IDFileGroup:                     {"file:group", format.TypeString},
	IDFileATime:                     {"file:atime", format.TypeUInt},
	IDFileMTime:                     {"file:mtime", format.TypeUInt},
	IDFileCRTime:                    {"file:crtime", format.TypeUInt},
	IDFileATimeNanos:                {"file:atime:nanos", format.TypeUInt},
	IDFileMTimeNanos:                {"file:mtime:nanos", format.TypeUInt},
	IDFileCRTimeNanos:               {"file:crtime:nanos", format.TypeUInt},
	IDFileAttribute:                 {"file:attribute", format.TypeString},
	IDFileAttributeType:             {"file:attribute:type", format.TypeUInt},
	IDData:                          {"data", format.TypeRaw},
	IDSymlinkPath:                   {"symlink:path", format.TypeString},
	IDPackageName:                   {"package:name", format.TypeString},
	IDPackageSummary:                {"package:summary", format.TypeString},
	IDPackageDescription:            {"package:description", format.TypeString},
	IDPackageVendor:                 {"package:vendor", format.TypeString},
	IDPackagePackager:               {"package:packager", format.TypeString},
	IDPackageFlags:                  {"package:flags", format.TypeUInt},
	IDPackageArchitecture:           {"package:architecture", format.TypeUInt},
	IDPackageVersionMajor:           {"package:version.major", format.TypeString},
	IDPackageVersionMinor:           {"package:version.minor", format.TypeString},
	IDPackageVersionMicro:           {"package:version.micro", format.TypeString},
	IDPackageVersionRevision:        {"package:version.revision", format.TypeUInt},
	IDPackageCopyright:              {"package:copyright", format.TypeString},
	IDPackageLicense:                {"package:license", format.TypeString},
	IDPackageProvides:               {"package:provides", format.TypeString},
	IDPackageRequires:               {"package:requires", format.TypeString},
	IDPackageSupplements:            {"package:supplements", format.TypeString},
	IDPackageConflicts:              {"package:conflicts", format.TypeString},
	IDPackageFreshens:               {"package:freshens", format.TypeString},
	IDPackageReplaces:               {"package:replaces", format.TypeString},
	IDPackageResolvableOperator:     {"package:resolvable.operator", format.TypeUInt},
	IDPackageChecksum:               {"package:checksum", format.TypeString},
	IDPackageVersionPreRelease:      {"package:version.prerelease", format.TypeString},
	IDPackageProvidesCompatible:     {"package:provides.compatible", format.TypeString},
	IDPackageURL:                    {"package:url", format.TypeString},
	IDPackageSourceURL:              {"package:source-url", format.TypeString},
	IDPackageInstallPath:            {"package:install-path", format.TypeString},
	IDPackageBasePackage:            {"package:base-package", format.TypeString},
	IDPackageGlobalWritableFile:     {"package:global-writable-file", format.TypeString},
	IDPackageUserSettingsFile:       {"package:user-settings-file", format.TypeString},
	IDPackageWritableFileUpdateType: {"package:writable-file-update-type", format.TypeUInt},
	IDPackageSettingsFileTemplate:   {"package:settings-file-template", format.TypeString},
	IDPackageUser:                   {"package:user", format.TypeString},
	IDPackageUserRealName:           {"package:user.real-name", format.TypeString},
	IDPackageUserHome:               {"package:user.home", format.TypeString},
	IDPackageUserShell:              {"package:user.shell", format.TypeString},
	IDPackageUserGroup:              {"package:user.group", format.TypeString},
	IDPackagePostInstallScript:      {"package:post-install-script", format.TypeString},
	IDPackageIsWritableDirectory:    {"package:is-writable-directory", format.TypeUInt},
	IDPackage:                       {"package", format.TypeString},
	IDPackageGroup:                  {"package:group", format.TypeString},
	IDPackagePreUninstallScript:     {"package:pre-uninstall-script", format.TypeString},
}

// IsKnown reports whether id is in the table compiled into this parser.
func (id ID) IsKnown() bool {
	return id < IDCount
}

// Type returns the declared value type of a known id, or format.TypeInvalid.
func (id ID) Type() format.AttributeType {
	if !id.IsKnown() {
		return format.TypeInvalid
	}

	return idTable[id].typ
}

func (id ID) String() string {
	if !id.IsKnown() {
		return "unknown:" + strconv.FormatUint(uint64(id), 10)
	}

	return idTable[id].name
}
