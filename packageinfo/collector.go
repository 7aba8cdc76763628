package packageinfo

import (
	"fmt"

	"github.com/arloliu/hpkg/format"
)

// PackageInfo is a package descriptor assembled from finished records.
type PackageInfo struct {
	Name                string
	Summary             string
	Description         string
	Vendor              string
	Packager            string
	BasePackage         string
	Flags               uint64
	Architecture        format.Architecture
	Version             Version
	Copyrights          []string
	Licenses            []string
	URLs                []string
	SourceURLs          []string
	Provides            []Resolvable
	Requires            []ResolvableExpression
	Supplements         []ResolvableExpression
	Conflicts           []ResolvableExpression
	Freshens            []ResolvableExpression
	Replaces            []string
	Checksum            string
	InstallPath         string
	GlobalWritableFiles []GlobalWritableFileInfo
	UserSettingsFiles   []UserSettingsFileInfo
	Users               []User
	Groups              []string
	PostInstallScripts  []string
	PreUninstallScripts []string
}

// Collector is a ContentHandler that copies every record into a PackageInfo.
//
// Records are cloned on arrival, so the collected data outlives the section.
type Collector struct {
	Info PackageInfo
	// Records keeps every record in delivery order.
	Records []AttributeValue
	// Failed is set when the parse reported an error.
	Failed bool
}

var _ ContentHandler = (*Collector)(nil)

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// HandlePackageAttribute folds one record into Info.
func (c *Collector) HandlePackageAttribute(value *AttributeValue) error {
	v := value.Clone()
	c.Records = append(c.Records, v)

	info := &c.Info
	switch v.ID {
	case AttributeName:
		info.Name = v.String
	case AttributeSummary:
		info.Summary = v.String
	case AttributeDescription:
		info.Description = v.String
	case AttributeVendor:
		info.Vendor = v.String
	case AttributePackager:
		info.Packager = v.String
	case AttributeBasePackage:
		info.BasePackage = v.String
	case AttributeFlags:
		info.Flags = v.Flags
	case AttributeArchitecture:
		info.Architecture = v.Architecture
	case AttributeVersion:
		info.Version = v.Version
	case AttributeCopyright:
		info.Copyrights = append(info.Copyrights, v.String)
	case AttributeLicense:
		info.Licenses = append(info.Licenses, v.String)
	case AttributeURL:
		info.URLs = append(info.URLs, v.String)
	case AttributeSourceURL:
		info.SourceURLs = append(info.SourceURLs, v.String)
	case AttributeProvides:
		info.Provides = append(info.Provides, v.Resolvable)
	case AttributeRequires:
		info.Requires = append(info.Requires, v.ResolvableExpression)
	case AttributeSupplements:
		info.Supplements = append(info.Supplements, v.ResolvableExpression)
	case AttributeConflicts:
		info.Conflicts = append(info.Conflicts, v.ResolvableExpression)
	case AttributeFreshens:
		info.Freshens = append(info.Freshens, v.ResolvableExpression)
	case AttributeReplaces:
		info.Replaces = append(info.Replaces, v.String)
	case AttributeChecksum:
		info.Checksum = v.String
	case AttributeInstallPath:
		info.InstallPath = v.String
	case AttributeGlobalWritableFile:
		info.GlobalWritableFiles = append(info.GlobalWritableFiles, v.GlobalWritableFileInfo)
	case AttributeUserSettingsFile:
		info.UserSettingsFiles = append(info.UserSettingsFiles, v.UserSettingsFileInfo)
	case AttributeUser:
		info.Users = append(info.Users, v.User)
	case AttributeGroup:
		info.Groups = append(info.Groups, v.String)
	case AttributePostInstallScript:
		info.PostInstallScripts = append(info.PostInstallScripts, v.String)
	case AttributePreUninstallScript:
		info.PreUninstallScripts = append(info.PreUninstallScripts, v.String)
	default:
		return fmt.Errorf("unexpected package record %s", v.ID)
	}

	return nil
}

// HandleErrorOccurred marks the collection as failed.
func (c *Collector) HandleErrorOccurred() {
	c.Failed = true
}
