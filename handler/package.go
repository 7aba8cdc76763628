package handler

import (
	"fmt"

	"github.com/arloliu/hpkg/attribute"
	"github.com/arloliu/hpkg/errs"
	"github.com/arloliu/hpkg/format"
	"github.com/arloliu/hpkg/packageinfo"
)

// simpleStringRecords maps string attributes of the package section that turn
// into a record of their own without children.
var simpleStringRecords = map[attribute.ID]packageinfo.AttributeID{
	attribute.IDPackageName:               packageinfo.AttributeName,
	attribute.IDPackageSummary:            packageinfo.AttributeSummary,
	attribute.IDPackageDescription:        packageinfo.AttributeDescription,
	attribute.IDPackageVendor:             packageinfo.AttributeVendor,
	attribute.IDPackagePackager:           packageinfo.AttributePackager,
	attribute.IDPackageBasePackage:        packageinfo.AttributeBasePackage,
	attribute.IDPackageCopyright:          packageinfo.AttributeCopyright,
	attribute.IDPackageLicense:            packageinfo.AttributeLicense,
	attribute.IDPackageURL:                packageinfo.AttributeURL,
	attribute.IDPackageSourceURL:          packageinfo.AttributeSourceURL,
	attribute.IDPackageReplaces:           packageinfo.AttributeReplaces,
	attribute.IDPackageChecksum:           packageinfo.AttributeChecksum,
	attribute.IDPackageInstallPath:        packageinfo.AttributeInstallPath,
	attribute.IDPackageGroup:              packageinfo.AttributeGroup,
	attribute.IDPackagePostInstallScript:  packageinfo.AttributePostInstallScript,
	attribute.IDPackagePreUninstallScript: packageinfo.AttributePreUninstallScript,
}

// expressionRecords maps attributes carrying a resolvable expression.
var expressionRecords = map[attribute.ID]packageinfo.AttributeID{
	attribute.IDPackageRequires:    packageinfo.AttributeRequires,
	attribute.IDPackageSupplements: packageinfo.AttributeSupplements,
	attribute.IDPackageConflicts:   packageinfo.AttributeConflicts,
	attribute.IDPackageFreshens:    packageinfo.AttributeFreshens,
}

// PackageHandler is the root handler of the package attributes section.
//
// Simple attributes become a record each. Compound attributes are delegated to
// a child handler which emits the record once its subtree closes; a compound
// attribute without children is emitted right away.
type PackageHandler struct {
	lifecycle
	value packageinfo.AttributeValue
}

var _ Handler = (*PackageHandler)(nil)

// NewPackageHandler creates the root handler of a package attributes section.
func NewPackageHandler() *PackageHandler {
	return &PackageHandler{value: packageinfo.NewAttributeValue()}
}

func (h *PackageHandler) HandleAttribute(ctx *Context, id attribute.ID, value attribute.Value, childRequested bool) (Handler, error) {
	if recordID, ok := simpleStringRecords[id]; ok {
		h.value.SetString(recordID, value.String)

		return nil, ctx.emit(&h.value)
	}

	if recordID, ok := expressionRecords[id]; ok {
		child := NewResolvableExpressionHandler(recordID, value.String)

		return h.delegate(ctx, child, childRequested)
	}

	switch id {
	case attribute.IDPackageFlags:
		h.value.ID = packageinfo.AttributeFlags
		h.value.Flags = value.UInt

		return nil, ctx.emit(&h.value)

	case attribute.IDPackageArchitecture:
		arch := format.Architecture(value.UInt)
		if !arch.IsValid() {
			return nil, fmt.Errorf("%w: architecture %d", errs.ErrInvalidEnumValue, value.UInt)
		}
		h.value.ID = packageinfo.AttributeArchitecture
		h.value.Architecture = arch

		return nil, ctx.emit(&h.value)

	case attribute.IDPackageVersionMajor:
		return h.delegate(ctx, NewPackageVersionHandler(value.String), childRequested)

	case attribute.IDPackageProvides:
		return h.delegate(ctx, NewResolvableHandler(value.String), childRequested)

	case attribute.IDPackageGlobalWritableFile:
		return h.delegate(ctx, NewGlobalWritableFileInfoHandler(value.String), childRequested)

	case attribute.IDPackageUserSettingsFile:
		return h.delegate(ctx, NewUserSettingsFileInfoHandler(value.String), childRequested)

	case attribute.IDPackageUser:
		return h.delegate(ctx, NewUserHandler(value.String), childRequested)

	default:
		if err := unexpected(ctx, id, "package attributes"); err != nil {
			return nil, err
		}
		if childRequested {
			return NewIgnoreHandler(), nil
		}

		return nil, nil
	}
}

// delegate hands a compound attribute to child. Without children the record
// is complete already, so child is finished and released in place.
func (h *PackageHandler) delegate(ctx *Context, child Handler, childRequested bool) (Handler, error) {
	if childRequested {
		return child, nil
	}

	defer child.Delete(ctx)

	return nil, child.NotifyDone(ctx)
}

// NotifyDone flushes a pending record, if any.
func (h *PackageHandler) NotifyDone(ctx *Context) error {
	if err := h.markDone(); err != nil {
		return err
	}
	if h.value.IsEmpty() {
		return nil
	}

	return ctx.emit(&h.value)
}

func (h *PackageHandler) Delete(_ *Context) {
	h.markDeleted()
	h.value.Clear()
}
