package handler

import (
	"github.com/arloliu/hpkg/attribute"
	"github.com/arloliu/hpkg/packageinfo"
)

// VersionHandler collects the children of a version major attribute.
//
// As a child of the package handler it emits a version record of its own; as
// a child of a resolvable or resolvable expression it fills the parent's
// version in place and emits nothing.
type VersionHandler struct {
	lifecycle
	value   packageinfo.AttributeValue
	version *packageinfo.Version
	notify  bool
}

var _ Handler = (*VersionHandler)(nil)

// NewPackageVersionHandler returns a handler emitting a package version record.
func NewPackageVersionHandler(major string) *VersionHandler {
	h := &VersionHandler{notify: true}
	h.value = packageinfo.NewAttributeValue()
	h.value.Version.Major = major
	h.version = &h.value.Version

	return h
}

// NewNestedVersionHandler returns a handler filling version. Its own record
// stays zero since it never emits.
func NewNestedVersionHandler(version *packageinfo.Version) *VersionHandler {
	return &VersionHandler{version: version}
}

func (h *VersionHandler) HandleAttribute(ctx *Context, id attribute.ID, value attribute.Value, _ bool) (Handler, error) {
	switch id {
	case attribute.IDPackageVersionMinor:
		h.version.Minor = value.String
	case attribute.IDPackageVersionMicro:
		h.version.Micro = value.String
	case attribute.IDPackageVersionPreRelease:
		h.version.PreRelease = value.String
	case attribute.IDPackageVersionRevision:
		h.version.Revision = value.UInt
	default:
		return nil, unexpected(ctx, id, "package version")
	}

	return nil, nil
}

func (h *VersionHandler) NotifyDone(ctx *Context) error {
	if err := h.markDone(); err != nil {
		return err
	}
	if !h.notify {
		return nil
	}

	h.value.ID = packageinfo.AttributeVersion

	return ctx.emit(&h.value)
}

func (h *VersionHandler) Delete(_ *Context) {
	h.markDeleted()
	h.version = nil
}
