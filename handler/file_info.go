package handler

import (
	"fmt"

	"github.com/arloliu/hpkg/attribute"
	"github.com/arloliu/hpkg/errs"
	"github.com/arloliu/hpkg/format"
	"github.com/arloliu/hpkg/packageinfo"
)

// GlobalWritableFileInfoHandler collects a global writable file declaration.
type GlobalWritableFileInfoHandler struct {
	lifecycle
	value packageinfo.AttributeValue
}

var _ Handler = (*GlobalWritableFileInfoHandler)(nil)

// NewGlobalWritableFileInfoHandler returns a handler for the file at path.
func NewGlobalWritableFileInfoHandler(path string) *GlobalWritableFileInfoHandler {
	h := &GlobalWritableFileInfoHandler{value: packageinfo.NewAttributeValue()}
	h.value.ID = packageinfo.AttributeGlobalWritableFile
	h.value.GlobalWritableFileInfo.Path = path

	return h
}

func (h *GlobalWritableFileInfoHandler) HandleAttribute(ctx *Context, id attribute.ID, value attribute.Value, _ bool) (Handler, error) {
	info := &h.value.GlobalWritableFileInfo

	switch id {
	case attribute.IDPackageWritableFileUpdateType:
		updateType := format.WritableFileUpdate(value.UInt)
		if !updateType.IsValid() {
			return nil, fmt.Errorf("%w: writable file update type %d", errs.ErrInvalidEnumValue, value.UInt)
		}
		info.UpdateType = updateType
	case attribute.IDPackageIsWritableDirectory:
		info.IsDirectory = value.Bool()
	default:
		return nil, unexpected(ctx, id, "global settings file info")
	}

	return nil, nil
}

func (h *GlobalWritableFileInfoHandler) NotifyDone(ctx *Context) error {
	if err := h.markDone(); err != nil {
		return err
	}

	return ctx.emit(&h.value)
}

func (h *GlobalWritableFileInfoHandler) Delete(_ *Context) {
	h.markDeleted()
	h.value.Clear()
}

// UserSettingsFileInfoHandler collects a user settings file declaration.
type UserSettingsFileInfoHandler struct {
	lifecycle
	value packageinfo.AttributeValue
}

var _ Handler = (*UserSettingsFileInfoHandler)(nil)

// NewUserSettingsFileInfoHandler returns a handler for the file at path.
func NewUserSettingsFileInfoHandler(path string) *UserSettingsFileInfoHandler {
	h := &UserSettingsFileInfoHandler{value: packageinfo.NewAttributeValue()}
	h.value.ID = packageinfo.AttributeUserSettingsFile
	h.value.UserSettingsFileInfo.Path = path

	return h
}

func (h *UserSettingsFileInfoHandler) HandleAttribute(ctx *Context, id attribute.ID, value attribute.Value, _ bool) (Handler, error) {
	info := &h.value.UserSettingsFileInfo

	switch id {
	case attribute.IDPackageSettingsFileTemplate:
		info.TemplatePath = value.String
	case attribute.IDPackageIsWritableDirectory:
		info.IsDirectory = value.Bool()
	default:
		return nil, unexpected(ctx, id, "user settings file info")
	}

	return nil, nil
}

func (h *UserSettingsFileInfoHandler) NotifyDone(ctx *Context) error {
	if err := h.markDone(); err != nil {
		return err
	}

	return ctx.emit(&h.value)
}

func (h *UserSettingsFileInfoHandler) Delete(_ *Context) {
	h.markDeleted()
	h.value.Clear()
}
