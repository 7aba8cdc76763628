package handler

import (
	"github.com/arloliu/hpkg/attribute"
	"github.com/arloliu/hpkg/packageinfo"
)

// UserHandler collects a user declaration. Group names accumulate in a
// growable list that is frozen into the record only at NotifyDone.
type UserHandler struct {
	lifecycle
	value  packageinfo.AttributeValue
	groups []string
}

var _ Handler = (*UserHandler)(nil)

// NewUserHandler returns a handler for the user called name.
func NewUserHandler(name string) *UserHandler {
	h := &UserHandler{value: packageinfo.NewAttributeValue()}
	h.value.ID = packageinfo.AttributeUser
	h.value.User.Name = name

	return h
}

func (h *UserHandler) HandleAttribute(ctx *Context, id attribute.ID, value attribute.Value, _ bool) (Handler, error) {
	user := &h.value.User

	switch id {
	case attribute.IDPackageUserRealName:
		user.RealName = value.String
	case attribute.IDPackageUserHome:
		user.Home = value.String
	case attribute.IDPackageUserShell:
		user.Shell = value.String
	case attribute.IDPackageUserGroup:
		h.groups = append(h.groups, value.String)
	default:
		return nil, unexpected(ctx, id, "user")
	}

	return nil, nil
}

func (h *UserHandler) NotifyDone(ctx *Context) error {
	if err := h.markDone(); err != nil {
		return err
	}

	if len(h.groups) > 0 {
		groups := make([]string, len(h.groups))
		copy(groups, h.groups)
		h.value.User.Groups = groups
	}
	h.groups = nil

	return ctx.emit(&h.value)
}

func (h *UserHandler) Delete(_ *Context) {
	h.markDeleted()
	h.value.Clear()
	h.groups = nil
}
