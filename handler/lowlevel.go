package handler

import (
	"github.com/arloliu/hpkg/attribute"
	"github.com/arloliu/hpkg/errs"
)

// LowLevelAttributeHandler forwards the raw attribute tree to the context's
// LowLevelHandler.
//
// Every attribute gets one HandleAttribute call when read and one
// HandleAttributeDone call once its subtree is complete. A leaf is reported
// done immediately; an attribute with children is reported done by the child
// handler's NotifyDone, after all of its descendants.
type LowLevelAttributeHandler struct {
	lifecycle
	isRoot      bool
	id          attribute.ID
	value       attribute.Value
	parentToken any
	token       any
}

var _ Handler = (*LowLevelAttributeHandler)(nil)

// NewLowLevelRootHandler creates the root handler of a raw attribute parse.
func NewLowLevelRootHandler() *LowLevelAttributeHandler {
	return &LowLevelAttributeHandler{isRoot: true}
}

func newLowLevelChildHandler(id attribute.ID, value attribute.Value, parentToken, token any) *LowLevelAttributeHandler {
	return &LowLevelAttributeHandler{id: id, value: value, parentToken: parentToken, token: token}
}

func (h *LowLevelAttributeHandler) HandleAttribute(ctx *Context, id attribute.ID, value attribute.Value, childRequested bool) (Handler, error) {
	if ctx.LowLevelHandler == nil {
		if childRequested {
			return NewIgnoreHandler(), nil
		}

		return nil, nil
	}

	token, err := ctx.LowLevelHandler.HandleAttribute(id, value, h.token)
	if err != nil {
		return nil, errs.Categorize(err, errs.ErrRejected)
	}

	if childRequested {
		return newLowLevelChildHandler(id, value, h.token, token), nil
	}

	return nil, errs.Categorize(ctx.LowLevelHandler.HandleAttributeDone(id, value, h.token, token), errs.ErrRejected)
}

func (h *LowLevelAttributeHandler) NotifyDone(ctx *Context) error {
	if err := h.markDone(); err != nil {
		return err
	}
	if h.isRoot || ctx.LowLevelHandler == nil {
		return nil
	}

	return errs.Categorize(ctx.LowLevelHandler.HandleAttributeDone(h.id, h.value, h.parentToken, h.token), errs.ErrRejected)
}

func (h *LowLevelAttributeHandler) Delete(_ *Context) {
	h.markDeleted()
	h.parentToken = nil
	h.token = nil
}
