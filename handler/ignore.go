package handler

import "github.com/arloliu/hpkg/attribute"

// IgnoreHandler accepts and discards a whole subtree.
type IgnoreHandler struct {
	lifecycle
}

var _ Handler = (*IgnoreHandler)(nil)

// NewIgnoreHandler creates a handler that discards everything.
func NewIgnoreHandler() *IgnoreHandler {
	return &IgnoreHandler{}
}

func (h *IgnoreHandler) HandleAttribute(_ *Context, _ attribute.ID, _ attribute.Value, childRequested bool) (Handler, error) {
	if childRequested {
		return NewIgnoreHandler(), nil
	}

	return nil, nil
}

func (h *IgnoreHandler) NotifyDone(_ *Context) error {
	return h.markDone()
}

func (h *IgnoreHandler) Delete(_ *Context) {
	h.markDeleted()
}
