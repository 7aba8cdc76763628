package handler

import (
	"fmt"

	"github.com/arloliu/hpkg/attribute"
	"github.com/arloliu/hpkg/errs"
	"github.com/arloliu/hpkg/format"
	"github.com/arloliu/hpkg/packageinfo"
)

// ResolvableHandler collects a provided resolvable with its optional version
// and compatible version.
type ResolvableHandler struct {
	lifecycle
	value packageinfo.AttributeValue
}

var _ Handler = (*ResolvableHandler)(nil)

// NewResolvableHandler returns a handler for the resolvable name.
func NewResolvableHandler(name string) *ResolvableHandler {
	h := &ResolvableHandler{value: packageinfo.NewAttributeValue()}
	h.value.ID = packageinfo.AttributeProvides
	h.value.Resolvable.Name = name

	return h
}

func (h *ResolvableHandler) HandleAttribute(ctx *Context, id attribute.ID, value attribute.Value, childRequested bool) (Handler, error) {
	r := &h.value.Resolvable

	switch id {
	case attribute.IDPackageVersionMajor:
		r.HaveVersion = true
		r.Version.Major = value.String
		if childRequested {
			return NewNestedVersionHandler(&r.Version), nil
		}
	case attribute.IDPackageProvidesCompatible:
		r.HaveCompatibleVersion = true
		r.CompatibleVersion.Major = value.String
		if childRequested {
			return NewNestedVersionHandler(&r.CompatibleVersion), nil
		}
	default:
		return nil, unexpected(ctx, id, "package resolvable")
	}

	return nil, nil
}

func (h *ResolvableHandler) NotifyDone(ctx *Context) error {
	if err := h.markDone(); err != nil {
		return err
	}

	return ctx.emit(&h.value)
}

func (h *ResolvableHandler) Delete(_ *Context) {
	h.markDeleted()
	h.value.Clear()
}

// ResolvableExpressionHandler collects a requirement-like expression: a name,
// an optional comparison operator and a version.
type ResolvableExpressionHandler struct {
	lifecycle
	value packageinfo.AttributeValue
}

var _ Handler = (*ResolvableExpressionHandler)(nil)

// NewResolvableExpressionHandler returns a handler emitting a record of kind recordID
// (requires, supplements, conflicts or freshens).
func NewResolvableExpressionHandler(recordID packageinfo.AttributeID, name string) *ResolvableExpressionHandler {
	h := &ResolvableExpressionHandler{value: packageinfo.NewAttributeValue()}
	h.value.ID = recordID
	h.value.ResolvableExpression.Name = name

	return h
}

func (h *ResolvableExpressionHandler) HandleAttribute(ctx *Context, id attribute.ID, value attribute.Value, childRequested bool) (Handler, error) {
	e := &h.value.ResolvableExpression

	switch id {
	case attribute.IDPackageResolvableOperator:
		op := format.ResolvableOperator(value.UInt)
		if !op.IsValid() {
			return nil, fmt.Errorf("%w: resolvable operator %d", errs.ErrInvalidEnumValue, value.UInt)
		}
		e.Operator = op
	case attribute.IDPackageVersionMajor:
		e.HaveOperatorAndVersion = true
		e.Version.Major = value.String
		if childRequested {
			return NewNestedVersionHandler(&e.Version), nil
		}
	default:
		return nil, unexpected(ctx, id, "package resolvable expression")
	}

	return nil, nil
}

func (h *ResolvableExpressionHandler) NotifyDone(ctx *Context) error {
	if err := h.markDone(); err != nil {
		return err
	}

	return ctx.emit(&h.value)
}

func (h *ResolvableExpressionHandler) Delete(_ *Context) {
	h.markDeleted()
	h.value.Clear()
}
