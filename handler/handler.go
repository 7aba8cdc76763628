package handler

import (
	"fmt"

	"github.com/arloliu/hpkg/attribute"
	"github.com/arloliu/hpkg/errs"
)

// Handler consumes one attribute subtree.
//
// The walker calls HandleAttribute for every direct child attribute, then
// NotifyDone exactly once after the subtree is closed, after the NotifyDone of
// every descendant. Handlers it created are released with Delete once popped;
// the root handler supplied by the caller is never deleted by the walker.
type Handler interface {
	// HandleAttribute folds one attribute into the handler. When childRequested
	// is true the handler may return a new handler for the attribute's
	// children; ownership passes to the walker. A nil child with
	// childRequested makes the walker skip the subtree.
	HandleAttribute(ctx *Context, id attribute.ID, value attribute.Value, childRequested bool) (Handler, error)
	// NotifyDone emits the finished record and clears the accumulator.
	NotifyDone(ctx *Context) error
	// Delete releases the handler.
	Delete(ctx *Context)
}

// State is the lifecycle state of a handler.
type State uint8

const (
	StateActive State = iota
	StateDone
	StateDeleted
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateDone:
		return "done"
	case StateDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// lifecycle tracks the Active -> Done -> Deleted transitions.
type lifecycle struct {
	state State
}

// State returns the lifecycle state.
func (l *lifecycle) State() State {
	return l.state
}

func (l *lifecycle) markDone() error {
	if l.state != StateActive {
		return errs.Structuralf("handler notified in state %s", l.state)
	}
	l.state = StateDone

	return nil
}

func (l *lifecycle) markDeleted() {
	l.state = StateDeleted
}

// unexpected reports an attribute the handler does not accept. It returns nil
// when the context ignores unknown attributes.
func unexpected(ctx *Context, id attribute.ID, where string) error {
	if ctx.IgnoresUnknown() {
		return nil
	}

	return fmt.Errorf("%w: %s encountered when parsing %s", errs.ErrUnexpectedAttribute, id, where)
}
