package attrtree

import (
	"fmt"

	"github.com/arloliu/hpkg/attribute"
	"github.com/arloliu/hpkg/errs"
	"github.com/arloliu/hpkg/handler"
	"github.com/arloliu/hpkg/section"
)

// frame is one entry of the handler stack.
type frame struct {
	handler handler.Handler
	level   int
}

// walker drives one parse. It is created per Parse call.
type walker struct {
	ctx   *handler.Context
	sec   *section.Section
	stack []frame
}

// Parse walks the attribute tree at the cursor of a prepared section.
//
// root receives the top-level attributes and is never deleted; every other
// handler on the stack belongs to the walker. On failure the context is
// notified once, the walker-owned handlers are deleted in LIFO order and the
// error is returned. On success the section must be fully consumed.
//
// Parameters:
//   - ctx: Handler context carrying the sinks and the parse policy
//   - sec: Prepared section positioned after its string table
//   - root: Caller-owned handler for nesting level 0
//
// Returns:
//   - error: nil on success, otherwise an error wrapping one of the errs categories
func Parse(ctx *handler.Context, sec *section.Section, root handler.Handler) error {
	w := &walker{
		ctx:   ctx,
		sec:   sec,
		stack: make([]frame, 1, 8),
	}
	w.stack[0] = frame{handler: root}

	if err := w.run(); err != nil {
		err = errs.Categorize(err, errs.ErrRejected)
		ctx.ErrorOccurred(err)
		w.unwind()

		return err
	}

	return nil
}

func (w *walker) run() error {
	for {
		raw, err := w.sec.ReadUnsignedVarint()
		if err != nil {
			return err
		}

		top := w.stack[len(w.stack)-1]

		if raw == attribute.SentinelTag {
			if err := top.handler.NotifyDone(w.ctx); err != nil {
				return err
			}

			if top.level == 0 {
				if remaining := w.sec.Remaining(); remaining > 0 {
					return fmt.Errorf("%w: %d bytes in %s section",
						errs.ErrExcessBytes, remaining, w.sec.Name())
				}

				return nil
			}

			w.stack = w.stack[:len(w.stack)-1]
			top.handler.Delete(w.ctx)

			continue
		}

		tag, err := attribute.DecodeTag(raw, w.ctx.Policy)
		if err != nil {
			return err
		}

		value, err := w.sec.DecodeAttributeValue(tag.Type, tag.Encoding)
		if err != nil {
			return err
		}

		child, err := top.handler.HandleAttribute(w.ctx, tag.ID, value, tag.HasChildren)
		if err != nil {
			if child != nil {
				child.Delete(w.ctx)
			}

			return err
		}

		if !tag.HasChildren {
			if child != nil {
				child.Delete(w.ctx)
			}

			continue
		}

		if child == nil {
			child = handler.NewIgnoreHandler()
		}

		if w.ctx.MaxDepth > 0 && top.level >= w.ctx.MaxDepth {
			child.Delete(w.ctx)

			return fmt.Errorf("%w: %s below level %d of %s section",
				errs.ErrMaxDepthExceeded, tag.ID, top.level, w.sec.Name())
		}

		w.stack = append(w.stack, frame{handler: child, level: top.level + 1})
	}
}

// unwind deletes every walker-owned handler, innermost first.
func (w *walker) unwind() {
	for i := len(w.stack) - 1; i > 0; i-- {
		w.stack[i].handler.Delete(w.ctx)
		w.stack[i] = frame{}
	}
	w.stack = w.stack[:1]
}
