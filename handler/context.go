package handler

import (
	"log/slog"

	"github.com/arloliu/hpkg/attribute"
	"github.com/arloliu/hpkg/errs"
	"github.com/arloliu/hpkg/packageinfo"
)

// LowLevelHandler receives the raw attribute tree without interpretation.
//
// HandleAttribute is called when an attribute is read and returns the token
// identifying it; the token is passed back as parentToken for its children and
// to HandleAttributeDone once its subtree is complete. Top-level attributes
// get a nil parentToken.
type LowLevelHandler interface {
	HandleAttribute(id attribute.ID, value attribute.Value, parentToken any) (token any, err error)
	HandleAttributeDone(id attribute.ID, value attribute.Value, parentToken, token any) error
	HandleErrorOccurred()
}

// Context carries the sinks and the per-parse policy shared by all handlers of one parse.
//
// A Context belongs to a single parse and is NOT thread-safe.
type Context struct {
	// SectionName names the section being parsed, for diagnostics.
	SectionName string
	// ContentHandler receives finished package records.
	ContentHandler packageinfo.ContentHandler
	// LowLevelHandler receives the raw tree from LowLevelHandlers.
	LowLevelHandler LowLevelHandler
	// IgnoreUnknownAttributes skips attributes a handler does not understand
	// instead of failing the parse.
	IgnoreUnknownAttributes bool
	// Policy decides whether ids unknown to this parser are acceptable.
	Policy attribute.VersionPolicy
	// MaxDepth caps the attribute nesting depth. Zero means unlimited.
	MaxDepth int
	// Logger reports parse failures. Nil discards.
	Logger *slog.Logger

	errorReported bool
}

// IgnoresUnknown reports whether unknown attributes are skipped, either by
// explicit request or because the stream comes from a newer minor format
// version than this parser.
func (c *Context) IgnoresUnknown() bool {
	return c.IgnoreUnknownAttributes || c.Policy.AllowsUnknownIDs()
}

// ErrorOccurred notifies the sinks that the parse failed. Only the first call
// of a parse has an effect.
func (c *Context) ErrorOccurred(err error) {
	if c.errorReported {
		return
	}
	c.errorReported = true

	c.logger().Error("attribute section parse failed", "section", c.SectionName, "error", err)

	if c.ContentHandler != nil {
		c.ContentHandler.HandleErrorOccurred()
	}
	if c.LowLevelHandler != nil {
		c.LowLevelHandler.HandleErrorOccurred()
	}
}

// emit hands a finished record to the content handler and clears it. Sink
// errors without a category are wrapped in errs.ErrRejected.
func (c *Context) emit(value *packageinfo.AttributeValue) error {
	defer value.Clear()

	if c.ContentHandler == nil {
		return nil
	}

	return errs.Categorize(c.ContentHandler.HandlePackageAttribute(value), errs.ErrRejected)
}

func (c *Context) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}

	return c.Logger
}
