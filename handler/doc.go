// Package handler implements the handlers that turn an attribute tree into
// package records.
//
// A parse is driven by a walker that owns a stack of handlers. The root
// handler comes from the caller; every other handler is created by its parent
// in response to an attribute with children and handed to the walker, which
// calls NotifyDone when the attribute's subtree closes and Delete right after.
//
// Two families are provided:
//
//   - PackageHandler and its children (VersionHandler, ResolvableHandler,
//     ResolvableExpressionHandler, GlobalWritableFileInfoHandler,
//     UserSettingsFileInfoHandler, UserHandler) fold attributes into
//     packageinfo.AttributeValue records for a packageinfo.ContentHandler.
//   - LowLevelAttributeHandler forwards the uninterpreted tree to a
//     LowLevelHandler.
//
// IgnoreHandler swallows subtrees nobody is interested in.
package handler
