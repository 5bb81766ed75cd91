// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package context bundles the collaborators a running engine instance needs
// -- storage and logging, plus the network identifier -- into one value
// attached to a standard context.Context, which the simulate command threads
// through its round loop instead of passing each collaborator separately.
package context

import (
	stdcontext "context"

	"github.com/ippan/dlc/log"
	"github.com/ippan/dlc/storage"
)

// Context carries the collaborators the engine depends on for one running
// instance, plus the engine's own network identifier.
type Context struct {
	NetworkID uint32
	Store     storage.Store
	Logger    log.Logger
}

type contextKeyType struct{}

var contextKey = contextKeyType{}

// WithContext attaches cc to ctx.
func WithContext(ctx stdcontext.Context, cc *Context) stdcontext.Context {
	return stdcontext.WithValue(ctx, contextKey, cc)
}

// FromContext extracts the Context attached by WithContext, or nil.
func FromContext(ctx stdcontext.Context) *Context {
	c, _ := ctx.Value(contextKey).(*Context)
	return c
}

// Logger returns the attached Logger, or log.NoOp() if none is attached.
func Logger(ctx stdcontext.Context) log.Logger {
	if c := FromContext(ctx); c != nil && c.Logger != nil {
		return c.Logger
	}
	return log.NoOp()
}

// Store returns the attached Store, or nil if none is attached.
func Store(ctx stdcontext.Context) storage.Store {
	if c := FromContext(ctx); c != nil {
		return c.Store
	}
	return nil
}
