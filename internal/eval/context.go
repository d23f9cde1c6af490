// Package eval implements the Jsonnet evaluator: it walks the AST produced
// by compiler/parser and produces internal/value runtime values, threading
// lexical scope, self/super/$ bindings and import resolution as it goes.
package eval

import "github.com/jsonnetlang/jsonnet/internal/value"

// Context is an immutable lexical scope frame. Every local binding, object
// field and function call creates a new Context linked to its parent,
// following the teacher's closure-by-linked-environment approach.
type Context struct {
	vars   map[string]*value.Thunk
	parent *Context
	self   value.Value
	super  *value.Object
	dollar value.Value
}

// NewRootContext is the empty scope a top-level program evaluates in.
func NewRootContext() *Context {
	return &Context{}
}

// Lookup walks the scope chain for name, the way the teacher's parser walks
// its own symbol tables outward.
func (c *Context) Lookup(name string) (*value.Thunk, bool) {
	for ctx := c; ctx != nil; ctx = ctx.parent {
		if ctx.vars != nil {
			if th, ok := ctx.vars[name]; ok {
				return th, true
			}
		}
	}
	return nil, false
}

// WithVars returns a child scope with the given bindings added, shadowing
// any same-named binding from an ancestor scope.
func (c *Context) WithVars(binds map[string]*value.Thunk) *Context {
	return &Context{vars: binds, parent: c, self: c.self, super: c.super, dollar: c.dollar}
}

// WithSelf returns a child scope with self/super rebound; used when
// evaluating inside an object's fields. dollar is left untouched unless
// this is the outermost object, which callers set via WithDollar.
func (c *Context) WithSelf(self value.Value, super *value.Object) *Context {
	return &Context{vars: nil, parent: c, self: self, super: super, dollar: c.dollar}
}

// WithDollar binds `$` to the outermost object enclosing the current scope.
func (c *Context) WithDollar(dollar value.Value) *Context {
	return &Context{vars: nil, parent: c, self: c.self, super: c.super, dollar: dollar}
}

func (c *Context) Self() value.Value    { return c.self }
func (c *Context) Super() *value.Object { return c.super }
func (c *Context) Dollar() value.Value  { return c.dollar }
