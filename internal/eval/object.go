package eval

import (
	"github.com/jsonnetlang/jsonnet/compiler/errors"
	"github.com/jsonnetlang/jsonnet/compiler/parser"
	"github.com/jsonnetlang/jsonnet/internal/value"
)

func convertVisibility(v parser.Visibility) value.Visibility {
	switch v {
	case parser.Hidden:
		return value.Hidden
	case parser.ForceVisible:
		return value.ForceVisible
	default:
		return value.Visible
	}
}

// evalObject builds a fresh Object from a literal. Locals and asserts are
// recomputed for every distinct self/super the resulting fields are forced
// against, so `self`/`super` references inside them stay correct across
// later `+` composition.
func (e *Evaluator) evalObject(ctx *Context, n *parser.ObjectExpr) (value.Value, error) {
	obj := value.NewObject()

	buildLocalsCtx := func(self value.Value, super *value.Object) *Context {
		fc := ctx.WithSelf(self, super)
		if fc.Dollar() == nil {
			fc = fc.WithDollar(self)
		}
		lc := fc.WithVars(map[string]*value.Thunk{})
		binds := make(map[string]*value.Thunk, len(n.Locals))
		for _, ol := range n.Locals {
			ol := ol
			binds[ol.Name] = value.NewThunk(func() (value.Value, error) {
				return e.Eval(lc, ol.Value)
			})
		}
		lc.vars = binds
		return lc
	}

	for _, assertNode := range n.Asserts {
		assertNode := assertNode
		obj.Asserts = append(obj.Asserts, func(self value.Value, super *value.Object) error {
			lc := buildLocalsCtx(self, super)
			cond, err := e.Eval(lc, assertNode.Cond)
			if err != nil {
				return err
			}
			b, ok := cond.(value.Boolean)
			if !ok {
				return newRuntimeError(assertNode.Location, "object assert condition must be boolean, got %s", cond.Kind())
			}
			if !bool(b) {
				msg := "object assertion failed"
				if assertNode.Message != nil {
					mv, err := e.Eval(lc, assertNode.Message)
					if err != nil {
						return err
					}
					if s, err := ToString(mv); err == nil {
						msg = s
					}
				}
				return newRuntimeErrorCode(errors.ErrAssertionFailed, assertNode.Location, "%s", msg)
			}
			return nil
		})
	}

	for _, field := range n.Fields {
		field := field
		key, omit, err := e.resolveFieldKey(ctx, field)
		if err != nil {
			return nil, err
		}
		if omit {
			continue
		}
		vis := convertVisibility(field.Visibility)
		fieldEval := func(self value.Value, super *value.Object) (*value.Thunk, error) {
			lc := buildLocalsCtx(self, super)
			return value.NewThunk(func() (value.Value, error) {
				v, err := e.Eval(lc, field.Value)
				if err != nil {
					return nil, err
				}
				if field.Inherit {
					if super != nil && super.Has(key) {
						sv, err := super.Get(key, self)
						if err != nil {
							return nil, err
						}
						return addValues(sv, v, field.Location)
					}
				}
				return v, nil
			})
		}
		obj.Set(key, &value.Field{Visibility: vis, Super: nil, Eval: fieldEval})
	}

	return obj, nil
}

// resolveFieldKey evaluates a [computed] key expression, or returns the
// literal string key directly. A computed key evaluating to null means the
// field is omitted entirely, signalled via the omit return value.
func (e *Evaluator) resolveFieldKey(ctx *Context, field *parser.ObjectField) (key string, omit bool, err error) {
	if se, ok := field.Key.(*parser.StringExpr); ok {
		return se.Value, false, nil
	}
	kv, err := e.Eval(ctx, field.Key)
	if err != nil {
		return "", false, err
	}
	if kv == value.NullValue {
		return "", true, nil
	}
	ks, ok := kv.(value.String)
	if !ok {
		return "", false, newRuntimeError(field.Location, "object field key must be a string, got %s", kv.Kind())
	}
	return string(ks), false, nil
}

func (e *Evaluator) evalObjectComp(ctx *Context, n *parser.ObjectCompExpr) (value.Value, error) {
	bindings, err := e.evalForClauses(ctx, n.Clauses)
	if err != nil {
		return nil, err
	}

	obj := value.NewObject()
	for _, bindCtx := range bindings {
		lc := bindCtx.WithVars(map[string]*value.Thunk{})
		binds := make(map[string]*value.Thunk, len(n.Locals))
		for _, ol := range n.Locals {
			ol := ol
			binds[ol.Name] = value.NewThunk(func() (value.Value, error) {
				return e.Eval(lc, ol.Value)
			})
		}
		lc.vars = binds

		kv, err := e.Eval(lc, n.KeyExpr)
		if err != nil {
			return nil, err
		}
		if kv == value.NullValue {
			continue
		}
		ks, ok := kv.(value.String)
		if !ok {
			return nil, newRuntimeError(n.Location, "object comprehension key must be a string, got %s", kv.Kind())
		}
		valueExpr := n.ValueExpr
		obj.Set(string(ks), &value.Field{
			Visibility: value.Visible,
			Eval: func(self value.Value, super *value.Object) (*value.Thunk, error) {
				fc := lc.WithSelf(self, super)
				return value.NewThunk(func() (value.Value, error) {
					return e.Eval(fc, valueExpr)
				}), nil
			},
		})
	}
	return obj, nil
}

// evalForClauses expands nested for/if comprehension clauses into the list
// of leaf scopes (one per surviving iteration), each extending ctx with the
// loop variables bound for that iteration.
func (e *Evaluator) evalForClauses(ctx *Context, clauses []parser.CompClause) ([]*Context, error) {
	scopes := []*Context{ctx}
	for _, clause := range clauses {
		var next []*Context
		switch c := clause.(type) {
		case *parser.ForClause:
			for _, sc := range scopes {
				iterVal, err := e.Eval(sc, c.Iter)
				if err != nil {
					return nil, err
				}
				arr, ok := iterVal.(*value.Array)
				if !ok {
					return nil, newRuntimeError(c.Iter.GetLocation(), "for loop requires an array, got %s", iterVal.Kind())
				}
				for _, el := range arr.Elements {
					el := el
					child := sc.WithVars(map[string]*value.Thunk{c.Var: el})
					next = append(next, child)
				}
			}
		case *parser.IfClause:
			for _, sc := range scopes {
				cv, err := e.Eval(sc, c.Cond)
				if err != nil {
					return nil, err
				}
				b, ok := cv.(value.Boolean)
				if !ok {
					return nil, newRuntimeError(c.Cond.GetLocation(), "comprehension if condition must be boolean, got %s", cv.Kind())
				}
				if bool(b) {
					next = append(next, sc)
				}
			}
		}
		scopes = next
	}
	return scopes, nil
}

func (e *Evaluator) evalArrayComp(ctx *Context, n *parser.ArrayCompExpr) (value.Value, error) {
	scopes, err := e.evalForClauses(ctx, n.Clauses)
	if err != nil {
		return nil, err
	}
	elems := make([]*value.Thunk, len(scopes))
	for i, sc := range scopes {
		sc := sc
		elems[i] = value.NewThunk(func() (value.Value, error) {
			return e.Eval(sc, n.Body)
		})
	}
	return value.NewArray(elems), nil
}

func (e *Evaluator) evalApplyBrace(ctx *Context, n *parser.ApplyBraceExpr) (value.Value, error) {
	left, err := e.Eval(ctx, n.Left)
	if err != nil {
		return nil, err
	}
	leftObj, ok := left.(*value.Object)
	if !ok {
		return nil, newRuntimeError(n.Location, "left side of object application must be an object, got %s", left.Kind())
	}
	rightVal, err := e.evalObject(ctx, n.Right)
	if err != nil {
		return nil, err
	}
	return value.Compose(leftObj, rightVal.(*value.Object)), nil
}

func (e *Evaluator) evalSuperIndex(ctx *Context, n *parser.SuperIndexExpr) (value.Value, error) {
	if ctx.Super() == nil {
		return nil, newRuntimeError(n.Location, "super used without a base object")
	}
	key, err := e.indexKeyString(ctx, n.Index)
	if err != nil {
		return nil, err
	}
	return ctx.Super().Get(key, ctx.Self())
}

func (e *Evaluator) indexKeyString(ctx *Context, index parser.ExprNode) (string, error) {
	if se, ok := index.(*parser.StringExpr); ok {
		return se.Value, nil
	}
	kv, err := e.Eval(ctx, index)
	if err != nil {
		return "", err
	}
	ks, ok := kv.(value.String)
	if !ok {
		return "", newRuntimeError(index.GetLocation(), "index must be a string, got %s", kv.Kind())
	}
	return string(ks), nil
}
