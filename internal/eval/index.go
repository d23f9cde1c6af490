package eval

import (
	"github.com/jsonnetlang/jsonnet/compiler/parser"
	"github.com/jsonnetlang/jsonnet/internal/value"
)

func (e *Evaluator) evalIndex(ctx *Context, n *parser.IndexExpr) (value.Value, error) {
	target, err := e.Eval(ctx, n.Target)
	if err != nil {
		return nil, err
	}

	switch t := target.(type) {
	case *value.Object:
		key, err := e.indexKeyString(ctx, n.Index)
		if err != nil {
			return nil, err
		}
		v, err := t.Get(key, t)
		if err != nil {
			if _, ok := err.(*value.FieldNotFoundError); ok {
				return nil, newRuntimeError(n.Location, "field does not exist: %s", key)
			}
			return nil, err
		}
		return v, nil

	case *value.Array:
		idx, err := e.Eval(ctx, n.Index)
		if err != nil {
			return nil, err
		}
		num, ok := idx.(value.Number)
		if !ok {
			return nil, newRuntimeError(n.Location, "array index must be a number, got %s", idx.Kind())
		}
		i := int(num)
		if i < 0 || i >= len(t.Elements) {
			return nil, newRuntimeError(n.Location, "array index %d out of bounds [0,%d)", i, len(t.Elements))
		}
		return t.Elements[i].Force()

	case value.String:
		idx, err := e.Eval(ctx, n.Index)
		if err != nil {
			return nil, err
		}
		num, ok := idx.(value.Number)
		if !ok {
			return nil, newRuntimeError(n.Location, "string index must be a number, got %s", idx.Kind())
		}
		runes := []rune(string(t))
		i := int(num)
		if i < 0 || i >= len(runes) {
			return nil, newRuntimeError(n.Location, "string index %d out of bounds [0,%d)", i, len(runes))
		}
		return value.String(string(runes[i])), nil

	default:
		return nil, newRuntimeError(n.Location, "cannot index into %s", target.Kind())
	}
}
