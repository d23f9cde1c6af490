package eval

import (
	"math"

	"github.com/jsonnetlang/jsonnet/compiler/lexer"
	"github.com/jsonnetlang/jsonnet/compiler/parser"
	"github.com/jsonnetlang/jsonnet/internal/value"
)

func (e *Evaluator) evalUnary(ctx *Context, n *parser.UnaryExpr) (value.Value, error) {
	v, err := e.Eval(ctx, n.Operand)
	if err != nil {
		return nil, err
	}
	switch n.Operator {
	case lexer.TOKEN_MINUS:
		num, ok := v.(value.Number)
		if !ok {
			return nil, newRuntimeError(n.Location, "unary - requires a number, got %s", v.Kind())
		}
		return -num, nil
	case lexer.TOKEN_PLUS:
		if _, ok := v.(value.Number); !ok {
			return nil, newRuntimeError(n.Location, "unary + requires a number, got %s", v.Kind())
		}
		return v, nil
	case lexer.TOKEN_NOT:
		b, ok := v.(value.Boolean)
		if !ok {
			return nil, newRuntimeError(n.Location, "! requires a boolean, got %s", v.Kind())
		}
		return !b, nil
	case lexer.TOKEN_BNOT:
		num, ok := v.(value.Number)
		if !ok {
			return nil, newRuntimeError(n.Location, "~ requires a number, got %s", v.Kind())
		}
		return value.Number(^int64(num)), nil
	}
	return nil, newRuntimeError(n.Location, "unknown unary operator")
}

func (e *Evaluator) evalBinary(ctx *Context, n *parser.BinaryExpr) (value.Value, error) {
	switch n.Operator {
	case lexer.TOKEN_AND:
		left, err := e.Eval(ctx, n.Left)
		if err != nil {
			return nil, err
		}
		lb, ok := left.(value.Boolean)
		if !ok {
			return nil, newRuntimeError(n.Location, "&& requires booleans, got %s", left.Kind())
		}
		if !bool(lb) {
			return value.Boolean(false), nil
		}
		right, err := e.Eval(ctx, n.Right)
		if err != nil {
			return nil, err
		}
		rb, ok := right.(value.Boolean)
		if !ok {
			return nil, newRuntimeError(n.Location, "&& requires booleans, got %s", right.Kind())
		}
		return rb, nil

	case lexer.TOKEN_OR:
		left, err := e.Eval(ctx, n.Left)
		if err != nil {
			return nil, err
		}
		lb, ok := left.(value.Boolean)
		if !ok {
			return nil, newRuntimeError(n.Location, "|| requires booleans, got %s", left.Kind())
		}
		if bool(lb) {
			return value.Boolean(true), nil
		}
		right, err := e.Eval(ctx, n.Right)
		if err != nil {
			return nil, err
		}
		rb, ok := right.(value.Boolean)
		if !ok {
			return nil, newRuntimeError(n.Location, "|| requires booleans, got %s", right.Kind())
		}
		return rb, nil

	case lexer.TOKEN_IN:
		if _, ok := n.Right.(*parser.SuperExpr); ok {
			if ctx.Super() == nil {
				return value.Boolean(false), nil
			}
			key, err := e.indexKeyString(ctx, n.Left)
			if err != nil {
				return nil, err
			}
			return value.Boolean(ctx.Super().Has(key)), nil
		}
		left, err := e.Eval(ctx, n.Left)
		if err != nil {
			return nil, err
		}
		right, err := e.Eval(ctx, n.Right)
		if err != nil {
			return nil, err
		}
		key, ok := left.(value.String)
		if !ok {
			return nil, newRuntimeError(n.Location, "in requires a string key, got %s", left.Kind())
		}
		obj, ok := right.(*value.Object)
		if !ok {
			return nil, newRuntimeError(n.Location, "in requires an object, got %s", right.Kind())
		}
		return value.Boolean(obj.Has(string(key))), nil
	}

	left, err := e.Eval(ctx, n.Left)
	if err != nil {
		return nil, err
	}
	right, err := e.Eval(ctx, n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Operator {
	case lexer.TOKEN_PLUS:
		return addValues(left, right, n.Location)
	case lexer.TOKEN_MINUS:
		return numericOp(left, right, n.Location, "-", func(a, b float64) float64 { return a - b })
	case lexer.TOKEN_STAR:
		return numericOp(left, right, n.Location, "*", func(a, b float64) float64 { return a * b })
	case lexer.TOKEN_SLASH:
		rb, ok := right.(value.Number)
		if ok && rb == 0 {
			return nil, newRuntimeError(n.Location, "division by zero")
		}
		return numericOp(left, right, n.Location, "/", func(a, b float64) float64 { return a / b })
	case lexer.TOKEN_PERCENT:
		return evalPercent(left, right, n.Location)
	case lexer.TOKEN_LT:
		return compareOp(left, right, n.Location, func(c int) bool { return c < 0 })
	case lexer.TOKEN_LE:
		return compareOp(left, right, n.Location, func(c int) bool { return c <= 0 })
	case lexer.TOKEN_GT:
		return compareOp(left, right, n.Location, func(c int) bool { return c > 0 })
	case lexer.TOKEN_GE:
		return compareOp(left, right, n.Location, func(c int) bool { return c >= 0 })
	case lexer.TOKEN_EQ:
		eq, err := value.DeepEqual(left, right)
		if err != nil {
			return nil, err
		}
		return value.Boolean(eq), nil
	case lexer.TOKEN_NE:
		eq, err := value.DeepEqual(left, right)
		if err != nil {
			return nil, err
		}
		return value.Boolean(!eq), nil
	case lexer.TOKEN_BAND:
		return bitwiseOp(left, right, n.Location, func(a, b int64) int64 { return a & b })
	case lexer.TOKEN_BOR:
		return bitwiseOp(left, right, n.Location, func(a, b int64) int64 { return a | b })
	case lexer.TOKEN_BXOR:
		return bitwiseOp(left, right, n.Location, func(a, b int64) int64 { return a ^ b })
	case lexer.TOKEN_LSHIFT:
		return bitwiseOp(left, right, n.Location, func(a, b int64) int64 { return a << uint(b) })
	case lexer.TOKEN_RSHIFT:
		return bitwiseOp(left, right, n.Location, func(a, b int64) int64 { return a >> uint(b) })
	}
	return nil, newRuntimeError(n.Location, "unknown binary operator")
}

// addValues implements `+`: numeric addition, string/array concatenation
// (with automatic stringification when only one side is a string), and
// right-biased object composition.
func addValues(left, right value.Value, loc parser.SourceLocation) (value.Value, error) {
	if lo, ok := left.(*value.Object); ok {
		if ro, ok := right.(*value.Object); ok {
			return value.Compose(lo, ro), nil
		}
	}
	if la, ok := left.(*value.Array); ok {
		if ra, ok := right.(*value.Array); ok {
			elems := make([]*value.Thunk, 0, len(la.Elements)+len(ra.Elements))
			elems = append(elems, la.Elements...)
			elems = append(elems, ra.Elements...)
			return value.NewArray(elems), nil
		}
	}
	if _, ok := left.(value.String); ok {
		rs, err := value.ToString(right)
		if err != nil {
			return nil, err
		}
		ls, _ := left.(value.String)
		return value.String(string(ls) + rs), nil
	}
	if _, ok := right.(value.String); ok {
		ls, err := value.ToString(left)
		if err != nil {
			return nil, err
		}
		rs, _ := right.(value.String)
		return value.String(ls + string(rs)), nil
	}
	ln, lok := left.(value.Number)
	rn, rok := right.(value.Number)
	if lok && rok {
		return ln + rn, nil
	}
	return nil, newRuntimeError(loc, "+ cannot be applied to %s and %s", left.Kind(), right.Kind())
}

func numericOp(left, right value.Value, loc parser.SourceLocation, sym string, f func(a, b float64) float64) (value.Value, error) {
	ln, lok := left.(value.Number)
	rn, rok := right.(value.Number)
	if !lok || !rok {
		return nil, newRuntimeError(loc, "%s requires numbers, got %s and %s", sym, left.Kind(), right.Kind())
	}
	return value.Number(f(float64(ln), float64(rn))), nil
}

func bitwiseOp(left, right value.Value, loc parser.SourceLocation, f func(a, b int64) int64) (value.Value, error) {
	ln, lok := left.(value.Number)
	rn, rok := right.(value.Number)
	if !lok || !rok {
		return nil, newRuntimeError(loc, "bitwise operators require numbers, got %s and %s", left.Kind(), right.Kind())
	}
	return value.Number(f(int64(ln), int64(rn))), nil
}

func evalPercent(left, right value.Value, loc parser.SourceLocation) (value.Value, error) {
	if ls, ok := left.(value.String); ok {
		return value.FormatString(string(ls), right)
	}
	ln, lok := left.(value.Number)
	rn, rok := right.(value.Number)
	if !lok || !rok {
		return nil, newRuntimeError(loc, "%% requires numbers or a format string, got %s and %s", left.Kind(), right.Kind())
	}
	return value.Number(math.Mod(float64(ln), float64(rn))), nil
}

func compareOp(left, right value.Value, loc parser.SourceLocation, test func(int) bool) (value.Value, error) {
	c, err := value.Compare(left, right)
	if err != nil {
		return nil, newRuntimeError(loc, "%s", err)
	}
	return value.Boolean(test(c)), nil
}

// ToString re-exports value.ToString for callers within this package that
// don't want to import both packages' identifiers separately.
func ToString(v value.Value) (string, error) { return value.ToString(v) }
