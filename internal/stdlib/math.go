package stdlib

import (
	"math"

	"github.com/jsonnetlang/jsonnet/internal/value"
)

func registerMath(reg registerFunc) {
	unary := func(name string, f func(float64) float64) {
		reg(name, []string{"x"}, func(a map[string]value.Value) (value.Value, error) {
			x, err := wantNumber(a, name, "x")
			if err != nil {
				return nil, err
			}
			return value.Number(f(x)), nil
		})
	}

	unary("abs", math.Abs)
	unary("sqrt", math.Sqrt)
	unary("exp", math.Exp)
	unary("log", math.Log)
	unary("floor", math.Floor)
	unary("ceil", math.Ceil)
	unary("sin", math.Sin)
	unary("cos", math.Cos)
	unary("tan", math.Tan)
	unary("asin", math.Asin)
	unary("acos", math.Acos)
	unary("atan", math.Atan)
	unary("round", math.Round)

	reg("sign", []string{"x"}, func(a map[string]value.Value) (value.Value, error) {
		x, err := wantNumber(a, "sign", "x")
		if err != nil {
			return nil, err
		}
		switch {
		case x > 0:
			return value.Number(1), nil
		case x < 0:
			return value.Number(-1), nil
		default:
			return value.Number(0), nil
		}
	})

	reg("max", []string{"a", "b"}, func(a map[string]value.Value) (value.Value, error) {
		x, err := wantNumber(a, "max", "a")
		if err != nil {
			return nil, err
		}
		y, err := wantNumber(a, "max", "b")
		if err != nil {
			return nil, err
		}
		return value.Number(math.Max(x, y)), nil
	})

	reg("min", []string{"a", "b"}, func(a map[string]value.Value) (value.Value, error) {
		x, err := wantNumber(a, "min", "a")
		if err != nil {
			return nil, err
		}
		y, err := wantNumber(a, "min", "b")
		if err != nil {
			return nil, err
		}
		return value.Number(math.Min(x, y)), nil
	})

	reg("pow", []string{"x", "n"}, func(a map[string]value.Value) (value.Value, error) {
		x, err := wantNumber(a, "pow", "x")
		if err != nil {
			return nil, err
		}
		n, err := wantNumber(a, "pow", "n")
		if err != nil {
			return nil, err
		}
		return value.Number(math.Pow(x, n)), nil
	})

	reg("mod", []string{"a", "b"}, func(a map[string]value.Value) (value.Value, error) {
		x, err := wantNumber(a, "mod", "a")
		if err != nil {
			return nil, err
		}
		y, err := wantNumber(a, "mod", "b")
		if err != nil {
			return nil, err
		}
		return value.Number(math.Mod(x, y)), nil
	})

	reg("exponent", []string{"x"}, func(a map[string]value.Value) (value.Value, error) {
		x, err := wantNumber(a, "exponent", "x")
		if err != nil {
			return nil, err
		}
		_, exp := math.Frexp(x)
		return value.Number(exp), nil
	})

	reg("mantissa", []string{"x"}, func(a map[string]value.Value) (value.Value, error) {
		x, err := wantNumber(a, "mantissa", "x")
		if err != nil {
			return nil, err
		}
		frac, _ := math.Frexp(x)
		return value.Number(frac), nil
	})

	reg("clamp", []string{"x", "minVal", "maxVal"}, func(a map[string]value.Value) (value.Value, error) {
		x, err := wantNumber(a, "clamp", "x")
		if err != nil {
			return nil, err
		}
		lo, err := wantNumber(a, "clamp", "minVal")
		if err != nil {
			return nil, err
		}
		hi, err := wantNumber(a, "clamp", "maxVal")
		if err != nil {
			return nil, err
		}
		return value.Number(math.Max(lo, math.Min(x, hi))), nil
	})

	reg("isEven", []string{"x"}, func(a map[string]value.Value) (value.Value, error) {
		x, err := wantNumber(a, "isEven", "x")
		if err != nil {
			return nil, err
		}
		return value.Boolean(int64(x)%2 == 0), nil
	})

	reg("isOdd", []string{"x"}, func(a map[string]value.Value) (value.Value, error) {
		x, err := wantNumber(a, "isOdd", "x")
		if err != nil {
			return nil, err
		}
		return value.Boolean(int64(x)%2 != 0), nil
	})

	reg("isInteger", []string{"x"}, func(a map[string]value.Value) (value.Value, error) {
		x, err := wantNumber(a, "isInteger", "x")
		if err != nil {
			return nil, err
		}
		return value.Boolean(x == math.Trunc(x)), nil
	})

	reg("isDecimal", []string{"x"}, func(a map[string]value.Value) (value.Value, error) {
		x, err := wantNumber(a, "isDecimal", "x")
		if err != nil {
			return nil, err
		}
		return value.Boolean(x != math.Trunc(x)), nil
	})
}
