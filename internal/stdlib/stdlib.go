// Package stdlib builds the `std` object every Jsonnet program implicitly
// sees: the built-in functions named in the language reference, implemented
// as native internal/value Functions rather than Jsonnet source, the way
// real Jsonnet implementations special-case the handful of functions that
// need host-language primitives (hashing, JSON parsing, process info).
package stdlib

import (
	"fmt"

	"github.com/jsonnetlang/jsonnet/internal/value"
)

// Deps supplies the handful of std functions that need something outside
// pure value manipulation: trace output, the evaluating file's own path,
// native callback registration, and the ability to evaluate a nested
// Jsonnet snippet (std.parseJson needs none of this, but extVar/native do
// via the embedding Evaluator, wired in by package eval at construction).
type Deps struct {
	Trace    func(msg string, loc string)
	ThisFile func() string
	ExtVar   func(name string) (value.Value, bool)
	Native   func(name string) (*value.Function, bool)
}

// Build constructs the std object. Most entries are pure functions of
// their arguments; the few listed in Deps close over evaluator state.
func Build(deps Deps) *value.Object {
	obj := value.NewObject()
	reg := func(name string, params []string, impl func(args map[string]value.Value) (value.Value, error)) {
		f := value.Ready(fn(name, params, impl))
		obj.Set(name, &value.Field{
			Visibility: value.Hidden,
			Eval: func(self value.Value, super *value.Object) (*value.Thunk, error) {
				return f, nil
			},
		})
	}

	registerCore(reg)
	registerArrays(reg)
	registerStrings(reg)
	registerMath(reg)
	registerManifest(reg)
	registerHash(reg)
	registerMisc(reg, deps)

	return obj
}

// fn builds a native Function. paramNames gives positional names in
// order; impl receives every bound argument already forced to a Value,
// keyed by parameter name, with missing optional arguments simply absent
// from the map (impl decides defaults itself).
func fn(name string, paramNames []string, impl func(args map[string]value.Value) (value.Value, error)) *value.Function {
	params := make([]value.Param, len(paramNames))
	for i, p := range paramNames {
		params[i] = value.Param{Name: p}
	}
	return &value.Function{
		Name:   name,
		Params: params,
		Call: func(callArgs value.CallArgs) (value.Value, error) {
			bound, err := bindArgs(name, paramNames, callArgs)
			if err != nil {
				return nil, err
			}
			forced := make(map[string]value.Value, len(bound))
			for k, th := range bound {
				v, err := th.Force()
				if err != nil {
					return nil, err
				}
				forced[k] = v
			}
			return impl(forced)
		},
	}
}

func bindArgs(name string, paramNames []string, args value.CallArgs) (map[string]*value.Thunk, error) {
	if len(args.Positional) > len(paramNames) {
		return nil, fmt.Errorf("std.%s: too many arguments", name)
	}
	bound := make(map[string]*value.Thunk, len(paramNames))
	for i, th := range args.Positional {
		bound[paramNames[i]] = th
	}
	valid := make(map[string]bool, len(paramNames))
	for _, p := range paramNames {
		valid[p] = true
	}
	for argName, th := range args.Named {
		if !valid[argName] {
			return nil, fmt.Errorf("std.%s: no parameter named %s", name, argName)
		}
		if _, exists := bound[argName]; exists {
			return nil, fmt.Errorf("std.%s: argument %s bound twice", name, argName)
		}
		bound[argName] = th
	}
	return bound, nil
}

type registerFunc func(name string, params []string, impl func(args map[string]value.Value) (value.Value, error))

func wantNumber(args map[string]value.Value, name, param string) (float64, error) {
	v, ok := args[param]
	if !ok {
		return 0, fmt.Errorf("std.%s: missing argument %s", name, param)
	}
	n, ok := v.(value.Number)
	if !ok {
		return 0, fmt.Errorf("std.%s: %s must be a number, got %s", name, param, v.Kind())
	}
	return float64(n), nil
}

func wantString(args map[string]value.Value, name, param string) (string, error) {
	v, ok := args[param]
	if !ok {
		return "", fmt.Errorf("std.%s: missing argument %s", name, param)
	}
	s, ok := v.(value.String)
	if !ok {
		return "", fmt.Errorf("std.%s: %s must be a string, got %s", name, param, v.Kind())
	}
	return string(s), nil
}

func wantArray(args map[string]value.Value, name, param string) (*value.Array, error) {
	v, ok := args[param]
	if !ok {
		return nil, fmt.Errorf("std.%s: missing argument %s", name, param)
	}
	a, ok := v.(*value.Array)
	if !ok {
		return nil, fmt.Errorf("std.%s: %s must be an array, got %s", name, param, v.Kind())
	}
	return a, nil
}

func wantObject(args map[string]value.Value, name, param string) (*value.Object, error) {
	v, ok := args[param]
	if !ok {
		return nil, fmt.Errorf("std.%s: missing argument %s", name, param)
	}
	o, ok := v.(*value.Object)
	if !ok {
		return nil, fmt.Errorf("std.%s: %s must be an object, got %s", name, param, v.Kind())
	}
	return o, nil
}

func wantFunction(args map[string]value.Value, name, param string) (*value.Function, error) {
	v, ok := args[param]
	if !ok {
		return nil, fmt.Errorf("std.%s: missing argument %s", name, param)
	}
	f, ok := v.(*value.Function)
	if !ok {
		return nil, fmt.Errorf("std.%s: %s must be a function, got %s", name, param, v.Kind())
	}
	return f, nil
}

func callFn(f *value.Function, args ...value.Value) (value.Value, error) {
	pos := make([]*value.Thunk, len(args))
	for i, a := range args {
		pos[i] = value.Ready(a)
	}
	return f.Call(value.CallArgs{Positional: pos})
}

func forceAll(arr *value.Array) ([]value.Value, error) {
	out := make([]value.Value, len(arr.Elements))
	for i, th := range arr.Elements {
		v, err := th.Force()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func arrayOfValues(vs []value.Value) *value.Array {
	elems := make([]*value.Thunk, len(vs))
	for i, v := range vs {
		elems[i] = value.Ready(v)
	}
	return value.NewArray(elems)
}
