package eval

import (
	"github.com/jsonnetlang/jsonnet/compiler/parser"
	"github.com/jsonnetlang/jsonnet/internal/value"
)

// makeClosure turns a FunctionExpr into a runtime Function, capturing ctx
// as its defining scope. Default-value expressions are evaluated lazily in
// a scope that sees earlier parameters, matching Jsonnet's left-to-right
// default resolution.
func (e *Evaluator) makeClosure(ctx *Context, n *parser.FunctionExpr) *value.Function {
	params := make([]value.Param, len(n.Params))
	for i, p := range n.Params {
		params[i] = value.Param{Name: p.Name}
	}
	return &value.Function{
		Params: params,
		Call: func(args value.CallArgs) (value.Value, error) {
			bound, err := BindParams(n.Location, n.Params, args)
			if err != nil {
				return nil, err
			}
			callCtx := ctx.WithVars(map[string]*value.Thunk{})
			resolved := make(map[string]*value.Thunk, len(n.Params))
			for _, p := range n.Params {
				if th, ok := bound[p.Name]; ok {
					resolved[p.Name] = th
				} else {
					p := p
					resolved[p.Name] = value.NewThunk(func() (value.Value, error) {
						return e.Eval(callCtx, p.Default)
					})
				}
			}
			callCtx.vars = resolved
			return e.Eval(callCtx, n.Body)
		},
	}
}

// BindParams matches a call site's positional and named arguments against
// a parameter list, returning the bound thunks for arguments the caller
// actually supplied (defaults are filled in separately by the caller,
// since only the function itself knows how to evaluate them).
func BindParams(loc parser.SourceLocation, params []parser.Param, args value.CallArgs) (map[string]*value.Thunk, error) {
	if len(args.Positional) > len(params) {
		return nil, newRuntimeError(loc, "too many arguments: expected at most %d, got %d", len(params), len(args.Positional))
	}
	bound := make(map[string]*value.Thunk, len(params))
	for i, th := range args.Positional {
		bound[params[i].Name] = th
	}
	validNames := make(map[string]bool, len(params))
	for _, p := range params {
		validNames[p.Name] = true
	}
	for name, th := range args.Named {
		if !validNames[name] {
			return nil, newRuntimeError(loc, "function has no parameter named %s", name)
		}
		if _, exists := bound[name]; exists {
			return nil, newRuntimeError(loc, "argument %s bound multiple times", name)
		}
		bound[name] = th
	}
	for _, p := range params {
		if _, ok := bound[p.Name]; !ok && p.Default == nil {
			return nil, newRuntimeError(loc, "missing argument: %s", p.Name)
		}
	}
	return bound, nil
}

func (e *Evaluator) evalApply(ctx *Context, n *parser.ApplyExpr) (value.Value, error) {
	target, err := e.Eval(ctx, n.Target)
	if err != nil {
		return nil, err
	}
	fn, ok := target.(*value.Function)
	if !ok {
		return nil, newRuntimeError(n.Location, "cannot call a %s", target.Kind())
	}

	args := value.CallArgs{Named: map[string]*value.Thunk{}}
	for _, a := range n.Args {
		var th *value.Thunk
		if n.TailStrict {
			v, err := e.Eval(ctx, a.Value)
			if err != nil {
				return nil, err
			}
			th = value.Ready(v)
		} else {
			th = e.evalThunk(ctx, a.Value)
		}
		if a.Name == "" {
			args.Positional = append(args.Positional, th)
		} else {
			args.Named[a.Name] = th
		}
	}

	return fn.Call(args)
}
