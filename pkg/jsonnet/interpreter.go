// Package jsonnet is the programmatic entry point consumed by the CLI
// driver (and any other Go program embedding the interpreter): construct
// an Interpreter, configure its external variables and native callbacks,
// then call Loads/Load/EvaluateFile.
package jsonnet

import (
	"github.com/jsonnetlang/jsonnet/internal/eval"
	"github.com/jsonnetlang/jsonnet/internal/manifest"
	"github.com/jsonnetlang/jsonnet/internal/stdlib"
	"github.com/jsonnetlang/jsonnet/internal/value"
)

// NativeFunc is a host Go function exposed to Jsonnet programs through
// std.native. Jsonnet arguments arrive already forced, in call order.
type NativeFunc struct {
	Params []string
	Func   func(args []value.Value) (interface{}, error)
}

// Options configures an Interpreter at construction time.
type Options struct {
	JPath           []string
	ExtVars         map[string]string
	ExtCodeVars     map[string]string
	NativeCallbacks map[string]NativeFunc
	Indent          string
	EnsureASCII     bool
	TraceOut        func(msg, loc string)
}

// Interpreter wraps an internal/eval.Evaluator with the stdlib wired in,
// exposing the three entry points the driver and embedders use.
type Interpreter struct {
	ev     *eval.Evaluator
	opts   Options
	loader *eval.OSFileLoader
}

// New builds an Interpreter ready to evaluate Jsonnet source.
func New(opts Options) (*Interpreter, error) {
	loader := &eval.OSFileLoader{JPath: opts.JPath}
	ev := eval.NewEvaluator(loader, nil)

	for name, val := range opts.ExtVars {
		ev.ExtVars[name] = eval.ExtVar{Code: false, Value: val}
	}
	for name, code := range opts.ExtCodeVars {
		ev.ExtVars[name] = eval.ExtVar{Code: true, Value: code}
	}

	interp := &Interpreter{ev: ev, opts: opts, loader: loader}

	for name, nf := range opts.NativeCallbacks {
		ev.NativeFns[name] = nativeToFunction(name, nf)
	}

	deps := stdlib.Deps{
		Trace: opts.TraceOut,
		ThisFile: ev.CurrentFile,
		ExtVar: func(name string) (value.Value, bool) {
			ext, ok := ev.ExtVars[name]
			if !ok {
				return nil, false
			}
			if !ext.Code {
				return value.String(ext.Value), true
			}
			v, err := ev.EvaluateSource(ext.Value, "<ext-var:"+name+">")
			if err != nil {
				return nil, false
			}
			return v, true
		},
		Native: func(name string) (*value.Function, bool) {
			f, ok := ev.NativeFns[name]
			return f, ok
		},
	}
	ev.Stdlib = stdlib.Build(deps)

	return interp, nil
}

func nativeToFunction(name string, nf NativeFunc) *value.Function {
	params := make([]value.Param, len(nf.Params))
	for i, p := range nf.Params {
		params[i] = value.Param{Name: p}
	}
	return &value.Function{
		Name:   name,
		Params: params,
		Call: func(args value.CallArgs) (value.Value, error) {
			vals := make([]value.Value, len(nf.Params))
			for i, th := range args.Positional {
				if i >= len(vals) {
					break
				}
				v, err := th.Force()
				if err != nil {
					return nil, err
				}
				vals[i] = v
			}
			for pname, th := range args.Named {
				for i, p := range nf.Params {
					if p == pname {
						v, err := th.Force()
						if err != nil {
							return nil, err
						}
						vals[i] = v
					}
				}
			}
			result, err := nf.Func(vals)
			if err != nil {
				return nil, err
			}
			return toValue(result), nil
		},
	}
}

func toValue(v interface{}) value.Value {
	switch t := v.(type) {
	case nil:
		return value.NullValue
	case value.Value:
		return t
	case bool:
		return value.Boolean(t)
	case string:
		return value.String(t)
	case float64:
		return value.Number(t)
	case int:
		return value.Number(t)
	default:
		return value.NullValue
	}
}

// Loads evaluates Jsonnet source text directly (no file on disk required),
// returning the raw runtime value so callers can inspect it before
// manifestation.
func (i *Interpreter) Loads(source string) (value.Value, error) {
	return i.ev.EvaluateSource(source, "<stdin>")
}

// Load evaluates the Jsonnet program at path, returning the raw runtime
// value.
func (i *Interpreter) Load(path string) (value.Value, error) {
	return i.ev.EvaluateFile(path)
}

// EvaluateFile evaluates the Jsonnet program at path and manifests it to
// JSON text per the Interpreter's Indent/EnsureASCII options.
func (i *Interpreter) EvaluateFile(path string) (string, error) {
	v, err := i.Load(path)
	if err != nil {
		return "", err
	}
	return manifest.JSON(v, manifest.Options{Indent: i.opts.Indent, EnsureASCII: i.opts.EnsureASCII})
}

// EvaluateSnippet evaluates inline Jsonnet source (the -e/--exec CLI path)
// and manifests it to JSON text.
func (i *Interpreter) EvaluateSnippet(source string) (string, error) {
	v, err := i.Loads(source)
	if err != nil {
		return "", err
	}
	return manifest.JSON(v, manifest.Options{Indent: i.opts.Indent, EnsureASCII: i.opts.EnsureASCII})
}
