package eval

import (
	"github.com/jsonnetlang/jsonnet/compiler/errors"
	"github.com/jsonnetlang/jsonnet/compiler/lexer"
	"github.com/jsonnetlang/jsonnet/compiler/parser"
	"github.com/jsonnetlang/jsonnet/internal/value"
)

const defaultMaxDepth = 500

// Evaluator owns everything that outlives a single expression evaluation:
// the import cache, external variables, native callbacks and the standard
// library object every program implicitly sees as `std`.
type Evaluator struct {
	Loader    FileLoader
	Stdlib    *value.Object
	ExtVars   map[string]ExtVar
	NativeFns map[string]*value.Function
	MaxDepth  int

	cache     *importCache
	depth     int
	fileStack []string
}

// ExtVar is an external variable: a plain string (the CLI's -V, or
// pkg/jsonnet's ExtVars option) or Jsonnet code (pkg/jsonnet's ExtCodeVars
// option), resolved lazily like any other binding.
type ExtVar struct {
	Code  bool
	Value string
}

// NewEvaluator wires up a ready-to-use Evaluator. Callers normally obtain
// Stdlib from the stdlib package's Build function.
func NewEvaluator(loader FileLoader, stdlib *value.Object) *Evaluator {
	return &Evaluator{
		Loader:    loader,
		Stdlib:    stdlib,
		ExtVars:   map[string]ExtVar{},
		NativeFns: map[string]*value.Function{},
		MaxDepth:  defaultMaxDepth,
		cache:     newImportCache(),
	}
}

// EvaluateFile parses and evaluates the Jsonnet program at path, returning
// its final value.
func (e *Evaluator) EvaluateFile(path string) (value.Value, error) {
	src, err := e.Loader.Read(path)
	if err != nil {
		return nil, err
	}
	return e.EvaluateSource(string(src), path)
}

// EvaluateSource parses and evaluates src as if loaded from file (used for
// -e/--exec and for stdin programs, where file is "<stdin>", and for code
// external variables, where file is "<ext-var:NAME>").
func (e *Evaluator) EvaluateSource(src, file string) (value.Value, error) {
	l := lexer.New(src, file)
	tokens, lexErrs := l.ScanTokens()
	if len(lexErrs) > 0 {
		return nil, lexErrs[0]
	}
	p := parser.New(tokens, file)
	prog, parseErrs := p.Parse()
	if len(parseErrs) > 0 {
		return nil, parser.ParseErrorList(parseErrs)
	}
	e.fileStack = append(e.fileStack, file)
	defer func() { e.fileStack = e.fileStack[:len(e.fileStack)-1] }()
	ctx := e.rootContext(file)
	return e.Eval(ctx, prog.Root)
}

// CurrentFile returns the file currently being evaluated, for std.thisFile.
// It reflects the innermost EvaluateSource call on the stack, so a std
// function called from inside an imported file reports that file, not the
// top-level entry point.
func (e *Evaluator) CurrentFile() string {
	if len(e.fileStack) == 0 {
		return ""
	}
	return e.fileStack[len(e.fileStack)-1]
}

func (e *Evaluator) rootContext(file string) *Context {
	ctx := NewRootContext()
	vars := map[string]*value.Thunk{
		"std": value.Ready(e.Stdlib),
	}
	for name, ev := range e.ExtVars {
		ev := ev
		vars[name] = value.NewThunk(func() (value.Value, error) {
			if !ev.Code {
				return value.String(ev.Value), nil
			}
			return e.EvaluateSource(ev.Value, "<ext-var:"+name+">")
		})
	}
	return ctx.WithVars(vars)
}

// Eval is the main recursive-descent evaluator: it mirrors the grammar the
// parser built, producing a runtime Value for any ExprNode.
func (e *Evaluator) Eval(ctx *Context, node parser.ExprNode) (value.Value, error) {
	e.depth++
	if e.depth > e.MaxDepth {
		e.depth--
		return nil, newRuntimeError(node.GetLocation(), "max stack frames exceeded")
	}
	defer func() { e.depth-- }()

	switch n := node.(type) {
	case *parser.NullExpr:
		return value.NullValue, nil
	case *parser.BoolExpr:
		return value.Boolean(n.Value), nil
	case *parser.NumberExpr:
		return value.Number(n.Value), nil
	case *parser.StringExpr:
		return value.String(n.Value), nil
	case *parser.IdentifierExpr:
		return e.evalIdentifier(ctx, n)
	case *parser.SelfExpr:
		if ctx.Self() == nil {
			return nil, newRuntimeError(n.Location, "self used outside of an object")
		}
		return ctx.Self(), nil
	case *parser.DollarExpr:
		if ctx.Dollar() == nil {
			return nil, newRuntimeError(n.Location, "$ used outside of an object")
		}
		return ctx.Dollar(), nil
	case *parser.SuperExpr:
		return nil, newRuntimeError(n.Location, "super must be used with an index")
	case *parser.SuperIndexExpr:
		return e.evalSuperIndex(ctx, n)
	case *parser.ArrayExpr:
		return e.evalArray(ctx, n)
	case *parser.ArrayCompExpr:
		return e.evalArrayComp(ctx, n)
	case *parser.ObjectExpr:
		return e.evalObject(ctx, n)
	case *parser.ObjectCompExpr:
		return e.evalObjectComp(ctx, n)
	case *parser.IndexExpr:
		return e.evalIndex(ctx, n)
	case *parser.UnaryExpr:
		return e.evalUnary(ctx, n)
	case *parser.BinaryExpr:
		return e.evalBinary(ctx, n)
	case *parser.IfExpr:
		return e.evalIf(ctx, n)
	case *parser.FunctionExpr:
		return e.makeClosure(ctx, n), nil
	case *parser.LocalExpr:
		return e.evalLocal(ctx, n)
	case *parser.ApplyExpr:
		return e.evalApply(ctx, n)
	case *parser.ApplyBraceExpr:
		return e.evalApplyBrace(ctx, n)
	case *parser.ErrorExpr:
		return e.evalError(ctx, n)
	case *parser.AssertExpr:
		return e.evalAssert(ctx, n)
	case *parser.ImportExpr:
		return e.evalImport(ctx, n)
	case *parser.ImportStrExpr:
		return e.evalImportStr(ctx, n)
	case *parser.ImportBinExpr:
		return e.evalImportBin(ctx, n)
	default:
		return nil, newRuntimeError(node.GetLocation(), "unhandled expression type %T", node)
	}
}

func (e *Evaluator) evalIdentifier(ctx *Context, n *parser.IdentifierExpr) (value.Value, error) {
	th, ok := ctx.Lookup(n.Name)
	if !ok {
		return nil, newRuntimeError(n.Location, "unknown variable: %s", n.Name)
	}
	return th.Force()
}

func (e *Evaluator) evalThunk(ctx *Context, node parser.ExprNode) *value.Thunk {
	return value.NewThunk(func() (value.Value, error) {
		return e.Eval(ctx, node)
	})
}

func (e *Evaluator) evalArray(ctx *Context, n *parser.ArrayExpr) (value.Value, error) {
	elems := make([]*value.Thunk, len(n.Elements))
	for i, el := range n.Elements {
		elems[i] = e.evalThunk(ctx, el)
	}
	return value.NewArray(elems), nil
}

func (e *Evaluator) evalIf(ctx *Context, n *parser.IfExpr) (value.Value, error) {
	cond, err := e.Eval(ctx, n.Condition)
	if err != nil {
		return nil, err
	}
	b, ok := cond.(value.Boolean)
	if !ok {
		return nil, newRuntimeError(n.Location, "condition must be boolean, got %s", cond.Kind())
	}
	if bool(b) {
		return e.Eval(ctx, n.Then)
	}
	if n.Else == nil {
		return value.NullValue, nil
	}
	return e.Eval(ctx, n.Else)
}

func (e *Evaluator) evalLocal(ctx *Context, n *parser.LocalExpr) (value.Value, error) {
	inner := ctx.WithVars(map[string]*value.Thunk{})
	binds := make(map[string]*value.Thunk, len(n.Binds))
	for _, b := range n.Binds {
		b := b
		binds[b.Name] = value.NewThunk(func() (value.Value, error) {
			return e.Eval(inner, b.Value)
		})
	}
	inner.vars = binds
	return e.Eval(inner, n.Body)
}

func (e *Evaluator) evalError(ctx *Context, n *parser.ErrorExpr) (value.Value, error) {
	v, err := e.Eval(ctx, n.Expr)
	if err != nil {
		return nil, err
	}
	s, err := ToString(v)
	if err != nil {
		return nil, err
	}
	return nil, newRuntimeErrorCode(errors.ErrUserError, n.Location, "%s", s)
}

func (e *Evaluator) evalAssert(ctx *Context, n *parser.AssertExpr) (value.Value, error) {
	cond, err := e.Eval(ctx, n.Cond)
	if err != nil {
		return nil, err
	}
	b, ok := cond.(value.Boolean)
	if !ok {
		return nil, newRuntimeError(n.Location, "assert condition must be boolean, got %s", cond.Kind())
	}
	if !bool(b) {
		msg := "assertion failed"
		if n.Message != nil {
			mv, err := e.Eval(ctx, n.Message)
			if err != nil {
				return nil, err
			}
			s, err := ToString(mv)
			if err != nil {
				return nil, err
			}
			msg = s
		}
		return nil, newRuntimeErrorCode(errors.ErrAssertionFailed, n.Location, "%s", msg)
	}
	return e.Eval(ctx, n.Rest)
}
