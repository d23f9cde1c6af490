package eval

import (
	"github.com/jsonnetlang/jsonnet/compiler/parser"
	"github.com/jsonnetlang/jsonnet/internal/value"
)

func (e *Evaluator) evalImport(ctx *Context, n *parser.ImportExpr) (value.Value, error) {
	abs, err := e.Loader.Resolve(n.Location.File, n.Path)
	if err != nil {
		return nil, newRuntimeError(n.Location, "couldn't resolve import %q: %s", n.Path, err)
	}
	if th, ok := e.cache.entries[abs]; ok {
		return th.Force()
	}
	src, err := e.Loader.Read(abs)
	if err != nil {
		return nil, newRuntimeError(n.Location, "couldn't open import %q: %s", n.Path, err)
	}
	th := value.NewThunk(func() (value.Value, error) {
		return e.EvaluateSource(string(src), abs)
	})
	e.cache.entries[abs] = th
	return th.Force()
}

func (e *Evaluator) evalImportStr(ctx *Context, n *parser.ImportStrExpr) (value.Value, error) {
	abs, err := e.Loader.Resolve(n.Location.File, n.Path)
	if err != nil {
		return nil, newRuntimeError(n.Location, "couldn't resolve import %q: %s", n.Path, err)
	}
	if s, ok := e.cache.strs[abs]; ok {
		return value.String(s), nil
	}
	src, err := e.Loader.Read(abs)
	if err != nil {
		return nil, newRuntimeError(n.Location, "couldn't open import %q: %s", n.Path, err)
	}
	e.cache.strs[abs] = string(src)
	return value.String(string(src)), nil
}

func (e *Evaluator) evalImportBin(ctx *Context, n *parser.ImportBinExpr) (value.Value, error) {
	abs, err := e.Loader.Resolve(n.Location.File, n.Path)
	if err != nil {
		return nil, newRuntimeError(n.Location, "couldn't resolve import %q: %s", n.Path, err)
	}
	if v, ok := e.cache.bins[abs]; ok {
		return v, nil
	}
	src, err := e.Loader.Read(abs)
	if err != nil {
		return nil, newRuntimeError(n.Location, "couldn't open import %q: %s", n.Path, err)
	}
	elems := make([]*value.Thunk, len(src))
	for i, b := range src {
		elems[i] = value.Ready(value.Number(b))
	}
	arr := value.NewArray(elems)
	e.cache.bins[abs] = arr
	return arr, nil
}
