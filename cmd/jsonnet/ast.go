package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsonnetlang/jsonnet/compiler/lexer"
	"github.com/jsonnetlang/jsonnet/compiler/parser"
)

// runAST implements the --ast flag: lex and parse source directly (bypassing
// pkg/jsonnet, which only exposes evaluated values) and print the resulting
// tree as JSON with an explicit "type" discriminator per node, since
// encoding/json can't pick a concrete type for parser.ExprNode on its own.
func runAST(cmd *cobra.Command, source string, f *evalFlags) error {
	toks, lexErrs := lexer.New(source, "<ast>").ScanTokens()
	if len(lexErrs) > 0 {
		writeEvalError(cmd, lexErrs[0], f, source)
		return errSilent
	}

	program, parseErrs := parser.New(toks, "<ast>").Parse()
	if len(parseErrs) > 0 {
		writeEvalError(cmd, parser.ParseErrorList(parseErrs), f, source)
		return errSilent
	}

	tree := dumpExpr(program.Root)
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(tree)
}

func dumpLoc(loc parser.SourceLocation) map[string]interface{} {
	return map[string]interface{}{"line": loc.Line, "column": loc.Column}
}

// dumpExpr converts a single ExprNode into a JSON-friendly map, recursing
// into every child expression. nil is mapped to JSON null so optional
// children (an absent else-branch, a parameter with no default) round-trip
// cleanly.
func dumpExpr(n parser.ExprNode) interface{} {
	if n == nil {
		return nil
	}

	switch e := n.(type) {
	case *parser.NullExpr:
		return node("Null", e.Location, nil)
	case *parser.BoolExpr:
		return node("Bool", e.Location, map[string]interface{}{"value": e.Value})
	case *parser.NumberExpr:
		return node("Number", e.Location, map[string]interface{}{"value": e.Value})
	case *parser.StringExpr:
		return node("String", e.Location, map[string]interface{}{"value": e.Value})
	case *parser.IdentifierExpr:
		return node("Identifier", e.Location, map[string]interface{}{"name": e.Name})
	case *parser.SelfExpr:
		return node("Self", e.Location, nil)
	case *parser.DollarExpr:
		return node("Dollar", e.Location, nil)
	case *parser.SuperExpr:
		return node("Super", e.Location, nil)
	case *parser.SuperIndexExpr:
		return node("SuperIndex", e.Location, map[string]interface{}{"index": dumpExpr(e.Index)})
	case *parser.ArrayExpr:
		return node("Array", e.Location, map[string]interface{}{"elements": dumpExprList(e.Elements)})
	case *parser.ArrayCompExpr:
		return node("ArrayComp", e.Location, map[string]interface{}{
			"body":    dumpExpr(e.Body),
			"clauses": dumpClauses(e.Clauses),
		})
	case *parser.ObjectExpr:
		return node("Object", e.Location, map[string]interface{}{
			"fields":  dumpFields(e.Fields),
			"locals":  dumpObjectLocals(e.Locals),
			"asserts": dumpObjectAsserts(e.Asserts),
		})
	case *parser.ObjectCompExpr:
		return node("ObjectComp", e.Location, map[string]interface{}{
			"key":     dumpExpr(e.KeyExpr),
			"value":   dumpExpr(e.ValueExpr),
			"locals":  dumpObjectLocals(e.Locals),
			"clauses": dumpClauses(e.Clauses),
		})
	case *parser.IndexExpr:
		return node("Index", e.Location, map[string]interface{}{
			"target": dumpExpr(e.Target),
			"index":  dumpExpr(e.Index),
		})
	case *parser.UnaryExpr:
		return node("Unary", e.Location, map[string]interface{}{
			"operator": e.Operator.String(),
			"operand":  dumpExpr(e.Operand),
		})
	case *parser.BinaryExpr:
		return node("Binary", e.Location, map[string]interface{}{
			"operator": e.Operator.String(),
			"left":     dumpExpr(e.Left),
			"right":    dumpExpr(e.Right),
		})
	case *parser.IfExpr:
		return node("If", e.Location, map[string]interface{}{
			"condition": dumpExpr(e.Condition),
			"then":      dumpExpr(e.Then),
			"else":      dumpExpr(e.Else),
		})
	case *parser.FunctionExpr:
		return node("Function", e.Location, map[string]interface{}{
			"params": dumpParams(e.Params),
			"body":   dumpExpr(e.Body),
		})
	case *parser.LocalExpr:
		return node("Local", e.Location, map[string]interface{}{
			"binds": dumpBinds(e.Binds),
			"body":  dumpExpr(e.Body),
		})
	case *parser.ApplyExpr:
		return node("Apply", e.Location, map[string]interface{}{
			"target":     dumpExpr(e.Target),
			"args":       dumpArgs(e.Args),
			"tailstrict": e.TailStrict,
		})
	case *parser.ApplyBraceExpr:
		return node("ApplyBrace", e.Location, map[string]interface{}{
			"left":  dumpExpr(e.Left),
			"right": dumpExpr(e.Right),
		})
	case *parser.ErrorExpr:
		return node("Error", e.Location, map[string]interface{}{"expr": dumpExpr(e.Expr)})
	case *parser.AssertExpr:
		return node("Assert", e.Location, map[string]interface{}{
			"cond":    dumpExpr(e.Cond),
			"message": dumpExpr(e.Message),
			"rest":    dumpExpr(e.Rest),
		})
	case *parser.ImportExpr:
		return node("Import", e.Location, map[string]interface{}{"path": e.Path})
	case *parser.ImportStrExpr:
		return node("ImportStr", e.Location, map[string]interface{}{"path": e.Path})
	case *parser.ImportBinExpr:
		return node("ImportBin", e.Location, map[string]interface{}{"path": e.Path})
	default:
		return map[string]interface{}{"type": fmt.Sprintf("Unknown(%T)", e)}
	}
}

func node(typ string, loc parser.SourceLocation, fields map[string]interface{}) map[string]interface{} {
	out := map[string]interface{}{"type": typ, "location": dumpLoc(loc)}
	for k, v := range fields {
		out[k] = v
	}
	return out
}

func dumpExprList(exprs []parser.ExprNode) []interface{} {
	out := make([]interface{}, len(exprs))
	for i, e := range exprs {
		out[i] = dumpExpr(e)
	}
	return out
}

func dumpClauses(clauses []parser.CompClause) []interface{} {
	out := make([]interface{}, len(clauses))
	for i, c := range clauses {
		switch cl := c.(type) {
		case *parser.ForClause:
			out[i] = map[string]interface{}{"type": "For", "var": cl.Var, "iter": dumpExpr(cl.Iter)}
		case *parser.IfClause:
			out[i] = map[string]interface{}{"type": "If", "cond": dumpExpr(cl.Cond)}
		}
	}
	return out
}

func dumpFields(fields []*parser.ObjectField) []interface{} {
	out := make([]interface{}, len(fields))
	for i, f := range fields {
		out[i] = map[string]interface{}{
			"key":        dumpExpr(f.Key),
			"visibility": visibilityString(f.Visibility),
			"inherit":    f.Inherit,
			"value":      dumpExpr(f.Value),
		}
	}
	return out
}

func dumpObjectLocals(locals []*parser.ObjectLocal) []interface{} {
	out := make([]interface{}, len(locals))
	for i, l := range locals {
		out[i] = map[string]interface{}{"name": l.Name, "value": dumpExpr(l.Value)}
	}
	return out
}

func dumpObjectAsserts(asserts []*parser.ObjectAssert) []interface{} {
	out := make([]interface{}, len(asserts))
	for i, a := range asserts {
		out[i] = map[string]interface{}{"cond": dumpExpr(a.Cond), "message": dumpExpr(a.Message)}
	}
	return out
}

func dumpParams(params []parser.Param) []interface{} {
	out := make([]interface{}, len(params))
	for i, p := range params {
		out[i] = map[string]interface{}{"name": p.Name, "default": dumpExpr(p.Default)}
	}
	return out
}

func dumpBinds(binds []parser.LocalBind) []interface{} {
	out := make([]interface{}, len(binds))
	for i, b := range binds {
		out[i] = map[string]interface{}{"name": b.Name, "value": dumpExpr(b.Value)}
	}
	return out
}

func dumpArgs(args []parser.Argument) []interface{} {
	out := make([]interface{}, len(args))
	for i, a := range args {
		out[i] = map[string]interface{}{"name": a.Name, "value": dumpExpr(a.Value)}
	}
	return out
}

func visibilityString(v parser.Visibility) string {
	switch v {
	case parser.Hidden:
		return "hidden"
	case parser.ForceVisible:
		return "force_visible"
	default:
		return "visible"
	}
}
