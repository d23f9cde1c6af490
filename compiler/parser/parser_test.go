package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsonnetlang/jsonnet/compiler/lexer"
)

func mustParse(t *testing.T, src string) ExprNode {
	t.Helper()
	l := lexer.New(src, "test.jsonnet")
	tokens, lexErrs := l.ScanTokens()
	require.Empty(t, lexErrs)
	p := New(tokens, "test.jsonnet")
	prog, errs := p.Parse()
	require.Empty(t, errs, "parse errors: %v", errs)
	require.NotNil(t, prog)
	return prog.Root
}

func TestParseLiterals(t *testing.T) {
	assert.IsType(t, &NullExpr{}, mustParse(t, "null"))
	assert.IsType(t, &BoolExpr{}, mustParse(t, "true"))
	assert.IsType(t, &NumberExpr{}, mustParse(t, "3.14"))
	assert.IsType(t, &StringExpr{}, mustParse(t, `"hi"`))
}

func TestParseBinaryPrecedence(t *testing.T) {
	// 1 + 2 * 3 should parse as 1 + (2 * 3)
	root := mustParse(t, "1 + 2 * 3")
	bin, ok := root.(*BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, lexer.TOKEN_PLUS, bin.Operator)
	rhs, ok := bin.Right.(*BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, lexer.TOKEN_STAR, rhs.Operator)
}

func TestParseOrAndPrecedence(t *testing.T) {
	root := mustParse(t, "a && b || c")
	bin, ok := root.(*BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, lexer.TOKEN_OR, bin.Operator)
}

func TestParseLeftAssociativity(t *testing.T) {
	root := mustParse(t, "1 - 2 - 3")
	bin, ok := root.(*BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, lexer.TOKEN_MINUS, bin.Operator)
	lhs, ok := bin.Left.(*BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, lexer.TOKEN_MINUS, lhs.Operator)
}

func TestParseUnary(t *testing.T) {
	root := mustParse(t, "-x")
	u, ok := root.(*UnaryExpr)
	require.True(t, ok)
	assert.Equal(t, lexer.TOKEN_MINUS, u.Operator)
}

func TestParseIfThenElse(t *testing.T) {
	root := mustParse(t, "if x then 1 else 2")
	ifExpr, ok := root.(*IfExpr)
	require.True(t, ok)
	assert.NotNil(t, ifExpr.Then)
	assert.NotNil(t, ifExpr.Else)
}

func TestParseIfThenOnly(t *testing.T) {
	root := mustParse(t, "if x then 1")
	ifExpr, ok := root.(*IfExpr)
	require.True(t, ok)
	assert.Nil(t, ifExpr.Else)
}

func TestParseLocalBindsIntoBody(t *testing.T) {
	root := mustParse(t, "local x = 1; x + 1")
	local, ok := root.(*LocalExpr)
	require.True(t, ok)
	require.Len(t, local.Binds, 1)
	assert.Equal(t, "x", local.Binds[0].Name)
	_, ok = local.Body.(*BinaryExpr)
	assert.True(t, ok)
}

func TestParseLocalFunctionSugar(t *testing.T) {
	root := mustParse(t, "local f(x) = x + 1; f(2)")
	local, ok := root.(*LocalExpr)
	require.True(t, ok)
	fn, ok := local.Binds[0].Value.(*FunctionExpr)
	require.True(t, ok)
	assert.Len(t, fn.Params, 1)
}

func TestParseMultipleLocalBinds(t *testing.T) {
	root := mustParse(t, "local x = 1, y = 2; x + y")
	local, ok := root.(*LocalExpr)
	require.True(t, ok)
	assert.Len(t, local.Binds, 2)
}

func TestParseFunctionWithDefaults(t *testing.T) {
	root := mustParse(t, "function(x, y=1) x + y")
	fn, ok := root.(*FunctionExpr)
	require.True(t, ok)
	require.Len(t, fn.Params, 2)
	assert.Nil(t, fn.Params[0].Default)
	assert.NotNil(t, fn.Params[1].Default)
}

func TestParseCallNamedAndPositionalArgs(t *testing.T) {
	root := mustParse(t, "f(1, y=2)")
	apply, ok := root.(*ApplyExpr)
	require.True(t, ok)
	require.Len(t, apply.Args, 2)
	assert.Equal(t, "", apply.Args[0].Name)
	assert.Equal(t, "y", apply.Args[1].Name)
}

func TestParseTailstrictCall(t *testing.T) {
	root := mustParse(t, "f(1) tailstrict")
	apply, ok := root.(*ApplyExpr)
	require.True(t, ok)
	assert.True(t, apply.TailStrict)
}

func TestParseFieldAccess(t *testing.T) {
	root := mustParse(t, "a.b.c")
	idx, ok := root.(*IndexExpr)
	require.True(t, ok)
	key, ok := idx.Index.(*StringExpr)
	require.True(t, ok)
	assert.Equal(t, "c", key.Value)
}

func TestParseIndexing(t *testing.T) {
	root := mustParse(t, "a[0]")
	idx, ok := root.(*IndexExpr)
	require.True(t, ok)
	assert.IsType(t, &NumberExpr{}, idx.Index)
}

func TestParseSliceDesugarsToStdSlice(t *testing.T) {
	root := mustParse(t, "a[1:2:3]")
	apply, ok := root.(*ApplyExpr)
	require.True(t, ok)
	require.Len(t, apply.Args, 4)
}

func TestParseArrayLiteral(t *testing.T) {
	root := mustParse(t, "[1, 2, 3]")
	arr, ok := root.(*ArrayExpr)
	require.True(t, ok)
	assert.Len(t, arr.Elements, 3)
}

func TestParseArrayComprehension(t *testing.T) {
	root := mustParse(t, "[x * 2 for x in [1, 2, 3] if x > 1]")
	comp, ok := root.(*ArrayCompExpr)
	require.True(t, ok)
	require.Len(t, comp.Clauses, 2)
	assert.IsType(t, &ForClause{}, comp.Clauses[0])
	assert.IsType(t, &IfClause{}, comp.Clauses[1])
}

func TestParseObjectLiteral(t *testing.T) {
	root := mustParse(t, `{ a: 1, b:: 2, c+: 3 }`)
	obj, ok := root.(*ObjectExpr)
	require.True(t, ok)
	require.Len(t, obj.Fields, 3)
	assert.Equal(t, Visible, obj.Fields[0].Visibility)
	assert.Equal(t, Hidden, obj.Fields[1].Visibility)
	assert.True(t, obj.Fields[2].Inherit)
}

func TestParseObjectComprehension(t *testing.T) {
	root := mustParse(t, `{ [k]: v for k in ["a", "b"] }`)
	comp, ok := root.(*ObjectCompExpr)
	require.True(t, ok)
	assert.NotNil(t, comp.KeyExpr)
	assert.NotNil(t, comp.ValueExpr)
}

func TestParseObjectMethodSugar(t *testing.T) {
	root := mustParse(t, `{ add(x, y): x + y }`)
	obj, ok := root.(*ObjectExpr)
	require.True(t, ok)
	fn, ok := obj.Fields[0].Value.(*FunctionExpr)
	require.True(t, ok)
	assert.Len(t, fn.Params, 2)
}

func TestParseApplyBrace(t *testing.T) {
	root := mustParse(t, `Base { x: 1 }`)
	ab, ok := root.(*ApplyBraceExpr)
	require.True(t, ok)
	assert.IsType(t, &IdentifierExpr{}, ab.Left)
}

func TestParseSelfSuperDollar(t *testing.T) {
	assert.IsType(t, &SelfExpr{}, mustParse(t, "self"))
	assert.IsType(t, &DollarExpr{}, mustParse(t, "$"))
	root := mustParse(t, "super.x")
	_, ok := root.(*SuperIndexExpr)
	assert.True(t, ok)
}

func TestParseAssertExpr(t *testing.T) {
	root := mustParse(t, `assert x > 0 : "must be positive"; x`)
	a, ok := root.(*AssertExpr)
	require.True(t, ok)
	assert.NotNil(t, a.Message)
	assert.NotNil(t, a.Rest)
}

func TestParseErrorExpr(t *testing.T) {
	root := mustParse(t, `error "boom"`)
	e, ok := root.(*ErrorExpr)
	require.True(t, ok)
	assert.IsType(t, &StringExpr{}, e.Expr)
}

func TestParseImportForms(t *testing.T) {
	assert.IsType(t, &ImportExpr{}, mustParse(t, `import "a.libsonnet"`))
	assert.IsType(t, &ImportStrExpr{}, mustParse(t, `importstr "a.txt"`))
	assert.IsType(t, &ImportBinExpr{}, mustParse(t, `importbin "a.bin"`))
}

func TestParseSyntaxErrorReported(t *testing.T) {
	l := lexer.New("1 +", "test.jsonnet")
	tokens, _ := l.ScanTokens()
	p := New(tokens, "test.jsonnet")
	_, errs := p.Parse()
	require.NotEmpty(t, errs)
}

func TestParseUnexpectedTokenReported(t *testing.T) {
	l := lexer.New(")", "test.jsonnet")
	tokens, _ := l.ScanTokens()
	p := New(tokens, "test.jsonnet")
	_, errs := p.Parse()
	require.NotEmpty(t, errs)
}
