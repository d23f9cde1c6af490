package jsonnet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsonnetlang/jsonnet/internal/value"
	"github.com/jsonnetlang/jsonnet/pkg/jsonnet"
)

func TestEvaluateSnippetBasic(t *testing.T) {
	interp, err := jsonnet.New(jsonnet.Options{Indent: "  "})
	require.NoError(t, err)

	out, err := interp.EvaluateSnippet(`{ a: 1, b: 2 + 2 }`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 1, "b": 4}`, out)
}

func TestEvaluateSnippetObjectComposition(t *testing.T) {
	interp, err := jsonnet.New(jsonnet.Options{})
	require.NoError(t, err)

	out, err := interp.EvaluateSnippet(`
		local base = { greeting: "hi", name: "world" };
		base + { name: "jsonnet" }
	`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"greeting": "hi", "name": "jsonnet"}`, out)
}

func TestEvaluateSnippetStdlib(t *testing.T) {
	interp, err := jsonnet.New(jsonnet.Options{})
	require.NoError(t, err)

	out, err := interp.EvaluateSnippet(`std.join(",", std.map(function(x) std.toString(x * 2), [1, 2, 3]))`)
	require.NoError(t, err)
	assert.JSONEq(t, `"2,4,6"`, out)
}

func TestEvaluateSnippetExtVar(t *testing.T) {
	interp, err := jsonnet.New(jsonnet.Options{
		ExtVars: map[string]string{"env": "production"},
	})
	require.NoError(t, err)

	out, err := interp.EvaluateSnippet(`{ env: std.extVar("env") }`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"env": "production"}`, out)
}

func TestEvaluateSnippetExtCodeVar(t *testing.T) {
	interp, err := jsonnet.New(jsonnet.Options{
		ExtCodeVars: map[string]string{"nums": "[1, 2, 3]"},
	})
	require.NoError(t, err)

	out, err := interp.EvaluateSnippet(`std.length(std.extVar("nums"))`)
	require.NoError(t, err)
	assert.JSONEq(t, `3`, out)
}

func TestEvaluateSnippetNativeCallback(t *testing.T) {
	interp, err := jsonnet.New(jsonnet.Options{
		NativeCallbacks: map[string]jsonnet.NativeFunc{
			"double": {
				Params: []string{"x"},
				Func: func(args []value.Value) (interface{}, error) {
					n := args[0].(value.Number)
					return float64(n) * 2, nil
				},
			},
		},
	})
	require.NoError(t, err)

	out, err := interp.EvaluateSnippet(`std.native("double")(21)`)
	require.NoError(t, err)
	assert.JSONEq(t, `42`, out)
}

func TestEvaluateSnippetErrorExpr(t *testing.T) {
	interp, err := jsonnet.New(jsonnet.Options{})
	require.NoError(t, err)

	_, err = interp.EvaluateSnippet(`error "boom"`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestEvaluateSnippetDivisionByZero(t *testing.T) {
	interp, err := jsonnet.New(jsonnet.Options{})
	require.NoError(t, err)

	_, err = interp.EvaluateSnippet(`1 / 0`)
	require.Error(t, err)
}

func TestEvaluateSnippetUnknownVariable(t *testing.T) {
	interp, err := jsonnet.New(jsonnet.Options{})
	require.NoError(t, err)

	_, err = interp.EvaluateSnippet(`undefinedThing`)
	require.Error(t, err)
}

func TestLoadsReturnsRawValue(t *testing.T) {
	interp, err := jsonnet.New(jsonnet.Options{})
	require.NoError(t, err)

	v, err := interp.Loads(`[1, 2, 3]`)
	require.NoError(t, err)

	arr, ok := v.(*value.Array)
	require.True(t, ok, "expected an array value, got %T", v)
	assert.Len(t, arr.Elements, 3)
}

func TestEvaluateSnippetComposeKeepsHiddenVisibility(t *testing.T) {
	interp, err := jsonnet.New(jsonnet.Options{})
	require.NoError(t, err)

	out, err := interp.EvaluateSnippet(`{a:: 1} + {a: 2}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, out)
}

func TestEvaluateSnippetComposeForceVisibleWins(t *testing.T) {
	interp, err := jsonnet.New(jsonnet.Options{})
	require.NoError(t, err)

	out, err := interp.EvaluateSnippet(`{a:: 1} + {a::: 2}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 2}`, out)
}

func TestEvaluateSnippetLengthCountsHiddenFields(t *testing.T) {
	interp, err := jsonnet.New(jsonnet.Options{})
	require.NoError(t, err)

	out, err := interp.EvaluateSnippet(`std.length({a: 1, b:: 2})`)
	require.NoError(t, err)
	assert.JSONEq(t, `2`, out)
}

func TestEvaluateSnippetObjectFieldsSkipsHiddenByDefault(t *testing.T) {
	interp, err := jsonnet.New(jsonnet.Options{})
	require.NoError(t, err)

	out, err := interp.EvaluateSnippet(`std.objectFields({a: 1, b:: 2})`)
	require.NoError(t, err)
	assert.JSONEq(t, `["a"]`, out)
}

func TestEvaluateSnippetEnsureASCII(t *testing.T) {
	interp, err := jsonnet.New(jsonnet.Options{EnsureASCII: true})
	require.NoError(t, err)

	src := "\"café\""
	out, err := interp.EvaluateSnippet(src)
	require.NoError(t, err)
	want := "\"caf\\u00e9\""
	assert.Equal(t, want, out)
}
