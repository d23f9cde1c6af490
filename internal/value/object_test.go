package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsonnetlang/jsonnet/internal/value"
)

func readyField(v value.Value) value.FieldEval {
	return func(self value.Value, super *value.Object) (*value.Thunk, error) {
		return value.Ready(v), nil
	}
}

func singleFieldObject(key string, vis value.Visibility, v value.Value) *value.Object {
	o := value.NewObject()
	o.Set(key, &value.Field{Visibility: vis, Eval: readyField(v)})
	return o
}

func TestComposeHiddenStaysHiddenWhenRightIsPlain(t *testing.T) {
	left := singleFieldObject("a", value.Hidden, value.Number(1))
	right := singleFieldObject("a", value.Visible, value.Number(2))

	result := value.Compose(left, right)

	require.True(t, result.Has("a"))
	assert.Equal(t, value.Hidden, result.Fields["a"].Visibility)
	assert.Empty(t, result.VisibleKeys())
	assert.Equal(t, []string{"a"}, result.AllKeys())
}

func TestComposeForceVisibleOverridesHidden(t *testing.T) {
	left := singleFieldObject("a", value.Hidden, value.Number(1))
	right := singleFieldObject("a", value.ForceVisible, value.Number(2))

	result := value.Compose(left, right)

	assert.Equal(t, value.ForceVisible, result.Fields["a"].Visibility)
	assert.Equal(t, []string{"a"}, result.VisibleKeys())
}

func TestComposeVisibleLeftTakesRightVisibility(t *testing.T) {
	left := singleFieldObject("a", value.Visible, value.Number(1))
	right := singleFieldObject("a", value.Hidden, value.Number(2))

	result := value.Compose(left, right)

	assert.Equal(t, value.Hidden, result.Fields["a"].Visibility)
}

func TestComposeKeepsFieldsUniqueToEachSide(t *testing.T) {
	left := singleFieldObject("a", value.Visible, value.Number(1))
	right := singleFieldObject("b", value.Visible, value.Number(2))

	result := value.Compose(left, right)

	assert.ElementsMatch(t, []string{"a", "b"}, result.AllKeys())
}

func TestObjectGetUnknownFieldReturnsFieldNotFoundError(t *testing.T) {
	obj := value.NewObject()

	_, err := obj.Get("missing", obj)

	require.Error(t, err)
	var notFound *value.FieldNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "missing", notFound.Key)
}
