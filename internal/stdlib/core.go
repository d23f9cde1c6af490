package stdlib

import (
	"fmt"

	"github.com/jsonnetlang/jsonnet/internal/value"
)

func registerCore(reg registerFunc) {
	reg("type", []string{"x"}, func(a map[string]value.Value) (value.Value, error) {
		return value.String(a["x"].Kind().String()), nil
	})

	reg("length", []string{"x"}, func(a map[string]value.Value) (value.Value, error) {
		switch v := a["x"].(type) {
		case *value.Array:
			return value.Number(len(v.Elements)), nil
		case value.String:
			return value.Number(len([]rune(string(v)))), nil
		case *value.Object:
			return value.Number(len(v.AllKeys())), nil
		case *value.Function:
			return value.Number(len(v.Params)), nil
		default:
			return nil, fmt.Errorf("std.length: argument must be array, string, object or function, got %s", v.Kind())
		}
	})

	reg("get", []string{"o", "f", "default", "inc_hidden"}, func(a map[string]value.Value) (value.Value, error) {
		obj, err := wantObject(a, "get", "o")
		if err != nil {
			return nil, err
		}
		f, err := wantString(a, "get", "f")
		if err != nil {
			return nil, err
		}
		if !obj.Has(f) {
			if d, ok := a["default"]; ok {
				return d, nil
			}
			return value.NullValue, nil
		}
		return obj.Get(f, obj)
	})

	reg("objectHas", []string{"o", "f"}, objectHasImpl(false))
	reg("objectHasAll", []string{"o", "f"}, objectHasImpl(true))

	reg("objectFields", []string{"o"}, objectFieldsImpl(false))
	reg("objectFieldsAll", []string{"o"}, objectFieldsImpl(true))

	reg("objectValues", []string{"o"}, objectValuesImpl(false))
	reg("objectValuesAll", []string{"o"}, objectValuesImpl(true))

	reg("objectKeysValues", []string{"o"}, objectKeysValuesImpl(false))
	reg("objectKeysValuesAll", []string{"o"}, objectKeysValuesImpl(true))

	reg("objectRemoveKey", []string{"o", "key"}, func(a map[string]value.Value) (value.Value, error) {
		obj, err := wantObject(a, "objectRemoveKey", "o")
		if err != nil {
			return nil, err
		}
		key, err := wantString(a, "objectRemoveKey", "key")
		if err != nil {
			return nil, err
		}
		out := value.NewObject()
		for _, k := range obj.AllKeys() {
			if k == key {
				continue
			}
			out.Set(k, obj.Fields[k])
		}
		return out, nil
	})

	reg("mapWithKey", []string{"func", "obj"}, func(a map[string]value.Value) (value.Value, error) {
		f, err := wantFunction(a, "mapWithKey", "func")
		if err != nil {
			return nil, err
		}
		obj, err := wantObject(a, "mapWithKey", "obj")
		if err != nil {
			return nil, err
		}
		out := value.NewObject()
		for _, k := range obj.VisibleKeys() {
			k := k
			v, err := obj.Get(k, obj)
			if err != nil {
				return nil, err
			}
			rv, err := callFn(f, value.String(k), v)
			if err != nil {
				return nil, err
			}
			out.Set(k, &value.Field{Visibility: value.Visible, Eval: readyField(rv)})
		}
		return out, nil
	})
}

func readyField(v value.Value) value.FieldEval {
	return func(self value.Value, super *value.Object) (*value.Thunk, error) {
		return value.Ready(v), nil
	}
}

func objectHasImpl(includeHidden bool) func(map[string]value.Value) (value.Value, error) {
	return func(a map[string]value.Value) (value.Value, error) {
		obj, err := wantObject(a, "objectHas", "o")
		if err != nil {
			return nil, err
		}
		f, err := wantString(a, "objectHas", "f")
		if err != nil {
			return nil, err
		}
		if !obj.Has(f) {
			return value.Boolean(false), nil
		}
		if !includeHidden && obj.Fields[f].Visibility == value.Hidden {
			return value.Boolean(false), nil
		}
		return value.Boolean(true), nil
	}
}

func objectFieldsImpl(includeHidden bool) func(map[string]value.Value) (value.Value, error) {
	return func(a map[string]value.Value) (value.Value, error) {
		obj, err := wantObject(a, "objectFields", "o")
		if err != nil {
			return nil, err
		}
		keys := obj.AllKeys()
		if !includeHidden {
			keys = obj.VisibleKeys()
		}
		sorted := append([]string(nil), keys...)
		sortStrings(sorted)
		vs := make([]value.Value, len(sorted))
		for i, k := range sorted {
			vs[i] = value.String(k)
		}
		return arrayOfValues(vs), nil
	}
}

func objectValuesImpl(includeHidden bool) func(map[string]value.Value) (value.Value, error) {
	return func(a map[string]value.Value) (value.Value, error) {
		obj, err := wantObject(a, "objectValues", "o")
		if err != nil {
			return nil, err
		}
		keys := obj.AllKeys()
		if !includeHidden {
			keys = obj.VisibleKeys()
		}
		sorted := append([]string(nil), keys...)
		sortStrings(sorted)
		vs := make([]value.Value, len(sorted))
		for i, k := range sorted {
			v, err := obj.Get(k, obj)
			if err != nil {
				return nil, err
			}
			vs[i] = v
		}
		return arrayOfValues(vs), nil
	}
}

func objectKeysValuesImpl(includeHidden bool) func(map[string]value.Value) (value.Value, error) {
	return func(a map[string]value.Value) (value.Value, error) {
		obj, err := wantObject(a, "objectKeysValues", "o")
		if err != nil {
			return nil, err
		}
		keys := obj.AllKeys()
		if !includeHidden {
			keys = obj.VisibleKeys()
		}
		sorted := append([]string(nil), keys...)
		sortStrings(sorted)
		vs := make([]value.Value, len(sorted))
		for i, k := range sorted {
			v, err := obj.Get(k, obj)
			if err != nil {
				return nil, err
			}
			pair := value.NewObject()
			pair.Set("key", &value.Field{Visibility: value.Visible, Eval: readyField(value.String(k))})
			pair.Set("value", &value.Field{Visibility: value.Visible, Eval: readyField(v)})
			vs[i] = pair
		}
		return arrayOfValues(vs), nil
	}
}
