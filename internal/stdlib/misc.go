package stdlib

import (
	"encoding/json"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/jsonnetlang/jsonnet/internal/manifest"
	"github.com/jsonnetlang/jsonnet/internal/value"
)

func registerMisc(reg registerFunc, deps Deps) {
	reg("assertEqual", []string{"a", "b"}, func(a map[string]value.Value) (value.Value, error) {
		eq, err := value.DeepEqual(a["a"], a["b"])
		if err != nil {
			return nil, err
		}
		if !eq {
			as, _ := value.ToString(a["a"])
			bs, _ := value.ToString(a["b"])
			return nil, fmt.Errorf("std.assertEqual failed: %s != %s", as, bs)
		}
		return value.Boolean(true), nil
	})

	reg("toString", []string{"a"}, func(a map[string]value.Value) (value.Value, error) {
		if s, ok := a["a"].(value.String); ok {
			return s, nil
		}
		s, err := value.ToString(a["a"])
		if err == nil {
			return value.String(s), nil
		}
		js, jerr := manifest.JSON(a["a"], manifest.Options{})
		if jerr != nil {
			return nil, err
		}
		return value.String(js), nil
	})

	reg("trace", []string{"str", "rest"}, func(a map[string]value.Value) (value.Value, error) {
		s, err := wantString(a, "trace", "str")
		if err != nil {
			return nil, err
		}
		if deps.Trace != nil {
			loc := ""
			if deps.ThisFile != nil {
				loc = deps.ThisFile()
			}
			deps.Trace(s, loc)
		}
		return a["rest"], nil
	})

	reg("thisFile", nil, func(a map[string]value.Value) (value.Value, error) {
		if deps.ThisFile == nil {
			return value.String(""), nil
		}
		return value.String(deps.ThisFile()), nil
	})

	reg("extVar", []string{"x"}, func(a map[string]value.Value) (value.Value, error) {
		name, err := wantString(a, "extVar", "x")
		if err != nil {
			return nil, err
		}
		if deps.ExtVar == nil {
			return nil, fmt.Errorf("std.extVar: undefined external variable: %s", name)
		}
		v, ok := deps.ExtVar(name)
		if !ok {
			return nil, fmt.Errorf("std.extVar: undefined external variable: %s", name)
		}
		return v, nil
	})

	reg("native", []string{"name"}, func(a map[string]value.Value) (value.Value, error) {
		name, err := wantString(a, "native", "name")
		if err != nil {
			return nil, err
		}
		if deps.Native == nil {
			return nil, fmt.Errorf("std.native: undefined native function: %s", name)
		}
		f, ok := deps.Native(name)
		if !ok {
			return nil, fmt.Errorf("std.native: undefined native function: %s", name)
		}
		return f, nil
	})

	reg("parseInt", []string{"str"}, func(a map[string]value.Value) (value.Value, error) {
		s, err := wantString(a, "parseInt", "str")
		if err != nil {
			return nil, err
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("std.parseInt: %w", err)
		}
		return value.Number(n), nil
	})

	reg("parseOctal", []string{"str"}, func(a map[string]value.Value) (value.Value, error) {
		s, err := wantString(a, "parseOctal", "str")
		if err != nil {
			return nil, err
		}
		n, err := strconv.ParseInt(s, 8, 64)
		if err != nil {
			return nil, fmt.Errorf("std.parseOctal: %w", err)
		}
		return value.Number(n), nil
	})

	reg("parseHex", []string{"str"}, func(a map[string]value.Value) (value.Value, error) {
		s, err := wantString(a, "parseHex", "str")
		if err != nil {
			return nil, err
		}
		n, err := strconv.ParseInt(s, 16, 64)
		if err != nil {
			return nil, fmt.Errorf("std.parseHex: %w", err)
		}
		return value.Number(n), nil
	})

	reg("parseJson", []string{"str"}, func(a map[string]value.Value) (value.Value, error) {
		s, err := wantString(a, "parseJson", "str")
		if err != nil {
			return nil, err
		}
		var raw interface{}
		if err := json.Unmarshal([]byte(s), &raw); err != nil {
			return nil, fmt.Errorf("std.parseJson: %w", err)
		}
		return fromJSON(raw), nil
	})

	reg("encodeUTF8", []string{"str"}, func(a map[string]value.Value) (value.Value, error) {
		s, err := wantString(a, "encodeUTF8", "str")
		if err != nil {
			return nil, err
		}
		bs := []byte(s)
		vs := make([]value.Value, len(bs))
		for i, b := range bs {
			vs[i] = value.Number(b)
		}
		return arrayOfValues(vs), nil
	})

	reg("decodeUTF8", []string{"arr"}, func(a map[string]value.Value) (value.Value, error) {
		arr, err := wantArray(a, "decodeUTF8", "arr")
		if err != nil {
			return nil, err
		}
		bs, err := bytesFromArray(arr)
		if err != nil {
			return nil, err
		}
		if !utf8.Valid(bs) {
			return nil, fmt.Errorf("std.decodeUTF8: invalid UTF-8 byte sequence")
		}
		return value.String(string(bs)), nil
	})

	reg("prune", []string{"a"}, func(a map[string]value.Value) (value.Value, error) {
		return prune(a["a"])
	})
}

func fromJSON(raw interface{}) value.Value {
	switch v := raw.(type) {
	case nil:
		return value.NullValue
	case bool:
		return value.Boolean(v)
	case float64:
		return value.Number(v)
	case string:
		return value.String(v)
	case []interface{}:
		vs := make([]value.Value, len(v))
		for i, el := range v {
			vs[i] = fromJSON(el)
		}
		return arrayOfValues(vs)
	case map[string]interface{}:
		obj := value.NewObject()
		for k, el := range v {
			ev := fromJSON(el)
			obj.Set(k, &value.Field{Visibility: value.Visible, Eval: readyField(ev)})
		}
		return obj
	default:
		return value.NullValue
	}
}

// prune removes nulls, empty arrays and empty objects recursively, the
// convention std.prune uses to drop optional fields left unset.
func prune(v value.Value) (value.Value, error) {
	switch t := v.(type) {
	case *value.Array:
		var out []value.Value
		for _, el := range t.Elements {
			ev, err := el.Force()
			if err != nil {
				return nil, err
			}
			pv, err := prune(ev)
			if err != nil {
				return nil, err
			}
			if isPruneEmpty(pv) {
				continue
			}
			out = append(out, pv)
		}
		return arrayOfValues(out), nil
	case *value.Object:
		out := value.NewObject()
		for _, k := range t.VisibleKeys() {
			ev, err := t.Get(k, t)
			if err != nil {
				return nil, err
			}
			pv, err := prune(ev)
			if err != nil {
				return nil, err
			}
			if isPruneEmpty(pv) {
				continue
			}
			out.Set(k, &value.Field{Visibility: value.Visible, Eval: readyField(pv)})
		}
		return out, nil
	default:
		return v, nil
	}
}

func isPruneEmpty(v value.Value) bool {
	switch t := v.(type) {
	case value.Null:
		return true
	case *value.Array:
		return len(t.Elements) == 0
	case *value.Object:
		return len(t.AllKeys()) == 0
	default:
		return false
	}
}
