package manifest

import (
	"fmt"
	"strings"

	"github.com/jsonnetlang/jsonnet/internal/value"
)

// Python renders v using Python literal syntax: True/False/None, single
// quoted strings, and dict/list literals, matching std.manifestPython.
func Python(v value.Value) (string, error) {
	var b strings.Builder
	if err := writePython(&b, v); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writePython(b *strings.Builder, v value.Value) error {
	switch t := v.(type) {
	case value.Null:
		b.WriteString("None")
	case value.Boolean:
		if t {
			b.WriteString("True")
		} else {
			b.WriteString("False")
		}
	case value.Number:
		b.WriteString(value.FormatNumber(float64(t)))
	case value.String:
		writePythonString(b, string(t))
	case *value.Array:
		b.WriteByte('[')
		for i, el := range t.Elements {
			if i > 0 {
				b.WriteString(", ")
			}
			ev, err := el.Force()
			if err != nil {
				return err
			}
			if err := writePython(b, ev); err != nil {
				return err
			}
		}
		b.WriteByte(']')
	case *value.Object:
		keys := t.VisibleKeys()
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			writePythonString(b, k)
			b.WriteString(": ")
			fv, err := t.Get(k, t)
			if err != nil {
				return err
			}
			if err := writePython(b, fv); err != nil {
				return err
			}
		}
		b.WriteByte('}')
	default:
		return fmt.Errorf("cannot manifest %s as python", v.Kind())
	}
	return nil
}

func writePythonString(b *strings.Builder, s string) {
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\'':
			b.WriteString(`\'`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
}

// PythonVars renders a top-level object as a sequence of `name = value`
// Python variable assignments, matching std.manifestPythonVars.
func PythonVars(obj *value.Object) (string, error) {
	var b strings.Builder
	for _, k := range obj.VisibleKeys() {
		v, err := obj.Get(k, obj)
		if err != nil {
			return "", err
		}
		b.WriteString(k)
		b.WriteString(" = ")
		if err := writePython(&b, v); err != nil {
			return "", err
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}
