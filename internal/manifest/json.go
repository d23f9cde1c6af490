// Package manifest renders internal/value runtime values into the output
// formats the Jsonnet driver and std.manifest* family produce: canonical
// JSON, Python literals, and INI.
package manifest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jsonnetlang/jsonnet/internal/value"
)

// Options controls JSON rendering.
type Options struct {
	Indent      string // "" means one line: no newlines or indentation, but ": " after keys and "[ ]"/"{ }" for empty containers
	EnsureASCII bool
}

// JSON renders v as canonical JSON per the driver's default output rules:
// object fields in declaration order (Hidden fields skipped, ForceVisible
// and Visible included), indentation by the Options.Indent string (single
// line when it is empty), and `\uXXXX` escapes for all non-ASCII runes when
// EnsureASCII is set.
func JSON(v value.Value, opts Options) (string, error) {
	var b strings.Builder
	if err := writeJSON(&b, v, opts, 0); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writeJSON(b *strings.Builder, v value.Value, opts Options, depth int) error {
	switch t := v.(type) {
	case value.Null:
		b.WriteString("null")
	case value.Boolean:
		if t {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case value.Number:
		b.WriteString(value.FormatNumber(float64(t)))
	case value.String:
		writeJSONString(b, string(t), opts.EnsureASCII)
	case *value.Array:
		return writeJSONArray(b, t, opts, depth)
	case *value.Object:
		return writeJSONObject(b, t, opts, depth)
	case *value.Function:
		return fmt.Errorf("cannot manifest a function")
	default:
		return fmt.Errorf("cannot manifest %s", v.Kind())
	}
	return nil
}

func writeJSONArray(b *strings.Builder, arr *value.Array, opts Options, depth int) error {
	if len(arr.Elements) == 0 {
		b.WriteString("[ ]")
		return nil
	}
	b.WriteByte('[')
	nl, pad, padClose := newlineAndPad(opts, depth)
	for i, el := range arr.Elements {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(nl)
		b.WriteString(pad)
		v, err := el.Force()
		if err != nil {
			return err
		}
		if err := writeJSON(b, v, opts, depth+1); err != nil {
			return err
		}
	}
	b.WriteString(nl)
	b.WriteString(padClose)
	b.WriteByte(']')
	return nil
}

func writeJSONObject(b *strings.Builder, obj *value.Object, opts Options, depth int) error {
	keys := obj.VisibleKeys()
	if len(keys) == 0 {
		b.WriteString("{ }")
		return nil
	}
	b.WriteByte('{')
	nl, pad, padClose := newlineAndPad(opts, depth)
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(nl)
		b.WriteString(pad)
		writeJSONString(b, k, opts.EnsureASCII)
		b.WriteString(": ")
		v, err := obj.Get(k, obj)
		if err != nil {
			return err
		}
		if err := writeJSON(b, v, opts, depth+1); err != nil {
			return err
		}
	}
	b.WriteString(nl)
	b.WriteString(padClose)
	b.WriteByte('}')
	return nil
}

func newlineAndPad(opts Options, depth int) (nl, pad, padClose string) {
	if opts.Indent == "" {
		return "", "", ""
	}
	return "\n", strings.Repeat(opts.Indent, depth+1), strings.Repeat(opts.Indent, depth)
}

func writeJSONString(b *strings.Builder, s string, ensureASCII bool) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			switch {
			case r < 0x20:
				fmt.Fprintf(b, `\u%04x`, r)
			case r > 0x7e && ensureASCII:
				if r > 0xffff {
					r1, r2 := utf16Pair(r)
					fmt.Fprintf(b, `\u%04x\u%04x`, r1, r2)
				} else {
					fmt.Fprintf(b, `\u%04x`, r)
				}
			default:
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
}

func utf16Pair(r rune) (rune, rune) {
	r -= 0x10000
	return 0xd800 + (r >> 10), 0xdc00 + (r & 0x3ff)
}

// SortedObjectKeys returns obj's visible field names in sorted order;
// Jsonnet object field order is otherwise insertion order.
func SortedObjectKeys(obj *value.Object) []string {
	keys := append([]string(nil), obj.VisibleKeys()...)
	sort.Strings(keys)
	return keys
}
