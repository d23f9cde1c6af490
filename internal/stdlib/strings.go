package stdlib

import (
	"fmt"
	"strings"

	"github.com/jsonnetlang/jsonnet/internal/value"
)

func registerStrings(reg registerFunc) {
	reg("codepoint", []string{"str"}, func(a map[string]value.Value) (value.Value, error) {
		s, err := wantString(a, "codepoint", "str")
		if err != nil {
			return nil, err
		}
		rs := []rune(s)
		if len(rs) != 1 {
			return nil, fmt.Errorf("std.codepoint: str must be a single-character string")
		}
		return value.Number(rs[0]), nil
	})

	reg("char", []string{"n"}, func(a map[string]value.Value) (value.Value, error) {
		n, err := wantNumber(a, "char", "n")
		if err != nil {
			return nil, err
		}
		return value.String(string(rune(int64(n)))), nil
	})

	reg("substr", []string{"str", "from", "len"}, func(a map[string]value.Value) (value.Value, error) {
		s, err := wantString(a, "substr", "str")
		if err != nil {
			return nil, err
		}
		from, err := wantNumber(a, "substr", "from")
		if err != nil {
			return nil, err
		}
		ln, err := wantNumber(a, "substr", "len")
		if err != nil {
			return nil, err
		}
		rs := []rune(s)
		start := int(from)
		if start < 0 {
			start = 0
		}
		if start > len(rs) {
			start = len(rs)
		}
		end := start + int(ln)
		if end > len(rs) {
			end = len(rs)
		}
		if end < start {
			end = start
		}
		return value.String(string(rs[start:end])), nil
	})

	reg("findSubstr", []string{"pat", "str"}, func(a map[string]value.Value) (value.Value, error) {
		pat, err := wantString(a, "findSubstr", "pat")
		if err != nil {
			return nil, err
		}
		s, err := wantString(a, "findSubstr", "str")
		if err != nil {
			return nil, err
		}
		if pat == "" {
			return arrayOfValues(nil), nil
		}
		rs := []rune(s)
		pr := []rune(pat)
		var out []value.Value
		for i := 0; i+len(pr) <= len(rs); i++ {
			if string(rs[i:i+len(pr)]) == pat {
				out = append(out, value.Number(i))
			}
		}
		return arrayOfValues(out), nil
	})

	reg("startsWith", []string{"a", "b"}, func(a map[string]value.Value) (value.Value, error) {
		s1, err := wantString(a, "startsWith", "a")
		if err != nil {
			return nil, err
		}
		s2, err := wantString(a, "startsWith", "b")
		if err != nil {
			return nil, err
		}
		return value.Boolean(strings.HasPrefix(s1, s2)), nil
	})

	reg("endsWith", []string{"a", "b"}, func(a map[string]value.Value) (value.Value, error) {
		s1, err := wantString(a, "endsWith", "a")
		if err != nil {
			return nil, err
		}
		s2, err := wantString(a, "endsWith", "b")
		if err != nil {
			return nil, err
		}
		return value.Boolean(strings.HasSuffix(s1, s2)), nil
	})

	reg("stripChars", []string{"str", "chars"}, func(a map[string]value.Value) (value.Value, error) {
		s, err := wantString(a, "stripChars", "str")
		if err != nil {
			return nil, err
		}
		chars, err := wantString(a, "stripChars", "chars")
		if err != nil {
			return nil, err
		}
		return value.String(strings.Trim(s, chars)), nil
	})

	reg("lstripChars", []string{"str", "chars"}, func(a map[string]value.Value) (value.Value, error) {
		s, err := wantString(a, "lstripChars", "str")
		if err != nil {
			return nil, err
		}
		chars, err := wantString(a, "lstripChars", "chars")
		if err != nil {
			return nil, err
		}
		return value.String(strings.TrimLeft(s, chars)), nil
	})

	reg("rstripChars", []string{"str", "chars"}, func(a map[string]value.Value) (value.Value, error) {
		s, err := wantString(a, "rstripChars", "str")
		if err != nil {
			return nil, err
		}
		chars, err := wantString(a, "rstripChars", "chars")
		if err != nil {
			return nil, err
		}
		return value.String(strings.TrimRight(s, chars)), nil
	})

	reg("split", []string{"str", "c"}, func(a map[string]value.Value) (value.Value, error) {
		return splitImpl(a, -1)
	})
	reg("splitLimit", []string{"str", "c", "maxsplits"}, func(a map[string]value.Value) (value.Value, error) {
		n, err := wantNumber(a, "splitLimit", "maxsplits")
		if err != nil {
			return nil, err
		}
		limit := int(n)
		if limit < 0 {
			limit = -1
		} else {
			limit++
		}
		return splitImpl(a, limit)
	})
	reg("splitLimitR", []string{"str", "c", "maxsplits"}, func(a map[string]value.Value) (value.Value, error) {
		s, err := wantString(a, "splitLimitR", "str")
		if err != nil {
			return nil, err
		}
		c, err := wantString(a, "splitLimitR", "c")
		if err != nil {
			return nil, err
		}
		n, err := wantNumber(a, "splitLimitR", "maxsplits")
		if err != nil {
			return nil, err
		}
		limit := int(n)
		var parts []string
		if limit < 0 {
			parts = strings.Split(s, c)
		} else {
			parts = rsplitN(s, c, limit+1)
		}
		return stringArray(parts), nil
	})

	reg("strReplace", []string{"str", "from", "to"}, func(a map[string]value.Value) (value.Value, error) {
		s, err := wantString(a, "strReplace", "str")
		if err != nil {
			return nil, err
		}
		from, err := wantString(a, "strReplace", "from")
		if err != nil {
			return nil, err
		}
		to, err := wantString(a, "strReplace", "to")
		if err != nil {
			return nil, err
		}
		return value.String(strings.ReplaceAll(s, from, to)), nil
	})

	reg("isEmpty", []string{"str"}, func(a map[string]value.Value) (value.Value, error) {
		s, err := wantString(a, "isEmpty", "str")
		if err != nil {
			return nil, err
		}
		return value.Boolean(s == ""), nil
	})

	reg("trim", []string{"str"}, func(a map[string]value.Value) (value.Value, error) {
		s, err := wantString(a, "trim", "str")
		if err != nil {
			return nil, err
		}
		return value.String(strings.TrimSpace(s)), nil
	})

	reg("equalsIgnoreCase", []string{"str1", "str2"}, func(a map[string]value.Value) (value.Value, error) {
		s1, err := wantString(a, "equalsIgnoreCase", "str1")
		if err != nil {
			return nil, err
		}
		s2, err := wantString(a, "equalsIgnoreCase", "str2")
		if err != nil {
			return nil, err
		}
		return value.Boolean(strings.EqualFold(s1, s2)), nil
	})

	reg("asciiUpper", []string{"str"}, func(a map[string]value.Value) (value.Value, error) {
		s, err := wantString(a, "asciiUpper", "str")
		if err != nil {
			return nil, err
		}
		return value.String(strings.ToUpper(s)), nil
	})

	reg("asciiLower", []string{"str"}, func(a map[string]value.Value) (value.Value, error) {
		s, err := wantString(a, "asciiLower", "str")
		if err != nil {
			return nil, err
		}
		return value.String(strings.ToLower(s)), nil
	})

	reg("stringChars", []string{"str"}, func(a map[string]value.Value) (value.Value, error) {
		s, err := wantString(a, "stringChars", "str")
		if err != nil {
			return nil, err
		}
		rs := []rune(s)
		vs := make([]value.Value, len(rs))
		for i, r := range rs {
			vs[i] = value.String(string(r))
		}
		return arrayOfValues(vs), nil
	})

	reg("format", []string{"str", "vals"}, func(a map[string]value.Value) (value.Value, error) {
		s, err := wantString(a, "format", "str")
		if err != nil {
			return nil, err
		}
		vals, ok := a["vals"]
		if !ok {
			vals = value.NewArray(nil)
		}
		return value.FormatString(s, vals)
	})

	reg("escapeStringJson", []string{"str"}, func(a map[string]value.Value) (value.Value, error) {
		s, err := wantString(a, "escapeStringJson", "str")
		if err != nil {
			return nil, err
		}
		return value.String(jsonEscape(s)), nil
	})
	reg("escapeStringPython", []string{"str"}, func(a map[string]value.Value) (value.Value, error) {
		s, err := wantString(a, "escapeStringPython", "str")
		if err != nil {
			return nil, err
		}
		return value.String(jsonEscape(s)), nil
	})

	reg("escapeStringBash", []string{"str"}, func(a map[string]value.Value) (value.Value, error) {
		s, err := wantString(a, "escapeStringBash", "str")
		if err != nil {
			return nil, err
		}
		return value.String("'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"), nil
	})

	reg("escapeStringDollars", []string{"str"}, func(a map[string]value.Value) (value.Value, error) {
		s, err := wantString(a, "escapeStringDollars", "str")
		if err != nil {
			return nil, err
		}
		return value.String(strings.ReplaceAll(s, "$", "$$")), nil
	})

	reg("escapeStringXml", []string{"str"}, func(a map[string]value.Value) (value.Value, error) {
		s, err := wantString(a, "escapeStringXml", "str")
		if err != nil {
			return nil, err
		}
		r := strings.NewReplacer(
			"<", "&lt;",
			">", "&gt;",
			"&", "&amp;",
			"\"", "&quot;",
			"'", "&apos;",
		)
		return value.String(r.Replace(s)), nil
	})
}

func splitImpl(a map[string]value.Value, limit int) (value.Value, error) {
	s, err := wantString(a, "split", "str")
	if err != nil {
		return nil, err
	}
	c, err := wantString(a, "split", "c")
	if err != nil {
		return nil, err
	}
	var parts []string
	if limit < 0 {
		parts = strings.Split(s, c)
	} else {
		parts = strings.SplitN(s, c, limit)
	}
	return stringArray(parts), nil
}

func rsplitN(s, sep string, n int) []string {
	if n < 0 {
		return strings.Split(s, sep)
	}
	all := strings.Split(s, sep)
	if n >= len(all) {
		return all
	}
	head := all[:len(all)-n+1]
	tail := all[len(all)-n+1:]
	out := make([]string, 0, n)
	out = append(out, strings.Join(head, sep))
	out = append(out, tail...)
	return out
}

func stringArray(parts []string) *value.Array {
	vs := make([]value.Value, len(parts))
	for i, p := range parts {
		vs[i] = value.String(p)
	}
	return arrayOfValues(vs)
}

func jsonEscape(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
