package value

import (
	"fmt"
	"strings"
)

// FormatString implements the `%` string-format operator (and std.format):
// a printf-style format string applied to a single value, an array of
// positional arguments, or an object of named arguments for the `%(name)s`
// form.
func FormatString(format string, arg Value) (Value, error) {
	var positional []Value
	var named *Object
	switch a := arg.(type) {
	case *Array:
		for _, th := range a.Elements {
			v, err := th.Force()
			if err != nil {
				return nil, err
			}
			positional = append(positional, v)
		}
	case *Object:
		named = a
	default:
		positional = []Value{a}
	}

	var out strings.Builder
	argIdx := 0
	nextArg := func() (Value, error) {
		if argIdx >= len(positional) {
			return nil, fmt.Errorf("not enough values to format")
		}
		v := positional[argIdx]
		argIdx++
		return v, nil
	}

	runes := []rune(format)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		if c != '%' {
			out.WriteRune(c)
			continue
		}
		i++
		if i >= len(runes) {
			return nil, fmt.Errorf("trailing %% in format string")
		}
		if runes[i] == '%' {
			out.WriteByte('%')
			continue
		}

		var argVal Value
		var err error
		if runes[i] == '(' {
			end := i + 1
			for end < len(runes) && runes[end] != ')' {
				end++
			}
			if end >= len(runes) {
				return nil, fmt.Errorf("unterminated %%( in format string")
			}
			name := string(runes[i+1 : end])
			if named == nil {
				return nil, fmt.Errorf("%%(%s) requires an object argument", name)
			}
			argVal, err = named.Get(name, named)
			if err != nil {
				return nil, err
			}
			i = end
		}

		spec := "%"
		for i+1 < len(runes) && strings.ContainsRune("-+0 #", runes[i+1]) {
			i++
			spec += string(runes[i])
		}
		for i+1 < len(runes) && runes[i+1] >= '0' && runes[i+1] <= '9' {
			i++
			spec += string(runes[i])
		}
		if i+1 < len(runes) && runes[i+1] == '.' {
			i++
			spec += "."
			for i+1 < len(runes) && runes[i+1] >= '0' && runes[i+1] <= '9' {
				i++
				spec += string(runes[i])
			}
		}
		if i+1 >= len(runes) {
			return nil, fmt.Errorf("incomplete format directive")
		}
		i++
		verb := runes[i]

		if argVal == nil {
			argVal, err = nextArg()
			if err != nil {
				return nil, err
			}
		}

		rendered, err := formatOne(spec, verb, argVal)
		if err != nil {
			return nil, err
		}
		out.WriteString(rendered)
	}
	return String(out.String()), nil
}

func formatOne(spec string, verb rune, v Value) (string, error) {
	switch verb {
	case 'd', 'i':
		n, ok := v.(Number)
		if !ok {
			return "", fmt.Errorf("%%d requires a number")
		}
		return fmt.Sprintf(spec+"d", int64(n)), nil
	case 'o':
		n, ok := v.(Number)
		if !ok {
			return "", fmt.Errorf("%%o requires a number")
		}
		return fmt.Sprintf(spec+"o", int64(n)), nil
	case 'x':
		n, ok := v.(Number)
		if !ok {
			return "", fmt.Errorf("%%x requires a number")
		}
		return fmt.Sprintf(spec+"x", int64(n)), nil
	case 'X':
		n, ok := v.(Number)
		if !ok {
			return "", fmt.Errorf("%%X requires a number")
		}
		return fmt.Sprintf(spec+"X", int64(n)), nil
	case 'e', 'E', 'f', 'F', 'g', 'G':
		n, ok := v.(Number)
		if !ok {
			return "", fmt.Errorf("%%%c requires a number", verb)
		}
		return fmt.Sprintf(spec+string(verb), float64(n)), nil
	case 'c':
		switch t := v.(type) {
		case Number:
			return string(rune(int64(t))), nil
		case String:
			return string(t), nil
		default:
			return "", fmt.Errorf("%%c requires a number or single-character string")
		}
	case 's':
		s, err := ToString(v)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(spec+"s", s), nil
	default:
		return "", fmt.Errorf("unrecognized format verb: %c", verb)
	}
}
