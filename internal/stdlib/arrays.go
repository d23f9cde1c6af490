package stdlib

import (
	"fmt"

	"github.com/jsonnetlang/jsonnet/internal/value"
)

func registerArrays(reg registerFunc) {
	reg("makeArray", []string{"sz", "func"}, func(a map[string]value.Value) (value.Value, error) {
		sz, err := wantNumber(a, "makeArray", "sz")
		if err != nil {
			return nil, err
		}
		f, err := wantFunction(a, "makeArray", "func")
		if err != nil {
			return nil, err
		}
		n := int(sz)
		elems := make([]*value.Thunk, n)
		for i := 0; i < n; i++ {
			i := i
			elems[i] = value.NewThunk(func() (value.Value, error) {
				return callFn(f, value.Number(i))
			})
		}
		return value.NewArray(elems), nil
	})

	reg("slice", []string{"indexable", "index", "end", "step"}, func(a map[string]value.Value) (value.Value, error) {
		arr, err := wantArray(a, "slice", "indexable")
		if err != nil {
			return nil, err
		}
		begin, end, step, err := sliceBounds(a, len(arr.Elements))
		if err != nil {
			return nil, err
		}
		var out []*value.Thunk
		for i := begin; i < end; i += step {
			out = append(out, arr.Elements[i])
		}
		return value.NewArray(out), nil
	})

	reg("range", []string{"from", "to"}, func(a map[string]value.Value) (value.Value, error) {
		from, err := wantNumber(a, "range", "from")
		if err != nil {
			return nil, err
		}
		to, err := wantNumber(a, "range", "to")
		if err != nil {
			return nil, err
		}
		var vs []value.Value
		for i := int(from); i <= int(to); i++ {
			vs = append(vs, value.Number(i))
		}
		return arrayOfValues(vs), nil
	})

	reg("repeat", []string{"what", "count"}, func(a map[string]value.Value) (value.Value, error) {
		count, err := wantNumber(a, "repeat", "count")
		if err != nil {
			return nil, err
		}
		n := int(count)
		switch w := a["what"].(type) {
		case *value.Array:
			var out []*value.Thunk
			for i := 0; i < n; i++ {
				out = append(out, w.Elements...)
			}
			return value.NewArray(out), nil
		case value.String:
			s := ""
			for i := 0; i < n; i++ {
				s += string(w)
			}
			return value.String(s), nil
		default:
			return nil, fmt.Errorf("std.repeat: what must be an array or string, got %s", w.Kind())
		}
	})

	reg("map", []string{"func", "arr"}, func(a map[string]value.Value) (value.Value, error) {
		f, err := wantFunction(a, "map", "func")
		if err != nil {
			return nil, err
		}
		arr, err := wantArray(a, "map", "arr")
		if err != nil {
			return nil, err
		}
		out := make([]*value.Thunk, len(arr.Elements))
		for i, el := range arr.Elements {
			el := el
			out[i] = value.NewThunk(func() (value.Value, error) {
				v, err := el.Force()
				if err != nil {
					return nil, err
				}
				return callFn(f, v)
			})
		}
		return value.NewArray(out), nil
	})

	reg("mapWithIndex", []string{"func", "arr"}, func(a map[string]value.Value) (value.Value, error) {
		f, err := wantFunction(a, "mapWithIndex", "func")
		if err != nil {
			return nil, err
		}
		arr, err := wantArray(a, "mapWithIndex", "arr")
		if err != nil {
			return nil, err
		}
		out := make([]*value.Thunk, len(arr.Elements))
		for i, el := range arr.Elements {
			i, el := i, el
			out[i] = value.NewThunk(func() (value.Value, error) {
				v, err := el.Force()
				if err != nil {
					return nil, err
				}
				return callFn(f, value.Number(i), v)
			})
		}
		return value.NewArray(out), nil
	})

	reg("filter", []string{"func", "arr"}, func(a map[string]value.Value) (value.Value, error) {
		f, err := wantFunction(a, "filter", "func")
		if err != nil {
			return nil, err
		}
		arr, err := wantArray(a, "filter", "arr")
		if err != nil {
			return nil, err
		}
		var out []*value.Thunk
		for _, el := range arr.Elements {
			v, err := el.Force()
			if err != nil {
				return nil, err
			}
			keep, err := callFn(f, v)
			if err != nil {
				return nil, err
			}
			kb, ok := keep.(value.Boolean)
			if !ok {
				return nil, fmt.Errorf("std.filter: function must return a boolean")
			}
			if bool(kb) {
				out = append(out, el)
			}
		}
		return value.NewArray(out), nil
	})

	reg("filterMap", []string{"filter_func", "map_func", "arr"}, func(a map[string]value.Value) (value.Value, error) {
		ff, err := wantFunction(a, "filterMap", "filter_func")
		if err != nil {
			return nil, err
		}
		mf, err := wantFunction(a, "filterMap", "map_func")
		if err != nil {
			return nil, err
		}
		arr, err := wantArray(a, "filterMap", "arr")
		if err != nil {
			return nil, err
		}
		var out []value.Value
		for _, el := range arr.Elements {
			v, err := el.Force()
			if err != nil {
				return nil, err
			}
			keep, err := callFn(ff, v)
			if err != nil {
				return nil, err
			}
			kb, ok := keep.(value.Boolean)
			if !ok {
				return nil, fmt.Errorf("std.filterMap: filter_func must return a boolean")
			}
			if !bool(kb) {
				continue
			}
			mv, err := callFn(mf, v)
			if err != nil {
				return nil, err
			}
			out = append(out, mv)
		}
		return arrayOfValues(out), nil
	})

	reg("flatMap", []string{"func", "arr"}, func(a map[string]value.Value) (value.Value, error) {
		f, err := wantFunction(a, "flatMap", "func")
		if err != nil {
			return nil, err
		}
		arr, err := wantArray(a, "flatMap", "arr")
		if err != nil {
			return nil, err
		}
		var out []*value.Thunk
		for _, el := range arr.Elements {
			v, err := el.Force()
			if err != nil {
				return nil, err
			}
			rv, err := callFn(f, v)
			if err != nil {
				return nil, err
			}
			ra, ok := rv.(*value.Array)
			if !ok {
				return nil, fmt.Errorf("std.flatMap: func must return an array")
			}
			out = append(out, ra.Elements...)
		}
		return value.NewArray(out), nil
	})

	reg("foldl", []string{"func", "arr", "init"}, func(a map[string]value.Value) (value.Value, error) {
		f, err := wantFunction(a, "foldl", "func")
		if err != nil {
			return nil, err
		}
		arr, err := wantArray(a, "foldl", "arr")
		if err != nil {
			return nil, err
		}
		acc := a["init"]
		for _, el := range arr.Elements {
			v, err := el.Force()
			if err != nil {
				return nil, err
			}
			acc, err = callFn(f, acc, v)
			if err != nil {
				return nil, err
			}
		}
		return acc, nil
	})

	reg("foldr", []string{"func", "arr", "init"}, func(a map[string]value.Value) (value.Value, error) {
		f, err := wantFunction(a, "foldr", "func")
		if err != nil {
			return nil, err
		}
		arr, err := wantArray(a, "foldr", "arr")
		if err != nil {
			return nil, err
		}
		acc := a["init"]
		for i := len(arr.Elements) - 1; i >= 0; i-- {
			v, err := arr.Elements[i].Force()
			if err != nil {
				return nil, err
			}
			acc, err = callFn(f, v, acc)
			if err != nil {
				return nil, err
			}
		}
		return acc, nil
	})

	reg("member", []string{"arr", "x"}, func(a map[string]value.Value) (value.Value, error) {
		x := a["x"]
		switch container := a["arr"].(type) {
		case *value.Array:
			for _, el := range container.Elements {
				v, err := el.Force()
				if err != nil {
					return nil, err
				}
				eq, err := value.DeepEqual(v, x)
				if err != nil {
					return nil, err
				}
				if eq {
					return value.Boolean(true), nil
				}
			}
			return value.Boolean(false), nil
		case value.String:
			xs, ok := x.(value.String)
			if !ok {
				return nil, fmt.Errorf("std.member: x must be a string when arr is a string")
			}
			return value.Boolean(indexOfRune(string(container), string(xs)) >= 0), nil
		default:
			return nil, fmt.Errorf("std.member: arr must be an array or string, got %s", container.Kind())
		}
	})

	reg("count", []string{"arr", "x"}, func(a map[string]value.Value) (value.Value, error) {
		arr, err := wantArray(a, "count", "arr")
		if err != nil {
			return nil, err
		}
		x := a["x"]
		n := 0
		for _, el := range arr.Elements {
			v, err := el.Force()
			if err != nil {
				return nil, err
			}
			eq, err := value.DeepEqual(v, x)
			if err != nil {
				return nil, err
			}
			if eq {
				n++
			}
		}
		return value.Number(n), nil
	})

	reg("find", []string{"value", "arr"}, func(a map[string]value.Value) (value.Value, error) {
		arr, err := wantArray(a, "find", "arr")
		if err != nil {
			return nil, err
		}
		x := a["value"]
		var out []value.Value
		for i, el := range arr.Elements {
			v, err := el.Force()
			if err != nil {
				return nil, err
			}
			eq, err := value.DeepEqual(v, x)
			if err != nil {
				return nil, err
			}
			if eq {
				out = append(out, value.Number(i))
			}
		}
		return arrayOfValues(out), nil
	})

	reg("join", []string{"sep", "arr"}, func(a map[string]value.Value) (value.Value, error) {
		arr, err := wantArray(a, "join", "arr")
		if err != nil {
			return nil, err
		}
		switch sep := a["sep"].(type) {
		case value.String:
			var parts []string
			for _, el := range arr.Elements {
				v, err := el.Force()
				if err != nil {
					return nil, err
				}
				if _, isNull := v.(value.Null); isNull {
					continue
				}
				s, ok := v.(value.String)
				if !ok {
					return nil, fmt.Errorf("std.join: arr elements must be strings")
				}
				parts = append(parts, string(s))
			}
			out := ""
			for i, p := range parts {
				if i > 0 {
					out += string(sep)
				}
				out += p
			}
			return value.String(out), nil
		case *value.Array:
			var out []*value.Thunk
			first := true
			for _, el := range arr.Elements {
				v, err := el.Force()
				if err != nil {
					return nil, err
				}
				if _, isNull := v.(value.Null); isNull {
					continue
				}
				sub, ok := v.(*value.Array)
				if !ok {
					return nil, fmt.Errorf("std.join: arr elements must be arrays")
				}
				if !first {
					out = append(out, sep.Elements...)
				}
				out = append(out, sub.Elements...)
				first = false
			}
			return value.NewArray(out), nil
		default:
			return nil, fmt.Errorf("std.join: sep must be a string or array, got %s", sep.Kind())
		}
	})

	reg("lines", []string{"arr"}, func(a map[string]value.Value) (value.Value, error) {
		arr, err := wantArray(a, "lines", "arr")
		if err != nil {
			return nil, err
		}
		out := ""
		for _, el := range arr.Elements {
			v, err := el.Force()
			if err != nil {
				return nil, err
			}
			s, err := value.ToString(v)
			if err != nil {
				return nil, err
			}
			out += s + "\n"
		}
		return value.String(out), nil
	})

	reg("flattenArrays", []string{"arrs"}, func(a map[string]value.Value) (value.Value, error) {
		arrs, err := wantArray(a, "flattenArrays", "arrs")
		if err != nil {
			return nil, err
		}
		var out []*value.Thunk
		for _, el := range arrs.Elements {
			v, err := el.Force()
			if err != nil {
				return nil, err
			}
			sub, ok := v.(*value.Array)
			if !ok {
				return nil, fmt.Errorf("std.flattenArrays: elements must be arrays")
			}
			out = append(out, sub.Elements...)
		}
		return value.NewArray(out), nil
	})

	reg("reverse", []string{"arr"}, func(a map[string]value.Value) (value.Value, error) {
		arr, err := wantArray(a, "reverse", "arr")
		if err != nil {
			return nil, err
		}
		n := len(arr.Elements)
		out := make([]*value.Thunk, n)
		for i, el := range arr.Elements {
			out[n-1-i] = el
		}
		return value.NewArray(out), nil
	})

	reg("sort", []string{"arr", "keyF"}, sortImpl)
	reg("uniq", []string{"arr", "keyF"}, uniqImpl)

	reg("set", []string{"arr", "keyF"}, func(a map[string]value.Value) (value.Value, error) {
		sorted, err := sortImpl(a)
		if err != nil {
			return nil, err
		}
		return uniqImpl(map[string]value.Value{"arr": sorted, "keyF": a["keyF"]})
	})

	reg("setMember", []string{"x", "arr", "keyF"}, func(a map[string]value.Value) (value.Value, error) {
		arr, err := wantArray(a, "setMember", "arr")
		if err != nil {
			return nil, err
		}
		x := a["x"]
		for _, el := range arr.Elements {
			v, err := el.Force()
			if err != nil {
				return nil, err
			}
			eq, err := value.DeepEqual(v, x)
			if err != nil {
				return nil, err
			}
			if eq {
				return value.Boolean(true), nil
			}
		}
		return value.Boolean(false), nil
	})

	reg("setUnion", []string{"a", "b", "keyF"}, func(a map[string]value.Value) (value.Value, error) {
		aa, err := wantArray(a, "setUnion", "a")
		if err != nil {
			return nil, err
		}
		ba, err := wantArray(a, "setUnion", "b")
		if err != nil {
			return nil, err
		}
		combined := append(append([]*value.Thunk(nil), aa.Elements...), ba.Elements...)
		sorted, err := sortImpl(map[string]value.Value{"arr": value.NewArray(combined), "keyF": a["keyF"]})
		if err != nil {
			return nil, err
		}
		return uniqImpl(map[string]value.Value{"arr": sorted, "keyF": a["keyF"]})
	})

	reg("setInter", []string{"a", "b", "keyF"}, func(a map[string]value.Value) (value.Value, error) {
		aa, err := wantArray(a, "setInter", "a")
		if err != nil {
			return nil, err
		}
		ba, err := wantArray(a, "setInter", "b")
		if err != nil {
			return nil, err
		}
		bvals, err := forceAll(ba)
		if err != nil {
			return nil, err
		}
		var out []value.Value
		for _, el := range aa.Elements {
			v, err := el.Force()
			if err != nil {
				return nil, err
			}
			for _, bv := range bvals {
				eq, err := value.DeepEqual(v, bv)
				if err != nil {
					return nil, err
				}
				if eq {
					out = append(out, v)
					break
				}
			}
		}
		return arrayOfValues(out), nil
	})

	reg("setDiff", []string{"a", "b", "keyF"}, func(a map[string]value.Value) (value.Value, error) {
		aa, err := wantArray(a, "setDiff", "a")
		if err != nil {
			return nil, err
		}
		ba, err := wantArray(a, "setDiff", "b")
		if err != nil {
			return nil, err
		}
		bvals, err := forceAll(ba)
		if err != nil {
			return nil, err
		}
		var out []value.Value
		for _, el := range aa.Elements {
			v, err := el.Force()
			if err != nil {
				return nil, err
			}
			found := false
			for _, bv := range bvals {
				eq, err := value.DeepEqual(v, bv)
				if err != nil {
					return nil, err
				}
				if eq {
					found = true
					break
				}
			}
			if !found {
				out = append(out, v)
			}
		}
		return arrayOfValues(out), nil
	})

	reg("all", []string{"arr"}, func(a map[string]value.Value) (value.Value, error) {
		arr, err := wantArray(a, "all", "arr")
		if err != nil {
			return nil, err
		}
		for _, el := range arr.Elements {
			v, err := el.Force()
			if err != nil {
				return nil, err
			}
			b, ok := v.(value.Boolean)
			if !ok {
				return nil, fmt.Errorf("std.all: elements must be booleans")
			}
			if !bool(b) {
				return value.Boolean(false), nil
			}
		}
		return value.Boolean(true), nil
	})

	reg("any", []string{"arr"}, func(a map[string]value.Value) (value.Value, error) {
		arr, err := wantArray(a, "any", "arr")
		if err != nil {
			return nil, err
		}
		for _, el := range arr.Elements {
			v, err := el.Force()
			if err != nil {
				return nil, err
			}
			b, ok := v.(value.Boolean)
			if !ok {
				return nil, fmt.Errorf("std.any: elements must be booleans")
			}
			if bool(b) {
				return value.Boolean(true), nil
			}
		}
		return value.Boolean(false), nil
	})

	reg("sum", []string{"arr"}, func(a map[string]value.Value) (value.Value, error) {
		arr, err := wantArray(a, "sum", "arr")
		if err != nil {
			return nil, err
		}
		total := 0.0
		for _, el := range arr.Elements {
			v, err := el.Force()
			if err != nil {
				return nil, err
			}
			n, ok := v.(value.Number)
			if !ok {
				return nil, fmt.Errorf("std.sum: elements must be numbers")
			}
			total += float64(n)
		}
		return value.Number(total), nil
	})

	reg("avg", []string{"arr"}, func(a map[string]value.Value) (value.Value, error) {
		arr, err := wantArray(a, "avg", "arr")
		if err != nil {
			return nil, err
		}
		if len(arr.Elements) == 0 {
			return nil, fmt.Errorf("std.avg: arr must not be empty")
		}
		total := 0.0
		for _, el := range arr.Elements {
			v, err := el.Force()
			if err != nil {
				return nil, err
			}
			n, ok := v.(value.Number)
			if !ok {
				return nil, fmt.Errorf("std.avg: elements must be numbers")
			}
			total += float64(n)
		}
		return value.Number(total / float64(len(arr.Elements))), nil
	})

	reg("contains", []string{"arr", "elem"}, func(a map[string]value.Value) (value.Value, error) {
		arr, err := wantArray(a, "contains", "arr")
		if err != nil {
			return nil, err
		}
		x := a["elem"]
		for _, el := range arr.Elements {
			v, err := el.Force()
			if err != nil {
				return nil, err
			}
			eq, err := value.DeepEqual(v, x)
			if err != nil {
				return nil, err
			}
			if eq {
				return value.Boolean(true), nil
			}
		}
		return value.Boolean(false), nil
	})

	reg("remove", []string{"arr", "elem"}, func(a map[string]value.Value) (value.Value, error) {
		arr, err := wantArray(a, "remove", "arr")
		if err != nil {
			return nil, err
		}
		x := a["elem"]
		var out []*value.Thunk
		removed := false
		for _, el := range arr.Elements {
			if !removed {
				v, err := el.Force()
				if err != nil {
					return nil, err
				}
				eq, err := value.DeepEqual(v, x)
				if err != nil {
					return nil, err
				}
				if eq {
					removed = true
					continue
				}
			}
			out = append(out, el)
		}
		return value.NewArray(out), nil
	})

	reg("removeAt", []string{"arr", "idx"}, func(a map[string]value.Value) (value.Value, error) {
		arr, err := wantArray(a, "removeAt", "arr")
		if err != nil {
			return nil, err
		}
		idx, err := wantNumber(a, "removeAt", "idx")
		if err != nil {
			return nil, err
		}
		i := int(idx)
		if i < 0 || i >= len(arr.Elements) {
			return nil, fmt.Errorf("std.removeAt: index out of bounds")
		}
		out := make([]*value.Thunk, 0, len(arr.Elements)-1)
		out = append(out, arr.Elements[:i]...)
		out = append(out, arr.Elements[i+1:]...)
		return value.NewArray(out), nil
	})

	reg("flattenDeepArray", []string{"value"}, func(a map[string]value.Value) (value.Value, error) {
		var out []value.Value
		if err := flattenDeep(a["value"], &out); err != nil {
			return nil, err
		}
		return arrayOfValues(out), nil
	})
}

func flattenDeep(v value.Value, out *[]value.Value) error {
	arr, ok := v.(*value.Array)
	if !ok {
		*out = append(*out, v)
		return nil
	}
	for _, el := range arr.Elements {
		ev, err := el.Force()
		if err != nil {
			return err
		}
		if err := flattenDeep(ev, out); err != nil {
			return err
		}
	}
	return nil
}

func sortKeyOf(keyF value.Value, v value.Value) (value.Value, error) {
	f, ok := keyF.(*value.Function)
	if !ok {
		return v, nil
	}
	return callFn(f, v)
}

func sortImpl(a map[string]value.Value) (value.Value, error) {
	arr, err := wantArray(a, "sort", "arr")
	if err != nil {
		return nil, err
	}
	vals, err := forceAll(arr)
	if err != nil {
		return nil, err
	}
	keys := make([]value.Value, len(vals))
	for i, v := range vals {
		k, err := sortKeyOf(a["keyF"], v)
		if err != nil {
			return nil, err
		}
		keys[i] = k
	}
	idx := make([]int, len(vals))
	for i := range idx {
		idx[i] = i
	}
	var sortErr error
	insertionSort(idx, func(i, j int) bool {
		c, err := value.Compare(keys[i], keys[j])
		if err != nil {
			sortErr = err
			return false
		}
		return c < 0
	})
	if sortErr != nil {
		return nil, sortErr
	}
	out := make([]value.Value, len(vals))
	for i, id := range idx {
		out[i] = vals[id]
	}
	return arrayOfValues(out), nil
}

func uniqImpl(a map[string]value.Value) (value.Value, error) {
	arr, err := wantArray(a, "uniq", "arr")
	if err != nil {
		return nil, err
	}
	vals, err := forceAll(arr)
	if err != nil {
		return nil, err
	}
	var out []value.Value
	for i, v := range vals {
		k, err := sortKeyOf(a["keyF"], v)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			out = append(out, v)
			continue
		}
		prevKey, err := sortKeyOf(a["keyF"], vals[i-1])
		if err != nil {
			return nil, err
		}
		eq, err := value.DeepEqual(k, prevKey)
		if err != nil {
			return nil, err
		}
		if !eq {
			out = append(out, v)
		}
	}
	return arrayOfValues(out), nil
}

// insertionSort avoids pulling in sort.Slice's reflection-based swapper for
// a comparator that can itself fail (sort.Slice has no way to report that).
func insertionSort(idx []int, less func(i, j int) bool) {
	for i := 1; i < len(idx); i++ {
		for j := i; j > 0 && less(idx[j], idx[j-1]); j-- {
			idx[j], idx[j-1] = idx[j-1], idx[j]
		}
	}
}

func sliceBounds(a map[string]value.Value, length int) (begin, end, step int, err error) {
	begin = 0
	end = length
	step = 1
	if v, ok := a["index"]; ok {
		if _, isNull := v.(value.Null); !isNull {
			n, ok := v.(value.Number)
			if !ok {
				return 0, 0, 0, fmt.Errorf("std.slice: index must be a number or null")
			}
			begin = int(n)
		}
	}
	if v, ok := a["end"]; ok {
		if _, isNull := v.(value.Null); !isNull {
			n, ok := v.(value.Number)
			if !ok {
				return 0, 0, 0, fmt.Errorf("std.slice: end must be a number or null")
			}
			end = int(n)
		}
	}
	if v, ok := a["step"]; ok {
		if _, isNull := v.(value.Null); !isNull {
			n, ok := v.(value.Number)
			if !ok {
				return 0, 0, 0, fmt.Errorf("std.slice: step must be a number or null")
			}
			step = int(n)
		}
	}
	if begin < 0 {
		begin = 0
	}
	if end > length {
		end = length
	}
	if step <= 0 {
		step = 1
	}
	if begin > end {
		begin = end
	}
	return begin, end, step, nil
}

func indexOfRune(s, sub string) int {
	rs := []rune(s)
	subRunes := []rune(sub)
	if len(subRunes) == 0 {
		return -1
	}
	for i := range rs {
		if i+len(subRunes) > len(rs) {
			break
		}
		match := true
		for j, r := range subRunes {
			if rs[i+j] != r {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
