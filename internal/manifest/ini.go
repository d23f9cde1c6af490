package manifest

import (
	"fmt"
	"strings"

	"github.com/jsonnetlang/jsonnet/internal/value"
)

// INI renders std.manifestIni's input convention: an object with an
// optional "main" object of top-level key/value pairs and an optional
// "sections" object mapping section names to key/value objects. Array
// values repeat the key once per element, the common convention for
// multi-valued INI keys.
func INI(obj *value.Object) (string, error) {
	var b strings.Builder

	if obj.Has("main") {
		mainVal, err := obj.Get("main", obj)
		if err != nil {
			return "", err
		}
		mainObj, ok := mainVal.(*value.Object)
		if !ok {
			return "", fmt.Errorf("manifestIni: main must be an object")
		}
		if err := writeINIFields(&b, mainObj); err != nil {
			return "", err
		}
	}

	if obj.Has("sections") {
		sectionsVal, err := obj.Get("sections", obj)
		if err != nil {
			return "", err
		}
		sections, ok := sectionsVal.(*value.Object)
		if !ok {
			return "", fmt.Errorf("manifestIni: sections must be an object")
		}
		for _, name := range sections.VisibleKeys() {
			sv, err := sections.Get(name, sections)
			if err != nil {
				return "", err
			}
			sobj, ok := sv.(*value.Object)
			if !ok {
				return "", fmt.Errorf("manifestIni: section %s must be an object", name)
			}
			fmt.Fprintf(&b, "[%s]\n", name)
			if err := writeINIFields(&b, sobj); err != nil {
				return "", err
			}
		}
	}

	return b.String(), nil
}

func writeINIFields(b *strings.Builder, obj *value.Object) error {
	for _, k := range obj.VisibleKeys() {
		v, err := obj.Get(k, obj)
		if err != nil {
			return err
		}
		if arr, ok := v.(*value.Array); ok {
			for _, el := range arr.Elements {
				ev, err := el.Force()
				if err != nil {
					return err
				}
				s, err := value.ToString(ev)
				if err != nil {
					return err
				}
				fmt.Fprintf(b, "%s = %s\n", k, s)
			}
			continue
		}
		s, err := value.ToString(v)
		if err != nil {
			return err
		}
		fmt.Fprintf(b, "%s = %s\n", k, s)
	}
	return nil
}
