package stdlib

import (
	"github.com/jsonnetlang/jsonnet/internal/manifest"
	"github.com/jsonnetlang/jsonnet/internal/value"
)

func registerManifest(reg registerFunc) {
	reg("manifestJson", []string{"v"}, func(a map[string]value.Value) (value.Value, error) {
		s, err := manifest.JSON(a["v"], manifest.Options{Indent: "    "})
		if err != nil {
			return nil, err
		}
		return value.String(s), nil
	})

	reg("manifestJsonMinified", []string{"v"}, func(a map[string]value.Value) (value.Value, error) {
		s, err := manifest.JSON(a["v"], manifest.Options{})
		if err != nil {
			return nil, err
		}
		return value.String(s), nil
	})

	reg("manifestJsonEx", []string{"value", "indent", "newline", "key_val_sep"}, func(a map[string]value.Value) (value.Value, error) {
		indent, err := wantString(a, "manifestJsonEx", "indent")
		if err != nil {
			return nil, err
		}
		s, err := manifest.JSON(a["value"], manifest.Options{Indent: indent})
		if err != nil {
			return nil, err
		}
		return value.String(s), nil
	})

	reg("manifestPython", []string{"v"}, func(a map[string]value.Value) (value.Value, error) {
		s, err := manifest.Python(a["v"])
		if err != nil {
			return nil, err
		}
		return value.String(s), nil
	})

	reg("manifestPythonVars", []string{"conf"}, func(a map[string]value.Value) (value.Value, error) {
		obj, err := wantObject(a, "manifestPythonVars", "conf")
		if err != nil {
			return nil, err
		}
		s, err := manifest.PythonVars(obj)
		if err != nil {
			return nil, err
		}
		return value.String(s), nil
	})

	reg("manifestIni", []string{"ini"}, func(a map[string]value.Value) (value.Value, error) {
		obj, err := wantObject(a, "manifestIni", "ini")
		if err != nil {
			return nil, err
		}
		s, err := manifest.INI(obj)
		if err != nil {
			return nil, err
		}
		return value.String(s), nil
	})
}
