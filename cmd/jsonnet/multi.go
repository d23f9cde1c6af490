package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/jsonnetlang/jsonnet/internal/manifest"
	"github.com/jsonnetlang/jsonnet/internal/value"
)

var errMultiNotObject = errors.New("-m/--multi requires the top-level value to be an object")

func writeManifestFile(path, text string) error {
	return os.WriteFile(path, []byte(text+"\n"), 0o644)
}

// asRawString returns v's contents unquoted when v is a Jsonnet string,
// backing the -S/--string flag.
func asRawString(v value.Value) (string, bool) {
	s, ok := v.(value.String)
	if !ok {
		return "", false
	}
	return string(s), true
}

// writeMulti implements -m/--multi DIR: v must be an object, and each
// visible field is manifested to its own file under dir named by the key.
func writeMulti(v value.Value, dir, indent string, ensureASCII bool) error {
	obj, ok := v.(*value.Object)
	if !ok {
		return errMultiNotObject
	}
	if err := ensureDir(dir); err != nil {
		return err
	}
	for _, key := range obj.VisibleKeys() {
		fv, err := obj.Get(key, obj)
		if err != nil {
			return err
		}
		text, err := manifest.JSON(fv, manifest.Options{Indent: indent, EnsureASCII: ensureASCII})
		if err != nil {
			return err
		}
		if err := writeManifestFile(filepath.Join(dir, key), text); err != nil {
			return err
		}
	}
	return nil
}
