package stdlib

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/jsonnetlang/jsonnet/internal/value"
)

func registerHash(reg registerFunc) {
	reg("base64", []string{"input"}, func(a map[string]value.Value) (value.Value, error) {
		var data []byte
		switch v := a["input"].(type) {
		case value.String:
			data = []byte(string(v))
		case *value.Array:
			bs, err := bytesFromArray(v)
			if err != nil {
				return nil, err
			}
			data = bs
		default:
			return nil, fmt.Errorf("std.base64: input must be a string or array of byte codepoints")
		}
		return value.String(base64.StdEncoding.EncodeToString(data)), nil
	})

	reg("base64Decode", []string{"str"}, func(a map[string]value.Value) (value.Value, error) {
		s, err := wantString(a, "base64Decode", "str")
		if err != nil {
			return nil, err
		}
		data, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("std.base64Decode: %w", err)
		}
		return value.String(string(data)), nil
	})

	reg("base64DecodeBytes", []string{"str"}, func(a map[string]value.Value) (value.Value, error) {
		s, err := wantString(a, "base64DecodeBytes", "str")
		if err != nil {
			return nil, err
		}
		data, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("std.base64DecodeBytes: %w", err)
		}
		vs := make([]value.Value, len(data))
		for i, b := range data {
			vs[i] = value.Number(b)
		}
		return arrayOfValues(vs), nil
	})

	reg("md5", []string{"s"}, hashFn("md5", func(b []byte) []byte {
		sum := md5.Sum(b)
		return sum[:]
	}))
	reg("sha1", []string{"s"}, hashFn("sha1", func(b []byte) []byte {
		sum := sha1.Sum(b)
		return sum[:]
	}))
	reg("sha256", []string{"s"}, hashFn("sha256", func(b []byte) []byte {
		sum := sha256.Sum256(b)
		return sum[:]
	}))
	reg("sha512", []string{"s"}, hashFn("sha512", func(b []byte) []byte {
		sum := sha512.Sum512(b)
		return sum[:]
	}))
	reg("sha3", []string{"s"}, hashFn("sha3", func(b []byte) []byte {
		sum := sha3.Sum512(b)
		return sum[:]
	}))
}

func hashFn(name string, f func([]byte) []byte) func(map[string]value.Value) (value.Value, error) {
	return func(a map[string]value.Value) (value.Value, error) {
		s, err := wantString(a, name, "s")
		if err != nil {
			return nil, err
		}
		sum := f([]byte(s))
		return value.String(hex.EncodeToString(sum)), nil
	}
}

func bytesFromArray(arr *value.Array) ([]byte, error) {
	out := make([]byte, len(arr.Elements))
	for i, th := range arr.Elements {
		v, err := th.Force()
		if err != nil {
			return nil, err
		}
		n, ok := v.(value.Number)
		if !ok {
			return nil, fmt.Errorf("expected array of byte codepoints")
		}
		out[i] = byte(int64(n))
	}
	return out, nil
}
