// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package canon

import (
	"bytes"
	"encoding/json"

	"github.com/go-test/deep"
)

// Canonicalize re-parses a JSON document and re-emits it with object keys
// sorted and numeric formatting unified. Two documents that differ only
// in key order or number spelling ("25" vs "2.5e01") canonicalize to the
// same bytes; the "type" discriminator keeps Int and Float nodes distinct
// regardless.
func Canonicalize(data []byte) ([]byte, error) {
	v, err := decode(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

// Equal reports whether two JSON documents are structurally identical.
func Equal(a, b []byte) (bool, error) {
	ca, err := Canonicalize(a)
	if err != nil {
		return false, err
	}
	cb, err := Canonicalize(b)
	if err != nil {
		return false, err
	}
	return bytes.Equal(ca, cb), nil
}

// Diff reports the structural differences between two JSON documents as
// path-qualified lines, at most deep.MaxDiff of them (10 by default).
// Floats are compared to deep.FloatPrecision decimal places, so two
// documents that Equal reports as different can still yield an empty
// result.
func Diff(a, b []byte) ([]string, error) {
	va, err := decode(a)
	if err != nil {
		return nil, err
	}
	vb, err := decode(b)
	if err != nil {
		return nil, err
	}
	return deep.Equal(va, vb), nil
}

// decode parses into generic values with numbers normalized. Decoding
// uses encoding/json, which rejects documents nested more than 10000
// levels deep.
func decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return normalizeNumbers(v), nil
}

// normalizeNumbers converts json.Number tokens to int64 when integral and
// float64 otherwise, so "25", "25.0", and "2.5e01" all re-emit the same
// way on both sides of a comparison.
func normalizeNumbers(v any) any {
	switch v := v.(type) {
	case map[string]any:
		for k, e := range v {
			v[k] = normalizeNumbers(e)
		}
		return v
	case []any:
		for i, e := range v {
			v[i] = normalizeNumbers(e)
		}
		return v
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	default:
		return v
	}
}
