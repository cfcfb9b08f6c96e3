// Package fieldtype parses the compact type-string grammar used by table
// definitions and checks runtime values against it. The grammar is
// `base ('[]')? (' | null')?` with base one of string, number, boolean.
// Descriptors produced here are the shared vocabulary of the name resolver
// and the coercion matrix.
package fieldtype

import (
	"fmt"
	"strings"
)

// Base is the scalar family of a type string.
type Base string

const (
	String  Base = "string"
	Number  Base = "number"
	Boolean Base = "boolean"
)

// Descriptor is the parsed form of a type string.
type Descriptor struct {
	Base     Base
	Array    bool
	Nullable bool
}

// String renders the descriptor back into the canonical type string.
func (d Descriptor) String() string {
	s := string(d.Base)
	if d.Array {
		s += "[]"
	}
	if d.Nullable {
		s += " | null"
	}
	return s
}

// Element returns the descriptor for one element of an array type, keeping
// nullability. Calling it on a non-array descriptor is a programmer error.
func (d Descriptor) Element() Descriptor {
	return Descriptor{Base: d.Base, Nullable: d.Nullable}
}

// Parse splits a type string into its descriptor. Parsing is purely lexical:
// the ` | null` suffix is stripped first, then `[]`.
func Parse(ts string) (Descriptor, error) {
	var d Descriptor
	s := ts
	if rest, ok := strings.CutSuffix(s, " | null"); ok {
		d.Nullable = true
		s = rest
	}
	if rest, ok := strings.CutSuffix(s, "[]"); ok {
		d.Array = true
		s = rest
	}
	switch Base(s) {
	case String, Number, Boolean:
		d.Base = Base(s)
	default:
		return Descriptor{}, fmt.Errorf("unsupported field type %q", ts)
	}
	return d, nil
}

// MustParse is Parse for statically known type strings. A malformed string is
// a programmer error, so it panics.
func MustParse(ts string) Descriptor {
	d, err := Parse(ts)
	if err != nil {
		panic(err)
	}
	return d
}

// Matches reports whether value satisfies the type string. Absent values are
// never passed here: omission is a partial-update concern handled by the
// mapper, so nil always means an explicit null.
func Matches(value any, ts string) bool {
	d, err := Parse(ts)
	if err != nil {
		return false
	}
	return MatchesDescriptor(value, d)
}

// MatchesDescriptor is Matches with a pre-parsed descriptor.
func MatchesDescriptor(value any, d Descriptor) bool {
	if value == nil {
		return d.Nullable
	}
	if !d.Array {
		return scalarMatches(value, d.Base)
	}
	els, ok := asSlice(value)
	if !ok {
		return false
	}
	for _, el := range els {
		if !scalarMatches(el, d.Base) {
			return false
		}
	}
	return true
}

func scalarMatches(value any, b Base) bool {
	switch b {
	case String:
		_, ok := value.(string)
		return ok
	case Number:
		_, ok := Float(value)
		return ok
	case Boolean:
		_, ok := value.(bool)
		return ok
	}
	return false
}

// Float normalizes any numeric value to float64. JSON decoding yields
// float64, but application code frequently hands in native ints.
func Float(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func asSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []string:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, true
	case []float64:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, true
	case []bool:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, true
	}
	return nil, false
}

// Slice exposes the slice normalization used by MatchesDescriptor so the
// coercion layer can share it.
func Slice(v any) ([]any, bool) { return asSlice(v) }

// ZeroValue returns the empty default substituted for a field in soft-fail
// read mode: nil for nullable types, otherwise ''/0/false/[].
func (d Descriptor) ZeroValue() any {
	if d.Nullable {
		return nil
	}
	if d.Array {
		return []any{}
	}
	switch d.Base {
	case String:
		return ""
	case Number:
		return float64(0)
	case Boolean:
		return false
	}
	return nil
}
